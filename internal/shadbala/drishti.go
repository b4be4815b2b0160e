package shadbala

import "github.com/seenimoa/jyotish/pkg/models"

// relation grades the natural (permanent) relationship between two bodies.
type relation int

const (
	relFriend relation = iota
	relNeutral
	relEnemy
)

// friends and enemies hold the classical natural relationship table; any
// pair in neither set is neutral.
var friends = map[models.Body]map[models.Body]bool{
	models.Sun:     {models.Moon: true, models.Mars: true, models.Jupiter: true},
	models.Moon:    {models.Sun: true, models.Mercury: true},
	models.Mars:    {models.Sun: true, models.Moon: true, models.Jupiter: true},
	models.Mercury: {models.Sun: true, models.Venus: true},
	models.Jupiter: {models.Sun: true, models.Moon: true, models.Mars: true},
	models.Venus:   {models.Mercury: true, models.Saturn: true},
	models.Saturn:  {models.Mercury: true, models.Venus: true},
	models.Rahu:    {models.Venus: true, models.Saturn: true},
	models.Ketu:    {models.Mars: true, models.Jupiter: true},
}

var enemies = map[models.Body]map[models.Body]bool{
	models.Sun:     {models.Venus: true, models.Saturn: true},
	models.Moon:    {},
	models.Mars:    {models.Mercury: true},
	models.Mercury: {models.Moon: true},
	models.Jupiter: {models.Mercury: true, models.Venus: true},
	models.Venus:   {models.Sun: true, models.Moon: true},
	models.Saturn:  {models.Sun: true, models.Moon: true, models.Mars: true},
	models.Rahu:    {models.Sun: true, models.Moon: true},
	models.Ketu:    {models.Sun: true, models.Moon: true},
}

// relationship returns how body regards other in the natural table.
func relationship(body, other models.Body) relation {
	if friends[body][other] {
		return relFriend
	}
	if enemies[body][other] {
		return relEnemy
	}
	return relNeutral
}

// sputaDrishti returns the aspect strength (0–60 virupas) a body casts at
// the given forward elongation, per the classical piecewise curve: nothing
// inside 30°, rising to the three-quarter aspect at 90°, the half aspect
// at 120°, and the full aspect at 180°, then declining. Mars, Jupiter, and
// Saturn cast full aspects over their special sign sectors.
func sputaDrishti(aspector models.Body, d float64) float64 {
	switch aspector {
	case models.Mars:
		// full 4th and 8th aspects
		if (d >= 90 && d < 120) || (d >= 210 && d < 240) {
			return 60
		}
	case models.Jupiter:
		// full 5th and 9th aspects
		if (d >= 120 && d < 150) || (d >= 240 && d < 270) {
			return 60
		}
	case models.Saturn:
		// full 3rd and 10th aspects
		if (d >= 60 && d < 90) || (d >= 270 && d < 300) {
			return 60
		}
	}

	switch {
	case d < 30:
		return 0
	case d < 60:
		return (d - 30) / 2
	case d < 90:
		return (d - 60) + 15
	case d < 120:
		return (120-d)/2 + 30
	case d < 150:
		return 150 - d
	case d < 180:
		return (d - 150) * 2
	case d < 300:
		return (300 - d) / 2
	default:
		return 0
	}
}
