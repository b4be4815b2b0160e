// Package shadbala implements the six-fold planetary strength scorer.
// Each component is computed independently from the natal snapshot and the
// six are summed in virupas (sixtieths of a rupa). The lunar nodes are
// excluded by default; classical sources disagree on their treatment and
// the reduced rule set is not calibrated, so inclusion is a config switch.
package shadbala

import (
	"fmt"
	"time"

	"github.com/seenimoa/jyotish/internal/varga"
	"github.com/seenimoa/jyotish/pkg/models"
	"github.com/seenimoa/jyotish/pkg/utils"
)

// Options tunes the scorer's calibration switches.
type Options struct {
	IncludeNodes bool // score Rahu/Ketu with the reduced rule set
}

// exaltation holds each body's deep exaltation longitude; debilitation is
// the diametrically opposite point.
var exaltation = map[models.Body]float64{
	models.Sun:     10,  // Aries 10°
	models.Moon:    33,  // Taurus 3°
	models.Mars:    298, // Capricorn 28°
	models.Mercury: 165, // Virgo 15°
	models.Jupiter: 95,  // Cancer 5°
	models.Venus:   357, // Pisces 27°
	models.Saturn:  200, // Libra 20°
	models.Rahu:    50,  // Taurus 20° (reduced rule set)
	models.Ketu:    230, // Scorpio 20° (reduced rule set)
}

// naisargika is the fixed natural-strength ranking, Sun strongest.
var naisargika = map[models.Body]float64{
	models.Sun:     60,
	models.Moon:    51.43,
	models.Venus:   42.86,
	models.Jupiter: 34.29,
	models.Mercury: 25.71,
	models.Mars:    17.14,
	models.Saturn:  8.57,
	models.Rahu:    8.57,
	models.Ketu:    8.57,
}

// meanSpeed is each body's mean daily motion in degrees.
var meanSpeed = map[models.Body]float64{
	models.Sun:     0.9856,
	models.Moon:    13.1764,
	models.Mars:    0.5240,
	models.Mercury: 1.3833,
	models.Jupiter: 0.0831,
	models.Venus:   1.2000,
	models.Saturn:  0.0334,
	models.Rahu:    0.0530,
	models.Ketu:    0.0530,
}

// digPower maps each body to the house cusp where its directional strength
// peaks: lagna for Jupiter/Mercury, the 4th for Moon/Venus, the 7th for
// Saturn, the 10th for Sun/Mars.
var digPower = map[models.Body]float64{
	models.Jupiter: 0,
	models.Mercury: 0,
	models.Moon:    90,
	models.Venus:   90,
	models.Saturn:  180,
	models.Sun:     270,
	models.Mars:    270,
	models.Rahu:    180,
	models.Ketu:    180,
}

// saptavargaDivisors are the derived charts of the saptavarga set; the
// rashi itself is the seventh, scored directly before this list is
// walked.
var saptavargaDivisors = []int{2, 3, 7, 9, 12, 30}

// Compute scores every eligible body in the chart. Pure: the chart is not
// modified and repeated calls return identical results.
func Compute(chart *models.NatalChart, opts Options) (map[models.Body]models.ShadbalaScore, error) {
	if chart == nil || len(chart.Positions) == 0 {
		return nil, fmt.Errorf("shadbala: empty natal chart")
	}

	out := make(map[models.Body]models.ShadbalaScore)
	for _, body := range models.Bodies {
		if body.IsNode() && !opts.IncludeNodes {
			continue
		}
		pos, ok := chart.Positions[body]
		if !ok {
			return nil, fmt.Errorf("shadbala: chart has no position for %s", body)
		}

		sthana, err := sthanaBala(chart, pos)
		if err != nil {
			return nil, fmt.Errorf("shadbala %s: %w", body, err)
		}

		score := models.ShadbalaScore{
			Body:       body,
			Sthana:     sthana,
			Dig:        digBala(chart, pos),
			Kala:       kalaBala(chart, pos),
			Chesta:     chestaBala(pos),
			Naisargika: naisargika[body],
			Drik:       drikBala(chart, pos, opts),
		}
		score.Total = score.Sthana + score.Dig + score.Kala + score.Chesta + score.Naisargika + score.Drik
		out[body] = score
	}
	return out, nil
}

// sthanaBala is the positional component: exaltation-distance strength,
// ownership across seven divisional charts, odd/even sign placement, and
// house-class strength.
func sthanaBala(chart *models.NatalChart, pos models.Position) (float64, error) {
	body := pos.Body

	// Uchcha bala: distance from the debilitation point, 60 at exaltation.
	deb := utils.Norm360(exaltation[body] + 180)
	uchcha := utils.AngularDistance(pos.Longitude, deb) / 3

	// Saptavargaja bala: dignity of the sign occupied in each of the seven
	// vargas, graded by ownership and natural relationship.
	sapta := dignityWeight(body, pos.Sign())
	for _, d := range saptavargaDivisors {
		sign, err := varga.Compute(pos.Longitude, d)
		if err != nil {
			return 0, err
		}
		sapta += dignityWeight(body, sign)
	}

	// Oja-yugma: Moon and Venus favor even signs, the rest odd, in both
	// the rashi and the navamsha.
	var ojayugma float64
	d9, err := varga.Compute(pos.Longitude, 9)
	if err != nil {
		return 0, err
	}
	for _, s := range []models.Sign{pos.Sign(), d9} {
		wantsEven := body == models.Moon || body == models.Venus
		if s.Odd() != wantsEven {
			ojayugma += 15
		}
	}

	// Kendradi: angular houses 60, succedent 30, cadent 15.
	var kendradi float64
	switch chart.HouseOf(pos.Longitude) % 3 {
	case 1: // houses 1,4,7,10
		kendradi = 60
	case 2: // houses 2,5,8,11
		kendradi = 30
	default: // houses 3,6,9,12
		kendradi = 15
	}

	return uchcha + sapta + ojayugma + kendradi, nil
}

// digBala is the directional component: 60 virupas at the body's power
// cusp, falling linearly to zero at the opposite point.
func digBala(chart *models.NatalChart, pos models.Position) float64 {
	power := utils.Norm360(chart.Ascendant + digPower[pos.Body])
	return (180 - utils.AngularDistance(pos.Longitude, power)) / 3
}

// kalaBala is the temporal component: day/night strength, lunar fortnight
// strength, and weekday lordship.
func kalaBala(chart *models.NatalChart, pos models.Position) float64 {
	body := pos.Body

	// Natonnata: diurnal bodies peak at local midday, nocturnal at local
	// midnight; Mercury is strong always.
	local := chart.Birth
	minutes := float64(local.Hour()*60+local.Minute()) + float64(local.Second())/60
	fromMidnight := minutes
	if fromMidnight > 720 {
		fromMidnight = 1440 - fromMidnight
	}
	diurnal := fromMidnight / 12 // 0 at midnight .. 60 at noon
	var natonnata float64
	switch body {
	case models.Mercury:
		natonnata = 60
	case models.Sun, models.Jupiter, models.Venus:
		natonnata = diurnal
	default:
		natonnata = 60 - diurnal
	}

	// Paksha: benefics strengthen as the Moon waxes, malefics as it wanes.
	var paksha float64
	if sun, ok := chart.Positions[models.Sun]; ok {
		if moon, ok := chart.Positions[models.Moon]; ok {
			d := utils.AngularDistance(moon.Longitude, sun.Longitude)
			if beneficFor(chart, body) {
				paksha = d / 3
			} else {
				paksha = (180 - d) / 3
			}
		}
	}

	// Vara: the weekday lord gains a fixed 45.
	var vara float64
	if weekdayLord(chart.Birth) == body {
		vara = 45
	}

	return natonnata + paksha + vara
}

// chestaBala is the motional component. Retrograde motion scores the full
// 60; stationary bodies score nearly full; direct motion scales down as
// speed rises above the mean. The luminaries take a fixed mean contribution
// (their temporal behavior is carried by kala bala).
func chestaBala(pos models.Position) float64 {
	body := pos.Body
	if body == models.Sun || body == models.Moon {
		return 30
	}
	if pos.Retrograde() {
		return 60
	}
	mean := meanSpeed[body]
	if mean <= 0 {
		return 0
	}
	if pos.Speed < 0.05*mean { // stationary
		return 58
	}
	v := 60 * (2*mean - pos.Speed) / (2 * mean)
	if v < 0 {
		return 0
	}
	if v > 60 {
		return 60
	}
	return v
}

// drikBala is the aspectual component: the quartered sum of sputa drishti
// received from every other body, positive from benefics and negative from
// malefics.
func drikBala(chart *models.NatalChart, pos models.Position, opts Options) float64 {
	var total float64
	for _, aspector := range models.Bodies {
		if aspector == pos.Body {
			continue
		}
		if aspector.IsNode() && !opts.IncludeNodes {
			continue
		}
		ap, ok := chart.Positions[aspector]
		if !ok {
			continue
		}
		v := sputaDrishti(aspector, utils.Elongation(ap.Longitude, pos.Longitude))
		if beneficFor(chart, aspector) {
			total += v
		} else {
			total -= v
		}
	}
	return total / 4
}

// beneficFor classifies a body for aspect/paksha purposes; the Moon's
// classification follows the fortnight.
func beneficFor(chart *models.NatalChart, b models.Body) bool {
	if b == models.Moon {
		return chart.Waxing()
	}
	return models.NaturalBenefics[b]
}

// weekdayLord returns the ruling body of the civil weekday.
func weekdayLord(t time.Time) models.Body {
	switch t.Weekday() {
	case time.Sunday:
		return models.Sun
	case time.Monday:
		return models.Moon
	case time.Tuesday:
		return models.Mars
	case time.Wednesday:
		return models.Mercury
	case time.Thursday:
		return models.Jupiter
	case time.Friday:
		return models.Venus
	default:
		return models.Saturn
	}
}

// dignityWeight grades a body's comfort in a sign: own sign, then natural
// friendship with the sign's lord. Moolatrikona and compound (five-fold)
// relationships are deliberately folded into these four grades.
func dignityWeight(body models.Body, sign models.Sign) float64 {
	lord := sign.Lord()
	if lord == body {
		return 30
	}
	switch relationship(body, lord) {
	case relFriend:
		return 15
	case relNeutral:
		return 7.5
	default:
		return 3.75
	}
}
