// Package yoga implements the named-combination detector and the
// vargottama dignity check. Each catalog entry is an independent predicate
// over D1 placements; evaluation order never changes the result set.
package yoga

import (
	"fmt"

	"github.com/seenimoa/jyotish/pkg/models"
)

// entry is one catalog predicate. detect returns the finding and whether
// the combination is present.
type entry struct {
	name   string
	detect func(c *models.NatalChart) (models.YogaFinding, bool)
}

// catalog lists every detectable combination. Entries are self-contained;
// adding one never requires touching another.
var catalog = []entry{
	{"Gajakesari", gajakesari},
	{"Budhaditya", budhaditya},
	{"Chandra-Mangala", chandraMangala},
	{"Ruchaka", mahapurusha("Ruchaka", models.Mars)},
	{"Bhadra", mahapurusha("Bhadra", models.Mercury)},
	{"Hamsa", mahapurusha("Hamsa", models.Jupiter)},
	{"Malavya", mahapurusha("Malavya", models.Venus)},
	{"Shasha", mahapurusha("Shasha", models.Saturn)},
	{"Vesi", sunFlank("Vesi", 1)},
	{"Vosi", sunFlank("Vosi", -1)},
	{"Ubhayachari", ubhayachari},
	{"Sunapha", moonFlank("Sunapha", 1)},
	{"Anapha", moonFlank("Anapha", -1)},
	{"Durudhura", durudhura},
	{"Kemadruma", kemadruma},
}

// Detect evaluates the full catalog against a D1 chart.
func Detect(chart *models.NatalChart) ([]models.YogaFinding, error) {
	if chart == nil || len(chart.Positions) == 0 {
		return nil, fmt.Errorf("yoga: empty natal chart")
	}
	var findings []models.YogaFinding
	for _, e := range catalog {
		if f, ok := e.detect(chart); ok {
			findings = append(findings, f)
		}
	}
	return findings, nil
}

// Vargottama flags each non-node body occupying the same sign in D1 and
// D9. Nodes are always false.
func Vargottama(d1, d9 models.DivisionalChart) map[models.Body]bool {
	out := make(map[models.Body]bool, len(d1.Placements))
	for body, p1 := range d1.Placements {
		if body.IsNode() {
			out[body] = false
			continue
		}
		p9, ok := d9.Placements[body]
		out[body] = ok && p1.Sign == p9.Sign
	}
	return out
}

// --- Predicates ---

// gajakesari: Jupiter in a kendra (1st, 4th, 7th, or 10th sign) from the Moon.
func gajakesari(c *models.NatalChart) (models.YogaFinding, bool) {
	moon, okM := c.Positions[models.Moon]
	jup, okJ := c.Positions[models.Jupiter]
	if !okM || !okJ {
		return models.YogaFinding{}, false
	}
	diff := int(jup.Sign().Add(-int(moon.Sign())))
	if diff%3 != 0 {
		return models.YogaFinding{}, false
	}
	return models.YogaFinding{
		Name:   "Gajakesari",
		Bodies: []models.Body{models.Jupiter, models.Moon},
		Note:   fmt.Sprintf("Jupiter in %s, %d signs from the Moon", jup.Sign(), diff),
	}, true
}

// budhaditya: Sun and Mercury conjunct in one sign.
func budhaditya(c *models.NatalChart) (models.YogaFinding, bool) {
	sun, okS := c.Positions[models.Sun]
	mer, okM := c.Positions[models.Mercury]
	if !okS || !okM || sun.Sign() != mer.Sign() {
		return models.YogaFinding{}, false
	}
	return models.YogaFinding{
		Name:   "Budhaditya",
		Bodies: []models.Body{models.Sun, models.Mercury},
		Note:   fmt.Sprintf("conjunct in %s", sun.Sign()),
	}, true
}

// chandraMangala: Moon and Mars conjunct in one sign.
func chandraMangala(c *models.NatalChart) (models.YogaFinding, bool) {
	moon, okMo := c.Positions[models.Moon]
	mars, okMa := c.Positions[models.Mars]
	if !okMo || !okMa || moon.Sign() != mars.Sign() {
		return models.YogaFinding{}, false
	}
	return models.YogaFinding{
		Name:   "Chandra-Mangala",
		Bodies: []models.Body{models.Moon, models.Mars},
		Note:   fmt.Sprintf("conjunct in %s", moon.Sign()),
	}, true
}

// exaltationSign maps each mahapurusha body to its exaltation sign.
var exaltationSign = map[models.Body]models.Sign{
	models.Mars:    models.Capricorn,
	models.Mercury: models.Virgo,
	models.Jupiter: models.Cancer,
	models.Venus:   models.Pisces,
	models.Saturn:  models.Libra,
}

// mahapurusha builds the predicate for one pancha-mahapurusha yoga: the
// body in its own or exaltation sign, in a kendra from the lagna.
func mahapurusha(name string, body models.Body) func(*models.NatalChart) (models.YogaFinding, bool) {
	return func(c *models.NatalChart) (models.YogaFinding, bool) {
		pos, ok := c.Positions[body]
		if !ok {
			return models.YogaFinding{}, false
		}
		sign := pos.Sign()
		dignified := sign.Lord() == body || exaltationSign[body] == sign
		if !dignified {
			return models.YogaFinding{}, false
		}
		house := c.HouseOf(pos.Longitude)
		if house != 1 && house != 4 && house != 7 && house != 10 {
			return models.YogaFinding{}, false
		}
		return models.YogaFinding{
			Name:   name,
			Bodies: []models.Body{body},
			Note:   fmt.Sprintf("%s dignified in %s in house %d", body, sign, house),
		}, true
	}
}

// sunFlank builds the Vesi (2nd from Sun) or Vosi (12th from Sun)
// predicate: a non-lunar planet flanking the Sun.
func sunFlank(name string, dir int) func(*models.NatalChart) (models.YogaFinding, bool) {
	return func(c *models.NatalChart) (models.YogaFinding, bool) {
		bodies := flanking(c, models.Sun, dir, models.Moon)
		if len(bodies) == 0 {
			return models.YogaFinding{}, false
		}
		return models.YogaFinding{Name: name, Bodies: bodies}, true
	}
}

// ubhayachari: non-lunar planets on both sides of the Sun.
func ubhayachari(c *models.NatalChart) (models.YogaFinding, bool) {
	ahead := flanking(c, models.Sun, 1, models.Moon)
	behind := flanking(c, models.Sun, -1, models.Moon)
	if len(ahead) == 0 || len(behind) == 0 {
		return models.YogaFinding{}, false
	}
	return models.YogaFinding{Name: "Ubhayachari", Bodies: append(ahead, behind...)}, true
}

// moonFlank builds the Sunapha (2nd from Moon) or Anapha (12th from Moon)
// predicate: a non-solar planet flanking the Moon.
func moonFlank(name string, dir int) func(*models.NatalChart) (models.YogaFinding, bool) {
	return func(c *models.NatalChart) (models.YogaFinding, bool) {
		bodies := flanking(c, models.Moon, dir, models.Sun)
		if len(bodies) == 0 {
			return models.YogaFinding{}, false
		}
		return models.YogaFinding{Name: name, Bodies: bodies}, true
	}
}

// durudhura: non-solar planets on both sides of the Moon.
func durudhura(c *models.NatalChart) (models.YogaFinding, bool) {
	ahead := flanking(c, models.Moon, 1, models.Sun)
	behind := flanking(c, models.Moon, -1, models.Sun)
	if len(ahead) == 0 || len(behind) == 0 {
		return models.YogaFinding{}, false
	}
	return models.YogaFinding{Name: "Durudhura", Bodies: append(ahead, behind...)}, true
}

// kemadruma: no planet (other than the Sun and nodes) occupies the signs
// adjacent to the Moon or the Moon's own sign besides the Moon itself.
func kemadruma(c *models.NatalChart) (models.YogaFinding, bool) {
	if len(flanking(c, models.Moon, 1, models.Sun)) > 0 {
		return models.YogaFinding{}, false
	}
	if len(flanking(c, models.Moon, -1, models.Sun)) > 0 {
		return models.YogaFinding{}, false
	}
	return models.YogaFinding{
		Name:   "Kemadruma",
		Bodies: []models.Body{models.Moon},
		Note:   "no planets flanking the Moon",
	}, true
}

// flanking returns the planets occupying the sign dir places from anchor,
// excluding nodes and the named luminary.
func flanking(c *models.NatalChart, anchor models.Body, dir int, exclude models.Body) []models.Body {
	ap, ok := c.Positions[anchor]
	if !ok {
		return nil
	}
	want := ap.Sign().Add(dir)
	var out []models.Body
	for _, b := range models.SevenBodies {
		if b == anchor || b == exclude {
			continue
		}
		if p, ok := c.Positions[b]; ok && p.Sign() == want {
			out = append(out, b)
		}
	}
	return out
}
