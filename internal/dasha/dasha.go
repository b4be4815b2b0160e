// Package dasha implements the vimshottari planetary-period engine: a
// three-depth recursive period tree built once from the natal Moon position,
// then queried by instant. The tree is stored as a flat arena of period
// records with contiguous child ranges, so lookups are binary searches and
// the structure serializes trivially.
package dasha

import (
	"fmt"
	"sort"
	"time"

	"github.com/seenimoa/jyotish/pkg/models"
	"github.com/seenimoa/jyotish/pkg/utils"
)

// ErrPeriodNotFound is returned when the queried instant lies outside the
// built horizon. The caller may rebuild with a larger horizon.
var ErrPeriodNotFound = fmt.Errorf("no dasha period covers the queried instant")

// TotalYears is the full vimshottari cycle length.
const TotalYears = 120.0

// lordYears assigns each body its vimshottari span. The values sum to 120
// over the fixed nine-body nakshatra lord cycle.
var lordYears = map[models.Body]float64{
	models.Ketu:    7,
	models.Venus:   20,
	models.Sun:     6,
	models.Moon:    10,
	models.Mars:    7,
	models.Rahu:    18,
	models.Jupiter: 16,
	models.Saturn:  19,
	models.Mercury: 17,
}

// Years returns the vimshottari span of the given lord.
func Years(lord models.Body) float64 {
	return lordYears[lord]
}

// period is one arena record. Children of a period occupy the contiguous
// arena range [childLo, childHi).
type period struct {
	lord    models.Body
	depth   models.DashaDepth
	start   time.Time
	end     time.Time
	childLo int
	childHi int
}

// Tree is an immutable vimshottari period tree.
type Tree struct {
	arena  []period
	mahaHi int // mahadashas occupy arena[0:mahaHi]
	birth  time.Time
	until  time.Time
}

// Build constructs the period tree from the natal Moon longitude. The first
// mahadasha's lord is the ruler of the Moon's nakshatra and its length is
// the unexpired fraction of that lord's full span; subsequent mahadashas
// cycle through the fixed lord order at full length until horizonYears is
// covered. Every period is split into nine children in the same order,
// starting from its own lord.
func Build(moonLongitude float64, birth time.Time, horizonYears float64) (*Tree, error) {
	if horizonYears <= 0 {
		return nil, fmt.Errorf("dasha horizon must be positive, got %v years", horizonYears)
	}

	lon := utils.Norm360(moonLongitude)
	nak := models.NakshatraOf(lon)
	lord := nak.Lord()
	elapsed := lon - float64(nak)*models.NakshatraSpan
	balance := lordYears[lord] * (1 - elapsed/models.NakshatraSpan)

	t := &Tree{birth: birth, until: birth.Add(utils.YearsToDuration(horizonYears))}

	// First mahadasha runs from birth for the balance only; its children
	// still split the truncated span in the standard 9-way proportion.
	start := birth
	cycle := lordIndex(lord)
	dur := utils.YearsToDuration(balance)
	for start.Before(t.until) {
		end := start.Add(dur)
		t.arena = append(t.arena, period{
			lord:  models.NakshatraLordCycle[cycle],
			depth: models.Mahadasha,
			start: start,
			end:   end,
		})
		start = end
		cycle = (cycle + 1) % 9
		dur = utils.YearsToDuration(lordYears[models.NakshatraLordCycle[cycle]])
	}
	t.mahaHi = len(t.arena)

	// Antardashas, then pratyantardashas, each splitting its parent.
	for i := 0; i < t.mahaHi; i++ {
		t.split(i, models.Antardasha)
	}
	for i := t.mahaHi; i < len(t.arena); i++ {
		if t.arena[i].depth == models.Antardasha {
			t.split(i, models.Pratyantardasha)
		}
	}
	return t, nil
}

// split appends the nine children of arena[i] and records their range.
// Child durations are proportional to the child lord's span; the final
// child inherits the parent's exact end so the children partition the
// parent without floating drift.
func (t *Tree) split(i int, depth models.DashaDepth) {
	parent := t.arena[i]
	parentSec := parent.end.Sub(parent.start).Seconds()
	lo := len(t.arena)

	cycle := lordIndex(parent.lord)
	start := parent.start
	for k := 0; k < 9; k++ {
		lord := models.NakshatraLordCycle[cycle]
		end := start.Add(time.Duration(parentSec * lordYears[lord] / TotalYears * float64(time.Second)))
		if k == 8 {
			end = parent.end
		}
		t.arena = append(t.arena, period{
			lord:  lord,
			depth: depth,
			start: start,
			end:   end,
		})
		start = end
		cycle = (cycle + 1) % 9
	}
	t.arena[i].childLo = lo
	t.arena[i].childHi = lo + 9
}

// Query resolves the active lord chain at the given instant across the
// three depths. Instants outside the built horizon fail with
// ErrPeriodNotFound.
func (t *Tree) Query(at time.Time) (models.DashaChain, error) {
	maha, err := t.find(0, t.mahaHi, at)
	if err != nil {
		return models.DashaChain{}, fmt.Errorf("mahadasha at %s: %w", at.Format(time.RFC3339), err)
	}
	antar, err := t.find(t.arena[maha].childLo, t.arena[maha].childHi, at)
	if err != nil {
		return models.DashaChain{}, fmt.Errorf("antardasha at %s: %w", at.Format(time.RFC3339), err)
	}
	praty, err := t.find(t.arena[antar].childLo, t.arena[antar].childHi, at)
	if err != nil {
		return models.DashaChain{}, fmt.Errorf("pratyantardasha at %s: %w", at.Format(time.RFC3339), err)
	}
	return models.DashaChain{
		Mahadasha:       t.export(maha),
		Antardasha:      t.export(antar),
		Pratyantardasha: t.export(praty),
	}, nil
}

// find binary-searches arena[lo:hi] (contiguous, sorted by start) for the
// period containing at. Period intervals are half-open [start, end).
func (t *Tree) find(lo, hi int, at time.Time) (int, error) {
	if lo == hi {
		return 0, ErrPeriodNotFound
	}
	i := sort.Search(hi-lo, func(k int) bool {
		return t.arena[lo+k].end.After(at)
	})
	if i == hi-lo {
		return 0, ErrPeriodNotFound
	}
	p := t.arena[lo+i]
	if at.Before(p.start) {
		return 0, ErrPeriodNotFound
	}
	return lo + i, nil
}

// Mahadashas returns the mahadasha sequence in chronological order.
func (t *Tree) Mahadashas() []models.DashaPeriod {
	out := make([]models.DashaPeriod, 0, t.mahaHi)
	for i := 0; i < t.mahaHi; i++ {
		out = append(out, t.export(i))
	}
	return out
}

// Antardashas returns the nine antardashas of the i-th mahadasha.
func (t *Tree) Antardashas(i int) ([]models.DashaPeriod, error) {
	if i < 0 || i >= t.mahaHi {
		return nil, fmt.Errorf("mahadasha index %d out of range [0,%d)", i, t.mahaHi)
	}
	return t.exportRange(t.arena[i].childLo, t.arena[i].childHi), nil
}

// Pratyantardashas returns the nine pratyantardashas of the j-th antardasha
// of the i-th mahadasha.
func (t *Tree) Pratyantardashas(i, j int) ([]models.DashaPeriod, error) {
	if i < 0 || i >= t.mahaHi {
		return nil, fmt.Errorf("mahadasha index %d out of range [0,%d)", i, t.mahaHi)
	}
	if j < 0 || j >= 9 {
		return nil, fmt.Errorf("antardasha index %d out of range [0,9)", j)
	}
	antar := t.arena[i].childLo + j
	return t.exportRange(t.arena[antar].childLo, t.arena[antar].childHi), nil
}

// Birth returns the tree's birth instant.
func (t *Tree) Birth() time.Time { return t.birth }

// Horizon returns the instant the built tree covers through.
func (t *Tree) Horizon() time.Time { return t.until }

func (t *Tree) export(i int) models.DashaPeriod {
	p := t.arena[i]
	return models.DashaPeriod{Lord: p.lord, Depth: p.depth, Start: p.start, End: p.end}
}

func (t *Tree) exportRange(lo, hi int) []models.DashaPeriod {
	out := make([]models.DashaPeriod, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, t.export(i))
	}
	return out
}

func lordIndex(b models.Body) int {
	for i, l := range models.NakshatraLordCycle {
		if l == b {
			return i
		}
	}
	return 0
}
