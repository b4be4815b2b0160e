// Package varga implements the divisional chart (varga) engine: the pure,
// deterministic remapping of a D1 sidereal longitude into any of the 15
// supported divisional charts. Each division's starting-sign and traversal
// behavior lives in a data rule record keyed by divisor, so an individual
// table can be recalibrated without touching the dispatch.
package varga

import (
	"fmt"
	"math"

	"github.com/seenimoa/jyotish/pkg/models"
	"github.com/seenimoa/jyotish/pkg/utils"
)

// ErrUnsupportedDivision is returned for a divisor with no rule record.
var ErrUnsupportedDivision = fmt.Errorf("unsupported division")

// startKind selects how a rule derives the starting sign for sub-part 0.
type startKind int

const (
	startSameSign  startKind = iota // count from the D1 sign itself
	startOffsetPar                  // D1 sign plus an odd/even offset
	startAbsPar                     // absolute sign by odd/even parity
	startElement                    // absolute sign by the D1 sign's element
	startQuality                    // absolute sign by the D1 sign's quality
	startHora                       // D2: two halves mapping to Leo/Cancer
	startNakshatra                  // D27: parts counted from Aries within each nakshatra
)

// Rule is one division's remapping record. Rules are static configuration:
// loaded once, never mutated.
type Rule struct {
	Divisor int
	Name    string // classical varga name, e.g. "Navamsha"

	kind        startKind
	step        int             // signs advanced per sub-part (1 unless noted)
	reverseEven bool            // even D1 signs traverse backward (D30)
	offsetPar   [2]int          // startOffsetPar: offsets for odd, even D1 signs
	absPar      [2]models.Sign  // startAbsPar: starts for odd, even D1 signs
	element     [4]models.Sign  // startElement: starts for fire, earth, air, water
	quality     [3]models.Sign  // startQuality: starts for movable, fixed, dual
}

// rules holds one record per supported division. The D16–D60 entries follow
// the classical tables but are not calibrated against an external reference;
// swap the record, not the dispatch, when recalibrating.
var rules = map[int]Rule{
	2:  {Divisor: 2, Name: "Hora", kind: startHora},
	3:  {Divisor: 3, Name: "Drekkana", kind: startSameSign, step: 4},
	4:  {Divisor: 4, Name: "Chaturthamsha", kind: startSameSign, step: 3},
	7:  {Divisor: 7, Name: "Saptamsha", kind: startOffsetPar, offsetPar: [2]int{0, 6}},
	9:  {Divisor: 9, Name: "Navamsha", kind: startElement, element: [4]models.Sign{models.Aries, models.Capricorn, models.Libra, models.Cancer}},
	10: {Divisor: 10, Name: "Dashamsha", kind: startOffsetPar, offsetPar: [2]int{0, 8}},
	12: {Divisor: 12, Name: "Dwadashamsha", kind: startSameSign},
	16: {Divisor: 16, Name: "Shodashamsha", kind: startQuality, quality: [3]models.Sign{models.Aries, models.Leo, models.Sagittarius}}, // quality-only; some sources also split on parity
	20: {Divisor: 20, Name: "Vimshamsha", kind: startQuality, quality: [3]models.Sign{models.Aries, models.Sagittarius, models.Leo}},
	24: {Divisor: 24, Name: "Chaturvimshamsha", kind: startAbsPar, absPar: [2]models.Sign{models.Leo, models.Cancer}},
	27: {Divisor: 27, Name: "Bhamsha", kind: startNakshatra},
	30: {Divisor: 30, Name: "Trimshamsha", kind: startSameSign, reverseEven: true},
	40: {Divisor: 40, Name: "Khavedamsha", kind: startAbsPar, absPar: [2]models.Sign{models.Aries, models.Libra}}, // parity-only; some sources also split on quality
	45: {Divisor: 45, Name: "Akshavedamsha", kind: startQuality, quality: [3]models.Sign{models.Aries, models.Leo, models.Sagittarius}}, // quality-only; some sources also split on parity
	60: {Divisor: 60, Name: "Shashtiamsha", kind: startSameSign}, // same-sign count; some sources use a quality+parity start
}

// SupportedDivisions returns the supported divisors in ascending order.
func SupportedDivisions() []int {
	return []int{2, 3, 4, 7, 9, 10, 12, 16, 20, 24, 27, 30, 40, 45, 60}
}

// DivisionName returns the classical name for a supported divisor.
func DivisionName(divisor int) (string, error) {
	r, ok := rules[divisor]
	if !ok {
		return "", fmt.Errorf("division D%d: %w", divisor, ErrUnsupportedDivision)
	}
	return r.Name, nil
}

// Compute maps a D1 sidereal longitude to its sign in the given divisional
// chart. Pure and deterministic; sub-part intervals are half-open, so an
// exact boundary degree belongs to the lower sub-part.
func Compute(longitude float64, divisor int) (models.Sign, error) {
	r, ok := rules[divisor]
	if !ok {
		return 0, fmt.Errorf("division D%d for longitude %.4f: %w", divisor, longitude, ErrUnsupportedDivision)
	}

	lon := utils.Norm360(longitude)
	sign := models.SignOf(lon)
	degInSign := lon - float64(sign)*models.SignSpan

	// D27 keys off the nakshatra span: each 13°20′ nakshatra holds exactly
	// twelve sub-parts, counted from Aries.
	if r.kind == startNakshatra {
		inNak := math.Mod(lon, models.NakshatraSpan)
		k := int(inNak / (models.NakshatraSpan / 12))
		if k > 11 {
			k = 11
		}
		return models.Aries.Add(k), nil
	}

	w := models.SignSpan / float64(divisor)
	k := int(degInSign / w)
	if k >= divisor { // float boundary guard
		k = divisor - 1
	}

	if r.kind == startHora {
		// Odd signs: first half Leo, second half Cancer. Even: reversed.
		if sign.Odd() == (k == 0) {
			return models.Leo, nil
		}
		return models.Cancer, nil
	}

	start := sign
	switch r.kind {
	case startSameSign:
		// counted from the occupied sign
	case startOffsetPar:
		if sign.Odd() {
			start = sign.Add(r.offsetPar[0])
		} else {
			start = sign.Add(r.offsetPar[1])
		}
	case startAbsPar:
		if sign.Odd() {
			start = r.absPar[0]
		} else {
			start = r.absPar[1]
		}
	case startElement:
		start = r.element[int(sign)%4]
	case startQuality:
		switch sign.Quality() {
		case models.Movable:
			start = r.quality[0]
		case models.Fixed:
			start = r.quality[1]
		default:
			start = r.quality[2]
		}
	}

	step := r.step
	if step == 0 {
		step = 1
	}
	if r.reverseEven && !sign.Odd() {
		return start.Add(-k * step), nil
	}
	return start.Add(k * step), nil
}
