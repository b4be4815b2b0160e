// Package ephemeris defines the position provider abstraction consumed by
// every engine. A Provider supplies sidereal positions, the ascendant, and
// sunrise instants for a given Julian Day; the engines never compute raw
// ephemeris data themselves, and no approximate fallback exists — a failed
// provider call propagates as ErrUnavailable rather than being masked.
package ephemeris

import (
	"context"
	"fmt"

	"github.com/seenimoa/jyotish/pkg/models"
)

// Ayanamsa selects the fixed sidereal correction model a provider applies.
type Ayanamsa string

const (
	Lahiri       Ayanamsa = "lahiri"
	Raman        Ayanamsa = "raman"
	Krishnamurti Ayanamsa = "krishnamurti"
)

// Provider supplies deterministic sidereal positions for a given instant.
// Implementations must be safe for concurrent use: the panchanga boundary
// searches call Position many times from parallel goroutines.
type Provider interface {
	// Name returns the provider's registry name.
	Name() string

	// Position returns the sidereal position of body at the given Julian Day.
	Position(ctx context.Context, jd float64, body models.Body) (models.Position, error)

	// Ascendant returns the sidereal longitude of the rising point for the
	// given Julian Day and geographic coordinates.
	Ascendant(ctx context.Context, jd float64, lat, lon float64) (float64, error)

	// Sunrise returns the Julian Day of the most recent sunrise at or
	// before jd for the given coordinates. The astrological day (vara)
	// runs sunrise to sunrise.
	Sunrise(ctx context.Context, jd float64, lat, lon float64) (float64, error)
}

// --- Sentinel errors ---

// ErrUnavailable is returned when the provider cannot supply a position
// for the requested instant. It is never silently replaced with an
// approximate value.
var ErrUnavailable = fmt.Errorf("ephemeris data unavailable")

// ErrUnknownBody is returned for a body the provider does not model.
var ErrUnknownBody = fmt.Errorf("unknown body")

// ErrNotRegistered is returned when a named provider is not in the registry.
var ErrNotRegistered = fmt.Errorf("provider not registered")
