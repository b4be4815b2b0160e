// Package panchanga derives the five daily calendrical elements — tithi,
// nakshatra, yoga, karana, and vara — for an instant and location. The
// four angular elements share one bounded root-finder for their boundary
// instants; the searches are independent and run concurrently. Ephemeris
// access happens many times per search, so the provider must tolerate
// concurrent calls.
package panchanga

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/jyotish/internal/ephemeris"
	"github.com/seenimoa/jyotish/pkg/models"
	"github.com/seenimoa/jyotish/pkg/utils"
)

// tithiSpan and karanaSpan are the elongation widths of one tithi and one
// half-tithi.
const (
	tithiSpan  = 12.0
	karanaSpan = 6.0
	cycleSpan  = 360.0 / 27.0 // nakshatra and yoga width
)

// Engine computes panchanga element sets against one provider.
type Engine struct {
	provider ephemeris.Provider
	search   Search
}

// New creates a panchanga engine with the given search bounds.
func New(provider ephemeris.Provider, toleranceSec float64, maxIter int) *Engine {
	return &Engine{
		provider: provider,
		search:   Search{ToleranceSec: toleranceSec, MaxIter: maxIter},
	}
}

// Compute derives the element set for the given instant and location. The
// instant's zone is used for all reported times. The four angular boundary
// searches run concurrently; the first error cancels the rest.
func (e *Engine) Compute(ctx context.Context, at time.Time, lat, lon float64) (*models.Panchanga, error) {
	jd := utils.JulianDay(at)

	out := &models.Panchanga{Date: at}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		el, err := e.tithi(gctx, jd, at.Location())
		if err != nil {
			return fmt.Errorf("tithi: %w", err)
		}
		out.Tithi = el
		return nil
	})
	g.Go(func() error {
		el, err := e.nakshatra(gctx, jd, at.Location())
		if err != nil {
			return fmt.Errorf("nakshatra: %w", err)
		}
		out.Nakshatra = el
		return nil
	})
	g.Go(func() error {
		el, err := e.yoga(gctx, jd, at.Location())
		if err != nil {
			return fmt.Errorf("yoga: %w", err)
		}
		out.Yoga = el
		return nil
	})
	g.Go(func() error {
		el, err := e.karana(gctx, jd, at.Location())
		if err != nil {
			return fmt.Errorf("karana: %w", err)
		}
		out.Karana = el
		return nil
	})
	g.Go(func() error {
		el, err := e.vara(gctx, jd, lat, lon, at.Location())
		if err != nil {
			return fmt.Errorf("vara: %w", err)
		}
		out.Vara = el
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// elongation is the Moon–Sun forward separation at jd.
func (e *Engine) elongation(ctx context.Context) angleFn {
	return func(jd float64) (float64, error) {
		sun, err := e.provider.Position(ctx, jd, models.Sun)
		if err != nil {
			return 0, err
		}
		moon, err := e.provider.Position(ctx, jd, models.Moon)
		if err != nil {
			return 0, err
		}
		return utils.Elongation(sun.Longitude, moon.Longitude), nil
	}
}

// moonLongitude tracks the Moon alone.
func (e *Engine) moonLongitude(ctx context.Context) angleFn {
	return func(jd float64) (float64, error) {
		moon, err := e.provider.Position(ctx, jd, models.Moon)
		if err != nil {
			return 0, err
		}
		return moon.Longitude, nil
	}
}

// longitudeSum tracks the Sun+Moon sum for the nitya yoga.
func (e *Engine) longitudeSum(ctx context.Context) angleFn {
	return func(jd float64) (float64, error) {
		sun, err := e.provider.Position(ctx, jd, models.Sun)
		if err != nil {
			return 0, err
		}
		moon, err := e.provider.Position(ctx, jd, models.Moon)
		if err != nil {
			return 0, err
		}
		return utils.Norm360(sun.Longitude + moon.Longitude), nil
	}
}

func (e *Engine) tithi(ctx context.Context, jd float64, loc *time.Location) (models.PanchangaElement, error) {
	f := e.elongation(ctx)
	v, err := f(jd)
	if err != nil {
		return models.PanchangaElement{}, err
	}
	idx := int(v / tithiSpan)
	end, err := e.search.NextCrossing(ctx, f, jd, utils.Norm360(float64(idx+1)*tithiSpan), 2)
	if err != nil {
		return models.PanchangaElement{}, err
	}
	return models.PanchangaElement{
		Kind:   models.KindTithi,
		Index:  idx,
		Name:   tithiNames[idx],
		EndsAt: utils.TimeFromJD(end).In(loc),
		Next:   tithiNames[(idx+1)%30],
	}, nil
}

func (e *Engine) nakshatra(ctx context.Context, jd float64, loc *time.Location) (models.PanchangaElement, error) {
	f := e.moonLongitude(ctx)
	v, err := f(jd)
	if err != nil {
		return models.PanchangaElement{}, err
	}
	idx := int(v / cycleSpan)
	pada := int(math.Mod(v, cycleSpan)/(cycleSpan/4)) + 1
	end, err := e.search.NextCrossing(ctx, f, jd, utils.Norm360(float64(idx+1)*cycleSpan), 2)
	if err != nil {
		return models.PanchangaElement{}, err
	}
	return models.PanchangaElement{
		Kind:   models.KindNakshatra,
		Index:  idx,
		Name:   models.Nakshatra(idx).String(),
		Pada:   pada,
		EndsAt: utils.TimeFromJD(end).In(loc),
		Next:   models.Nakshatra((idx + 1) % 27).String(),
	}, nil
}

func (e *Engine) yoga(ctx context.Context, jd float64, loc *time.Location) (models.PanchangaElement, error) {
	f := e.longitudeSum(ctx)
	v, err := f(jd)
	if err != nil {
		return models.PanchangaElement{}, err
	}
	idx := int(v / cycleSpan)
	end, err := e.search.NextCrossing(ctx, f, jd, utils.Norm360(float64(idx+1)*cycleSpan), 2)
	if err != nil {
		return models.PanchangaElement{}, err
	}
	return models.PanchangaElement{
		Kind:   models.KindYoga,
		Index:  idx,
		Name:   yogaNames[idx],
		EndsAt: utils.TimeFromJD(end).In(loc),
		Next:   yogaNames[(idx+1)%27],
	}, nil
}

func (e *Engine) karana(ctx context.Context, jd float64, loc *time.Location) (models.PanchangaElement, error) {
	f := e.elongation(ctx)
	v, err := f(jd)
	if err != nil {
		return models.PanchangaElement{}, err
	}
	idx := int(v / karanaSpan)
	end, err := e.search.NextCrossing(ctx, f, jd, utils.Norm360(float64(idx+1)*karanaSpan), 1.5)
	if err != nil {
		return models.PanchangaElement{}, err
	}
	return models.PanchangaElement{
		Kind:   models.KindKarana,
		Index:  idx,
		Name:   karanaName(idx),
		EndsAt: utils.TimeFromJD(end).In(loc),
		Next:   karanaName((idx + 1) % 60),
	}, nil
}

// vara resolves the sunrise-to-sunrise weekday. The current vara began at
// the most recent sunrise; it ends at the next one.
func (e *Engine) vara(ctx context.Context, jd float64, lat, lon float64, loc *time.Location) (models.PanchangaElement, error) {
	rise, err := e.provider.Sunrise(ctx, jd, lat, lon)
	if err != nil {
		return models.PanchangaElement{}, err
	}
	next, err := e.provider.Sunrise(ctx, jd+1, lat, lon)
	if err != nil {
		return models.PanchangaElement{}, err
	}
	idx := int(utils.TimeFromJD(rise).In(loc).Weekday())
	return models.PanchangaElement{
		Kind:   models.KindVara,
		Index:  idx,
		Name:   varaNames[idx],
		Lord:   varaLords[idx],
		EndsAt: utils.TimeFromJD(next).In(loc),
		Next:   varaNames[(idx+1)%7],
	}, nil
}
