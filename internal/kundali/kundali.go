// Package kundali assembles a natal chart from birth details and an
// ephemeris provider, then fans out across the engines to produce the
// full artifact set. All derived artifacts depend only on the one D1
// snapshot, so they are computed concurrently.
package kundali

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/jyotish/internal/ashtakavarga"
	"github.com/seenimoa/jyotish/internal/dasha"
	"github.com/seenimoa/jyotish/internal/ephemeris"
	"github.com/seenimoa/jyotish/internal/shadbala"
	"github.com/seenimoa/jyotish/internal/varga"
	"github.com/seenimoa/jyotish/internal/yoga"
	"github.com/seenimoa/jyotish/pkg/models"
	"github.com/seenimoa/jyotish/pkg/utils"
)

// ErrInvalidBirth is returned for malformed or missing birth input. The
// caller corrects and retries; inputs are never auto-corrected here.
var ErrInvalidBirth = fmt.Errorf("invalid birth details")

// BirthDetails is the normalized birth input: a zone-aware civil instant
// and geographic coordinates.
type BirthDetails struct {
	Instant   time.Time `json:"instant"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}

// Validate rejects out-of-range coordinates and a zero instant.
func (b BirthDetails) Validate() error {
	if b.Instant.IsZero() {
		return fmt.Errorf("birth instant is zero: %w", ErrInvalidBirth)
	}
	if b.Latitude < -90 || b.Latitude > 90 {
		return fmt.Errorf("latitude %.4f out of range [-90,90]: %w", b.Latitude, ErrInvalidBirth)
	}
	if b.Longitude < -180 || b.Longitude > 180 {
		return fmt.Errorf("longitude %.4f out of range [-180,180]: %w", b.Longitude, ErrInvalidBirth)
	}
	return nil
}

// Options selects what Compute produces.
type Options struct {
	Divisions    []int                // divisional charts to derive
	HorizonYears float64              // dasha tree horizon
	Shadbala     shadbala.Options     // node calibration
	Ashtakavarga ashtakavarga.Options // node calibration
}

// Artifacts is the complete derived output for one natal chart.
type Artifacts struct {
	Chart        *models.NatalChart                    `json:"chart"`
	Divisions    map[string]models.DivisionalChart     `json:"divisions"`
	Dasha        []models.DashaPeriod                  `json:"dasha"` // mahadasha timeline
	DashaNow     *models.DashaChain                    `json:"dasha_now,omitempty"`
	Shadbala     map[models.Body]models.ShadbalaScore  `json:"shadbala"`
	Ashtakavarga *models.AshtakavargaSet               `json:"ashtakavarga"`
	Yogas        []models.YogaFinding                  `json:"yogas"`
	Vargottama   map[models.Body]bool                  `json:"vargottama"`
}

// BuildChart fetches every body's position plus the ascendant and returns
// the immutable D1 snapshot. Fetches run concurrently; any provider
// failure aborts the build rather than degrading to partial data.
func BuildChart(ctx context.Context, provider ephemeris.Provider, birth BirthDetails) (*models.NatalChart, error) {
	if err := birth.Validate(); err != nil {
		return nil, err
	}
	jd := utils.JulianDay(birth.Instant)

	chart := &models.NatalChart{
		Birth:     birth.Instant,
		JulianDay: jd,
		Latitude:  birth.Latitude,
		Longitude: birth.Longitude,
		Positions: make(map[models.Body]models.Position, len(models.Bodies)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, body := range models.Bodies {
		body := body
		g.Go(func() error {
			pos, err := provider.Position(gctx, jd, body)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", body, err)
			}
			mu.Lock()
			chart.Positions[body] = pos
			mu.Unlock()
			return nil
		})
	}
	g.Go(func() error {
		asc, err := provider.Ascendant(gctx, jd, birth.Latitude, birth.Longitude)
		if err != nil {
			return fmt.Errorf("fetch ascendant: %w", err)
		}
		mu.Lock()
		chart.Ascendant = asc
		mu.Unlock()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chart, nil
}

// Compute builds the chart and every derived artifact. Independent engines
// run in parallel off the shared snapshot; vargottama waits for the D9
// chart.
func Compute(ctx context.Context, provider ephemeris.Provider, birth BirthDetails, opts Options) (*Artifacts, error) {
	chart, err := BuildChart(ctx, provider, birth)
	if err != nil {
		return nil, err
	}

	divisors := opts.Divisions
	if len(divisors) == 0 {
		divisors = varga.SupportedDivisions()
	}
	horizon := opts.HorizonYears
	if horizon <= 0 {
		horizon = 120
	}

	art := &Artifacts{Chart: chart}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		divs, err := varga.ComputeAll(gctx, chart.Ascendant, chart.Positions, divisors)
		if err != nil {
			return fmt.Errorf("vargas: %w", err)
		}
		divs["D1"] = rashiChart(chart)
		art.Divisions = divs
		return nil
	})
	g.Go(func() error {
		moon, ok := chart.Positions[models.Moon]
		if !ok {
			return fmt.Errorf("dasha: chart has no Moon position")
		}
		tree, err := dasha.Build(moon.Longitude, chart.Birth, horizon)
		if err != nil {
			return fmt.Errorf("dasha: %w", err)
		}
		art.Dasha = tree.Mahadashas()
		if chain, err := tree.Query(time.Now()); err == nil {
			art.DashaNow = &chain
		}
		return nil
	})
	g.Go(func() error {
		scores, err := shadbala.Compute(chart, opts.Shadbala)
		if err != nil {
			return err
		}
		art.Shadbala = scores
		return nil
	})
	g.Go(func() error {
		set, err := ashtakavarga.Compute(chart, opts.Ashtakavarga)
		if err != nil {
			return err
		}
		art.Ashtakavarga = set
		return nil
	})
	g.Go(func() error {
		findings, err := yoga.Detect(chart)
		if err != nil {
			return err
		}
		art.Yogas = findings
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d9, ok := art.Divisions["D9"]
	if !ok {
		d9, err = varga.ComputeChart(chart.Ascendant, chart.Positions, 9)
		if err != nil {
			return nil, fmt.Errorf("vargottama: %w", err)
		}
	}
	art.Vargottama = yoga.Vargottama(art.Divisions["D1"], d9)
	return art, nil
}

// rashiChart renders the D1 snapshot in divisional-chart form, with
// longitudes, whole-sign houses, and nakshatra details the derived charts
// do not carry.
func rashiChart(chart *models.NatalChart) models.DivisionalChart {
	out := models.DivisionalChart{
		Division:   "D1",
		Divisor:    1,
		Ascendant:  chart.AscendantSign(),
		Placements: make(map[models.Body]models.Placement, len(chart.Positions)),
	}
	for body, pos := range chart.Positions {
		out.Placements[body] = models.Placement{
			Body:      body,
			Sign:      pos.Sign(),
			SignName:  pos.Sign().String(),
			Longitude: pos.Longitude,
			House:     chart.HouseOf(pos.Longitude),
			Nakshatra: pos.Nakshatra().String(),
			Pada:      models.PadaOf(pos.Longitude),
			Retro:     pos.Retrograde(),
		}
	}
	return out
}
