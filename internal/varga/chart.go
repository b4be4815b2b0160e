package varga

import (
	"context"
	"fmt"

	"github.com/seenimoa/jyotish/pkg/models"
)

// ComputeChart derives a full divisional chart (ascendant plus every body)
// from D1 longitudes. Divisional charts are pure sign charts: placements
// carry signs, not houses.
func ComputeChart(ascendant float64, positions map[models.Body]models.Position, divisor int) (models.DivisionalChart, error) {
	ascSign, err := Compute(ascendant, divisor)
	if err != nil {
		return models.DivisionalChart{}, fmt.Errorf("ascendant: %w", err)
	}

	chart := models.DivisionalChart{
		Division:   fmt.Sprintf("D%d", divisor),
		Divisor:    divisor,
		Ascendant:  ascSign,
		Placements: make(map[models.Body]models.Placement, len(positions)),
	}

	for body, pos := range positions {
		sign, err := Compute(pos.Longitude, divisor)
		if err != nil {
			return models.DivisionalChart{}, fmt.Errorf("%s: %w", body, err)
		}
		chart.Placements[body] = models.Placement{
			Body:     body,
			Sign:     sign,
			SignName: sign.String(),
			Retro:    pos.Retrograde(),
		}
	}
	return chart, nil
}

// ComputeAll derives the requested divisional charts from one D1 snapshot,
// checking for cancellation between divisions so a long batch can be
// abandoned cooperatively.
func ComputeAll(ctx context.Context, ascendant float64, positions map[models.Body]models.Position, divisors []int) (map[string]models.DivisionalChart, error) {
	out := make(map[string]models.DivisionalChart, len(divisors))
	for _, d := range divisors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chart, err := ComputeChart(ascendant, positions, d)
		if err != nil {
			return nil, err
		}
		out[chart.Division] = chart
	}
	return out, nil
}
