package ephemeris

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/seenimoa/jyotish/pkg/models"
)

// Sample is one tabulated ephemeris record.
type Sample struct {
	JD         float64 `json:"jd"`
	Longitude  float64 `json:"lon"`
	Latitude   float64 `json:"lat"`
	DistanceAU float64 `json:"dist"`
	Speed      float64 `json:"speed"`
}

// FileData is the on-disk layout of a sample-table file: pre-computed
// sidereal positions exported from a full ephemeris, interpolated linearly
// between samples. The file carries its own ayanamsa so mismatched tables
// are detected rather than silently mixed.
type FileData struct {
	Ayanamsa  string                     `json:"ayanamsa"`
	Latitude  float64                    `json:"latitude"`  // coordinates the ascendant/sunrise tables were computed for
	Longitude float64                    `json:"longitude"`
	Bodies    map[models.Body][]Sample   `json:"bodies"`
	Ascendant []Sample                   `json:"ascendant,omitempty"`
	Sunrises  []float64                  `json:"sunrises,omitempty"` // sorted sunrise JDs
}

// FileProvider serves positions from a pre-computed sample table. It only
// interpolates between supplied samples: a query outside the tabulated
// range fails with ErrUnavailable instead of falling back to an
// approximate formula.
type FileProvider struct {
	data FileData
}

// NewFileProvider loads a sample table from the given JSON file.
func NewFileProvider(path string) (*FileProvider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ephemeris file: %w", err)
	}
	var data FileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse ephemeris file %s: %w", path, err)
	}
	return NewFileProviderFromData(data)
}

// NewFileProviderFromData builds a provider from already-parsed data.
func NewFileProviderFromData(data FileData) (*FileProvider, error) {
	for body, samples := range data.Bodies {
		if len(samples) < 2 {
			return nil, fmt.Errorf("ephemeris table for %s needs at least 2 samples, got %d", body, len(samples))
		}
		if !sort.SliceIsSorted(samples, func(i, j int) bool { return samples[i].JD < samples[j].JD }) {
			return nil, fmt.Errorf("ephemeris table for %s is not sorted by JD", body)
		}
	}
	if !sort.Float64sAreSorted(data.Sunrises) {
		return nil, fmt.Errorf("sunrise table is not sorted")
	}
	return &FileProvider{data: data}, nil
}

// Name implements Provider.
func (p *FileProvider) Name() string { return "file" }

// Position implements Provider by wrap-aware linear interpolation between
// the two samples bracketing jd.
func (p *FileProvider) Position(ctx context.Context, jd float64, body models.Body) (models.Position, error) {
	if err := ctx.Err(); err != nil {
		return models.Position{}, err
	}
	samples, ok := p.data.Bodies[body]
	if !ok {
		return models.Position{}, fmt.Errorf("position for %s: %w", body, ErrUnknownBody)
	}
	lo, hi, err := bracket(samples, jd)
	if err != nil {
		return models.Position{}, fmt.Errorf("position for %s at jd %.6f: %w", body, jd, err)
	}

	f := frac(samples[lo].JD, samples[hi].JD, jd)
	return models.Position{
		Body:       body,
		Longitude:  lerpAngle(samples[lo].Longitude, samples[hi].Longitude, f),
		Latitude:   lerp(samples[lo].Latitude, samples[hi].Latitude, f),
		DistanceAU: lerp(samples[lo].DistanceAU, samples[hi].DistanceAU, f),
		Speed:      lerp(samples[lo].Speed, samples[hi].Speed, f),
	}, nil
}

// Ascendant implements Provider from the tabulated ascendant samples.
// The table is tied to the coordinates it was exported for; a query for
// different coordinates is refused.
func (p *FileProvider) Ascendant(ctx context.Context, jd float64, lat, lon float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(p.data.Ascendant) < 2 {
		return 0, fmt.Errorf("ascendant: no samples in table: %w", ErrUnavailable)
	}
	if math.Abs(lat-p.data.Latitude) > 0.01 || math.Abs(lon-p.data.Longitude) > 0.01 {
		return 0, fmt.Errorf("ascendant: table computed for %.4f,%.4f not %.4f,%.4f: %w",
			p.data.Latitude, p.data.Longitude, lat, lon, ErrUnavailable)
	}
	lo, hi, err := bracket(p.data.Ascendant, jd)
	if err != nil {
		return 0, fmt.Errorf("ascendant at jd %.6f: %w", jd, err)
	}
	f := frac(p.data.Ascendant[lo].JD, p.data.Ascendant[hi].JD, jd)
	return lerpAngle(p.data.Ascendant[lo].Longitude, p.data.Ascendant[hi].Longitude, f), nil
}

// Sunrise implements Provider: the most recent tabulated sunrise at or
// before jd.
func (p *FileProvider) Sunrise(ctx context.Context, jd float64, lat, lon float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	i := sort.SearchFloat64s(p.data.Sunrises, jd)
	// SearchFloat64s returns the first index >= jd; we want the last <= jd.
	if i < len(p.data.Sunrises) && p.data.Sunrises[i] == jd {
		return p.data.Sunrises[i], nil
	}
	if i == 0 {
		return 0, fmt.Errorf("sunrise at jd %.6f: before tabulated range: %w", jd, ErrUnavailable)
	}
	s := p.data.Sunrises[i-1]
	if jd-s > 2 {
		return 0, fmt.Errorf("sunrise at jd %.6f: gap in tabulated range: %w", jd, ErrUnavailable)
	}
	return s, nil
}

// bracket finds the sample pair surrounding jd, or ErrUnavailable when jd
// lies outside the tabulated range.
func bracket(samples []Sample, jd float64) (lo, hi int, err error) {
	n := len(samples)
	if jd < samples[0].JD || jd > samples[n-1].JD {
		return 0, 0, ErrUnavailable
	}
	i := sort.Search(n, func(k int) bool { return samples[k].JD >= jd })
	if i == 0 {
		return 0, 1, nil
	}
	return i - 1, i, nil
}

func frac(a, b, x float64) float64 {
	if b == a {
		return 0
	}
	return (x - a) / (b - a)
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}

// lerpAngle interpolates between two longitudes along the shorter arc,
// so a wrap from 359° to 1° does not sweep backward through the zodiac.
func lerpAngle(a, b, f float64) float64 {
	d := math.Mod(b-a+540, 360) - 180
	r := math.Mod(a+d*f, 360)
	if r < 0 {
		r += 360
	}
	return r
}
