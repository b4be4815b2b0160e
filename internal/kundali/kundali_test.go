package kundali

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/seenimoa/jyotish/internal/ashtakavarga"
	"github.com/seenimoa/jyotish/internal/ephemeris"
	"github.com/seenimoa/jyotish/internal/shadbala"
	"github.com/seenimoa/jyotish/pkg/models"
	"github.com/seenimoa/jyotish/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

// fakeProvider serves fixed longitudes regardless of instant, with an
// optional per-body failure.
type fakeProvider struct {
	longitudes map[models.Body]float64
	ascendant  float64
	failBody   models.Body
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Position(_ context.Context, jd float64, body models.Body) (models.Position, error) {
	if body == f.failBody {
		return models.Position{}, fmt.Errorf("position for %s: %w", body, ephemeris.ErrUnavailable)
	}
	lon, ok := f.longitudes[body]
	if !ok {
		return models.Position{}, fmt.Errorf("position for %s: %w", body, ephemeris.ErrUnknownBody)
	}
	return models.Position{Body: body, Longitude: lon, Speed: 0.5}, nil
}

func (f *fakeProvider) Ascendant(_ context.Context, jd float64, lat, lon float64) (float64, error) {
	return f.ascendant, nil
}

func (f *fakeProvider) Sunrise(_ context.Context, jd float64, lat, lon float64) (float64, error) {
	return jd - 0.2, nil
}

func testProvider() *fakeProvider {
	return &fakeProvider{
		ascendant: 212.28,
		longitudes: map[models.Body]float64{
			models.Sun:     31.5,
			models.Moon:    212.2799,
			models.Mars:    150.0,
			models.Mercury: 45.0,
			models.Jupiter: 95.0,
			models.Venus:   15.0,
			models.Saturn:  330.0,
			models.Rahu:    200.0,
			models.Ketu:    20.0,
		},
	}
}

var testBirth = BirthDetails{
	Instant:   time.Date(1995, 5, 16, 18, 38, 0, 0, utils.IST),
	Latitude:  13.0827,
	Longitude: 80.2707,
}

// ════════════════════════════════════════════════════════════════════
// Validation Tests
// ════════════════════════════════════════════════════════════════════

func TestBirthDetailsValidate(t *testing.T) {
	tests := []struct {
		name    string
		birth   BirthDetails
		wantErr bool
	}{
		{"valid", testBirth, false},
		{"zero instant", BirthDetails{Latitude: 10, Longitude: 70}, true},
		{"latitude too high", BirthDetails{Instant: testBirth.Instant, Latitude: 91}, true},
		{"latitude too low", BirthDetails{Instant: testBirth.Instant, Latitude: -91}, true},
		{"longitude too high", BirthDetails{Instant: testBirth.Instant, Longitude: 181}, true},
		{"longitude too low", BirthDetails{Instant: testBirth.Instant, Longitude: -181}, true},
		{"poles are legal", BirthDetails{Instant: testBirth.Instant, Latitude: 90, Longitude: -180}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.birth.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBirth) {
					t.Errorf("error = %v, want ErrInvalidBirth", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ════════════════════════════════════════════════════════════════════
// BuildChart Tests
// ════════════════════════════════════════════════════════════════════

func TestBuildChart(t *testing.T) {
	chart, err := BuildChart(context.Background(), testProvider(), testBirth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chart.Positions) != 9 {
		t.Fatalf("expected 9 positions, got %d", len(chart.Positions))
	}
	if chart.Ascendant != 212.28 {
		t.Errorf("ascendant = %v", chart.Ascendant)
	}
	if chart.AscendantSign() != models.Scorpio {
		t.Errorf("ascendant sign = %v, want Scorpio", chart.AscendantSign())
	}
	if !chart.Birth.Equal(testBirth.Instant) {
		t.Error("birth instant lost")
	}
	if chart.JulianDay != utils.JulianDay(testBirth.Instant) {
		t.Error("julian day mismatch")
	}
}

func TestBuildChart_ProviderFailureAborts(t *testing.T) {
	p := testProvider()
	p.failBody = models.Saturn
	_, err := BuildChart(context.Background(), p, testBirth)
	if !errors.Is(err, ephemeris.ErrUnavailable) {
		t.Errorf("error = %v, want wrapped ErrUnavailable", err)
	}
}

func TestBuildChart_InvalidBirth(t *testing.T) {
	_, err := BuildChart(context.Background(), testProvider(), BirthDetails{})
	if !errors.Is(err, ErrInvalidBirth) {
		t.Errorf("error = %v, want ErrInvalidBirth", err)
	}
}

// ════════════════════════════════════════════════════════════════════
// Compute Tests
// ════════════════════════════════════════════════════════════════════

func TestCompute_FullArtifactSet(t *testing.T) {
	art, err := Compute(context.Background(), testProvider(), testBirth, Options{
		Divisions:    []int{2, 9, 10},
		HorizonYears: 120,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Requested divisions plus the always-present D1.
	for _, key := range []string{"D1", "D2", "D9", "D10"} {
		if _, ok := art.Divisions[key]; !ok {
			t.Errorf("missing division %s", key)
		}
	}
	if len(art.Divisions) != 4 {
		t.Errorf("expected 4 divisions, got %d", len(art.Divisions))
	}

	// D1 carries houses and nakshatra detail the derived charts do not.
	d1 := art.Divisions["D1"]
	moon := d1.Placements[models.Moon]
	if moon.House != 1 {
		t.Errorf("Moon house = %d, want 1 with Scorpio rising", moon.House)
	}
	if moon.Nakshatra != "Vishakha" || moon.Pada == 0 {
		t.Errorf("Moon nakshatra detail = %q pada %d", moon.Nakshatra, moon.Pada)
	}

	// Moon in Vishakha opens a Jupiter mahadasha.
	if len(art.Dasha) == 0 || art.Dasha[0].Lord != models.Jupiter {
		t.Errorf("dasha timeline starts %+v, want Jupiter", art.Dasha)
	}

	if len(art.Shadbala) != 7 {
		t.Errorf("expected 7 shadbala scores, got %d", len(art.Shadbala))
	}
	if art.Ashtakavarga == nil || len(art.Ashtakavarga.Tables) != 7 {
		t.Error("ashtakavarga tables missing")
	}
	if len(art.Vargottama) == 0 {
		t.Error("vargottama map missing")
	}
	if art.Vargottama[models.Rahu] || art.Vargottama[models.Ketu] {
		t.Error("nodes must never be vargottama")
	}
}

func TestCompute_NodeCalibration(t *testing.T) {
	// Both node switches widen their engine's output past the classical
	// seven bodies.
	art, err := Compute(context.Background(), testProvider(), testBirth, Options{
		Divisions:    []int{9},
		Shadbala:     shadbala.Options{IncludeNodes: true},
		Ashtakavarga: ashtakavarga.Options{IncludeNodes: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(art.Shadbala) != 9 {
		t.Errorf("expected 9 shadbala scores with nodes, got %d", len(art.Shadbala))
	}
	if art.Ashtakavarga == nil || len(art.Ashtakavarga.Tables) != 9 {
		t.Errorf("expected 9 ashtakavarga tables with nodes, got %+v", art.Ashtakavarga)
	}
}

func TestCompute_VargottamaWithoutD9Requested(t *testing.T) {
	// When D9 is not in the requested set it is still derived for the
	// vargottama check.
	art, err := Compute(context.Background(), testProvider(), testBirth, Options{
		Divisions:    []int{2},
		HorizonYears: 50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := art.Divisions["D9"]; ok {
		t.Error("unrequested D9 should not appear in the division set")
	}
	if len(art.Vargottama) == 0 {
		t.Error("vargottama should still be computed")
	}
}

func TestCompute_DefaultsApplied(t *testing.T) {
	// Zero options fall back to every supported division and the full
	// 120-year horizon.
	art, err := Compute(context.Background(), testProvider(), testBirth, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(art.Divisions) != 16 { // 15 supported + D1
		t.Errorf("expected 16 divisions, got %d", len(art.Divisions))
	}
	total := 0.0
	for _, m := range art.Dasha {
		total += utils.DurationToYears(m.End.Sub(m.Start))
	}
	if total < 120 {
		t.Errorf("mahadasha timeline spans %.1f years, want at least 120", total)
	}
}

func TestCompute_ProviderFailurePropagates(t *testing.T) {
	p := testProvider()
	p.failBody = models.Moon
	_, err := Compute(context.Background(), p, testBirth, Options{HorizonYears: 50})
	if !errors.Is(err, ephemeris.ErrUnavailable) {
		t.Errorf("error = %v, want wrapped ErrUnavailable", err)
	}
}
