package panchanga

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/seenimoa/jyotish/pkg/models"
	"github.com/seenimoa/jyotish/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

const (
	sunRate  = 0.9856
	moonRate = 13.1764
)

// fakeProvider models linear sidereal motion from a reference epoch, with
// a fixed 06:00 UTC sunrise every day. Good enough for boundary searches
// over a few days.
type fakeProvider struct {
	jd0    float64
	sunAt0 float64
	moonAt0 float64
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Position(_ context.Context, jd float64, body models.Body) (models.Position, error) {
	var lon, speed float64
	switch body {
	case models.Sun:
		lon, speed = f.sunAt0+sunRate*(jd-f.jd0), sunRate
	case models.Moon:
		lon, speed = f.moonAt0+moonRate*(jd-f.jd0), moonRate
	default:
		lon, speed = 100, 0.1
	}
	return models.Position{Body: body, Longitude: utils.Norm360(lon), Speed: speed}, nil
}

func (f *fakeProvider) Ascendant(_ context.Context, jd float64, lat, lon float64) (float64, error) {
	return utils.Norm360(360 * (jd - f.jd0)), nil
}

func (f *fakeProvider) Sunrise(_ context.Context, jd float64, lat, lon float64) (float64, error) {
	rise := math.Floor(jd+0.5) - 0.5 + 0.25 // 06:00 UTC of jd's civil day
	if rise > jd {
		rise -= 1
	}
	return rise, nil
}

// linearFn is a provider-free angle for exercising the root-finder alone.
func linearFn(jd0, start, rate float64) angleFn {
	return func(jd float64) (float64, error) {
		return utils.Norm360(start + rate*(jd-jd0)), nil
	}
}

// ════════════════════════════════════════════════════════════════════
// Root-Finder Tests
// ════════════════════════════════════════════════════════════════════

func TestNextCrossing_FindsBoundary(t *testing.T) {
	s := Search{ToleranceSec: 1, MaxIter: 64}
	jd0 := 2460310.5
	f := linearFn(jd0, 30, 12.1908)

	// 30° → 36° at 12.1908°/day crosses after 6/12.1908 days.
	got, err := s.NextCrossing(context.Background(), f, jd0, 36, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := jd0 + 6/12.1908
	if math.Abs(got-want) > utils.JDSeconds(2) {
		t.Errorf("crossing at jd %v, want %v (off by %.1fs)", got, want, math.Abs(got-want)*86400)
	}
	// Re-evaluating at the found instant lands on the target.
	v, _ := f(got)
	if utils.AngularDistance(v, 36) > 0.001 {
		t.Errorf("angle at crossing = %v, want ~36", v)
	}
}

func TestNextCrossing_WrapsThroughZero(t *testing.T) {
	s := Search{ToleranceSec: 1, MaxIter: 64}
	jd0 := 2460310.5
	// Start at 355° aiming for 3°: the crossing wraps through 0°.
	f := linearFn(jd0, 355, 12.1908)
	got, err := s.NextCrossing(context.Background(), f, jd0, 3, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := f(got)
	if utils.AngularDistance(v, 3) > 0.001 {
		t.Errorf("angle at crossing = %v, want ~3", v)
	}
}

func TestNextCrossing_NoCrossingInWindow(t *testing.T) {
	s := Search{ToleranceSec: 1, MaxIter: 64}
	// A static angle never reaches the target.
	f := linearFn(2460310.5, 10, 0)
	_, err := s.NextCrossing(context.Background(), f, 2460310.5, 200, 2)
	if !errors.Is(err, ErrNotConverged) {
		t.Errorf("expected ErrNotConverged, got %v", err)
	}
}

func TestNextCrossing_IterationCeiling(t *testing.T) {
	// One refinement iteration cannot reach a one-second tolerance.
	s := Search{ToleranceSec: 1, MaxIter: 1}
	f := linearFn(2460310.5, 30, 12.1908)
	_, err := s.NextCrossing(context.Background(), f, 2460310.5, 36, 2)
	if !errors.Is(err, ErrNotConverged) {
		t.Errorf("expected ErrNotConverged, got %v", err)
	}
}

func TestNextCrossing_Cancellation(t *testing.T) {
	s := Search{ToleranceSec: 1, MaxIter: 64}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := linearFn(2460310.5, 30, 12.1908)
	if _, err := s.NextCrossing(ctx, f, 2460310.5, 36, 2); err == nil {
		t.Error("expected cancellation error")
	}
}

// ════════════════════════════════════════════════════════════════════
// Element Tests
// ════════════════════════════════════════════════════════════════════

// monday0630 is 2024-01-01 06:30 UTC, half an hour after the fake sunrise.
var monday0630 = time.Date(2024, 1, 1, 6, 30, 0, 0, time.UTC)

func testEngine() (*Engine, *fakeProvider) {
	p := &fakeProvider{
		jd0:     utils.JulianDay(monday0630),
		sunAt0:  10,
		moonAt0: 41,
	}
	return New(p, 1, 64), p
}

func TestCompute_AllFiveElements(t *testing.T) {
	engine, _ := testEngine()
	pan, err := engine.Compute(context.Background(), monday0630, 13.08, 80.27)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Elongation 31° is the third tithi (index 2).
	if pan.Tithi.Index != 2 || pan.Tithi.Name != "Shukla Tritiya" {
		t.Errorf("tithi = %d %q", pan.Tithi.Index, pan.Tithi.Name)
	}
	if pan.Tithi.Next != "Shukla Chaturthi" {
		t.Errorf("next tithi = %q", pan.Tithi.Next)
	}
	// Moon at 41° sits in Rohini (index 3), first pada.
	if pan.Nakshatra.Index != 3 || pan.Nakshatra.Name != "Rohini" {
		t.Errorf("nakshatra = %d %q", pan.Nakshatra.Index, pan.Nakshatra.Name)
	}
	if pan.Nakshatra.Pada != 1 {
		t.Errorf("pada = %d, want 1", pan.Nakshatra.Pada)
	}
	// Sum 51° is the fourth yoga (index 3).
	if pan.Yoga.Index != 3 || pan.Yoga.Name != "Saubhagya" {
		t.Errorf("yoga = %d %q", pan.Yoga.Index, pan.Yoga.Name)
	}
	// Elongation 31° is the sixth half-tithi (index 5): Gara.
	if pan.Karana.Index != 5 || pan.Karana.Name != "Gara" {
		t.Errorf("karana = %d %q", pan.Karana.Index, pan.Karana.Name)
	}
	// Sunrise was 06:00 the same Monday.
	if pan.Vara.Index != 1 || pan.Vara.Name != "Somavara" || pan.Vara.Lord != models.Moon {
		t.Errorf("vara = %d %q lord %v", pan.Vara.Index, pan.Vara.Name, pan.Vara.Lord)
	}
	if d := pan.Vara.EndsAt.Sub(monday0630); d < 23*time.Hour || d > 24*time.Hour {
		t.Errorf("vara ends %v after query, want next sunrise", d)
	}
}

func TestCompute_EndInstantsConverge(t *testing.T) {
	engine, _ := testEngine()
	pan, err := engine.Compute(context.Background(), monday0630, 13.08, 80.27)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	checks := []struct {
		name   string
		endsAt time.Time
		f      angleFn
		target float64
	}{
		{"tithi", pan.Tithi.EndsAt, engine.elongation(ctx), 36},
		{"nakshatra", pan.Nakshatra.EndsAt, engine.moonLongitude(ctx), 4 * cycleSpan},
		{"yoga", pan.Yoga.EndsAt, engine.longitudeSum(ctx), 4 * cycleSpan},
		{"karana", pan.Karana.EndsAt, engine.elongation(ctx), 36},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			if !c.endsAt.After(monday0630) {
				t.Fatalf("%s ends %v, not after the query instant", c.name, c.endsAt)
			}
			v, err := c.f(utils.JulianDay(c.endsAt))
			if err != nil {
				t.Fatalf("re-evaluate: %v", err)
			}
			// Within a one-second tolerance the fastest tracked angle
			// moves well under a thousandth of a degree.
			if utils.AngularDistance(v, c.target) > 0.001 {
				t.Errorf("%s boundary angle = %v, want ~%v", c.name, v, c.target)
			}
		})
	}
}

func TestCompute_ElementsOrdered(t *testing.T) {
	// The karana is the half-tithi: its boundary must not come after the
	// tithi's.
	engine, _ := testEngine()
	pan, err := engine.Compute(context.Background(), monday0630, 13.08, 80.27)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pan.Karana.EndsAt.After(pan.Tithi.EndsAt.Add(time.Second)) {
		t.Errorf("karana ends %v, after tithi end %v", pan.Karana.EndsAt, pan.Tithi.EndsAt)
	}
}

// ════════════════════════════════════════════════════════════════════
// Name Table Tests
// ════════════════════════════════════════════════════════════════════

func TestKaranaName(t *testing.T) {
	tests := []struct {
		idx  int
		want string
	}{
		{0, "Kimstughna"},
		{1, "Bava"},
		{7, "Vishti"},
		{8, "Bava"},
		{56, "Vishti"},
		{57, "Shakuni"},
		{58, "Chatushpada"},
		{59, "Naga"},
	}
	for _, tt := range tests {
		if got := karanaName(tt.idx); got != tt.want {
			t.Errorf("karanaName(%d) = %q, want %q", tt.idx, got, tt.want)
		}
	}
}
