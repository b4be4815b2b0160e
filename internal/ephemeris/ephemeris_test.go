package ephemeris

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/seenimoa/jyotish/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

func testData() FileData {
	return FileData{
		Ayanamsa:  string(Lahiri),
		Latitude:  13.0827,
		Longitude: 80.2707,
		Bodies: map[models.Body][]Sample{
			models.Sun: {
				{JD: 2460310.5, Longitude: 255.0, Speed: 1.0},
				{JD: 2460311.5, Longitude: 256.0, Speed: 1.0},
				{JD: 2460312.5, Longitude: 257.0, Speed: 1.0},
			},
			models.Moon: {
				{JD: 2460310.5, Longitude: 358.0, Speed: 13.0},
				{JD: 2460311.5, Longitude: 11.0, Speed: 13.0},
			},
		},
		Ascendant: []Sample{
			{JD: 2460310.5, Longitude: 100.0},
			{JD: 2460310.6, Longitude: 136.0},
		},
		Sunrises: []float64{2460310.75, 2460311.75, 2460312.75},
	}
}

// ════════════════════════════════════════════════════════════════════
// FileProvider Tests
// ════════════════════════════════════════════════════════════════════

func TestFileProvider_Interpolation(t *testing.T) {
	p, err := NewFileProviderFromData(testData())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	pos, err := p.Position(ctx, 2460311.0, models.Sun)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(pos.Longitude-255.5) > 1e-9 {
		t.Errorf("Sun at midpoint = %v, want 255.5", pos.Longitude)
	}

	// Exact sample instants return the tabulated value.
	pos, err = p.Position(ctx, 2460310.5, models.Sun)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(pos.Longitude-255.0) > 1e-9 {
		t.Errorf("Sun at first sample = %v, want 255.0", pos.Longitude)
	}
}

func TestFileProvider_WrapAwareInterpolation(t *testing.T) {
	p, err := NewFileProviderFromData(testData())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The Moon moves 358 → 11 through 0°, not backward through 180°.
	pos, err := p.Position(context.Background(), 2460311.0, models.Moon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(pos.Longitude-4.5) > 1e-9 {
		t.Errorf("Moon at midpoint = %v, want 4.5", pos.Longitude)
	}
}

func TestFileProvider_OutOfRange(t *testing.T) {
	p, err := NewFileProviderFromData(testData())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	if _, err := p.Position(ctx, 2460300.0, models.Sun); !errors.Is(err, ErrUnavailable) {
		t.Errorf("before range error = %v, want ErrUnavailable", err)
	}
	if _, err := p.Position(ctx, 2460320.0, models.Sun); !errors.Is(err, ErrUnavailable) {
		t.Errorf("after range error = %v, want ErrUnavailable", err)
	}
	if _, err := p.Position(ctx, 2460311.0, models.Jupiter); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("untabulated body error = %v, want ErrUnknownBody", err)
	}
}

func TestFileProvider_Ascendant(t *testing.T) {
	p, err := NewFileProviderFromData(testData())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	// The 0.1-day bracket endpoints are not exactly representable at JD
	// magnitudes, so the interpolation fraction carries ~1e-8° of noise.
	asc, err := p.Ascendant(ctx, 2460310.55, 13.0827, 80.2707)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(asc-118.0) > 1e-6 {
		t.Errorf("ascendant at midpoint = %v, want 118.0", asc)
	}

	// A table exported for one place refuses another.
	if _, err := p.Ascendant(ctx, 2460310.55, 28.61, 77.21); !errors.Is(err, ErrUnavailable) {
		t.Errorf("coordinate mismatch error = %v, want ErrUnavailable", err)
	}
}

func TestFileProvider_Sunrise(t *testing.T) {
	p, err := NewFileProviderFromData(testData())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	// Mid-morning query returns that day's sunrise.
	rise, err := p.Sunrise(ctx, 2460311.0, 13.0827, 80.2707)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rise != 2460310.75 {
		t.Errorf("sunrise = %v, want 2460310.75", rise)
	}
	// A query landing exactly on a tabulated sunrise returns it.
	rise, err = p.Sunrise(ctx, 2460311.75, 13.0827, 80.2707)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rise != 2460311.75 {
		t.Errorf("exact sunrise = %v, want 2460311.75", rise)
	}
	// Before the table starts there is nothing to return.
	if _, err := p.Sunrise(ctx, 2460310.0, 13.0827, 80.2707); !errors.Is(err, ErrUnavailable) {
		t.Errorf("pre-table error = %v, want ErrUnavailable", err)
	}
	// A distant query past a gap is refused rather than guessed.
	if _, err := p.Sunrise(ctx, 2460320.0, 13.0827, 80.2707); !errors.Is(err, ErrUnavailable) {
		t.Errorf("gap error = %v, want ErrUnavailable", err)
	}
}

func TestFileProvider_Validation(t *testing.T) {
	data := testData()
	data.Bodies[models.Mars] = []Sample{{JD: 2460310.5, Longitude: 100}}
	if _, err := NewFileProviderFromData(data); err == nil {
		t.Error("expected error for a single-sample table")
	}

	data = testData()
	data.Bodies[models.Sun] = []Sample{
		{JD: 2460311.5, Longitude: 256.0},
		{JD: 2460310.5, Longitude: 255.0},
	}
	if _, err := NewFileProviderFromData(data); err == nil {
		t.Error("expected error for an unsorted table")
	}
}

func TestNewFileProvider_FromDisk(t *testing.T) {
	raw, err := json.Marshal(testData())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "ephemeris.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := NewFileProvider(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "file" {
		t.Errorf("Name() = %q, want file", p.Name())
	}

	if _, err := NewFileProvider(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestFileProvider_ContextCancelled(t *testing.T) {
	p, err := NewFileProviderFromData(testData())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Position(ctx, 2460311.0, models.Sun); err == nil {
		t.Error("expected cancellation error")
	}
}

// ════════════════════════════════════════════════════════════════════
// Registry Tests
// ════════════════════════════════════════════════════════════════════

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Get(""); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("empty registry Get error = %v, want ErrNotRegistered", err)
	}

	first, _ := NewFileProviderFromData(testData())
	if err := reg.Register(first); err != nil {
		t.Fatalf("register: %v", err)
	}

	// The first registration becomes the default.
	got, err := reg.Get("")
	if err != nil {
		t.Fatalf("get default: %v", err)
	}
	if got.Name() != "file" {
		t.Errorf("default = %q, want file", got.Name())
	}
	if _, err := reg.Get("file"); err != nil {
		t.Errorf("get by name: %v", err)
	}
	if _, err := reg.Get("swiss"); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("unknown name error = %v, want ErrNotRegistered", err)
	}
	if err := reg.SetDefault("swiss"); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("SetDefault unknown error = %v, want ErrNotRegistered", err)
	}
	if names := reg.Names(); len(names) != 1 || names[0] != "file" {
		t.Errorf("Names() = %v", names)
	}
}
