package models

import "testing"

func TestNakshatraOf(t *testing.T) {
	tests := []struct {
		name      string
		longitude float64
		want      Nakshatra
	}{
		{"zero is Ashwini", 0, 0},
		{"just below first boundary", 13.3332, 0},
		{"first boundary is Bharani", 13.3334, 1},
		{"vishakha", 212.2799, 15},
		{"revati end", 359.9, 26},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NakshatraOf(tt.longitude); got != tt.want {
				t.Errorf("NakshatraOf(%v) = %v, want %v", tt.longitude, got, tt.want)
			}
		})
	}
}

func TestNakshatraLord(t *testing.T) {
	// The nine-lord cycle repeats three times over the 27 mansions.
	if got := Nakshatra(0).Lord(); got != Ketu {
		t.Errorf("Ashwini lord = %v, want Ketu", got)
	}
	if got := Nakshatra(8).Lord(); got != Mercury {
		t.Errorf("Ashlesha lord = %v, want Mercury", got)
	}
	if got := Nakshatra(9).Lord(); got != Ketu {
		t.Errorf("Magha lord = %v, want Ketu", got)
	}
	if got := Nakshatra(26).Lord(); got != Mercury {
		t.Errorf("Revati lord = %v, want Mercury", got)
	}
	for n := Nakshatra(0); n < 27; n++ {
		if n.Lord() != NakshatraLordCycle[int(n)%9] {
			t.Errorf("nakshatra %d lord does not follow the nine-body cycle", n)
		}
	}
}

func TestPadaOf(t *testing.T) {
	tests := []struct {
		name      string
		longitude float64
		want      int
	}{
		{"start of mansion is pada 1", 0, 1},
		{"second quarter", 3.5, 2},
		{"third quarter", 7.0, 3},
		{"fourth quarter", 10.5, 4},
		{"next mansion resets", NakshatraSpan, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PadaOf(tt.longitude); got != tt.want {
				t.Errorf("PadaOf(%v) = %d, want %d", tt.longitude, got, tt.want)
			}
		})
	}
}

func TestNakshatraString(t *testing.T) {
	if Nakshatra(15).String() != "Vishakha" {
		t.Errorf("Nakshatra(15) = %q, want Vishakha", Nakshatra(15).String())
	}
	if Nakshatra(27).String() != "?" {
		t.Error("out-of-range nakshatra should stringify as ?")
	}
}
