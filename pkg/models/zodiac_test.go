package models

import "testing"

// ════════════════════════════════════════════════════════════════════
// Sign Tests
// ════════════════════════════════════════════════════════════════════

func TestSignOf(t *testing.T) {
	tests := []struct {
		name      string
		longitude float64
		want      Sign
	}{
		{"zero is Aries", 0, Aries},
		{"just below first boundary", 29.9999, Aries},
		{"first boundary is Taurus", 30, Taurus},
		{"scorpio mid", 212.2799, Scorpio},
		{"just below full circle", 359.9999, Pisces},
		{"wrapped negative", -10, Pisces},
		{"wrapped past full circle", 370, Aries},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SignOf(tt.longitude); got != tt.want {
				t.Errorf("SignOf(%v) = %v, want %v", tt.longitude, got, tt.want)
			}
		})
	}
}

func TestSignAdd(t *testing.T) {
	if got := Aries.Add(12); got != Aries {
		t.Errorf("Aries.Add(12) = %v, want Aries", got)
	}
	if got := Pisces.Add(1); got != Aries {
		t.Errorf("Pisces.Add(1) = %v, want Aries", got)
	}
	if got := Aries.Add(-1); got != Pisces {
		t.Errorf("Aries.Add(-1) = %v, want Pisces", got)
	}
	if got := Cancer.Add(9); got != Aries {
		t.Errorf("Cancer.Add(9) = %v, want Aries", got)
	}
}

func TestSignElementQuality(t *testing.T) {
	// Elements repeat fire/earth/air/water from Aries.
	if Aries.Element() != Fire || Taurus.Element() != Earth ||
		Gemini.Element() != Air || Cancer.Element() != Water {
		t.Error("first four elements wrong")
	}
	if Sagittarius.Element() != Fire {
		t.Errorf("Sagittarius element = %v, want fire", Sagittarius.Element())
	}
	// Modalities repeat movable/fixed/dual from Aries.
	if Aries.Quality() != Movable || Taurus.Quality() != Fixed || Gemini.Quality() != Dual {
		t.Error("first three qualities wrong")
	}
	if Capricorn.Quality() != Movable {
		t.Errorf("Capricorn quality = %v, want movable", Capricorn.Quality())
	}
}

func TestSignLord(t *testing.T) {
	tests := []struct {
		sign Sign
		want Body
	}{
		{Aries, Mars},
		{Taurus, Venus},
		{Cancer, Moon},
		{Leo, Sun},
		{Virgo, Mercury},
		{Scorpio, Mars},
		{Sagittarius, Jupiter},
		{Aquarius, Saturn},
		{Pisces, Jupiter},
	}
	for _, tt := range tests {
		if got := tt.sign.Lord(); got != tt.want {
			t.Errorf("%v.Lord() = %v, want %v", tt.sign, got, tt.want)
		}
	}
}

func TestSignOdd(t *testing.T) {
	// 1-based odd signs: Aries, Gemini, Leo, Libra, Sagittarius, Aquarius.
	odds := map[Sign]bool{
		Aries: true, Taurus: false, Gemini: true, Cancer: false,
		Leo: true, Virgo: false, Libra: true, Scorpio: false,
		Sagittarius: true, Capricorn: false, Aquarius: true, Pisces: false,
	}
	for s, want := range odds {
		if got := s.Odd(); got != want {
			t.Errorf("%v.Odd() = %v, want %v", s, got, want)
		}
	}
}

func TestSignString(t *testing.T) {
	if Scorpio.String() != "Scorpio" {
		t.Errorf("Scorpio.String() = %q", Scorpio.String())
	}
	if Sign(-1).String() != "?" || Sign(12).String() != "?" {
		t.Error("out-of-range sign should stringify as ?")
	}
}
