package models

// Position is a body's sidereal position at a given instant, as produced
// by an ephemeris provider. Positions are read-only inputs to every engine.
type Position struct {
	Body       Body    `json:"body"`
	Longitude  float64 `json:"longitude"` // sidereal, normalized to [0,360)
	Latitude   float64 `json:"latitude"`  // ecliptic latitude, degrees
	DistanceAU float64 `json:"distance_au"`
	Speed      float64 `json:"speed"` // deg/day; negative means retrograde
}

// Retrograde reports whether the body is in retrograde motion.
func (p Position) Retrograde() bool {
	return p.Speed < 0
}

// Sign returns the sign occupied by the position.
func (p Position) Sign() Sign {
	return SignOf(p.Longitude)
}

// Nakshatra returns the nakshatra occupied by the position.
func (p Position) Nakshatra() Nakshatra {
	return NakshatraOf(p.Longitude)
}

// DegreeInSign returns the position's offset within its sign, [0,30).
func (p Position) DegreeInSign() float64 {
	return p.Longitude - float64(p.Sign())*SignSpan
}
