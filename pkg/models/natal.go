package models

import "time"

// NatalChart is the D1 snapshot every engine computes from: the birth
// instant, location, ascendant, and one position per body. Built once by
// the kundali assembler and treated as read-only thereafter.
type NatalChart struct {
	Birth     time.Time          `json:"birth"` // civil birth instant, zone-aware
	JulianDay float64            `json:"julian_day"`
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
	Ascendant float64            `json:"ascendant"` // sidereal lagna longitude
	Positions map[Body]Position  `json:"positions"`
}

// Position returns the recorded position of the given body and whether the
// chart carries one.
func (c *NatalChart) Position(b Body) (Position, bool) {
	p, ok := c.Positions[b]
	return p, ok
}

// AscendantSign returns the rising sign.
func (c *NatalChart) AscendantSign() Sign {
	return SignOf(c.Ascendant)
}

// HouseOf returns the 1-based whole-sign house of a longitude, counted
// from the ascendant sign.
func (c *NatalChart) HouseOf(longitude float64) int {
	return int(SignOf(longitude).Add(-int(c.AscendantSign())))%12 + 1
}

// Waxing reports whether the Moon is in the bright fortnight (shukla
// paksha), i.e. ahead of the Sun by less than 180 degrees.
func (c *NatalChart) Waxing() bool {
	sun, okS := c.Positions[Sun]
	moon, okM := c.Positions[Moon]
	if !okS || !okM {
		return true
	}
	d := moon.Longitude - sun.Longitude
	for d < 0 {
		d += 360
	}
	for d >= 360 {
		d -= 360
	}
	return d < 180
}
