package models

import "time"

// Placement is a body's slot within one divisional chart.
type Placement struct {
	Body      Body    `json:"body"`
	Sign      Sign    `json:"sign"`
	SignName  string  `json:"sign_name"`
	Longitude float64 `json:"longitude,omitempty"` // D1 longitude; zero for derived charts
	House     int     `json:"house,omitempty"`     // 1-12 whole-sign house; 0 for pure sign charts
	Nakshatra string  `json:"nakshatra,omitempty"`
	Pada      int     `json:"pada,omitempty"`
	Retro     bool    `json:"retrograde,omitempty"`
}

// DivisionalChart is the output of the varga engine for one divisor:
// an ascendant sign plus per-body placements.
type DivisionalChart struct {
	Division   string             `json:"division"` // e.g. "D9"
	Divisor    int                `json:"divisor"`
	Ascendant  Sign               `json:"ascendant"`
	Placements map[Body]Placement `json:"placements"`
}

// DashaDepth identifies a level in the vimshottari period tree.
type DashaDepth string

const (
	Mahadasha       DashaDepth = "mahadasha"
	Antardasha      DashaDepth = "antardasha"
	Pratyantardasha DashaDepth = "pratyantardasha"
)

// DashaPeriod is one node of the vimshottari tree, immutable once built.
type DashaPeriod struct {
	Lord  Body       `json:"lord"`
	Depth DashaDepth `json:"depth"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
}

// DashaChain is the active lord chain at one instant across the three depths.
type DashaChain struct {
	Mahadasha       DashaPeriod `json:"mahadasha"`
	Antardasha      DashaPeriod `json:"antardasha"`
	Pratyantardasha DashaPeriod `json:"pratyantardasha"`
}

// ShadbalaScore is the six-fold strength breakdown for one body, in
// virupas (sixtieths of a rupa).
type ShadbalaScore struct {
	Body       Body    `json:"body"`
	Sthana     float64 `json:"sthana"`     // positional
	Dig        float64 `json:"dig"`        // directional
	Kala       float64 `json:"kala"`       // temporal
	Chesta     float64 `json:"chesta"`     // motional
	Naisargika float64 `json:"naisargika"` // natural
	Drik       float64 `json:"drik"`       // aspectual (signed)
	Total      float64 `json:"total"`
}

// Rupas converts the total from virupas to rupas.
func (s ShadbalaScore) Rupas() float64 {
	return s.Total / 60
}

// AshtakavargaSet is the full bindu output for a chart: one 12-sign array
// per subject body plus the combined sarvashtakavarga.
type AshtakavargaSet struct {
	Tables map[Body][12]int `json:"tables"`
	Sarva  [12]int          `json:"sarvashtakavarga"`
}

// PanchangaKind identifies one of the five calendrical elements.
type PanchangaKind string

const (
	KindTithi     PanchangaKind = "tithi"
	KindNakshatra PanchangaKind = "nakshatra"
	KindYoga      PanchangaKind = "yoga"
	KindKarana    PanchangaKind = "karana"
	KindVara      PanchangaKind = "vara"
)

// PanchangaElement is one calendrical element: its current value, the
// precise instant it ends, and the value that follows.
type PanchangaElement struct {
	Kind   PanchangaKind `json:"kind"`
	Index  int           `json:"index"`
	Name   string        `json:"name"`
	EndsAt time.Time     `json:"ends_at"`
	Next   string        `json:"next"`
	Pada   int           `json:"pada,omitempty"` // nakshatra element only
	Lord   Body          `json:"lord,omitempty"` // vara element only
}

// Panchanga is the element set for one (date, location) query.
type Panchanga struct {
	Date      time.Time        `json:"date"`
	Tithi     PanchangaElement `json:"tithi"`
	Nakshatra PanchangaElement `json:"nakshatra"`
	Yoga      PanchangaElement `json:"yoga"`
	Karana    PanchangaElement `json:"karana"`
	Vara      PanchangaElement `json:"vara"`
}

// YogaFinding is one detected planetary combination.
type YogaFinding struct {
	Name   string `json:"name"`
	Bodies []Body `json:"bodies"`
	Note   string `json:"note,omitempty"`
}
