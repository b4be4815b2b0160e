// Package models defines the shared domain types for the Jyotish engine:
// the nine classical bodies (navagraha), signs, nakshatras, positions, and
// the derived artifact types produced by the computation engines.
package models

// Body identifies one of the nine classical bodies (navagraha) or the
// ascendant pseudo-body. Bodies are fixed identities; they are never
// created or destroyed at runtime, only referenced.
type Body string

const (
	Sun     Body = "Sun"
	Moon    Body = "Moon"
	Mars    Body = "Mars"
	Mercury Body = "Mercury"
	Jupiter Body = "Jupiter"
	Venus   Body = "Venus"
	Saturn  Body = "Saturn"
	Rahu    Body = "Rahu" // north lunar node
	Ketu    Body = "Ketu" // south lunar node

	// Ascendant is a pseudo-body used wherever the lagna participates as a
	// chart point (ashtakavarga contributor, house reckoning).
	Ascendant Body = "Ascendant"
)

// Bodies lists the nine classical bodies in traditional order.
var Bodies = []Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// SevenBodies lists the seven non-node bodies (Sun through Saturn).
var SevenBodies = []Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn}

// IsNode reports whether the body is one of the two lunar nodes.
func (b Body) IsNode() bool {
	return b == Rahu || b == Ketu
}

// Valid reports whether b names one of the nine classical bodies.
func (b Body) Valid() bool {
	for _, x := range Bodies {
		if x == b {
			return true
		}
	}
	return false
}

// NaturalBenefics are the bodies treated as benefic for aspect and yoga
// purposes. The Moon is conditionally benefic (waxing); callers that need
// the paksha-sensitive classification should check elongation themselves.
var NaturalBenefics = map[Body]bool{
	Jupiter: true,
	Venus:   true,
	Mercury: true,
	Moon:    true,
}

// NaturalMalefics are the bodies treated as malefic for aspect purposes.
var NaturalMalefics = map[Body]bool{
	Sun:    true,
	Mars:   true,
	Saturn: true,
	Rahu:   true,
	Ketu:   true,
}
