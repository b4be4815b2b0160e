package models

// Sign is a zodiac sign (rashi) index, 0 = Aries through 11 = Pisces.
// Each sign spans exactly 30 degrees of sidereal longitude.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// SignSpan is the angular width of one sign in degrees.
const SignSpan = 30.0

// Element is a sign's classical element (tattva).
type Element string

const (
	Fire  Element = "fire"
	Earth Element = "earth"
	Air   Element = "air"
	Water Element = "water"
)

// Quality is a sign's modality (movable, fixed, or dual).
type Quality string

const (
	Movable Quality = "movable"
	Fixed   Quality = "fixed"
	Dual    Quality = "dual"
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// signLords maps each sign to its ruling body in classical order.
var signLords = [12]Body{
	Mars, Venus, Mercury, Moon, Sun, Mercury,
	Venus, Mars, Jupiter, Saturn, Saturn, Jupiter,
}

// String returns the sign's English name, or "?" for an out-of-range index.
func (s Sign) String() string {
	if s < 0 || s > 11 {
		return "?"
	}
	return signNames[s]
}

// Element returns the sign's element. Elements repeat every four signs
// starting from fire at Aries.
func (s Sign) Element() Element {
	switch s.norm() % 4 {
	case 0:
		return Fire
	case 1:
		return Earth
	case 2:
		return Air
	default:
		return Water
	}
}

// Quality returns the sign's modality. Modalities repeat every three signs
// starting from movable at Aries.
func (s Sign) Quality() Quality {
	switch s.norm() % 3 {
	case 0:
		return Movable
	case 1:
		return Fixed
	default:
		return Dual
	}
}

// Lord returns the sign's ruling body.
func (s Sign) Lord() Body {
	return signLords[s.norm()]
}

// Odd reports whether the sign is odd counted 1-based from Aries (Aries,
// Gemini, Leo, ...), i.e. masculine in hora reckoning.
func (s Sign) Odd() bool {
	return s.norm()%2 == 0
}

// Add returns the sign n places forward, wrapping modulo 12. Negative n
// counts backward.
func (s Sign) Add(n int) Sign {
	return Sign((((int(s) + n) % 12) + 12) % 12)
}

func (s Sign) norm() int {
	return ((int(s) % 12) + 12) % 12
}

// SignOf returns the sign containing the given longitude.
func SignOf(longitude float64) Sign {
	l := longitude
	for l < 0 {
		l += 360
	}
	for l >= 360 {
		l -= 360
	}
	return Sign(int(l / SignSpan))
}
