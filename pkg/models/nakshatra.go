package models

// Nakshatra is a lunar mansion index, 0 = Ashwini through 26 = Revati.
// Each nakshatra spans exactly 13°20′ (360/27 degrees).
type Nakshatra int

// NakshatraSpan is the angular width of one nakshatra in degrees (13°20′).
const NakshatraSpan = 360.0 / 27.0

// PadaSpan is the angular width of one nakshatra quarter (3°20′).
const PadaSpan = NakshatraSpan / 4

var nakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha",
	"Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana",
	"Dhanishta", "Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada",
	"Revati",
}

// NakshatraLordCycle is the fixed nine-body sequence that rules the 27
// nakshatras (three full cycles) and orders the vimshottari dasha.
var NakshatraLordCycle = [9]Body{
	Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury,
}

// String returns the nakshatra's name, or "?" for an out-of-range index.
func (n Nakshatra) String() string {
	if n < 0 || n > 26 {
		return "?"
	}
	return nakshatraNames[n]
}

// Lord returns the nakshatra's ruling body from the fixed nine-body cycle.
func (n Nakshatra) Lord() Body {
	return NakshatraLordCycle[(((int(n)%27)+27)%27)%9]
}

// NakshatraOf returns the nakshatra containing the given longitude.
func NakshatraOf(longitude float64) Nakshatra {
	l := longitude
	for l < 0 {
		l += 360
	}
	for l >= 360 {
		l -= 360
	}
	return Nakshatra(int(l / NakshatraSpan))
}

// PadaOf returns the 1-based quarter (pada) of the nakshatra containing
// the given longitude.
func PadaOf(longitude float64) int {
	l := longitude
	for l < 0 {
		l += 360
	}
	for l >= 360 {
		l -= 360
	}
	inNak := l - float64(int(l/NakshatraSpan))*NakshatraSpan
	return int(inNak/PadaSpan) + 1
}
