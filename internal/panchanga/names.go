package panchanga

import "github.com/seenimoa/jyotish/pkg/models"

// tithiNames lists the 30 tithis: the bright fortnight through Purnima,
// then the dark fortnight through Amavasya.
var tithiNames = [30]string{
	"Shukla Pratipada", "Shukla Dwitiya", "Shukla Tritiya", "Shukla Chaturthi",
	"Shukla Panchami", "Shukla Shashthi", "Shukla Saptami", "Shukla Ashtami",
	"Shukla Navami", "Shukla Dashami", "Shukla Ekadashi", "Shukla Dwadashi",
	"Shukla Trayodashi", "Shukla Chaturdashi", "Purnima",
	"Krishna Pratipada", "Krishna Dwitiya", "Krishna Tritiya", "Krishna Chaturthi",
	"Krishna Panchami", "Krishna Shashthi", "Krishna Saptami", "Krishna Ashtami",
	"Krishna Navami", "Krishna Dashami", "Krishna Ekadashi", "Krishna Dwadashi",
	"Krishna Trayodashi", "Krishna Chaturdashi", "Amavasya",
}

// yogaNames lists the 27 nitya yogas.
var yogaNames = [27]string{
	"Vishkambha", "Priti", "Ayushman", "Saubhagya", "Shobhana", "Atiganda",
	"Sukarma", "Dhriti", "Shula", "Ganda", "Vriddhi", "Dhruva", "Vyaghata",
	"Harshana", "Vajra", "Siddhi", "Vyatipata", "Variyana", "Parigha",
	"Shiva", "Siddha", "Sadhya", "Shubha", "Shukla", "Brahma", "Indra",
	"Vaidhriti",
}

// karanaCycle is the repeating seven-karana sequence; the four fixed
// karanas sit at the ends of the 60-unit month.
var karanaCycle = [7]string{
	"Bava", "Balava", "Kaulava", "Taitila", "Gara", "Vanija", "Vishti",
}

// varaNames and varaLords map weekday index (Sunday = 0) to name and lord.
var varaNames = [7]string{
	"Ravivara", "Somavara", "Mangalavara", "Budhavara",
	"Guruvara", "Shukravara", "Shanivara",
}

var varaLords = [7]models.Body{
	models.Sun, models.Moon, models.Mars, models.Mercury,
	models.Jupiter, models.Venus, models.Saturn,
}

// karanaName resolves a half-tithi index (0–59) to its karana. Index 0 is
// Kimstughna, 1–56 cycle through the seven movable karanas, and the last
// three are Shakuni, Chatushpada, and Naga.
func karanaName(idx int) string {
	switch {
	case idx == 0:
		return "Kimstughna"
	case idx <= 56:
		return karanaCycle[(idx-1)%7]
	case idx == 57:
		return "Shakuni"
	case idx == 58:
		return "Chatushpada"
	default:
		return "Naga"
	}
}
