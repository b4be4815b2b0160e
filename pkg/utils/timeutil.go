package utils

import (
	"math"
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30).
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if tz database is not available
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// unixEpochJD is the Julian Day of the Unix epoch (1970-01-01 00:00 UTC).
const unixEpochJD = 2440587.5

// secondsPerDay is the number of seconds in one Julian day.
const secondsPerDay = 86400.0

// JulianDay converts a time.Time to a Julian Day number.
func JulianDay(t time.Time) float64 {
	sec := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return unixEpochJD + sec/secondsPerDay
}

// TimeFromJD converts a Julian Day number back to a UTC time.Time.
func TimeFromJD(jd float64) time.Time {
	sec := (jd - unixEpochJD) * secondsPerDay
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC()
}

// JDSeconds converts a duration in seconds to Julian days.
func JDSeconds(sec float64) float64 {
	return sec / secondsPerDay
}

// YearsToDuration converts sidereal-practice years (365.25 days) to a
// time.Duration. Dasha arithmetic uses this fixed year length throughout.
func YearsToDuration(years float64) time.Duration {
	return time.Duration(years * 365.25 * secondsPerDay * float64(time.Second))
}

// DurationToYears converts a time.Duration to 365.25-day years.
func DurationToYears(d time.Duration) float64 {
	return d.Seconds() / (365.25 * secondsPerDay)
}
