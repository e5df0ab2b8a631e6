package calendar

import "math"

// The 24 solar terms in calendar order within a Gregorian year, starting
// from small cold in early January.
var solarTermNames = [24]string{
	"小寒", "大寒", "立春", "雨水", "惊蛰", "春分",
	"清明", "谷雨", "立夏", "小满", "芒种", "夏至",
	"小暑", "大暑", "立秋", "处暑", "白露", "秋分",
	"寒露", "霜降", "立冬", "小雪", "大雪", "冬至",
}

const (
	// solarTermBaseJD is the Julian Day of the 1900 small cold term,
	// 1900-01-06 02:05, the epoch all term boundaries are offset from.
	solarTermBaseJD = 2415025.5 + 125.0/1440.0

	// tropicalYearMinutes is the mean tropical year length in minutes.
	tropicalYearMinutes = 525948.76245
)

// solarTermMinutes holds each term's accumulated offset in minutes from the
// small cold epoch within one tropical year.
var solarTermMinutes = [24]int{
	0, 21208, 42467, 63836, 85337, 107014,
	128867, 150921, 173149, 195551, 218072, 240693,
	263343, 285989, 308563, 331033, 353350, 375494,
	397447, 419210, 440795, 462224, 483532, 504758,
}

// termLiChun is the index of the spring-commences term, which both starts
// the first sexagenary month and triggers the year-stem roll in the month
// pillar when the lunar year has not yet turned over.
const termLiChun = 2

// termJulianDay returns the fractional Julian Day at which a term occurs in
// a given Gregorian year.
func termJulianDay(year, term int) float64 {
	return solarTermBaseJD + (tropicalYearMinutes*float64(year-1900)+float64(solarTermMinutes[term]))/1440.0
}

// termOnDay reports which term, if any, falls on the civil day c. The
// second result is false for the roughly 337 days a year with no term.
func termOnDay(c CivilInstant) (int, bool) {
	jdn := float64(c.JulianDayNumber())
	for term := 0; term < 24; term++ {
		if math.Abs(termJulianDay(c.Year, term)-jdn) < 0.5 {
			return term, true
		}
	}
	return 0, false
}

// SolarTermAt returns the name of the solar term falling on the instant's
// calendar day, or the empty string when the day has none.
func SolarTermAt(c CivilInstant) string {
	if term, ok := termOnDay(c); ok {
		return solarTermNames[term]
	}
	return ""
}

// sexagenaryMonth maps a boundary (jie) term index to the Gan-Zhi month it
// begins: spring-commences starts month 1, and small cold, the last
// boundary before the next spring, starts month 12.
func sexagenaryMonth(term int) int {
	if term == 0 {
		return 12
	}
	return term / 2
}

// recentBoundaryTerm finds the governing boundary term for an instant: the
// term on the instant's own day when one of the 12 jie terms falls there,
// otherwise the most recent one within the previous 40 days. Boundary terms
// are at most ~16 days apart, so the scan always terminates early.
func recentBoundaryTerm(c CivilInstant) (term, month int, ok bool) {
	jdn := c.JulianDayNumber()
	for back := 0; back <= 40; back++ {
		day := civilFromJDN(jdn - back)
		if t, found := termOnDay(day); found && t%2 == 0 {
			return t, sexagenaryMonth(t), true
		}
	}
	return 0, 0, false
}
