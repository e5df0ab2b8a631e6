// Package calendar implements the traditional Chinese lunisolar calendar
// arithmetic behind the divination service: Gregorian-to-lunar conversion,
// solar term (jieqi) location, the four sexagenary (Gan-Zhi) pillars, and
// the small six-ren hexagram lookup.
//
// Everything in this package is a pure function over immutable inputs and
// read-only embedded tables, so any number of requests may run concurrently
// without coordination.
package calendar

import "time"

// CivilInstant is a wall-clock date-time, already resolved to one fixed
// civil timezone by the caller. The package performs no timezone inference
// of its own.
type CivilInstant struct {
	Year   int
	Month  int // 1-12
	Day    int
	Hour   int // 0-23
	Minute int
	Second int
}

// CivilFromTime builds a CivilInstant from the wall-clock fields of t.
// The location carried by t is ignored beyond reading its clock fields.
func CivilFromTime(t time.Time) CivilInstant {
	return CivilInstant{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// JulianDayNumber returns the noon-based integer Julian Day Number of the
// instant's calendar date. The civil day spans JDN-0.5 to JDN+0.5.
func (c CivilInstant) JulianDayNumber() int {
	a := (14 - c.Month) / 12
	y := c.Year + 4800 - a
	m := c.Month + 12*a - 3
	return c.Day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// civilFromJDN inverts JulianDayNumber, producing the calendar date for a
// noon-based integer JDN. Time-of-day fields are zero.
func civilFromJDN(jdn int) CivilInstant {
	l := jdn + 68569
	n := 4 * l / 146097
	l = l - (146097*n+3)/4
	i := 4000 * (l + 1) / 1461001
	l = l - 1461*i/4 + 31
	j := 80 * l / 2447
	k := l - 2447*j/80
	l = j / 11
	j = j + 2 - 12*l
	i = 100*(n-49) + i + l
	return CivilInstant{Year: i, Month: j, Day: k}
}

// mod normalizes n into [0, m) even when n is negative. Go's native %
// returns negative results for negative operands, which would index out
// of the stem and branch tables.
func mod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}

// floorDiv divides rounding toward negative infinity. The day pillar
// formula needs floor semantics for the reduced-year terms, which go
// negative in January and February of century years.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
