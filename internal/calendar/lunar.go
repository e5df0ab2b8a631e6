package calendar

import (
	"errors"
	"fmt"
)

// ErrUnsupportedDateRange is returned for any instant whose lunar lookup
// falls outside the embedded 1901-2050 table. The conversion never guesses
// a day count for a year it has no data for.
var ErrUnsupportedDateRange = errors.New("date outside supported lunar table range (1901-2050)")

const (
	// lunarTableStart and lunarTableEnd bound the embedded month-length data.
	lunarTableStart = 1901
	lunarTableEnd   = 2050

	// epochJDN is the Julian Day Number of 1901-01-01, the Gregorian epoch
	// the day-offset walk starts from.
	epochJDN = 2415386

	// newYearOffset is the gap in days between 1901-01-01 and the first
	// supported lunar new year, 1901-02-19.
	newYearOffset = 49
)

// LunarDate is a date in the traditional lunisolar calendar. IsLeapMonth
// marks the intercalary month that repeats Month's number in a leap year.
type LunarDate struct {
	Year        int  `json:"year"`
	Month       int  `json:"month"` // 1-12
	Day         int  `json:"day"`
	IsLeapMonth bool `json:"is_leap_month"`
}

// lunarMonthDayBits packs the month lengths for years 1901-2050, one entry
// per year. Months are laid out high-bit first in calendar sequence with a
// leap month inserted directly after its ordinary month; a set bit means
// 30 days, clear means 29. Generated and validated against published new
// year dates by scripts/gen_lunar_table.py.
var lunarMonthDayBits = [150]uint16{
	0x4ae0, 0xa570, 0x5268, 0xd260, 0xd950, 0x6aa8, 0x56a0, 0x9ad0, 0x4ae8, 0x4ae0, // 1901-1910
	0xa4d8, 0xa4d0, 0xd250, 0xd528, 0xb540, 0xd6a0, 0x96d0, 0x95b0, 0x49b8, 0x4970, // 1911-1920
	0xa4b0, 0xb258, 0x6a50, 0x6d40, 0xada8, 0x2b60, 0x9570, 0x4978, 0x4970, 0x64b0, // 1921-1930
	0xd4a0, 0xea50, 0x6b48, 0x5ad0, 0x2b60, 0x9370, 0x92e0, 0xc968, 0xc950, 0xd4a0, // 1931-1940
	0xda50, 0xb550, 0x56a0, 0xaad8, 0x25d0, 0x92d0, 0xc958, 0xa950, 0xb4a8, 0x6ca0, // 1941-1950
	0xb550, 0x55a8, 0x4da0, 0xa5b0, 0x52b8, 0x52b0, 0xa950, 0xe950, 0x6aa0, 0xad50, // 1951-1960
	0xab50, 0x4b60, 0xa570, 0xa570, 0x5260, 0xe930, 0xd950, 0x5aa8, 0x56a0, 0x96d0, // 1961-1970
	0x4ae8, 0x4ad0, 0xa4d0, 0xd268, 0xd250, 0xd528, 0xb540, 0xb5a0, 0x96d0, 0x95b0, // 1971-1980
	0x49b0, 0xa4b8, 0xa4b0, 0xb258, 0x6a50, 0x6d40, 0xada0, 0xab60, 0x9570, 0x4978, // 1981-1990
	0x4970, 0x64b0, 0x6a50, 0xea50, 0x6b28, 0x55c0, 0xab60, 0x9368, 0x92e0, 0xc960, // 1991-2000
	0xd4a8, 0xd4a0, 0xda50, 0x5aa8, 0x56a0, 0xaad8, 0x25d0, 0x92d0, 0xc958, 0xa950, // 2001-2010
	0xb4a0, 0xb550, 0xad50, 0x55a8, 0x4ba0, 0xa5b0, 0x52b8, 0x52b0, 0xa930, 0x74a8, // 2011-2020
	0x6aa0, 0xad50, 0x4da8, 0x4b60, 0xa570, 0xa4e0, 0xd260, 0xe930, 0xd530, 0x5aa0, // 2021-2030
	0x6b50, 0x96d0, 0x4ae8, 0x4ad0, 0xa4d0, 0xd258, 0xd250, 0xd520, 0xdaa0, 0xb5a0, // 2031-2040
	0x56d0, 0x4ad8, 0x49b0, 0xa4b8, 0xa4b0, 0xaa50, 0xb528, 0x6d20, 0xada0, 0x55b0, // 2041-2050
}

// lunarLeapMonths packs the intercalary month numbers for 1901-2050, two
// years per byte with the earlier year in the high nibble. Zero means no
// leap month that year.
var lunarLeapMonths = [75]uint8{
	0x00, 0x50, 0x04, 0x00, 0x20, 0x60, 0x05, 0x00, 0x20, 0x70, 0x05, 0x00, 0x40, 0x02, 0x06, // 1901-1930
	0x00, 0x50, 0x03, 0x07, 0x00, 0x60, 0x04, 0x00, 0x20, 0x70, 0x05, 0x00, 0x30, 0x80, 0x06, // 1931-1960
	0x00, 0x40, 0x03, 0x07, 0x00, 0x50, 0x04, 0x08, 0x00, 0x60, 0x04, 0x0a, 0x00, 0x60, 0x05, // 1961-1990
	0x00, 0x30, 0x80, 0x05, 0x00, 0x40, 0x02, 0x07, 0x00, 0x50, 0x04, 0x09, 0x00, 0x60, 0x04, // 1991-2020
	0x00, 0x20, 0x60, 0x05, 0x00, 0x30, 0xb0, 0x06, 0x00, 0x50, 0x02, 0x07, 0x00, 0x50, 0x03, // 2021-2050
}

// LeapMonth returns the intercalary month number for a lunar year, or zero
// when the year has none. Years outside the table report zero.
func LeapMonth(year int) int {
	if year < lunarTableStart || year > lunarTableEnd {
		return 0
	}
	b := lunarLeapMonths[(year-lunarTableStart)/2]
	if (year-lunarTableStart)%2 == 0 {
		return int(b >> 4)
	}
	return int(b & 0x0f)
}

// lunarMonthDays returns the length (29 or 30) of an ordinary lunar month.
// The bit for month m sits at position 16-m, shifted one further down once
// the month follows that year's leap month.
func lunarMonthDays(year, month int) (int, error) {
	if year < lunarTableStart || year > lunarTableEnd {
		return 0, fmt.Errorf("lunar month length for %d: %w", year, ErrUnsupportedDateRange)
	}
	bit := uint(16 - month)
	if lm := LeapMonth(year); lm > 0 && month > lm {
		bit--
	}
	if lunarMonthDayBits[year-lunarTableStart]&(1<<bit) != 0 {
		return 30, nil
	}
	return 29, nil
}

// lunarLeapMonthDays returns the length of a year's leap month, or zero
// when the year has none. The leap month's bit sits one position below its
// ordinary month's.
func lunarLeapMonthDays(year int) int {
	lm := LeapMonth(year)
	if lm == 0 {
		return 0
	}
	bit := uint(16 - lm - 1)
	if lunarMonthDayBits[year-lunarTableStart]&(1<<bit) != 0 {
		return 30
	}
	return 29
}

// lunarYearDays returns the total day count of a lunar year, including the
// leap month when one exists.
func lunarYearDays(year int) (int, error) {
	total := 0
	for month := 1; month <= 12; month++ {
		days, err := lunarMonthDays(year, month)
		if err != nil {
			return 0, err
		}
		total += days
	}
	return total + lunarLeapMonthDays(year), nil
}

// ToLunar converts a civil date to its lunisolar calendar date.
//
// The conversion takes the day offset from 1901-01-01 and walks forward
// year by year, then month by month, consuming day counts from the packed
// table until the remainder falls inside a month. Dates before the first
// supported lunar new year (1901-02-19) land in month 11 or 12 of the
// preceding lunar year, which the epoch offsets resolve directly.
func ToLunar(c CivilInstant) (LunarDate, error) {
	if c.Year < lunarTableStart || c.Year > lunarTableEnd {
		return LunarDate{}, fmt.Errorf("lunar conversion for year %d: %w", c.Year, ErrUnsupportedDateRange)
	}

	offset := c.JulianDayNumber() - epochJDN
	if offset < 19 {
		// 1901-01-01 fell on day 11 of month 11 of the preceding lunar year.
		return LunarDate{Year: lunarTableStart - 1, Month: 11, Day: offset + 11}, nil
	}
	if offset < newYearOffset {
		return LunarDate{Year: lunarTableStart - 1, Month: 12, Day: offset - 18}, nil
	}
	offset -= newYearOffset

	year := lunarTableStart
	for {
		total, err := lunarYearDays(year)
		if err != nil {
			return LunarDate{}, err
		}
		if offset < total {
			break
		}
		offset -= total
		year++
	}

	leap := LeapMonth(year)
	for month := 1; month <= 12; month++ {
		days, err := lunarMonthDays(year, month)
		if err != nil {
			return LunarDate{}, err
		}
		if offset < days {
			return LunarDate{Year: year, Month: month, Day: offset + 1}, nil
		}
		offset -= days

		if month == leap {
			leapDays := lunarLeapMonthDays(year)
			if offset < leapDays {
				return LunarDate{Year: year, Month: month, Day: offset + 1, IsLeapMonth: true}, nil
			}
			offset -= leapDays
		}
	}

	return LunarDate{}, fmt.Errorf("lunar conversion overran year %d: %w", year, ErrUnsupportedDateRange)
}
