package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func civil(year, month, day, hour int) CivilInstant {
	return CivilInstant{Year: year, Month: month, Day: day, Hour: hour}
}

func TestToLunar(t *testing.T) {
	tests := []struct {
		name string
		in   CivilInstant
		want LunarDate
	}{
		{"epoch day", civil(1901, 1, 1, 0), LunarDate{Year: 1900, Month: 11, Day: 11}},
		{"last day of preceding month 11", civil(1901, 1, 19, 0), LunarDate{Year: 1900, Month: 11, Day: 29}},
		{"first day of preceding month 12", civil(1901, 1, 20, 0), LunarDate{Year: 1900, Month: 12, Day: 1}},
		{"eve of first supported new year", civil(1901, 2, 18, 0), LunarDate{Year: 1900, Month: 12, Day: 30}},
		{"first supported new year", civil(1901, 2, 19, 0), LunarDate{Year: 1901, Month: 1, Day: 1}},
		{"new year 1984", civil(1984, 2, 2, 0), LunarDate{Year: 1984, Month: 1, Day: 1}},
		{"end of ordinary month before leap", civil(2023, 3, 21, 0), LunarDate{Year: 2023, Month: 2, Day: 30}},
		{"first day of leap month 2", civil(2023, 3, 22, 0), LunarDate{Year: 2023, Month: 2, Day: 1, IsLeapMonth: true}},
		{"last day of leap month 2", civil(2023, 4, 19, 0), LunarDate{Year: 2023, Month: 2, Day: 29, IsLeapMonth: true}},
		{"month after leap month", civil(2023, 4, 20, 0), LunarDate{Year: 2023, Month: 3, Day: 1}},
		{"first day of leap month 6", civil(2025, 7, 25, 0), LunarDate{Year: 2025, Month: 6, Day: 1, IsLeapMonth: true}},
		{"mid-autumn 2024", civil(2024, 9, 17, 0), LunarDate{Year: 2024, Month: 8, Day: 15}},
		{"year straddle", civil(2000, 1, 1, 0), LunarDate{Year: 1999, Month: 11, Day: 25}},
		{"last supported day", civil(2050, 12, 31, 0), LunarDate{Year: 2050, Month: 11, Day: 18}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToLunar(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToLunarUnsupportedYears(t *testing.T) {
	for _, in := range []CivilInstant{
		civil(1900, 12, 31, 0),
		civil(1850, 6, 1, 0),
		civil(2051, 1, 1, 0),
		civil(2100, 1, 1, 0),
	} {
		_, err := ToLunar(in)
		require.ErrorIs(t, err, ErrUnsupportedDateRange, "year %d", in.Year)
	}
}

func TestToLunarRangeSweep(t *testing.T) {
	// Walk the whole supported window in 37-day strides; every conversion
	// must succeed and stay inside the documented field ranges.
	start := civil(1901, 1, 1, 0).JulianDayNumber()
	end := civil(2050, 12, 31, 0).JulianDayNumber()

	for jdn := start; jdn <= end; jdn += 37 {
		c := civilFromJDN(jdn)
		ld, err := ToLunar(c)
		require.NoError(t, err, "date %04d-%02d-%02d", c.Year, c.Month, c.Day)
		assert.GreaterOrEqual(t, ld.Month, 1)
		assert.LessOrEqual(t, ld.Month, 12)
		assert.GreaterOrEqual(t, ld.Day, 1)
		assert.LessOrEqual(t, ld.Day, 30)
		if ld.IsLeapMonth {
			assert.Equal(t, LeapMonth(ld.Year), ld.Month)
		}
	}
}

func TestLeapMonth(t *testing.T) {
	tests := []struct {
		year int
		want int
	}{
		{1901, 0}, {1903, 5}, {1984, 10}, {2004, 2},
		{2023, 2}, {2025, 6}, {2033, 11}, {2050, 3},
		{1900, 0}, {2051, 0}, // out of table: reported as no leap month
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LeapMonth(tt.year), "year %d", tt.year)
	}
}

func TestLunarYearDays(t *testing.T) {
	// Every supported year must total a plausible lunar year length.
	for year := 1901; year <= 2050; year++ {
		total, err := lunarYearDays(year)
		require.NoError(t, err)
		if LeapMonth(year) > 0 {
			assert.InDelta(t, 384, total, 1, "leap year %d", year)
		} else {
			assert.InDelta(t, 354, total, 1, "common year %d", year)
		}
	}

	_, err := lunarYearDays(2051)
	assert.ErrorIs(t, err, ErrUnsupportedDateRange)
}

func TestJulianDayNumberRoundTrip(t *testing.T) {
	assert.Equal(t, 2451545, civil(2000, 1, 1, 0).JulianDayNumber())
	assert.Equal(t, 2415386, civil(1901, 1, 1, 0).JulianDayNumber())

	for _, c := range []CivilInstant{
		civil(1901, 1, 1, 0), civil(1984, 2, 2, 0), civil(2000, 2, 29, 0), civil(2050, 12, 31, 0),
	} {
		got := civilFromJDN(c.JulianDayNumber())
		assert.Equal(t, c, got)
	}
}
