package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearPillar(t *testing.T) {
	tests := []struct {
		name string
		in   CivilInstant
		want string
	}{
		{"reference year 1984", civil(1984, 2, 2, 0), "甲子"},
		{"before new year still prior lunar year", civil(1984, 2, 1, 0), "癸亥"},
		{"lunar year of the epoch days", civil(1901, 1, 15, 0), "庚子"},
		{"2025 snake year", civil(2025, 8, 29, 0), "乙巳"},
		{"spring day before lunar new year", civil(2024, 2, 4, 0), "癸卯"},
		{"lunar new year 2024", civil(2024, 2, 10, 0), "甲辰"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := YearPillar(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := YearPillar(civil(2051, 3, 1, 0))
	assert.ErrorIs(t, err, ErrUnsupportedDateRange)
}

func TestMonthPillar(t *testing.T) {
	tests := []struct {
		name string
		in   CivilInstant
		want string
	}{
		{"after autumn 2025", civil(2025, 8, 29, 0), "甲申"},
		{"first month after new year 2024", civil(2024, 2, 10, 0), "丙寅"},
		{"eleventh month at millennium eve", civil(2000, 1, 1, 0), "丙子"},
		{"twelfth month under small cold", civil(2024, 1, 10, 0), "乙丑"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yp, err := YearPillar(tt.in)
			require.NoError(t, err)
			mp, err := MonthPillar(tt.in, yp)
			require.NoError(t, err)
			assert.Equal(t, tt.want, mp.String())
		})
	}
}

func TestMonthPillarYearRollOnSpring(t *testing.T) {
	// 立春 2024 falls on Feb 4, six days before the lunar new year, so the
	// lunar calendar still reads month 12 of the 癸卯 year. The month stem
	// must derive from the advanced year stem 甲 while the year pillar
	// itself is unchanged.
	in := civil(2024, 2, 4, 12)

	ld, err := ToLunar(in)
	require.NoError(t, err)
	require.Equal(t, 12, ld.Month)

	yp, err := YearPillar(in)
	require.NoError(t, err)
	assert.Equal(t, "癸卯", yp.String())

	mp, err := MonthPillar(in, yp)
	require.NoError(t, err)
	assert.Equal(t, "丙寅", mp.String())

	// Once the lunar year has rolled, the same month stem derives from the
	// new year pillar without any adjustment. Both paths must agree.
	after := civil(2024, 2, 10, 12)
	ypAfter, err := YearPillar(after)
	require.NoError(t, err)
	assert.Equal(t, "甲辰", ypAfter.String())

	mpAfter, err := MonthPillar(after, ypAfter)
	require.NoError(t, err)
	assert.Equal(t, mp.String(), mpAfter.String())
}

func TestDayPillar(t *testing.T) {
	tests := []struct {
		name string
		in   CivilInstant
		want string
	}{
		{"known jiazi day", civil(1949, 10, 1, 0), "甲子"},
		{"millennium day", civil(2000, 1, 1, 0), "戊午"},
		{"new year 1984", civil(1984, 2, 2, 0), "丙寅"},
		{"olympic opening 2008", civil(2008, 8, 8, 0), "庚辰"},
		{"lunar new year 2024", civil(2024, 2, 10, 0), "甲辰"},
		{"epoch day", civil(1901, 1, 1, 0), "己卯"},
		{"late august 2025", civil(2025, 8, 29, 0), "庚午"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayPillar(tt.in).String())
		})
	}
}

func TestDayPillarSixtyDayCycle(t *testing.T) {
	// Consecutive days advance both indices by exactly one step.
	start := civil(1984, 2, 2, 0).JulianDayNumber()
	prev := DayPillar(civilFromJDN(start))
	for offset := 1; offset <= 120; offset++ {
		cur := DayPillar(civilFromJDN(start + offset))
		assert.Equal(t, mod(prev.Stem+1, 10), cur.Stem)
		assert.Equal(t, mod(prev.Branch+1, 12), cur.Branch)
		prev = cur
	}
}

func TestHourPillar(t *testing.T) {
	jiazi := Pillar{Stem: 0, Branch: 0}  // 甲子 day
	gengwu := Pillar{Stem: 6, Branch: 6} // 庚午 day

	tests := []struct {
		name string
		in   CivilInstant
		day  Pillar
		want string
	}{
		{"midnight of a jia day", civil(1949, 10, 1, 0), jiazi, "甲子"},
		{"late evening of a jia day", civil(1949, 10, 1, 23), jiazi, "乙亥"},
		{"noon of a jia day", civil(1949, 10, 1, 12), jiazi, "庚午"},
		{"mid-morning of a geng day", civil(2025, 8, 29, 10), gengwu, "辛巳"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HourPillar(tt.in, tt.day).String())
		})
	}
}

func TestPillarIndexRanges(t *testing.T) {
	// Sweep the supported window at odd strides and hours; every pillar
	// index must be inside [0,10) and [0,12) with no negatives leaking
	// through the modular arithmetic.
	start := civil(1901, 1, 1, 0).JulianDayNumber()
	end := civil(2050, 12, 31, 0).JulianDayNumber()

	hour := 0
	for jdn := start; jdn <= end; jdn += 53 {
		c := civilFromJDN(jdn)
		c.Hour = hour
		hour = (hour + 7) % 24

		yp, err := YearPillar(c)
		require.NoError(t, err)
		mp, err := MonthPillar(c, yp)
		require.NoError(t, err)
		dp := DayPillar(c)
		hp := HourPillar(c, dp)

		for _, p := range []Pillar{yp, mp, dp, hp} {
			assert.GreaterOrEqual(t, p.Stem, 0)
			assert.Less(t, p.Stem, 10)
			assert.GreaterOrEqual(t, p.Branch, 0)
			assert.Less(t, p.Branch, 12)
		}
	}
}

func TestFullBazi(t *testing.T) {
	got, err := FullBazi(civil(2025, 8, 29, 10))
	require.NoError(t, err)
	assert.Equal(t, "乙巳年 甲申月 庚午日 辛巳时", got)

	got, err = FullBazi(civil(1984, 2, 2, 0))
	require.NoError(t, err)
	assert.Equal(t, "甲子年 丁丑月 丙寅日 戊子时", got)

	_, err = FullBazi(civil(1899, 5, 1, 0))
	assert.ErrorIs(t, err, ErrUnsupportedDateRange)
}
