package calendar

import "fmt"

// The ten Heavenly Stems and twelve Earthly Branches whose pairing forms
// the sexagenary cycle.
var (
	heavenlyStems   = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	earthlyBranches = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
)

// Pillar is one Gan-Zhi label: a stem index in [0,10) paired with a branch
// index in [0,12).
type Pillar struct {
	Stem   int
	Branch int
}

// String renders the pillar as its two-character stem-branch label.
func (p Pillar) String() string {
	return heavenlyStems[p.Stem] + earthlyBranches[p.Branch]
}

// YearPillar computes the Gan-Zhi label of the instant's lunar year. The
// table offset of 4 calibrates the cycle so that 1984 maps to 甲子.
func YearPillar(c CivilInstant) (Pillar, error) {
	ld, err := ToLunar(c)
	if err != nil {
		return Pillar{}, err
	}
	n := ld.Year - 4
	return Pillar{Stem: mod(n, 10), Branch: mod(n, 12)}, nil
}

// MonthPillar computes the Gan-Zhi label of the sexagenary month the
// instant falls in. Sexagenary months are demarcated by the 12 boundary
// solar terms, not lunar months: the governing term is the one on the
// instant's own day or the most recent one before it.
//
// The year pillar is passed in explicitly; when the governing term is
// spring-commences while the lunar calendar still reads month 12, the new
// solar year has begun ahead of the lunar one, and the month stem derives
// from the year stem advanced by one. The caller's pillar is not modified.
func MonthPillar(c CivilInstant, year Pillar) (Pillar, error) {
	ld, err := ToLunar(c)
	if err != nil {
		return Pillar{}, err
	}

	term, month, ok := recentBoundaryTerm(c)
	if !ok {
		return Pillar{}, fmt.Errorf("no boundary solar term within 40 days of %04d-%02d-%02d: %w",
			c.Year, c.Month, c.Day, ErrUnsupportedDateRange)
	}

	yearStem := year.Stem
	if term == termLiChun && ld.Month == 12 {
		yearStem = mod(yearStem+1, 10)
	}

	return Pillar{
		Stem:   mod(yearStem*2+month+1, 10),
		Branch: mod(month+1, 12), // month 1 is the 寅 month
	}, nil
}

// DayPillar computes the Gan-Zhi label of the civil day from the classical
// century/year/month/day congruence. January and February count as months
// 13 and 14 of the preceding year; the trailing -1 in both congruences is
// a deliberate calibration constant and must not be folded away.
func DayPillar(c CivilInstant) Pillar {
	century := c.Year / 100
	y := c.Year % 100
	m := c.Month
	if m <= 2 {
		m += 12
		y--
	}
	parity := 0
	if m%2 == 0 {
		parity = 6
	}
	d := c.Day

	common := floorDiv(century, 4) + 5*y + floorDiv(y, 4) + 3*(m+1)/5 + d
	stem := mod(4*century+common-3-1, 10)
	branch := mod(8*century+common+7+parity-1, 12)
	return Pillar{Stem: stem, Branch: branch}
}

// HourPillar computes the Gan-Zhi label of the two-hour period the instant
// falls in. The branch follows directly from the hour; the stem follows
// from the day stem by the five-rats cycle. The +0.1 guards the division
// against floating-point error at exact even hours.
func HourPillar(c CivilInstant, day Pillar) Pillar {
	branch := mod(int(float64(c.Hour)/2.0+0.1), 12)

	remainder := (day.Stem + 1) % 5
	if remainder == 0 {
		remainder = 5
	}
	n := mod((remainder*2-1)+branch, 10)
	if n == 0 {
		n = 10
	}
	return Pillar{Stem: n - 1, Branch: branch}
}

// FullBazi renders the four pillars of an instant as the standard
// "year month day hour" eight-character string.
func FullBazi(c CivilInstant) (string, error) {
	yp, err := YearPillar(c)
	if err != nil {
		return "", err
	}
	mp, err := MonthPillar(c, yp)
	if err != nil {
		return "", err
	}
	dp := DayPillar(c)
	hp := HourPillar(c, dp)
	return fmt.Sprintf("%s年 %s月 %s日 %s时", yp, mp, dp, hp), nil
}
