// Package main is a small CLI that prints the lunar date, solar term,
// four pillars and optional hexagram for a given instant.
//
// Usage:
//
//	bazi -at 2025-08-29T10:30:00Z -cast 3,5,2
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zayrick/liuren-api/internal/calendar"
)

func main() {
	atFlag := flag.String("at", "", "instant in RFC 3339 format (default: now)")
	castFlag := flag.String("cast", "", "three comma-separated numbers to cast a hexagram, e.g. 3,5,2")
	flag.Parse()

	at := time.Now()
	if *atFlag != "" {
		parsed, err := time.Parse(time.RFC3339, *atFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -at value %q: use RFC 3339, e.g. 2025-08-29T10:30:00Z\n", *atFlag)
			os.Exit(1)
		}
		at = parsed
	}

	c := calendar.CivilFromTime(at)

	lunar, err := calendar.ToLunar(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	year, err := calendar.YearPillar(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	month, err := calendar.MonthPillar(c, year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	day := calendar.DayPillar(c)
	hour := calendar.HourPillar(c, day)

	fmt.Printf("公历: %s\n", at.Format("2006-01-02 15:04"))
	fmt.Printf("农历: %s\n", formatLunar(lunar))
	if term := calendar.SolarTermAt(c); term != "" {
		fmt.Printf("节气: %s\n", term)
	}
	fmt.Printf("八字: %s年 %s月 %s日 %s时\n", year, month, day, hour)

	if *castFlag != "" {
		n1, n2, n3, err := parseCast(*castFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -cast value %q: %v\n", *castFlag, err)
			os.Exit(1)
		}
		fmt.Printf("课象: %s\n", calendar.Hexagram(n1, n2, n3))
	}
}

func formatLunar(ld calendar.LunarDate) string {
	leap := ""
	if ld.IsLeapMonth {
		leap = "闰"
	}
	return fmt.Sprintf("%d年%s%d月%d日", ld.Year, leap, ld.Month, ld.Day)
}

func parseCast(s string) (int, int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("need exactly three numbers")
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, 0, 0, fmt.Errorf("parse %q: %w", p, err)
		}
		if n < 1 {
			return 0, 0, 0, fmt.Errorf("numbers must be positive, got %d", n)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}
