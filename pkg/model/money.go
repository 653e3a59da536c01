package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMinor renders an amount in minor units (paise, cents) as a two decimal string
func FormatMinor(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

// ToMinor converts a major unit amount to minor units, rounding to the nearest unit
func ToMinor(major float64) int64 {
	return int64(math.Round(major * 100))
}

// ParseMajor parses a decimal string such as "24999.50" into minor units
func ParseMajor(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimals", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return ToMinor(f), nil
}
