package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatPence renders an amount of whole pence as pounds, e.g. 2250 -> "£22.50".
func FormatPence(pence int64) string {
	sign := ""
	if pence < 0 {
		sign = "-"
		pence = -pence
	}
	return fmt.Sprintf("%s£%d.%02d", sign, pence/100, pence%100)
}

// FormatMiles keeps consistent 2-decimal formatting for mileage fields.
func FormatMiles(miles float64) string {
	return fmt.Sprintf("%.2f", miles)
}

// ParsePoundsToPence parses "£1,234.50" or "1234.5" into whole pence.
func ParsePoundsToPence(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "£")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("invalid amount")
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	pounds, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	pence := pounds * 100
	if frac != "" {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		p, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		pence += p
	}
	if neg {
		pence = -pence
	}
	return pence, nil
}
