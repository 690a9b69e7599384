package report

import (
	"fmt"

	"github.com/semestra/semestra/internal/compare"
)

// Absent marks a missing value.
const Absent = "—"

// Badge returns the symbol of a trend.
func Badge(t compare.Trend) string {
	switch t {
	case compare.TrendUp:
		return "↑"
	case compare.TrendDown:
		return "↓"
	case compare.TrendFlat:
		return "="
	default:
		return "n/a"
	}
}

// Pct formats an aggregate point with one decimal.
func Pct(p *compare.Point) string {
	if p == nil {
		return Absent
	}
	return fmt.Sprintf("%.1f%%", p.Pct)
}

// Delta formats a signed percentage-point delta with one decimal.
func Delta(d *float64) string {
	if d == nil {
		return Absent
	}
	return fmt.Sprintf("%+.1f", *d)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
