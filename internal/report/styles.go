// Package report renders comparison trees and remediation plans for the
// terminal, and as JSON.
package report

import (
	"charm.land/lipgloss/v2"

	"github.com/semestra/semestra/internal/compare"
)

// Palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Purple
	Up      = lipgloss.Color("#22C55E") // Green
	Down    = lipgloss.Color("#F43F5E") // Rose
	Flat    = lipgloss.Color("#F97316") // Orange
	Dim     = lipgloss.Color("#94A3B8") // Slate
)

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	dim     lipgloss.Style
	trend   map[compare.Trend]lipgloss.Style
}

func newStyles(color bool) styles {
	plain := lipgloss.NewStyle()
	if !color {
		return styles{
			title:   plain,
			heading: plain,
			name:    plain,
			dim:     plain,
			trend:   map[compare.Trend]lipgloss.Style{},
		}
	}
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(Primary),
		heading: lipgloss.NewStyle().Bold(true).Underline(true),
		name:    lipgloss.NewStyle().Bold(true),
		dim:     lipgloss.NewStyle().Foreground(Dim),
		trend: map[compare.Trend]lipgloss.Style{
			compare.TrendUp:   lipgloss.NewStyle().Foreground(Up).Bold(true),
			compare.TrendDown: lipgloss.NewStyle().Foreground(Down).Bold(true),
			compare.TrendFlat: lipgloss.NewStyle().Foreground(Flat),
			compare.TrendNA:   lipgloss.NewStyle().Foreground(Dim),
		},
	}
}

// badge renders the trend symbol in its color.
func (s styles) badge(t compare.Trend) string {
	b := Badge(t)
	if st, ok := s.trend[t]; ok {
		return st.Render(b)
	}
	return b
}
