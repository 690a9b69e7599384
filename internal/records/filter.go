package records

import (
	"regexp"
	"strings"
)

// Filter narrows a record set the way the dashboard filter panel does.
// Zero-valued fields match everything.
type Filter struct {
	Unit        string
	SchoolGrade string
	Component   Component
	Student     string
	Class       string
	Level       string
	Semester    Semester
}

// Match reports whether r passes the filter.
func (f Filter) Match(r ResultRecord) bool {
	if f.Unit != "" && !SameUnit(f.Unit, r.Unit) {
		return false
	}
	if f.SchoolGrade != "" && !strings.EqualFold(strings.TrimSpace(f.SchoolGrade), r.SchoolGrade) {
		return false
	}
	if f.Component != "" && f.Component != r.Component {
		return false
	}
	if f.Student != "" && f.Student != r.Student {
		return false
	}
	if f.Class != "" && f.Class != r.Class {
		return false
	}
	if f.Level != "" && !strings.EqualFold(f.Level, r.Level) {
		return false
	}
	if f.Semester != 0 && f.Semester != r.Semester {
		return false
	}
	return true
}

// Apply returns the records that pass the filter, in input order.
func (f Filter) Apply(recs []ResultRecord) []ResultRecord {
	out := make([]ResultRecord, 0, len(recs))
	for _, r := range recs {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

var (
	spaceRun     = regexp.MustCompile(`\s+`)
	profisSuffix = regexp.MustCompile(`(?i)\s*PROFIS\s*$`)
)

// UnitKey canonicalizes a school unit name: commas dropped, hyphens as
// spaces, whitespace collapsed and a trailing "PROFIS" removed.
func UnitKey(s string) string {
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "-", " ")
	s = spaceRun.ReplaceAllString(s, " ")
	s = profisSuffix.ReplaceAllString(strings.TrimSpace(s), "")
	return strings.TrimSpace(s)
}

// SameUnit reports whether two unit names refer to the same school. Unit
// names are typed differently across uploads, so the comparison falls back
// to containment of the canonical keys.
func SameUnit(a, b string) bool {
	ka, kb := UnitKey(a), UnitKey(b)
	if ka == "" || kb == "" {
		return ka == kb
	}
	return ka == kb || strings.Contains(kb, ka) || strings.Contains(ka, kb)
}
