// Package difficulty derives an ordinal difficulty from the free-text grade
// labels attached to skill results.
//
// Rules, applied to the label after Fold:
//
//  1. Grade markers are a number followed by º, ° or ª ("3º", "1ª").
//     A marker belongs to secondary education when a secondary mention
//     ("ENSINO MÉDIO" and its misspellings) follows it before the next
//     marker, or directly precedes it ("ENSINO MÉDIO - 2º ANO").
//  2. If any remaining marker is in 1..9, the rank is the smallest of them.
//  3. Else, if the label mentions secondary education, the rank is 9+n for
//     the smallest secondary series n in 1..3, or 12 when no series is given.
//  4. Else the label is unranked (+Inf) and sorts last.
package difficulty

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Unranked is the rank of a label with no recognizable grade.
var Unranked = math.Inf(1)

// SecondaryBase is added to a secondary series number to get its rank.
const SecondaryBase = 9

// SecondaryDefault is the rank of a secondary mention without a series.
const SecondaryDefault = 12

var (
	gradeMarker = regexp.MustCompile(`(\d+)\s*[º°ª]`)
	// Tolerates "MÉDIO", "MEDIO", "MºDIO" and mojibake in place of the É.
	secondaryMention = regexp.MustCompile(`ENSINO\s*M.{0,2}DIO`)
	trailingNoise    = regexp.MustCompile(`^[^\p{L}\p{N}]*$`)
)

type marker struct {
	n         int
	secondary bool
}

// Rank returns the difficulty rank of a grade label; lower is easier.
func Rank(label string) float64 {
	src := Fold(label)
	if strings.TrimSpace(src) == "" {
		return Unranked
	}

	markers := scan(src)

	lowest := 0
	for _, m := range markers {
		if m.secondary || m.n < 1 || m.n > 9 {
			continue
		}
		if lowest == 0 || m.n < lowest {
			lowest = m.n
		}
	}
	if lowest > 0 {
		return float64(lowest)
	}

	if !secondaryMention.MatchString(src) {
		return Unranked
	}
	series := 0
	for _, m := range markers {
		if !m.secondary || m.n < 1 || m.n > 3 {
			continue
		}
		if series == 0 || m.n < series {
			series = m.n
		}
	}
	if series > 0 {
		return float64(SecondaryBase + series)
	}
	return SecondaryDefault
}

func scan(src string) []marker {
	locs := gradeMarker.FindAllStringSubmatchIndex(src, -1)
	out := make([]marker, 0, len(locs))
	for i, loc := range locs {
		n, err := strconv.Atoi(src[loc[2]:loc[3]])
		if err != nil {
			continue
		}

		prevEnd := 0
		if i > 0 {
			prevEnd = locs[i-1][1]
		}
		nextStart := len(src)
		if i+1 < len(locs) {
			nextStart = locs[i+1][0]
		}

		after := src[loc[1]:nextStart]
		before := src[prevEnd:loc[0]]

		// Only series 1-3 exist in secondary education; higher numbers
		// next to a secondary mention are still basic-education grades.
		inRange := n >= 1 && n <= 3
		secondary := inRange && secondaryMention.MatchString(after)
		if inRange && !secondary {
			if m := secondaryMention.FindAllStringIndex(before, -1); len(m) > 0 {
				tail := before[m[len(m)-1][1]:]
				secondary = trailingNoise.MatchString(tail)
			}
		}
		out = append(out, marker{n: n, secondary: secondary})
	}
	return out
}

// MentionsSecondary reports whether label refers to secondary education.
func MentionsSecondary(label string) bool {
	return secondaryMention.MatchString(Fold(label))
}

// IsRanked reports whether rank came from a recognizable label.
func IsRanked(rank float64) bool {
	return !math.IsInf(rank, 1)
}

// Describe returns the bracketed grade suffix shown after a skill's focus
// line: the raw label when present, otherwise a rendering of the rank.
func Describe(label string, rank float64) string {
	if l := strings.TrimSpace(label); l != "" {
		return "[Ano(s): " + l + "]"
	}
	switch {
	case !IsRanked(rank):
		return ""
	case rank <= 9:
		return "[Ano: " + strconv.Itoa(int(rank)) + "º]"
	default:
		return "[Ensino Médio]"
	}
}

// Short renders a rank as "3º", "EM" or "—".
func Short(rank float64) string {
	switch {
	case !IsRanked(rank):
		return "—"
	case rank <= 9:
		return strconv.Itoa(int(rank)) + "º"
	default:
		return strconv.Itoa(int(rank)-SecondaryBase) + "º EM"
	}
}
