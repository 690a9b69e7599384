package compare

import (
	"sort"

	"github.com/semestra/semestra/internal/records"
)

// MatchSkills outer-joins two semesters of one student+component by skill
// code. Every skill present on either side yields one row, ordered by skill
// code (byte-wise).
func MatchSkills(first, second []records.ResultRecord) []SkillComparison {
	byFirst := groupBySkill(first)
	bySecond := groupBySkill(second)

	codes := make([]string, 0, len(byFirst)+len(bySecond))
	for code := range byFirst {
		codes = append(codes, code)
	}
	for code := range bySecond {
		if _, ok := byFirst[code]; !ok {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)

	out := make([]SkillComparison, 0, len(codes))
	for _, code := range codes {
		s1 := byFirst[code]
		s2 := bySecond[code]

		var p1, p2 *Point
		if len(s1) > 0 {
			p1 = AggregateRecords(s1)
		}
		if len(s2) > 0 {
			p2 = AggregateRecords(s2)
		}
		delta := Delta(p1, p2)

		out = append(out, SkillComparison{
			SkillCode:   code,
			Description: description(s2, s1),
			First:       p1,
			Second:      p2,
			DeltaPct:    delta,
			Trend:       Classify(delta),
		})
	}
	return out
}

func groupBySkill(recs []records.ResultRecord) map[string][]records.ResultRecord {
	m := make(map[string][]records.ResultRecord)
	for _, r := range recs {
		m[r.SkillCode] = append(m[r.SkillCode], r)
	}
	return m
}

// description returns the first non-empty description, searching the
// groups in order.
func description(groups ...[]records.ResultRecord) string {
	for _, g := range groups {
		for _, r := range g {
			if r.SkillDescription != "" {
				return r.SkillDescription
			}
		}
	}
	return ""
}
