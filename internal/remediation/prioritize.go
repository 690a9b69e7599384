package remediation

import (
	"errors"
	"sort"

	"github.com/semestra/semestra/internal/compare"
	"github.com/semestra/semestra/internal/difficulty"
	"github.com/semestra/semestra/internal/records"
)

// ErrNoWeakSkills is returned by Prioritize when every evaluated skill is
// at 100%.
var ErrNoWeakSkills = errors.New("remediation: no weak skills")

// LatestSemester returns the latest semester with qualifying records, or 0.
func LatestSemester(recs []records.ResultRecord) records.Semester {
	var latest records.Semester
	for _, r := range recs {
		if r.Qualifies() && r.Semester.Valid() && r.Semester > latest {
			latest = r.Semester
		}
	}
	return latest
}

// WeakSkills returns the skills of one student's records scoring below
// 100% in sem, easiest first. Rows of the same component and skill code
// are pooled before the test. A zero sem selects LatestSemester.
//
// Order: ascending difficulty rank, then descending percentage. Skills
// equal on both keep component order, then skill code order.
func WeakSkills(recs []records.ResultRecord, sem records.Semester) []WeakSkill {
	if sem == 0 {
		sem = LatestSemester(recs)
	}

	type key struct {
		comp records.Component
		code string
	}
	groups := make(map[key][]records.ResultRecord)
	var keys []key
	for _, r := range recs {
		if r.Semester != sem || !r.Qualifies() {
			continue
		}
		k := key{r.Component, r.SkillCode}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], r)
	}

	sort.Slice(keys, func(i, j int) bool {
		if oi, oj := keys[i].comp.Order(), keys[j].comp.Order(); oi != oj {
			return oi < oj
		}
		if keys[i].comp != keys[j].comp {
			return keys[i].comp < keys[j].comp
		}
		return keys[i].code < keys[j].code
	})

	weak := make([]WeakSkill, 0, len(keys))
	for _, k := range keys {
		rs := groups[k]
		p := compare.AggregateRecords(rs)
		if p == nil || p.Pct >= 100 {
			continue
		}
		w := WeakSkill{
			Component: k.comp,
			SkillCode: k.code,
			Pct:       p.Pct,
		}
		for _, r := range rs {
			if w.SkillID == "" {
				w.SkillID = r.SkillID
			}
			if w.Description == "" {
				w.Description = r.SkillDescription
			}
			if w.GradeLabel == "" {
				w.GradeLabel = r.GradeLabel
			}
		}
		w.DifficultyRank = difficulty.Rank(w.GradeLabel)
		weak = append(weak, w)
	}

	SortWeak(weak)
	return weak
}

// SortWeak orders weak skills by ascending difficulty rank, then by
// descending percentage. The sort is stable.
func SortWeak(weak []WeakSkill) {
	sort.SliceStable(weak, func(i, j int) bool {
		a, b := weak[i], weak[j]
		if a.DifficultyRank != b.DifficultyRank {
			return a.DifficultyRank < b.DifficultyRank
		}
		return a.Pct > b.Pct
	})
}

// Prioritize is WeakSkills for callers that must treat an empty result
// explicitly. It also reports the semester that was evaluated.
func Prioritize(recs []records.ResultRecord, sem records.Semester) ([]WeakSkill, records.Semester, error) {
	if sem == 0 {
		sem = LatestSemester(recs)
	}
	weak := WeakSkills(recs, sem)
	if len(weak) == 0 {
		return nil, sem, ErrNoWeakSkills
	}
	return weak, sem, nil
}
