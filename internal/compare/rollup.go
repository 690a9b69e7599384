package compare

import (
	"sort"

	"github.com/semestra/semestra/internal/records"
)

// Rollup builds the comparison tree student → component → skill from a
// normalized record set. Only evaluated records with a positive total take
// part; a student or component left without qualifying records is absent
// from the output.
//
// Students are keyed by records.StudentKey (name and class) and the result
// is sorted by student name, then class, using byte-wise comparison.
func Rollup(recs []records.ResultRecord) []StudentComparison {
	type groupKey struct {
		student   string
		component records.Component
	}

	groups := make(map[groupKey][]records.ResultRecord)
	students := make(map[string]*StudentComparison)

	for _, r := range recs {
		if !r.Qualifies() || !r.Semester.Valid() {
			continue
		}
		k := groupKey{student: r.Key(), component: r.Component}
		groups[k] = append(groups[k], r)
		if _, ok := students[k.student]; !ok {
			students[k.student] = &StudentComparison{Student: r.Student, Class: r.Class}
		}
	}

	for k, group := range groups {
		first, second := splitSemesters(group)
		students[k.student].Components = append(students[k.student].Components, componentComparison(k.component, first, second))
	}

	out := make([]StudentComparison, 0, len(students))
	for _, sc := range students {
		sort.Slice(sc.Components, func(i, j int) bool {
			oi, oj := sc.Components[i].Component.Order(), sc.Components[j].Component.Order()
			if oi != oj {
				return oi < oj
			}
			return sc.Components[i].Component < sc.Components[j].Component
		})
		sc.DeltaPct = meanDelta(sc.Components)
		sc.Trend = Classify(sc.DeltaPct)
		out = append(out, *sc)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Student != out[j].Student {
			return out[i].Student < out[j].Student
		}
		return out[i].Class < out[j].Class
	})
	return out
}

func componentComparison(c records.Component, first, second []records.ResultRecord) ComponentComparison {
	mean1 := AggregateRecords(first)
	mean2 := AggregateRecords(second)
	delta := Delta(mean1, mean2)
	return ComponentComparison{
		Component:  c,
		Skills:     MatchSkills(first, second),
		MeanFirst:  mean1,
		MeanSecond: mean2,
		DeltaPct:   delta,
		Trend:      Classify(delta),
	}
}

func splitSemesters(recs []records.ResultRecord) (first, second []records.ResultRecord) {
	for _, r := range recs {
		switch r.Semester {
		case records.SemesterFirst:
			first = append(first, r)
		case records.SemesterSecond:
			second = append(second, r)
		}
	}
	return first, second
}

// meanDelta averages the non-null component deltas without weighting.
func meanDelta(comps []ComponentComparison) *float64 {
	var sum float64
	var n int
	for _, c := range comps {
		if c.DeltaPct != nil {
			sum += *c.DeltaPct
			n++
		}
	}
	if n == 0 {
		return nil
	}
	m := sum / float64(n)
	return &m
}
