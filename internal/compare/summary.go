package compare

// Summary condenses a comparison tree into the headline numbers shown on the
// evolution cards.
type Summary struct {
	Students  int           `json:"students"`
	ByTrend   map[Trend]int `json:"by_trend"`
	MeanDelta *float64      `json:"mean_delta"`
	First     *Point        `json:"first"`
	Second    *Point        `json:"second"`
}

// Summarize counts students per overall trend and averages the non-null
// student deltas. First and Second pool every component mean in the tree.
func Summarize(students []StudentComparison) Summary {
	s := Summary{
		Students: len(students),
		ByTrend:  map[Trend]int{TrendUp: 0, TrendDown: 0, TrendFlat: 0, TrendNA: 0},
	}

	var firsts, seconds []Counts
	var sum float64
	var n int
	for _, st := range students {
		s.ByTrend[st.Trend]++
		if st.DeltaPct != nil {
			sum += *st.DeltaPct
			n++
		}
		for _, c := range st.Components {
			if c.MeanFirst != nil {
				firsts = append(firsts, Counts{Correct: c.MeanFirst.Correct, Total: c.MeanFirst.Total})
			}
			if c.MeanSecond != nil {
				seconds = append(seconds, Counts{Correct: c.MeanSecond.Correct, Total: c.MeanSecond.Total})
			}
		}
	}
	if n > 0 {
		m := sum / float64(n)
		s.MeanDelta = &m
	}
	s.First = Aggregate(firsts)
	s.Second = Aggregate(seconds)
	return s
}
