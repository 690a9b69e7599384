package compare

import "github.com/semestra/semestra/internal/records"

// Aggregate pools the observations before dividing, so groups with more
// opportunities weigh more. It returns nil when the input is empty or the
// pooled total is zero.
func Aggregate(obs []Counts) *Point {
	var correct, total int
	for _, o := range obs {
		correct += o.Correct
		total += o.Total
	}
	if total <= 0 {
		return nil
	}
	return &Point{
		Correct: correct,
		Total:   total,
		Pct:     100 * float64(correct) / float64(total),
	}
}

// AggregateRecords aggregates the counts of recs.
func AggregateRecords(recs []records.ResultRecord) *Point {
	obs := make([]Counts, len(recs))
	for i, r := range recs {
		obs[i] = Counts{Correct: r.Correct, Total: r.Total}
	}
	return Aggregate(obs)
}

// Delta returns second.Pct - first.Pct, or nil when either side is absent.
func Delta(first, second *Point) *float64 {
	if first == nil || second == nil {
		return nil
	}
	d := second.Pct - first.Pct
	return &d
}
