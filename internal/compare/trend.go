package compare

// FlatBand is the half-width, in percentage points, of the band around zero
// classified as flat. The edges belong to the band.
const FlatBand = 0.5

// Classify maps a percentage delta to a Trend.
func Classify(delta *float64) Trend {
	switch {
	case delta == nil:
		return TrendNA
	case *delta > FlatBand:
		return TrendUp
	case *delta < -FlatBand:
		return TrendDown
	default:
		return TrendFlat
	}
}
