package compare

import "github.com/semestra/semestra/internal/records"

// Counts is one (correct, total) observation.
type Counts struct {
	Correct int
	Total   int
}

// Point is a weighted aggregate. A nil *Point means "no data", which is
// distinct from a zero score.
type Point struct {
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Pct     float64 `json:"pct"`
}

// Trend is the coarse classification of a percentage delta.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
	TrendNA   Trend = "n/a"
)

// SkillComparison matches one skill across the two semesters.
type SkillComparison struct {
	SkillCode   string   `json:"skill_code"`
	Description string   `json:"description,omitempty"`
	First       *Point   `json:"first"`
	Second      *Point   `json:"second"`
	DeltaPct    *float64 `json:"delta_pct"`
	Trend       Trend    `json:"trend"`
}

// ComponentComparison is one student's comparison within one component.
// MeanFirst and MeanSecond pool every record of the semester; they are not
// averages of the per-skill percentages.
type ComponentComparison struct {
	Component  records.Component `json:"component"`
	Skills     []SkillComparison `json:"skills"`
	MeanFirst  *Point            `json:"mean_first"`
	MeanSecond *Point            `json:"mean_second"`
	DeltaPct   *float64          `json:"delta_pct"`
	Trend      Trend             `json:"trend"`
}

// StudentComparison is the top of the comparison tree. DeltaPct is the
// unweighted mean of the non-null component deltas.
type StudentComparison struct {
	Student    string                `json:"student"`
	Class      string                `json:"class,omitempty"`
	Components []ComponentComparison `json:"components"`
	DeltaPct   *float64              `json:"delta_pct"`
	Trend      Trend                 `json:"trend"`
}
