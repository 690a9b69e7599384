package records

// Component is the subject area a skill belongs to.
type Component string

const (
	ComponentLanguage Component = "LP"
	ComponentMath     Component = "MT"
)

// Components lists the canonical components in display order.
var Components = []Component{ComponentLanguage, ComponentMath}

// Order returns the display position of the component. Unknown components
// sort after the known ones.
func (c Component) Order() int {
	for i, k := range Components {
		if k == c {
			return i
		}
	}
	return len(Components)
}

// Semester is one of the two evaluation cycles being compared.
type Semester int

const (
	SemesterFirst  Semester = 1
	SemesterSecond Semester = 2
)

// Valid reports whether s is one of the two known semesters.
func (s Semester) Valid() bool {
	return s == SemesterFirst || s == SemesterSecond
}

// Row is one loosely-typed row as delivered by a record source.
type Row map[string]any

// ResultRecord is one observation of one student's performance on one skill,
// in one component, in one semester.
type ResultRecord struct {
	Student string `json:"student"`
	Class   string `json:"class,omitempty"`
	Unit    string `json:"unit,omitempty"`
	// SchoolGrade is the grade the test was applied to ("9º ano").
	SchoolGrade string `json:"school_grade,omitempty"`

	Component Component `json:"component"`
	Semester  Semester  `json:"semester"`

	SkillCode        string `json:"skill_code"`
	SkillID          string `json:"skill_id,omitempty"`
	SkillDescription string `json:"skill_description,omitempty"`
	// GradeLabel is the free-text grade/series the skill originates from.
	GradeLabel string `json:"grade_label,omitempty"`
	// Level is the learning level or performance standard reported by the source.
	Level string `json:"level,omitempty"`

	Correct   int  `json:"correct"`
	Total     int  `json:"total"`
	Evaluated bool `json:"evaluated"`

	Source string `json:"source,omitempty"`
}

// Qualifies reports whether the record participates in aggregation.
func (r ResultRecord) Qualifies() bool {
	return r.Evaluated && r.Total > 0
}

// Pct is the derived percentage of the record, 0 when total is 0.
func (r ResultRecord) Pct() float64 {
	if r.Total <= 0 {
		return 0
	}
	return 100 * float64(r.Correct) / float64(r.Total)
}

// DisplaySkill returns the short skill id when present, else the skill code.
func (r ResultRecord) DisplaySkill() string {
	if r.SkillID != "" {
		return r.SkillID
	}
	return r.SkillCode
}

// StudentKey identifies a student as name + class. Sources carry no stable
// student identifier, so two students sharing name and class are conflated.
func StudentKey(name, class string) string {
	return name + "::" + class
}

// Key returns the StudentKey of the record.
func (r ResultRecord) Key() string {
	return StudentKey(r.Student, r.Class)
}
