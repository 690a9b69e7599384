package remediation

import (
	"encoding/json"
	"time"

	"github.com/semestra/semestra/internal/difficulty"
	"github.com/semestra/semestra/internal/records"
)

// WeakSkill is a skill one student scored below 100% on in one semester.
type WeakSkill struct {
	Component   records.Component
	SkillCode   string
	SkillID     string
	Description string
	Pct         float64
	GradeLabel  string
	// DifficultyRank comes from difficulty.Rank; +Inf when unranked.
	DifficultyRank float64
}

// Display returns the short skill id, falling back to the code.
func (w WeakSkill) Display() string {
	if w.SkillID != "" {
		return w.SkillID
	}
	return w.SkillCode
}

// MarshalJSON writes an unranked difficulty as null.
func (w WeakSkill) MarshalJSON() ([]byte, error) {
	var rank *float64
	if difficulty.IsRanked(w.DifficultyRank) {
		rank = &w.DifficultyRank
	}
	return json.Marshal(struct {
		Component      records.Component `json:"component"`
		SkillCode      string            `json:"skillCode"`
		SkillID        string            `json:"skillId,omitempty"`
		Description    string            `json:"description,omitempty"`
		Pct            float64           `json:"pct"`
		GradeLabel     string            `json:"gradeLabel,omitempty"`
		DifficultyRank *float64          `json:"difficultyRank"`
	}{w.Component, w.SkillCode, w.SkillID, w.Description, w.Pct, w.GradeLabel, rank})
}

// WeeklyPlanItem is one week of the remediation schedule.
type WeeklyPlanItem struct {
	Week      int      `json:"week"`
	Focus     string   `json:"focus"`
	Objective string   `json:"objective"`
	Tasks     []string `json:"tasks"`
	// Goals holds the per-skill objectives folded into the week.
	Goals []string `json:"goals,omitempty"`
}

// SkillActivities lists the suggested activities for one weak skill.
type SkillActivities struct {
	SkillID     string   `json:"skillId"`
	Component   string   `json:"component"`
	Description string   `json:"description"`
	Suggestions []string `json:"suggestions"`
}

// InterventionModel is the pedagogical frame of the plan.
type InterventionModel struct {
	GeneralObjective string   `json:"generalObjective"`
	ShortTermGoals   []string `json:"shortTermGoals"`
	Routine          []string `json:"routine"`
	Monitoring       []string `json:"monitoring"`
	Responsibilities []string `json:"responsibilities"`
}

// StudentInfo identifies the student a plan is for.
type StudentInfo struct {
	Name     string           `json:"name"`
	Class    string           `json:"class,omitempty"`
	Unit     string           `json:"unit,omitempty"`
	Semester records.Semester `json:"semester"`
}

// Source values of Insights.
const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

// Insights is the complete remediation document. Field order is the order
// sections are rendered in.
type Insights struct {
	ID                 string            `json:"id"`
	Student            StudentInfo       `json:"student"`
	GeneralAnalysis    string            `json:"generalAnalysis"`
	ImprovementPoints  []string          `json:"improvementPoints"`
	Strategies         []string          `json:"strategies"`
	ActivitiesPerSkill []SkillActivities `json:"activitiesPerSkill"`
	Schedule           []WeeklyPlanItem  `json:"schedule"`
	InterventionModel  InterventionModel `json:"interventionModel"`
	Source             string            `json:"source"`
	GeneratedAt        time.Time         `json:"generatedAt"`
}
