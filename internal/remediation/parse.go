package remediation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrUnparseable is returned by ParseInsights for text that does not hold
// a usable insights object.
var ErrUnparseable = errors.New("remediation: unparseable insights")

// ParseInsights extracts the insights object from collaborator output.
// The text may wrap the object in prose or markdown fences; the object
// runs from the first "{" to the last "}". It must carry a non-empty
// generalAnalysis plus schedule and activitiesPerSkill arrays.
func ParseInsights(text string) (*Insights, error) {
	block, ok := jsonBlock(text)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object found", ErrUnparseable)
	}
	if !gjson.Valid(block) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrUnparseable)
	}

	doc := gjson.Parse(block)
	if strings.TrimSpace(doc.Get("generalAnalysis").String()) == "" {
		return nil, fmt.Errorf("%w: missing generalAnalysis", ErrUnparseable)
	}
	for _, key := range []string{"schedule", "activitiesPerSkill"} {
		if !doc.Get(key).IsArray() {
			return nil, fmt.Errorf("%w: %s is not an array", ErrUnparseable, key)
		}
	}

	var ins Insights
	if err := json.Unmarshal([]byte(block), &ins); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	ins.fillEmpty()
	return &ins, nil
}

func jsonBlock(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// alignSchedule replaces ins.Schedule with plan unless it holds exactly
// one item per plan week, numbered from 1 in order. It reports whether
// the schedule was replaced.
func (ins *Insights) alignSchedule(plan []WeeklyPlanItem) bool {
	ok := len(ins.Schedule) == len(plan)
	for i := 0; ok && i < len(plan); i++ {
		ok = ins.Schedule[i].Week == i+1
	}
	if ok {
		return false
	}
	ins.Schedule = plan
	return true
}

// fillEmpty replaces nil slices so the document encodes arrays as [].
func (ins *Insights) fillEmpty() {
	if ins.ImprovementPoints == nil {
		ins.ImprovementPoints = []string{}
	}
	if ins.Strategies == nil {
		ins.Strategies = []string{}
	}
	if ins.ActivitiesPerSkill == nil {
		ins.ActivitiesPerSkill = []SkillActivities{}
	}
	for i := range ins.ActivitiesPerSkill {
		if ins.ActivitiesPerSkill[i].Suggestions == nil {
			ins.ActivitiesPerSkill[i].Suggestions = []string{}
		}
	}
	if ins.Schedule == nil {
		ins.Schedule = []WeeklyPlanItem{}
	}
	for i := range ins.Schedule {
		if ins.Schedule[i].Tasks == nil {
			ins.Schedule[i].Tasks = []string{}
		}
	}
	m := &ins.InterventionModel
	for _, s := range []*[]string{&m.ShortTermGoals, &m.Routine, &m.Monitoring, &m.Responsibilities} {
		if *s == nil {
			*s = []string{}
		}
	}
}
