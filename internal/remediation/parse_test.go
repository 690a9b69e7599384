package remediation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validInsightsJSON = `{
	"generalAnalysis": "A aluna precisa retomar operações básicas.",
	"improvementPoints": ["H01 com 60%"],
	"strategies": ["Prática guiada"],
	"activitiesPerSkill": [
		{"skillId": "H01", "component": "Matemática", "description": "Adição", "suggestions": ["Lista 1"]}
	],
	"schedule": [
		{"week": 1, "focus": "Matemática – H01", "objective": "Revisar", "tasks": ["Tarefa"]},
		{"week": 2, "focus": "", "objective": "Consolidar", "tasks": []},
		{"week": 3, "focus": "", "objective": "Consolidar", "tasks": []},
		{"week": 4, "focus": "", "objective": "Avaliar", "tasks": []}
	],
	"interventionModel": {
		"generalObjective": "Avançar",
		"shortTermGoals": ["80%"],
		"routine": ["3 sessões"],
		"monitoring": ["Planilha"],
		"responsibilities": ["Professor(a)"]
	}
}`

func TestParseInsightsValid(t *testing.T) {
	ins, err := ParseInsights(validInsightsJSON)
	require.NoError(t, err)
	assert.Equal(t, "A aluna precisa retomar operações básicas.", ins.GeneralAnalysis)
	require.Len(t, ins.Schedule, 4)
	assert.Equal(t, 2, ins.Schedule[1].Week)
	assert.Equal(t, []string{"Lista 1"}, ins.ActivitiesPerSkill[0].Suggestions)
	assert.Equal(t, "Avançar", ins.InterventionModel.GeneralObjective)
}

func TestParseInsightsToleratesWrapping(t *testing.T) {
	tests := map[string]string{
		"markdown fence": "```json\n" + validInsightsJSON + "\n```",
		"leading prose":  "Segue o plano:\n" + validInsightsJSON,
		"whitespace":     "\n\n  " + validInsightsJSON + "  \n",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			ins, err := ParseInsights(text)
			require.NoError(t, err)
			assert.NotEmpty(t, ins.GeneralAnalysis)
		})
	}
}

func TestParseInsightsRejects(t *testing.T) {
	tests := map[string]string{
		"empty":              "",
		"no object":          "não foi possível gerar",
		"broken json":        `{"generalAnalysis": "x", "schedule": [}`,
		"missing analysis":   `{"schedule": [], "activitiesPerSkill": []}`,
		"blank analysis":     `{"generalAnalysis": "  ", "schedule": [], "activitiesPerSkill": []}`,
		"schedule not array": `{"generalAnalysis": "x", "schedule": {}, "activitiesPerSkill": []}`,
		"missing activities": `{"generalAnalysis": "x", "schedule": []}`,
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseInsights(text)
			assert.ErrorIs(t, err, ErrUnparseable)
		})
	}
}

func TestParseInsightsFillsMissingArrays(t *testing.T) {
	ins, err := ParseInsights(`{"generalAnalysis": "x", "schedule": [{"week": 1}], "activitiesPerSkill": []}`)
	require.NoError(t, err)
	assert.NotNil(t, ins.Strategies)
	assert.NotNil(t, ins.Schedule[0].Tasks)
	assert.NotNil(t, ins.InterventionModel.Routine)
}

func TestAlignSchedule(t *testing.T) {
	plan := Schedule(sampleWeak(), DefaultPlanConfig())
	week := func(n int) WeeklyPlanItem { return WeeklyPlanItem{Week: n, Focus: "x", Tasks: []string{}} }

	tests := []struct {
		name     string
		schedule []WeeklyPlanItem
		replaced bool
	}{
		{"matching", []WeeklyPlanItem{week(1), week(2), week(3), week(4)}, false},
		{"empty", []WeeklyPlanItem{}, true},
		{"too few", []WeeklyPlanItem{week(1), week(2)}, true},
		{"too many", []WeeklyPlanItem{week(1), week(2), week(3), week(4), week(5)}, true},
		{"misnumbered", []WeeklyPlanItem{week(1), week(2), week(2), week(4)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := &Insights{Schedule: tt.schedule}
			assert.Equal(t, tt.replaced, ins.alignSchedule(plan))
			require.Len(t, ins.Schedule, len(plan))
			if tt.replaced {
				assert.Equal(t, plan, ins.Schedule)
			}
		})
	}
}
