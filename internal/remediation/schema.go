package remediation

import "github.com/semestra/semestra/internal/llm"

func stringArray(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
}

// InsightsSchema defines the JSON schema of the narrative insights.
var InsightsSchema = &llm.Schema{
	Name:        "remediation-insights",
	Description: "Intervention plan for a student's weak skills",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"generalAnalysis": map[string]any{
				"type":        "string",
				"description": "3-5 sentence analysis of the student's difficulties",
			},
			"improvementPoints": stringArray("The most urgent skills to improve, one per entry"),
			"strategies":        stringArray("2-4 general teaching strategies"),
			"activitiesPerSkill": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"skillId":     map[string]any{"type": "string"},
						"component":   map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"suggestions": stringArray("3-5 specific activities"),
					},
					"required":             []any{"skillId", "component", "description", "suggestions"},
					"additionalProperties": false,
				},
			},
			"schedule": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"week": map[string]any{
							"type":    "integer",
							"minimum": 1,
						},
						"focus":     map[string]any{"type": "string"},
						"objective": map[string]any{"type": "string"},
						"tasks":     stringArray("Tasks of the week"),
					},
					"required":             []any{"week", "focus", "objective", "tasks"},
					"additionalProperties": false,
				},
			},
			"interventionModel": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"generalObjective": map[string]any{"type": "string"},
					"shortTermGoals":   stringArray("Measurable goals for the plan period"),
					"routine":          stringArray("Session routine"),
					"monitoring":       stringArray("How progress is recorded"),
					"responsibilities": stringArray("Who does what"),
				},
				"required":             []any{"generalObjective", "shortTermGoals", "routine", "monitoring", "responsibilities"},
				"additionalProperties": false,
			},
		},
		"required": []any{
			"generalAnalysis", "improvementPoints", "strategies",
			"activitiesPerSkill", "schedule", "interventionModel",
		},
		"additionalProperties": false,
	},
}
