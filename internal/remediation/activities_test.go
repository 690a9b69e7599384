package remediation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semestra/semestra/internal/difficulty"
	"github.com/semestra/semestra/internal/records"
)

func TestBaseActivitiesBands(t *testing.T) {
	assert.Equal(t, reteachActivities, BaseActivities(0))
	assert.Equal(t, reteachActivities, BaseActivities(39.9))
	assert.Equal(t, reviewActivities, BaseActivities(40))
	assert.Equal(t, reviewActivities, BaseActivities(69.9))
	assert.Equal(t, consolidateActivities, BaseActivities(70))
	assert.Equal(t, consolidateActivities, BaseActivities(99))
}

func TestSuggestActivities(t *testing.T) {
	tests := []struct {
		name     string
		skill    WeakSkill
		wantHead []string
		wantLen  int
	}{
		{
			name: "language inference with accents",
			skill: WeakSkill{
				Component:      records.ComponentLanguage,
				Description:    "Inferir informação implícita em texto",
				Pct:            30,
				DifficultyRank: 6,
			},
			wantHead: []string{languageRules[0].suggestion, reteachActivities[0]},
			wantLen:  4,
		},
		{
			name: "language secondary genre",
			skill: WeakSkill{
				Component:      records.ComponentLanguage,
				Description:    "Identificar a tese de um texto",
				GradeLabel:     "1º ANO ENSINO MÉDIO",
				Pct:            80,
				DifficultyRank: 10,
			},
			wantHead: []string{languageRules[1].suggestion, secondaryLanguage, consolidateActivities[0]},
			wantLen:  5,
		},
		{
			name: "math operations in early grade get the prerequisite drill",
			skill: WeakSkill{
				Component:      records.ComponentMath,
				Description:    "Resolver problemas de multiplicação e divisão",
				Pct:            50,
				DifficultyRank: 4,
			},
			wantHead: []string{mathRules[0].suggestion, mathRules[3].suggestion, mathRules[6].suggestion, prerequisiteDrill, reviewActivities[0]},
			wantLen:  5,
		},
		{
			name: "math operations later grade skip the drill",
			skill: WeakSkill{
				Component:      records.ComponentMath,
				Description:    "Operações com números racionais",
				Pct:            50,
				DifficultyRank: 7,
			},
			wantHead: []string{mathRules[0].suggestion, reviewActivities[0]},
			wantLen:  4,
		},
		{
			name: "unranked never gets the drill",
			skill: WeakSkill{
				Component:      records.ComponentMath,
				Description:    "Tabuada",
				Pct:            50,
				DifficultyRank: difficulty.Unranked,
			},
			wantHead: reviewActivities,
			wantLen:  3,
		},
		{
			name: "no keyword match keeps the base list",
			skill: WeakSkill{
				Component:   records.ComponentMath,
				Description: "",
				Pct:         95,
			},
			wantHead: consolidateActivities,
			wantLen:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestActivities(tt.skill)
			require.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantHead, got[:len(tt.wantHead)])
		})
	}
}

func TestSuggestActivitiesCapAndUnique(t *testing.T) {
	w := WeakSkill{
		Component:      records.ComponentMath,
		Description:    "Problemas com frações, equações do 1º grau, gráficos e área",
		GradeLabel:     "ENSINO MÉDIO",
		Pct:            10,
		DifficultyRank: 12,
	}
	got := SuggestActivities(w)
	assert.Len(t, got, MaxSuggestions)

	seen := map[string]bool{}
	for _, s := range got {
		assert.False(t, seen[s], "duplicate %q", s)
		seen[s] = true
	}
}

func TestActivitiesPerSkill(t *testing.T) {
	weak := []WeakSkill{{
		Component:   records.ComponentLanguage,
		SkillCode:   "EF09LP01",
		Description: "Pontuação",
		Pct:         50,
	}}

	got := ActivitiesPerSkill(weak, DefaultPlanConfig())
	require.Len(t, got, 1)
	assert.Equal(t, "EF09LP01", got[0].SkillID)
	assert.Equal(t, "Língua Portuguesa", got[0].Component)
	assert.Equal(t, languageRules[5].suggestion, got[0].Suggestions[0])
	assert.Empty(t, ActivitiesPerSkill(nil, DefaultPlanConfig()))
}
