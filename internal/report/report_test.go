package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semestra/semestra/internal/compare"
	"github.com/semestra/semestra/internal/difficulty"
	"github.com/semestra/semestra/internal/records"
	"github.com/semestra/semestra/internal/remediation"
)

func ptr(f float64) *float64 { return &f }

func TestBadgeAndFormatting(t *testing.T) {
	tests := []struct {
		trend compare.Trend
		want  string
	}{
		{compare.TrendUp, "↑"},
		{compare.TrendDown, "↓"},
		{compare.TrendFlat, "="},
		{compare.TrendNA, "n/a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Badge(tt.trend))
	}

	assert.Equal(t, "—", Pct(nil))
	assert.Equal(t, "66.7%", Pct(&compare.Point{Correct: 2, Total: 3, Pct: 200.0 / 3}))
	assert.Equal(t, "—", Delta(nil))
	assert.Equal(t, "+12.5", Delta(ptr(12.5)))
	assert.Equal(t, "-0.3", Delta(ptr(-0.26)))
}

func sampleTree() []compare.StudentComparison {
	first := &compare.Point{Correct: 3, Total: 10, Pct: 30}
	second := &compare.Point{Correct: 7, Total: 10, Pct: 70}
	return []compare.StudentComparison{
		{
			Student: "Ana Souza",
			Class:   "9A",
			Components: []compare.ComponentComparison{
				{
					Component: records.ComponentMath,
					Skills: []compare.SkillComparison{
						{SkillCode: "M01", Description: "Resolver problemas com frações", First: first, Second: second, DeltaPct: ptr(40), Trend: compare.TrendUp},
						{SkillCode: "M02", Description: "Geometria", First: first, Trend: compare.TrendNA},
					},
					MeanFirst:  first,
					MeanSecond: second,
					DeltaPct:   ptr(40),
					Trend:      compare.TrendUp,
				},
			},
			DeltaPct: ptr(40),
			Trend:    compare.TrendUp,
		},
	}
}

func TestComparison(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Skills: true, Labels: records.DefaultLabels}
	require.NoError(t, Comparison(&buf, sampleTree(), opts))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Ana Souza (9A)  ↑ +40.0", lines[0])
	assert.Contains(t, lines[1], "Matemática")
	assert.Contains(t, lines[1], "30.0%")
	assert.Contains(t, lines[1], "70.0%")
	assert.Contains(t, lines[2], "M01")
	assert.Contains(t, lines[2], "→")
	assert.Contains(t, lines[3], "M02")
	assert.Contains(t, lines[3], "n/a")
	assert.Contains(t, lines[3], "—")
	assert.NotContains(t, out, "\x1b[", "no ANSI without color")
}

func TestComparisonWithoutSkillsAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Comparison(&buf, sampleTree(), Options{}))
	assert.NotContains(t, buf.String(), "M01")
	assert.Contains(t, buf.String(), "MT", "falls back to the component code")

	buf.Reset()
	require.NoError(t, Comparison(&buf, nil, Options{}))
	assert.Contains(t, buf.String(), "Nenhum aluno")
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	sum := compare.Summarize(sampleTree())
	require.NoError(t, Summary(&buf, sum, Options{}))

	out := buf.String()
	assert.Contains(t, out, "Alunos: 1")
	assert.Contains(t, out, "↑ 1")
	assert.Contains(t, out, "Variação média: +40.0")
}

func TestPlan(t *testing.T) {
	weak := []remediation.WeakSkill{
		{Component: records.ComponentMath, SkillCode: "EF03MA01", SkillID: "H01", Description: "Adição", Pct: 40, GradeLabel: "3º ANO", DifficultyRank: 3},
		{Component: records.ComponentLanguage, SkillCode: "LP9", Description: "Gêneros", Pct: 50, DifficultyRank: difficulty.Unranked},
	}
	student := remediation.StudentInfo{Name: "Ana", Class: "9A", Semester: records.SemesterSecond}
	ins := remediation.Fallback(student, weak, remediation.DefaultPlanConfig())

	var buf bytes.Buffer
	require.NoError(t, Plan(&buf, weak, ins, Options{}))
	out := buf.String()

	for _, want := range []string{
		"Plano de recomposição: Ana (9A)",
		"Semestre 2 · fonte: fallback",
		"Habilidades a desenvolver",
		"H01",
		"3º",
		"LP9",
		"Análise geral",
		"Pontos de melhoria",
		"Estratégias",
		"Atividades por habilidade",
		"Semana 1:",
		"Semana 4: —",
		"Modelo de intervenção",
		"Responsabilidades:",
	} {
		assert.Contains(t, out, want)
	}
}

func TestPlanNoWeakSkills(t *testing.T) {
	ins := remediation.Fallback(remediation.StudentInfo{Name: "Bruno"}, nil, remediation.DefaultPlanConfig())

	var buf bytes.Buffer
	require.NoError(t, Plan(&buf, nil, ins, Options{}))
	assert.Contains(t, buf.String(), "Nenhuma habilidade abaixo de 100%.")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string]any{"pct": 57.5, "note": "<b>"}))

	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
	assert.Contains(t, buf.String(), "\n  \"note\": \"<b>\"")

	var back map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, 57.5, back["pct"])
}

func TestColorStyling(t *testing.T) {
	st := newStyles(true)
	assert.Contains(t, st.badge(compare.TrendUp), "↑")
	assert.Equal(t, "↑", newStyles(false).badge(compare.TrendUp))
}
