package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/semestra/semestra/internal/config"
	"github.com/semestra/semestra/internal/llm"
	"github.com/semestra/semestra/internal/records"
	"github.com/semestra/semestra/internal/remediation"
	"github.com/semestra/semestra/internal/store"
)

const sampleExport = `[
  {"nome_aluno":"Ana Souza","turma":"9A","unidade":"Colégio Estadual","componente":"MT","semestre":1,
   "habilidade_codigo":"EF05MA08","habilidade_id":"H01","descricao_habilidade":"Resolver problemas de divisão",
   "acertos":2,"total":4},
  {"nome_aluno":"Ana Souza","turma":"9A","unidade":"Colégio Estadual","componente":"MT","semestre":"2",
   "habilidade_codigo":"EF05MA08","habilidade_id":"H01","descricao_habilidade":"Resolver problemas de divisão",
   "acertos":3,"total":4},
  {"nome_aluno":"Ana Souza","turma":"9A","unidade":"Colégio Estadual","componente":"LP","semestre":2,
   "habilidade_codigo":"EF09LP01","habilidade_id":"H02","descricao_habilidade":"Inferir informações implícitas",
   "acertos":1,"total":2},
  {"nome_aluno":"Bruno Lima","turma":"9A","componente":"LP","semestre":1,
   "habilidade_codigo":"EF09LP01","acertos":2,"total":2},
  {"nome_aluno":"","turma":"9A","componente":"LP","semestre":1,"habilidade_codigo":"X","acertos":1,"total":1}
]`

func newTestEnv(t *testing.T) (*env, *bytes.Buffer) {
	t.Helper()
	s, err := store.Open(context.Background(), store.MemoryDSN(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	cfg := &config.Config{
		LogMode: "quiet",
		Source:  records.ProvaParana.ID,
		Plan:    config.PlanConfig{Weeks: 4, MasteryTarget: 80},
	}
	var out bytes.Buffer
	return &env{cfg: cfg, log: zap.NewNop(), store: s, out: &out}, &out
}

func importSample(t *testing.T, e *env, out *bytes.Buffer) {
	t.Helper()
	require.NoError(t, runImport(context.Background(), e, []byte(sampleExport)))
	out.Reset()
}

func TestRunImport(t *testing.T) {
	e, out := newTestEnv(t)
	require.NoError(t, runImport(context.Background(), e, []byte(sampleExport)))

	assert.Contains(t, out.String(), "Imported 5 rows from Prova Paraná Recomposição")
	assert.Contains(t, out.String(), "usable records: 4")
	assert.Contains(t, out.String(), "skipped: 1 without student")

	out.Reset()
	require.NoError(t, runSources(context.Background(), e))
	assert.Contains(t, out.String(), "prova-parana")

	assert.ErrorIs(t, runImport(context.Background(), e, []byte(`{"not":"an array"`)), records.ErrInvalidJSON)
}

func TestRunCompare(t *testing.T) {
	e, out := newTestEnv(t)
	importSample(t, e, out)

	require.NoError(t, runCompare(context.Background(), e, compareOptions{skills: true}))
	text := out.String()
	assert.Contains(t, text, "Alunos: 2")
	assert.Contains(t, text, "Ana Souza (9A)  ↑ +25.0")
	assert.Contains(t, text, "Matemática")
	assert.Contains(t, text, "EF05MA08")
	assert.Contains(t, text, "Bruno Lima (9A)  n/a —")

	out.Reset()
	opts := compareOptions{json: true, filter: records.Filter{Component: records.ComponentMath}}
	require.NoError(t, runCompare(context.Background(), e, opts))

	var got compareOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Students, 1)
	assert.Equal(t, "Ana Souza", got.Students[0].Student)
	assert.Equal(t, 1, got.Summary.Students)
}

func TestRunPlanOffline(t *testing.T) {
	e, out := newTestEnv(t)
	importSample(t, e, out)

	opts := planOptions{student: "ana souza", json: true}
	require.NoError(t, runPlan(context.Background(), e, nil, opts))

	var got planOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, records.SemesterSecond, got.Semester)
	require.Len(t, got.WeakSkills, 2)
	assert.Equal(t, "EF05MA08", got.WeakSkills[0].SkillCode, "75% before 50% when unranked")
	assert.Equal(t, remediation.SourceFallback, got.Insights.Source)
	assert.Equal(t, "Ana Souza", got.Insights.Student.Name)
	assert.Len(t, got.Insights.Schedule, 4)

	out.Reset()
	require.NoError(t, runPlan(context.Background(), e, nil, planOptions{student: "Ana Souza", semester: records.SemesterFirst}))
	assert.Contains(t, out.String(), "Semestre 1 · fonte: fallback")
}

func TestRunPlanWithProvider(t *testing.T) {
	e, out := newTestEnv(t)
	importSample(t, e, out)

	answer := `{"generalAnalysis":"Ana evoluiu em Matemática.","improvementPoints":["H02"],"strategies":["Leitura guiada"],
"activitiesPerSkill":[{"skillId":"H01","component":"Matemática","description":"Divisão","suggestions":["Lista"]}],
"schedule":[{"week":1,"focus":"H01","objective":"Dividir","tasks":["Lista 1"]}],
"interventionModel":{"generalObjective":"Recompor","shortTermGoals":["80%"],"routine":["2x"],"monitoring":["quinzenal"],"responsibilities":["professor"]}}`
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(answer)})
	logged := llm.WithLogging(mock, "mock", e.store.EventRepo(), e.log)

	require.NoError(t, runPlan(context.Background(), e, logged, planOptions{student: "Ana Souza"}))
	assert.Contains(t, out.String(), "fonte: llm")
	assert.Contains(t, out.String(), "Ana evoluiu em Matemática.")
	assert.Equal(t, 1, mock.CallCount())

	out.Reset()
	require.NoError(t, runLLMList(context.Background(), e, store.QueryOpts{Purpose: remediation.Purpose}))
	assert.Contains(t, out.String(), "insights")
	assert.Contains(t, out.String(), "Ana Souza::")

	out.Reset()
	require.NoError(t, runLLMList(context.Background(), e, store.QueryOpts{Subject: "Bruno::9A"}))
	assert.Contains(t, out.String(), "No LLM events found.")

	out.Reset()
	require.NoError(t, runLLMStats(context.Background(), e))
	assert.Contains(t, out.String(), "TOTAL (partial)")
	assert.Contains(t, out.String(), "Pricing unavailable for: mock")
}

func TestRunPlanPrompt(t *testing.T) {
	e, out := newTestEnv(t)
	importSample(t, e, out)

	require.NoError(t, runPlan(context.Background(), e, nil, planOptions{student: "Ana Souza", promptOnly: true}))
	assert.Contains(t, out.String(), "CRONOGRAMA_BASE")
}

func TestRunPlanStudentResolution(t *testing.T) {
	e, out := newTestEnv(t)
	importSample(t, e, out)
	ctx := context.Background()

	_, err := e.store.RowRepo().ImportRows(ctx, records.ProvaParana, []records.Row{
		{"nome_aluno": "Ana Souza", "turma": "9B", "componente": "MT", "semestre": float64(1), "habilidade_codigo": "M", "acertos": float64(1), "total": float64(2)},
	})
	require.NoError(t, err)

	err = runPlan(ctx, e, nil, planOptions{student: "Ana Souza"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use --class")

	require.NoError(t, runPlan(ctx, e, nil, planOptions{student: "Ana Souza", class: "9b"}))
	assert.Contains(t, out.String(), "Ana Souza (9B)")

	err = runPlan(ctx, e, nil, planOptions{student: "Carla"})
	assert.ErrorContains(t, err, "no results")
}

func TestRunPlanNoWeakSkills(t *testing.T) {
	e, out := newTestEnv(t)
	importSample(t, e, out)

	require.NoError(t, runPlan(context.Background(), e, nil, planOptions{student: "Bruno Lima"}))
	assert.Contains(t, out.String(), "Nenhuma habilidade abaixo de 100%.")
}

func TestRunStatsAndSkills(t *testing.T) {
	e, out := newTestEnv(t)
	importSample(t, e, out)

	require.NoError(t, runStats(context.Background(), e, ""))
	assert.Contains(t, out.String(), "9A")
	assert.Contains(t, out.String(), "Matemática: variação média +25.0 em 1 aluno(s)")

	out.Reset()
	require.NoError(t, runSkillList(context.Background(), e, "", records.Filter{}))
	assert.Contains(t, out.String(), "EF05MA08")
	assert.Contains(t, out.String(), "50.0%")
	assert.Contains(t, out.String(), "2 skills")
}

func TestRemoveDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "semestra.db")
	s, err := store.Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	removed, err := removeDatabase(path)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoFileExists(t, path)

	removed, err = removeDatabase(path)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestVersionString(t *testing.T) {
	assert.Regexp(t, `^semestra \S+ \w+/\w+ go`, versionString())

	old := version
	version = "v1.2.3"
	t.Cleanup(func() { version = old })
	assert.Contains(t, versionString(), "semestra v1.2.3 ")
}

func TestNewOutput(t *testing.T) {
	const styled = "\x1b[1mAna\x1b[0m"
	tests := []struct {
		name      string
		environ   []string
		wantColor bool
	}{
		{"pipe", []string{"TERM=xterm-256color"}, false},
		{"forced", []string{"TERM=xterm-256color", "CLICOLOR_FORCE=1"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w, color := newOutput(&buf, tt.environ)
			assert.Equal(t, tt.wantColor, color)

			_, err := io.WriteString(w, styled)
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "Ana")
			if tt.wantColor {
				assert.Contains(t, buf.String(), "\x1b[")
			} else {
				assert.NotContains(t, buf.String(), "\x1b[")
			}
		})
	}

	t.Run("NO_COLOR wins over force", func(t *testing.T) {
		_, color := newOutput(&bytes.Buffer{}, []string{"TERM=xterm-256color", "CLICOLOR_FORCE=1", "NO_COLOR=1"})
		assert.False(t, color)
	})
}
