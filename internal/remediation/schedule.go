package remediation

import (
	"fmt"
	"strings"

	"github.com/semestra/semestra/internal/difficulty"
)

// FocusLine renders "<component> – <skill>: <description> <grade suffix>".
func FocusLine(w WeakSkill, cfg PlanConfig) string {
	line := fmt.Sprintf("%s – %s: %s", cfg.Label(w.Component), w.Display(), w.Description)
	if suffix := difficulty.Describe(w.GradeLabel, w.DifficultyRank); suffix != "" {
		line += " " + suffix
	}
	return line
}

// SkillObjective is the per-skill goal of the plan.
func SkillObjective(w WeakSkill, cfg PlanConfig) string {
	return fmt.Sprintf("Elevar o desempenho em %s para ≥ %d%% por meio de prática guiada e revisão de erros.",
		w.Display(), cfg.target())
}

// SkillTasks are the task templates of one skill.
func SkillTasks(w WeakSkill, cfg PlanConfig) []string {
	return []string{
		fmt.Sprintf("Fazer a lista de atividades do componente %s – %s, que trata sobre %s.",
			cfg.Label(w.Component), w.Display(), w.Description),
		"Refazer itens com erro e registrar onde ocorreu a falha (leitura do enunciado, passo de cálculo, conceito).",
		"Praticar 10 questões similares (gradativas) e medir tempo e acerto.",
	}
}

// Schedule distributes ranked weak skills over the plan weeks round-robin:
// the skill at position i goes to week (i mod weeks)+1, so each week gets
// a share of the easy-to-hard sequence. It always returns one item per
// week; weeks without skills have an empty focus and no tasks.
func Schedule(weak []WeakSkill, cfg PlanConfig) []WeeklyPlanItem {
	n := cfg.weeks()

	focus := make([][]string, n)
	items := make([]WeeklyPlanItem, n)
	for i := range items {
		items[i] = WeeklyPlanItem{
			Week:      i + 1,
			Objective: fmt.Sprintf("Consolidar conteúdos planejados da semana %d.", i+1),
			Tasks:     []string{},
		}
	}

	for i, w := range weak {
		wk := i % n
		focus[wk] = append(focus[wk], FocusLine(w, cfg))
		items[wk].Goals = append(items[wk].Goals, SkillObjective(w, cfg))
		items[wk].Tasks = append(items[wk].Tasks, SkillTasks(w, cfg)...)
	}
	for i := range items {
		items[i].Focus = strings.Join(focus[i], " | ")
	}
	return items
}
