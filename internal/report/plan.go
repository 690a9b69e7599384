package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/semestra/semestra/internal/difficulty"
	"github.com/semestra/semestra/internal/remediation"
)

// Plan writes the prioritized weak skills followed by every section of the
// insights document.
func Plan(w io.Writer, weak []remediation.WeakSkill, ins *remediation.Insights, opts Options) error {
	st := newStyles(opts.Color)
	var b strings.Builder

	who := ins.Student.Name
	if ins.Student.Class != "" {
		who += " (" + ins.Student.Class + ")"
	}
	fmt.Fprintf(&b, "%s\n", st.title.Render("Plano de recomposição: "+who))
	fmt.Fprintf(&b, "%s\n", st.dim.Render(fmt.Sprintf("Semestre %d · fonte: %s", ins.Student.Semester, ins.Source)))

	section := func(title string) {
		fmt.Fprintf(&b, "\n%s\n", st.heading.Render(title))
	}
	bullets := func(indent string, items []string) {
		for _, it := range items {
			fmt.Fprintf(&b, "%s- %s\n", indent, it)
		}
	}

	section("Habilidades a desenvolver")
	if len(weak) == 0 {
		b.WriteString("  Nenhuma habilidade abaixo de 100%.\n")
	}
	for i, ws := range weak {
		fmt.Fprintf(&b, "  %2d. %-4s %-10s %6.1f%%  %-6s %s\n",
			i+1, ws.Component, ws.Display(), ws.Pct, difficulty.Short(ws.DifficultyRank), truncate(ws.Description, 60))
	}

	section("Análise geral")
	fmt.Fprintf(&b, "  %s\n", ins.GeneralAnalysis)

	section("Pontos de melhoria")
	bullets("  ", ins.ImprovementPoints)

	section("Estratégias")
	bullets("  ", ins.Strategies)

	section("Atividades por habilidade")
	for _, a := range ins.ActivitiesPerSkill {
		fmt.Fprintf(&b, "  %s (%s)\n", st.name.Render(a.SkillID), a.Component)
		bullets("    ", a.Suggestions)
	}

	section("Cronograma")
	for _, item := range ins.Schedule {
		focus := item.Focus
		if focus == "" {
			focus = Absent
		}
		fmt.Fprintf(&b, "  %s %s\n", st.name.Render(fmt.Sprintf("Semana %d:", item.Week)), focus)
		fmt.Fprintf(&b, "    Objetivo: %s\n", item.Objective)
		bullets("    ", item.Tasks)
	}

	im := ins.InterventionModel
	section("Modelo de intervenção")
	fmt.Fprintf(&b, "  Objetivo geral: %s\n", im.GeneralObjective)
	for _, part := range []struct {
		title string
		items []string
	}{
		{"Metas de curto prazo", im.ShortTermGoals},
		{"Rotina", im.Routine},
		{"Monitoramento", im.Monitoring},
		{"Responsabilidades", im.Responsibilities},
	} {
		fmt.Fprintf(&b, "  %s:\n", part.title)
		bullets("    ", part.items)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
