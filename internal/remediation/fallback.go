package remediation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/semestra/semestra/internal/difficulty"
)

const maxImprovementPoints = 3

var fallbackStrategies = []string{
	"Rotina de prática guiada (curta e frequente), com feedback imediato.",
	"Uso de exemplos graduados (do simples ao complexo) e retomada de pré-requisitos.",
	"Registro de erros recorrentes e modelagem de solução passo a passo.",
}

// Fallback builds the insights document locally from the weak skills. It
// makes no external call and always fills every section, also for an
// empty weak list. weak is expected in WeakSkills order.
func Fallback(student StudentInfo, weak []WeakSkill, cfg PlanConfig) *Insights {
	return &Insights{
		Student:            student,
		GeneralAnalysis:    generalAnalysis(student, weak),
		ImprovementPoints:  improvementPoints(weak, cfg),
		Strategies:         append([]string(nil), fallbackStrategies...),
		ActivitiesPerSkill: ActivitiesPerSkill(weak, cfg),
		Schedule:           Schedule(weak, cfg),
		InterventionModel:  interventionModel(cfg),
		Source:             SourceFallback,
	}
}

func generalAnalysis(student StudentInfo, weak []WeakSkill) string {
	name := student.Name
	if name == "" {
		name = "sem nome"
	}
	if len(weak) == 0 {
		return fmt.Sprintf("O(a) aluno(a) %s não apresenta habilidades com desempenho abaixo de 100%% no semestre avaliado. "+
			"Recomenda-se manter a rotina de estudos para consolidar o que já foi aprendido.", name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "O(a) aluno(a) %s apresenta dificuldades distribuídas em %d habilidade(s). ", name, len(weak))
	b.WriteString("Recomenda-se começar pelas habilidades de seriação de anos mais iniciais e evoluindo para os anos finais " +
		"(Conteúdo mais fácil para o mais difícil de acordo com a BNCC).")
	if seq := gradeSequence(weak); seq != "" {
		fmt.Fprintf(&b, " Sequência sugerida: %s.", seq)
	}
	return b.String()
}

// gradeSequence lists the distinct ranked grades of weak, easiest first.
func gradeSequence(weak []WeakSkill) string {
	var ranks []float64
	seen := make(map[float64]bool)
	for _, w := range weak {
		if !difficulty.IsRanked(w.DifficultyRank) || seen[w.DifficultyRank] {
			continue
		}
		seen[w.DifficultyRank] = true
		ranks = append(ranks, w.DifficultyRank)
	}
	sort.Float64s(ranks)

	parts := make([]string, len(ranks))
	for i, r := range ranks {
		parts[i] = difficulty.Short(r)
	}
	return strings.Join(parts, " → ")
}

func improvementPoints(weak []WeakSkill, cfg PlanConfig) []string {
	if len(weak) == 0 {
		return []string{"Nenhuma habilidade abaixo de 100%; priorizar a manutenção do desempenho atual."}
	}
	n := min(len(weak), maxImprovementPoints)
	out := make([]string, 0, n)
	for _, w := range weak[:n] {
		label := strings.TrimSpace(w.GradeLabel)
		if label == "" {
			label = "—"
		}
		out = append(out, fmt.Sprintf("%s (%s, %s) com %.1f%%", w.Display(), cfg.Label(w.Component), label, w.Pct))
	}
	return out
}

func interventionModel(cfg PlanConfig) InterventionModel {
	return InterventionModel{
		GeneralObjective: fmt.Sprintf("Aumentar a proficiência nas habilidades com baixo desempenho, garantindo avanços mensuráveis em %d semanas.",
			cfg.weeks()),
		ShortTermGoals: []string{
			fmt.Sprintf("Elevar cada habilidade trabalhada para ≥ %d%% de acerto.", cfg.target()),
			"Reduzir o tempo médio por questão mantendo a precisão.",
		},
		Routine: []string{
			"3 a 5 sessões semanais de 30–40 minutos.",
			"Sequência: (1) revisão rápida do conceito; (2) 2–3 exemplos resolvidos; (3) prática independente; (4) correção e feedback.",
		},
		Monitoring: []string{
			"Planilha simples de acertos/erros por habilidade, com data e tipo de erro.",
			"Avaliações formativas semanais (mini-quiz de 5 itens).",
		},
		Responsibilities: []string{
			"Professor(a): planejar e disponibilizar listas e feedback.",
			"Aluno(a): cumprir o cronograma e registrar dúvidas.",
			"Família/Escola: garantir rotina e ambiente de estudo.",
		},
	}
}
