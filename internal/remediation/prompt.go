package remediation

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/semestra/semestra/internal/difficulty"
)

const insightsSystemPrompt = `Você é um(a) especialista em recomposição de aprendizagens da educação básica brasileira. ` +
	`A partir das habilidades em que um(a) aluno(a) ficou abaixo de 100%, você escreve um plano de intervenção ` +
	`objetivo, executável e alinhado à BNCC. Responda sempre em português e apenas com JSON válido.`

// promptSkill is the line format of one weak skill in the prompt.
type promptSkill struct {
	Component      string  `json:"component"`
	SkillID        string  `json:"skillId"`
	SkillCode      string  `json:"skillCode"`
	Description    string  `json:"description"`
	Pct            float64 `json:"pct"`
	GradeLabel     string  `json:"gradeLabel"`
	DifficultyRank int     `json:"difficultyRank"`
}

// BuildPrompt renders the deterministic user message for the narrative
// collaborator: the weak skills in plan order, the locally computed
// schedule, and the rules the answer must follow.
func BuildPrompt(student StudentInfo, weak []WeakSkill, plan []WeeklyPlanItem, cfg PlanConfig) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Aluno(a): %s\n", student.Name))
	if student.Class != "" {
		b.WriteString(fmt.Sprintf("Turma: %s\n", student.Class))
	}
	if student.Unit != "" {
		b.WriteString(fmt.Sprintf("Unidade: %s\n", student.Unit))
	}
	if student.Semester.Valid() {
		b.WriteString(fmt.Sprintf("Semestre avaliado: %dº\n", student.Semester))
	}

	b.WriteString("\nHABILIDADES_FRACAS (ordenadas do mais fácil ao mais difícil):\n")
	for _, w := range weak {
		b.WriteString(promptSkillLine(w, cfg))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\nCRONOGRAMA_BASE (%d semanas):\n", len(plan)))
	for _, item := range plan {
		focus := item.Focus
		if focus == "" {
			focus = "(sem habilidades)"
		}
		b.WriteString(fmt.Sprintf("Semana %d: %s\n", item.Week, focus))
	}

	b.WriteString(fmt.Sprintf(`
Instruções:
1. Mantenha a ordem do mais fácil para o mais difícil: menor ano primeiro (Ensino Fundamental antes do Ensino Médio); em empate, maior percentual primeiro.
2. O cronograma deve ter exatamente %[1]d semanas (1..%[1]d). Use o CRONOGRAMA_BASE como ponto de partida e inclua os anos ao final do foco entre colchetes, ex.: [Ano(s): 6º E 7º ANO]; sem ano informado, use [Ano: Nº] ou [Ensino Médio].
3. Para cada habilidade, gere de 3 a 5 sugestões específicas e executáveis em activitiesPerSkill, incluindo uma no formato "Fazer a lista de atividades do componente {componente} – {habilidade}, que trata sobre {descrição}.".
4. Ajuste as sugestões ao percentual: abaixo de 40%% reensino e exemplos guiados; de 40%% a 69%% revisão com exemplos e contraexemplos; de 70%% a 99%% consolidação com formatos variados.
5. Ajuste as sugestões ao conteúdo da descrição (inferência, tese, tema, coesão, vocabulário, ortografia em Língua Portuguesa; operações, frações, equações, problemas, gráficos, geometria, múltiplos e divisores em Matemática). Para anos iniciais (até o 5º) inclua treino de pré-requisito; para o Ensino Médio, contextualização ou modelagem.
6. A meta de cada habilidade é atingir pelo menos %[2]d%% de acerto.
7. Evite frases genéricas e repetitivas. Responda apenas com o JSON pedido, sem markdown.`, len(plan), cfg.target()))

	return b.String()
}

func promptSkillLine(w WeakSkill, cfg PlanConfig) string {
	rank := -1
	if difficulty.IsRanked(w.DifficultyRank) {
		rank = int(w.DifficultyRank)
	}
	line, err := json.Marshal(promptSkill{
		Component:      cfg.Label(w.Component),
		SkillID:        w.Display(),
		SkillCode:      w.SkillCode,
		Description:    w.Description,
		Pct:            math.Round(w.Pct*10) / 10,
		GradeLabel:     w.GradeLabel,
		DifficultyRank: rank,
	})
	if err != nil {
		return fmt.Sprintf("%s %s %.1f%%", cfg.Label(w.Component), w.Display(), w.Pct)
	}
	return string(line)
}
