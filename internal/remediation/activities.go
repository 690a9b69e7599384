package remediation

import (
	"regexp"

	"github.com/semestra/semestra/internal/difficulty"
	"github.com/semestra/semestra/internal/records"
)

// MaxSuggestions caps the activities suggested per skill.
const MaxSuggestions = 5

// Percentage bands of the base activities.
const (
	heavyBand  = 40
	reviewBand = 70
)

var (
	reteachActivities = []string{
		"Reensino rápido do conceito em 3–5 minutos com exemplo concreto (quadro/figura).",
		"Resolver 2 exemplos guiados passo a passo, verbalizando cada etapa.",
		"Praticar 5 itens de baixa complexidade focando no erro mais comum e registrar onde ocorreu (leitura, cálculo, conceito).",
	}
	reviewActivities = []string{
		"Revisar o conceito com 2 exemplos resolvidos e um contraexemplo.",
		"Prática escalonada (fácil→médio): 6–8 itens com correção imediata.",
		"Autoexplicação curta após cada item: “o que usei e por quê?”.",
	}
	consolidateActivities = []string{
		"Consolidação com 5–8 itens intercalando formatos diferentes.",
		"Explicar para um colega (ou em voz alta) a ideia central do item.",
		"Registrar 2 dicas pessoais para evitar o erro recorrente.",
	}
)

type keywordRule struct {
	pattern    *regexp.Regexp
	suggestion string
}

var languageRules = []keywordRule{
	{regexp.MustCompile(`INFER|IMPLICIT`),
		"Leitura por pistas: sublinhar marcas linguísticas que sustentem a inferência e preencher um quadro “Pistas → Conclusão”."},
	{regexp.MustCompile(`TESE|ARGUMENT`),
		"Mapa de argumentos: identificar tese, argumentos e evidências; reescrever um argumento fraco tornando-o mais específico."},
	{regexp.MustCompile(`ASSUNTO|TEMA|IDEIA PRINCIPAL|TITULO`),
		"Localizar assunto/tema: criar um título alternativo e justificar com 2 palavras-chave do texto."},
	{regexp.MustCompile(`COES|COER|CONECT|REFER`),
		"Revisão de coesão: substituir conectivos e ajustar pronomes de referência em um trecho curto, explicando a escolha."},
	{regexp.MustCompile(`VOCAB|SINON|ANTON|SENTIDO|CONOT|DENOT`),
		"Vocabulário em contexto: montar pares “palavra → sentido no texto → sinônimo possível” e testar em nova frase."},
	{regexp.MustCompile(`GRAFI|ORTOG|PONTU`),
		"Reescrita focada: reescrever 3 frases ajustando acentuação e pontuação; justificar uma mudança feita."},
}

var mathRules = []keywordRule{
	{regexp.MustCompile(`ADIC|SUBTR|MULTI|DIVI|OPERAC`),
		"Rotina operacional: 10 itens curtos mistos (±, ×, ÷), enfatizando estimativa antes do cálculo."},
	{regexp.MustCompile(`FRAC|DECIM|PORCENT|RAZAO|PROPOR`),
		"Representação múltipla: mesma situação em fração, decimal e porcentagem; construir uma tabela de proporção para comparar."},
	{regexp.MustCompile(`EQUAC|1.?GRAU|INCOGN`),
		"Passos de equação: isolar a incógnita destacando operação inversa; resolver 4 itens e checar substituindo o valor."},
	{regexp.MustCompile(`PROBLEM|SITUAC`),
		"Leitura de problema: sublinhar dados, montar tabela “dados → pergunta → estratégia”, resolver e conferir unidade de medida."},
	{regexp.MustCompile(`GRAFIC|TABELA|DIAGR`),
		"Leitura de dados: identificar eixos, unidade e tendência; responder 3 perguntas de interpretação direta e 2 de comparação."},
	{regexp.MustCompile(`ANG|TRIANG|PERIM|AREA|VOLUME|POLIG|MEDID`),
		"Geometria ativa: desenhar/medir uma figura, calcular grandezas e explicar por que a fórmula se aplica."},
	{regexp.MustCompile(`MMC|MDC|MULTIP|DIVISOR|FATOR`),
		"Fatoração guiada: árvore de fatores e verificação; aplicar em um problema de vida real (ex.: sincronizar ciclos)."},
}

var (
	// Prerequisite drill for operations skills from the early grades.
	prerequisitePattern = regexp.MustCompile(`DIVI|MULTI|TABU|OPERAC`)
	prerequisiteMaxRank = 5.0
	prerequisiteDrill   = "Refinar pré-requisito: 5 min de treino de tabuada/estratégias de decomposição antes dos itens principais."

	secondaryLanguage = "Contextualizar com gêneros do EM: selecionar um artigo/reportagem e aplicar a habilidade no texto atual (síntese crítica de 5 linhas)."
	secondaryMath     = "Modelagem: traduzir um enunciado em expressão/equação e verificar solução com gráfico simples (se aplicável)."
)

// BaseActivities returns the three generic activities for a percentage.
func BaseActivities(pct float64) []string {
	switch {
	case pct < heavyBand:
		return reteachActivities
	case pct < reviewBand:
		return reviewActivities
	default:
		return consolidateActivities
	}
}

// SuggestActivities returns up to MaxSuggestions activities for a weak
// skill: keyword-specific ones for its component first, then the generic
// ones of its percentage band, without duplicates.
func SuggestActivities(w WeakSkill) []string {
	desc := difficulty.Fold(w.Description)
	secondary := difficulty.MentionsSecondary(w.GradeLabel)

	var specific []string
	switch w.Component {
	case records.ComponentLanguage:
		specific = matchRules(languageRules, desc)
		if secondary {
			specific = append(specific, secondaryLanguage)
		}
	case records.ComponentMath:
		specific = matchRules(mathRules, desc)
		if difficulty.IsRanked(w.DifficultyRank) && w.DifficultyRank <= prerequisiteMaxRank &&
			prerequisitePattern.MatchString(desc) {
			specific = append(specific, prerequisiteDrill)
		}
		if secondary {
			specific = append(specific, secondaryMath)
		}
	}

	out := make([]string, 0, MaxSuggestions)
	seen := make(map[string]bool)
	for _, s := range append(specific, BaseActivities(w.Pct)...) {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}

func matchRules(rules []keywordRule, desc string) []string {
	var out []string
	for _, r := range rules {
		if r.pattern.MatchString(desc) {
			out = append(out, r.suggestion)
		}
	}
	return out
}

// ActivitiesPerSkill builds the activity section for every weak skill.
func ActivitiesPerSkill(weak []WeakSkill, cfg PlanConfig) []SkillActivities {
	out := make([]SkillActivities, 0, len(weak))
	for _, w := range weak {
		out = append(out, SkillActivities{
			SkillID:     w.Display(),
			Component:   cfg.Label(w.Component),
			Description: w.Description,
			Suggestions: SuggestActivities(w),
		})
	}
	return out
}
