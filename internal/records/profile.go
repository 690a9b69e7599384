package records

import (
	"fmt"
	"sort"
	"strings"
)

// FieldMap names the source field that feeds each canonical attribute.
// An empty name means the source does not supply that attribute.
type FieldMap struct {
	Student     string
	Class       string
	Unit        string
	SchoolGrade string
	Component   string
	Semester    string
	SkillCode   string
	SkillID     string
	Description string
	GradeLabel  string
	Level       string
	Correct     string
	Total       string
	Evaluated   string
}

// SourceProfile is the mapping from one source system's row shape to
// ResultRecord, together with the labels and grades that source uses.
type SourceProfile struct {
	ID     string
	Name   string
	Fields FieldMap

	// ComponentAliases maps upper-cased source values to components.
	ComponentAliases map[string]Component

	// Labels are the display names of the components.
	Labels map[Component]string

	// GradeSet lists the school grades this source evaluates.
	GradeSet []string
}

// Label returns the display label of c, falling back to its code.
func (p SourceProfile) Label(c Component) string {
	if l, ok := p.Labels[c]; ok && l != "" {
		return l
	}
	return string(c)
}

// WithLabels returns a copy of the profile with label overrides applied.
// Keys may be component codes ("LP") in any case.
func (p SourceProfile) WithLabels(overrides map[string]string) SourceProfile {
	if len(overrides) == 0 {
		return p
	}
	labels := make(map[Component]string, len(p.Labels))
	for k, v := range p.Labels {
		labels[k] = v
	}
	for k, v := range overrides {
		labels[Component(strings.ToUpper(strings.TrimSpace(k)))] = v
	}
	p.Labels = labels
	return p
}

// DefaultLabels are the component labels used by both built-in sources.
var DefaultLabels = map[Component]string{
	ComponentLanguage: "Língua Portuguesa",
	ComponentMath:     "Matemática",
}

var defaultAliases = map[string]Component{
	"LP":                ComponentLanguage,
	"LINGUA PORTUGUESA": ComponentLanguage,
	"LÍNGUA PORTUGUESA": ComponentLanguage,
	"PORTUGUES":         ComponentLanguage,
	"PORTUGUÊS":         ComponentLanguage,
	"MT":                ComponentMath,
	"MAT":               ComponentMath,
	"MATEMATICA":        ComponentMath,
	"MATEMÁTICA":        ComponentMath,
}

var baseFields = FieldMap{
	Student:     "nome_aluno",
	Class:       "turma",
	Unit:        "unidade",
	SchoolGrade: "ano_escolar",
	Component:   "componente",
	Semester:    "semestre",
	SkillCode:   "habilidade_codigo",
	SkillID:     "habilidade_id",
	Description: "descricao_habilidade",
	Correct:     "acertos",
	Total:       "total",
	Evaluated:   "avaliado",
}

// ProvaParana is the state assessment source.
var ProvaParana = func() SourceProfile {
	f := baseFields
	f.Level = "nivel_aprendizagem"
	return SourceProfile{
		ID:               "prova-parana",
		Name:             "Prova Paraná Recomposição",
		Fields:           f,
		ComponentAliases: defaultAliases,
		Labels:           DefaultLabels,
		GradeSet:         []string{"9º ano", "3º ano"},
	}
}()

// Parceiro is the partner-school assessment source. It reports a
// performance standard instead of a learning level and carries the grade
// label each skill originates from.
var Parceiro = func() SourceProfile {
	f := baseFields
	f.Level = "padrao_desempenho"
	f.GradeLabel = "ano_escolar_resultados"
	return SourceProfile{
		ID:               "parceiro",
		Name:             "Avaliação Parceiro da Escola",
		Fields:           f,
		ComponentAliases: defaultAliases,
		Labels:           DefaultLabels,
		GradeSet:         []string{"8º ano", "2º ano"},
	}
}()

var profiles = map[string]SourceProfile{
	ProvaParana.ID: ProvaParana,
	Parceiro.ID:    Parceiro,
}

// Lookup returns the built-in profile for a source id.
func Lookup(id string) (SourceProfile, error) {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return SourceProfile{}, fmt.Errorf("unknown source %q (known: %s)", id, strings.Join(ProfileIDs(), ", "))
	}
	return p, nil
}

// ProfileIDs returns the ids of the built-in profiles, sorted.
func ProfileIDs() []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
