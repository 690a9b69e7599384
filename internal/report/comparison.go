package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/semestra/semestra/internal/compare"
	"github.com/semestra/semestra/internal/records"
)

// Options controls text rendering.
type Options struct {
	// Color enables ANSI styling.
	Color bool
	// Skills adds one line per matched skill under each component.
	Skills bool
	// Labels are the component display names; codes are used when absent.
	Labels map[records.Component]string
}

func (o Options) label(c records.Component) string {
	if l, ok := o.Labels[c]; ok && l != "" {
		return l
	}
	return string(c)
}

const descWidth = 48

// Comparison writes the semester-over-semester tree of each student.
func Comparison(w io.Writer, students []compare.StudentComparison, opts Options) error {
	st := newStyles(opts.Color)
	var b strings.Builder

	if len(students) == 0 {
		b.WriteString("Nenhum aluno com resultados nos dois semestres.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for i, s := range students {
		if i > 0 {
			b.WriteString("\n")
		}
		name := s.Student
		if s.Class != "" {
			name += " (" + s.Class + ")"
		}
		fmt.Fprintf(&b, "%s  %s %s\n", st.name.Render(name), st.badge(s.Trend), Delta(s.DeltaPct))

		for _, c := range s.Components {
			fmt.Fprintf(&b, "  %-22s 1º %7s   2º %7s   %s %s\n",
				opts.label(c.Component), Pct(c.MeanFirst), Pct(c.MeanSecond),
				st.badge(c.Trend), Delta(c.DeltaPct))

			if !opts.Skills {
				continue
			}
			for _, sk := range c.Skills {
				desc := truncate(sk.Description, descWidth)
				fmt.Fprintf(&b, "    %-10s %-*s %7s → %-7s %s %s\n",
					sk.SkillCode, descWidth, desc, Pct(sk.First), Pct(sk.Second),
					st.badge(sk.Trend), st.dim.Render(Delta(sk.DeltaPct)))
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Summary writes the headline numbers of a comparison tree.
func Summary(w io.Writer, sum compare.Summary, opts Options) error {
	st := newStyles(opts.Color)
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", st.title.Render("Evolução entre semestres"))
	fmt.Fprintf(&b, "  Alunos: %d   %s %d   %s %d   %s %d   %s %d\n",
		sum.Students,
		st.badge(compare.TrendUp), sum.ByTrend[compare.TrendUp],
		st.badge(compare.TrendDown), sum.ByTrend[compare.TrendDown],
		st.badge(compare.TrendFlat), sum.ByTrend[compare.TrendFlat],
		st.badge(compare.TrendNA), sum.ByTrend[compare.TrendNA])
	fmt.Fprintf(&b, "  Média 1º: %s   Média 2º: %s   Variação média: %s\n",
		Pct(sum.First), Pct(sum.Second), Delta(sum.MeanDelta))

	_, err := io.WriteString(w, b.String())
	return err
}
