package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/semestra/semestra/internal/compare"
	"github.com/semestra/semestra/internal/dataset"
	"github.com/semestra/semestra/internal/records"
	"github.com/semestra/semestra/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the evolution summary per class",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return runStats(cmd.Context(), e, readSource(cmd))
	},
}

func runStats(ctx context.Context, e *env, source string) error {
	recs, _, err := e.loader().Load(ctx, dataset.Query{Source: source})
	if err != nil {
		return err
	}
	students := compare.Rollup(recs)
	if len(students) == 0 {
		fmt.Fprintln(e.out, "No results to summarize.")
		return nil
	}

	if err := report.Summary(e.out, compare.Summarize(students), e.reportOptions()); err != nil {
		return err
	}

	byClass := make(map[string][]compare.StudentComparison)
	var classes []string
	for _, s := range students {
		if _, ok := byClass[s.Class]; !ok {
			classes = append(classes, s.Class)
		}
		byClass[s.Class] = append(byClass[s.Class], s)
	}

	fmt.Fprintln(e.out)
	fmt.Fprintf(e.out, "%-10s  %8s  %4s  %4s  %4s  %4s  %8s\n", "Class", "Students", "↑", "↓", "=", "n/a", "Δ mean")
	fmt.Fprintln(e.out, strings.Repeat("─", 56))
	for _, c := range classes {
		sum := compare.Summarize(byClass[c])
		name := c
		if name == "" {
			name = report.Absent
		}
		fmt.Fprintf(e.out, "%-10s  %8d  %4d  %4d  %4d  %4d  %8s\n",
			name, sum.Students,
			sum.ByTrend[compare.TrendUp], sum.ByTrend[compare.TrendDown],
			sum.ByTrend[compare.TrendFlat], sum.ByTrend[compare.TrendNA],
			report.Delta(sum.MeanDelta))
	}

	for _, comp := range records.Components {
		var deltas []float64
		for _, s := range students {
			for _, c := range s.Components {
				if c.Component == comp && c.DeltaPct != nil {
					deltas = append(deltas, *c.DeltaPct)
				}
			}
		}
		if len(deltas) == 0 {
			continue
		}
		var total float64
		for _, d := range deltas {
			total += d
		}
		mean := total / float64(len(deltas))
		fmt.Fprintf(e.out, "\n%s: variação média %s em %d aluno(s)", e.cfg.PlanSettings().Label(comp), report.Delta(&mean), len(deltas))
	}
	fmt.Fprintln(e.out)
	return nil
}
