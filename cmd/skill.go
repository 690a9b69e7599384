package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/semestra/semestra/internal/compare"
	"github.com/semestra/semestra/internal/dataset"
	"github.com/semestra/semestra/internal/difficulty"
	"github.com/semestra/semestra/internal/records"
	"github.com/semestra/semestra/internal/report"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse the evaluated skills",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List evaluated skills, easiest grade first, with pooled results per semester",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		var filter records.Filter
		if c, _ := cmd.Flags().GetString("component"); c != "" {
			comp, err := parseComponent(c)
			if err != nil {
				return err
			}
			filter.Component = comp
		}
		filter.Class, _ = cmd.Flags().GetString("class")
		return runSkillList(cmd.Context(), e, readSource(cmd), filter)
	},
}

type skillRow struct {
	component   records.Component
	code        string
	id          string
	description string
	gradeLabel  string
	rank        float64
	first       []records.ResultRecord
	second      []records.ResultRecord
}

func runSkillList(ctx context.Context, e *env, source string, filter records.Filter) error {
	recs, _, err := e.loader().Load(ctx, dataset.Query{Source: source})
	if err != nil {
		return err
	}
	recs = filter.Apply(recs)

	byKey := make(map[string]*skillRow)
	var skills []*skillRow
	for _, r := range recs {
		k := string(r.Component) + "|" + r.SkillCode
		s, ok := byKey[k]
		if !ok {
			s = &skillRow{component: r.Component, code: r.SkillCode}
			byKey[k] = s
			skills = append(skills, s)
		}
		if s.id == "" {
			s.id = r.SkillID
		}
		if s.description == "" {
			s.description = r.SkillDescription
		}
		if s.gradeLabel == "" {
			s.gradeLabel = r.GradeLabel
		}
		if r.Semester == records.SemesterFirst {
			s.first = append(s.first, r)
		} else {
			s.second = append(s.second, r)
		}
	}
	if len(skills) == 0 {
		fmt.Fprintln(e.out, "No skills found.")
		return nil
	}

	for _, s := range skills {
		s.rank = difficulty.Rank(s.gradeLabel)
	}
	sort.SliceStable(skills, func(i, j int) bool {
		a, b := skills[i], skills[j]
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		if a.component != b.component {
			return a.component.Order() < b.component.Order()
		}
		return a.code < b.code
	})

	fmt.Fprintf(e.out, "%-4s  %-12s  %-8s  %-44s  %-7s  %7s  %7s  %s\n",
		"Comp", "Code", "ID", "Description", "Grade", "1º", "2º", "Trend")
	fmt.Fprintln(e.out, strings.Repeat("─", 110))

	for _, s := range skills {
		first := compare.AggregateRecords(s.first)
		second := compare.AggregateRecords(s.second)
		desc := s.description
		if r := []rune(desc); len(r) > 44 {
			desc = string(r[:41]) + "..."
		}
		fmt.Fprintf(e.out, "%-4s  %-12s  %-8s  %-44s  %-7s  %7s  %7s  %s\n",
			s.component, s.code, s.id, desc, difficulty.Short(s.rank),
			report.Pct(first), report.Pct(second),
			report.Badge(compare.Classify(compare.Delta(first, second))))
	}

	fmt.Fprintf(e.out, "\n%d skills\n", len(skills))
	return nil
}

func init() {
	skillListCmd.Flags().String("component", "", "Filter by component (LP or MT)")
	skillListCmd.Flags().String("class", "", "Filter by class")

	skillCmd.AddCommand(skillListCmd)
}
