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

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare each student's results between the two semesters",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		opts, err := compareFlags(cmd)
		if err != nil {
			return err
		}
		return runCompare(cmd.Context(), e, opts)
	},
}

type compareOptions struct {
	source string
	filter records.Filter
	skills bool
	json   bool
}

// readSource returns the --source flag only when it was given; reads
// otherwise span every stored source.
func readSource(cmd *cobra.Command) string {
	if !cmd.Flags().Changed("source") {
		return ""
	}
	s, _ := cmd.Flags().GetString("source")
	return s
}

func compareFlags(cmd *cobra.Command) (compareOptions, error) {
	f := cmd.Flags()
	student, _ := f.GetString("student")
	class, _ := f.GetString("class")
	unit, _ := f.GetString("unit")
	grade, _ := f.GetString("grade")
	level, _ := f.GetString("level")
	component, _ := f.GetString("component")
	skills, _ := f.GetBool("skills")
	asJSON, _ := f.GetBool("json")

	opts := compareOptions{
		source: readSource(cmd),
		filter: records.Filter{
			Student:     strings.TrimSpace(student),
			Class:       strings.TrimSpace(class),
			Unit:        unit,
			SchoolGrade: grade,
			Level:       level,
		},
		skills: skills,
		json:   asJSON,
	}
	if component != "" {
		c, err := parseComponent(component)
		if err != nil {
			return opts, err
		}
		opts.filter.Component = c
	}
	return opts, nil
}

func parseComponent(s string) (records.Component, error) {
	c := records.Component(strings.ToUpper(strings.TrimSpace(s)))
	for _, k := range records.Components {
		if c == k {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown component %q (want LP or MT)", s)
}

type compareOutput struct {
	Summary  compare.Summary             `json:"summary"`
	Students []compare.StudentComparison `json:"students"`
}

func runCompare(ctx context.Context, e *env, opts compareOptions) error {
	recs, _, err := e.loader().Load(ctx, dataset.Query{Source: opts.source})
	if err != nil {
		return err
	}
	recs = opts.filter.Apply(recs)

	students := compare.Rollup(recs)
	summary := compare.Summarize(students)

	if opts.json {
		if students == nil {
			students = []compare.StudentComparison{}
		}
		return report.JSON(e.out, compareOutput{Summary: summary, Students: students})
	}

	ro := e.reportOptions()
	ro.Skills = opts.skills
	if err := report.Summary(e.out, summary, ro); err != nil {
		return err
	}
	fmt.Fprintln(e.out)
	return report.Comparison(e.out, students, ro)
}

func init() {
	f := compareCmd.Flags()
	f.String("student", "", "Only this student (exact name)")
	f.String("class", "", "Only this class")
	f.String("unit", "", "Only this school unit")
	f.String("grade", "", "Only this school grade (e.g. \"9º ano\")")
	f.String("level", "", "Only this learning level / performance standard")
	f.String("component", "", "Only this component (LP or MT)")
	f.Bool("skills", false, "Show one line per skill")
	f.Bool("json", false, "Write JSON instead of text")
}
