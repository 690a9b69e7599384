package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/semestra/semestra/internal/dataset"
	"github.com/semestra/semestra/internal/llm"
	"github.com/semestra/semestra/internal/records"
	"github.com/semestra/semestra/internal/remediation"
	"github.com/semestra/semestra/internal/report"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a remediation plan for one student",
	Long: `Rank the student's weak skills by grade difficulty, spread them over a
weekly schedule and write the insights document. The narrative comes from
the configured LLM provider; without one, or with --offline, it is built
locally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		f := cmd.Flags()
		opts := planOptions{source: readSource(cmd)}
		opts.student, _ = f.GetString("student")
		opts.class, _ = f.GetString("class")
		sem, _ := f.GetInt("semester")
		opts.semester = records.Semester(sem)
		opts.json, _ = f.GetBool("json")
		opts.offline, _ = f.GetBool("offline")
		opts.promptOnly, _ = f.GetBool("prompt")

		if opts.semester != 0 && !opts.semester.Valid() {
			return fmt.Errorf("--semester must be 1 or 2")
		}

		var provider llm.Provider
		if !opts.offline && !opts.promptOnly {
			provider = newProvider(cmd.Context(), e)
		}
		return runPlan(cmd.Context(), e, provider, opts)
	},
}

type planOptions struct {
	source     string
	student    string
	class      string
	semester   records.Semester
	json       bool
	offline    bool
	promptOnly bool
}

type planOutput struct {
	Semester   records.Semester        `json:"semester"`
	WeakSkills []remediation.WeakSkill `json:"weakSkills"`
	Insights   *remediation.Insights   `json:"insights"`
}

// newProvider builds the configured LLM provider, or returns nil so the
// plan is built locally.
func newProvider(ctx context.Context, e *env) llm.Provider {
	cfg, ok := e.cfg.LLM.Resolve()
	if !ok {
		e.log.Info("no LLM provider configured, insights are built locally")
		return nil
	}
	p, err := llm.NewProvider(ctx, cfg, e.store.EventRepo(), e.log)
	if err != nil {
		e.log.Warn("LLM provider unavailable, insights are built locally", zap.Error(err))
		return nil
	}
	return p
}

// resolveStudent picks the one student matching name and, when given,
// class.
func resolveStudent(recs []records.ResultRecord, name, class string) (dataset.Student, error) {
	var matches []dataset.Student
	for _, s := range dataset.Students(recs) {
		if !strings.EqualFold(s.Name, name) {
			continue
		}
		if class != "" && !strings.EqualFold(s.Class, class) {
			continue
		}
		matches = append(matches, s)
	}

	switch len(matches) {
	case 0:
		return dataset.Student{}, fmt.Errorf("no results for student %q", name)
	case 1:
		return matches[0], nil
	default:
		classes := make([]string, len(matches))
		for i, m := range matches {
			classes[i] = m.Class
		}
		return dataset.Student{}, fmt.Errorf("student %q is in several classes (%s); use --class",
			name, strings.Join(classes, ", "))
	}
}

func runPlan(ctx context.Context, e *env, provider llm.Provider, opts planOptions) error {
	recs, _, err := e.loader().Load(ctx, dataset.Query{Source: opts.source, Student: opts.student})
	if err != nil {
		return err
	}

	st, err := resolveStudent(recs, strings.TrimSpace(opts.student), strings.TrimSpace(opts.class))
	if err != nil {
		return err
	}
	recs = records.Filter{Student: st.Name, Class: st.Class}.Apply(recs)

	weak, sem, err := remediation.Prioritize(recs, opts.semester)
	if err != nil && !errors.Is(err, remediation.ErrNoWeakSkills) {
		return err
	}
	if sem == 0 {
		return fmt.Errorf("no evaluated results for student %q", st.Name)
	}
	if errors.Is(err, remediation.ErrNoWeakSkills) {
		e.log.Info("student has no weak skills", zap.String("student", st.Name), zap.Int("semester", int(sem)))
	}

	info := remediation.StudentInfo{Name: st.Name, Class: st.Class, Unit: st.Unit, Semester: sem}
	rcfg := remediation.DefaultConfig()
	rcfg.Plan = e.cfg.PlanSettings()

	if opts.promptOnly {
		plan := remediation.Schedule(weak, rcfg.Plan)
		_, err := fmt.Fprintln(e.out, remediation.BuildPrompt(info, weak, plan, rcfg.Plan))
		return err
	}

	ins := remediation.NewAdvisor(provider, rcfg, e.log).Generate(ctx, info, weak)

	if opts.json {
		if weak == nil {
			weak = []remediation.WeakSkill{}
		}
		return report.JSON(e.out, planOutput{Semester: sem, WeakSkills: weak, Insights: ins})
	}
	return report.Plan(e.out, weak, ins, e.reportOptions())
}

func init() {
	f := planCmd.Flags()
	f.String("student", "", "Student name (required)")
	f.String("class", "", "Class, when the name appears in more than one")
	f.Int("semester", 0, "Semester to analyze (default: latest with results)")
	f.Bool("json", false, "Write JSON instead of text")
	f.Bool("offline", false, "Do not call the LLM provider")
	f.Bool("prompt", false, "Print the LLM prompt payload and exit")
	_ = planCmd.MarkFlagRequired("student")
}
