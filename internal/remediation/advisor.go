package remediation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/semestra/semestra/internal/llm"
	"github.com/semestra/semestra/internal/records"
)

// Purpose labels insight requests in the LLM event log.
const Purpose = "insights"

// Advisor produces the insights document for a student, through the
// narrative collaborator when one is configured and locally otherwise.
type Advisor struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
	now      func() time.Time
}

// NewAdvisor creates an Advisor. A nil provider always uses Fallback.
func NewAdvisor(provider llm.Provider, cfg Config, log *zap.Logger) *Advisor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Advisor{provider: provider, cfg: cfg, log: log, now: time.Now}
}

// Generate returns the insights for student's weak skills, which must be
// in WeakSkills order. It never fails: any collaborator error or
// unparseable answer yields the Fallback document.
func (a *Advisor) Generate(ctx context.Context, student StudentInfo, weak []WeakSkill) *Insights {
	ins := a.generate(ctx, student, weak)
	ins.ID = uuid.NewString()
	ins.Student = student
	ins.GeneratedAt = a.now().UTC()
	return ins
}

func (a *Advisor) generate(ctx context.Context, student StudentInfo, weak []WeakSkill) *Insights {
	log := a.log.With(zap.String("student", student.Name), zap.Int("weak_skills", len(weak)))

	if a.provider == nil {
		log.Debug("no llm provider, using fallback insights")
		return Fallback(student, weak, a.cfg.Plan)
	}
	if len(weak) == 0 {
		log.Debug("no weak skills, using fallback insights")
		return Fallback(student, weak, a.cfg.Plan)
	}

	ctx = llm.WithSubject(llm.WithPurpose(ctx, Purpose), records.StudentKey(student.Name, student.Class))

	plan := Schedule(weak, a.cfg.Plan)
	req := llm.Request{
		System: insightsSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildPrompt(student, weak, plan, a.cfg.Plan)},
		},
		Schema:      InsightsSchema,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		log.Warn("insight generation failed, using fallback", zap.Error(err))
		return Fallback(student, weak, a.cfg.Plan)
	}

	ins, err := ParseInsights(string(resp.Content))
	if err != nil {
		log.Warn("insight response unusable, using fallback", zap.Error(err))
		return Fallback(student, weak, a.cfg.Plan)
	}
	if got := len(ins.Schedule); ins.alignSchedule(plan) {
		log.Warn("insight schedule does not match the plan, using local schedule",
			zap.Int("weeks", len(plan)), zap.Int("got", got))
	}

	log.Debug("insights generated", zap.String("model", resp.Model))
	ins.Source = SourceLLM
	return ins
}
