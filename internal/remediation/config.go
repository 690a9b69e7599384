package remediation

import "github.com/semestra/semestra/internal/records"

// DefaultWeeks is the plan length in weeks.
const DefaultWeeks = 4

// DefaultMasteryTarget is the percentage each weak skill should reach.
const DefaultMasteryTarget = 80

// PlanConfig shapes the schedule and the fallback texts.
type PlanConfig struct {
	Weeks         int
	MasteryTarget int
	// Labels are the component display names used in focus lines.
	Labels map[records.Component]string
}

// DefaultPlanConfig returns the four-week plan with the default labels.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{
		Weeks:         DefaultWeeks,
		MasteryTarget: DefaultMasteryTarget,
		Labels:        records.DefaultLabels,
	}
}

func (c PlanConfig) weeks() int {
	if c.Weeks < 1 {
		return DefaultWeeks
	}
	return c.Weeks
}

func (c PlanConfig) target() int {
	if c.MasteryTarget < 1 || c.MasteryTarget > 100 {
		return DefaultMasteryTarget
	}
	return c.MasteryTarget
}

// Label returns the display label of a component.
func (c PlanConfig) Label(comp records.Component) string {
	if l, ok := c.Labels[comp]; ok && l != "" {
		return l
	}
	if l, ok := records.DefaultLabels[comp]; ok {
		return l
	}
	return string(comp)
}

// Config holds insight generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	Plan        PlanConfig
}

// DefaultConfig returns sensible defaults for insight generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.4,
		Plan:        DefaultPlanConfig(),
	}
}
