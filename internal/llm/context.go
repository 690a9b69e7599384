package llm

import "context"

type ctxKey int

const (
	purposeKey ctxKey = iota
	subjectKey
)

// WithPurpose tags requests made with ctx, e.g. "insights". The tag is
// recorded in the event log and grouped by `llm stats`.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose tag, or "" when none was set.
func PurposeFrom(ctx context.Context) string {
	s, _ := ctx.Value(purposeKey).(string)
	return s
}

// WithSubject records who a request is about, typically a student key.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// SubjectFrom returns the subject, or "" when none was set.
func SubjectFrom(ctx context.Context) string {
	s, _ := ctx.Value(subjectKey).(string)
	return s
}
