// Package dataset reads stored result rows and turns them into normalized
// records, using the profile of the source each row came from.
package dataset

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/semestra/semestra/internal/records"
	"github.com/semestra/semestra/internal/store"
)

// ProfileFunc resolves a source id to its profile.
type ProfileFunc func(id string) (records.SourceProfile, error)

// Query selects the rows to load. Empty fields match everything.
type Query struct {
	Source  string
	Student string
}

// Loader loads normalized records from a RowRepo.
type Loader struct {
	rows    store.RowRepo
	profile ProfileFunc
	log     *zap.Logger
}

// NewLoader creates a Loader. A nil profile func uses records.Lookup.
func NewLoader(rows store.RowRepo, profile ProfileFunc, log *zap.Logger) *Loader {
	if profile == nil {
		profile = records.Lookup
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{rows: rows, profile: profile, log: log}
}

// Load normalizes the rows matching q. Without a source every stored
// source is loaded, each with its own profile.
func (l *Loader) Load(ctx context.Context, q Query) ([]records.ResultRecord, records.NormalizeStats, error) {
	sources := []string{q.Source}
	if q.Source == "" {
		summaries, err := l.rows.Sources(ctx)
		if err != nil {
			return nil, records.NormalizeStats{}, fmt.Errorf("list sources: %w", err)
		}
		sources = sources[:0]
		for _, s := range summaries {
			sources = append(sources, s.Source)
		}
	}

	var (
		out   []records.ResultRecord
		total records.NormalizeStats
	)
	for _, src := range sources {
		p, err := l.profile(src)
		if err != nil {
			return nil, total, err
		}
		rows, err := l.rows.Rows(ctx, store.RowQuery{Source: src, Student: q.Student})
		if err != nil {
			return nil, total, fmt.Errorf("load rows of %s: %w", src, err)
		}

		recs, stats := records.Normalize(rows, p)
		if stats.Dropped() > 0 {
			l.log.Info("rows dropped during normalization",
				zap.String("source", src),
				zap.Int("rows", stats.Rows),
				zap.Int("missing_student", stats.MissingStudent),
				zap.Int("bad_semester", stats.BadSemester),
				zap.Int("unknown_component", stats.UnknownComponent),
			)
		}
		out = append(out, recs...)
		total = addStats(total, stats)
	}

	l.log.Debug("records loaded", zap.Int("sources", len(sources)), zap.Int("records", len(out)))
	return out, total, nil
}

func addStats(a, b records.NormalizeStats) records.NormalizeStats {
	return records.NormalizeStats{
		Rows:             a.Rows + b.Rows,
		Kept:             a.Kept + b.Kept,
		MissingStudent:   a.MissingStudent + b.MissingStudent,
		BadSemester:      a.BadSemester + b.BadSemester,
		UnknownComponent: a.UnknownComponent + b.UnknownComponent,
	}
}

// Student is one distinct student in a record set.
type Student struct {
	Name  string
	Class string
	Unit  string
}

// Students returns the distinct students of recs ordered by name, then
// class.
func Students(recs []records.ResultRecord) []Student {
	seen := make(map[string]bool)
	var out []Student
	for _, r := range recs {
		k := r.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, Student{Name: r.Student, Class: r.Class, Unit: r.Unit})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Class < out[j].Class
	})
	return out
}
