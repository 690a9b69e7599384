package records

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeStats counts the rows Normalize dropped, by reason.
type NormalizeStats struct {
	Rows             int
	Kept             int
	MissingStudent   int
	BadSemester      int
	UnknownComponent int
}

// Dropped is the total number of rows that did not become records.
func (s NormalizeStats) Dropped() int {
	return s.MissingStudent + s.BadSemester + s.UnknownComponent
}

// Normalize coerces source rows into ResultRecords using the profile's field
// map. Rows without a student, with an unparseable semester or an unknown
// component are dropped; the input is not modified.
func Normalize(rows []Row, p SourceProfile) ([]ResultRecord, NormalizeStats) {
	stats := NormalizeStats{Rows: len(rows)}
	out := make([]ResultRecord, 0, len(rows))

	for _, row := range rows {
		rec, reason := normalizeRow(row, p)
		switch reason {
		case dropNone:
			out = append(out, rec)
			stats.Kept++
		case dropStudent:
			stats.MissingStudent++
		case dropSemester:
			stats.BadSemester++
		case dropComponent:
			stats.UnknownComponent++
		}
	}
	return out, stats
}

type dropReason int

const (
	dropNone dropReason = iota
	dropStudent
	dropSemester
	dropComponent
)

func normalizeRow(row Row, p SourceProfile) (ResultRecord, dropReason) {
	f := p.Fields

	student := StudentName(row, p)
	if student == "" {
		return ResultRecord{}, dropStudent
	}

	sem, ok := parseSemester(field(row, f.Semester))
	if !ok {
		return ResultRecord{}, dropSemester
	}

	comp, ok := p.ComponentAliases[strings.ToUpper(strings.TrimSpace(str(row, f.Component)))]
	if !ok {
		return ResultRecord{}, dropComponent
	}

	total := toCount(field(row, f.Total))
	correct := toCount(field(row, f.Correct))
	if correct > total {
		correct = total
	}

	evaluated := total > 0
	if v := field(row, f.Evaluated); v != nil {
		evaluated = toBool(v)
	}

	return ResultRecord{
		Student:          student,
		Class:            strings.TrimSpace(str(row, f.Class)),
		Unit:             strings.TrimSpace(str(row, f.Unit)),
		SchoolGrade:      strings.TrimSpace(str(row, f.SchoolGrade)),
		Component:        comp,
		Semester:         sem,
		SkillCode:        str(row, f.SkillCode),
		SkillID:          str(row, f.SkillID),
		SkillDescription: str(row, f.Description),
		GradeLabel:       str(row, f.GradeLabel),
		Level:            str(row, f.Level),
		Correct:          correct,
		Total:            total,
		Evaluated:        evaluated,
		Source:           p.ID,
	}, dropNone
}

func field(row Row, name string) any {
	if name == "" {
		return nil
	}
	return row[name]
}

// StudentName returns the trimmed student name of a raw row under p, as
// Normalize reads it.
func StudentName(row Row, p SourceProfile) string {
	return strings.TrimSpace(str(row, p.Fields.Student))
}

func str(row Row, name string) string {
	switch v := field(row, name).(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// parseSemester accepts 1, 2, "1", "2", "1º" and "2º".
func parseSemester(v any) (Semester, bool) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case nil:
		return 0, false
	default:
		n, ok := toFloat(t)
		if !ok || n != math.Trunc(n) {
			return 0, false
		}
		s = strconv.Itoa(int(n))
	}
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "º°ª")
	switch strings.TrimSpace(s) {
	case "1":
		return SemesterFirst, true
	case "2":
		return SemesterSecond, true
	}
	return 0, false
}

// toCount coerces a value to a non-negative integer; missing or invalid
// values become 0.
func toCount(v any) int {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int(math.Round(f))
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", ".")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "t", "1", "sim", "s", "yes", "y":
			return true
		}
		return false
	default:
		f, ok := toFloat(t)
		return ok && f != 0
	}
}
