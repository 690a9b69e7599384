package remediation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semestra/semestra/internal/records"
)

func result(comp records.Component, code, label string, sem records.Semester, correct, total int) records.ResultRecord {
	return records.ResultRecord{
		Student:          "Ana",
		Class:            "9A",
		Component:        comp,
		Semester:         sem,
		SkillCode:        code,
		SkillID:          code,
		SkillDescription: "Descrição " + code,
		GradeLabel:       label,
		Correct:          correct,
		Total:            total,
		Evaluated:        true,
	}
}

func codes(weak []WeakSkill) []string {
	out := make([]string, len(weak))
	for i, w := range weak {
		out[i] = w.SkillCode
	}
	return out
}

func TestWeakSkillsExcludesPerfectAndUnevaluated(t *testing.T) {
	notEvaluated := result(records.ComponentMath, "M04", "3º ANO", 1, 0, 10)
	notEvaluated.Evaluated = false

	recs := []records.ResultRecord{
		result(records.ComponentMath, "M01", "3º ANO", 1, 10, 10),
		result(records.ComponentMath, "M02", "3º ANO", 1, 9, 10),
		result(records.ComponentMath, "M03", "3º ANO", 1, 0, 0),
		notEvaluated,
	}

	weak := WeakSkills(recs, records.SemesterFirst)
	require.Len(t, weak, 1)
	assert.Equal(t, "M02", weak[0].SkillCode)
	assert.InDelta(t, 90.0, weak[0].Pct, 1e-9)
	assert.Equal(t, 3.0, weak[0].DifficultyRank)
}

func TestWeakSkillsOrdering(t *testing.T) {
	recs := []records.ResultRecord{
		result(records.ComponentMath, "M01", "ENSINO MÉDIO", 1, 1, 10),
		result(records.ComponentMath, "M02", "5º ANO", 1, 4, 10),
		result(records.ComponentLanguage, "L01", "5º ANO", 1, 6, 10),
		result(records.ComponentLanguage, "L02", "", 1, 9, 10),
		result(records.ComponentLanguage, "L03", "1º ANO ENSINO MÉDIO", 1, 5, 10),
		result(records.ComponentMath, "M03", "2º ANO", 1, 5, 10),
	}

	weak := WeakSkills(recs, records.SemesterFirst)
	assert.Equal(t, []string{"M03", "L01", "M02", "L03", "M01", "L02"}, codes(weak))
	assert.True(t, math.IsInf(weak[5].DifficultyRank, 1))
}

func TestWeakSkillsTieBreakHigherPctFirst(t *testing.T) {
	recs := []records.ResultRecord{
		result(records.ComponentMath, "A", "4º ANO", 1, 4, 10),
		result(records.ComponentMath, "B", "4º ANO", 1, 6, 10),
	}

	weak := WeakSkills(recs, records.SemesterFirst)
	assert.Equal(t, []string{"B", "A"}, codes(weak))
}

func TestWeakSkillsPoolsRowsOfOneSkill(t *testing.T) {
	recs := []records.ResultRecord{
		result(records.ComponentMath, "M01", "", 1, 1, 2),
		result(records.ComponentMath, "M01", "6º ANO", 1, 9, 10),
	}

	weak := WeakSkills(recs, records.SemesterFirst)
	require.Len(t, weak, 1)
	assert.InDelta(t, 100*10.0/12.0, weak[0].Pct, 1e-9)
	assert.Equal(t, "6º ANO", weak[0].GradeLabel, "first non-empty label wins")
	assert.Equal(t, 6.0, weak[0].DifficultyRank)
}

func TestWeakSkillsPooledPerfectIsExcluded(t *testing.T) {
	recs := []records.ResultRecord{
		result(records.ComponentMath, "M01", "", 1, 5, 5),
		result(records.ComponentMath, "M01", "", 1, 5, 5),
	}
	assert.Empty(t, WeakSkills(recs, records.SemesterFirst))
}

func TestWeakSkillsSemesterSelection(t *testing.T) {
	recs := []records.ResultRecord{
		result(records.ComponentMath, "M01", "", 1, 5, 10),
		result(records.ComponentMath, "M02", "", 2, 3, 10),
	}

	assert.Equal(t, []string{"M01"}, codes(WeakSkills(recs, records.SemesterFirst)))
	assert.Equal(t, []string{"M02"}, codes(WeakSkills(recs, records.SemesterSecond)))
	assert.Equal(t, []string{"M02"}, codes(WeakSkills(recs, 0)), "latest semester by default")
	assert.Equal(t, records.SemesterSecond, LatestSemester(recs))
	assert.Equal(t, records.Semester(0), LatestSemester(nil))
}

func TestWeakSkillsDoesNotMutateInput(t *testing.T) {
	recs := []records.ResultRecord{
		result(records.ComponentMath, "M02", "5º ANO", 1, 4, 10),
		result(records.ComponentMath, "M01", "3º ANO", 1, 4, 10),
	}
	before := append([]records.ResultRecord(nil), recs...)

	_ = WeakSkills(recs, records.SemesterFirst)
	assert.Equal(t, before, recs)
}

func TestPrioritize(t *testing.T) {
	recs := []records.ResultRecord{
		result(records.ComponentMath, "M01", "", 1, 10, 10),
	}

	weak, sem, err := Prioritize(recs, 0)
	assert.ErrorIs(t, err, ErrNoWeakSkills)
	assert.Nil(t, weak)
	assert.Equal(t, records.SemesterFirst, sem)

	recs = append(recs, result(records.ComponentMath, "M02", "", 1, 3, 10))
	weak, _, err = Prioritize(recs, records.SemesterFirst)
	require.NoError(t, err)
	assert.Equal(t, []string{"M02"}, codes(weak))
}
