package progress

import (
	"testing"

	courseModels "scl/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Batch of 3 over a course with 8 lessons: one member without a ledger,
// one at 100%, one at 50%. Sum semantics: numerator 0+8+4=12 over
// denominator 3x8=24 -> 50%.
func TestRollupSumSemantics(t *testing.T) {
	tree := fixtureTree(5, 3)

	full := FullLedger(tree)

	// 4 of 8 lessons
	halfExact := []courseModels.CompletedModule{
		{ModuleID: 1, CompletedLessons: []courseModels.CompletedLesson{
			{LessonID: 11}, {LessonID: 12}, {LessonID: 13}, {LessonID: 14},
		}},
	}

	members := []Member{
		{UserID: 1, Name: "Asha", Email: "asha@example.com"},
		{UserID: 2, Name: "Ben", Email: "ben@example.com", HasLedger: true, Ledger: full, IsCompleted: true},
		{UserID: 3, Name: "Chi", Email: "chi@example.com", HasLedger: true, Ledger: halfExact},
	}

	rollup := RollupBatch(members, tree)

	assert.Equal(t, 3, rollup.TotalUsers)
	require.Len(t, rollup.Users, 3)

	assert.Equal(t, 12, rollup.Batch.Lessons.Completed)
	assert.Equal(t, 24, rollup.Batch.Lessons.Total)
	assert.Equal(t, 50, rollup.Batch.Lessons.Percent)

	// per-user percentages are reported unmodified
	assert.Equal(t, 0, rollup.Users[0].Progress.Lessons.Percent)
	assert.Equal(t, 100, rollup.Users[1].Progress.Lessons.Percent)
	assert.Equal(t, 50, rollup.Users[2].Progress.Lessons.Percent)

	// no-progress-yet is visible in the output, not just a zero count
	assert.False(t, rollup.Users[0].HasLedger)
	assert.True(t, rollup.Users[1].HasLedger)
	assert.True(t, rollup.Users[2].HasLedger)
}

// A member with no ledger counts in the denominator and contributes zero,
// without failing the rollup.
func TestRollupMemberWithoutLedger(t *testing.T) {
	tree := fixtureTree(2)

	rollup := RollupBatch([]Member{{UserID: 1, Name: "Solo", Email: "solo@example.com"}}, tree)

	assert.Equal(t, 1, rollup.TotalUsers)
	assert.False(t, rollup.Users[0].HasLedger)
	assert.Equal(t, 0, rollup.Batch.Lessons.Completed)
	assert.Equal(t, 2, rollup.Batch.Lessons.Total)
	assert.Equal(t, 0, rollup.Batch.Lessons.Percent)
	assert.Empty(t, rollup.Batch.Detailed)
}

func TestRollupEmptyBatch(t *testing.T) {
	tree := fixtureTree(3)

	rollup := RollupBatch(nil, tree)

	assert.Equal(t, 0, rollup.TotalUsers)
	assert.Equal(t, 0, rollup.Batch.Lessons.Total)
	assert.Equal(t, 0, rollup.Batch.Lessons.Percent)
}

// The cohort detailed tree deduplicates lessons and topics across members;
// it is display state, separate from the percentage math.
func TestRollupDetailedMergeDeduplicates(t *testing.T) {
	tree := fixtureTree(2)

	ledgerA := []courseModels.CompletedModule{
		{ModuleID: 1, CompletedLessons: []courseModels.CompletedLesson{
			{LessonID: 11, CompletedTopics: []uint{1101}},
		}},
	}
	ledgerB := []courseModels.CompletedModule{
		{ModuleID: 1, CompletedLessons: []courseModels.CompletedLesson{
			{LessonID: 11, CompletedTopics: []uint{1101, 1102}},
			{LessonID: 12, CompletedTopics: []uint{1201}},
		}},
	}

	members := []Member{
		{UserID: 1, HasLedger: true, Ledger: ledgerA},
		{UserID: 2, HasLedger: true, Ledger: ledgerB},
	}

	rollup := RollupBatch(members, tree)

	require.Len(t, rollup.Batch.Detailed, 1)
	mod := rollup.Batch.Detailed[0]
	assert.Equal(t, "Module 1", mod.ModuleTitle)
	require.Len(t, mod.CompletedLessons, 2)
	assert.Len(t, mod.CompletedLessons[0].CompletedTopics, 2) // 1101 deduped, 1102 merged

	// numerator: per-user dedup counts summed (1 + 2), not the cohort union
	assert.Equal(t, 3, rollup.Batch.Lessons.Completed)
	assert.Equal(t, 4, rollup.Batch.Lessons.Total)
}
