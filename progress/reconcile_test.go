package progress

import (
	"testing"

	courseModels "scl/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Course with 2 modules (5 lessons, 3 lessons); user completed all of
// module 1. Expect modulePercent 50 and lessonPercent 63 (5/8 rounded).
func TestReconcileHalfCourse(t *testing.T) {
	tree := fixtureTree(5, 3)
	mods := []courseModels.CompletedModule{completeModule(tree, 1)}

	summary := Reconcile(mods, false, tree)

	assert.Equal(t, 1, summary.Modules.Completed)
	assert.Equal(t, 2, summary.Modules.Total)
	assert.Equal(t, 50, summary.Modules.Percent)

	assert.Equal(t, 5, summary.Lessons.Completed)
	assert.Equal(t, 8, summary.Lessons.Total)
	assert.Equal(t, 63, summary.Lessons.Percent)
}

// A lesson id appearing under two module entries (malformed input) must
// count once, never twice.
func TestReconcileDeduplicatesLessons(t *testing.T) {
	tree := fixtureTree(2, 2)
	mods := []courseModels.CompletedModule{
		{ModuleID: 1, CompletedLessons: []courseModels.CompletedLesson{{LessonID: 11}}},
		{ModuleID: 2, CompletedLessons: []courseModels.CompletedLesson{{LessonID: 11}, {LessonID: 21}}},
	}

	summary := Reconcile(mods, false, tree)

	assert.Equal(t, 2, summary.Lessons.Completed)
}

func TestReconcileEmptyTree(t *testing.T) {
	tree := fixtureTree()
	summary := Reconcile(nil, false, tree)

	assert.Equal(t, 0, summary.Modules.Percent)
	assert.Equal(t, 0, summary.Lessons.Percent)
	assert.Empty(t, summary.Detailed)
}

// A ledger referencing a lesson removed from the live tree keeps its
// numerator credit, renders with sentinel titles, and never throws. The
// denominator is always the live tree's.
func TestReconcileToleratesTreeDrift(t *testing.T) {
	tree := fixtureTree(2) // lessons 11, 12
	mods := []courseModels.CompletedModule{
		{
			ModuleID: 1,
			CompletedLessons: []courseModels.CompletedLesson{
				{LessonID: 11, CompletedTopics: []uint{1101}},
				{LessonID: 99, CompletedTopics: []uint{9901}}, // removed from course
			},
		},
		{ModuleID: 7}, // module removed from course
	}

	summary := Reconcile(mods, false, tree)

	assert.Equal(t, 2, summary.Lessons.Completed) // historical credit kept
	assert.Equal(t, 2, summary.Lessons.Total)     // live tree only
	assert.Equal(t, 100, summary.Lessons.Percent) // clamped, in range

	require.Len(t, summary.Detailed, 2)
	assert.Equal(t, UnknownLessonTitle, summary.Detailed[0].CompletedLessons[1].LessonTitle)
	assert.Equal(t, UnknownTopicTitle, summary.Detailed[0].CompletedLessons[1].CompletedTopics[0].TopicTitle)
	assert.Equal(t, UnknownModuleTitle, summary.Detailed[1].ModuleTitle)
}

// When the ledger is flagged completed, every live topic under a completed
// lesson is reported complete regardless of the stored per-topic list.
func TestReconcileCompletedExpandsTopics(t *testing.T) {
	tree := fixtureTree(1)
	mods := []courseModels.CompletedModule{
		{
			ModuleID: 1,
			CompletedLessons: []courseModels.CompletedLesson{
				{LessonID: 11, CompletedTopics: []uint{1101}}, // only one of two recorded
			},
		},
	}

	partial := Reconcile(mods, false, tree)
	require.Len(t, partial.Detailed[0].CompletedLessons[0].CompletedTopics, 1)

	completed := Reconcile(mods, true, tree)
	assert.Len(t, completed.Detailed[0].CompletedLessons[0].CompletedTopics, 2)
}

func TestPercentBounds(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 0))
	assert.Equal(t, 0, Percent(5, 0))
	assert.Equal(t, 0, Percent(0, 10))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 63, Percent(5, 8))
	assert.Equal(t, 100, Percent(8, 8))
	assert.Equal(t, 100, Percent(12, 8)) // historical credit clamped
	assert.Equal(t, 1, Percent(1, 200))
}

// Rounding shows 100 from 199/200; covered-by-count does not.
func TestCoveredRequiresExactCounts(t *testing.T) {
	require.Equal(t, 100, Percent(199, 200))

	almost := Summary{
		Modules: Count{Completed: 2, Total: 2, Percent: 100},
		Lessons: Count{Completed: 199, Total: 200, Percent: 100},
	}
	assert.False(t, almost.Covered())

	full := Summary{
		Modules: Count{Completed: 2, Total: 2, Percent: 100},
		Lessons: Count{Completed: 200, Total: 200, Percent: 100},
	}
	assert.True(t, full.Covered())

	// historical credit above the live total still counts as covered
	drifted := Summary{
		Modules: Count{Completed: 3, Total: 2, Percent: 100},
		Lessons: Count{Completed: 201, Total: 200, Percent: 100},
	}
	assert.True(t, drifted.Covered())

	empty := Summary{}
	assert.False(t, empty.Covered())
}
