package progress

import (
	"testing"

	courseModels "scl/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyUpdateCreatesEntries(t *testing.T) {
	mods, changed, err := ApplyUpdate(nil, Update{ModuleID: 1, LessonID: 11, TopicID: 1101})
	require.NoError(t, err)
	assert.True(t, changed)

	require.Len(t, mods, 1)
	require.Len(t, mods[0].CompletedLessons, 1)
	assert.Equal(t, []uint{1101}, mods[0].CompletedLessons[0].CompletedTopics)
}

func TestApplyUpdateIsIdempotent(t *testing.T) {
	ev := Update{ModuleID: 1, LessonID: 11, TopicID: 1101}

	mods, _, err := ApplyUpdate(nil, ev)
	require.NoError(t, err)

	again, changed, err := ApplyUpdate(mods, ev)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, mods, again)
	require.NoError(t, ValidateLedger(again))
}

func TestApplyUpdateAppendsWithinExistingModule(t *testing.T) {
	mods, _, err := ApplyUpdate(nil, Update{ModuleID: 1, LessonID: 11, TopicID: 1101})
	require.NoError(t, err)

	mods, changed, err := ApplyUpdate(mods, Update{ModuleID: 1, LessonID: 12, TopicID: 1201})
	require.NoError(t, err)
	assert.True(t, changed)

	require.Len(t, mods, 1)
	assert.Len(t, mods[0].CompletedLessons, 2)
}

func TestApplyUpdateOverwritesQuizScoreAndFeedback(t *testing.T) {
	first := 40
	second := 85

	mods, _, err := ApplyUpdate(nil, Update{ModuleID: 1, LessonID: 11, TopicID: 1101, QuizScore: &first, Feedback: "meh"})
	require.NoError(t, err)

	mods, changed, err := ApplyUpdate(mods, Update{ModuleID: 1, LessonID: 11, TopicID: 1101, QuizScore: &second, Feedback: "better"})
	require.NoError(t, err)
	assert.True(t, changed)

	lesson := mods[0].CompletedLessons[0]
	require.NotNil(t, lesson.QuizScore)
	assert.Equal(t, 85, *lesson.QuizScore)
	assert.Equal(t, "better", lesson.Feedback)
	// topic was not duplicated by the second call
	assert.Equal(t, []uint{1101}, lesson.CompletedTopics)
}

func TestApplyUpdateRejectsMalformedEvents(t *testing.T) {
	_, _, err := ApplyUpdate(nil, Update{LessonID: 11, TopicID: 1101})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = ApplyUpdate(nil, Update{ModuleID: 1, TopicID: 1101})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = ApplyUpdate(nil, Update{ModuleID: 1, LessonID: 11})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateLedgerRejectsDuplicates(t *testing.T) {
	dupModules := []courseModels.CompletedModule{{ModuleID: 1}, {ModuleID: 1}}
	assert.ErrorIs(t, ValidateLedger(dupModules), ErrValidation)

	dupLessons := []courseModels.CompletedModule{{
		ModuleID:         1,
		CompletedLessons: []courseModels.CompletedLesson{{LessonID: 11}, {LessonID: 11}},
	}}
	assert.ErrorIs(t, ValidateLedger(dupLessons), ErrValidation)

	dupTopics := []courseModels.CompletedModule{{
		ModuleID: 1,
		CompletedLessons: []courseModels.CompletedLesson{
			{LessonID: 11, CompletedTopics: []uint{1101, 1101}},
		},
	}}
	assert.ErrorIs(t, ValidateLedger(dupTopics), ErrValidation)

	require.NoError(t, ValidateLedger(nil))
}

func TestFullLedgerCoversTree(t *testing.T) {
	tree := fixtureTree(2, 1)

	mods := FullLedger(tree)
	require.NoError(t, ValidateLedger(mods))

	summary := Reconcile(mods, false, tree)
	assert.Equal(t, 100, summary.Modules.Percent)
	assert.Equal(t, 100, summary.Lessons.Percent)
	assert.Equal(t, tree.TotalLessons, summary.Lessons.Completed)

	// every topic of every lesson is present
	total := 0
	for _, mod := range mods {
		for _, les := range mod.CompletedLessons {
			total += len(les.CompletedTopics)
		}
	}
	assert.Equal(t, tree.TotalTopics, total)
}
