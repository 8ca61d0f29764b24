package progressValidator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestProgressUpdateRequestValid(t *testing.T) {
	req := ProgressUpdateRequest{
		CourseID: 1,
		ModuleID: 2,
		LessonID: 3,
		TopicID:  4,
	}
	assert.NoError(t, validate.Struct(req))

	req.QuizScore = intPtr(85)
	req.Feedback = "great lesson"
	assert.NoError(t, validate.Struct(req))
}

func TestProgressUpdateRequestMissingIDs(t *testing.T) {
	req := ProgressUpdateRequest{CourseID: 1, ModuleID: 2}
	err := validate.Struct(req)
	require.Error(t, err)

	errors := fieldErrors(err)
	assert.Contains(t, errors, "lessonID")
	assert.Contains(t, errors, "topicID")
	assert.NotContains(t, errors, "courseID")
}

func TestProgressUpdateRequestQuizScoreBounds(t *testing.T) {
	req := ProgressUpdateRequest{
		CourseID:  1,
		ModuleID:  2,
		LessonID:  3,
		TopicID:   4,
		QuizScore: intPtr(101),
	}
	assert.Error(t, validate.Struct(req))

	req.QuizScore = intPtr(-1)
	assert.Error(t, validate.Struct(req))

	req.QuizScore = intPtr(0)
	assert.NoError(t, validate.Struct(req))

	req.QuizScore = intPtr(100)
	assert.NoError(t, validate.Struct(req))
}

func TestCompleteBulkRequestNeedsUsers(t *testing.T) {
	assert.Error(t, validate.Struct(CompleteBulkRequest{}))

	req := CompleteBulkRequest{Users: []CompleteCourseRequest{{UserID: 1, CourseID: 2}}}
	assert.NoError(t, validate.Struct(req))

	// dive reaches into each pair
	bad := CompleteBulkRequest{Users: []CompleteCourseRequest{{UserID: 1}}}
	assert.Error(t, validate.Struct(bad))
}
