package progress

import (
	"testing"

	courseModels "scl/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTreeTotals(t *testing.T) {
	tree := fixtureTree(5, 3)

	assert.Equal(t, 2, tree.TotalModules)
	assert.Equal(t, 8, tree.TotalLessons)
	assert.Equal(t, 16, tree.TotalTopics)
	assert.Equal(t, []uint{1, 2}, tree.ModuleOrder)
	assert.Len(t, tree.Modules[1].LessonIDs, 5)
	assert.Len(t, tree.Modules[2].LessonIDs, 3)
}

func TestBuildTreeSkipsOrphans(t *testing.T) {
	modules := []courseModels.CourseModule{{Model: gormModel(1), Title: "M1"}}
	lessons := []courseModels.Lesson{
		{Model: gormModel(11), ModuleID: 1, Title: "L11"},
		{Model: gormModel(99), ModuleID: 42, Title: "orphan"}, // parent missing
	}
	topics := []courseModels.Topic{
		{Model: gormModel(1101), LessonID: 11, Title: "T1101"},
		{Model: gormModel(9901), LessonID: 99, Title: "orphan topic"},
	}

	tree := BuildTree(modules, lessons, topics)

	require.Equal(t, 1, tree.TotalLessons)
	assert.Equal(t, 1, tree.TotalTopics)
	assert.NotContains(t, tree.Lessons, uint(99))
}

func TestTitleSentinels(t *testing.T) {
	tree := fixtureTree(1)

	assert.Equal(t, "Module 1", tree.ModuleTitle(1))
	assert.Equal(t, UnknownModuleTitle, tree.ModuleTitle(404))
	assert.Equal(t, UnknownLessonTitle, tree.LessonTitle(404))
	assert.Equal(t, UnknownTopicTitle, tree.TopicTitle(404))
	assert.Nil(t, tree.LessonTopicIDs(404))
}
