package progress

import (
	courseModels "scl/models/course"

	"gorm.io/gorm"
)

func gormModel(id uint) gorm.Model { return gorm.Model{ID: id} }

// fixtureTree builds a course tree with the given number of lessons per
// module. Module ids are 1..n, lesson ids are moduleID*10+k (1-based), and
// every lesson has two topics with ids lessonID*100+1 and lessonID*100+2.
func fixtureTree(lessonsPerModule ...int) *Tree {
	var modules []courseModels.CourseModule
	var lessons []courseModels.Lesson
	var topics []courseModels.Topic

	for mi, lessonCount := range lessonsPerModule {
		moduleID := uint(mi + 1)
		modules = append(modules, courseModels.CourseModule{
			Model: gormModel(moduleID),
			Title: moduleTitle(moduleID),
		})
		for li := 1; li <= lessonCount; li++ {
			lessonID := moduleID*10 + uint(li)
			lessons = append(lessons, courseModels.Lesson{
				Model:    gormModel(lessonID),
				ModuleID: moduleID,
				Title:    lessonTitle(lessonID),
			})
			for ti := uint(1); ti <= 2; ti++ {
				topicID := lessonID*100 + ti
				topics = append(topics, courseModels.Topic{
					Model:    gormModel(topicID),
					LessonID: lessonID,
					Title:    topicTitle(topicID),
				})
			}
		}
	}

	return BuildTree(modules, lessons, topics)
}

// completeModule returns a ledger entry marking every lesson of the module
// complete with all of its topics.
func completeModule(t *Tree, moduleID uint) courseModels.CompletedModule {
	entry := courseModels.CompletedModule{ModuleID: moduleID}
	for _, lessonID := range t.Modules[moduleID].LessonIDs {
		topicIDs := t.LessonTopicIDs(lessonID)
		topics := make([]uint, len(topicIDs))
		copy(topics, topicIDs)
		entry.CompletedLessons = append(entry.CompletedLessons, courseModels.CompletedLesson{
			LessonID:        lessonID,
			CompletedTopics: topics,
		})
	}
	return entry
}

func moduleTitle(id uint) string { return "Module " + itoa(id) }
func lessonTitle(id uint) string { return "Lesson " + itoa(id) }
func topicTitle(id uint) string  { return "Topic " + itoa(id) }

func itoa(v uint) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
