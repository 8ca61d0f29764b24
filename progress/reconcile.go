package progress

import (
	"math"

	courseModels "scl/models/course"
)

// Count is a completed/total pair with an integer percentage
type Count struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// DetailedTopic is a title-resolved topic reference
type DetailedTopic struct {
	TopicID    uint   `json:"topicId"`
	TopicTitle string `json:"topicTitle"`
}

// DetailedLesson is a title-resolved lesson with its completed topics
type DetailedLesson struct {
	LessonID        uint            `json:"lessonId"`
	LessonTitle     string          `json:"lessonTitle"`
	CompletedTopics []DetailedTopic `json:"completedTopics"`
	QuizScore       *int            `json:"quizScore,omitempty"`
	Feedback        string          `json:"feedback,omitempty"`
}

// DetailedModule is a title-resolved module with its completed lessons
type DetailedModule struct {
	ModuleID         uint             `json:"moduleId"`
	ModuleTitle      string           `json:"moduleTitle"`
	CompletedLessons []DetailedLesson `json:"completedLessons"`
}

// Summary is the reconciled view of one ledger against the live tree
type Summary struct {
	Modules  Count            `json:"modules"`
	Lessons  Count            `json:"lessons"`
	Detailed []DetailedModule `json:"detailed"`
}

// Percent computes round(100*completed/total) clamped to [0,100]. A zero
// or negative total yields 0, never a division failure. Completed counts
// may exceed the live total when the ledger carries historical credit for
// removed lessons; the clamp keeps the percentage in range.
func Percent(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completed) / float64(total) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// Covered reports whether the summary accounts for every module and
// lesson of the live tree by exact count. Percent rounds half up, so a
// large course can show 100 one lesson early; completion decisions must
// compare counts, never percentages. An empty tree is never covered.
func (s Summary) Covered() bool {
	return s.Modules.Total > 0 && s.Lessons.Total > 0 &&
		s.Modules.Completed >= s.Modules.Total &&
		s.Lessons.Completed >= s.Lessons.Total
}

// Reconcile computes deduplicated counts and percentages for one ledger
// against the live tree, plus the title-resolved detailed view.
//
//   - module count is the number of ledger module entries (unique by the
//     write-time invariant enforced in ValidateLedger)
//   - lesson count is the cardinality of the distinct lesson-id set across
//     all module entries: a lesson is never double-counted even if the
//     stored document is malformed
//   - totals come from the live tree, so editing a course changes existing
//     users' percentages (intentional, documented behavior)
//   - for a completed ledger every topic under a completed lesson is
//     reported complete regardless of the stored per-topic list
//
// Stale references to removed nodes keep their numerator credit and are
// rendered with sentinel titles.
func Reconcile(mods []courseModels.CompletedModule, isCompleted bool, t *Tree) Summary {
	completedModules := len(mods)

	lessonSet := make(map[uint]bool)
	for _, mod := range mods {
		for _, les := range mod.CompletedLessons {
			lessonSet[les.LessonID] = true
		}
	}
	completedLessons := len(lessonSet)

	detailed := make([]DetailedModule, 0, len(mods))
	for _, mod := range mods {
		dm := DetailedModule{
			ModuleID:         mod.ModuleID,
			ModuleTitle:      t.ModuleTitle(mod.ModuleID),
			CompletedLessons: make([]DetailedLesson, 0, len(mod.CompletedLessons)),
		}
		for _, les := range mod.CompletedLessons {
			dl := DetailedLesson{
				LessonID:    les.LessonID,
				LessonTitle: t.LessonTitle(les.LessonID),
				QuizScore:   les.QuizScore,
				Feedback:    les.Feedback,
			}

			// Completed course: report the full live topic list for the
			// lesson. Otherwise only the explicitly recorded topics.
			var topicIDs []uint
			if isCompleted {
				topicIDs = t.LessonTopicIDs(les.LessonID)
			} else {
				topicIDs = les.CompletedTopics
			}
			dl.CompletedTopics = make([]DetailedTopic, 0, len(topicIDs))
			for _, topicID := range topicIDs {
				dl.CompletedTopics = append(dl.CompletedTopics, DetailedTopic{
					TopicID:    topicID,
					TopicTitle: t.TopicTitle(topicID),
				})
			}
			dm.CompletedLessons = append(dm.CompletedLessons, dl)
		}
		detailed = append(detailed, dm)
	}

	return Summary{
		Modules: Count{
			Completed: completedModules,
			Total:     t.TotalModules,
			Percent:   Percent(completedModules, t.TotalModules),
		},
		Lessons: Count{
			Completed: completedLessons,
			Total:     t.TotalLessons,
			Percent:   Percent(completedLessons, t.TotalLessons),
		},
		Detailed: detailed,
	}
}
