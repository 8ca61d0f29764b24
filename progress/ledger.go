package progress

import (
	"errors"
	"fmt"

	courseModels "scl/models/course"
)

// ErrValidation marks malformed completion events and malformed ledgers.
// Handlers map it to a 422.
var ErrValidation = errors.New("validation error")

// Update is one completion event to merge into a ledger
type Update struct {
	ModuleID  uint
	LessonID  uint
	TopicID   uint
	QuizScore *int
	Feedback  string
}

// Validate rejects events that cannot be located in a ledger
func (u Update) Validate() error {
	if u.ModuleID == 0 {
		return fmt.Errorf("%w: moduleId is required", ErrValidation)
	}
	if u.LessonID == 0 {
		return fmt.Errorf("%w: lessonId is required", ErrValidation)
	}
	if u.TopicID == 0 {
		return fmt.Errorf("%w: topicId is required", ErrValidation)
	}
	return nil
}

// ApplyUpdate merges one completion event into a ledger: the module entry
// is located by id or appended, the lesson entry likewise, and the topic
// is added with set semantics. QuizScore and Feedback overwrite stored
// values when provided. The returned flag reports whether anything
// changed, so re-submitting the same event is a no-op.
func ApplyUpdate(mods []courseModels.CompletedModule, u Update) ([]courseModels.CompletedModule, bool, error) {
	if err := u.Validate(); err != nil {
		return mods, false, err
	}

	changed := false

	mi := indexOfModule(mods, u.ModuleID)
	if mi < 0 {
		mods = append(mods, courseModels.CompletedModule{ModuleID: u.ModuleID})
		mi = len(mods) - 1
		changed = true
	}

	li := indexOfLesson(mods[mi].CompletedLessons, u.LessonID)
	if li < 0 {
		mods[mi].CompletedLessons = append(mods[mi].CompletedLessons, courseModels.CompletedLesson{LessonID: u.LessonID})
		li = len(mods[mi].CompletedLessons) - 1
		changed = true
	}

	lesson := &mods[mi].CompletedLessons[li]

	if !containsID(lesson.CompletedTopics, u.TopicID) {
		lesson.CompletedTopics = append(lesson.CompletedTopics, u.TopicID)
		changed = true
	}

	if u.QuizScore != nil {
		if lesson.QuizScore == nil || *lesson.QuizScore != *u.QuizScore {
			changed = true
		}
		score := *u.QuizScore
		lesson.QuizScore = &score
	}
	if u.Feedback != "" {
		if lesson.Feedback != u.Feedback {
			changed = true
		}
		lesson.Feedback = u.Feedback
	}

	return mods, changed, nil
}

// ValidateLedger enforces the write-time uniqueness invariants: one entry
// per module id, one entry per lesson id within a module, no duplicate
// topic ids within a lesson. Duplicates are rejected here rather than
// silently deduplicated at read time, to surface bugs early.
func ValidateLedger(mods []courseModels.CompletedModule) error {
	seenModules := make(map[uint]bool, len(mods))
	for _, mod := range mods {
		if seenModules[mod.ModuleID] {
			return fmt.Errorf("%w: duplicate module entry %d", ErrValidation, mod.ModuleID)
		}
		seenModules[mod.ModuleID] = true

		seenLessons := make(map[uint]bool, len(mod.CompletedLessons))
		for _, les := range mod.CompletedLessons {
			if seenLessons[les.LessonID] {
				return fmt.Errorf("%w: duplicate lesson entry %d in module %d", ErrValidation, les.LessonID, mod.ModuleID)
			}
			seenLessons[les.LessonID] = true

			seenTopics := make(map[uint]bool, len(les.CompletedTopics))
			for _, topicID := range les.CompletedTopics {
				if seenTopics[topicID] {
					return fmt.Errorf("%w: duplicate topic %d in lesson %d", ErrValidation, topicID, les.LessonID)
				}
				seenTopics[topicID] = true
			}
		}
	}
	return nil
}

// FullLedger builds a ledger covering every module, lesson and topic of
// the live tree, in course order. Used by administrative force-complete so
// a forced completion reads back exactly like an organically earned one.
func FullLedger(t *Tree) []courseModels.CompletedModule {
	mods := make([]courseModels.CompletedModule, 0, len(t.ModuleOrder))
	for _, moduleID := range t.ModuleOrder {
		mod := t.Modules[moduleID]
		entry := courseModels.CompletedModule{ModuleID: moduleID}
		for _, lessonID := range mod.LessonIDs {
			topicIDs := t.LessonTopicIDs(lessonID)
			topics := make([]uint, len(topicIDs))
			copy(topics, topicIDs)
			entry.CompletedLessons = append(entry.CompletedLessons, courseModels.CompletedLesson{
				LessonID:        lessonID,
				CompletedTopics: topics,
			})
		}
		mods = append(mods, entry)
	}
	return mods
}

func indexOfModule(mods []courseModels.CompletedModule, id uint) int {
	for i := range mods {
		if mods[i].ModuleID == id {
			return i
		}
	}
	return -1
}

func indexOfLesson(lessons []courseModels.CompletedLesson, id uint) int {
	for i := range lessons {
		if lessons[i].LessonID == id {
			return i
		}
	}
	return -1
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
