// Package progress implements the progress-aggregation core: content-tree
// lookups, ledger merges, per-user reconciliation and cohort rollups. The
// aggregation functions are pure; store.go holds the read-side loaders.
// Persisting results stays with the callers.
package progress

import (
	courseModels "scl/models/course"
)

// Sentinel titles returned for ledger references that no longer exist in
// the live course tree. Historical progress must stay readable across
// course edits, so lookups never fail.
const (
	UnknownModuleTitle = "Unknown Module"
	UnknownLessonTitle = "Unknown Lesson"
	UnknownTopicTitle  = "Unknown Topic"
)

// TreeModule is a module node with its lesson ids in course order
type TreeModule struct {
	ID          uint
	Title       string
	Description string
	LessonIDs   []uint
}

// TreeLesson is a lesson node with its topic ids in course order
type TreeLesson struct {
	ID       uint
	Title    string
	ModuleID uint
	TopicIDs []uint
}

// TreeTopic is a leaf topic node
type TreeTopic struct {
	ID       uint
	Title    string
	LessonID uint
}

// Tree is a read-only snapshot of a course's content hierarchy with
// id-keyed lookup maps. Totals are derived from the live tree, never from
// a ledger, so percentages always reflect the current course shape.
type Tree struct {
	Modules map[uint]TreeModule
	Lessons map[uint]TreeLesson
	Topics  map[uint]TreeTopic

	// ModuleOrder preserves course ordering for deterministic output
	ModuleOrder []uint

	TotalModules int
	TotalLessons int
	TotalTopics  int
}

// BuildTree assembles the lookup maps from course rows. Rows are expected
// in display order (order_index); lessons or topics whose parent is absent
// are skipped rather than invented.
func BuildTree(modules []courseModels.CourseModule, lessons []courseModels.Lesson, topics []courseModels.Topic) *Tree {
	t := &Tree{
		Modules: make(map[uint]TreeModule, len(modules)),
		Lessons: make(map[uint]TreeLesson, len(lessons)),
		Topics:  make(map[uint]TreeTopic, len(topics)),
	}

	for _, mod := range modules {
		t.Modules[mod.ID] = TreeModule{
			ID:          mod.ID,
			Title:       mod.Title,
			Description: mod.Description,
		}
		t.ModuleOrder = append(t.ModuleOrder, mod.ID)
	}

	for _, les := range lessons {
		parent, ok := t.Modules[les.ModuleID]
		if !ok {
			continue
		}
		t.Lessons[les.ID] = TreeLesson{
			ID:       les.ID,
			Title:    les.Title,
			ModuleID: les.ModuleID,
		}
		parent.LessonIDs = append(parent.LessonIDs, les.ID)
		t.Modules[les.ModuleID] = parent
	}

	for _, top := range topics {
		parent, ok := t.Lessons[top.LessonID]
		if !ok {
			continue
		}
		t.Topics[top.ID] = TreeTopic{
			ID:       top.ID,
			Title:    top.Title,
			LessonID: top.LessonID,
		}
		parent.TopicIDs = append(parent.TopicIDs, top.ID)
		t.Lessons[top.LessonID] = parent
	}

	t.TotalModules = len(t.Modules)
	t.TotalLessons = len(t.Lessons)
	t.TotalTopics = len(t.Topics)

	return t
}

// ModuleTitle resolves a module title, falling back to the sentinel when
// the id is no longer in the tree.
func (t *Tree) ModuleTitle(id uint) string {
	if mod, ok := t.Modules[id]; ok {
		return mod.Title
	}
	return UnknownModuleTitle
}

// LessonTitle resolves a lesson title with sentinel fallback
func (t *Tree) LessonTitle(id uint) string {
	if les, ok := t.Lessons[id]; ok {
		return les.Title
	}
	return UnknownLessonTitle
}

// TopicTitle resolves a topic title with sentinel fallback
func (t *Tree) TopicTitle(id uint) string {
	if top, ok := t.Topics[id]; ok {
		return top.Title
	}
	return UnknownTopicTitle
}

// LessonTopicIDs returns the topic ids under a lesson, nil when the lesson
// is not in the tree.
func (t *Tree) LessonTopicIDs(id uint) []uint {
	if les, ok := t.Lessons[id]; ok {
		return les.TopicIDs
	}
	return nil
}
