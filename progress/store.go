package progress

import (
	courseModels "scl/models/course"

	"gorm.io/gorm"
)

// LoadTree reads a course's live content rows and builds the lookup tree.
// Soft-deleted nodes are excluded, which is exactly how course edits show
// up as tree drift to old ledgers.
func LoadTree(db *gorm.DB, courseID uint) (*Tree, error) {
	var modules []courseModels.CourseModule
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc, id asc").Find(&modules).Error; err != nil {
		return nil, err
	}

	var lessons []courseModels.Lesson
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc, id asc").Find(&lessons).Error; err != nil {
		return nil, err
	}

	moduleIDs := make([]uint, 0, len(modules))
	for _, mod := range modules {
		moduleIDs = append(moduleIDs, mod.ID)
	}

	lessonIDs := make([]uint, 0, len(lessons))
	for _, les := range lessons {
		lessonIDs = append(lessonIDs, les.ID)
	}

	var topics []courseModels.Topic
	if len(lessonIDs) > 0 {
		if err := db.Where("lesson_id IN ? AND is_deleted = ?", lessonIDs, false).
			Order("order_index asc, id asc").Find(&topics).Error; err != nil {
			return nil, err
		}
	}

	return BuildTree(modules, lessons, topics), nil
}

// LoadLedger fetches the progress row for one (user, course) pair and
// decodes its ledger. A missing row returns (nil, nil, nil): callers must
// treat that as "no progress yet", which is distinct from a missing course
// or user.
func LoadLedger(db *gorm.DB, userID, courseID uint) (*courseModels.Progress, []courseModels.CompletedModule, error) {
	var prog courseModels.Progress
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&prog).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	mods, err := prog.Ledger()
	if err != nil {
		return nil, nil, err
	}
	return &prog, mods, nil
}
