package course

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CompletedLesson records a user's completion state for one lesson.
// CompletedTopics has set semantics: a topic id appears at most once.
// QuizScore and Feedback are last-write-wins; concurrent submissions for
// the same lesson may race, no history is kept.
type CompletedLesson struct {
	LessonID        uint   `json:"lessonId"`
	CompletedTopics []uint `json:"completedTopics"`
	QuizScore       *int   `json:"quizScore,omitempty"`
	Feedback        string `json:"feedback,omitempty"`
}

// CompletedModule groups completed lessons under one module entry.
// A ledger holds at most one entry per module id.
type CompletedModule struct {
	ModuleID         uint              `json:"moduleId"`
	CompletedLessons []CompletedLesson `json:"completedLessons"`
}

// Progress is the per (user, course) ledger. The nested completed-module
// document is stored as JSONB and accessed through Ledger/SetLedger.
type Progress struct {
	gorm.Model
	UserID           uint           `json:"user_id" gorm:"uniqueIndex:idx_progress_user_course;not null"`
	CourseID         uint           `json:"course_id" gorm:"uniqueIndex:idx_progress_user_course;not null"`
	CompletedModules datatypes.JSON `json:"completed_modules" gorm:"type:jsonb"`
	CourseFeedback   string         `json:"course_feedback"`
	IsCompleted      bool           `json:"is_completed" gorm:"default:false"`
	CompletedAt      *time.Time     `json:"completed_at"`
	CertificateURL   string         `json:"certificate_url"`
	CertificateID    string         `json:"certificate_id"`
	IsDeleted        bool           `gorm:"default:false"`
}

// Ledger decodes the stored completed-module document. An empty column
// decodes to an empty ledger.
func (p *Progress) Ledger() ([]CompletedModule, error) {
	if len(p.CompletedModules) == 0 {
		return nil, nil
	}
	var mods []CompletedModule
	if err := json.Unmarshal(p.CompletedModules, &mods); err != nil {
		return nil, err
	}
	return mods, nil
}

// SetLedger encodes and stores the completed-module document.
func (p *Progress) SetLedger(mods []CompletedModule) error {
	if mods == nil {
		mods = []CompletedModule{}
	}
	raw, err := json.Marshal(mods)
	if err != nil {
		return err
	}
	p.CompletedModules = datatypes.JSON(raw)
	return nil
}
