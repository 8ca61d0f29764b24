package course

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BatchSnapshot is the denormalized progress snapshot stored on a batch.
// It is display-state pushed by admin batch updates; authoritative numbers
// always come from re-aggregating member ledgers against the live tree.
type BatchSnapshot struct {
	CompletedModules []uint `json:"completedModules"`
	CompletedLessons []uint `json:"completedLessons"`
	CompletedTopics  []uint `json:"completedTopics"`
	Percentage       int    `json:"percentage"`
}

// BatchQuiz is a quiz scheduled for a batch
type BatchQuiz struct {
	Title   string     `json:"title"`
	Date    *time.Time `json:"date"`
	Details string     `json:"details"`
}

// BatchEvent is an event scheduled for a batch
type BatchEvent struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
}

// Batch is one cohort running a course instance
type Batch struct {
	gorm.Model
	BatchName         string         `json:"batch_name" gorm:"not null"`
	CourseID          uint           `json:"course_id" gorm:"index;not null"`
	ProfessorID       *uint          `json:"professor_id"`
	StartDate         time.Time      `json:"start_date" gorm:"not null"`
	EndDate           *time.Time     `json:"end_date"`
	Quizzes           datatypes.JSON `json:"quizzes" gorm:"type:jsonb"`
	Events            datatypes.JSON `json:"events" gorm:"type:jsonb"`
	BatchProgress     datatypes.JSON `json:"batch_progress" gorm:"type:jsonb"`
	CourseCompleted   bool           `json:"course_completed" gorm:"default:false"`
	CourseCompletedAt *time.Time     `json:"course_completed_at"`
	IsActive          bool           `json:"is_active" gorm:"default:true"`
	IsDeleted         bool           `gorm:"default:false"`
}

// BatchUser maps a user into a batch, ordered by position
type BatchUser struct {
	gorm.Model
	BatchID   uint `json:"batch_id" gorm:"uniqueIndex:idx_batch_user;not null"`
	UserID    uint `json:"user_id" gorm:"uniqueIndex:idx_batch_user;not null"`
	Position  int  `json:"position" gorm:"default:0"`
	IsDeleted bool `gorm:"default:false"`
}

// Snapshot decodes the stored batch progress snapshot
func (b *Batch) Snapshot() (BatchSnapshot, error) {
	var snap BatchSnapshot
	if len(b.BatchProgress) == 0 {
		return snap, nil
	}
	err := json.Unmarshal(b.BatchProgress, &snap)
	return snap, err
}

// SetSnapshot encodes and stores the batch progress snapshot
func (b *Batch) SetSnapshot(snap BatchSnapshot) error {
	if snap.CompletedModules == nil {
		snap.CompletedModules = []uint{}
	}
	if snap.CompletedLessons == nil {
		snap.CompletedLessons = []uint{}
	}
	if snap.CompletedTopics == nil {
		snap.CompletedTopics = []uint{}
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	b.BatchProgress = datatypes.JSON(raw)
	return nil
}

// QuizList decodes the scheduled quizzes
func (b *Batch) QuizList() ([]BatchQuiz, error) {
	if len(b.Quizzes) == 0 {
		return nil, nil
	}
	var quizzes []BatchQuiz
	err := json.Unmarshal(b.Quizzes, &quizzes)
	return quizzes, err
}

// SetQuizList encodes and stores the scheduled quizzes
func (b *Batch) SetQuizList(quizzes []BatchQuiz) error {
	raw, err := json.Marshal(quizzes)
	if err != nil {
		return err
	}
	b.Quizzes = datatypes.JSON(raw)
	return nil
}

// EventList decodes the scheduled events
func (b *Batch) EventList() ([]BatchEvent, error) {
	if len(b.Events) == 0 {
		return nil, nil
	}
	var events []BatchEvent
	err := json.Unmarshal(b.Events, &events)
	return events, err
}

// SetEventList encodes and stores the scheduled events
func (b *Batch) SetEventList(events []BatchEvent) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return err
	}
	b.Events = datatypes.JSON(raw)
	return nil
}
