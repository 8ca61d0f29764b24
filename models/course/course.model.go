package course

import (
	"time"

	"gorm.io/gorm"
)

// Course represents a learning course. Its content hangs off it as an
// ordered tree: CourseModule -> Lesson -> Topic.
type Course struct {
	gorm.Model
	Title       string `json:"title"`
	Slug        string `json:"slug" gorm:"uniqueIndex"`
	Description string `json:"description"`
	Category    string `json:"category" gorm:"index"`
	Level       string `json:"level" gorm:"default:'Beginner'"` // Beginner, Intermediate, Advanced
	Language    string `json:"language" gorm:"default:'English'"`
	Duration    string `json:"duration"` // formatted, e.g. "12h 30m"
	CoverImage  string `json:"cover_image"`
	Status      string `json:"status" gorm:"default:'Draft'"` // Draft, Published, Archived
	PublishedAt *time.Time
	IsDeleted   bool `gorm:"default:false"`
}

// CourseModule represents a section/module within a course
type CourseModule struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Module order in course
	IsDeleted   bool   `gorm:"default:false"`
}

// Lesson represents a lesson within a module
type Lesson struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	ModuleID   uint   `json:"module_id" gorm:"index;not null"`
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// Topic represents a topic within a lesson
type Topic struct {
	gorm.Model
	LessonID   uint   `json:"lesson_id" gorm:"index;not null"`
	Title      string `json:"title"`
	VideoURL   string `json:"video_url"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}
