package course

import "gorm.io/gorm"

// Enrollment tracks a user's registration in a course
type Enrollment struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	CourseID  uint   `json:"course_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	Status    string `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	IsDeleted bool   `gorm:"default:false"`
}
