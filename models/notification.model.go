package models

import "gorm.io/gorm"

// Notification is a persisted in-app notification. Delivery over live
// channels (sockets etc.) happens through the notification service's
// publisher and is fire-and-forget.
type Notification struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	CreatedBy *uint  `json:"created_by"`
	Title     string `json:"title"`
	Message   string `json:"message" gorm:"type:text"`
	Type      string `json:"type" gorm:"default:'general'"` // general, certificate, batch, course
	Link      string `json:"link"`
	IsRead    bool   `json:"is_read" gorm:"default:false"`
	IsDeleted bool   `gorm:"default:false"`
}
