package utils

import (
	"log"

	"scl/database"
	"scl/models"
)

// Publisher pushes a notification event to a live delivery channel
// (sockets, push, ...). The default is a no-op; the transport layer
// injects its own at startup so the core never touches socket state.
type Publisher func(userID uint, event interface{})

var publish Publisher = func(uint, interface{}) {}

// SetPublisher installs the live delivery channel
func SetPublisher(p Publisher) {
	if p != nil {
		publish = p
	}
}

// Notify persists a notification and hands it to the publisher. It is
// fire-and-forget from the caller's perspective: failures are logged and
// never propagated.
func Notify(userID uint, createdBy *uint, title, message, ntype, link string) {
	notification := models.Notification{
		UserID:    userID,
		CreatedBy: createdBy,
		Title:     title,
		Message:   message,
		Type:      ntype,
		Link:      link,
	}

	if err := database.Database.Db.Create(&notification).Error; err != nil {
		log.Printf("Failed to store notification for user %d: %v", userID, err)
		return
	}

	publish(userID, notification)
}
