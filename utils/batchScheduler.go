package utils

import (
	"log"
	"time"

	"scl/config"
	"scl/database"
	courseModels "scl/models/course"

	"github.com/robfig/cron/v3"
)

// InitializeBatchScheduler sets up the batch retention sweep
func InitializeBatchScheduler() {
	log.Println("[BATCH-SCHEDULER] Initializing batch scheduler...")

	c := cron.New()

	// Run daily at midnight to deactivate long-completed batches
	c.AddFunc("0 0 * * *", func() {
		log.Println("[BATCH-SCHEDULER] Running daily batch retention sweep...")
		DeactivateExpiredBatches()
	})

	c.Start()
	log.Println("[BATCH-SCHEDULER] Batch scheduler started - runs daily at midnight")
}

// DeactivateExpiredBatches deactivates batches whose course completion is
// older than the retention window.
func DeactivateExpiredBatches() {
	db := database.Database.Db
	retention := time.Duration(config.AppConfig.BatchRetentionDays) * 24 * time.Hour
	cutoff := time.Now().Add(-retention)

	result := db.Model(&courseModels.Batch{}).
		Where("course_completed = ? AND is_active = ? AND course_completed_at <= ?", true, true, cutoff).
		Update("is_active", false)

	if result.Error != nil {
		log.Printf("[BATCH-SCHEDULER] Error deactivating batches: %v", result.Error)
		return
	}

	log.Printf("[BATCH-SCHEDULER] Batches deactivated: %d", result.RowsAffected)
}
