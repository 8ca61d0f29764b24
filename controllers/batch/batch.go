package controllers

import (
	"time"

	progressController "scl/controllers/progress"
	"scl/database"
	"scl/middleware"
	"scl/models"
	courseModels "scl/models/course"
	"scl/progress"
	"scl/utils"
	batchValidator "scl/validators/batch"

	"github.com/gofiber/fiber/v2"
)

// loadBatchMembers returns a batch's users in roster order
func loadBatchMembers(batchID uint) ([]models.User, error) {
	var links []courseModels.BatchUser
	if err := database.Database.Db.Where("batch_id = ? AND is_deleted = ?", batchID, false).
		Order("position asc, id asc").Find(&links).Error; err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(links))
	for _, link := range links {
		userIDs = append(userIDs, link.UserID)
	}
	if len(userIDs) == 0 {
		return nil, nil
	}

	var users []models.User
	if err := database.Database.Db.Where("id IN ? AND is_deleted = ?", userIDs, false).Find(&users).Error; err != nil {
		return nil, err
	}

	// Back to roster order, Find gives no ordering guarantee
	byID := make(map[uint]models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	ordered := make([]models.User, 0, len(users))
	for _, id := range userIDs {
		if user, ok := byID[id]; ok {
			ordered = append(ordered, user)
		}
	}
	return ordered, nil
}

// rollupMembers loads every member's ledger and aggregates the cohort
func rollupMembers(batch *courseModels.Batch, tree *progress.Tree) (progress.Rollup, error) {
	users, err := loadBatchMembers(batch.ID)
	if err != nil {
		return progress.Rollup{}, err
	}

	members := make([]progress.Member, 0, len(users))
	for _, user := range users {
		member := progress.Member{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
		}

		prog, mods, err := progress.LoadLedger(database.Database.Db, user.ID, batch.CourseID)
		if err != nil {
			return progress.Rollup{}, err
		}
		if prog != nil {
			updatedAt := prog.UpdatedAt
			member.HasLedger = true
			member.Ledger = mods
			member.IsCompleted = prog.IsCompleted
			member.CertificateURL = prog.CertificateURL
			member.UpdatedAt = &updatedAt
		}
		members = append(members, member)
	}

	return progress.RollupBatch(members, tree), nil
}

// CreateBatch creates a cohort and enrolls its members in the course
func CreateBatch(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateBatch").(*batchValidator.CreateBatchRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	batch := courseModels.Batch{
		BatchName:   reqData.BatchName,
		CourseID:    reqData.CourseID,
		ProfessorID: reqData.ProfessorID,
		StartDate:   *reqData.StartDate,
		EndDate:     reqData.EndDate,
		IsActive:    true,
	}
	if err := database.Database.Db.Create(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create batch!", nil)
	}

	// Roster: unknown user ids are skipped, not fatal
	added := 0
	for i, userID := range reqData.Users {
		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			continue
		}

		link := courseModels.BatchUser{BatchID: batch.ID, UserID: userID, Position: i}
		if err := database.Database.Db.Create(&link).Error; err != nil {
			continue
		}
		added++

		// Batch membership implies enrollment
		var enrollment courseModels.Enrollment
		if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, batch.CourseID, false).
			First(&enrollment).Error; err != nil {
			database.Database.Db.Create(&courseModels.Enrollment{
				UserID:   userID,
				CourseID: batch.CourseID,
				Status:   "ENROLLED",
			})
		}

		utils.Notify(userID, nil, "Added to Batch",
			"You have been added to batch "+batch.BatchName+" for "+course.Title+".",
			"batch", "/course/"+course.Slug)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch created successfully!", fiber.Map{
		"batch":      batch,
		"usersAdded": added,
	})
}

// GetAllBatches lists batches enriched with course title, member count
// and the stored snapshot. Full rollups stay on the per-batch endpoint,
// the list must not fan out into every member ledger.
func GetAllBatches(c *fiber.Ctx) error {
	var batches []courseModels.Batch
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("created_at desc").Find(&batches).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch batches!", nil)
	}

	items := make([]fiber.Map, 0, len(batches))
	for i := range batches {
		batch := &batches[i]

		var course courseModels.Course
		courseTitle := ""
		if err := database.Database.Db.Where("id = ?", batch.CourseID).First(&course).Error; err == nil {
			courseTitle = course.Title
		}

		var memberCount int64
		database.Database.Db.Model(&courseModels.BatchUser{}).
			Where("batch_id = ? AND is_deleted = ?", batch.ID, false).Count(&memberCount)

		snap, err := batch.Snapshot()
		if err != nil {
			snap = courseModels.BatchSnapshot{}
		}

		items = append(items, fiber.Map{
			"batchId":           batch.ID,
			"batchName":         batch.BatchName,
			"courseId":          batch.CourseID,
			"courseTitle":       courseTitle,
			"professorId":       batch.ProfessorID,
			"startDate":         batch.StartDate,
			"endDate":           batch.EndDate,
			"totalUsers":        memberCount,
			"batchProgress":     snap,
			"courseCompleted":   batch.CourseCompleted,
			"courseCompletedAt": batch.CourseCompletedAt,
			"isActive":          batch.IsActive,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batches fetched successfully!", fiber.Map{
		"batches": items,
	})
}

// GetBatch returns one batch with the full per-member and cohort rollup
func GetBatch(c *fiber.Ctx) error {
	batchID := c.Locals("batchID").(int)

	var batch courseModels.Batch
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", batchID, false).First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", batch.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	tree, err := progress.LoadTree(database.Database.Db, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load course content!", nil)
	}

	rollup, err := rollupMembers(&batch, tree)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to aggregate batch progress!", nil)
	}

	quizzes, _ := batch.QuizList()
	events, _ := batch.EventList()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch fetched successfully!", fiber.Map{
		"batchId":           batch.ID,
		"batchName":         batch.BatchName,
		"courseId":          course.ID,
		"courseTitle":       course.Title,
		"professorId":       batch.ProfessorID,
		"startDate":         batch.StartDate,
		"endDate":           batch.EndDate,
		"totalUsers":        rollup.TotalUsers,
		"users":             rollup.Users,
		"batchProgress":     rollup.Batch,
		"quizzes":           quizzes,
		"events":            events,
		"courseCompleted":   batch.CourseCompleted,
		"courseCompletedAt": batch.CourseCompletedAt,
		"isActive":          batch.IsActive,
	})
}

// UpdateBatch updates batch fields, replaces the roster when users are
// given, stores a deduplicated snapshot and drives the completion state
// machine via markAsCompleted.
func UpdateBatch(c *fiber.Ctx) error {
	batchID := c.Locals("batchID").(int)

	reqData, ok := c.Locals("validatedUpdateBatch").(*batchValidator.UpdateBatchRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var batch courseModels.Batch
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", batchID, false).First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	if reqData.BatchName != "" {
		batch.BatchName = reqData.BatchName
	}
	if reqData.CourseID != nil {
		var course courseModels.Course
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", *reqData.CourseID, false).
			First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		batch.CourseID = *reqData.CourseID
	}
	if reqData.ProfessorID != nil {
		batch.ProfessorID = reqData.ProfessorID
	}
	if reqData.StartDate != nil {
		batch.StartDate = *reqData.StartDate
	}
	if reqData.EndDate != nil {
		batch.EndDate = reqData.EndDate
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", batch.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	tree, err := progress.LoadTree(database.Database.Db, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load course content!", nil)
	}

	// Roster replacement
	if reqData.Users != nil {
		database.Database.Db.Model(&courseModels.BatchUser{}).
			Where("batch_id = ?", batch.ID).Update("is_deleted", true)
		for i, userID := range reqData.Users {
			var user models.User
			if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
				continue
			}

			var link courseModels.BatchUser
			if err := database.Database.Db.Where("batch_id = ? AND user_id = ?", batch.ID, userID).
				First(&link).Error; err == nil {
				link.IsDeleted = false
				link.Position = i
				database.Database.Db.Save(&link)
			} else {
				database.Database.Db.Create(&courseModels.BatchUser{BatchID: batch.ID, UserID: userID, Position: i})
			}
		}
	}

	// Snapshot: ids are deduplicated and filtered against the live tree
	// before storing, the display state never accumulates stale junk
	if reqData.CompletedModules != nil || reqData.CompletedLessons != nil || reqData.CompletedTopics != nil {
		snap, err := batch.Snapshot()
		if err != nil {
			snap = courseModels.BatchSnapshot{}
		}
		if reqData.CompletedModules != nil {
			snap.CompletedModules = dedupAgainst(reqData.CompletedModules, func(id uint) bool {
				_, ok := tree.Modules[id]
				return ok
			})
		}
		if reqData.CompletedLessons != nil {
			snap.CompletedLessons = dedupAgainst(reqData.CompletedLessons, func(id uint) bool {
				_, ok := tree.Lessons[id]
				return ok
			})
		}
		if reqData.CompletedTopics != nil {
			snap.CompletedTopics = dedupAgainst(reqData.CompletedTopics, func(id uint) bool {
				_, ok := tree.Topics[id]
				return ok
			})
		}
		snap.Percentage = progress.Percent(len(snap.CompletedLessons), tree.TotalLessons)
		if err := batch.SetSnapshot(snap); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store batch progress!", nil)
		}
	}

	completedNow := 0
	failedNow := 0

	if reqData.MarkAsCompleted != nil {
		switch {
		case *reqData.MarkAsCompleted && !batch.CourseCompleted:
			// Force-complete every member. Per-user isolation: one failing
			// member never blocks the rest. The admin reminder goes out
			// once per batch completion, never per user.
			adminId, _ := c.Locals("userId").(uint)
			users, err := loadBatchMembers(batch.ID)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load batch members!", nil)
			}
			for _, user := range users {
				if err := progressController.CompleteCourseForUser(user.ID, batch.CourseID, tree, &adminId); err != nil {
					failedNow++
					continue
				}
				completedNow++
			}

			now := time.Now()
			batch.CourseCompleted = true
			batch.CourseCompletedAt = &now

			utils.SendAdminBatchCompletionReminder(batch.BatchName, course.Title, len(users))
			utils.Notify(adminId, nil, "Batch Completed",
				"Batch "+batch.BatchName+" finished "+course.Title+". Certificates are pending.",
				"batch", "/batch")

		case !*reqData.MarkAsCompleted && batch.CourseCompleted:
			// Unmark drops the batch and its members back to in-progress.
			// Already-issued certificates stay on the ledgers, immutable.
			batch.CourseCompleted = false
			batch.CourseCompletedAt = nil

			users, err := loadBatchMembers(batch.ID)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load batch members!", nil)
			}
			for _, user := range users {
				database.Database.Db.Model(&courseModels.Progress{}).
					Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, batch.CourseID, false).
					Updates(map[string]interface{}{"is_completed": false, "completed_at": nil})
				database.Database.Db.Model(&courseModels.Enrollment{}).
					Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?", user.ID, batch.CourseID, "COMPLETED", false).
					Update("status", "IN_PROGRESS")
			}
		}
	}

	if err := database.Database.Db.Save(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update batch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch updated successfully!", fiber.Map{
		"batch":        batch,
		"completedNow": completedNow,
		"failedNow":    failedNow,
	})
}

// DeleteBatch soft-deletes a batch and its roster links
func DeleteBatch(c *fiber.Ctx) error {
	batchID := c.Locals("batchID").(int)

	var batch courseModels.Batch
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", batchID, false).First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	batch.IsDeleted = true
	if err := database.Database.Db.Save(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete batch!", nil)
	}

	database.Database.Db.Model(&courseModels.BatchUser{}).
		Where("batch_id = ?", batch.ID).Update("is_deleted", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch deleted successfully!", nil)
}

// GetAvailableUsersForBatch lists learners not yet in the batch
func GetAvailableUsersForBatch(c *fiber.Ctx) error {
	batchID := c.Locals("batchID").(int)

	var batch courseModels.Batch
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", batchID, false).First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	var links []courseModels.BatchUser
	database.Database.Db.Where("batch_id = ? AND is_deleted = ?", batch.ID, false).Find(&links)
	memberIDs := make([]uint, 0, len(links))
	for _, link := range links {
		memberIDs = append(memberIDs, link.UserID)
	}

	db := database.Database.Db.Where("role = ? AND is_deleted = ?", "USER", false)
	if len(memberIDs) > 0 {
		db = db.Where("id NOT IN ?", memberIDs)
	}

	var users []models.User
	if err := db.Order("name asc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	items := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		items = append(items, fiber.Map{
			"userId": user.ID,
			"name":   user.Name,
			"email":  user.Email,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Available users fetched successfully!", fiber.Map{
		"users": items,
	})
}

// GetBatchUserBreakdown buckets a batch's members by completion state
func GetBatchUserBreakdown(c *fiber.Ctx) error {
	batchID := c.Locals("batchID").(int)

	var batch courseModels.Batch
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", batchID, false).First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	users, err := loadBatchMembers(batch.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load batch members!", nil)
	}

	completed := make([]fiber.Map, 0)
	inProgress := make([]fiber.Map, 0)
	notStarted := make([]fiber.Map, 0)

	for _, user := range users {
		entry := fiber.Map{
			"userId": user.ID,
			"name":   user.Name,
			"email":  user.Email,
		}

		prog, mods, err := progress.LoadLedger(database.Database.Db, user.ID, batch.CourseID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
		}
		switch {
		case prog != nil && prog.IsCompleted:
			entry["certificateUrl"] = prog.CertificateURL
			completed = append(completed, entry)
		case prog != nil && len(mods) > 0:
			inProgress = append(inProgress, entry)
		default:
			notStarted = append(notStarted, entry)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch breakdown fetched successfully!", fiber.Map{
		"batchId":    batch.ID,
		"totalUsers": len(users),
		"completed":  completed,
		"inProgress": inProgress,
		"notStarted": notStarted,
	})
}

// GetBatchesByDateRange lists batches whose start date falls in a window
func GetBatchesByDateRange(c *fiber.Ctx) error {
	start := c.Locals("rangeStart").(time.Time)
	end := c.Locals("rangeEnd").(time.Time)

	// Inclusive end day
	end = end.Add(24*time.Hour - time.Nanosecond)

	var batches []courseModels.Batch
	if err := database.Database.Db.Where("start_date BETWEEN ? AND ? AND is_deleted = ?", start, end, false).
		Order("start_date asc").Find(&batches).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch batches!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batches fetched successfully!", fiber.Map{
		"batches": batches,
	})
}

// GetBatchStats is the admin dashboard: monthly creation/completion
// counts for the past year plus the largest batches
func GetBatchStats(c *fiber.Ctx) error {
	yearAgo := time.Now().AddDate(-1, 0, 0)

	var batches []courseModels.Batch
	if err := database.Database.Db.Where("is_deleted = ?", false).Find(&batches).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch batches!", nil)
	}

	createdByMonth := make(map[string]int)
	completedByMonth := make(map[string]int)
	active := 0
	completed := 0

	for _, batch := range batches {
		if batch.IsActive {
			active++
		}
		if batch.CourseCompleted {
			completed++
		}
		if batch.CreatedAt.After(yearAgo) {
			createdByMonth[batch.CreatedAt.Format("2006-01")]++
		}
		if batch.CourseCompletedAt != nil && batch.CourseCompletedAt.After(yearAgo) {
			completedByMonth[batch.CourseCompletedAt.Format("2006-01")]++
		}
	}

	// Top 5 batches by roster size
	type ranked struct {
		batch courseModels.Batch
		count int64
	}
	top := make([]ranked, 0, len(batches))
	for _, batch := range batches {
		var count int64
		database.Database.Db.Model(&courseModels.BatchUser{}).
			Where("batch_id = ? AND is_deleted = ?", batch.ID, false).Count(&count)
		top = append(top, ranked{batch: batch, count: count})
	}
	for i := 0; i < len(top); i++ {
		for j := i + 1; j < len(top); j++ {
			if top[j].count > top[i].count {
				top[i], top[j] = top[j], top[i]
			}
		}
	}
	if len(top) > 5 {
		top = top[:5]
	}
	topBatches := make([]fiber.Map, 0, len(top))
	for _, r := range top {
		topBatches = append(topBatches, fiber.Map{
			"batchId":    r.batch.ID,
			"batchName":  r.batch.BatchName,
			"totalUsers": r.count,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch stats fetched successfully!", fiber.Map{
		"totalBatches":     len(batches),
		"activeBatches":    active,
		"completedBatches": completed,
		"createdByMonth":   createdByMonth,
		"completedByMonth": completedByMonth,
		"topBatches":       topBatches,
	})
}

// AssignQuizToBatch appends a quiz to the batch schedule
func AssignQuizToBatch(c *fiber.Ctx) error {
	batchID := c.Locals("batchID").(int)

	reqData, ok := c.Locals("validatedAssignQuiz").(*batchValidator.AssignQuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var batch courseModels.Batch
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", batchID, false).First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	quizzes, err := batch.QuizList()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read batch quizzes!", nil)
	}
	quizzes = append(quizzes, courseModels.BatchQuiz{
		Title:   reqData.Title,
		Date:    reqData.Date,
		Details: reqData.Details,
	})
	if err := batch.SetQuizList(quizzes); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store batch quizzes!", nil)
	}

	if err := database.Database.Db.Save(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update batch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz assigned successfully!", fiber.Map{
		"quizzes": quizzes,
	})
}

// AssignEventToBatch appends an event to the batch schedule
func AssignEventToBatch(c *fiber.Ctx) error {
	batchID := c.Locals("batchID").(int)

	reqData, ok := c.Locals("validatedAssignEvent").(*batchValidator.AssignEventRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var batch courseModels.Batch
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", batchID, false).First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	events, err := batch.EventList()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read batch events!", nil)
	}
	events = append(events, courseModels.BatchEvent{
		Title:       reqData.Title,
		Description: reqData.Description,
		Date:        reqData.Date,
	})
	if err := batch.SetEventList(events); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store batch events!", nil)
	}

	if err := database.Database.Db.Save(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update batch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event assigned successfully!", fiber.Map{
		"events": events,
	})
}

// SendBatchCertificates issues certificates for every member who has not
// completed the course yet. Already-completed members are skipped, so
// running this twice issues nothing the second time.
func SendBatchCertificates(c *fiber.Ctx) error {
	adminId, _ := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedBatchCertificates").(*batchValidator.BatchCertificatesRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var batch courseModels.Batch
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.BatchID, false).
		First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	tree, err := progress.LoadTree(database.Database.Db, batch.CourseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load course content!", nil)
	}

	users, err := loadBatchMembers(batch.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load batch members!", nil)
	}

	succeeded := 0
	skipped := 0
	failed := make([]fiber.Map, 0)

	for _, user := range users {
		prog, _, err := progress.LoadLedger(database.Database.Db, user.ID, batch.CourseID)
		if err == nil && prog != nil && prog.IsCompleted {
			skipped++
			continue
		}

		if err := progressController.CompleteCourseForUser(user.ID, batch.CourseID, tree, &adminId); err != nil {
			failed = append(failed, fiber.Map{
				"userId": user.ID,
				"error":  err.Error(),
			})
			continue
		}
		succeeded++
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch certificates processed!", fiber.Map{
		"batchId":   batch.ID,
		"succeeded": succeeded,
		"skipped":   skipped,
		"failed":    failed,
	})
}

// dedupAgainst keeps the first occurrence of each id that passes the
// filter, preserving input order
func dedupAgainst(ids []uint, keep func(uint) bool) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] || !keep(id) {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
