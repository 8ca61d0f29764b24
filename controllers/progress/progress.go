package controllers

import (
	"fmt"
	"time"

	"scl/database"
	"scl/middleware"
	"scl/models"
	courseModels "scl/models/course"
	"scl/progress"
	"scl/utils"
	progressValidator "scl/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// finalizeCompletion issues a certificate and flips the completion flags
// on an already-loaded progress row. Callers must have checked
// IsCompleted first; this function assumes the row is not yet completed.
func finalizeCompletion(user *models.User, course *courseModels.Course, prog *courseModels.Progress, issuedBy *uint) error {
	// Certificates are immutable history: a ledger that already carries
	// one (from a completion later unmarked) keeps it, nothing is
	// re-issued or re-announced.
	newCertificate := progress.PlanCompletion(prog.IsCompleted, prog.CertificateID).NeedCertificate
	if newCertificate {
		cert, err := utils.IssueCertificate(user.Name, course.Title)
		if err != nil {
			return err
		}
		prog.CertificateURL = cert.URL
		prog.CertificateID = cert.ID
	}

	now := time.Now()
	prog.IsCompleted = true
	prog.CompletedAt = &now

	if err := database.Database.Db.Save(prog).Error; err != nil {
		return err
	}

	// Enrollment follows the ledger state
	database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).
		Update("status", "COMPLETED")

	if newCertificate {
		utils.SendCertificateMail(user.Email, user.Name, course.Title, prog.CertificateURL, prog.CertificateID)
		utils.Notify(user.ID, issuedBy, "Course Completed!",
			"Congratulations, you completed "+course.Title+". Your certificate is ready.",
			"completion", prog.CertificateURL)
	}

	return nil
}

// CompleteCourseForUser force-completes one user's course: the ledger is
// filled to cover the whole live tree so the record reads back exactly
// like an organically earned completion, then the certificate flow runs.
// An already-completed ledger is left untouched and no side effects fire,
// so repeating the call is safe.
func CompleteCourseForUser(userID, courseID uint, tree *progress.Tree, issuedBy *uint) error {
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return fmt.Errorf("user %d not found", userID)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return fmt.Errorf("course %d not found", courseID)
	}

	if tree == nil {
		var err error
		tree, err = progress.LoadTree(database.Database.Db, courseID)
		if err != nil {
			return err
		}
	}

	prog, _, err := progress.LoadLedger(database.Database.Db, userID, courseID)
	if err != nil {
		return err
	}
	if prog == nil {
		prog = &courseModels.Progress{UserID: userID, CourseID: courseID}
	}
	if progress.PlanCompletion(prog.IsCompleted, prog.CertificateID).Skip {
		return nil
	}

	if err := prog.SetLedger(progress.FullLedger(tree)); err != nil {
		return err
	}

	return finalizeCompletion(&user, &course, prog, issuedBy)
}

// UpdateProgress merges one completion event into the caller's ledger.
// The first write moves the enrollment to IN_PROGRESS; reaching 100% on
// both modules and lessons completes the course organically.
func UpdateProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProgressUpdate").(*progressValidator.ProgressUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, course.ID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not enrolled in this course!", nil)
	}

	tree, err := progress.LoadTree(database.Database.Db, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load course content!", nil)
	}

	// The event must reference live nodes; stale ids only appear on the
	// read side, never enter through new writes.
	if _, ok := tree.Modules[reqData.ModuleID]; !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found in this course!", nil)
	}
	lesson, ok := tree.Lessons[reqData.LessonID]
	if !ok || lesson.ModuleID != reqData.ModuleID {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found in this module!", nil)
	}
	topic, ok := tree.Topics[reqData.TopicID]
	if !ok || topic.LessonID != reqData.LessonID {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found in this lesson!", nil)
	}

	prog, mods, err := progress.LoadLedger(database.Database.Db, userId, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}
	if prog == nil {
		prog = &courseModels.Progress{UserID: userId, CourseID: course.ID}
	}

	mods, changed, err := progress.ApplyUpdate(mods, progress.Update{
		ModuleID:  reqData.ModuleID,
		LessonID:  reqData.LessonID,
		TopicID:   reqData.TopicID,
		QuizScore: reqData.QuizScore,
		Feedback:  reqData.Feedback,
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	}

	if err := progress.ValidateLedger(mods); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	}

	if changed {
		if err := prog.SetLedger(mods); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
		}
		if err := database.Database.Db.Save(prog).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
		}
	}

	if enrollment.Status == "ENROLLED" {
		database.Database.Db.Model(&enrollment).Update("status", "IN_PROGRESS")
	}

	summary := progress.Reconcile(mods, prog.IsCompleted, tree)

	// Organic completion: everything in the live tree is done, by exact
	// count, rounded percentages can reach 100 early
	if !prog.IsCompleted && summary.Covered() {
		if err := finalizeCompletion(&user, &course, prog, nil); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Progress saved, but completing the course failed!", nil)
		}
		summary = progress.Reconcile(mods, true, tree)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", fiber.Map{
		"courseId":       course.ID,
		"isCompleted":    prog.IsCompleted,
		"completedAt":    prog.CompletedAt,
		"certificateUrl": prog.CertificateURL,
		"modules":        summary.Modules,
		"lessons":        summary.Lessons,
	})
}

// GetUserProgress returns the caller's reconciled progress for one course
func GetUserProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, course.ID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not enrolled in this course!", nil)
	}

	tree, err := progress.LoadTree(database.Database.Db, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load course content!", nil)
	}

	prog, mods, err := progress.LoadLedger(database.Database.Db, userId, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	// Enrolled with no writes yet: a valid zero-progress summary, not 404
	isCompleted := false
	response := fiber.Map{
		"courseId":    course.ID,
		"courseTitle": course.Title,
	}
	if prog != nil {
		isCompleted = prog.IsCompleted
		response["completedAt"] = prog.CompletedAt
		response["certificateUrl"] = prog.CertificateURL
		response["certificateId"] = prog.CertificateID
		response["courseFeedback"] = prog.CourseFeedback
	}

	summary := progress.Reconcile(mods, isCompleted, tree)
	response["isCompleted"] = isCompleted
	response["progress"] = fiber.Map{
		"modules":  summary.Modules,
		"lessons":  summary.Lessons,
		"detailed": summary.Detailed,
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", response)
}

// GetAllUserProgress returns the caller's reconciled progress for every
// course they have touched
func GetAllUserProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var rows []courseModels.Progress
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("updated_at desc").Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	items := make([]fiber.Map, 0, len(rows))
	for i := range rows {
		prog := &rows[i]

		var course courseModels.Course
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", prog.CourseID, false).
			First(&course).Error; err != nil {
			continue
		}

		tree, err := progress.LoadTree(database.Database.Db, course.ID)
		if err != nil {
			continue
		}

		mods, err := prog.Ledger()
		if err != nil {
			continue
		}

		summary := progress.Reconcile(mods, prog.IsCompleted, tree)
		items = append(items, fiber.Map{
			"courseId":       course.ID,
			"courseTitle":    course.Title,
			"isCompleted":    prog.IsCompleted,
			"completedAt":    prog.CompletedAt,
			"certificateUrl": prog.CertificateURL,
			"modules":        summary.Modules,
			"lessons":        summary.Lessons,
			"updatedAt":      prog.UpdatedAt,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"courses": items,
	})
}

// GetCourseProgressSummary is the admin view of one course: every
// learner's reconciled counts plus aggregate completion numbers
func GetCourseProgressSummary(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	tree, err := progress.LoadTree(database.Database.Db, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load course content!", nil)
	}

	var rows []courseModels.Progress
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	userIDs := make([]uint, 0, len(rows))
	for _, prog := range rows {
		userIDs = append(userIDs, prog.UserID)
	}
	userByID := make(map[uint]models.User, len(userIDs))
	if len(userIDs) > 0 {
		var users []models.User
		database.Database.Db.Where("id IN ?", userIDs).Find(&users)
		for _, user := range users {
			userByID[user.ID] = user
		}
	}

	completedCount := 0
	items := make([]fiber.Map, 0, len(rows))
	for i := range rows {
		prog := &rows[i]
		mods, err := prog.Ledger()
		if err != nil {
			continue
		}
		summary := progress.Reconcile(mods, prog.IsCompleted, tree)
		if prog.IsCompleted {
			completedCount++
		}

		item := fiber.Map{
			"userId":      prog.UserID,
			"isCompleted": prog.IsCompleted,
			"modules":     summary.Modules,
			"lessons":     summary.Lessons,
			"updatedAt":   prog.UpdatedAt,
		}
		if user, ok := userByID[prog.UserID]; ok {
			item["name"] = user.Name
			item["email"] = user.Email
		}
		items = append(items, item)
	}

	var enrolled int64
	database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("course_id = ? AND is_deleted = ?", course.ID, false).Count(&enrolled)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course progress fetched successfully!", fiber.Map{
		"courseId":       course.ID,
		"courseTitle":    course.Title,
		"totalEnrolled":  enrolled,
		"totalTracked":   len(items),
		"totalCompleted": completedCount,
		"users":          items,
	})
}

// GetProgressStats is the admin dashboard: system-wide counters
func GetProgressStats(c *fiber.Ctx) error {
	var totalCourses, publishedCourses, totalEnrollments, totalTracked, totalCompleted, certificates int64

	db := database.Database.Db
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("status = ? AND is_deleted = ?", "Published", false).Count(&publishedCourses)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&courseModels.Progress{}).Where("is_deleted = ?", false).Count(&totalTracked)
	db.Model(&courseModels.Progress{}).Where("is_completed = ? AND is_deleted = ?", true, false).Count(&totalCompleted)
	db.Model(&courseModels.Progress{}).Where("certificate_id <> '' AND is_deleted = ?", false).Count(&certificates)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"totalCourses":       totalCourses,
		"publishedCourses":   publishedCourses,
		"totalEnrollments":   totalEnrollments,
		"usersWithProgress":  totalTracked,
		"completedCourses":   totalCompleted,
		"certificatesIssued": certificates,
	})
}

// CompleteCourse is the administrative force-complete for one user
func CompleteCourse(c *fiber.Ctx) error {
	adminId, _ := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedCompleteCourse").(*progressValidator.CompleteCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := CompleteCourseForUser(reqData.UserID, reqData.CourseID, nil, &adminId); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course marked as completed!", nil)
}

// CompleteCoursesBulk force-completes many (user, course) pairs. Each
// pair succeeds or fails on its own; one bad pair never aborts the rest.
func CompleteCoursesBulk(c *fiber.Ctx) error {
	adminId, _ := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedCompleteBulk").(*progressValidator.CompleteBulkRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	succeeded := 0
	failed := make([]fiber.Map, 0)

	for _, pair := range reqData.Users {
		if err := CompleteCourseForUser(pair.UserID, pair.CourseID, nil, &adminId); err != nil {
			failed = append(failed, fiber.Map{
				"userId":   pair.UserID,
				"courseId": pair.CourseID,
				"error":    err.Error(),
			})
			continue
		}
		succeeded++
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bulk completion finished!", fiber.Map{
		"succeeded": succeeded,
		"failed":    failed,
	})
}
