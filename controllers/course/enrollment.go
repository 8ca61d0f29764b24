package controllers

import (
	"scl/database"
	"scl/middleware"
	courseModels "scl/models/course"
	"scl/utils"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse registers the caller in a published course. Re-enrolling
// is a no-op that reports the existing enrollment.
func EnrollInCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND status = ? AND is_deleted = ?", courseID, "Published", false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, course.ID, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already enrolled!", existing)
	}

	enrollment := courseModels.Enrollment{
		UserID:   userId,
		CourseID: course.ID,
		Status:   "ENROLLED",
	}
	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	utils.Notify(userId, nil, "Enrollment Confirmed",
		"You are enrolled in "+course.Title+". Happy learning!", "enrollment", "/course/"+course.Slug)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled successfully!", enrollment)
}

// GetUserEnrollments lists the caller's enrollments with course info
func GetUserEnrollments(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	courseIDs := make([]uint, 0, len(enrollments))
	for _, enr := range enrollments {
		courseIDs = append(courseIDs, enr.CourseID)
	}

	courseByID := make(map[uint]courseModels.Course, len(courseIDs))
	if len(courseIDs) > 0 {
		var courses []courseModels.Course
		if err := database.Database.Db.Where("id IN ? AND is_deleted = ?", courseIDs, false).
			Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
		for _, course := range courses {
			courseByID[course.ID] = course
		}
	}

	items := make([]fiber.Map, 0, len(enrollments))
	for _, enr := range enrollments {
		item := fiber.Map{
			"enrollmentId": enr.ID,
			"courseId":     enr.CourseID,
			"status":       enr.Status,
			"enrolledAt":   enr.CreatedAt,
		}
		if course, ok := courseByID[enr.CourseID]; ok {
			item["courseTitle"] = course.Title
			item["courseSlug"] = course.Slug
			item["coverImage"] = course.CoverImage
		}
		items = append(items, item)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": items,
	})
}
