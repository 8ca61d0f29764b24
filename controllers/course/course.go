package controllers

import (
	"scl/database"
	"scl/middleware"
	courseModels "scl/models/course"
	"scl/progress"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses for learners
func GetAllCourses(c *fiber.Ctx) error {
	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("status = ? AND is_deleted = ?", "Published", false)

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("published_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns a published course with its full content tree
// and the caller's enrollment state
func GetCourseDetails(c *fiber.Ctx) error {
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

	tree, err := progress.LoadTree(database.Database.Db, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load course content!", nil)
	}

	// Nested display tree in course order
	modules := make([]fiber.Map, 0, len(tree.ModuleOrder))
	for _, moduleID := range tree.ModuleOrder {
		mod := tree.Modules[moduleID]
		lessons := make([]fiber.Map, 0, len(mod.LessonIDs))
		for _, lessonID := range mod.LessonIDs {
			les := tree.Lessons[lessonID]
			topics := make([]fiber.Map, 0, len(les.TopicIDs))
			for _, topicID := range les.TopicIDs {
				top := tree.Topics[topicID]
				topics = append(topics, fiber.Map{
					"topicId": top.ID,
					"title":   top.Title,
				})
			}
			lessons = append(lessons, fiber.Map{
				"lessonId": les.ID,
				"title":    les.Title,
				"topics":   topics,
			})
		}
		modules = append(modules, fiber.Map{
			"moduleId":    mod.ID,
			"title":       mod.Title,
			"description": mod.Description,
			"lessons":     lessons,
		})
	}

	var enrollment courseModels.Enrollment
	isEnrolled := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, course.ID, false).
		First(&enrollment).Error == nil

	response := fiber.Map{
		"course":       course,
		"modules":      modules,
		"totalModules": tree.TotalModules,
		"totalLessons": tree.TotalLessons,
		"totalTopics":  tree.TotalTopics,
		"isEnrolled":   isEnrolled,
	}
	if isEnrolled {
		response["enrollmentStatus"] = enrollment.Status
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", response)
}
