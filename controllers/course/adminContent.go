package controllers

import (
	"scl/database"
	"scl/middleware"
	courseModels "scl/models/course"
	courseValidator "scl/validators/course"

	"github.com/gofiber/fiber/v2"
)

// AddModule appends a module to a course
func AddModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedModule").(*courseValidator.ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	module := courseModels.CourseModule{
		CourseID:    uint(courseID),
		Title:       reqData.Title,
		Description: reqData.Description,
	}
	if reqData.OrderIndex != nil {
		module.OrderIndex = *reqData.OrderIndex
	} else {
		// Append at the end when no explicit position is given
		var count int64
		database.Database.Db.Model(&courseModels.CourseModule{}).
			Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&count)
		module.OrderIndex = int(count)
	}

	if err := database.Database.Db.Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module created successfully!", module)
}

// UpdateModule updates a module's fields
func UpdateModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)

	reqData, ok := c.Locals("validatedModule").(*courseValidator.ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var module courseModels.CourseModule
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if reqData.Title != "" {
		module.Title = reqData.Title
	}
	if reqData.Description != "" {
		module.Description = reqData.Description
	}
	if reqData.OrderIndex != nil {
		module.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// DeleteModule soft-deletes a module. Existing ledgers keep their credit
// for it; percentages simply stop counting it in the denominator.
func DeleteModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.CourseModule
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	module.IsDeleted = true
	if err := database.Database.Db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// AddLesson appends a lesson to a module
func AddLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var module courseModels.CourseModule
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", reqData.ModuleID, courseID, false).
		First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	lesson := courseModels.Lesson{
		CourseID: uint(courseID),
		ModuleID: reqData.ModuleID,
		Title:    reqData.Title,
		Summary:  reqData.Summary,
	}
	if reqData.OrderIndex != nil {
		lesson.OrderIndex = *reqData.OrderIndex
	} else {
		var count int64
		database.Database.Db.Model(&courseModels.Lesson{}).
			Where("module_id = ? AND is_deleted = ?", reqData.ModuleID, false).Count(&count)
		lesson.OrderIndex = int(count)
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson created successfully!", lesson)
}

// UpdateLesson updates a lesson's fields
func UpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if reqData.Title != "" {
		lesson.Title = reqData.Title
	}
	if reqData.Summary != "" {
		lesson.Summary = reqData.Summary
	}
	if reqData.OrderIndex != nil {
		lesson.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson soft-deletes a lesson
func DeleteLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson.IsDeleted = true
	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// AddTopic appends a topic to a lesson
func AddTopic(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTopic").(*courseValidator.TopicRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.LessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	topic := courseModels.Topic{
		LessonID: reqData.LessonID,
		Title:    reqData.Title,
		VideoURL: reqData.VideoURL,
	}
	if reqData.OrderIndex != nil {
		topic.OrderIndex = *reqData.OrderIndex
	} else {
		var count int64
		database.Database.Db.Model(&courseModels.Topic{}).
			Where("lesson_id = ? AND is_deleted = ?", reqData.LessonID, false).Count(&count)
		topic.OrderIndex = int(count)
	}

	if err := database.Database.Db.Create(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create topic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic created successfully!", topic)
}

// UpdateTopic updates a topic's fields
func UpdateTopic(c *fiber.Ctx) error {
	topicID := c.Locals("topicID").(int)

	reqData, ok := c.Locals("validatedTopic").(*courseValidator.TopicRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var topic courseModels.Topic
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", topicID, false).First(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}

	if reqData.Title != "" {
		topic.Title = reqData.Title
	}
	if reqData.VideoURL != "" {
		topic.VideoURL = reqData.VideoURL
	}
	if reqData.OrderIndex != nil {
		topic.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update topic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic updated successfully!", topic)
}

// DeleteTopic soft-deletes a topic
func DeleteTopic(c *fiber.Ctx) error {
	topicID := c.Locals("topicID").(int)

	var topic courseModels.Topic
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", topicID, false).First(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}

	topic.IsDeleted = true
	if err := database.Database.Db.Save(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete topic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic deleted successfully!", nil)
}
