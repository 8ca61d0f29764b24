package controllers

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"scl/database"
	"scl/middleware"
	courseModels "scl/models/course"
	courseValidator "scl/validators/course"

	"github.com/gofiber/fiber/v2"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// makeSlug turns a title into a url-safe, unique slug. Collisions get a
// numeric suffix.
func makeSlug(title string) string {
	base := slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "course"
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		database.Database.Db.Model(&courseModels.Course{}).Where("slug = ?", slug).Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// CreateCourse creates a course in Draft status
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:       reqData.Title,
		Slug:        makeSlug(reqData.Title),
		Description: reqData.Description,
		Category:    reqData.Category,
		Level:       reqData.Level,
		Language:    reqData.Language,
		Duration:    reqData.Duration,
		CoverImage:  reqData.CoverImage,
		Status:      "Draft",
	}
	if course.Level == "" {
		course.Level = "Beginner"
	}
	if course.Language == "" {
		course.Language = "English"
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course created successfully!", course)
}

// UpdateCourse updates course fields. The slug never changes after
// creation so published links stay stable.
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Category != "" {
		course.Category = reqData.Category
	}
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	if reqData.Language != "" {
		course.Language = reqData.Language
	}
	if reqData.Duration != "" {
		course.Duration = reqData.Duration
	}
	if reqData.CoverImage != "" {
		course.CoverImage = reqData.CoverImage
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// PublishCourse moves a course from Draft to Published
func PublishCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.Status == "Published" {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course is already published!", course)
	}

	now := time.Now()
	course.Status = "Published"
	course.PublishedAt = &now

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// DeleteCourse soft-deletes a course. Content rows and ledgers stay on
// disk; the course simply disappears from every listing.
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetAdminCourseList lists all non-deleted courses regardless of status
func GetAdminCourseList(c *fiber.Ctx) error {
	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
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
