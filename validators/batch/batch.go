package batchValidator

import (
	"strconv"
	"strings"
	"time"

	"scl/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateBatchRequest creates a cohort for one course
type CreateBatchRequest struct {
	BatchName   string     `json:"batchName"`
	CourseID    uint       `json:"courseId"`
	Users       []uint     `json:"users"`
	ProfessorID *uint      `json:"professorId"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// UpdateBatchRequest updates batch fields and/or its progress snapshot.
// markAsCompleted toggles the batch completion state machine.
type UpdateBatchRequest struct {
	BatchName        string     `json:"batchName"`
	CourseID         *uint      `json:"courseId"`
	Users            []uint     `json:"users"`
	ProfessorID      *uint      `json:"professorId"`
	StartDate        *time.Time `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	CompletedModules []uint     `json:"completedModules"`
	CompletedLessons []uint     `json:"completedLessons"`
	CompletedTopics  []uint     `json:"completedTopics"`

	// nil means "leave the completion state alone"
	MarkAsCompleted *bool `json:"markAsCompleted"`
}

// AssignQuizRequest schedules a quiz for a batch
type AssignQuizRequest struct {
	Title   string     `json:"title"`
	Date    *time.Time `json:"date"`
	Details string     `json:"details"`
}

// AssignEventRequest schedules an event for a batch
type AssignEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
}

// BatchCertificatesRequest targets a whole batch for certificate issuance
type BatchCertificatesRequest struct {
	BatchID uint `json:"batchId"`
}

// CreateBatch validates batch creation
func CreateBatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateBatchRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.BatchName = strings.TrimSpace(reqData.BatchName)
		if reqData.BatchName == "" {
			errors["batchName"] = "Batch name is required!"
		} else if len(reqData.BatchName) > 100 {
			errors["batchName"] = "Batch name must not exceed 100 characters!"
		}

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}

		if reqData.StartDate == nil {
			errors["startDate"] = "Start date is required!"
		}

		if reqData.EndDate != nil && reqData.StartDate != nil && reqData.EndDate.Before(*reqData.StartDate) {
			errors["endDate"] = "End date must be after the start date!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateBatch", reqData)
		return c.Next()
	}
}

// BatchID validates the id path parameter
func BatchID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Batch ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Batch ID!", nil)
		}

		c.Locals("batchID", id)
		return c.Next()
	}
}

// UpdateBatch validates a batch update body
func UpdateBatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateBatchRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.BatchName = strings.TrimSpace(reqData.BatchName)
		if len(reqData.BatchName) > 100 {
			errors["batchName"] = "Batch name must not exceed 100 characters!"
		}

		if reqData.CourseID != nil && *reqData.CourseID == 0 {
			errors["courseId"] = "Invalid Course ID!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateBatch", reqData)
		return c.Next()
	}
}

// AssignQuiz validates a quiz assignment body
func AssignQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AssignQuizRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title is required!"})
		}

		c.Locals("validatedAssignQuiz", reqData)
		return c.Next()
	}
}

// AssignEvent validates an event assignment body
func AssignEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AssignEventRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title is required!"})
		}

		c.Locals("validatedAssignEvent", reqData)
		return c.Next()
	}
}

// BatchCertificates validates the certificate issuance body
func BatchCertificates() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BatchCertificatesRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.BatchID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"batchId": "Batch ID is required!"})
		}

		c.Locals("validatedBatchCertificates", reqData)
		return c.Next()
	}
}

// DateRange validates startDate/endDate query parameters
func DateRange() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startStr := strings.TrimSpace(c.Query("startDate"))
		endStr := strings.TrimSpace(c.Query("endDate"))

		if startStr == "" || endStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Start date and end date are required!", nil)
		}

		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid start date, expected YYYY-MM-DD!", nil)
		}

		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid end date, expected YYYY-MM-DD!", nil)
		}

		if end.Before(start) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "End date must be after the start date!", nil)
		}

		c.Locals("rangeStart", start)
		c.Locals("rangeEnd", end)
		return c.Next()
	}
}
