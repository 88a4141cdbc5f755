package certificateValidator

import (
	"certchain/middleware"
	"certchain/pipeline"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CreateCertificate validates the JSON body of the step-1 endpoint
func CreateCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RecipientName string `json:"recipient_name"`
			CourseName    string `json:"course_name"`
			InstituteID   uint   `json:"institute_id"`
			IssuedAt      string `json:"issued_at"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		input, errors := buildCreateInput(reqData.RecipientName, reqData.CourseName, reqData.InstituteID, reqData.IssuedAt)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCertificate", input)
		return c.Next()
	}
}

// CreateComplete validates the multipart fields of the full-pipeline
// endpoint. The image file itself is handled by the controller.
func CreateComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		instituteID, _ := strconv.ParseUint(c.FormValue("institute_id"), 10, 32)

		input, errors := buildCreateInput(
			c.FormValue("recipient_name"),
			c.FormValue("course_name"),
			uint(instituteID),
			c.FormValue("issued_at"),
		)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCertificate", input)
		return c.Next()
	}
}

// buildCreateInput shares the field checks between the JSON and
// multipart variants.
func buildCreateInput(recipientName, courseName string, instituteID uint, issuedAt string) (*pipeline.CreateInput, map[string]string) {
	errors := make(map[string]string)

	// Validate recipient name
	if strings.TrimSpace(recipientName) == "" {
		errors["recipient_name"] = "Recipient name is required!"
	} else if len(strings.TrimSpace(recipientName)) < 2 {
		errors["recipient_name"] = "Recipient name must be at least 2 characters long!"
	}

	// Validate course name
	if strings.TrimSpace(courseName) == "" {
		errors["course_name"] = "Course name is required!"
	} else if len(strings.TrimSpace(courseName)) < 3 {
		errors["course_name"] = "Course name must be at least 3 characters long!"
	}

	// Validate institution reference
	if instituteID == 0 {
		errors["institute_id"] = "Institute id is required!"
	}

	// Validate issue timestamp
	var issued time.Time
	if strings.TrimSpace(issuedAt) == "" {
		errors["issued_at"] = "Issue date is required!"
	} else {
		parsed, err := time.Parse(time.RFC3339, issuedAt)
		if err != nil {
			errors["issued_at"] = "Issue date must be RFC3339, e.g. 2025-01-15T00:00:00Z!"
		} else {
			issued = parsed
		}
	}

	if len(errors) > 0 {
		return nil, errors
	}

	return &pipeline.CreateInput{
		RecipientName: strings.TrimSpace(recipientName),
		CourseName:    strings.TrimSpace(courseName),
		InstituteID:   instituteID,
		IssuedAt:      issued,
	}, nil
}
