package institutionValidator

import (
	"certchain/middleware"
	"certchain/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Register validates the institution onboarding body
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name         string `json:"name"`
			LegalID      string `json:"legal_id"`
			Website      string `json:"website"`
			Address      string `json:"address"`
			ContactEmail string `json:"contact_email"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Name
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Institution name is required!"
		} else if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Institution name must be at least 3 characters long!"
		}

		// Validate Legal ID
		if strings.TrimSpace(reqData.LegalID) == "" {
			errors["legal_id"] = "Legal id is required!"
		}

		// Validate Website when provided
		if reqData.Website != "" && !strings.HasPrefix(reqData.Website, "http") {
			errors["website"] = "Website must be a full URL!"
		}

		// Validate contact email when provided
		if reqData.ContactEmail != "" && !strings.Contains(reqData.ContactEmail, "@") {
			errors["contact_email"] = "Contact email is not valid!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedInstitution", &models.Institution{
			Name:         strings.TrimSpace(reqData.Name),
			LegalID:      strings.TrimSpace(reqData.LegalID),
			Website:      strings.TrimSpace(reqData.Website),
			Address:      strings.TrimSpace(reqData.Address),
			ContactEmail: strings.ToLower(strings.TrimSpace(reqData.ContactEmail)),
		})
		return c.Next()
	}
}
