package authValidator

import (
	"certchain/middleware"
	"certchain/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Register validates the registration body
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name          string `json:"name"`
			Email         string `json:"email"`
			Password      string `json:"password"`
			Role          string `json:"role"`
			InstituteID   uint   `json:"institute_id"`
			WalletAddress string `json:"wallet_address"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Name
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		} else if len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}

		// Validate Email
		if strings.TrimSpace(reqData.Email) == "" {
			errors["email"] = "Email is required!"
		} else if !strings.Contains(reqData.Email, "@") || !strings.Contains(reqData.Email, ".") {
			errors["email"] = "Email is not valid!"
		}

		// Validate Password
		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		} else if len(reqData.Password) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		// Admin accounts are provisioned out of band, never self-registered
		role := strings.ToUpper(strings.TrimSpace(reqData.Role))
		if role == "" {
			role = "USER"
		}
		if role != "USER" && role != "INSTITUTION" {
			errors["role"] = "Role must be USER or INSTITUTION!"
		}
		if role == "INSTITUTION" && reqData.InstituteID == 0 {
			errors["institute_id"] = "Institution accounts must reference an institution!"
		}

		// Validate wallet address when provided
		if reqData.WalletAddress != "" && !strings.HasPrefix(reqData.WalletAddress, "0x") {
			errors["wallet_address"] = "Wallet address must start with 0x!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUser", &models.User{
			Name:          strings.TrimSpace(reqData.Name),
			Email:         strings.ToLower(strings.TrimSpace(reqData.Email)),
			Password:      reqData.Password,
			Role:          role,
			InstituteID:   reqData.InstituteID,
			WalletAddress: reqData.WalletAddress,
		})
		return c.Next()
	}
}

// Login validates the login body
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Email) == "" {
			errors["email"] = "Email is required!"
		}
		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
