package institutionRoutes

import (
	controllers "certchain/controllers/institution"
	validators "certchain/validators/institution"

	"github.com/gofiber/fiber/v2"
)

// SetupInstitutionRoutes sets up institution onboarding and lookup routes
func SetupInstitutionRoutes(app *fiber.App) {
	instGroup := app.Group("/institutions")

	instGroup.Post("/register", validators.Register(), controllers.RegisterInstitution)
	instGroup.Get("/:id", controllers.GetInstitution)
	instGroup.Get("/", controllers.ListInstitutions)
}
