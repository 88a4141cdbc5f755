package adminRoutes

import (
	controllers "certchain/controllers/admin"
	"certchain/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the approval endpoints. All of them require
// a token with the manage-approvals permission.
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("manage-approvals"))

	adminGroup.Get("/institutions/pending", controllers.ListPendingInstitutions)
	adminGroup.Post("/institutions/:id/approve", controllers.ApproveInstitution)
	adminGroup.Post("/institutions/:id/reject", controllers.RejectInstitution)

	adminGroup.Get("/users/pending", controllers.ListPendingUsers)
	adminGroup.Post("/users/:id/approve", controllers.ApproveUser)
	adminGroup.Post("/users/:id/reject", controllers.RejectUser)
}
