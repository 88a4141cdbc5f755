package certificateRoutes

import (
	controllers "certchain/controllers/certificate"
	"certchain/middleware"
	validators "certchain/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up all certificate pipeline routes.
// Reads used by QR verification are public; everything that mutates
// pipeline state requires a token plus the issue-certificate permission.
func SetupCertificateRoutes(app *fiber.App) {
	certGroup := app.Group("/certificates")

	// Liveness
	certGroup.Get("/health", controllers.HealthCheck)

	// Full pipeline in one call (multipart: fields + image file)
	certGroup.Post("/create-complete",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("issue-certificate"),
		validators.CreateComplete(),
		controllers.CreateCompleteCertificate)

	// Individual pipeline steps, for resuming partial runs
	certGroup.Post("/",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("issue-certificate"),
		validators.CreateCertificate(),
		controllers.CreateCertificate)
	certGroup.Post("/:id/upload",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("issue-certificate"),
		controllers.UploadCertificateAssets)
	certGroup.Post("/:id/anchor",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("issue-certificate"),
		controllers.AnchorCertificate)
	certGroup.Post("/:id/qr",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware("issue-certificate"),
		controllers.GenerateCertificateQR)

	// Public reads (QR codes resolve to these without a login)
	certGroup.Get("/:id/status", controllers.GetCertificateStatus)
	certGroup.Get("/:id/validate", controllers.ValidateCertificate)
	certGroup.Get("/:id", controllers.GetCertificate)

	// Listing requires a token
	certGroup.Get("/", middleware.JWTMiddleware, controllers.ListCertificates)
}
