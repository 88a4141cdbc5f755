package certificateController

import (
	"certchain/database"
	"certchain/middleware"
	"certchain/models"
	"certchain/pipeline"
	"certchain/utils"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

var orch *pipeline.Orchestrator

// Init wires the pipeline orchestrator used by the handlers. Called
// once from main after config and database are up.
func Init(o *pipeline.Orchestrator) {
	orch = o
}

// statusForError maps pipeline errors onto HTTP statuses.
func statusForError(err error) int {
	var inputErr *pipeline.InputError
	var notFoundErr *pipeline.NotFoundError
	var preconditionErr *pipeline.PreconditionError
	var validationErr *pipeline.ValidationError
	var uploadErr *pipeline.UploadError
	var ledgerErr *pipeline.LedgerError
	var encodingErr *pipeline.EncodingError

	switch {
	case errors.As(err, &inputErr), errors.As(err, &preconditionErr), errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return fiber.StatusNotFound
	case errors.As(err, &uploadErr), errors.As(err, &ledgerErr), errors.As(err, &encodingErr):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// HealthCheck is the liveness endpoint
func HealthCheck(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", fiber.Map{
		"service": "certchain",
	})
}

// CreateCertificate runs pipeline step 1 only: it creates the basic
// certificate record with no progress fields populated.
func CreateCertificate(c *fiber.Ctx) error {
	input, ok := c.Locals("validatedCertificate").(*pipeline.CreateInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	cert, err := orch.CreateBasicRecord(*input)
	if err != nil {
		return middleware.JsonResponse(c, statusForError(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate created successfully!", cert)
}

// CreateCompleteCertificate runs the full four-step pipeline from a
// multipart form. A failure after the record exists returns 206 with
// the persisted progress, never a hard failure: the record is resumable
// via the per-step endpoints.
func CreateCompleteCertificate(c *fiber.Ctx) error {
	input, ok := c.Locals("validatedCertificate").(*pipeline.CreateInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate image is required!", nil)
	}
	image, err := utils.ReadUploadedFile(file)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	result, err := orch.CreateCompleteCertificate(*input, image)
	if err != nil {
		// No record was created; report the step-1 failure outright.
		return middleware.JsonResponse(c, statusForError(err), false, err.Error(), nil)
	}

	if !result.Success {
		log.Printf("Certificate %s pipeline stopped at %q: %s", result.CertificateID, result.CurrentStep, result.Error)
		return middleware.JsonResponse(c, fiber.StatusPartialContent, false,
			"Certificate created but the pipeline did not complete. Resume via the per-step endpoints.", result)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued successfully!", result)
}

// UploadCertificateAssets runs pipeline step 2 for an existing
// certificate: pin image + metadata, persist both hashes.
func UploadCertificateAssets(c *fiber.Ctx) error {
	certID := c.Params("id")

	file, err := c.FormFile("image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate image is required!", nil)
	}
	image, err := utils.ReadUploadedFile(file)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	result, err := orch.UploadToIPFS(certID, image)
	if err != nil {
		return middleware.JsonResponse(c, statusForError(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate assets uploaded to IPFS!", result)
}

// AnchorCertificate runs pipeline step 3. Re-anchoring an already
// anchored certificate requires force=true.
func AnchorCertificate(c *fiber.Ctx) error {
	certID := c.Params("id")
	force := c.Query("force") == "true"

	result, err := orch.AnchorToBlockchain(certID, force)
	if err != nil {
		return middleware.JsonResponse(c, statusForError(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate anchored to blockchain!", result)
}

// GenerateCertificateQR runs pipeline step 4.
func GenerateCertificateQR(c *fiber.Ctx) error {
	certID := c.Params("id")

	qrURL, err := orch.GenerateQRCode(certID)
	if err != nil {
		return middleware.JsonResponse(c, statusForError(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "QR code generated!", fiber.Map{
		"qr_url": qrURL,
	})
}

// GetCertificate fetches the raw certificate record
func GetCertificate(c *fiber.Ctx) error {
	certID := c.Params("id")

	var cert models.Certificate
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", certID).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", cert)
}

// GetCertificateStatus returns the derived progress snapshot
func GetCertificateStatus(c *fiber.Ctx) error {
	certID := c.Params("id")

	snapshot, err := orch.GetStatus(certID)
	if err != nil {
		return middleware.JsonResponse(c, statusForError(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate status fetched successfully!", snapshot)
}

// ValidateCertificate returns the derived validity snapshot. Never a
// hard failure: unknown ids report valid=false with the error inside.
func ValidateCertificate(c *fiber.Ctx) error {
	certID := c.Params("id")

	snapshot := orch.Validate(certID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate validation computed!", snapshot)
}

// ListCertificates returns a paginated list, optionally filtered by
// institution.
func ListCertificates(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	db := database.Database.Db.Model(&models.Certificate{}).Where("is_deleted = false")
	if instituteID := c.QueryInt("institute_id", 0); instituteID > 0 {
		db = db.Where("institute_id = ?", instituteID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to count certificates!", nil)
	}

	var certificates []models.Certificate
	if err := db.Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}
