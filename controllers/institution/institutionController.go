package institutionController

import (
	"certchain/database"
	"certchain/middleware"
	"certchain/models"

	"github.com/gofiber/fiber/v2"
)

// RegisterInstitution submits a new institution for admin approval
func RegisterInstitution(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedInstitution").(*models.Institution)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Legal id must be unique among live institutions
	if err := db.Where("legal_id = ? AND is_deleted = false", reqData.LegalID).First(&models.Institution{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "An institution with this legal id already exists!", nil)
	}

	institution := models.Institution{
		Name:         reqData.Name,
		LegalID:      reqData.LegalID,
		Website:      reqData.Website,
		Address:      reqData.Address,
		ContactEmail: reqData.ContactEmail,
		Status:       "PENDING",
	}

	if err := db.Create(&institution).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register institution!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Institution registered. Awaiting admin approval.", institution)
}

// GetInstitution fetches a single institution by id
func GetInstitution(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid institution id!", nil)
	}

	var institution models.Institution
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", id).First(&institution).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Institution not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Institution fetched successfully!", institution)
}

// ListInstitutions returns approved institutions, paginated
func ListInstitutions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	db := database.Database.Db.Model(&models.Institution{}).
		Where("status = ? AND is_deleted = false", "APPROVED")

	if err := db.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to count institutions!", nil)
	}

	var institutions []models.Institution
	if err := db.Order("name asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&institutions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch institutions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Institutions fetched successfully!", fiber.Map{
		"institutions": institutions,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}
