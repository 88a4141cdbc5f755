package adminController

import (
	"certchain/config"
	authController "certchain/controllers/auth"
	"certchain/database"
	"certchain/middleware"
	"certchain/models"
	"certchain/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// ListPendingInstitutions returns institutions awaiting review
func ListPendingInstitutions(c *fiber.Ctx) error {
	var institutions []models.Institution
	if err := database.Database.Db.
		Where("status = ? AND is_deleted = false", "PENDING").
		Order("created_at asc").
		Find(&institutions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending institutions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending institutions fetched successfully!", fiber.Map{
		"institutions": institutions,
		"total":        len(institutions),
	})
}

// ApproveInstitution marks a pending institution APPROVED and notifies
// its contact address.
func ApproveInstitution(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid institution id!", nil)
	}

	var institution models.Institution
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", id).First(&institution).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Institution not found!", nil)
	}

	if institution.Status == "APPROVED" {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Institution is already approved!", nil)
	}

	if err := database.Database.Db.Model(&institution).Update("status", "APPROVED").Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve institution!", nil)
	}

	if institution.ContactEmail != "" {
		go utils.SendInstitutionApprovalEmail(institution.ContactEmail, institution.Name)
		provisionIssuerAccount(&institution)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Institution approved successfully!", institution)
}

// provisionIssuerAccount creates an approved INSTITUTION login for the
// contact address, unless one already exists.
func provisionIssuerAccount(institution *models.Institution) {
	db := database.Database.Db

	if err := db.Where("email = ?", institution.ContactEmail).First(&models.User{}).Error; err == nil {
		return
	}

	password := utils.GenerateRandomPassword(12)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Failed to hash issuer password for %s: %v", institution.ContactEmail, err)
		return
	}

	user := models.User{
		Name:        institution.Name,
		Email:       institution.ContactEmail,
		Password:    string(hashed),
		Role:        "INSTITUTION",
		InstituteID: institution.ID,
		Status:      "APPROVED",
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("Failed to provision issuer account for %s: %v", institution.ContactEmail, err)
		return
	}
	if err := authController.SeedPermissions(db, user.Role, user.ID); err != nil {
		log.Printf("Failed to seed issuer permissions for %s: %v", institution.ContactEmail, err)
	}

	go utils.SendInstitutionCredentialsEmail(institution.ContactEmail, institution.Name, password)
}

// RejectInstitution marks a pending institution REJECTED and notifies
// its contact address with the reviewer's reason.
func RejectInstitution(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid institution id!", nil)
	}

	reqData := new(struct {
		Reason string `json:"reason"`
	})
	if err := c.BodyParser(reqData); err != nil {
		reqData.Reason = ""
	}

	var institution models.Institution
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", id).First(&institution).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Institution not found!", nil)
	}

	if err := database.Database.Db.Model(&institution).Update("status", "REJECTED").Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject institution!", nil)
	}

	if institution.ContactEmail != "" {
		go utils.SendInstitutionRejectionEmail(institution.ContactEmail, institution.Name, reqData.Reason)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Institution rejected.", institution)
}

// ListPendingUsers returns user registrations awaiting review
func ListPendingUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.Database.Db.
		Where("status = ? AND is_deleted = false", "PENDING").
		Order("created_at asc").
		Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending users fetched successfully!", fiber.Map{
		"users": users,
		"total": len(users),
	})
}

// ApproveUser marks a pending user APPROVED and notifies them
func ApproveUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", id).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if user.Status == "APPROVED" {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User is already approved!", nil)
	}

	now := time.Now()
	if err := database.Database.Db.Model(&user).Updates(map[string]interface{}{
		"status":     "APPROVED",
		"updated_at": now,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve user!", nil)
	}

	go utils.SendUserApprovalEmail(user.Email, user.Name)

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User approved successfully!", user)
}

// RejectUser marks a pending user REJECTED and notifies them
func RejectUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData := new(struct {
		Reason string `json:"reason"`
	})
	if err := c.BodyParser(reqData); err != nil {
		reqData.Reason = ""
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", id).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("status", "REJECTED").Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject user!", nil)
	}

	go utils.SendUserRejectionEmail(user.Email, user.Name, reqData.Reason)

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User rejected.", user)
}
