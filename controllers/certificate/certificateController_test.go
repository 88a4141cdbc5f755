package certificateController

import (
	"certchain/database"
	"certchain/models"
	"certchain/pipeline"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Institution{}, &models.Certificate{}))

	database.Database = database.DbInstance{Db: db}

	// Read endpoints never touch the external clients
	Init(pipeline.NewOrchestrator(db, nil, nil, nil, pipeline.Options{}))

	app := fiber.New()
	app.Get("/certificates/health", HealthCheck)
	app.Get("/certificates/:id/status", GetCertificateStatus)
	app.Get("/certificates/:id/validate", ValidateCertificate)
	app.Get("/certificates/:id", GetCertificate)
	return app
}

func seedCertificate(t *testing.T) *models.Certificate {
	institution := models.Institution{Name: "Test University", LegalID: "LEGAL-1", Status: "APPROVED"}
	require.NoError(t, database.Database.Db.Create(&institution).Error)

	cert := models.Certificate{
		ID:            uuid.NewString(),
		RecipientName: "Jane Doe",
		CourseName:    "Blockchain 101",
		InstituteID:   institution.ID,
		IssuedAt:      time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, database.Database.Db.Create(&cert).Error)
	return &cert
}

func decodeEnvelope(t *testing.T, resp io.Reader) (bool, map[string]interface{}) {
	var envelope struct {
		Status  bool                   `json:"status"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp).Decode(&envelope))
	return envelope.Status, envelope.Data
}

func TestHealthCheck(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/certificates/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGetCertificate(t *testing.T) {
	app := setupApp(t)
	cert := seedCertificate(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/certificates/"+cert.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/certificates/"+uuid.NewString(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetCertificateStatus(t *testing.T) {
	app := setupApp(t)
	cert := seedCertificate(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/certificates/"+cert.ID+"/status", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	ok, data := decodeEnvelope(t, resp.Body)
	assert.True(t, ok)
	assert.Equal(t, true, data["basic_created"])
	assert.Equal(t, false, data["uploaded_to_ipfs"])
	assert.Equal(t, pipeline.StepUpload, data["current_step"])

	resp, err = app.Test(httptest.NewRequest("GET", "/certificates/"+uuid.NewString()+"/status", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestValidateCertificateNeverHardFails(t *testing.T) {
	app := setupApp(t)

	// Unknown id still answers 200, with valid=false and the error inside
	resp, err := app.Test(httptest.NewRequest("GET", "/certificates/"+uuid.NewString()+"/validate", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, data := decodeEnvelope(t, resp.Body)
	assert.Equal(t, false, data["valid"])
	assert.NotEmpty(t, data["error"])
}
