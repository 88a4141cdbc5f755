package certificateValidator

import (
	"bytes"
	"certchain/pipeline"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp() *fiber.App {
	app := fiber.New()
	app.Post("/certificates", CreateCertificate(), func(c *fiber.Ctx) error {
		if _, ok := c.Locals("validatedCertificate").(*pipeline.CreateInput); !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusCreated)
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, body map[string]interface{}) int {
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/certificates", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCreateCertificateValid(t *testing.T) {
	app := setupApp()

	status := postJSON(t, app, map[string]interface{}{
		"recipient_name": "Jane Doe",
		"course_name":    "Blockchain 101",
		"institute_id":   1,
		"issued_at":      "2025-01-15T00:00:00Z",
	})
	assert.Equal(t, fiber.StatusCreated, status)
}

func TestCreateCertificateInvalid(t *testing.T) {
	testCases := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "missing recipient",
			body: map[string]interface{}{
				"course_name":  "Blockchain 101",
				"institute_id": 1,
				"issued_at":    "2025-01-15T00:00:00Z",
			},
		},
		{
			name: "short course name",
			body: map[string]interface{}{
				"recipient_name": "Jane Doe",
				"course_name":    "ab",
				"institute_id":   1,
				"issued_at":      "2025-01-15T00:00:00Z",
			},
		},
		{
			name: "missing institute",
			body: map[string]interface{}{
				"recipient_name": "Jane Doe",
				"course_name":    "Blockchain 101",
				"issued_at":      "2025-01-15T00:00:00Z",
			},
		},
		{
			name: "bad issue date",
			body: map[string]interface{}{
				"recipient_name": "Jane Doe",
				"course_name":    "Blockchain 101",
				"institute_id":   1,
				"issued_at":      "15/01/2025",
			},
		},
	}

	app := setupApp()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status := postJSON(t, app, tc.body)
			assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		})
	}
}

func TestBuildCreateInputTrimsFields(t *testing.T) {
	input, errs := buildCreateInput("  Jane Doe ", " Blockchain 101 ", 3, "2025-01-15T00:00:00Z")
	require.Empty(t, errs)
	assert.Equal(t, "Jane Doe", input.RecipientName)
	assert.Equal(t, "Blockchain 101", input.CourseName)
	assert.Equal(t, uint(3), input.InstituteID)
	assert.Equal(t, 2025, input.IssuedAt.Year())
}
