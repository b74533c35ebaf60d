package dataController

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"academy/cloud"
	"academy/config"
	"academy/database"
	"academy/models"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		AdminEmail: "admin@shamanth.com",
		AdminPin:   "1234",
	}

	store, err := database.NewStore(
		database.NewMemoryBackend(),
		cloud.NewClient("", time.Second),
		config.AppConfig.AdminEmail,
		config.AppConfig.AdminPin,
	)
	assert.NoError(t, err)
	database.Database = store

	app := fiber.New()
	app.Options("/api/data", Preflight)
	app.Post("/api/data", Dispatch)
	return app
}

func postAction(t *testing.T, app *fiber.App, payload map[string]interface{}) (int, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/data", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func TestPreflight(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest("OPTIONS", "/api/data", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRegisterAndLogin(t *testing.T) {
	app := setupTestApp(t)

	status, body := postAction(t, app, map[string]interface{}{
		"action": "register", "email": "new@x.com", "pin": "1234",
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "USER", body["role"])
	assert.NotEmpty(t, body["id"])
	// The raw pin must never appear in a response.
	assert.NotContains(t, body, "pin")

	status, _ = postAction(t, app, map[string]interface{}{
		"action": "register", "email": "new@x.com", "pin": "5678",
	})
	assert.Equal(t, fiber.StatusConflict, status)

	status, body = postAction(t, app, map[string]interface{}{
		"action": "login", "email": "new@x.com", "pin": "1234",
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "new@x.com", body["email"])

	status, body = postAction(t, app, map[string]interface{}{
		"action": "login", "email": "new@x.com", "pin": "9999",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestRegisterValidation(t *testing.T) {
	app := setupTestApp(t)

	status, body := postAction(t, app, map[string]interface{}{
		"action": "register", "email": "not-an-email", "pin": "abc",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Validation failed!", body["error"])
}

func TestUnknownAction(t *testing.T) {
	app := setupTestApp(t)

	status, body := postAction(t, app, map[string]interface{}{"action": "formatDisk"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Action 'formatDisk' not supported", body["error"])
}

func TestUnlockWorkflowOverProtocol(t *testing.T) {
	app := setupTestApp(t)

	_, user := postAction(t, app, map[string]interface{}{
		"action": "register", "email": "flow@x.com", "pin": "1234",
	})
	userID := user["id"].(string)

	status, body := postAction(t, app, map[string]interface{}{
		"action": "requestUnlock", "userId": userID, "courseId": "courseA",
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, body = postAction(t, app, map[string]interface{}{
		"action": "approveUnlock", "userId": userID, "courseId": "courseA",
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	users := database.Database.GetAllUsers()
	var flow models.User
	for _, u := range users {
		if u.ID == userID {
			flow = u
		}
	}
	assert.Equal(t, []string{"courseA"}, flow.EnrolledCourses)
	assert.Empty(t, flow.PendingUnlocks)
}

func TestDeleteUserGuardsAdmin(t *testing.T) {
	app := setupTestApp(t)

	status, _ := postAction(t, app, map[string]interface{}{
		"action": "deleteUser", "userId": models.ReservedAdminID,
	})
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestCourseCRUDOverProtocol(t *testing.T) {
	app := setupTestApp(t)

	status, body := postAction(t, app, map[string]interface{}{
		"action": "saveCourse",
		"course": map[string]interface{}{
			"title":       "Python Zero to Hero",
			"description": "Loops, dicts and deployment",
			"instructor":  "Shamanth S.",
			"category":    "Python",
			"price":       0,
		},
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	req := httptest.NewRequest("POST", "/api/data",
		bytes.NewBufferString(`{"action":"getCourses"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var courses []models.Course
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&courses))
	assert.Len(t, courses, 1)
	assert.True(t, courses[0].IsFree) // derived from price == 0

	status, _ = postAction(t, app, map[string]interface{}{
		"action": "deleteCourse", "courseId": courses[0].ID,
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, database.Database.GetCourses())
}

func TestBatchValidationOverProtocol(t *testing.T) {
	app := setupTestApp(t)

	status, _ := postAction(t, app, map[string]interface{}{
		"action": "saveBatch",
		"batch": map[string]interface{}{
			"title": "Weekend Batch", "mode": "Virtual", "status": "Ongoing",
		},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body := postAction(t, app, map[string]interface{}{
		"action": "saveBatch",
		"batch": map[string]interface{}{
			"title": "Weekend Batch", "mode": "Online", "status": "Registration Open",
		},
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
}

func TestSettingsOverProtocol(t *testing.T) {
	app := setupTestApp(t)

	status, body := postAction(t, app, map[string]interface{}{"action": "getSettings"})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "shamanth@okaxis", body["upiId"])

	status, _ = postAction(t, app, map[string]interface{}{
		"action": "saveSettings",
		"settings": map[string]interface{}{
			"upiId":         "academy@upi",
			"contactNumber": "+91 9000000000",
			"flashNews":     []string{"Results out"},
			"categories":    []string{"Go"},
		},
	})
	assert.Equal(t, fiber.StatusOK, status)

	settings := database.Database.GetSettings()
	assert.Equal(t, "academy@upi", settings.UpiID)
	assert.Equal(t, []string{"Results out"}, settings.FlashNews)
}
