package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"teamboard/config"
	"teamboard/models"
	"teamboard/routes"
	"teamboard/utils"
)

const testPassword = "password123"

var userSeq int

// setupApp builds the full route surface against a fresh on-disk
// sqlite database. Tests share the config globals, so they must not
// run in parallel.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	// The busy timeout keeps concurrent writers waiting instead of
	// failing immediately on sqlite's single-writer lock.
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := config.MigrateDB(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	config.DB = db
	config.AppConfig = config.Config{
		Environment:   "test",
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
		RateLimitAuth: 1000,
	}

	app := fiber.New()
	routes.SetupRoutes(app, db)
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	userSeq++
	user := models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s-%d@example.com", username, userSeq),
		PhoneNo:      fmt.Sprintf("+1555%07d", userSeq),
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return &user
}

func authToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

// createTeam drives the real endpoint and returns the new team's id
// and default board id.
func createTeam(t *testing.T, app *fiber.App, token, name string) (teamID, boardID uint) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/teams/create", token, map[string]string{"name": name})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create team returned status %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	team := body["team"].(map[string]interface{})
	return uint(team["ID"].(float64)), uint(body["boardId"].(float64))
}
