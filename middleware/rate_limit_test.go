package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"teamboard/config"
	"teamboard/middleware"
)

func TestAuthRateLimiterBlocksAfterMax(t *testing.T) {
	config.AppConfig = config.Config{
		Environment:   "test",
		RateLimitAuth: 2,
	}

	app := fiber.New()
	limited := middleware.AuthRateLimiter()
	app.Post("/login", limited, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Post("/register", limited, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	post := func(path string) (int, map[string]interface{}) {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, path, nil), -1)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		var body map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		return resp.StatusCode, body
	}

	for i := 0; i < 2; i++ {
		if status, _ := post("/login"); status != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, status)
		}
	}

	status, body := post("/login")
	if status != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", status)
	}
	if body["message"] != "Too many attempts. Please wait before trying again." {
		t.Errorf("message = %v", body["message"])
	}

	// The key includes the path, so the shared limiter counts each
	// endpoint separately.
	if status, _ := post("/register"); status != http.StatusOK {
		t.Errorf("register status = %d, want 200", status)
	}
}
