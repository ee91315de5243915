package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"spendtrack-backend/internal/config"
	"spendtrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func newAuthApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(JWTMiddleware(cfg))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		id, err := UserID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"user_id": id})
	})
	return app
}

func TestJWTMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "0123456789abcdef0123456789abcdef"}
	app := newAuthApp(cfg)

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Token abc")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := GenerateToken(cfg.JWTSecret, &models.User{ID: 7, Email: "ana@example.com"})
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		token, err := GenerateToken("another-secret-another-secret-xx", &models.User{ID: 7})
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})
}
