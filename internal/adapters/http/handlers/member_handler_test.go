package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flexfit-api/internal/adapters/persistence/models"
	"flexfit-api/internal/adapters/persistence/repositories"
	"flexfit-api/internal/core/domain"
	"flexfit-api/internal/core/services"
	"flexfit-api/internal/pkg/password"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMemberApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))

	svc := services.NewMemberService(
		repositories.NewUserRepository(db),
		repositories.NewProfileRepository(db),
	)
	h := NewMemberHandler(svc)

	app := fiber.New()
	app.Put("/members/:id", h.Update)

	return app, db
}

func seedMember(t *testing.T, db *gorm.DB, name, email string) *models.User {
	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     string(domain.RoleMember),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func putJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestMemberHandler_Update(t *testing.T) {
	app, db := setupMemberApp(t)
	member := seedMember(t, db, "Alice", "alice@example.com")

	t.Run("malformed email is rejected without mutation", func(t *testing.T) {
		resp := putJSON(t, app, "/members/1", `{"email":"not-an-email"}`)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var reloaded models.User
		require.NoError(t, db.First(&reloaded, member.ID).Error)
		assert.Equal(t, "alice@example.com", reloaded.Email)
	})

	t.Run("overlong name is rejected", func(t *testing.T) {
		resp := putJSON(t, app, "/members/1", `{"name":"`+strings.Repeat("x", 101)+`"}`)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("valid partial update passes", func(t *testing.T) {
		resp := putJSON(t, app, "/members/1", `{"email":"alice.new@example.com"}`)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var reloaded models.User
		require.NoError(t, db.First(&reloaded, member.ID).Error)
		assert.Equal(t, "alice.new@example.com", reloaded.Email)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		resp := putJSON(t, app, "/members/1", `{"password":"short"}`)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
