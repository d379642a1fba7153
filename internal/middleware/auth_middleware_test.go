package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/repository"
	"styllobarber-pdv/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubProfiles serves FindByID from a map; other methods are unused here.
type stubProfiles struct {
	repository.ProfileRepository
	byID map[uuid.UUID]*model.Profile
}

func (s *stubProfiles) FindByID(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newBarber() *model.Profile {
	p := &model.Profile{
		FullName:     "João Silva",
		RoleCode:     model.RoleBarber,
		IsActive:     true,
		TokenVersion: "v1",
		Privileges:   []model.Privilege{{Code: model.PrivTransactionCreate}},
	}
	p.ID = uuid.New()
	return p
}

func newAuthApp(tokens *jwt.Manager, profiles repository.ProfileRepository) *fiber.App {
	app := fiber.New()
	app.Get("/me", RequireAuth(tokens, profiles), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"id":         c.Locals("profile_id"),
			"name":       c.Locals("profile_name"),
			"role":       c.Locals("profile_role"),
			"privileges": c.Locals("profile_privileges"),
		})
	})
	app.Post("/pdv", RequireAuth(tokens, profiles), RequirePrivilege(model.PrivTransactionCreate), func(c *fiber.Ctx) error {
		return c.SendStatus(201)
	})
	app.Post("/cancel", RequireAuth(tokens, profiles), RequirePrivilege(model.PrivTransactionCancel), func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})
	app.Get("/reports", RequireAuth(tokens, profiles), RequireAnyPrivilege(model.PrivReportView, model.PrivTransactionCreate), func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireAuth(t *testing.T) {
	tokens := jwt.NewManager("test-secret", time.Hour)
	barber := newBarber()
	inactive := newBarber()
	inactive.IsActive = false
	profiles := &stubProfiles{byID: map[uuid.UUID]*model.Profile{barber.ID: barber, inactive.ID: inactive}}
	app := newAuthApp(tokens, profiles)

	valid, err := tokens.GenerateToken(barber.ID, barber.FullName, barber.RoleCode, nil, "v1")
	require.NoError(t, err)
	stale, err := tokens.GenerateToken(barber.ID, barber.FullName, barber.RoleCode, nil, "v0")
	require.NoError(t, err)
	unknown, err := tokens.GenerateToken(uuid.New(), "x", model.RoleBarber, nil, "v1")
	require.NoError(t, err)
	disabled, err := tokens.GenerateToken(inactive.ID, inactive.FullName, inactive.RoleCode, nil, "v1")
	require.NoError(t, err)

	assert.Equal(t, 200, call(t, app, "GET", "/me", valid))
	assert.Equal(t, 401, call(t, app, "GET", "/me", ""))
	assert.Equal(t, 401, call(t, app, "GET", "/me", "garbage"))
	assert.Equal(t, 401, call(t, app, "GET", "/me", stale))
	assert.Equal(t, 401, call(t, app, "GET", "/me", unknown))
	assert.Equal(t, 401, call(t, app, "GET", "/me", disabled))

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Token "+valid)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequirePrivilege(t *testing.T) {
	tokens := jwt.NewManager("test-secret", time.Hour)
	barber := newBarber()
	app := newAuthApp(tokens, &stubProfiles{byID: map[uuid.UUID]*model.Profile{barber.ID: barber}})

	// Privileges come from the stored profile, not from the token claims.
	token, err := tokens.GenerateToken(barber.ID, barber.FullName, barber.RoleCode, []string{model.PrivTransactionCancel}, "v1")
	require.NoError(t, err)

	assert.Equal(t, 201, call(t, app, "POST", "/pdv", token))
	assert.Equal(t, 403, call(t, app, "POST", "/cancel", token))
	assert.Equal(t, 200, call(t, app, "GET", "/reports", token))
}

func TestRequirePrivilege_NoLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/x", RequirePrivilege(model.PrivReportView), func(c *fiber.Ctx) error { return c.SendStatus(200) })
	app.Get("/y", RequireAnyPrivilege(model.PrivReportView), func(c *fiber.Ctx) error { return c.SendStatus(200) })

	assert.Equal(t, 403, call(t, app, "GET", "/x", ""))
	assert.Equal(t, 403, call(t, app, "GET", "/y", ""))
}
