package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"captiveportal/config"
	"captiveportal/generator"
	"captiveportal/models"
	"captiveportal/repository"
	"captiveportal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	config.AppConfig.JWTSecret = "routes-secret"

	l := logrus.New()
	l.SetOutput(io.Discard)
	logger := logrus.NewEntry(l)

	s := store.NewMemory()
	gen := generator.New(generator.NewRandom(3))
	auth, err := repository.NewAuthRepository(s, "demo@esempio.it", "demo123", logger)
	require.NoError(t, err)

	app := fiber.New()
	SetupRoutes(app, Dependencies{
		Store:           s,
		Generator:       gen,
		Contacts:        repository.NewContactRepository(s, gen, 20, logger),
		AccessLogs:      repository.NewAccessLogRepository(s, gen, 3, logger),
		Campaigns:       repository.NewCampaignRepository(s, gen, logger),
		Settings:        repository.NewSettingsRepository(s, logger),
		Auth:            auth,
		RateLimitPortal: 2,
	})
	return app
}

func request(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp := request(t, app, "POST", "/auth/login", map[string]string{"email": "Demo@Esempio.it", "password": "demo123"}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			AccessToken string       `json:"access_token"`
			ExpiresAt   time.Time    `json:"expires_at"`
			User        *models.User `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Data.AccessToken)
	assert.Equal(t, "user-1", body.Data.User.ID)
	return body.Data.AccessToken
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	resp := request(t, app, "GET", "/health", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	resp := request(t, app, "GET", "/api/v1/contacts", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = request(t, app, "POST", "/auth/login", map[string]string{"email": "demo@esempio.it", "password": "wrong"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token := login(t, app)

	resp = request(t, app, "GET", "/api/v1/contacts", nil, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = request(t, app, "GET", "/auth/me", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var me struct {
		Data models.Session `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.True(t, me.Data.IsAuthorized)

	resp = request(t, app, "POST", "/auth/logout", nil, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = request(t, app, "GET", "/api/v1/contacts", nil, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestStaticRoutesBeforeParams(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	resp := request(t, app, "GET", "/api/v1/contacts/export", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	resp = request(t, app, "GET", "/api/v1/campaigns/summary", nil, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// a plain GET on the progress socket asks for an upgrade
	resp = request(t, app, "GET", "/api/v1/campaigns/progress", nil, token)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestPortalIsPublicAndRateLimited(t *testing.T) {
	app := newTestApp(t)

	resp := request(t, app, "GET", "/portal/"+models.DefaultTenantSlug, nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	submission := map[string]interface{}{
		"firstName":      "Luca",
		"lastName":       "Neri",
		"email":          "luca.neri@example.com",
		"privacyConsent": true,
	}
	for i := 0; i < 2; i++ {
		resp = request(t, app, "POST", "/portal/"+models.DefaultTenantSlug+"/submit", submission, "")
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
	resp = request(t, app, "POST", "/portal/"+models.DefaultTenantSlug+"/submit", submission, "")
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestResetDataEndsSession(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	resp := request(t, app, "POST", "/api/v1/admin/reset-data", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = request(t, app, "GET", "/api/v1/contacts", nil, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPanicsAreRecovered(t *testing.T) {
	app := newTestApp(t)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("handler failure")
	})

	resp := request(t, app, "GET", "/panic", nil, "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	resp = request(t, app, "GET", "/health", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
