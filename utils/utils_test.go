package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"captiveportal/config"
	"captiveportal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponses(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse(fiber.Map{"n": 1}))
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return ErrorResponse(c, fiber.StatusConflict, "Campaign already sent", errors.New("boom"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var ok map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ok))
	assert.Equal(t, true, ok["success"])

	resp, err = app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var fail map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fail))
	assert.Equal(t, false, fail["success"])
	assert.Equal(t, "Campaign already sent", fail["error"])
	assert.Equal(t, "boom", fail["details"])
}

func TestPagination(t *testing.T) {
	tests := []struct {
		query       string
		page, limit int
	}{
		{"", 1, DefaultPageLimit},
		{"?page=3&limit=10", 3, 10},
		{"?page=0&limit=-4", 1, DefaultPageLimit},
		{"?limit=500", 1, MaxPageLimit},
		{"?page=abc", 1, DefaultPageLimit},
		{"?page=1152921504606846977&limit=8", math.MaxInt / 8, 8},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				page, limit := Pagination(c)
				return c.JSON(fiber.Map{"page": page, "limit": limit})
			})
			resp, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			require.NoError(t, err)
			var got map[string]int
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tt.page, got["page"])
			assert.Equal(t, tt.limit, got["limit"])
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, p.Data)
	assert.Equal(t, int64(5), p.Total)

	p = Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, p.Data)

	p = Paginate(items, 9, 2)
	assert.Empty(t, p.Data)

	p = Paginate(make([]int, 5), 1<<60+1, 8)
	assert.Empty(t, p.Data)

	p = Paginate(items, math.MaxInt, MaxPageLimit)
	assert.Empty(t, p.Data)
	assert.Equal(t, int64(5), p.Total)
}

type profileInput struct {
	CompanyName string `validate:"required,max=10"`
	Color       string `validate:"omitempty,hexcolor"`
	Retention   string `validate:"omitempty,oneof=30 90"`
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(profileInput{CompanyName: "Mario", Color: "#FF0000", Retention: "30"}))

	err := ValidateStruct(profileInput{Color: "red", Retention: "7"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "companyname is required")
	assert.Contains(t, err.Error(), "color must be a hex color")
	assert.Contains(t, err.Error(), "retention must be one of 30 90")
}

func TestValidateStruct_Retention(t *testing.T) {
	type privacyInput struct {
		Days string `validate:"omitempty,retention"`
	}

	for _, days := range models.DataRetentionOptions {
		assert.NoError(t, ValidateStruct(privacyInput{Days: days}))
	}
	assert.NoError(t, ValidateStruct(privacyInput{}))

	err := ValidateStruct(privacyInput{Days: "45"})
	require.Error(t, err)
	assert.Equal(t, "days must be one of 30 90 365 730", err.Error())
}

func TestJWTRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	user := &models.User{ID: "admin-1", Email: "demo@esempio.it"}

	token, expiresAt, err := GenerateJWTToken(user, "session-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), expiresAt, time.Minute)

	claims, err := ParseJWTToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, "demo@esempio.it", claims.Email)
	assert.Equal(t, "session-1", claims.SessionID)

	config.AppConfig.JWTSecret = "another-secret"
	_, err = ParseJWTToken(token)
	assert.Error(t, err)

	_, err = ParseJWTToken("not-a-token")
	assert.Error(t, err)
}

func TestDeviceFromUserAgent(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want models.DeviceInfo
	}{
		{
			name: "windows chrome",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			want: models.DeviceInfo{Type: "desktop", OS: "Windows", Browser: "Chrome"},
		},
		{
			name: "iphone safari",
			ua:   "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			want: models.DeviceInfo{Type: "mobile", OS: "iOS", Browser: "Safari"},
		},
		{
			name: "ipad",
			ua:   "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			want: models.DeviceInfo{Type: "tablet", OS: "iOS", Browser: "Safari"},
		},
		{
			name: "android chrome",
			ua:   "Mozilla/5.0 (Linux; Android 14) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
			want: models.DeviceInfo{Type: "mobile", OS: "Android", Browser: "Chrome"},
		},
		{
			name: "mac firefox",
			ua:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 14.0; rv:121.0) Gecko/20100101 Firefox/121.0",
			want: models.DeviceInfo{Type: "desktop", OS: "macOS", Browser: "Firefox"},
		},
		{
			name: "legacy edge",
			ua:   "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/70.0 Safari/537.36 Edge/18.19041",
			want: models.DeviceInfo{Type: "desktop", OS: "Windows", Browser: "Edge"},
		},
		{
			name: "linux",
			ua:   "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			want: models.DeviceInfo{Type: "desktop", OS: "Linux", Browser: "Firefox"},
		},
		{
			name: "empty",
			ua:   "",
			want: models.DeviceInfo{Type: "desktop", OS: "other", Browser: "other"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want.UserAgent = tt.ua
			assert.Equal(t, tt.want, DeviceFromUserAgent(tt.ua))
		})
	}
}

func TestWriteContactsCSV(t *testing.T) {
	contacts := []models.Contact{
		{
			FirstName:        "Anna",
			LastName:         "D'Angelo",
			Email:            "anna@example.com",
			Phone:            "+39 333 1234567",
			LocationName:     "Sede Centro",
			City:             "Milano",
			Region:           "Lombardia",
			MarketingConsent: true,
			Device:           models.DeviceInfo{Type: "mobile", OS: "iOS", Browser: "Safari"},
			CreatedAt:        time.Date(2026, 3, 5, 9, 7, 0, 0, time.UTC),
		},
		{
			FirstName: `Lu"ca`,
			LastName:  "Bianchi",
			Email:     "luca@example.com",
			CreatedAt: time.Date(2026, 12, 25, 18, 30, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteContactsCSV(&buf, contacts))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\ufeff"))
	lines := strings.Split(strings.TrimPrefix(out, "\ufeff"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Nome;Cognome;Email;Telefono;Sede;Città;Regione;Consenso Marketing;Dispositivo;Sistema Operativo;Browser;Data Registrazione", lines[0])
	assert.Equal(t, `"Anna";"D'Angelo";"anna@example.com";"+39 333 1234567";"Sede Centro";"Milano";"Lombardia";"Sì";"mobile";"iOS";"Safari";"05/03/2026 09:07"`, lines[1])
	assert.Equal(t, `"Lu""ca";"Bianchi";"luca@example.com";"";"";"";"";"No";"";"";"";"25/12/2026 18:30"`, lines[2])
}

func TestWriteContactsCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteContactsCSV(&buf, nil))
	assert.Equal(t, "\ufeff"+strings.Join(contactCSVHeaders, ";"), buf.String())
}

func TestContactsCSVFilename(t *testing.T) {
	assert.Equal(t, "contatti_2026-03-15.csv", ContactsCSVFilename(time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)))
}

func TestBuildCampaignMessage(t *testing.T) {
	campaign := models.Campaign{ID: "c1", Subject: "Offerta weekend", Body: "Ciao!\nTi aspettiamo."}
	to := models.Contact{FirstName: "Anna", LastName: "Rossi", Email: "anna@example.com"}

	m, err := BuildCampaignMessage(campaign, "Ristorante Da Mario", "newsletter@esempio.it", to, time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	raw, err := RenderMessage(m)
	require.NoError(t, err)
	assert.Contains(t, raw, "Subject: Offerta weekend")
	assert.Contains(t, raw, "anna@example.com")
	assert.Contains(t, raw, "newsletter@esempio.it")
	assert.Contains(t, raw, "X-Campaign-ID: c1")
	assert.Contains(t, raw, "text/html")
}

func TestLogHelpers(t *testing.T) {
	// Without a Sentry client both helpers only log.
	SetupLogger("production", "error")
	assert.NotPanics(t, func() {
		LogError("test_error", errors.New("boom"), map[string]interface{}{"id": 1})
		LogEvent("test_event", map[string]interface{}{"id": 1})
	})
	assert.NoError(t, InitSentry("", "test"))
	SetupLogger("development", "info")
}
