package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"captiveportal/generator"
	"captiveportal/models"
	"captiveportal/repository"
	"captiveportal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

const iPhoneUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

type testEnv struct {
	app        *fiber.App
	store      store.Store
	gen        *generator.Generator
	contacts   *repository.ContactRepository
	accessLogs *repository.AccessLogRepository
	campaigns  *repository.CampaignRepository
	settings   *repository.SettingsRepository
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type page[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s := store.NewMemory()
	gen := generator.New(generator.NewRandom(42), generator.WithClock(func() time.Time { return fixedNow }))
	logger := testLogger()

	env := &testEnv{
		app:        fiber.New(),
		store:      s,
		gen:        gen,
		contacts:   repository.NewContactRepository(s, gen, 30, logger),
		accessLogs: repository.NewAccessLogRepository(s, gen, 2, logger),
		campaigns:  repository.NewCampaignRepository(s, gen, logger),
		settings:   repository.NewSettingsRepository(s, logger),
	}

	portal := NewPortalController(env.contacts, env.accessLogs, env.settings, gen, logger)
	env.app.Get("/portal/:slug", portal.GetPortal)
	env.app.Post("/portal/:slug/submit", portal.Submit)

	contacts := NewContactController(env.contacts, env.accessLogs, logger)
	env.app.Get("/contacts", contacts.GetContacts)
	env.app.Get("/contacts/export", contacts.ExportContacts)
	env.app.Post("/contacts/delete", contacts.BulkDeleteContacts)
	env.app.Get("/contacts/:id", contacts.GetContact)
	env.app.Delete("/contacts/:id", contacts.DeleteContact)

	logs := NewAccessLogController(env.contacts, env.accessLogs, logger)
	env.app.Get("/access-logs", logs.GetAccessLogs)

	campaigns := NewCampaignController(env.campaigns, env.contacts, env.settings, 0, "newsletter@esempio.it", logger)
	env.app.Get("/campaigns/summary", campaigns.GetCampaignSummary)
	env.app.Get("/campaigns/recipients", campaigns.GetRecipientCount)
	env.app.Get("/campaigns", campaigns.GetCampaigns)
	env.app.Post("/campaigns", campaigns.CreateCampaign)
	env.app.Get("/campaigns/:id", campaigns.GetCampaign)
	env.app.Put("/campaigns/:id", campaigns.UpdateCampaign)
	env.app.Delete("/campaigns/:id", campaigns.DeleteCampaign)
	env.app.Post("/campaigns/:id/send", campaigns.SendCampaign)
	env.app.Get("/campaigns/:id/preview", campaigns.PreviewCampaign)

	settings := NewSettingsController(env.settings, logger)
	env.app.Get("/settings", settings.GetSettings)
	env.app.Put("/settings/portal", settings.UpdatePortal)
	env.app.Put("/settings/privacy", settings.UpdatePrivacy)
	env.app.Post("/settings/reset", settings.ResetSettings)

	dashboard := NewDashboardController(env.contacts, env.accessLogs, gen, logger)
	env.app.Get("/dashboard/stats", dashboard.GetDashboardStats)
	env.app.Get("/dashboard/daily", dashboard.GetDailyData)
	env.app.Get("/dashboard/heatmap", dashboard.GetHeatmap)

	admin := NewAdminController(s, logger)
	env.app.Post("/admin/reset-data", admin.ResetData)

	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers ...string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func validSubmission() map[string]interface{} {
	return map[string]interface{}{
		"firstName":        "  Giulia ",
		"lastName":         "Verdi",
		"email":            "giulia.verdi@example.com",
		"privacyConsent":   true,
		"marketingConsent": true,
	}
}

func TestPortal_GetUnknownSlugFallsBack(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "GET", "/portal/does-not-exist", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	portal := decode[PortalResponse](t, body.Data)
	assert.Equal(t, models.DefaultTenantSlug, portal.Tenant.Slug)
	assert.Len(t, portal.Tenant.Locations, 2)
	assert.NotEmpty(t, portal.Privacy.PrivacyText)
	assert.True(t, portal.Privacy.ShowMarketingCheckbox)
	assert.Equal(t, generator.Regions, portal.Regions)
}

func TestPortal_GetAppliesPortalSettings(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, "PUT", "/settings/portal", map[string]string{"displayName": "Trattoria Nuova", "primaryColor": "#112233"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, body := env.do(t, "GET", "/portal/"+models.DefaultTenantSlug, nil)
	portal := decode[PortalResponse](t, body.Data)
	assert.Equal(t, "Trattoria Nuova", portal.Tenant.Name)
	assert.Equal(t, "#112233", portal.Tenant.PrimaryColor)
}

func TestPortal_Submit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, body := env.do(t, "POST", "/portal/"+models.DefaultTenantSlug+"/submit", validSubmission(), "User-Agent", iPhoneUA)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body.Error)

	contacts, err := env.contacts.All(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 31)

	newest := contacts[0]
	assert.Equal(t, "Giulia", newest.FirstName)
	assert.Equal(t, "giulia.verdi@example.com", newest.Email)
	assert.True(t, newest.PrivacyConsent)
	assert.True(t, newest.MarketingConsent)
	assert.Equal(t, models.DeviceInfo{Type: "mobile", OS: "iOS", Browser: "Safari", UserAgent: iPhoneUA}, newest.Device)
	assert.Contains(t, []string{"loc-1", "loc-2"}, newest.LocationID)
	assert.NotEmpty(t, newest.City)
	assert.NotEmpty(t, newest.Region)
	assert.Equal(t, fixedNow, newest.CreatedAt)

	logs, err := env.accessLogs.ByContact(ctx, contacts, newest.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.EventLogin, logs[0].Event)
	assert.Equal(t, models.AccessSuccess, logs[0].Status)
}

func TestPortal_SubmitExplicitLocation(t *testing.T) {
	env := newTestEnv(t)

	input := validSubmission()
	input["locationId"] = "loc-2"
	resp, _ := env.do(t, "POST", "/portal/"+models.DefaultTenantSlug+"/submit", input)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	contacts, err := env.contacts.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "loc-2", contacts[0].LocationID)
	assert.Equal(t, "Sede Mare", contacts[0].LocationName)

	input["locationId"] = "loc-99"
	resp, _ = env.do(t, "POST", "/portal/"+models.DefaultTenantSlug+"/submit", input)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPortal_SubmitValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"missing first name", func(m map[string]interface{}) { m["firstName"] = "   " }},
		{"missing last name", func(m map[string]interface{}) { delete(m, "lastName") }},
		{"missing email", func(m map[string]interface{}) { m["email"] = "" }},
		{"invalid email", func(m map[string]interface{}) { m["email"] = "giulia@" }},
		{"no privacy consent", func(m map[string]interface{}) { m["privacyConsent"] = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			input := validSubmission()
			tt.mutate(input)

			resp, body := env.do(t, "POST", "/portal/"+models.DefaultTenantSlug+"/submit", input)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.False(t, body.Success)

			contacts, err := env.contacts.All(context.Background())
			require.NoError(t, err)
			assert.Len(t, contacts, 30)
		})
	}
}

func TestPortal_SubmitRequiresPhoneWhenConfigured(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, "PUT", "/settings/privacy", map[string]bool{"requirePhone": true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, "POST", "/portal/"+models.DefaultTenantSlug+"/submit", validSubmission())
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	input := validSubmission()
	input["phone"] = "+39 333 1234567"
	resp, _ = env.do(t, "POST", "/portal/"+models.DefaultTenantSlug+"/submit", input)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestContacts_ListFilterAndPaginate(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "GET", "/contacts?limit=10&page=2", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	p := decode[page[models.Contact]](t, body.Data)
	assert.Equal(t, int64(30), p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Len(t, p.Data, 10)

	_, body = env.do(t, "GET", "/contacts?limit=100&locationId=loc-1&marketingConsent=true", nil)
	p = decode[page[models.Contact]](t, body.Data)
	for _, c := range p.Data {
		assert.Equal(t, "loc-1", c.LocationID)
		assert.True(t, c.MarketingConsent)
	}

	resp, _ = env.do(t, "GET", "/contacts?dateFrom=yesterday", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestContacts_PageBeyondRange(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/contacts?page=1152921504606846977&limit=8",
		"/access-logs?page=9223372036854775807&limit=100",
		"/campaigns?page=1152921504606846977&limit=8",
	} {
		resp, body := env.do(t, "GET", path, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, path)
		p := decode[page[json.RawMessage]](t, body.Data)
		assert.Empty(t, p.Data, path)
		assert.Positive(t, p.Total, path)
	}
}

func TestContacts_GetAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	contacts, err := env.contacts.All(ctx)
	require.NoError(t, err)
	id := contacts[0].ID

	resp, body := env.do(t, "GET", "/contacts/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	detail := decode[ContactDetail](t, body.Data)
	assert.Equal(t, id, detail.ID)
	for _, l := range detail.AccessLogs {
		assert.Equal(t, id, l.ContactID)
	}

	resp, _ = env.do(t, "DELETE", "/contacts/"+id, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, "GET", "/contacts/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, _ = env.do(t, "DELETE", "/contacts/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestContacts_BulkDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	contacts, err := env.contacts.All(ctx)
	require.NoError(t, err)

	resp, body := env.do(t, "POST", "/contacts/delete", map[string][]string{"ids": {contacts[0].ID, contacts[1].ID, "unknown"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"deleted":2}`, string(body.Data))

	resp, _ = env.do(t, "POST", "/contacts/delete", map[string][]string{"ids": {}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	left, err := env.contacts.All(ctx)
	require.NoError(t, err)
	assert.Len(t, left, 28)
}

func TestContacts_Export(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, "GET", "/contacts/export", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Regexp(t, `attachment; filename=contatti_\d{4}-\d{2}-\d{2}\.csv`, resp.Header.Get("Content-Disposition"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimPrefix(string(raw), "\ufeff"), "\n")
	assert.Len(t, lines, 31)
	assert.True(t, strings.HasPrefix(lines[0], "Nome;Cognome;Email"))
}

func TestAccessLogs_Filter(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "GET", "/access-logs?limit=100&status=success&event=all", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	p := decode[page[models.AccessLog]](t, body.Data)
	assert.NotZero(t, p.Total)
	for _, l := range p.Data {
		assert.Equal(t, models.AccessSuccess, l.Status)
		assert.Positive(t, l.Duration)
	}
}

func TestCampaigns_Lifecycle(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/campaigns", map[string]interface{}{
		"name":         "Promo Pasqua",
		"subject":      "Offerta di Pasqua",
		"body":         "Ti aspettiamo!",
		"targetFilter": map[string]interface{}{"marketingConsentOnly": true},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body.Error)
	created := decode[models.Campaign](t, body.Data)
	assert.Equal(t, models.CampaignDraft, created.Status)

	resp, body = env.do(t, "PUT", "/campaigns/"+created.ID, map[string]string{"subject": "Pasqua da Mario"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Pasqua da Mario", decode[models.Campaign](t, body.Data).Subject)

	resp, body = env.do(t, "GET", "/campaigns/"+created.ID+"/preview", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	preview := decode[CampaignPreview](t, body.Data)
	assert.Contains(t, preview.Raw, "Subject: Pasqua da Mario")
	assert.Contains(t, preview.Raw, preview.To)

	contacts, err := env.contacts.All(context.Background())
	require.NoError(t, err)
	want := repository.CountRecipients(contacts, models.CampaignFilter{MarketingConsentOnly: true})

	resp, body = env.do(t, "POST", "/campaigns/"+created.ID+"/send", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	sent := decode[models.Campaign](t, body.Data)
	assert.Equal(t, models.CampaignSent, sent.Status)
	assert.Equal(t, want, sent.Recipients)
	assert.LessOrEqual(t, sent.Opened, sent.Recipients)
	assert.LessOrEqual(t, sent.Clicked, sent.Opened)

	resp, _ = env.do(t, "POST", "/campaigns/"+created.ID+"/send", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp, _ = env.do(t, "PUT", "/campaigns/"+created.ID, map[string]string{"name": "x"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = env.do(t, "DELETE", "/campaigns/"+created.ID, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = env.do(t, "GET", "/campaigns/"+created.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCampaigns_SendCancelledDuringDelay(t *testing.T) {
	env := newTestEnv(t)
	created, err := env.campaigns.Create(context.Background(), repository.CampaignInput{Name: "Lenta", Subject: "Attesa", Body: "..."})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	campaigns := NewCampaignController(env.campaigns, env.contacts, env.settings, time.Minute, "newsletter@esempio.it", testLogger())
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.SetUserContext(ctx)
		return c.Next()
	})
	app.Post("/campaigns/:id/send", campaigns.SendCampaign)

	resp, err := app.Test(httptest.NewRequest("POST", "/campaigns/"+created.ID+"/send", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusRequestTimeout, resp.StatusCode)

	stored, err := env.campaigns.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignDraft, stored.Status)
}

func TestCampaigns_CreateValidation(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/campaigns", map[string]string{"name": "Senza oggetto"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body.Error, "subject is required")
}

func TestCampaigns_ListAndSummary(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "GET", "/campaigns?status=sent", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	p := decode[page[models.Campaign]](t, body.Data)
	assert.Equal(t, int64(2), p.Total)

	_, body = env.do(t, "GET", "/campaigns/summary", nil)
	summary := decode[repository.CampaignSummary](t, body.Data)
	assert.Equal(t, 970, summary.TotalSent)
	assert.Equal(t, 51, summary.OpenRate)
	assert.Equal(t, 27, summary.ClickRate)
}

func TestCampaigns_RecipientCount(t *testing.T) {
	env := newTestEnv(t)

	contacts, err := env.contacts.All(context.Background())
	require.NoError(t, err)

	_, body := env.do(t, "GET", "/campaigns/recipients", nil)
	assert.JSONEq(t, `{"recipients":30}`, string(body.Data))

	want := repository.CountRecipients(contacts, models.CampaignFilter{MarketingConsentOnly: true, LocationIDs: []string{"loc-1"}})
	_, body = env.do(t, "GET", "/campaigns/recipients?marketingOnly=true&locationId=loc-1", nil)
	got := decode[map[string]int](t, body.Data)
	assert.Equal(t, want, got["recipients"])
}

func TestSettings_UpdateAndReset(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "PUT", "/settings/privacy", map[string]string{"dataRetention": "7"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body.Error, "dataretention must be one of")

	resp, body = env.do(t, "PUT", "/settings/privacy", map[string]string{"dataRetention": "90"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "90", decode[models.Settings](t, body.Data).Privacy.DataRetention)

	resp, body = env.do(t, "POST", "/settings/reset", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, models.DefaultSettings(), decode[models.Settings](t, body.Data))
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "GET", "/dashboard/stats", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	s := decode[models.Stats](t, body.Data)
	assert.Equal(t, 30, s.Total)
	assert.Equal(t, 68, s.ConversionRate)
	assert.Len(t, s.DailyData, 30)
	assert.Len(t, s.HourlyHeatmap, 7)

	_, body = env.do(t, "GET", "/dashboard/daily?days=7", nil)
	assert.Len(t, decode[[]models.DailyData](t, body.Data), 7)

	resp, _ = env.do(t, "GET", "/dashboard/daily?days=0", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	_, body = env.do(t, "GET", "/dashboard/heatmap", nil)
	heatmap := decode[models.Heatmap](t, body.Data)
	require.Len(t, heatmap, 7)
	assert.Len(t, heatmap[0], 24)
}

func TestDashboard_NoContacts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	contacts, err := env.contacts.All(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(contacts))
	for _, c := range contacts {
		ids = append(ids, c.ID)
	}
	_, err = env.contacts.Delete(ctx, ids...)
	require.NoError(t, err)

	_, body := env.do(t, "GET", "/dashboard/stats", nil)
	s := decode[models.Stats](t, body.Data)
	assert.Zero(t, s.Total)
	assert.Empty(t, s.DailyData)
	assert.Empty(t, s.TopCities)
}

func TestAdmin_ResetData(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.contacts.Delete(ctx, "anything")
	require.NoError(t, err)
	_, err = env.campaigns.Create(ctx, repository.CampaignInput{Name: "n", Subject: "s", Body: "b"})
	require.NoError(t, err)

	resp, _ := env.do(t, "POST", "/admin/reset-data", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	campaigns, err := env.campaigns.All(ctx)
	require.NoError(t, err)
	assert.Len(t, campaigns, len(models.DemoCampaigns()))
}
