package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"ams-app/internal/config"
	"ams-app/internal/handlers"
	"ams-app/internal/metrics"
	"ams-app/internal/session"
	"ams-app/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const maxUpload = 1024

type testApp struct {
	engine   *gin.Engine
	registry *session.Registry
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := config.Default()
	cfg.SessionSecret = "test-secret-0123456789"
	cfg.MaxUploadBytes = maxUpload

	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	registry := session.NewRegistry(
		session.WithTTL(cfg.SessionTTL),
		session.WithStoreFactory(func() *store.Store {
			return store.New(store.WithMaxAttachment(cfg.MaxUploadBytes))
		}),
	)
	h := &handlers.Handler{
		Registry:  registry,
		Metrics:   rec,
		MaxUpload: cfg.MaxUploadBytes,
	}
	return &testApp{engine: NewRouter(cfg, h, reg), registry: registry}
}

// client keeps the session cookie between requests.
type client struct {
	t       *testing.T
	app     *testApp
	cookies map[string]*http.Cookie
}

func (a *testApp) client(t *testing.T) *client {
	return &client{t: t, app: a, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.app.engine.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) multipartBody(fields map[string]string, fileField, fileName string, data []byte) (*bytes.Buffer, string) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(c.t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(c.t, err)
		_, err = fw.Write(data)
		require.NoError(c.t, err)
	}
	require.NoError(c.t, mw.Close())
	return &body, mw.FormDataContentType()
}

func (c *client) postMultipart(path string, fields map[string]string, fileField, fileName string, data []byte) *httptest.ResponseRecorder {
	body, contentType := c.multipartBody(fields, fileField, fileName, data)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	return c.do(req)
}

// postChunked sends the form without Content-Length.
func (c *client) postChunked(path string, fields map[string]string, fileField, fileName string, data []byte) *httptest.ResponseRecorder {
	body, contentType := c.multipartBody(fields, fileField, fileName, data)
	req := httptest.NewRequest(http.MethodPost, path, io.NopCloser(body))
	req.ContentLength = -1
	req.Header.Set("Content-Type", contentType)
	return c.do(req)
}

type dashboardJSON struct {
	TotalEngagements     int    `json:"total_engagements"`
	CompletedEngagements int    `json:"completed_engagements"`
	TotalFindings        int    `json:"total_findings"`
	ClosedPercent        string `json:"closed_percent"`
	OverdueActions       int    `json:"overdue_actions"`
	RecentEngagements    []struct {
		ID         string `json:"id"`
		ReportName string `json:"report_name"`
	} `json:"recent_engagements"`
}

func (c *client) dashboard() dashboardJSON {
	w := c.get("/api/dashboard")
	require.Equal(c.t, http.StatusOK, w.Code)
	var d dashboardJSON
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &d))
	return d
}

func engagementFields() map[string]string {
	return map[string]string{
		"title":      "Annual IT Security Audit",
		"department": "IT",
		"audit_type": "IT",
		"auditors":   "John Doe, Jane Smith",
		"auditees":   "Emily White",
		"start_date": "2024-03-01",
		"end_date":   "2024-03-31",
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	w := app.client(t).get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestEmptyDashboard(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	w := c.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0.0%")

	d := c.dashboard()
	assert.Zero(t, d.TotalEngagements)
	assert.Equal(t, "0.0%", d.ClosedPercent)
}

func TestEndToEndFlow(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	w := c.postMultipart("/engagements", engagementFields(), "report", "final.pdf", []byte("%PDF-1.4"))
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/engagements", w.Header().Get("Location"))

	w = c.get("/engagements")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "AE001")
	assert.Contains(t, body, "ID: AE001", "flash names the new id")
	assert.Contains(t, body, "/engagements/AE001/report")
	assert.NotContains(t, body, "%PDF-1.4", "raw bytes never rendered")

	w = c.postMultipart("/findings", map[string]string{
		"engagement_id": "AE001",
		"category":      "Major",
		"description":   "Firewall rules undocumented",
		"risk_level":    "High",
	}, "", "", nil)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	w = c.postMultipart("/actions", map[string]string{
		"finding_id":         "F001",
		"responsible_person": "Bob",
		"description":        "Document the rules",
		"due_date":           yesterday,
	}, "", "", nil)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())

	w = c.get("/actions")
	assert.Contains(t, w.Body.String(), "CA001")
	assert.Equal(t, 1, c.dashboard().OverdueActions)

	w = c.postForm("/actions/status", url.Values{"id": {"CA001"}, "status": {"Verified"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Zero(t, c.dashboard().OverdueActions)

	w = c.postForm("/engagements/status", url.Values{"id": {"AE001"}, "status": {"Completed"}})
	require.Equal(t, http.StatusFound, w.Code)
	w = c.postForm("/findings/status", url.Values{"id": {"F001"}, "status": {"Closed"}})
	require.Equal(t, http.StatusFound, w.Code)

	d := c.dashboard()
	assert.Equal(t, 1, d.TotalEngagements)
	assert.Equal(t, 1, d.CompletedEngagements)
	assert.Equal(t, "100.0%", d.ClosedPercent)
	require.Len(t, d.RecentEngagements, 1)
	assert.Equal(t, "final.pdf", d.RecentEngagements[0].ReportName)
}

func TestCreateEngagementRequiresTitle(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	fields := engagementFields()
	fields["title"] = ""
	w := c.postMultipart("/engagements", fields, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Заполните обязательные поля: Название проверки")
	// введённые даты не заменяются значениями по умолчанию
	assert.Contains(t, w.Body.String(), `value="2024-03-01"`)
	assert.Contains(t, w.Body.String(), `value="2024-03-31"`)
	assert.Zero(t, c.dashboard().TotalEngagements)
}

func TestCreateActionKeepsDueDateOnError(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	require.Equal(t, http.StatusFound, c.postMultipart("/engagements", engagementFields(), "", "", nil).Code)
	require.Equal(t, http.StatusFound, c.postMultipart("/findings", map[string]string{
		"engagement_id": "AE001",
		"description":   "Firewall rules undocumented",
		"risk_level":    "High",
	}, "", "", nil).Code)

	w := c.postMultipart("/actions", map[string]string{
		"finding_id":  "F001",
		"description": "Document the rules",
		"due_date":    "2031-07-09",
	}, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Заполните обязательные поля: Ответственный")
	assert.Contains(t, w.Body.String(), `value="2031-07-09"`)
	assert.Contains(t, w.Body.String(), "F001 - Firewall rules undocumented")
}

func TestCreateEngagementBadDate(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	fields := engagementFields()
	fields["start_date"] = "01.03.2024"
	w := c.postMultipart("/engagements", fields, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, c.dashboard().TotalEngagements)
}

func TestUploadTooLarge(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	w := c.postMultipart("/engagements", engagementFields(), "report", "big.pdf", bytes.Repeat([]byte("x"), maxUpload+1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Файл слишком большой")
	assert.Zero(t, c.dashboard().TotalEngagements)
}

func TestChunkedUploadTooLarge(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	data := bytes.Repeat([]byte("x"), maxUpload+(1<<20)+4096)
	w := c.postChunked("/engagements", engagementFields(), "report", "big.pdf", data)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Файл слишком большой")
	assert.NotContains(t, w.Body.String(), "Внутренняя ошибка")
	assert.Zero(t, c.dashboard().TotalEngagements)

	m := c.get("/metrics")
	assert.Contains(t, m.Body.String(), `ams_validation_failures_total{entity="engagement"} 1`)
}

func TestFindingWithUnknownEngagement(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	w := c.get("/findings")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Сначала создайте проверку")

	w = c.postMultipart("/findings", map[string]string{
		"engagement_id": "AE001",
		"description":   "d",
		"risk_level":    "Low",
	}, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "AE001")
}

func TestStatusUpdateUnknownID(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	require.Equal(t, http.StatusFound, c.postMultipart("/engagements", engagementFields(), "", "", nil).Code)

	w := c.postForm("/engagements/status", url.Values{"id": {"AE404"}, "status": {"Completed"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, c.dashboard().CompletedEngagements)

	w = c.postForm("/engagements/status", url.Values{"id": {"AE001"}, "status": {"Archived"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadReport(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	require.Equal(t, http.StatusFound, c.postMultipart("/engagements", engagementFields(), "report", "final.pdf", []byte("report-bytes")).Code)
	require.Equal(t, http.StatusFound, c.postMultipart("/engagements", engagementFields(), "", "", nil).Code)

	w := c.get("/engagements/AE001/report")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "report-bytes", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "final.pdf")

	assert.Equal(t, http.StatusNotFound, c.get("/engagements/AE002/report").Code)
	assert.Equal(t, http.StatusNotFound, c.get("/engagements/AE999/report").Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	app := newTestApp(t)
	alice := app.client(t)
	bob := app.client(t)

	require.Equal(t, http.StatusFound, alice.postMultipart("/engagements", engagementFields(), "", "", nil).Code)

	assert.Equal(t, 1, alice.dashboard().TotalEngagements)
	assert.Zero(t, bob.dashboard().TotalEngagements)
	assert.Equal(t, 2, app.registry.Len())
}

func TestResetSession(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	require.Equal(t, http.StatusFound, c.postMultipart("/engagements", engagementFields(), "", "", nil).Code)
	require.Equal(t, 1, c.dashboard().TotalEngagements)

	w := c.postForm("/session/reset", url.Values{})
	require.Equal(t, http.StatusFound, w.Code)

	assert.Zero(t, c.dashboard().TotalEngagements)
	assert.Equal(t, 1, app.registry.Len())
}

func TestActivityDisabledWithoutDB(t *testing.T) {
	app := newTestApp(t)
	w := app.client(t).get("/activity")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "db_dsn")
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	require.Equal(t, http.StatusFound, c.postMultipart("/engagements", engagementFields(), "", "", nil).Code)

	w := c.get("/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `ams_records_created_total{entity="engagement"} 1`)
	assert.Contains(t, w.Body.String(), "ams_active_workspaces 1")
}
