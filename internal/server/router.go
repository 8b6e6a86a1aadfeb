package server

import (
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"ams-app/internal/config"
	"ams-app/internal/handlers"
	"ams-app/internal/middleware"
	"ams-app/web"

	"github.com/dustin/go-humanize"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const sessionName = "ams_session"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("2006-01-02")
}

func formatBytes(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"date":  formatDate,
		"bytes": formatBytes,
		"join":  joinList,
	}).ParseFS(web.Templates, "templates/*.html"))
}

func NewRouter(cfg *config.Config, h *handlers.Handler, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	static, _ := fs.Sub(web.Static, "static")
	r.StaticFS("/static", http.FS(static))
	r.SetHTMLTemplate(loadTemplates())

	// HEALTHCHECK / METRICS — без сессии
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	app := r.Group("/")
	app.Use(sessions.Sessions(sessionName, store))
	app.Use(middleware.LimitBody(cfg.MaxUploadBytes))
	app.Use(middleware.InjectWorkspace(h.Registry, h.Metrics))

	// ПАНЕЛЬ
	app.GET("/", h.Dashboard)
	app.GET("/api/dashboard", h.DashboardJSON)

	// ПРОВЕРКИ
	app.GET("/engagements", h.ListEngagements)
	app.POST("/engagements", h.CreateEngagement)
	app.POST("/engagements/status", h.ChangeEngagementStatus)
	app.GET("/engagements/:id/report", h.DownloadReport)

	// НЕСООТВЕТСТВИЯ
	app.GET("/findings", h.ListFindings)
	app.POST("/findings", h.CreateFinding)
	app.POST("/findings/status", h.ChangeFindingStatus)
	app.GET("/findings/:id/evidence", h.DownloadFindingEvidence)

	// КОРРЕКТИРУЮЩИЕ ДЕЙСТВИЯ
	app.GET("/actions", h.ListActions)
	app.POST("/actions", h.CreateAction)
	app.POST("/actions/status", h.ChangeActionStatus)
	app.GET("/actions/:id/evidence", h.DownloadActionEvidence)

	// ЖУРНАЛ / СЕССИЯ
	app.GET("/activity", h.ListActivity)
	app.POST("/session/reset", h.ResetSession)

	return r
}
