package handlers

import (
	"net/http"

	"ams-app/internal/database"
	"ams-app/internal/metrics"
	"ams-app/internal/middleware"
	"ams-app/internal/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Handler — зависимости HTTP-обработчиков.
type Handler struct {
	Registry  *session.Registry
	Journal   *database.Journal
	Metrics   *metrics.Recorder
	MaxUpload int64
}

// render — обёртка над c.HTML, которая во все шаблоны прокидывает
// flash-сообщения и ID рабочей сессии.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	sess := sessions.Default(c)
	if flashes := sess.Flashes(); len(flashes) > 0 {
		data["flashes"] = flashes
		_ = sess.Save()
	}

	if ws, ok := middleware.CurrentWorkspace(c); ok {
		data["WorkspaceID"] = ws.ID
	}

	c.HTML(status, tmpl, data)
}

// redirectWithFlash кладёт сообщение в сессию и уводит на страницу списка.
func redirectWithFlash(c *gin.Context, location, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg)
	_ = sess.Save()
	c.Redirect(http.StatusFound, location)
}

// workspace достаёт рабочую область запроса, которую положил middleware.
func workspace(c *gin.Context) (*session.Workspace, bool) {
	ws, ok := middleware.CurrentWorkspace(c)
	if !ok {
		c.String(http.StatusInternalServerError, "Сессия не инициализирована")
		return nil, false
	}
	return ws, true
}

// option — элемент выпадающего списка родительских записей.
type option struct {
	ID    string
	Label string
}
