package handlers

import (
	"ams-app/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// ResetSession выбрасывает все записи текущей сессии и начинает с пустых списков.
func (h *Handler) ResetSession(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	h.Registry.Discard(ws.ID)
	h.Metrics.SetActiveWorkspaces(h.Registry.Len())

	sess := sessions.Default(c)
	sess.Delete(middleware.WorkspaceKey)

	redirectWithFlash(c, "/", "Сессия сброшена, все записи удалены")
}
