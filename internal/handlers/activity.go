package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const activityLimit = 200

// ListActivity показывает журнал действий текущей сессии.
func (h *Handler) ListActivity(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	if !h.Journal.Enabled() {
		render(c, http.StatusOK, "activity.html", gin.H{"disabled": true})
		return
	}

	logs, err := h.Journal.ForSession(ws.ID, activityLimit)
	if err != nil {
		log.Printf("activity page: %v", err)
		c.String(http.StatusInternalServerError, "Ошибка загрузки журнала")
		return
	}

	render(c, http.StatusOK, "activity.html", gin.H{
		"logs": logs,
	})
}
