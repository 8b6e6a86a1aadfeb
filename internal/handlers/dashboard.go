package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Dashboard — главная: KPI и последние записи.
func (h *Handler) Dashboard(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"dashboard": ws.Store.Dashboard(),
	})
}

func (h *Handler) DashboardJSON(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	d := ws.Store.Dashboard()
	c.JSON(http.StatusOK, gin.H{
		"total_engagements":     d.TotalEngagements,
		"completed_engagements": d.CompletedEngagements,
		"total_findings":        d.TotalFindings,
		"closed_findings":       d.ClosedFindings,
		"closed_percent":        d.ClosedPercentLabel(),
		"overdue_actions":       d.OverdueActions,
		"recent_engagements":    d.RecentEngagements,
		"recent_findings":       d.RecentFindings,
	})
}
