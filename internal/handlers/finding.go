package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"ams-app/internal/models"
	"ams-app/internal/session"
	"ams-app/internal/store"

	"github.com/gin-gonic/gin"
)

//
// НЕСООТВЕТСТВИЯ (AUDIT FINDINGS)
//

func (h *Handler) ListFindings(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}
	render(c, http.StatusOK, "findings.html", findingsPage(ws, url.Values{}, ""))
}

func (h *Handler) CreateFinding(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	engagementID := strings.TrimSpace(c.PostForm("engagement_id"))
	category := models.FindingCategory(strings.TrimSpace(c.PostForm("category")))
	description := strings.TrimSpace(c.PostForm("description"))
	riskLevel := models.RiskLevel(strings.TrimSpace(c.PostForm("risk_level")))
	rootCause := strings.TrimSpace(c.PostForm("root_cause"))
	recommendation := strings.TrimSpace(c.PostForm("recommendation"))

	evidence, err := readAttachment(c, "evidence", h.MaxUpload)
	if err != nil {
		h.renderFindingError(c, ws, errorStatus(err), errorMessage(err))
		return
	}

	id, err := ws.Store.CreateFinding(store.FindingInput{
		EngagementID:   engagementID,
		Category:       category,
		Description:    description,
		RiskLevel:      riskLevel,
		RootCause:      rootCause,
		Recommendation: recommendation,
		Evidence:       evidence,
	})
	if err != nil {
		h.renderFindingError(c, ws, errorStatus(err), errorMessage(err))
		return
	}

	h.Metrics.RecordCreated(store.EntityFinding)
	h.Journal.Record(ws.ID, store.EntityFinding, id, "create", "Несоответствие к проверке "+engagementID)

	redirectWithFlash(c, "/findings", fmt.Sprintf("Несоответствие %s добавлено к проверке %s", id, engagementID))
}

func (h *Handler) ChangeFindingStatus(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.PostForm("id"))
	status := models.FindingStatus(c.PostForm("status"))

	if err := ws.Store.UpdateFindingStatus(id, status); err != nil {
		h.renderFindingError(c, ws, errorStatus(err), errorMessage(err))
		return
	}

	h.Metrics.StatusUpdated(store.EntityFinding, string(status))
	h.Journal.Record(ws.ID, store.EntityFinding, id, "status_change", "Статус изменён на: "+string(status))

	redirectWithFlash(c, "/findings", fmt.Sprintf("Статус несоответствия %s изменён на %s", id, status))
}

func (h *Handler) DownloadFindingEvidence(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	f, err := ws.Store.Finding(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "Несоответствие не найдено")
		return
	}
	sendAttachment(c, f.Evidence)
}

func (h *Handler) renderFindingError(c *gin.Context, ws *session.Workspace, status int, msg string) {
	if status == http.StatusBadRequest {
		h.Metrics.ValidationFailed(store.EntityFinding)
	}
	render(c, status, "findings.html", findingsPage(ws, c.Request.PostForm, msg))
}

func findingsPage(ws *session.Workspace, form url.Values, errMsg string) gin.H {
	if form == nil {
		form = url.Values{}
	}

	return gin.H{
		"findings":          ws.Store.FindingSummaries(),
		"engagementOptions": engagementOptions(ws.Store.EngagementSummaries()),
		"categories":        models.FindingCategories,
		"riskLevels":        models.RiskLevels,
		"statuses":          models.FindingStatuses,
		"form":              form,
		"error":             errMsg,
	}
}

// в форме можно выбрать только существующие проверки
func engagementOptions(list []store.EngagementSummary) []option {
	opts := make([]option, 0, len(list))
	for _, e := range list {
		opts = append(opts, option{ID: e.ID, Label: e.ID + " - " + e.Title})
	}
	return opts
}
