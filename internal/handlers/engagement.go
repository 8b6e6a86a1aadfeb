package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ams-app/internal/models"
	"ams-app/internal/session"
	"ams-app/internal/store"

	"github.com/gin-gonic/gin"
)

//
// ПРОВЕРКИ (AUDIT ENGAGEMENTS)
//

func (h *Handler) ListEngagements(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}
	render(c, http.StatusOK, "engagements.html", engagementsPage(ws, url.Values{}, ""))
}

func (h *Handler) CreateEngagement(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	department := strings.TrimSpace(c.PostForm("department"))
	auditType := models.AuditType(strings.TrimSpace(c.PostForm("audit_type")))
	auditors := splitList(c.PostForm("auditors"))
	auditees := splitList(c.PostForm("auditees"))

	start, err := parseDate(c.PostForm("start_date"))
	if err != nil {
		h.renderEngagementError(c, ws, http.StatusBadRequest, "Неверная дата начала")
		return
	}
	end, err := parseDate(c.PostForm("end_date"))
	if err != nil {
		h.renderEngagementError(c, ws, http.StatusBadRequest, "Неверная дата окончания")
		return
	}

	report, err := readAttachment(c, "report", h.MaxUpload)
	if err != nil {
		h.renderEngagementError(c, ws, errorStatus(err), errorMessage(err))
		return
	}

	id, err := ws.Store.CreateEngagement(store.EngagementInput{
		Title:      title,
		Department: department,
		AuditType:  auditType,
		Auditors:   auditors,
		Auditees:   auditees,
		StartDate:  start,
		EndDate:    end,
		Report:     report,
	})
	if err != nil {
		h.renderEngagementError(c, ws, errorStatus(err), errorMessage(err))
		return
	}

	h.Metrics.RecordCreated(store.EntityEngagement)
	h.Journal.Record(ws.ID, store.EntityEngagement, id, "create", "Создана проверка: "+title)

	redirectWithFlash(c, "/engagements", fmt.Sprintf("Проверка «%s» создана, ID: %s", title, id))
}

func (h *Handler) ChangeEngagementStatus(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.PostForm("id"))
	status := models.EngagementStatus(c.PostForm("status"))

	if err := ws.Store.UpdateEngagementStatus(id, status); err != nil {
		h.renderEngagementError(c, ws, errorStatus(err), errorMessage(err))
		return
	}

	h.Metrics.StatusUpdated(store.EntityEngagement, string(status))
	h.Journal.Record(ws.ID, store.EntityEngagement, id, "status_change", "Статус изменён на: "+string(status))

	redirectWithFlash(c, "/engagements", fmt.Sprintf("Статус проверки %s изменён на %s", id, status))
}

func (h *Handler) DownloadReport(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	e, err := ws.Store.Engagement(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "Проверка не найдена")
		return
	}
	sendAttachment(c, e.Report)
}

func (h *Handler) renderEngagementError(c *gin.Context, ws *session.Workspace, status int, msg string) {
	if status == http.StatusBadRequest {
		h.Metrics.ValidationFailed(store.EntityEngagement)
	}
	render(c, status, "engagements.html", engagementsPage(ws, c.Request.PostForm, msg))
}

func engagementsPage(ws *session.Workspace, form url.Values, errMsg string) gin.H {
	today := time.Now()
	if form == nil {
		form = url.Values{}
	}
	return gin.H{
		"engagements":      ws.Store.EngagementSummaries(),
		"auditTypes":       models.AuditTypes,
		"statuses":         models.EngagementStatuses,
		"defaultStartDate": today.Format(dateLayout),
		"defaultEndDate":   today.AddDate(0, 0, 30).Format(dateLayout),
		"form":             form,
		"error":            errMsg,
	}
}
