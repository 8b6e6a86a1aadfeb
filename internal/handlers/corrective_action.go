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
// КОРРЕКТИРУЮЩИЕ ДЕЙСТВИЯ
//

func (h *Handler) ListActions(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}
	render(c, http.StatusOK, "actions.html", actionsPage(ws, url.Values{}, ""))
}

func (h *Handler) CreateAction(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	findingID := strings.TrimSpace(c.PostForm("finding_id"))
	person := strings.TrimSpace(c.PostForm("responsible_person"))
	description := strings.TrimSpace(c.PostForm("description"))

	due, err := parseDate(c.PostForm("due_date"))
	if err != nil {
		h.renderActionError(c, ws, http.StatusBadRequest, "Неверная дата срока")
		return
	}

	evidence, err := readAttachment(c, "evidence", h.MaxUpload)
	if err != nil {
		h.renderActionError(c, ws, errorStatus(err), errorMessage(err))
		return
	}

	id, err := ws.Store.CreateCorrectiveAction(store.CorrectiveActionInput{
		FindingID:         findingID,
		ResponsiblePerson: person,
		Description:       description,
		DueDate:           due,
		Evidence:          evidence,
	})
	if err != nil {
		h.renderActionError(c, ws, errorStatus(err), errorMessage(err))
		return
	}

	h.Metrics.RecordCreated(store.EntityAction)
	h.Journal.Record(ws.ID, store.EntityAction, id, "create", "Действие по несоответствию "+findingID+", ответственный: "+person)

	redirectWithFlash(c, "/actions", fmt.Sprintf("Корректирующее действие %s добавлено к несоответствию %s", id, findingID))
}

func (h *Handler) ChangeActionStatus(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.PostForm("id"))
	status := models.ActionStatus(c.PostForm("status"))

	if err := ws.Store.UpdateActionStatus(id, status); err != nil {
		h.renderActionError(c, ws, errorStatus(err), errorMessage(err))
		return
	}

	h.Metrics.StatusUpdated(store.EntityAction, string(status))
	h.Journal.Record(ws.ID, store.EntityAction, id, "status_change", "Статус изменён на: "+string(status))

	redirectWithFlash(c, "/actions", fmt.Sprintf("Статус действия %s изменён на %s", id, status))
}

func (h *Handler) DownloadActionEvidence(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	a, err := ws.Store.Action(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "Действие не найдено")
		return
	}
	sendAttachment(c, a.FollowUpEvidence)
}

func (h *Handler) renderActionError(c *gin.Context, ws *session.Workspace, status int, msg string) {
	if status == http.StatusBadRequest {
		h.Metrics.ValidationFailed(store.EntityAction)
	}
	render(c, status, "actions.html", actionsPage(ws, c.Request.PostForm, msg))
}

func actionsPage(ws *session.Workspace, form url.Values, errMsg string) gin.H {
	if form == nil {
		form = url.Values{}
	}

	return gin.H{
		"actions":        ws.Store.ActionSummaries(),
		"findingOptions": findingOptions(ws.Store.FindingSummaries()),
		"statuses":       models.ActionStatuses,
		"defaultDueDate": time.Now().AddDate(0, 0, 14).Format(dateLayout),
		"form":           form,
		"error":          errMsg,
	}
}

func findingOptions(list []store.FindingSummary) []option {
	opts := make([]option, 0, len(list))
	for _, f := range list {
		opts = append(opts, option{ID: f.ID, Label: f.ID + " - " + f.Description})
	}
	return opts
}
