package handlers

import (
	"mime"
	"net/http"

	"ams-app/internal/models"

	"github.com/gin-gonic/gin"
)

// sendAttachment отдаёт файл из памяти сессии как загрузку.
func sendAttachment(c *gin.Context, a *models.Attachment) {
	if a == nil {
		c.String(http.StatusNotFound, "Файл не прикреплён")
		return
	}

	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Name}))
	c.Data(http.StatusOK, contentType, a.Data)
}
