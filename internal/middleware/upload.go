package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// formOverhead — запас на текстовые поля формы сверх размера файла.
const formOverhead = 1 << 20

// LimitBody caps request bodies at maxUpload plus room for the form fields.
func LimitBody(maxUpload int64) gin.HandlerFunc {
	limit := maxUpload + formOverhead
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.String(http.StatusRequestEntityTooLarge, "Файл слишком большой")
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
