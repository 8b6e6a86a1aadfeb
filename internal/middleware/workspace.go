package middleware

import (
	"ams-app/internal/metrics"
	"ams-app/internal/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// WorkspaceKey — ключ в cookie-сессии и в gin.Context.
	WorkspaceKey = "workspace_id"
	ContextKey   = "Workspace"
)

// InjectWorkspace binds the request to its session workspace, creating one
// when the cookie is missing or its workspace has expired. The session cookie
// is re-issued on every request. The workspace stays locked until the handler
// chain returns.
func InjectWorkspace(reg *session.Registry, rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		id, _ := sess.Get(WorkspaceKey).(string)

		// cookie перевыпускается на каждом запросе: MaxAge считается
		// от последнего обращения, как TTL рабочей области
		ws := reg.Acquire(id)
		sess.Set(WorkspaceKey, ws.ID)
		_ = sess.Save()
		rec.SetActiveWorkspaces(reg.Len())

		ws.Lock()
		defer ws.Unlock()

		c.Set(ContextKey, ws)
		c.Next()
	}
}

// CurrentWorkspace returns the workspace put by InjectWorkspace.
func CurrentWorkspace(c *gin.Context) (*session.Workspace, bool) {
	v, ok := c.Get(ContextKey)
	if !ok {
		return nil, false
	}
	ws, ok := v.(*session.Workspace)
	return ws, ok
}
