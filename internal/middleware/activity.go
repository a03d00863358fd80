package middleware

import (
	"net/http"
	"strings"

	"github.com/atticuslegal/practice_mgmt_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not produce activity events.
var pathsToSkip = map[string]bool{
	"/health": true,
}

// ActivityTrackingMiddleware emits an analytics event per successful request.
// The distinct id is the staff user when present, otherwise the portal client
// so client-portal usage is visible to the firm.
func ActivityTrackingMiddleware(analytics *utils.AnalyticsClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !analytics.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		distinctID, ok := GetUserIDFromContext(c)
		if !ok {
			pc, pok := GetPortalClientFromContext(c)
			if !pok {
				return
			}
			distinctID = "portal:" + pc.ClientID
		}

		// e.g. "/api/v1/conflicts/checks" -> "api_v1_conflicts_checks"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		eventName = strings.ReplaceAll(eventName, ":", "")
		if eventName == "" {
			return
		}

		analytics.Enqueue(distinctID, eventName, map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		})
	}
}
