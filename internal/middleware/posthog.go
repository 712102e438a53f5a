package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/medibill/diagnostics_billing_app/internal/utils"
)

// untrackedPaths are never reported to PostHog.
var untrackedPaths = map[string]bool{
	"/health": true,
	"/":       true,
}

// PosthogMiddleware reports successful authenticated API calls as PostHog
// events named after the route, e.g. "api_v1_receipts".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		// Only successful requests are tracked.
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Anonymous requests (login, refresh) carry no distinct id.
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// FullPath is empty for unmatched routes.
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			routeParams := make(map[string]string, len(c.Params))
			for _, p := range c.Params {
				routeParams[p.Key] = p.Value
			}
			props["params"] = routeParams
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// PosthogEvent reports a custom event from a handler, tagged with the request
// method and path.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}

	userID, exists := GetUserIDFromContext(c)
	if !exists {
		return
	}

	if properties == nil {
		properties = make(map[string]any)
	}
	properties["method"] = c.Request.Method
	properties["path"] = c.Request.URL.Path

	posthogClient.Enqueue(userID, eventName, properties)
}
