package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const userIDKey = contextKey("userID")
const portalClientKey = contextKey("portalClient")

// PortalClient is the identity a portal session exposes to downstream
// handlers: which client is logged in and which attorney owns the record.
type PortalClient struct {
	ClientID       string
	AttorneyUserID string
}

// GetUserIDFromContext retrieves the authenticated staff user ID from the Gin
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := v.(string); ok {
			return userID, true
		}
		return "", false
	}
	// Check the request context as well; the auth middleware stores it there.
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}
	return "", false
}

// GetPortalClientFromContext retrieves the portal session identity set by the
// portal auth middleware.
func GetPortalClientFromContext(c *gin.Context) (PortalClient, bool) {
	if v := c.Request.Context().Value(portalClientKey); v != nil {
		if pc, ok := v.(PortalClient); ok {
			return pc, true
		}
	}
	return PortalClient{}, false
}

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func withPortalClient(ctx context.Context, pc PortalClient) context.Context {
	return context.WithValue(ctx, portalClientKey, pc)
}
