package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gin-gonic/gin"
)

// PortalAudience is the audience claim carried by client portal tokens.
const PortalAudience = "portal"

// PortalClaims are the JWT claims carried by a portal session token. Subject
// is the client ID; the attorney user ID rides along so downstream handlers
// can scope reads without an extra lookup.
type PortalClaims struct {
	AttorneyUserID string `json:"attorneyUserID"`
	jwt.RegisteredClaims
}

// PortalAuthMiddleware validates portal session tokens and exposes the
// PortalClient identity to downstream handlers.
func PortalAuthMiddleware(portalSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Portal authorization header missing or malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims := &PortalClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(portalSecret), nil
		}, jwt.WithAudience(PortalAudience))
		if err != nil || !token.Valid {
			logger.Warn("Invalid portal token", slog.Any("error", err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired portal session"})
			return
		}

		if claims.Subject == "" {
			logger.Error("Client ID (subject) missing from valid portal token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid portal session"})
			return
		}

		pc := PortalClient{ClientID: claims.Subject, AttorneyUserID: claims.AttorneyUserID}
		ctx := withPortalClient(c.Request.Context(), pc)
		enrichedLogger := logger.With(slog.String("portal_client_id", pc.ClientID))
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))

		c.Next()
	}
}
