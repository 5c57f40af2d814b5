package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"tyreplus-backend/internal/domain/identity"
	"tyreplus-backend/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxSubjectIDKey = "subject_id"
	ctxRoleKey      = "subject_role"
)

type AuthMiddleware struct {
	jwtService *jwt.Service
}

func NewAuthMiddleware(jwtService *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Access token required"}})
			c.Abort()
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			slog.Warn("token validation failed", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Invalid or expired token"}})
			c.Abort()
			return
		}

		c.Set(ctxSubjectIDKey, claims.SubjectID)
		c.Set(ctxRoleKey, identity.Role(claims.Role))
		c.Next()
	}
}

// RequireRole is an exact match: a dealer token on a customer route is a
// 403, not an escalation question.
func (m *AuthMiddleware) RequireRole(required identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			// Should always run after RequireAuth.
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Internal server error"}})
			c.Abort()
			return
		}

		if role != required {
			c.JSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Insufficient permissions"}})
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}

func GetSubjectID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxSubjectIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetRole(c *gin.Context) (identity.Role, bool) {
	v, exists := c.Get(ctxRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(identity.Role)
	return role, ok
}
