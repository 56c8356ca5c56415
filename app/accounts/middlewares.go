package accounts

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joefazee/creda/app/api"
	"github.com/joefazee/creda/internal/security"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"

	ContextAccountIDKey = "accountID"

	// AdminPermission gates resolution, market management, and top-ups.
	AdminPermission = "admin"
)

// AuthMiddleware verifies the bearer token and loads the caller's
// permissions into the request context.
func AuthMiddleware(tokenMaker security.Maker, repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeaderKey)
		if authHeader == "" {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 || fields[0] != AuthorizationTypeBearer {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		account, err := repo.GetByID(c.Request.Context(), payload.UserID)
		if err != nil {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		permissions := []string{}
		if account.IsAdmin {
			permissions = append(permissions, AdminPermission)
		}

		c.Set(ContextAccountIDKey, account.ID)
		c.Set("permissions", permissions)
		c.Next()
	}
}

// AccountIDFromContext extracts the authenticated account ID set by
// AuthMiddleware. The bool reports whether a valid ID was present.
func AccountIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextAccountIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
