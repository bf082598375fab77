package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/mtodo/internal/pkg/response"
	"github.com/xxxsen/mtodo/internal/pkg/token"
	"github.com/xxxsen/mtodo/internal/service"
)

const ContextIdentityKey = "identity"

// Auth extracts the bearer token, verifies it and resolves the subject
// to a user. All failure modes produce the same 401 so callers cannot
// probe which emails exist.
func Auth(secret []byte, users service.CredentialStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(c)
			return
		}
		subject, err := token.Verify(parts[1], secret)
		if err != nil {
			unauthorized(c)
			return
		}
		user, err := users.GetByEmail(c.Request.Context(), subject)
		if err != nil {
			unauthorized(c)
			return
		}
		c.Set(ContextIdentityKey, service.Identity{UserID: user.ID, Email: user.Email})
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	response.Error(c, http.StatusUnauthorized, "unauthorized", "could not validate credentials")
	c.Abort()
}

func GetIdentity(c *gin.Context) (service.Identity, bool) {
	value, ok := c.Get(ContextIdentityKey)
	if !ok {
		return service.Identity{}, false
	}
	ident, ok := value.(service.Identity)
	return ident, ok
}
