package gateway

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/platform/internal/domain/user"
	"github.com/taskboard/platform/internal/errors"
	"github.com/taskboard/platform/internal/logging"
)

// currentUserKey stores the resolved identity in the gin context.
const currentUserKey = "currentUser"

// requireAuth resolves the caller's identity before the handler runs. The
// token is read cookie-first, then Authorization: Bearer. Verification only
// proves the token was ours; the follow-up lookup makes sure the account
// still exists and picks up role changes since issuance. Deleted users are
// locked out on their next request even with a live token.
func (g *Gateway) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := g.extractToken(c)
		if token == "" {
			g.fail(c, errors.Unauthorized("No token provided"))
			return
		}

		claims, err := g.auth.VerifyToken(c.Request.Context(), token)
		if err != nil {
			g.fail(c, errors.Unauthorized("Invalid token"))
			return
		}

		u, err := g.auth.ValidateUser(c.Request.Context(), claims.UserID)
		if err != nil {
			g.fail(c, errors.Unauthorized("Invalid token"))
			return
		}

		ctx := logging.WithUserID(c.Request.Context(), u.ID)
		ctx = logging.WithRole(ctx, string(u.Role))
		c.Request = c.Request.WithContext(ctx)
		c.Set(currentUserKey, u)
		c.Next()
	}
}

func (g *Gateway) extractToken(c *gin.Context) string {
	if token := g.cookies.ReadAccessToken(c); token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// currentUser returns the identity resolved by requireAuth. Handlers behind
// the middleware may assume it is present.
func currentUser(c *gin.Context) user.Public {
	v, _ := c.Get(currentUserKey)
	u, _ := v.(user.Public)
	return u
}
