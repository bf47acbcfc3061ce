package gateway

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/platform/internal/config"
)

// accessTokenCookie is the session cookie name. Both the setter and the
// reader use this name; the token is also accepted as a Bearer header for
// non-browser clients.
const accessTokenCookie = "accessToken"

// CookieHelper writes and clears the identity cookie. HttpOnly and
// SameSite=Strict always; Secure only under production settings so local
// plain-HTTP development keeps working.
type CookieHelper struct {
	secure bool
	maxAge time.Duration
}

// NewCookieHelper builds the helper from process config.
func NewCookieHelper(cfg *config.Config) *CookieHelper {
	maxAge := cfg.JWT.Expiry
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	return &CookieHelper{secure: cfg.IsProduction(), maxAge: maxAge}
}

// SetAccessToken attaches the token cookie to the response.
func (h *CookieHelper) SetAccessToken(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(accessTokenCookie, token, int(h.maxAge.Seconds()), "/", "", h.secure, true)
}

// ClearAccessToken expires the token cookie.
func (h *CookieHelper) ClearAccessToken(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(accessTokenCookie, "", -1, "/", "", h.secure, true)
}

// ReadAccessToken returns the token from the cookie, or "" when absent.
func (h *CookieHelper) ReadAccessToken(c *gin.Context) string {
	token, err := c.Cookie(accessTokenCookie)
	if err != nil {
		return ""
	}
	return token
}
