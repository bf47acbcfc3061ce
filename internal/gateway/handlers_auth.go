package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/platform/internal/domain/user"
	"github.com/taskboard/platform/internal/rpc"
)

// userView duplicates the id under "_id" because the original frontend
// reads the document-store key. New clients should use "id".
type userView struct {
	ID       string    `json:"id"`
	LegacyID string    `json:"_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     user.Role `json:"role"`
}

func viewOf(u user.Public) userView {
	return userView{ID: u.ID, LegacyID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (g *Gateway) handleRegister(c *gin.Context) {
	var params rpc.RegisterParams
	if err := c.ShouldBindJSON(&params); err != nil {
		g.failValidation(c, "malformed request body")
		return
	}

	result, err := g.auth.Register(c.Request.Context(), params)
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// handleLogin verifies credentials, moves the issued token into the
// session cookie and returns a body without it. The token reaches the
// browser only as an HttpOnly cookie.
func (g *Gateway) handleLogin(c *gin.Context) {
	var params rpc.LoginParams
	if err := c.ShouldBindJSON(&params); err != nil {
		g.failValidation(c, "malformed request body")
		return
	}

	result, err := g.auth.Login(c.Request.Context(), params)
	if err != nil {
		g.fail(c, err)
		return
	}

	g.cookies.SetAccessToken(c, result.AccessToken)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    result.User,
	})
}

// handleLogout clears the session cookie. There is no server-side token
// state to revoke, so this succeeds for anonymous callers too.
func (g *Gateway) handleLogout(c *gin.Context) {
	g.cookies.ClearAccessToken(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (g *Gateway) handleMe(c *gin.Context) {
	u := currentUser(c)

	profile, err := g.auth.GetProfile(c.Request.Context(), u.ID)
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(profile))
}

// handleListUsers returns the assignable users. Admin accounts are never
// in the listing.
func (g *Gateway) handleListUsers(c *gin.Context) {
	users, err := g.auth.GetAllUsers(c.Request.Context())
	if err != nil {
		g.fail(c, err)
		return
	}

	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, viewOf(u))
	}
	c.JSON(http.StatusOK, out)
}
