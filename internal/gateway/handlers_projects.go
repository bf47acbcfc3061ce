package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/platform/internal/domain/user"
	"github.com/taskboard/platform/internal/errors"
	"github.com/taskboard/platform/internal/rpc"
)

// handleCreateProject creates a project owned by the caller. The request
// body nests the project fields under "dto"; the creator identity always
// comes from the resolved session, never from the body.
func (g *Gateway) handleCreateProject(c *gin.Context) {
	var body struct {
		DTO rpc.CreateProjectDTO `json:"dto"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		g.failValidation(c, "malformed request body")
		return
	}

	created, err := g.projects.CreateProject(c.Request.Context(), rpc.CreateProjectParams{
		DTO:    body.DTO,
		UserID: currentUser(c).ID,
	})
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// handleListProjects is role-dispatched: admins see the projects they
// created, everyone else the projects they are assigned to. Both views are
// self-scoped; no role sees another user's projects here.
func (g *Gateway) handleListProjects(c *gin.Context) {
	u := currentUser(c)

	if u.Role == user.RoleAdmin {
		projects, err := g.projects.ListCreatedBy(c.Request.Context(), u.ID)
		if err != nil {
			g.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, projects)
		return
	}

	projects, err := g.projects.ListAssignedTo(c.Request.Context(), u.ID)
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// handleMyProjects lists the caller's memberships regardless of role.
func (g *Gateway) handleMyProjects(c *gin.Context) {
	projects, err := g.projects.ListAssignedTo(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (g *Gateway) handleGetProject(c *gin.Context) {
	p, err := g.projects.GetProjectByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}
	if p == nil {
		g.fail(c, errors.NotFound("Project not found"))
		return
	}
	c.JSON(http.StatusOK, p)
}

// handleUpdateProject applies a partial update. Absent fields stay as they
// are; an assignedUsers replacement that drops the creator gets the creator
// put back by the project service.
func (g *Gateway) handleUpdateProject(c *gin.Context) {
	var dto rpc.UpdateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		g.failValidation(c, "malformed request body")
		return
	}

	updated, err := g.projects.UpdateProject(c.Request.Context(), rpc.UpdateProjectParams{
		ID:     c.Param("id"),
		DTO:    dto,
		UserID: currentUser(c).ID,
	})
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
