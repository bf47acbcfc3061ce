package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/platform/internal/domain/task"
	"github.com/taskboard/platform/internal/rpc"
)

// handleCreateTask creates a task under an existing project. The task
// service checks the project before writing anything.
func (g *Gateway) handleCreateTask(c *gin.Context) {
	var params rpc.CreateTaskParams
	if err := c.ShouldBindJSON(&params); err != nil {
		g.failValidation(c, "malformed request body")
		return
	}

	created, err := g.tasks.CreateTask(c.Request.Context(), params)
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// handleListProjectTasks lists a project's tasks. An unknown project reads
// as an empty list.
func (g *Gateway) handleListProjectTasks(c *gin.Context) {
	tasks, err := g.tasks.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (g *Gateway) handleUpdateTaskStatus(c *gin.Context) {
	var body struct {
		Status task.Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		g.failValidation(c, "malformed request body")
		return
	}

	updated, err := g.tasks.UpdateTaskStatus(c.Request.Context(), rpc.UpdateTaskStatusParams{
		TaskID: c.Param("id"),
		Status: body.Status,
	})
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
