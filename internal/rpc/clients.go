package rpc

import (
	"context"

	"github.com/taskboard/platform/internal/domain/project"
	"github.com/taskboard/platform/internal/domain/task"
	"github.com/taskboard/platform/internal/domain/user"
)

// authClient implements AuthClient over the command transport.
type authClient struct {
	c *Client
}

// NewAuthClient creates the typed auth service client.
func NewAuthClient(cfg ClientConfig) AuthClient {
	if cfg.Target == "" {
		cfg.Target = "auth"
	}
	return &authClient{c: NewClient(cfg)}
}

func (a *authClient) Register(ctx context.Context, params RegisterParams) (RegisterResult, error) {
	var out RegisterResult
	err := a.c.Call(ctx, CmdRegister, params, &out)
	return out, err
}

func (a *authClient) Login(ctx context.Context, params LoginParams) (LoginResult, error) {
	var out LoginResult
	err := a.c.Call(ctx, CmdLogin, params, &out)
	return out, err
}

func (a *authClient) VerifyToken(ctx context.Context, token string) (TokenClaims, error) {
	var out TokenClaims
	err := a.c.Call(ctx, CmdVerifyToken, VerifyTokenParams{Token: token}, &out)
	return out, err
}

func (a *authClient) ValidateUser(ctx context.Context, userID string) (user.Public, error) {
	var out user.Public
	err := a.c.Call(ctx, CmdValidateUser, UserIDParams{UserID: userID}, &out)
	return out, err
}

func (a *authClient) GetProfile(ctx context.Context, userID string) (user.Public, error) {
	var out user.Public
	err := a.c.Call(ctx, CmdGetProfile, UserIDParams{UserID: userID}, &out)
	return out, err
}

func (a *authClient) GetAllUsers(ctx context.Context) ([]user.Public, error) {
	var out []user.Public
	err := a.c.Call(ctx, CmdGetAllUsers, struct{}{}, &out)
	return out, err
}

// projectClient implements ProjectClient over the command transport.
type projectClient struct {
	c *Client
}

// NewProjectClient creates the typed project service client.
func NewProjectClient(cfg ClientConfig) ProjectClient {
	if cfg.Target == "" {
		cfg.Target = "project"
	}
	return &projectClient{c: NewClient(cfg)}
}

func (p *projectClient) CreateProject(ctx context.Context, params CreateProjectParams) (project.Project, error) {
	var out project.Project
	err := p.c.Call(ctx, CmdCreateProject, params, &out)
	return out, err
}

func (p *projectClient) ListCreatedBy(ctx context.Context, userID string) ([]project.Project, error) {
	var out []project.Project
	err := p.c.Call(ctx, CmdGetAllProjects, UserIDParams{UserID: userID}, &out)
	return out, err
}

func (p *projectClient) ListAssignedTo(ctx context.Context, userID string) ([]project.Project, error) {
	var out []project.Project
	err := p.c.Call(ctx, CmdGetMyProjects, UserIDParams{UserID: userID}, &out)
	return out, err
}

func (p *projectClient) GetProjectByID(ctx context.Context, id string) (*project.Project, error) {
	var out *project.Project
	err := p.c.Call(ctx, CmdGetProjectByID, ProjectIDParams{ProjectID: id}, &out)
	return out, err
}

func (p *projectClient) UpdateProject(ctx context.Context, params UpdateProjectParams) (project.Project, error) {
	var out project.Project
	err := p.c.Call(ctx, CmdUpdateProject, params, &out)
	return out, err
}

// taskClient implements TaskClient over the command transport.
type taskClient struct {
	c *Client
}

// NewTaskClient creates the typed task service client.
func NewTaskClient(cfg ClientConfig) TaskClient {
	if cfg.Target == "" {
		cfg.Target = "task"
	}
	return &taskClient{c: NewClient(cfg)}
}

func (t *taskClient) CreateTask(ctx context.Context, params CreateTaskParams) (task.Task, error) {
	var out task.Task
	err := t.c.Call(ctx, CmdCreateTask, params, &out)
	return out, err
}

func (t *taskClient) ListByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	var out []task.Task
	err := t.c.Call(ctx, CmdGetTasksByProject, ProjectIDParams{ProjectID: projectID}, &out)
	return out, err
}

func (t *taskClient) UpdateTaskStatus(ctx context.Context, params UpdateTaskStatusParams) (task.Task, error) {
	var out task.Task
	err := t.c.Call(ctx, CmdUpdateTaskStatus, params, &out)
	return out, err
}
