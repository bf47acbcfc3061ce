// Package rpc implements the internal command protocol between the gateway
// and the backend services.
//
// Each service exposes a closed set of commands as POST /rpc/<command>
// routes with typed JSON payloads. Failures cross the wire as a
// {status, message} fault carried on the matching HTTP status code, so the
// gateway sees one uniform fault contract regardless of whether a failure
// was a business rule or an internal error.
package rpc

import (
	"context"
	"time"

	"github.com/taskboard/platform/internal/domain/project"
	"github.com/taskboard/platform/internal/domain/task"
	"github.com/taskboard/platform/internal/domain/user"
	"github.com/taskboard/platform/internal/errors"
)

// Command names a request type carried over the internal RPC channel.
type Command string

// Auth service commands.
const (
	CmdRegister     Command = "register"
	CmdLogin        Command = "login"
	CmdVerifyToken  Command = "verify_token"
	CmdValidateUser Command = "validate_user"
	CmdGetProfile   Command = "get_profile"
	CmdGetAllUsers  Command = "get_all_users"
)

// Project service commands.
const (
	CmdCreateProject  Command = "create_project"
	CmdGetAllProjects Command = "get_all_projects"
	CmdGetMyProjects  Command = "get_my_projects"
	CmdGetProjectByID Command = "get_project_by_id"
	CmdUpdateProject  Command = "update_project"
)

// Task service commands.
const (
	CmdCreateTask        Command = "create_task"
	CmdGetTasksByProject Command = "get_tasks_by_project"
	CmdUpdateTaskStatus  Command = "update_task_status"
)

// Fault is the wire shape of any failure crossing the RPC boundary.
// Validation faults carry their field-by-field breakdown so the gateway can
// surface it to the client unchanged.
type Fault struct {
	Status  int                 `json:"status"`
	Message string              `json:"message"`
	Errors  []errors.FieldError `json:"errors,omitempty"`
}

// Header names shared with the gateway.
const (
	TraceIDHeader = "X-Trace-ID"
	UserIDHeader  = "X-User-ID"
)

// --- Auth payloads ----------------------------------------------------------

// RegisterParams carries a registration request.
type RegisterParams struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     user.Role `json:"role"`
}

// RegisterResult is the successful registration response.
type RegisterResult struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// LoginParams carries a credential check request.
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSummary is the public-safe user shape returned by login.
type UserSummary struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Role user.Role `json:"role"`
}

// LoginResult carries the issued token and user summary. The gateway strips
// AccessToken from the client-facing body and moves it into the cookie.
type LoginResult struct {
	AccessToken string      `json:"accessToken"`
	User        UserSummary `json:"user"`
}

// VerifyTokenParams carries a raw token for verification.
type VerifyTokenParams struct {
	Token string `json:"token"`
}

// TokenClaims is the decoded token payload.
type TokenClaims struct {
	UserID string    `json:"userId"`
	Email  string    `json:"email"`
	Role   user.Role `json:"role"`
}

// UserIDParams addresses a single user.
type UserIDParams struct {
	UserID string `json:"userId"`
}

// --- Project payloads -------------------------------------------------------

// CreateProjectDTO is the caller-supplied part of a project creation.
type CreateProjectDTO struct {
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	AssignedUsers []string `json:"assignedUsers,omitempty"`
}

// CreateProjectParams pairs the DTO with the resolved creator identity.
// UserID always comes from the gateway's identity resolution, never from
// the client body.
type CreateProjectParams struct {
	DTO    CreateProjectDTO `json:"dto"`
	UserID string           `json:"userId"`
}

// UpdateProjectDTO is a partial update; nil fields are left untouched.
type UpdateProjectDTO struct {
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	AssignedUsers *[]string `json:"assignedUsers,omitempty"`
}

// UpdateProjectParams addresses a project update.
type UpdateProjectParams struct {
	ID     string           `json:"id"`
	DTO    UpdateProjectDTO `json:"dto"`
	UserID string           `json:"userId,omitempty"`
}

// ProjectIDParams addresses a single project.
type ProjectIDParams struct {
	ProjectID string `json:"projectId"`
}

// --- Task payloads ----------------------------------------------------------

// CreateTaskParams carries a task creation request.
type CreateTaskParams struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	ProjectID   string    `json:"projectId"`
	AssignedTo  string    `json:"assignedTo,omitempty"`
}

// UpdateTaskStatusParams addresses a task status replacement.
type UpdateTaskStatusParams struct {
	TaskID string      `json:"taskId"`
	Status task.Status `json:"status"`
}

// --- Client interfaces ------------------------------------------------------

// AuthClient is the typed client for the auth service commands.
type AuthClient interface {
	Register(ctx context.Context, params RegisterParams) (RegisterResult, error)
	Login(ctx context.Context, params LoginParams) (LoginResult, error)
	VerifyToken(ctx context.Context, token string) (TokenClaims, error)
	ValidateUser(ctx context.Context, userID string) (user.Public, error)
	GetProfile(ctx context.Context, userID string) (user.Public, error)
	GetAllUsers(ctx context.Context) ([]user.Public, error)
}

// ProjectClient is the typed client for the project service commands.
type ProjectClient interface {
	CreateProject(ctx context.Context, params CreateProjectParams) (project.Project, error)
	ListCreatedBy(ctx context.Context, userID string) ([]project.Project, error)
	ListAssignedTo(ctx context.Context, userID string) ([]project.Project, error)
	// GetProjectByID returns (nil, nil) when the project does not exist.
	GetProjectByID(ctx context.Context, id string) (*project.Project, error)
	UpdateProject(ctx context.Context, params UpdateProjectParams) (project.Project, error)
}

// TaskClient is the typed client for the task service commands.
type TaskClient interface {
	CreateTask(ctx context.Context, params CreateTaskParams) (task.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]task.Task, error)
	UpdateTaskStatus(ctx context.Context, params UpdateTaskStatusParams) (task.Task, error)
}
