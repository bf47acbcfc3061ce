// Package storage defines the persistence interfaces for the backend
// services. Each service owns exactly one of these; implementations live in
// the memory and postgres subpackages.
package storage

import (
	"context"
	"errors"

	"github.com/taskboard/platform/internal/domain/project"
	"github.com/taskboard/platform/internal/domain/task"
	"github.com/taskboard/platform/internal/domain/user"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("storage: not found")

// UserStore persists identity records. Owned by the auth service.
type UserStore interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	GetUser(ctx context.Context, id string) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	ListUsersByRole(ctx context.Context, role user.Role) ([]user.User, error)
}

// ProjectStore persists project documents. Owned by the project service.
type ProjectStore interface {
	CreateProject(ctx context.Context, p project.Project) (project.Project, error)
	GetProject(ctx context.Context, id string) (project.Project, error)
	ListProjectsCreatedBy(ctx context.Context, userID string) ([]project.Project, error)
	ListProjectsAssignedTo(ctx context.Context, userID string) ([]project.Project, error)
	UpdateProject(ctx context.Context, p project.Project) (project.Project, error)
}

// TaskStore persists task documents. Owned by the task service.
type TaskStore interface {
	CreateTask(ctx context.Context, t task.Task) (task.Task, error)
	GetTask(ctx context.Context, id string) (task.Task, error)
	ListTasksByProject(ctx context.Context, projectID string) ([]task.Task, error)
	UpdateTask(ctx context.Context, t task.Task) (task.Task, error)
}
