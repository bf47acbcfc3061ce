// Package task implements the task tracking service.
package task

import (
	"context"
	stderrors "errors"

	"github.com/taskboard/platform/internal/domain/task"
	"github.com/taskboard/platform/internal/errors"
	"github.com/taskboard/platform/internal/logging"
	"github.com/taskboard/platform/internal/rpc"
	"github.com/taskboard/platform/internal/storage"
)

// Service owns task documents. It depends on the project service for
// referential checks at creation; after that point tasks live on even if
// the parent project disappears.
type Service struct {
	store    storage.TaskStore
	projects rpc.ProjectClient
	log      *logging.Logger
}

// New constructs the task service.
func New(store storage.TaskStore, projects rpc.ProjectClient, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("task")
	}
	return &Service{store: store, projects: projects, log: log}
}

// Create persists a new task after confirming the parent project exists.
// Nothing is written when the check fails. The assignee is trusted as-is;
// assignment to users outside the project membership is allowed.
func (s *Service) Create(ctx context.Context, params rpc.CreateTaskParams) (task.Task, error) {
	if fields := validateCreate(params); len(fields) > 0 {
		return task.Task{}, errors.Validation("invalid task request", fields)
	}

	p, err := s.projects.GetProjectByID(ctx, params.ProjectID)
	if err != nil {
		return task.Task{}, err
	}
	if p == nil {
		return task.Task{}, errors.NotFound("Project not found")
	}

	created, err := s.store.CreateTask(ctx, task.Task{
		Title:       params.Title,
		Description: params.Description,
		Status:      task.StatusTodo,
		DueDate:     params.DueDate,
		ProjectID:   params.ProjectID,
		AssignedTo:  params.AssignedTo,
	})
	if err != nil {
		return task.Task{}, errors.Internal("Failed to create task", err)
	}

	s.log.WithContext(ctx).WithField("task_id", created.ID).Info("task created")
	return created, nil
}

// ListByProject returns the tasks of a project. The project's existence is
// not checked here: an unknown ID yields an empty list, which reads the
// same as a project with no tasks.
func (s *Service) ListByProject(ctx context.Context, params rpc.ProjectIDParams) ([]task.Task, error) {
	tasks, err := s.store.ListTasksByProject(ctx, params.ProjectID)
	if err != nil {
		return nil, errors.Internal("Failed to fetch tasks", err)
	}
	return tasks, nil
}

// UpdateStatus replaces a task's status. Any valid status may follow any
// other; re-applying the current status is an idempotent no-op that still
// succeeds.
func (s *Service) UpdateStatus(ctx context.Context, params rpc.UpdateTaskStatusParams) (task.Task, error) {
	if !params.Status.Valid() {
		return task.Task{}, errors.Validation("invalid task request", []errors.FieldError{
			{Field: "status", Message: "status must be TO_DO, IN_PROGRESS or DONE"},
		})
	}

	existing, err := s.store.GetTask(ctx, params.TaskID)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return task.Task{}, errors.NotFound("Task not found")
		}
		return task.Task{}, errors.Internal("Failed to fetch task", err)
	}

	existing.Status = params.Status
	updated, err := s.store.UpdateTask(ctx, existing)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return task.Task{}, errors.NotFound("Task not found")
		}
		return task.Task{}, errors.Internal("Failed to update task", err)
	}

	s.log.WithContext(ctx).WithFields(map[string]interface{}{
		"task_id": updated.ID,
		"status":  updated.Status,
	}).Info("task status updated")
	return updated, nil
}

func validateCreate(params rpc.CreateTaskParams) []errors.FieldError {
	var fields []errors.FieldError
	if params.Title == "" {
		fields = append(fields, errors.FieldError{Field: "title", Message: "title is required"})
	}
	if params.DueDate.IsZero() {
		fields = append(fields, errors.FieldError{Field: "dueDate", Message: "dueDate is required"})
	}
	if params.ProjectID == "" {
		fields = append(fields, errors.FieldError{Field: "projectId", Message: "projectId is required"})
	}
	return fields
}
