// Package project implements the project lifecycle service.
//
// The one rule this service defends: a project's creator is always a member
// of its assigned users. Creation synthesizes the membership; every update
// that touches the assignment list repairs it.
package project

import (
	"context"
	stderrors "errors"

	"github.com/taskboard/platform/internal/domain/project"
	"github.com/taskboard/platform/internal/errors"
	"github.com/taskboard/platform/internal/logging"
	"github.com/taskboard/platform/internal/rpc"
	"github.com/taskboard/platform/internal/storage"
)

// Service owns project documents and the membership invariant.
type Service struct {
	store storage.ProjectStore
	log   *logging.Logger
}

// New constructs the project service.
func New(store storage.ProjectStore, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("project")
	}
	return &Service{store: store, log: log}
}

// Create persists a new project owned by params.UserID. The creator is
// always inserted into the assigned users, whatever the caller supplied.
// Assigned user IDs are trusted as-is; there is no existence check.
func (s *Service) Create(ctx context.Context, params rpc.CreateProjectParams) (project.Project, error) {
	if params.UserID == "" {
		return project.Project{}, errors.Validation("invalid project request", []errors.FieldError{
			{Field: "userId", Message: "creator id is required"},
		})
	}
	if params.DTO.Title == "" {
		return project.Project{}, errors.Validation("invalid project request", []errors.FieldError{
			{Field: "title", Message: "title is required"},
		})
	}

	created, err := s.store.CreateProject(ctx, project.Project{
		Title:         params.DTO.Title,
		Description:   params.DTO.Description,
		CreatedBy:     params.UserID,
		AssignedUsers: withCreator(params.UserID, params.DTO.AssignedUsers),
	})
	if err != nil {
		return project.Project{}, errors.Internal("Failed to create project", err)
	}

	s.log.WithContext(ctx).WithField("project_id", created.ID).Info("project created")
	return created, nil
}

// ListCreatedBy returns the projects created by userID. This backs the
// admin view, which is self-scoped: there is no global listing.
func (s *Service) ListCreatedBy(ctx context.Context, params rpc.UserIDParams) ([]project.Project, error) {
	projects, err := s.store.ListProjectsCreatedBy(ctx, params.UserID)
	if err != nil {
		return nil, errors.Internal("Failed to fetch projects", err)
	}
	return projects, nil
}

// ListAssignedTo returns the projects whose assigned users include userID.
func (s *Service) ListAssignedTo(ctx context.Context, params rpc.UserIDParams) ([]project.Project, error) {
	projects, err := s.store.ListProjectsAssignedTo(ctx, params.UserID)
	if err != nil {
		return nil, errors.Internal("Failed to fetch projects", err)
	}
	return projects, nil
}

// GetByID returns the project or nil when it does not exist. The task
// service relies on the nil contract for its existence check.
func (s *Service) GetByID(ctx context.Context, params rpc.ProjectIDParams) (*project.Project, error) {
	p, err := s.store.GetProject(ctx, params.ProjectID)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Internal("Failed to fetch project", err)
	}
	return &p, nil
}

// Update applies a partial update. When the assignment list is replaced,
// the stored creator is re-inserted if the caller's list omits it; the
// membership invariant is repaired on every write, not just checked at
// creation. Read-then-write is best effort: concurrent updates to the same
// project are last-writer-wins at the store.
func (s *Service) Update(ctx context.Context, params rpc.UpdateProjectParams) (project.Project, error) {
	existing, err := s.store.GetProject(ctx, params.ID)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return project.Project{}, errors.NotFound("Project not found")
		}
		return project.Project{}, errors.Internal("Failed to fetch project", err)
	}

	if params.DTO.Title != nil {
		existing.Title = *params.DTO.Title
	}
	if params.DTO.Description != nil {
		existing.Description = *params.DTO.Description
	}
	if params.DTO.AssignedUsers != nil {
		existing.AssignedUsers = withCreator(existing.CreatedBy, *params.DTO.AssignedUsers)
	}

	updated, err := s.store.UpdateProject(ctx, existing)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return project.Project{}, errors.NotFound("Project not found")
		}
		return project.Project{}, errors.Internal("Failed to update project", err)
	}

	s.log.WithContext(ctx).WithField("project_id", updated.ID).Info("project updated")
	return updated, nil
}

// withCreator returns assigned with creator guaranteed present (first) and
// duplicates removed, preserving the caller's order otherwise.
func withCreator(creator string, assigned []string) []string {
	out := make([]string, 0, len(assigned)+1)
	seen := map[string]struct{}{creator: {}}
	out = append(out, creator)
	for _, id := range assigned {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
