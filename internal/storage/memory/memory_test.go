package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/taskboard/platform/internal/domain/project"
	"github.com/taskboard/platform/internal/domain/user"
	"github.com/taskboard/platform/internal/storage"
)

func TestUserLookupIsCaseInsensitive(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, user.User{Name: "A", Email: "Mixed@Example.com", Role: user.RoleUser}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	u, err := s.GetUserByEmail(ctx, "mixed@example.COM")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if u.Email != "Mixed@Example.com" {
		t.Errorf("stored email changed: %q", u.Email)
	}
}

func TestGetProjectReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateProject(ctx, project.Project{
		Title:         "P",
		CreatedBy:     "u1",
		AssignedUsers: []string{"u1"},
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	got, err := s.GetProject(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	got.AssignedUsers[0] = "mutated"

	again, err := s.GetProject(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if again.AssignedUsers[0] != "u1" {
		t.Error("caller mutation leaked into the store")
	}
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateProject(ctx, project.Project{Title: "P", CreatedBy: "u1", AssignedUsers: []string{"u1"}})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	created.Title = "Q"
	updated, err := s.UpdateProject(ctx, created)
	if err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("CreatedAt changed on update")
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Errorf("UpdatedAt %v precedes CreatedAt %v", updated.UpdatedAt, updated.CreatedAt)
	}
}

func TestMissingRecords(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.GetUser(ctx, "x"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetUser: expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetProject(ctx, "x"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetProject: expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetTask(ctx, "x"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetTask: expected ErrNotFound, got %v", err)
	}
	if _, err := s.UpdateProject(ctx, project.Project{ID: "x"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateProject: expected ErrNotFound, got %v", err)
	}
}
