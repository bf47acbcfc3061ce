package task

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/taskboard/platform/internal/domain/project"
	"github.com/taskboard/platform/internal/domain/task"
	"github.com/taskboard/platform/internal/errors"
	"github.com/taskboard/platform/internal/rpc"
	"github.com/taskboard/platform/internal/storage/memory"
)

// fakeProjectClient serves a fixed set of projects by ID.
type fakeProjectClient struct {
	projects map[string]project.Project
	calls    int
}

func (f *fakeProjectClient) GetProjectByID(ctx context.Context, id string) (*project.Project, error) {
	f.calls++
	if p, ok := f.projects[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeProjectClient) CreateProject(ctx context.Context, params rpc.CreateProjectParams) (project.Project, error) {
	panic("not used")
}

func (f *fakeProjectClient) ListCreatedBy(ctx context.Context, userID string) ([]project.Project, error) {
	panic("not used")
}

func (f *fakeProjectClient) ListAssignedTo(ctx context.Context, userID string) ([]project.Project, error) {
	panic("not used")
}

func (f *fakeProjectClient) UpdateProject(ctx context.Context, params rpc.UpdateProjectParams) (project.Project, error) {
	panic("not used")
}

func newTestService(t *testing.T) (*Service, *memory.Store, *fakeProjectClient) {
	t.Helper()
	store := memory.New()
	projects := &fakeProjectClient{projects: map[string]project.Project{
		"proj-1": {ID: "proj-1", Title: "Existing", CreatedBy: "user-1"},
	}}
	return New(store, projects, nil), store, projects
}

func TestCreateTask(t *testing.T) {
	svc, _, projects := newTestService(t)

	due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	created, err := svc.Create(context.Background(), rpc.CreateTaskParams{
		Title:      "Write docs",
		DueDate:    due,
		ProjectID:  "proj-1",
		AssignedTo: "user-2",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a task id")
	}
	if created.Status != task.StatusTodo {
		t.Errorf("Status = %q, want TO_DO", created.Status)
	}
	if !created.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v", created.DueDate, due)
	}
	if projects.calls != 1 {
		t.Errorf("project existence checked %d times, want 1", projects.calls)
	}
}

func TestCreateTaskMissingProject(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.Create(context.Background(), rpc.CreateTaskParams{
		Title:     "Orphan",
		DueDate:   time.Now().Add(time.Hour),
		ProjectID: "proj-missing",
	})
	se := errors.GetServiceError(err)
	if se == nil || se.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if se.Message != "Project not found" {
		t.Errorf("unexpected message %q", se.Message)
	}

	// Nothing may be written on a failed check.
	tasks, err := store.ListTasksByProject(context.Background(), "proj-missing")
	if err != nil {
		t.Fatalf("ListTasksByProject: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("task persisted despite failed project check: %v", tasks)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	svc, _, projects := newTestService(t)

	_, err := svc.Create(context.Background(), rpc.CreateTaskParams{})
	se := errors.GetServiceError(err)
	if se == nil || se.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(se.Fields) != 3 {
		t.Errorf("expected 3 field errors, got %v", se.Fields)
	}
	if projects.calls != 0 {
		t.Errorf("project checked before validation passed")
	}
}

func TestListByProject(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, title := range []string{"a", "b"} {
		if _, err := svc.Create(ctx, rpc.CreateTaskParams{Title: title, DueDate: time.Now().Add(time.Hour), ProjectID: "proj-1"}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	tasks, err := svc.ListByProject(ctx, rpc.ProjectIDParams{ProjectID: "proj-1"})
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}

	// Unknown project reads as empty, not as an error.
	none, err := svc.ListByProject(ctx, rpc.ProjectIDParams{ProjectID: "proj-unknown"})
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected empty list, got %v", none)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, rpc.CreateTaskParams{Title: "t", DueDate: time.Now().Add(time.Hour), ProjectID: "proj-1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Any status may follow any other, including jumping straight to DONE
	// and moving backwards.
	for _, status := range []task.Status{task.StatusDone, task.StatusTodo, task.StatusInProgress} {
		updated, err := svc.UpdateStatus(ctx, rpc.UpdateTaskStatusParams{TaskID: created.ID, Status: status})
		if err != nil {
			t.Fatalf("UpdateStatus(%s): %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("Status = %q, want %q", updated.Status, status)
		}
	}

	// Re-applying the current status succeeds.
	updated, err := svc.UpdateStatus(ctx, rpc.UpdateTaskStatusParams{TaskID: created.ID, Status: task.StatusInProgress})
	if err != nil {
		t.Fatalf("idempotent UpdateStatus: %v", err)
	}
	if updated.Status != task.StatusInProgress {
		t.Errorf("Status = %q, want IN_PROGRESS", updated.Status)
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), rpc.CreateTaskParams{Title: "t", DueDate: time.Now().Add(time.Hour), ProjectID: "proj-1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), rpc.UpdateTaskStatusParams{
		TaskID: created.ID,
		Status: task.Status("BLOCKED"),
	})
	se := errors.GetServiceError(err)
	if se == nil || se.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusMissingTask(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateStatus(context.Background(), rpc.UpdateTaskStatusParams{
		TaskID: "missing",
		Status: task.StatusDone,
	})
	se := errors.GetServiceError(err)
	if se == nil || se.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if se.Message != "Task not found" {
		t.Errorf("unexpected message %q", se.Message)
	}
}
