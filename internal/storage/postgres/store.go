// Package postgres implements the storage interfaces backed by PostgreSQL.
// Documents keep their list-valued fields as JSONB; consistency relies on
// per-row atomicity only, matching the platform's concurrency model.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard/platform/internal/domain/project"
	"github.com/taskboard/platform/internal/domain/task"
	"github.com/taskboard/platform/internal/domain/user"
	"github.com/taskboard/platform/internal/storage"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sql.DB
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.ProjectStore = (*Store)(nil)
var _ storage.TaskStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// --- UserStore --------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (user.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users WHERE id = $1
	`, id))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users WHERE lower(email) = lower($1)
	`, email))
}

func (s *Store) ListUsersByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users WHERE role = $1 ORDER BY created_at
	`, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		var r string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &r, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.Role = user.Role(r)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) scanUser(row *sql.Row) (user.User, error) {
	var u user.User
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, storage.ErrNotFound
	}
	if err != nil {
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}

// --- ProjectStore -----------------------------------------------------------

func (s *Store) CreateProject(ctx context.Context, p project.Project) (project.Project, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	assignedJSON, err := json.Marshal(p.AssignedUsers)
	if err != nil {
		return project.Project{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (id, title, description, created_by, assigned_users, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.Title, p.Description, p.CreatedBy, assignedJSON, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return project.Project{}, err
	}
	return p, nil
}

func (s *Store) GetProject(ctx context.Context, id string) (project.Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, created_by, assigned_users, created_at, updated_at
		FROM projects WHERE id = $1
	`, id)

	p, err := scanProject(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return project.Project{}, storage.ErrNotFound
	}
	return p, err
}

func (s *Store) ListProjectsCreatedBy(ctx context.Context, userID string) ([]project.Project, error) {
	return s.listProjects(ctx, `
		SELECT id, title, description, created_by, assigned_users, created_at, updated_at
		FROM projects WHERE created_by = $1 ORDER BY created_at
	`, userID)
}

func (s *Store) ListProjectsAssignedTo(ctx context.Context, userID string) ([]project.Project, error) {
	return s.listProjects(ctx, `
		SELECT id, title, description, created_by, assigned_users, created_at, updated_at
		FROM projects WHERE assigned_users @> to_jsonb(ARRAY[$1]::text[]) ORDER BY created_at
	`, userID)
}

func (s *Store) UpdateProject(ctx context.Context, p project.Project) (project.Project, error) {
	existing, err := s.GetProject(ctx, p.ID)
	if err != nil {
		return project.Project{}, err
	}

	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()

	assignedJSON, err := json.Marshal(p.AssignedUsers)
	if err != nil {
		return project.Project{}, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE projects
		SET title = $2, description = $3, assigned_users = $4, updated_at = $5
		WHERE id = $1
	`, p.ID, p.Title, p.Description, assignedJSON, p.UpdatedAt)
	if err != nil {
		return project.Project{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return project.Project{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *Store) listProjects(ctx context.Context, query string, args ...interface{}) ([]project.Project, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]project.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func scanProject(scan func(...interface{}) error) (project.Project, error) {
	var p project.Project
	var assignedJSON []byte
	if err := scan(&p.ID, &p.Title, &p.Description, &p.CreatedBy, &assignedJSON, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return project.Project{}, err
	}
	if len(assignedJSON) > 0 {
		if err := json.Unmarshal(assignedJSON, &p.AssignedUsers); err != nil {
			return project.Project{}, err
		}
	}
	if p.AssignedUsers == nil {
		p.AssignedUsers = []string{}
	}
	return p, nil
}

// --- TaskStore --------------------------------------------------------------

func (s *Store) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	assignedTo := sql.NullString{String: t.AssignedTo, Valid: t.AssignedTo != ""}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, status, due_date, project_id, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, t.ID, t.Title, t.Description, string(t.Status), t.DueDate, t.ProjectID, assignedTo, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func (s *Store) GetTask(ctx context.Context, id string) (task.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, status, due_date, project_id, assigned_to, created_at, updated_at
		FROM tasks WHERE id = $1
	`, id)

	t, err := scanTask(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, storage.ErrNotFound
	}
	return t, err
}

func (s *Store) ListTasksByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, status, due_date, project_id, assigned_to, created_at, updated_at
		FROM tasks WHERE project_id = $1 ORDER BY created_at
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(ctx context.Context, t task.Task) (task.Task, error) {
	existing, err := s.GetTask(ctx, t.ID)
	if err != nil {
		return task.Task{}, err
	}

	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now().UTC()

	assignedTo := sql.NullString{String: t.AssignedTo, Valid: t.AssignedTo != ""}
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, due_date = $5, assigned_to = $6, updated_at = $7
		WHERE id = $1
	`, t.ID, t.Title, t.Description, string(t.Status), t.DueDate, assignedTo, t.UpdatedAt)
	if err != nil {
		return task.Task{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return task.Task{}, storage.ErrNotFound
	}
	return t, nil
}

func scanTask(scan func(...interface{}) error) (task.Task, error) {
	var t task.Task
	var status string
	var assignedTo sql.NullString
	if err := scan(&t.ID, &t.Title, &t.Description, &status, &t.DueDate, &t.ProjectID, &assignedTo, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return task.Task{}, err
	}
	t.Status = task.Status(status)
	t.AssignedTo = assignedTo.String
	return t, nil
}
