package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mohdrazakhan/oneroom/internal/models"
	"github.com/mohdrazakhan/oneroom/internal/storage"
)

const (
	taskColumns = "id, room_id, title, description, category, priority, status, assigned_to, " +
		"due_date, recurring, frequency, auto_assign, created_at, completed_at"

	// Undated tasks sort last, then the most urgent first.
	taskOrder = " ORDER BY due_date IS NULL, due_date," +
		" CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, seq"
)

// taskRow mirrors the tasks table so a scanned row can be turned into a
// models.Task in one place.
type taskRow struct {
	id, roomID, title, description string
	category, priority, status     string
	assignedTo                     string
	dueDate                        sql.NullString
	recurring                      bool
	frequency                      string
	autoAssign                     bool
	createdAt                      int64
	completedAt                    sql.NullInt64
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (models.Task, error) {
	var r taskRow
	if err := row.Scan(&r.id, &r.roomID, &r.title, &r.description, &r.category, &r.priority,
		&r.status, &r.assignedTo, &r.dueDate, &r.recurring, &r.frequency, &r.autoAssign,
		&r.createdAt, &r.completedAt); err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:          r.id,
		RoomID:      r.roomID,
		Title:       r.title,
		Description: r.description,
		Category:    models.TaskCategory(r.category),
		Priority:    models.Priority(r.priority),
		Status:      models.TaskStatus(r.status),
		AssignedTo:  r.assignedTo,
		Recurrence:  models.NoRecurrence{},
		CreatedAt:   time.Unix(0, r.createdAt).UTC(),
	}
	if r.dueDate.Valid {
		due, err := time.Parse(time.DateOnly, r.dueDate.String)
		if err != nil {
			return models.Task{}, fmt.Errorf("invalid due date %q: %w", r.dueDate.String, err)
		}
		task.DueDate = &due
	}
	if r.recurring {
		task.Recurrence = models.Every{Frequency: models.Frequency(r.frequency), AutoAssign: r.autoAssign}
	}
	if r.completedAt.Valid {
		completed := time.Unix(0, r.completedAt.Int64).UTC()
		task.CompletedAt = &completed
	}
	return task, nil
}

// taskArgs returns the column values of a task in taskColumns order.
func taskArgs(task *models.Task) []any {
	var due, completed any
	if task.DueDate != nil {
		due = task.DueDate.UTC().Format(time.DateOnly)
	}
	if task.CompletedAt != nil {
		completed = task.CompletedAt.UnixNano()
	}
	every, recurring := task.Recurring()
	return []any{
		task.ID, task.RoomID, task.Title, task.Description,
		string(task.Category), string(task.Priority), string(task.Status), task.AssignedTo,
		due, recurring, string(every.Frequency), every.AutoAssign,
		task.CreatedAt.UnixNano(), completed,
	}
}

func insertTask(ctx context.Context, ex execer, task *models.Task) error {
	// Generate IDs if not set
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	if task.Recurrence == nil {
		task.Recurrence = models.NoRecurrence{}
	}

	_, err := ex.ExecContext(ctx,
		"INSERT INTO tasks ("+taskColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		taskArgs(task)...,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// CreateTask persists a new task.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *models.Task) error {
	return insertTask(ctx, s.db, task)
}

// GetTask retrieves a task by ID.
func (s *SQLiteStore) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	task, err := scanTask(s.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ?", taskID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("task", taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// ListTasksByRoom retrieves a room's tasks, optionally filtered by status.
func (s *SQLiteStore) ListTasksByRoom(ctx context.Context, roomID string, status models.TaskStatus) ([]models.Task, error) {
	return s.listTasks(ctx, "room_id = ?", roomID, status)
}

// ListTasksByAssignee retrieves tasks assigned to a user across all rooms.
func (s *SQLiteStore) ListTasksByAssignee(ctx context.Context, userID string, status models.TaskStatus) ([]models.Task, error) {
	return s.listTasks(ctx, "assigned_to = ?", userID, status)
}

func (s *SQLiteStore) listTasks(ctx context.Context, where, arg string, status models.TaskStatus) ([]models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE " + where
	args := []any{arg}
	if status != "" {
		query += " AND status = ?"
		args = append(args, string(status))
	}
	return s.queryTasks(ctx, query+taskOrder, args...)
}

// RecentTasksByCategory retrieves the newest assigned tasks of a category.
func (s *SQLiteStore) RecentTasksByCategory(ctx context.Context, roomID string, category models.TaskCategory, limit int) ([]models.Task, error) {
	if limit <= 0 {
		return nil, nil
	}
	return s.queryTasks(ctx,
		"SELECT "+taskColumns+" FROM tasks"+
			" WHERE room_id = ? AND category = ? AND assigned_to != ''"+
			" ORDER BY created_at DESC, seq DESC LIMIT ?",
		roomID, string(category), limit,
	)
}

func (s *SQLiteStore) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask overwrites the mutable fields of a task that is not completed.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task *models.Task) error {
	var due, completed any
	if task.DueDate != nil {
		due = task.DueDate.UTC().Format(time.DateOnly)
	}
	if task.CompletedAt != nil {
		completed = task.CompletedAt.UnixNano()
	}
	every, recurring := task.Recurring()

	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, category = ?, priority = ?, status = ?, assigned_to = ?,
		    due_date = ?, recurring = ?, frequency = ?, auto_assign = ?, completed_at = ?
		WHERE id = ? AND status != 'completed'`,
		task.Title, task.Description, string(task.Category), string(task.Priority),
		string(task.Status), task.AssignedTo, due, recurring, string(every.Frequency),
		every.AutoAssign, completed, task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return missingOrCompleted(ctx, s.db, task.ID)
	}
	return nil
}

// CompleteTask marks a task completed and inserts its successor atomically.
func (s *SQLiteStore) CompleteTask(ctx context.Context, taskID string, completedAt time.Time, successor *models.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The status guard makes a second completion a no-op, so at most one
	// successor is ever spawned.
	res, err := tx.ExecContext(ctx,
		"UPDATE tasks SET status = 'completed', completed_at = ? WHERE id = ? AND status != 'completed'",
		completedAt.UnixNano(), taskID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return missingOrCompleted(ctx, tx, taskID)
	}

	if successor != nil {
		if err := insertTask(ctx, tx, successor); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// missingOrCompleted explains why a guarded update touched no rows.
func missingOrCompleted(ctx context.Context, q queryRower, taskID string) error {
	var status string
	err := q.QueryRowContext(ctx, "SELECT status FROM tasks WHERE id = ?", taskID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("task", taskID)
	}
	if err != nil {
		return fmt.Errorf("failed to get task status: %w", err)
	}
	return fmt.Errorf("task %s: %w", taskID, storage.ErrTaskAlreadyCompleted)
}

// SaveRotation writes the rotated assignment of each task in one transaction.
func (s *SQLiteStore) SaveRotation(ctx context.Context, tasks []models.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, task := range tasks {
		var completed any
		if task.CompletedAt != nil {
			completed = task.CompletedAt.UnixNano()
		}
		res, err := tx.ExecContext(ctx,
			"UPDATE tasks SET assigned_to = ?, status = ?, completed_at = ? WHERE id = ?",
			task.AssignedTo, string(task.Status), completed, task.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to save rotation: %w", err)
		}
		if err := requireAffected(res, "task", task.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteTask removes a task.
func (s *SQLiteStore) DeleteTask(ctx context.Context, taskID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireAffected(res, "task", taskID)
}
