//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_user_store.go -package=mocks . UserStore

// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mohdrazakhan/oneroom/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyMember is returned when adding a user to a room twice.
	ErrAlreadyMember = errors.New("already a member of this room")

	// ErrTaskAlreadyCompleted is returned when a task is completed a second
	// time. It guards against spawning two successors for one completion.
	ErrTaskAlreadyCompleted = errors.New("task already completed")
)

// Store defines the interface for OneRoom storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	RoomStore
	ExpenseStore
	TaskStore

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// RoomStore persists rooms and their membership.
type RoomStore interface {
	// CreateRoom persists a new room together with its initial members.
	// ID, InviteCode and CreatedAt are generated when empty.
	CreateRoom(ctx context.Context, room *models.Room) error

	// GetRoom retrieves a room with its members in join order.
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)

	GetRoomByInviteCode(ctx context.Context, code string) (*models.Room, error)

	// ListRoomsByMember returns every room userID belongs to.
	ListRoomsByMember(ctx context.Context, userID string) ([]*models.Room, error)

	// UpdateRoom updates name and description.
	UpdateRoom(ctx context.Context, room *models.Room) error

	// AddMember appends a member. Returns ErrAlreadyMember on duplicates.
	AddMember(ctx context.Context, roomID string, member models.Member) error

	// RemoveMember drops a member. When the last admin leaves, the
	// earliest-joined remaining member becomes admin.
	RemoveMember(ctx context.Context, roomID, userID string) error
}

// ExpenseStore persists expenses and their splits.
type ExpenseStore interface {
	// CreateExpense persists an expense and its splits.
	// ID, Date and CreatedAt are generated when empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByRoom returns every expense of a room, newest first,
	// with splits materialized.
	ListExpensesByRoom(ctx context.Context, roomID string) ([]models.Expense, error)

	// UpdateExpense replaces description, category, amount and splits.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// SettleSplit marks one member's split as settled. Settling twice is
	// a no-op; splits are never unsettled.
	SettleSplit(ctx context.Context, expenseID, memberID string) error

	DeleteExpense(ctx context.Context, expenseID string) error
}

// TaskStore persists tasks.
type TaskStore interface {
	// CreateTask persists a new task. ID and CreatedAt are generated when empty.
	CreateTask(ctx context.Context, task *models.Task) error

	GetTask(ctx context.Context, taskID string) (*models.Task, error)

	// ListTasksByRoom returns a room's tasks ordered by due date then
	// priority. An empty status matches every status.
	ListTasksByRoom(ctx context.Context, roomID string, status models.TaskStatus) ([]models.Task, error)

	// ListTasksByAssignee returns tasks assigned to userID across rooms.
	ListTasksByAssignee(ctx context.Context, userID string, status models.TaskStatus) ([]models.Task, error)

	// RecentTasksByCategory returns up to limit assigned tasks of a category,
	// newest first. This is the rotation window.
	RecentTasksByCategory(ctx context.Context, roomID string, category models.TaskCategory, limit int) ([]models.Task, error)

	// UpdateTask overwrites the mutable fields of a task that is not completed.
	UpdateTask(ctx context.Context, task *models.Task) error

	// CompleteTask marks a task completed and, when successor is not nil,
	// inserts it in the same transaction. Returns ErrTaskAlreadyCompleted
	// if the task was completed already.
	CompleteTask(ctx context.Context, taskID string, completedAt time.Time, successor *models.Task) error

	// SaveRotation persists assignee, status and completion time of rotated
	// tasks atomically.
	SaveRotation(ctx context.Context, tasks []models.Task) error

	DeleteTask(ctx context.Context, taskID string) error
}
