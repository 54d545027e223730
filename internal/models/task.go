package models

import "time"

// TaskCategory classifies a chore. Rotation is fair per category.
type TaskCategory string

const (
	TaskCleaning    TaskCategory = "cleaning"
	TaskCooking     TaskCategory = "cooking"
	TaskShopping    TaskCategory = "shopping"
	TaskMaintenance TaskCategory = "maintenance"
	TaskOther       TaskCategory = "other"
)

// Valid reports whether c is a known category.
func (c TaskCategory) Valid() bool {
	switch c {
	case TaskCleaning, TaskCooking, TaskShopping, TaskMaintenance, TaskOther:
		return true
	}
	return false
}

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Rank orders priorities, higher is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	}
	return 0
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) step() int {
	switch s {
	case StatusPending:
		return 0
	case StatusInProgress:
		return 1
	case StatusCompleted:
		return 2
	}
	return -1
}

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	return s.step() >= 0
}

// CanAdvanceTo reports whether moving from s to next is a forward move.
// Staying in place is allowed for pending and in-progress; a completed
// task is terminal.
func (s TaskStatus) CanAdvanceTo(next TaskStatus) bool {
	if !s.Valid() || !next.Valid() || s == StatusCompleted {
		return false
	}
	return next.step() >= s.step()
}

// Frequency of a recurring task.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	return f == Daily || f == Weekly || f == Monthly
}

// Recurrence describes whether and how a task repeats.
// It is either NoRecurrence or Every.
type Recurrence interface {
	recurrence()
}

// NoRecurrence marks a one-off task.
type NoRecurrence struct{}

// Every marks a task that spawns its next occurrence on completion.
type Every struct {
	Frequency Frequency

	// AutoAssign lets the rotator pick the next assignee instead of
	// carrying the current one forward.
	AutoAssign bool
}

func (NoRecurrence) recurrence() {}
func (Every) recurrence()        {}

// Recurring returns the recurrence of t when it is enabled.
func (t *Task) Recurring() (Every, bool) {
	e, ok := t.Recurrence.(Every)
	return e, ok
}

// Task is a chore belonging to a room.
type Task struct {
	// ID is the unique identifier for the task (UUID format).
	ID string

	RoomID      string
	Title       string
	Description string
	Category    TaskCategory
	Priority    Priority
	Status      TaskStatus

	// AssignedTo is a member user ID, or empty when unassigned.
	AssignedTo string

	// DueDate is a calendar date at UTC midnight, or nil.
	DueDate *time.Time

	// Recurrence is never nil; one-off tasks carry NoRecurrence.
	Recurrence Recurrence

	CreatedAt   time.Time
	CompletedAt *time.Time
}
