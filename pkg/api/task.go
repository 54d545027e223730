package api

// DateLayout is the wire format of task due dates.
const DateLayout = "2006-01-02"

type Recurrence struct {
	Frequency  string `json:"frequency"`
	AutoAssign bool   `json:"auto_assign"`
}

type Task struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	AssignedTo  string `json:"assigned_to,omitempty"`
	DueDate     string `json:"due_date,omitempty"`

	// Recurrence is nil for one-off tasks.
	Recurrence *Recurrence `json:"recurrence,omitempty"`

	CreatedAt   int64 `json:"created_at"`
	CompletedAt int64 `json:"completed_at,omitempty"`
}

// RecurrenceInput enables recurrence on a task. AutoAssign defaults to true.
type RecurrenceInput struct {
	Frequency  string `json:"frequency" validate:"required,oneof=daily weekly monthly"`
	AutoAssign *bool  `json:"auto_assign"`
}

type CreateTaskRequest struct {
	RoomID      string `json:"room_id" validate:"required"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`

	// AssignedTo is picked by rotation when empty, unless recurrence
	// disables auto-assign.
	AssignedTo string           `json:"assigned_to"`
	Category   string           `json:"category" validate:"omitempty,oneof=cleaning cooking shopping maintenance other"`
	Priority   string           `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate    string           `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Recurrence *RecurrenceInput `json:"recurrence"`
}

type CreateTaskResponse struct {
	Task *Task `json:"task"`
}

type ListTasksRequest struct {
	RoomID string `json:"room_id" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
}

type ListTasksResponse struct {
	Tasks []*Task `json:"tasks"`
}

type ListMyTasksRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
}

type ListMyTasksResponse struct {
	Tasks []*Task `json:"tasks"`
}

type UpdateTaskStatusRequest struct {
	TaskID string `json:"task_id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=pending in-progress completed"`
}

type UpdateTaskStatusResponse struct {
	Task *Task `json:"task"`

	// Next is the spawned occurrence when a recurring task was completed.
	Next *Task `json:"next,omitempty"`
}

// UpdateTaskRequest changes only the fields that are set. An empty
// AssignedTo unassigns; an empty DueDate clears it. Recurrence replaces the
// task's recurrence; DisableRecurrence turns it off.
type UpdateTaskRequest struct {
	TaskID      string  `json:"task_id" validate:"required"`
	Title       string  `json:"title" validate:"max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Category    string  `json:"category" validate:"omitempty,oneof=cleaning cooking shopping maintenance other"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssignedTo  *string `json:"assigned_to"`
	DueDate     *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`

	Recurrence        *RecurrenceInput `json:"recurrence"`
	DisableRecurrence bool             `json:"disable_recurrence" validate:"excluded_with=Recurrence"`
}

type UpdateTaskResponse struct {
	Task *Task `json:"task"`
}

type DeleteTaskRequest struct {
	TaskID string `json:"task_id" validate:"required"`
}

type DeleteTaskResponse struct{}

type RotateTasksRequest struct {
	RoomID string `json:"room_id" validate:"required"`
}

type RotateTasksResponse struct {
	// Tasks are the rotated tasks with their new assignees.
	Tasks []*Task `json:"tasks"`
}
