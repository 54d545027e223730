package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/samber/lo"

	"github.com/mohdrazakhan/oneroom/internal/calculator"
	"github.com/mohdrazakhan/oneroom/internal/metrics"
	"github.com/mohdrazakhan/oneroom/internal/models"
	"github.com/mohdrazakhan/oneroom/internal/rotation"
	"github.com/mohdrazakhan/oneroom/internal/storage"
	"github.com/mohdrazakhan/oneroom/pkg/api"
)

// TaskService implements the Connect TaskService.
type TaskService struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskService creates a new TaskService with the given storage backend.
func NewTaskService(store storage.Store, logger *slog.Logger) *TaskService {
	return &TaskService{store: store, logger: logger, now: time.Now}
}

// nextAssignee asks the rotator for the next member to take a task of
// category, reading the window from storage.
func (s *TaskService) nextAssignee(ctx context.Context, room *models.Room, category models.TaskCategory) (string, error) {
	members := room.MemberIDs()
	window, err := s.store.RecentTasksByCategory(ctx, room.ID, category, len(members))
	if err != nil {
		return "", err
	}
	return rotation.NextAssignee(members, window)
}

func requireAssignable(room *models.Room, userID string) error {
	if _, ok := room.Member(userID); !ok {
		return fmt.Errorf("%w: %s is not a member of this room", calculator.ErrInvalidInput, userID)
	}
	return nil
}

// CreateTask adds a task to a room. Without an assignee the task goes to
// whoever the rotator picks, unless recurrence turns auto-assign off.
func (s *TaskService) CreateTask(ctx context.Context, req *connect.Request[api.CreateTaskRequest]) (*connect.Response[api.CreateTaskResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "CreateTask", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "CreateTask", err)
	}

	room, err := memberRoom(ctx, s.store, req.Msg.RoomID, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "CreateTask", err)
	}

	recurrence, err := toRecurrence(req.Msg.Recurrence)
	if err != nil {
		return nil, toConnectError(s.logger, "CreateTask", err)
	}
	due, err := parseDueDate(req.Msg.DueDate)
	if err != nil {
		return nil, toConnectError(s.logger, "CreateTask", err)
	}

	task := &models.Task{
		RoomID:      room.ID,
		Title:       req.Msg.Title,
		Description: req.Msg.Description,
		Category:    models.TaskCategory(lo.Ternary(req.Msg.Category == "", string(models.TaskOther), req.Msg.Category)),
		Priority:    models.Priority(lo.Ternary(req.Msg.Priority == "", string(models.PriorityMedium), req.Msg.Priority)),
		Status:      models.StatusPending,
		AssignedTo:  req.Msg.AssignedTo,
		DueDate:     due,
		Recurrence:  recurrence,
	}

	every, recurring := task.Recurring()
	switch {
	case task.AssignedTo != "":
		if err := requireAssignable(room, task.AssignedTo); err != nil {
			return nil, toConnectError(s.logger, "CreateTask", err)
		}
	case !recurring || every.AutoAssign:
		assignee, err := s.nextAssignee(ctx, room, task.Category)
		if err != nil {
			return nil, toConnectError(s.logger, "CreateTask", err)
		}
		task.AssignedTo = assignee
		metrics.TaskAssignments.WithLabelValues("create").Inc()
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, toConnectError(s.logger, "CreateTask", err)
	}

	s.logger.Info("Task created", "task_id", task.ID, "room_id", room.ID, "assigned_to", task.AssignedTo)
	return connect.NewResponse(&api.CreateTaskResponse{Task: toAPITask(task)}), nil
}

// ListTasks returns a room's tasks, optionally filtered by status.
func (s *TaskService) ListTasks(ctx context.Context, req *connect.Request[api.ListTasksRequest]) (*connect.Response[api.ListTasksResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "ListTasks", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "ListTasks", err)
	}

	if _, err := memberRoom(ctx, s.store, req.Msg.RoomID, userID); err != nil {
		return nil, toConnectError(s.logger, "ListTasks", err)
	}

	tasks, err := s.store.ListTasksByRoom(ctx, req.Msg.RoomID, models.TaskStatus(req.Msg.Status))
	if err != nil {
		return nil, toConnectError(s.logger, "ListTasks", err)
	}

	return connect.NewResponse(&api.ListTasksResponse{Tasks: toAPITasks(tasks)}), nil
}

// ListMyTasks returns the caller's tasks across all rooms.
func (s *TaskService) ListMyTasks(ctx context.Context, req *connect.Request[api.ListMyTasksRequest]) (*connect.Response[api.ListMyTasksResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "ListMyTasks", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "ListMyTasks", err)
	}

	tasks, err := s.store.ListTasksByAssignee(ctx, userID, models.TaskStatus(req.Msg.Status))
	if err != nil {
		return nil, toConnectError(s.logger, "ListMyTasks", err)
	}

	return connect.NewResponse(&api.ListMyTasksResponse{Tasks: toAPITasks(tasks)}), nil
}

// UpdateTaskStatus moves a task forward. Completing a recurring task
// spawns its next occurrence in the same transaction.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, req *connect.Request[api.UpdateTaskStatusRequest]) (*connect.Response[api.UpdateTaskStatusResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateTaskStatus", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "UpdateTaskStatus", err)
	}

	task, err := s.store.GetTask(ctx, req.Msg.TaskID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateTaskStatus", err)
	}
	room, err := memberRoom(ctx, s.store, task.RoomID, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateTaskStatus", err)
	}

	next := models.TaskStatus(req.Msg.Status)
	if task.Status == models.StatusCompleted {
		return nil, toConnectError(s.logger, "UpdateTaskStatus",
			fmt.Errorf("task %s: %w", task.ID, storage.ErrTaskAlreadyCompleted))
	}
	if !task.Status.CanAdvanceTo(next) {
		return nil, toConnectError(s.logger, "UpdateTaskStatus",
			fmt.Errorf("%w: cannot move task from %s back to %s", calculator.ErrInvalidInput, task.Status, next))
	}

	if next != models.StatusCompleted {
		task.Status = next
		if err := s.store.UpdateTask(ctx, task); err != nil {
			return nil, toConnectError(s.logger, "UpdateTaskStatus", err)
		}
		return connect.NewResponse(&api.UpdateTaskStatusResponse{Task: toAPITask(task)}), nil
	}

	completedAt := s.now().UTC()
	task.Status = models.StatusCompleted
	task.CompletedAt = &completedAt

	successor, err := s.successor(ctx, room, *task)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateTaskStatus", err)
	}
	if err := s.store.CompleteTask(ctx, task.ID, completedAt, successor); err != nil {
		return nil, toConnectError(s.logger, "UpdateTaskStatus", err)
	}
	metrics.TasksCompleted.WithLabelValues(string(task.Category)).Inc()

	resp := &api.UpdateTaskStatusResponse{Task: toAPITask(task)}
	if successor != nil {
		resp.Next = toAPITask(successor)
		s.logger.Info("Recurring task completed",
			"task_id", task.ID,
			"next_task_id", successor.ID,
			"next_assignee", successor.AssignedTo,
		)
	}
	return connect.NewResponse(resp), nil
}

// successor builds the next occurrence of a just-completed task, or nil
// when the task does not recur.
func (s *TaskService) successor(ctx context.Context, room *models.Room, done models.Task) (*models.Task, error) {
	every, ok := done.Recurring()
	if !ok {
		return nil, nil
	}

	var window []models.Task
	if every.AutoAssign {
		var err error
		window, err = s.store.RecentTasksByCategory(ctx, room.ID, done.Category, len(room.Members))
		if err != nil {
			return nil, err
		}
		metrics.TaskAssignments.WithLabelValues("recurrence").Inc()
	}

	next, err := rotation.NextOccurrence(done, room.MemberIDs(), window)
	if err != nil {
		return nil, err
	}
	return &next, nil
}

// UpdateTask edits the descriptive fields and recurrence of a task that is
// not completed.
func (s *TaskService) UpdateTask(ctx context.Context, req *connect.Request[api.UpdateTaskRequest]) (*connect.Response[api.UpdateTaskResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateTask", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "UpdateTask", err)
	}

	task, err := s.store.GetTask(ctx, req.Msg.TaskID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateTask", err)
	}
	room, err := memberRoom(ctx, s.store, task.RoomID, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateTask", err)
	}

	if req.Msg.Title != "" {
		task.Title = req.Msg.Title
	}
	if req.Msg.Description != nil {
		task.Description = *req.Msg.Description
	}
	if req.Msg.Category != "" {
		task.Category = models.TaskCategory(req.Msg.Category)
	}
	if req.Msg.Priority != "" {
		task.Priority = models.Priority(req.Msg.Priority)
	}
	if req.Msg.AssignedTo != nil {
		if *req.Msg.AssignedTo != "" {
			if err := requireAssignable(room, *req.Msg.AssignedTo); err != nil {
				return nil, toConnectError(s.logger, "UpdateTask", err)
			}
		}
		task.AssignedTo = *req.Msg.AssignedTo
	}
	if req.Msg.DueDate != nil {
		due, err := parseDueDate(*req.Msg.DueDate)
		if err != nil {
			return nil, toConnectError(s.logger, "UpdateTask", err)
		}
		task.DueDate = due
	}
	switch {
	case req.Msg.Recurrence != nil:
		recurrence, err := toRecurrence(req.Msg.Recurrence)
		if err != nil {
			return nil, toConnectError(s.logger, "UpdateTask", err)
		}
		task.Recurrence = recurrence
	case req.Msg.DisableRecurrence:
		task.Recurrence = models.NoRecurrence{}
	}

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, toConnectError(s.logger, "UpdateTask", err)
	}

	return connect.NewResponse(&api.UpdateTaskResponse{Task: toAPITask(task)}), nil
}

// DeleteTask removes a task. Any room member may delete.
func (s *TaskService) DeleteTask(ctx context.Context, req *connect.Request[api.DeleteTaskRequest]) (*connect.Response[api.DeleteTaskResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "DeleteTask", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "DeleteTask", err)
	}

	task, err := s.store.GetTask(ctx, req.Msg.TaskID)
	if err != nil {
		return nil, toConnectError(s.logger, "DeleteTask", err)
	}
	if _, err := memberRoom(ctx, s.store, task.RoomID, userID); err != nil {
		return nil, toConnectError(s.logger, "DeleteTask", err)
	}

	if err := s.store.DeleteTask(ctx, task.ID); err != nil {
		return nil, toConnectError(s.logger, "DeleteTask", err)
	}

	s.logger.Info("Task deleted", "task_id", task.ID)
	return connect.NewResponse(&api.DeleteTaskResponse{}), nil
}

// RotateTasks re-assigns every auto-assigning recurring task of a room and
// resets it to pending. Admins only.
func (s *TaskService) RotateTasks(ctx context.Context, req *connect.Request[api.RotateTasksRequest]) (*connect.Response[api.RotateTasksResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "RotateTasks", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "RotateTasks", err)
	}

	room, err := adminRoom(ctx, s.store, req.Msg.RoomID, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "RotateTasks", err)
	}

	tasks, err := s.store.ListTasksByRoom(ctx, room.ID, "")
	if err != nil {
		return nil, toConnectError(s.logger, "RotateTasks", err)
	}

	rotated, err := rotation.RotateRecurring(room.MemberIDs(), tasks)
	if err != nil {
		return nil, toConnectError(s.logger, "RotateTasks", err)
	}
	if err := s.store.SaveRotation(ctx, rotated); err != nil {
		return nil, toConnectError(s.logger, "RotateTasks", err)
	}
	metrics.TaskAssignments.WithLabelValues("rotation").Add(float64(len(rotated)))

	s.logger.Info("Tasks rotated", "room_id", room.ID, "count", len(rotated))
	return connect.NewResponse(&api.RotateTasksResponse{Tasks: toAPITasks(rotated)}), nil
}
