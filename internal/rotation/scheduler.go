package rotation

import (
	"fmt"
	"sort"
	"time"

	"github.com/mohdrazakhan/oneroom/internal/models"
)

// NextDueDate advances due by one period of f. Monthly steps that would
// overflow a short month land on its last day instead (Jan 31 → Feb 28).
func NextDueDate(due time.Time, f models.Frequency) (time.Time, error) {
	switch f {
	case models.Daily:
		return due.AddDate(0, 0, 1), nil
	case models.Weekly:
		return due.AddDate(0, 0, 7), nil
	case models.Monthly:
		next := due.AddDate(0, 1, 0)
		if next.Day() != due.Day() {
			// AddDate normalized into the following month; step back to
			// the last day of the intended one.
			next = next.AddDate(0, 0, -next.Day())
		}
		return next, nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, f)
}

// NextOccurrence builds the task that follows a completed recurring task.
//
// The successor is pending, due one period after done (when done has a due
// date) and assigned by the rotator when auto-assign is on, otherwise to the
// same member. window is the category's recent history as for NextAssignee.
// done itself is never modified.
func NextOccurrence(done models.Task, members []string, window []models.Task) (models.Task, error) {
	every, ok := done.Recurring()
	if !ok {
		return models.Task{}, fmt.Errorf("%w: task %s does not recur", ErrInvalidInput, done.ID)
	}
	if done.Status != models.StatusCompleted {
		return models.Task{}, fmt.Errorf("%w: task %s is not completed", ErrInvalidInput, done.ID)
	}

	next := models.Task{
		RoomID:      done.RoomID,
		Title:       done.Title,
		Description: done.Description,
		Category:    done.Category,
		Priority:    done.Priority,
		Status:      models.StatusPending,
		AssignedTo:  done.AssignedTo,
		Recurrence:  every,
	}

	if done.DueDate != nil {
		due, err := NextDueDate(*done.DueDate, every.Frequency)
		if err != nil {
			return models.Task{}, err
		}
		next.DueDate = &due
	}

	if every.AutoAssign {
		assignee, err := NextAssignee(members, window)
		if err != nil {
			return models.Task{}, err
		}
		next.AssignedTo = assignee
	}

	return next, nil
}

// RotateRecurring re-rolls the assignee of every auto-assigning recurring
// task, resetting it to pending with no completion time. No tasks are
// created. tasks is the room's full task list; it is not modified.
//
// Tasks are processed oldest first and each new assignment is visible to
// the ones after it, so same-category tasks spread across members.
// The returned slice holds only the rotated tasks.
func RotateRecurring(members []string, tasks []models.Task) ([]models.Task, error) {
	if len(members) == 0 {
		return nil, ErrNoMembers
	}

	history := make([]models.Task, len(tasks))
	copy(history, tasks)

	var order []int
	for i := range history {
		if every, ok := history[i].Recurring(); ok && every.AutoAssign {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return history[order[a]].CreatedAt.Before(history[order[b]].CreatedAt)
	})

	rotated := make([]models.Task, 0, len(order))
	for _, i := range order {
		task := history[i]
		window := RecentWindow(history, task.Category, len(members))
		assignee, err := NextAssignee(members, window)
		if err != nil {
			return nil, err
		}

		task.AssignedTo = assignee
		task.Status = models.StatusPending
		task.CompletedAt = nil
		history[i] = task
		rotated = append(rotated, task)
	}

	return rotated, nil
}
