package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohdrazakhan/oneroom/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name string
		due  time.Time
		freq models.Frequency
		want time.Time
	}{
		{"daily", date(2026, 3, 14), models.Daily, date(2026, 3, 15)},
		{"daily across year end", date(2026, 12, 31), models.Daily, date(2027, 1, 1)},
		{"weekly", date(2026, 2, 25), models.Weekly, date(2026, 3, 4)},
		{"monthly plain", date(2026, 1, 15), models.Monthly, date(2026, 2, 15)},
		{"monthly jan 31 to feb 28", date(2026, 1, 31), models.Monthly, date(2026, 2, 28)},
		{"monthly jan 31 to feb 29 in leap year", date(2028, 1, 31), models.Monthly, date(2028, 2, 29)},
		{"monthly mar 31 to apr 30", date(2026, 3, 31), models.Monthly, date(2026, 4, 30)},
		{"monthly jan 30 to feb 28", date(2026, 1, 30), models.Monthly, date(2026, 2, 28)},
		{"monthly feb 28 to mar 28", date(2026, 2, 28), models.Monthly, date(2026, 3, 28)},
		{"monthly dec 31 to jan 31", date(2026, 12, 31), models.Monthly, date(2027, 1, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextDueDate(tt.due, tt.freq)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got.Format(time.DateOnly), tt.want.Format(time.DateOnly))
		})
	}
}

func TestNextDueDate_UnknownFrequency(t *testing.T) {
	_, err := NextDueDate(date(2026, 1, 1), models.Frequency("yearly"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func completedTask(every models.Every) models.Task {
	due := date(2026, 1, 31)
	done := epoch.Add(time.Hour)
	return models.Task{
		ID:          "t1",
		RoomID:      "r1",
		Title:       "Take out the bins",
		Description: "Blue bin on Tuesdays",
		Category:    models.TaskCleaning,
		Priority:    models.PriorityHigh,
		Status:      models.StatusCompleted,
		AssignedTo:  "alice",
		DueDate:     &due,
		Recurrence:  every,
		CreatedAt:   epoch,
		CompletedAt: &done,
	}
}

func TestNextOccurrence_AutoAssign(t *testing.T) {
	done := completedTask(models.Every{Frequency: models.Monthly, AutoAssign: true})
	original := done
	originalDue := *done.DueDate

	members := []string{"alice", "bob"}
	window := []models.Task{done}

	next, err := NextOccurrence(done, members, window)
	require.NoError(t, err)

	assert.Empty(t, next.ID)
	assert.Equal(t, "r1", next.RoomID)
	assert.Equal(t, done.Title, next.Title)
	assert.Equal(t, done.Description, next.Description)
	assert.Equal(t, done.Category, next.Category)
	assert.Equal(t, done.Priority, next.Priority)
	assert.Equal(t, models.StatusPending, next.Status)
	assert.Equal(t, "bob", next.AssignedTo)
	assert.Equal(t, done.Recurrence, next.Recurrence)
	assert.Nil(t, next.CompletedAt)
	require.NotNil(t, next.DueDate)
	assert.True(t, next.DueDate.Equal(date(2026, 2, 28)))

	// The completed task is untouched.
	assert.Equal(t, original, done)
	assert.True(t, done.DueDate.Equal(originalDue))
	assert.Equal(t, "alice", done.AssignedTo)
}

func TestNextOccurrence_CarriesAssignee(t *testing.T) {
	done := completedTask(models.Every{Frequency: models.Weekly, AutoAssign: false})

	next, err := NextOccurrence(done, []string{"alice", "bob"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", next.AssignedTo)
	assert.True(t, next.DueDate.Equal(date(2026, 2, 7)))
}

func TestNextOccurrence_NoDueDate(t *testing.T) {
	done := completedTask(models.Every{Frequency: models.Daily})
	done.DueDate = nil

	next, err := NextOccurrence(done, []string{"alice"}, nil)
	require.NoError(t, err)
	assert.Nil(t, next.DueDate)
}

func TestNextOccurrence_Errors(t *testing.T) {
	oneOff := completedTask(models.Every{})
	oneOff.Recurrence = models.NoRecurrence{}
	_, err := NextOccurrence(oneOff, []string{"alice"}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	pending := completedTask(models.Every{Frequency: models.Daily})
	pending.Status = models.StatusPending
	_, err = NextOccurrence(pending, []string{"alice"}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	auto := completedTask(models.Every{Frequency: models.Daily, AutoAssign: true})
	_, err = NextOccurrence(auto, nil, nil)
	assert.ErrorIs(t, err, ErrNoMembers)
}

func TestRotateRecurring(t *testing.T) {
	members := []string{"alice", "bob", "charlie"}
	completedAt := epoch.Add(24 * time.Hour)

	tasks := []models.Task{
		{
			ID: "dishes", Category: models.TaskCleaning, AssignedTo: "alice",
			Status: models.StatusCompleted, CompletedAt: &completedAt,
			Recurrence: models.Every{Frequency: models.Daily, AutoAssign: true},
			CreatedAt:  epoch,
		},
		{
			ID: "bathroom", Category: models.TaskCleaning, AssignedTo: "alice",
			Status:     models.StatusInProgress,
			Recurrence: models.Every{Frequency: models.Weekly, AutoAssign: true},
			CreatedAt:  epoch.Add(time.Minute),
		},
		{
			ID: "groceries", Category: models.TaskShopping, AssignedTo: "bob",
			Status:     models.StatusPending,
			Recurrence: models.Every{Frequency: models.Weekly, AutoAssign: false},
			CreatedAt:  epoch.Add(2 * time.Minute),
		},
		{
			ID: "fix tap", Category: models.TaskMaintenance, AssignedTo: "charlie",
			Status:     models.StatusPending,
			Recurrence: models.NoRecurrence{},
			CreatedAt:  epoch.Add(3 * time.Minute),
		},
	}
	before := make([]models.Task, len(tasks))
	copy(before, tasks)

	rotated, err := RotateRecurring(members, tasks)
	require.NoError(t, err)
	require.Len(t, rotated, 2)

	assert.Equal(t, "dishes", rotated[0].ID)
	assert.Equal(t, "bob", rotated[0].AssignedTo)
	assert.Equal(t, models.StatusPending, rotated[0].Status)
	assert.Nil(t, rotated[0].CompletedAt)

	// dishes now counts for bob, so bathroom goes to charlie.
	assert.Equal(t, "bathroom", rotated[1].ID)
	assert.Equal(t, "charlie", rotated[1].AssignedTo)
	assert.Equal(t, models.StatusPending, rotated[1].Status)

	assert.Equal(t, before, tasks)
}

func TestRotateRecurring_NoMembers(t *testing.T) {
	_, err := RotateRecurring(nil, nil)
	assert.ErrorIs(t, err, ErrNoMembers)
}
