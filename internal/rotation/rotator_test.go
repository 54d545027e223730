package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohdrazakhan/oneroom/internal/models"
)

var epoch = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func assigned(member string, minutes int) models.Task {
	return models.Task{
		Category:   models.TaskCleaning,
		AssignedTo: member,
		CreatedAt:  epoch.Add(time.Duration(minutes) * time.Minute),
		Recurrence: models.NoRecurrence{},
	}
}

func TestNextAssignee(t *testing.T) {
	members := []string{"alice", "bob", "charlie"}

	tests := []struct {
		name   string
		window []models.Task
		want   string
	}{
		{
			name: "no history picks first member",
			want: "alice",
		},
		{
			name:   "never assigned beats assigned",
			window: []models.Task{assigned("alice", 1)},
			want:   "bob",
		},
		{
			name:   "lowest count wins",
			window: []models.Task{assigned("alice", 3), assigned("bob", 2), assigned("alice", 1)},
			want:   "charlie",
		},
		{
			name:   "equal counts go to the longest wait",
			window: []models.Task{assigned("alice", 3), assigned("charlie", 2), assigned("bob", 1)},
			want:   "bob",
		},
		{
			name: "only the first len(members) entries count",
			window: []models.Task{
				assigned("bob", 5), assigned("charlie", 4), assigned("alice", 3),
				assigned("alice", 2), assigned("alice", 1),
			},
			want: "alice",
		},
		{
			name:   "former members and unassigned tasks are ignored",
			window: []models.Task{assigned("zed", 3), assigned("", 2), assigned("alice", 1)},
			want:   "bob",
		},
		{
			name:   "identical timestamps fall back to window position",
			window: []models.Task{assigned("bob", 1), assigned("charlie", 1), assigned("alice", 1)},
			want:   "alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextAssignee(members, tt.window)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextAssignee_NoMembers(t *testing.T) {
	_, err := NextAssignee(nil, []models.Task{assigned("alice", 1)})
	assert.ErrorIs(t, err, ErrNoMembers)
}

func TestNextAssignee_DuplicateMember(t *testing.T) {
	_, err := NextAssignee([]string{"alice", "alice"}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNextAssignee_RoundRobin(t *testing.T) {
	members := []string{"alice", "bob", "charlie", "diana"}

	var history []models.Task
	var picks []string
	for round := 0; round < 3*len(members); round++ {
		window := RecentWindow(history, models.TaskCleaning, len(members))
		got, err := NextAssignee(members, window)
		require.NoError(t, err)

		picks = append(picks, got)
		history = append(history, assigned(got, round))
	}

	for start := 0; start+len(members) <= len(picks); start += len(members) {
		assert.ElementsMatch(t, members, picks[start:start+len(members)], "picks %v", picks)
	}
}

func TestNextAssignee_RoundRobinSameInstant(t *testing.T) {
	members := []string{"alice", "bob", "charlie"}

	var history []models.Task
	var picks []string
	for round := 0; round < 2*len(members); round++ {
		window := RecentWindow(history, models.TaskCleaning, len(members))
		got, err := NextAssignee(members, window)
		require.NoError(t, err)

		picks = append(picks, got)
		history = append(history, assigned(got, 0))
	}

	assert.Equal(t, []string{"alice", "bob", "charlie", "alice", "bob", "charlie"}, picks)
}

func TestRecentWindow(t *testing.T) {
	cooking := assigned("bob", 4)
	cooking.Category = models.TaskCooking

	tasks := []models.Task{
		assigned("alice", 1),
		assigned("bob", 3),
		cooking,
		assigned("", 5),
		assigned("charlie", 2),
	}

	window := RecentWindow(tasks, models.TaskCleaning, 2)
	require.Len(t, window, 2)
	assert.Equal(t, "bob", window[0].AssignedTo)
	assert.Equal(t, "charlie", window[1].AssignedTo)
}
