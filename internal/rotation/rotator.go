// Package rotation assigns chores fairly and schedules recurring tasks.
//
// All functions are pure: callers pass the room's members and task
// history in and persist whatever comes back.
package rotation

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mohdrazakhan/oneroom/internal/calculator"
	"github.com/mohdrazakhan/oneroom/internal/models"
)

var (
	// ErrNoMembers is returned when an assignee is requested for a room
	// without members.
	ErrNoMembers = errors.New("no members available for task assignment")

	// ErrInvalidInput is shared with the calculator so callers can test
	// for a single kind.
	ErrInvalidInput = calculator.ErrInvalidInput
)

type tally struct {
	memberID string
	order    int
	count    int

	// last is the newest createdAt seen, position its index in the window.
	last     time.Time
	position int
	seen     bool
}

// NextAssignee picks the member who should take the next task of a
// category.
//
// window holds the category's most recent assigned tasks, newest first.
// Only the first len(members) entries are read. The member with the fewest
// assignments in the window wins; ties go to whoever was assigned longest
// ago, members never assigned first.
func NextAssignee(members []string, window []models.Task) (string, error) {
	if len(members) == 0 {
		return "", ErrNoMembers
	}

	tallies := make(map[string]*tally, len(members))
	ordered := make([]*tally, 0, len(members))
	for i, m := range members {
		if _, dup := tallies[m]; dup {
			return "", fmt.Errorf("%w: member %s appears more than once", ErrInvalidInput, m)
		}
		t := &tally{memberID: m, order: i}
		tallies[m] = t
		ordered = append(ordered, t)
	}

	if len(window) > len(members) {
		window = window[:len(members)]
	}
	for i, task := range window {
		t, ok := tallies[task.AssignedTo]
		if !ok {
			// unassigned, or assigned to someone who left
			continue
		}
		t.count++
		if !t.seen || task.CreatedAt.After(t.last) {
			t.last = task.CreatedAt
			t.position = i
			t.seen = true
		}
	}

	minCount := ordered[0].count
	for _, t := range ordered[1:] {
		if t.count < minCount {
			minCount = t.count
		}
	}

	var candidates []*tally
	for _, t := range ordered {
		if t.count == minCount {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 1 {
		return candidates[0].memberID, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.seen != b.seen {
			return !a.seen
		}
		if !a.last.Equal(b.last) {
			return a.last.Before(b.last)
		}
		// Same instant: the entry further back in the window is older.
		return a.position > b.position
	})
	return candidates[0].memberID, nil
}

// RecentWindow returns the newest n assigned tasks of category from an
// unordered task list, newest first. Tasks created at the same instant keep
// their relative order reversed, so later list entries count as newer.
func RecentWindow(tasks []models.Task, category models.TaskCategory, n int) []models.Task {
	var window []models.Task
	for i := len(tasks) - 1; i >= 0; i-- {
		if tasks[i].Category == category && tasks[i].AssignedTo != "" {
			window = append(window, tasks[i])
		}
	}
	sort.SliceStable(window, func(i, j int) bool {
		return window[i].CreatedAt.After(window[j].CreatedAt)
	})
	if len(window) > n {
		window = window[:n]
	}
	return window
}
