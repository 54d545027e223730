package service

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/mohdrazakhan/oneroom/internal/calculator"
	"github.com/mohdrazakhan/oneroom/internal/models"
	"github.com/mohdrazakhan/oneroom/pkg/api"
)

func toAPIUser(user *models.User) *api.User {
	return &api.User{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}

func toAPIRoom(room *models.Room) *api.Room {
	return &api.Room{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		InviteCode:  room.InviteCode,
		CreatedBy:   room.CreatedBy,
		Members: lo.Map(room.Members, func(m models.Member, _ int) *api.Member {
			return &api.Member{
				UserID:      m.UserID,
				DisplayName: m.DisplayName,
				Role:        string(m.Role),
				JoinedAt:    m.JoinedAt,
			}
		}),
		CreatedAt: room.CreatedAt,
	}
}

func toAPIExpense(expense *models.Expense) *api.Expense {
	return &api.Expense{
		ID:          expense.ID,
		RoomID:      expense.RoomID,
		Description: expense.Description,
		Amount:      expense.Amount.InexactFloat64(),
		PaidBy:      expense.PaidBy,
		Category:    string(expense.Category),
		Date:        expense.Date,
		Splits: lo.Map(expense.Splits, func(s models.Split, _ int) *api.Split {
			return &api.Split{
				MemberID: s.MemberID,
				Owed:     s.Owed.InexactFloat64(),
				Settled:  s.Settled,
			}
		}),
		CreatedAt: expense.CreatedAt,
	}
}

func toAPIBalances(summary *calculator.BalanceSummary, room *models.Room) *api.GetBalancesResponse {
	return &api.GetBalancesResponse{
		Balances: lo.Map(summary.Balances, func(b calculator.MemberBalance, _ int) *api.MemberBalance {
			member, _ := room.Member(b.MemberID)
			return &api.MemberBalance{
				MemberID:    b.MemberID,
				DisplayName: member.DisplayName,
				Net:         b.Net.InexactFloat64(),
				Paid:        b.Paid.InexactFloat64(),
				Owed:        b.Owed.InexactFloat64(),
			}
		}),
		Settlements: lo.Map(summary.Settlements, func(s models.Settlement, _ int) *api.Settlement {
			return &api.Settlement{From: s.From, To: s.To, Amount: s.Amount.InexactFloat64()}
		}),
	}
}

func toAPITask(task *models.Task) *api.Task {
	out := &api.Task{
		ID:          task.ID,
		RoomID:      task.RoomID,
		Title:       task.Title,
		Description: task.Description,
		Category:    string(task.Category),
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		AssignedTo:  task.AssignedTo,
		CreatedAt:   task.CreatedAt.Unix(),
	}
	if task.DueDate != nil {
		out.DueDate = task.DueDate.Format(api.DateLayout)
	}
	if every, ok := task.Recurring(); ok {
		out.Recurrence = &api.Recurrence{Frequency: string(every.Frequency), AutoAssign: every.AutoAssign}
	}
	if task.CompletedAt != nil {
		out.CompletedAt = task.CompletedAt.Unix()
	}
	return out
}

func toAPITasks(tasks []models.Task) []*api.Task {
	return lo.Map(tasks, func(t models.Task, _ int) *api.Task {
		return toAPITask(&t)
	})
}

// parseDueDate reads a YYYY-MM-DD date as UTC midnight. Empty means none.
func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	due, err := time.Parse(api.DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: due date %q: %v", calculator.ErrInvalidInput, s, err)
	}
	return &due, nil
}

func toRecurrence(in *api.RecurrenceInput) (models.Recurrence, error) {
	if in == nil {
		return models.NoRecurrence{}, nil
	}
	freq := models.Frequency(in.Frequency)
	if !freq.Valid() {
		return nil, fmt.Errorf("%w: unknown frequency %q", calculator.ErrInvalidInput, in.Frequency)
	}
	return models.Every{Frequency: freq, AutoAssign: lo.FromPtrOr(in.AutoAssign, true)}, nil
}
