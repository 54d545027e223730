package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mohdrazakhan/oneroom/internal/calculator"
	"github.com/mohdrazakhan/oneroom/internal/metrics"
	"github.com/mohdrazakhan/oneroom/internal/models"
	"github.com/mohdrazakhan/oneroom/internal/storage"
	"github.com/mohdrazakhan/oneroom/pkg/api"
)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{store: store, logger: logger}
}

// CreateExpense records an expense paid by the caller.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "CreateExpense", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "CreateExpense", err)
	}

	room, err := memberRoom(ctx, s.store, req.Msg.RoomID, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "CreateExpense", err)
	}

	amount, err := calculator.Amount(req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(s.logger, "CreateExpense", err)
	}

	splitType := lo.Ternary(req.Msg.SplitType == "", api.SplitEqual, req.Msg.SplitType)
	var splits []models.Split
	if splitType == api.SplitCustom {
		splits, err = customSplit(room, amount, req.Msg.CustomSplits)
	} else {
		splits, err = calculator.EqualSplit(amount, room.MemberIDs())
	}
	if err != nil {
		return nil, toConnectError(s.logger, "CreateExpense", err)
	}

	expense := &models.Expense{
		RoomID:      room.ID,
		Description: req.Msg.Description,
		Amount:      amount,
		PaidBy:      userID,
		Category:    models.ExpenseCategory(lo.Ternary(req.Msg.Category == "", string(models.ExpenseOther), req.Msg.Category)),
		Date:        req.Msg.Date,
		Splits:      splits,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, toConnectError(s.logger, "CreateExpense", err)
	}
	metrics.ExpensesCreated.WithLabelValues(splitType).Inc()

	s.logger.Info("Expense created",
		"expense_id", expense.ID,
		"room_id", room.ID,
		"amount", expense.Amount.String(),
		"split_type", splitType,
	)
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// customSplit converts percentage shares, all of which must name current
// room members.
func customSplit(room *models.Room, amount decimal.Decimal, shares []*api.Share) ([]models.Split, error) {
	out := make([]calculator.Share, 0, len(shares))
	for _, share := range shares {
		if _, ok := room.Member(share.MemberID); !ok {
			return nil, fmt.Errorf("%w: %s is not a member of this room", calculator.ErrInvalidInput, share.MemberID)
		}
		pct, err := calculator.Amount(share.Percentage)
		if err != nil {
			return nil, err
		}
		out = append(out, calculator.Share{MemberID: share.MemberID, Percentage: pct})
	}
	return calculator.CustomSplit(amount, out)
}

// ListExpenses returns a room's expenses, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "ListExpenses", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "ListExpenses", err)
	}

	if _, err := memberRoom(ctx, s.store, req.Msg.RoomID, userID); err != nil {
		return nil, toConnectError(s.logger, "ListExpenses", err)
	}

	expenses, err := s.store.ListExpensesByRoom(ctx, req.Msg.RoomID)
	if err != nil {
		return nil, toConnectError(s.logger, "ListExpenses", err)
	}

	return connect.NewResponse(&api.ListExpensesResponse{
		Expenses: lo.Map(expenses, func(e models.Expense, _ int) *api.Expense { return toAPIExpense(&e) }),
	}), nil
}

// GetBalances returns net balances and suggested settlements for a room.
func (s *ExpenseService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "GetBalances", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "GetBalances", err)
	}

	room, err := memberRoom(ctx, s.store, req.Msg.RoomID, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetBalances", err)
	}

	expenses, err := s.store.ListExpensesByRoom(ctx, room.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetBalances", err)
	}

	summary, err := calculator.CalculateBalances(expenses, room.MemberIDs())
	if err != nil {
		return nil, toConnectError(s.logger, "GetBalances", err)
	}

	s.logger.Debug("Balances calculated",
		"room_id", room.ID,
		"expenses", len(expenses),
		"settlements", len(summary.Settlements),
	)
	return connect.NewResponse(toAPIBalances(summary, room)), nil
}

// payerExpense loads an expense and checks that userID paid it.
func (s *ExpenseService) payerExpense(ctx context.Context, expenseID, userID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.PaidBy != userID {
		return nil, fmt.Errorf("expense %s: %w", expenseID, errNotPayer)
	}
	return expense, nil
}

// UpdateExpense edits an expense. Payer only. Changing the amount replaces
// any custom split with an equal split over the current members; members
// who had already settled keep their share settled.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateExpense", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "UpdateExpense", err)
	}

	expense, err := s.payerExpense(ctx, req.Msg.ExpenseID, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateExpense", err)
	}

	if req.Msg.Description != "" {
		expense.Description = req.Msg.Description
	}
	if req.Msg.Category != "" {
		expense.Category = models.ExpenseCategory(req.Msg.Category)
	}
	if req.Msg.Amount != nil {
		amount, err := calculator.Amount(*req.Msg.Amount)
		if err != nil {
			return nil, toConnectError(s.logger, "UpdateExpense", err)
		}
		if !amount.Equal(expense.Amount) {
			room, err := s.store.GetRoom(ctx, expense.RoomID)
			if err != nil {
				return nil, toConnectError(s.logger, "UpdateExpense", err)
			}
			splits, err := calculator.EqualSplit(amount, room.MemberIDs())
			if err != nil {
				return nil, toConnectError(s.logger, "UpdateExpense", err)
			}
			// Settled shares stay settled.
			for i := range splits {
				if prev, ok := expense.Split(splits[i].MemberID); ok && prev.Settled {
					splits[i].Settled = true
				}
			}
			expense.Amount = amount
			expense.Splits = splits
		}
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, toConnectError(s.logger, "UpdateExpense", err)
	}

	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// SettleSplit marks a member's share as paid back. Payer only; settling
// twice is a no-op.
func (s *ExpenseService) SettleSplit(ctx context.Context, req *connect.Request[api.SettleSplitRequest]) (*connect.Response[api.SettleSplitResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "SettleSplit", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "SettleSplit", err)
	}

	expense, err := s.payerExpense(ctx, req.Msg.ExpenseID, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "SettleSplit", err)
	}

	split, ok := expense.Split(req.Msg.MemberID)
	if !ok {
		return nil, toConnectError(s.logger, "SettleSplit",
			fmt.Errorf("split %w: %s has no share in expense %s", storage.ErrNotFound, req.Msg.MemberID, expense.ID))
	}
	if !split.Settled {
		if err := s.store.SettleSplit(ctx, expense.ID, req.Msg.MemberID); err != nil {
			return nil, toConnectError(s.logger, "SettleSplit", err)
		}
		split.Settled = true
		metrics.SplitsSettled.Inc()
		s.logger.Info("Split settled", "expense_id", expense.ID, "member_id", req.Msg.MemberID)
	}

	return connect.NewResponse(&api.SettleSplitResponse{Expense: toAPIExpense(expense)}), nil
}

// DeleteExpense removes an expense. Payer only.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "DeleteExpense", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "DeleteExpense", err)
	}

	expense, err := s.payerExpense(ctx, req.Msg.ExpenseID, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "DeleteExpense", err)
	}

	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		return nil, toConnectError(s.logger, "DeleteExpense", err)
	}

	s.logger.Info("Expense deleted", "expense_id", expense.ID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}
