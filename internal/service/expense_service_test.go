package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mohdrazakhan/oneroom/pkg/api"
)

func createTestExpense(t *testing.T, c *testClients, payer, roomID string, amount float64) *api.Expense {
	t.Helper()

	resp, err := c.expense.CreateExpense(context.Background(), as(payer, &api.CreateExpenseRequest{
		RoomID:      roomID,
		Description: "Groceries",
		Amount:      amount,
		Category:    "groceries",
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return resp.Msg.Expense
}

func balancesOf(t *testing.T, c *testClients, user, roomID string) *api.GetBalancesResponse {
	t.Helper()

	resp, err := c.expense.GetBalances(context.Background(), as(user, &api.GetBalancesRequest{RoomID: roomID}))
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	return resp.Msg
}

func netOf(resp *api.GetBalancesResponse) map[string]float64 {
	net := make(map[string]float64, len(resp.Balances))
	for _, b := range resp.Balances {
		net[b.MemberID] = b.Net
	}
	return net
}

func TestCreateExpense_EqualSplit(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	room := createTestRoom(t, c, "alice", "bob", "charlie")
	expense := createTestExpense(t, c, "alice", room.ID, 90)

	if expense.PaidBy != "alice" {
		t.Errorf("paid_by: expected alice, got %s", expense.PaidBy)
	}
	if len(expense.Splits) != 3 {
		t.Fatalf("splits: expected 3, got %d", len(expense.Splits))
	}
	for _, split := range expense.Splits {
		if split.Owed != 30 {
			t.Errorf("split %s: expected 30, got %v", split.MemberID, split.Owed)
		}
		if split.Settled {
			t.Errorf("split %s: expected unsettled", split.MemberID)
		}
	}
}

func TestCreateExpense_CustomSplit(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	room := createTestRoom(t, c, "alice", "bob")

	resp, err := c.expense.CreateExpense(context.Background(), as("alice", &api.CreateExpenseRequest{
		RoomID:      room.ID,
		Description: "Rent",
		Amount:      1000,
		Category:    "rent",
		SplitType:   api.SplitCustom,
		CustomSplits: []*api.Share{
			{MemberID: "alice", Percentage: 60},
			{MemberID: "bob", Percentage: 40},
		},
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	splits := resp.Msg.Expense.Splits
	if len(splits) != 2 || splits[0].Owed != 600 || splits[1].Owed != 400 {
		t.Errorf("unexpected splits: %+v, %+v", splits[0], splits[1])
	}
}

func TestCreateExpense_InvalidInput(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	room := createTestRoom(t, c, "alice", "bob")

	tests := []struct {
		name string
		req  *api.CreateExpenseRequest
	}{
		{
			name: "percentages below 100",
			req: &api.CreateExpenseRequest{
				RoomID: room.ID, Description: "x", Amount: 10, SplitType: api.SplitCustom,
				CustomSplits: []*api.Share{{MemberID: "alice", Percentage: 50}, {MemberID: "bob", Percentage: 49.9}},
			},
		},
		{
			name: "percentages above 100",
			req: &api.CreateExpenseRequest{
				RoomID: room.ID, Description: "x", Amount: 10, SplitType: api.SplitCustom,
				CustomSplits: []*api.Share{{MemberID: "alice", Percentage: 50}, {MemberID: "bob", Percentage: 50.1}},
			},
		},
		{
			name: "custom without shares",
			req:  &api.CreateExpenseRequest{RoomID: room.ID, Description: "x", Amount: 10, SplitType: api.SplitCustom},
		},
		{
			name: "share for non member",
			req: &api.CreateExpenseRequest{
				RoomID: room.ID, Description: "x", Amount: 10, SplitType: api.SplitCustom,
				CustomSplits: []*api.Share{{MemberID: "alice", Percentage: 50}, {MemberID: "zed", Percentage: 50}},
			},
		},
		{
			name: "zero amount",
			req:  &api.CreateExpenseRequest{RoomID: room.ID, Description: "x", Amount: 0},
		},
		{
			name: "unknown category",
			req:  &api.CreateExpenseRequest{RoomID: room.ID, Description: "x", Amount: 10, Category: "travel"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.expense.CreateExpense(context.Background(), as("alice", tt.req))
			expectCode(t, err, connect.CodeInvalidArgument)
			if kind := ErrorKind(err); kind != kindInvalidInput {
				t.Errorf("kind: expected %q, got %q", kindInvalidInput, kind)
			}
		})
	}
}

func TestCreateExpense_NonMember(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	room := createTestRoom(t, c, "alice")

	_, err := c.expense.CreateExpense(context.Background(), as("mallory", &api.CreateExpenseRequest{
		RoomID: room.ID, Description: "x", Amount: 10,
	}))
	expectCode(t, err, connect.CodePermissionDenied)
}

func TestGetBalances_SettleSplit(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	room := createTestRoom(t, c, "alice", "bob", "charlie")
	expense := createTestExpense(t, c, "alice", room.ID, 90)

	balances := balancesOf(t, c, "bob", room.ID)
	net := netOf(balances)
	if net["alice"] != 60 || net["bob"] != -30 || net["charlie"] != -30 {
		t.Errorf("unexpected balances: %v", net)
	}
	if len(balances.Settlements) != 2 {
		t.Fatalf("settlements: expected 2, got %d", len(balances.Settlements))
	}
	first, second := balances.Settlements[0], balances.Settlements[1]
	if first.From != "bob" || first.To != "alice" || first.Amount != 30 {
		t.Errorf("first settlement: got %+v", first)
	}
	if second.From != "charlie" || second.To != "alice" || second.Amount != 30 {
		t.Errorf("second settlement: got %+v", second)
	}

	// Only the payer may settle.
	_, err := c.expense.SettleSplit(ctx, as("bob", &api.SettleSplitRequest{ExpenseID: expense.ID, MemberID: "bob"}))
	expectCode(t, err, connect.CodePermissionDenied)

	for i := 0; i < 2; i++ {
		resp, err := c.expense.SettleSplit(ctx, as("alice", &api.SettleSplitRequest{ExpenseID: expense.ID, MemberID: "bob"}))
		if err != nil {
			t.Fatalf("SettleSplit failed: %v", err)
		}
		if !resp.Msg.Expense.Splits[1].Settled {
			t.Error("expected bob's split to be settled")
		}
	}

	balances = balancesOf(t, c, "alice", room.ID)
	net = netOf(balances)
	if net["alice"] != 60 || net["bob"] != 0 || net["charlie"] != -30 {
		t.Errorf("unexpected balances after settling: %v", net)
	}
	if len(balances.Settlements) != 1 || balances.Settlements[0].From != "charlie" {
		t.Errorf("expected only charlie to settle, got %+v", balances.Settlements)
	}

	_, err = c.expense.SettleSplit(ctx, as("alice", &api.SettleSplitRequest{ExpenseID: expense.ID, MemberID: "zed"}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestListExpenses(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	room := createTestRoom(t, c, "alice", "bob")
	createTestExpense(t, c, "alice", room.ID, 20)
	createTestExpense(t, c, "bob", room.ID, 40)

	resp, err := c.expense.ListExpenses(context.Background(), as("bob", &api.ListExpensesRequest{RoomID: room.ID}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(resp.Msg.Expenses) != 2 {
		t.Errorf("expenses: expected 2, got %d", len(resp.Msg.Expenses))
	}
}

func TestUpdateExpense(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	room := createTestRoom(t, c, "alice", "bob")
	expense := createTestExpense(t, c, "alice", room.ID, 20)

	amount := 50.0
	_, err := c.expense.UpdateExpense(ctx, as("bob", &api.UpdateExpenseRequest{ExpenseID: expense.ID, Amount: &amount}))
	expectCode(t, err, connect.CodePermissionDenied)

	// charlie joins before the amount changes, so the new split covers three.
	if _, err := c.rooms.JoinRoom(ctx, as("charlie", &api.JoinRoomRequest{InviteCode: room.InviteCode})); err != nil {
		t.Fatalf("JoinRoom failed: %v", err)
	}

	amount = 60
	resp, err := c.expense.UpdateExpense(ctx, as("alice", &api.UpdateExpenseRequest{
		ExpenseID:   expense.ID,
		Description: "Groceries and snacks",
		Amount:      &amount,
	}))
	if err != nil {
		t.Fatalf("UpdateExpense failed: %v", err)
	}

	updated := resp.Msg.Expense
	if updated.Amount != 60 || updated.Description != "Groceries and snacks" {
		t.Errorf("update not applied: %+v", updated)
	}
	if len(updated.Splits) != 3 {
		t.Fatalf("splits: expected 3, got %d", len(updated.Splits))
	}
	for _, split := range updated.Splits {
		if split.Owed != 20 {
			t.Errorf("split %s: expected 20, got %v", split.MemberID, split.Owed)
		}
	}
}

func TestUpdateExpense_KeepsSettledSplits(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	room := createTestRoom(t, c, "alice", "bob", "charlie")
	expense := createTestExpense(t, c, "alice", room.ID, 30)

	if _, err := c.expense.SettleSplit(ctx, as("alice", &api.SettleSplitRequest{ExpenseID: expense.ID, MemberID: "bob"})); err != nil {
		t.Fatalf("SettleSplit failed: %v", err)
	}

	amount := 60.0
	resp, err := c.expense.UpdateExpense(ctx, as("alice", &api.UpdateExpenseRequest{ExpenseID: expense.ID, Amount: &amount}))
	if err != nil {
		t.Fatalf("UpdateExpense failed: %v", err)
	}

	settled := map[string]bool{}
	for _, split := range resp.Msg.Expense.Splits {
		if split.Owed != 20 {
			t.Errorf("split %s: expected 20, got %v", split.MemberID, split.Owed)
		}
		settled[split.MemberID] = split.Settled
	}
	if !settled["bob"] {
		t.Error("bob's settled split became unsettled")
	}
	if settled["alice"] || settled["charlie"] {
		t.Errorf("only bob should be settled, got %v", settled)
	}

	// The stored expense agrees, and balances no longer count bob's debt.
	net := netOf(balancesOf(t, c, "alice", room.ID))
	want := map[string]float64{"alice": 40, "bob": 0, "charlie": -20}
	for member, amount := range want {
		if net[member] != amount {
			t.Errorf("%s: expected %v, got %v", member, amount, net[member])
		}
	}
}

func TestDeleteExpense(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	room := createTestRoom(t, c, "alice", "bob")
	expense := createTestExpense(t, c, "alice", room.ID, 20)

	_, err := c.expense.DeleteExpense(ctx, as("bob", &api.DeleteExpenseRequest{ExpenseID: expense.ID}))
	expectCode(t, err, connect.CodePermissionDenied)

	if _, err := c.expense.DeleteExpense(ctx, as("alice", &api.DeleteExpenseRequest{ExpenseID: expense.ID})); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}

	_, err = c.expense.DeleteExpense(ctx, as("alice", &api.DeleteExpenseRequest{ExpenseID: expense.ID}))
	expectCode(t, err, connect.CodeNotFound)
}
