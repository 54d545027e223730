package api

// Split types for CreateExpenseRequest.
const (
	SplitEqual  = "equal"
	SplitCustom = "custom"
)

type Split struct {
	MemberID string  `json:"member_id"`
	Owed     float64 `json:"owed"`
	Settled  bool    `json:"settled"`
}

type Expense struct {
	ID          string   `json:"id"`
	RoomID      string   `json:"room_id"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	PaidBy      string   `json:"paid_by"`
	Category    string   `json:"category"`
	Date        int64    `json:"date"`
	Splits      []*Split `json:"splits"`
	CreatedAt   int64    `json:"created_at"`
}

// Share is one member's percentage in a custom split.
type Share struct {
	MemberID   string  `json:"member_id" validate:"required"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
}

type CreateExpenseRequest struct {
	RoomID      string  `json:"room_id" validate:"required"`
	Description string  `json:"description" validate:"required,max=200"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Category    string  `json:"category" validate:"omitempty,oneof=groceries utilities rent entertainment other"`

	// SplitType defaults to equal over all room members.
	SplitType    string   `json:"split_type" validate:"omitempty,oneof=equal custom"`
	CustomSplits []*Share `json:"custom_splits" validate:"required_if=SplitType custom,dive,required"`

	// Date is Unix seconds; zero means now.
	Date int64 `json:"date" validate:"gte=0"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	RoomID string `json:"room_id" validate:"required"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type GetBalancesRequest struct {
	RoomID string `json:"room_id" validate:"required"`
}

type MemberBalance struct {
	MemberID    string  `json:"member_id"`
	DisplayName string  `json:"display_name"`
	Net         float64 `json:"net"`
	Paid        float64 `json:"paid"`
	Owed        float64 `json:"owed"`
}

type Settlement struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type GetBalancesResponse struct {
	Balances    []*MemberBalance `json:"balances"`
	Settlements []*Settlement    `json:"settlements"`
}

// UpdateExpenseRequest changes only the fields that are set. A new amount
// replaces the splits with an equal split over the current members.
type UpdateExpenseRequest struct {
	ExpenseID   string   `json:"expense_id" validate:"required"`
	Description string   `json:"description" validate:"max=200"`
	Amount      *float64 `json:"amount" validate:"omitempty,gt=0"`
	Category    string   `json:"category" validate:"omitempty,oneof=groceries utilities rent entertainment other"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type SettleSplitRequest struct {
	ExpenseID string `json:"expense_id" validate:"required"`
	MemberID  string `json:"member_id" validate:"required"`
}

type SettleSplitResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id" validate:"required"`
}

type DeleteExpenseResponse struct{}
