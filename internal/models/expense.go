package models

import "github.com/shopspring/decimal"

// ExpenseCategory classifies an expense.
type ExpenseCategory string

const (
	ExpenseGroceries     ExpenseCategory = "groceries"
	ExpenseUtilities     ExpenseCategory = "utilities"
	ExpenseRent          ExpenseCategory = "rent"
	ExpenseEntertainment ExpenseCategory = "entertainment"
	ExpenseOther         ExpenseCategory = "other"
)

// Valid reports whether c is a known category.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseGroceries, ExpenseUtilities, ExpenseRent, ExpenseEntertainment, ExpenseOther:
		return true
	}
	return false
}

// Expense is money fronted by one member on behalf of the room.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	RoomID      string
	Description string

	// Amount is the full amount paid. Never negative.
	Amount decimal.Decimal

	// PaidBy is the user ID of the member who fronted the money.
	PaidBy string

	Category ExpenseCategory

	// Date is the Unix timestamp of the purchase.
	Date int64

	// Splits are each member's share. Their owed amounts sum to Amount
	// within 0.01 per split.
	Splits []Split

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Split is one member's share of an expense.
//
// Settled only ever moves from false to true, and only the payer of the
// owning expense may move it.
type Split struct {
	MemberID string
	Owed     decimal.Decimal
	Settled  bool
}

// Split returns the split for memberID, if any.
func (e *Expense) Split(memberID string) (*Split, bool) {
	for i := range e.Splits {
		if e.Splits[i].MemberID == memberID {
			return &e.Splits[i], true
		}
	}
	return nil, false
}
