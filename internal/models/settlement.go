package models

import "github.com/shopspring/decimal"

// Settlement is a suggested payment between room members that moves
// their net balances toward zero. Settlements are computed, not stored.
type Settlement struct {
	// From is the member who owes (debtor).
	From string

	// To is the member who is owed (creditor).
	To string

	Amount decimal.Decimal
}
