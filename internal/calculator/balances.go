package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mohdrazakhan/oneroom/internal/models"
)

// MemberBalance represents the balance information for one room member.
type MemberBalance struct {
	MemberID string
	Net      decimal.Decimal // Positive = owed money, Negative = owes money
	Paid     decimal.Decimal // Total amount fronted across all expenses
	Owed     decimal.Decimal // Total of this member's unsettled splits
}

// BalanceSummary is the result of CalculateBalances.
type BalanceSummary struct {
	// Balances follow room member order.
	Balances []MemberBalance

	// Settlements are suggested payments in sweep order.
	Settlements []models.Settlement
}

// Net returns the net balance per member.
func (b *BalanceSummary) Net() map[string]decimal.Decimal {
	net := make(map[string]decimal.Decimal, len(b.Balances))
	for _, bal := range b.Balances {
		net[bal.MemberID] = bal.Net
	}
	return net
}

// CalculateBalances computes net balances for the current members of a room
// and a list of payments that would clear them.
//
// Algorithm:
//   - For each expense: payer is credited the full amount, each unsettled
//     split debits its member. Settled splits no longer debit anyone, and the
//     payer's credit is not reversed when a split is settled.
//   - Members outside the room are ignored on both sides.
//   - Creditors (> 0.01) and debtors (< -0.01) are matched greedily in member
//     order. This is not guaranteed to be the minimal number of payments.
func CalculateBalances(expenses []models.Expense, members []string) (*BalanceSummary, error) {
	index := make(map[string]int, len(members))
	balances := make([]MemberBalance, 0, len(members))
	for _, m := range members {
		if _, dup := index[m]; dup {
			return nil, fmt.Errorf("%w: member %s appears more than once", ErrInvalidInput, m)
		}
		index[m] = len(balances)
		balances = append(balances, MemberBalance{MemberID: m})
	}

	for _, expense := range expenses {
		if expense.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: expense %s has a negative amount", ErrInvalidInput, expense.ID)
		}

		// Payer fronted the full amount
		if i, ok := index[expense.PaidBy]; ok {
			balances[i].Paid = balances[i].Paid.Add(expense.Amount)
		}

		for _, split := range expense.Splits {
			if split.Owed.IsNegative() {
				return nil, fmt.Errorf("%w: expense %s has a negative split", ErrInvalidInput, expense.ID)
			}
			if split.Settled {
				continue
			}
			if i, ok := index[split.MemberID]; ok {
				balances[i].Owed = balances[i].Owed.Add(split.Owed)
			}
		}
	}

	for i := range balances {
		balances[i].Net = balances[i].Paid.Sub(balances[i].Owed)
	}

	return &BalanceSummary{
		Balances:    balances,
		Settlements: settle(balances),
	}, nil
}

type party struct {
	memberID  string
	remaining decimal.Decimal
}

// settle matches debtors with creditors using a two-pointer sweep.
func settle(balances []MemberBalance) []models.Settlement {
	// Create lists of creditors (owed money) and debtors (owe money)
	var creditors, debtors []party
	for _, bal := range balances {
		if bal.Net.GreaterThan(Tolerance) {
			creditors = append(creditors, party{bal.MemberID, bal.Net})
		} else if bal.Net.LessThan(Tolerance.Neg()) {
			debtors = append(debtors, party{bal.MemberID, bal.Net.Neg()})
		}
	}

	var settlements []models.Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := decimal.Min(debtor.remaining, creditor.remaining)

		settlements = append(settlements, models.Settlement{
			From:   debtor.memberID,
			To:     creditor.memberID,
			Amount: amount.Round(2),
		})

		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)

		// Move to next debtor/creditor if fully settled
		if debtor.remaining.LessThan(Tolerance) {
			i++
		}
		if creditor.remaining.LessThan(Tolerance) {
			j++
		}
	}

	return settlements
}
