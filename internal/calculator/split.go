package calculator

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/mohdrazakhan/oneroom/internal/models"
)

// Tolerance is the rounding tolerance, one cent.
var Tolerance = decimal.New(1, -2)

var hundred = decimal.NewFromInt(100)

// Share is one member's percentage of a custom split.
type Share struct {
	MemberID   string
	Percentage decimal.Decimal
}

// Amount converts an API amount into a decimal. NaN, infinities and
// negative values are rejected.
func Amount(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, fmt.Errorf("%w: amount must be a finite number", ErrInvalidInput)
	}
	if v < 0 {
		return decimal.Zero, fmt.Errorf("%w: amount cannot be negative", ErrInvalidInput)
	}
	return decimal.NewFromFloat(v), nil
}

// EqualSplit divides amount equally among members, rounding each share to
// cents. The rounded shares may drift from amount by up to 0.01 per member;
// the drift is not redistributed.
func EqualSplit(amount decimal.Decimal, members []string) ([]models.Split, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: no members to split expense between", ErrInvalidInput)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount cannot be negative", ErrInvalidInput)
	}
	if err := checkUnique(members); err != nil {
		return nil, err
	}

	perPerson := amount.Div(decimal.NewFromInt(int64(len(members)))).Round(2)

	splits := make([]models.Split, len(members))
	for i, m := range members {
		splits[i] = models.Split{MemberID: m, Owed: perPerson}
	}
	return splits, nil
}

// CustomSplit divides amount by percentage. Percentages must sum to 100
// within Tolerance. Each share is rounded to cents independently.
func CustomSplit(amount decimal.Decimal, shares []Share) ([]models.Split, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no custom splits provided", ErrInvalidInput)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount cannot be negative", ErrInvalidInput)
	}

	total := decimal.Zero
	members := make([]string, len(shares))
	for i, s := range shares {
		if s.Percentage.IsNegative() {
			return nil, fmt.Errorf("%w: percentage for %s cannot be negative", ErrInvalidInput, s.MemberID)
		}
		total = total.Add(s.Percentage)
		members[i] = s.MemberID
	}
	if total.Sub(hundred).Abs().GreaterThan(Tolerance) {
		return nil, fmt.Errorf("%w: percentages must sum to 100, got %s", ErrInvalidInput, total)
	}
	if err := checkUnique(members); err != nil {
		return nil, err
	}

	splits := make([]models.Split, len(shares))
	for i, s := range shares {
		splits[i] = models.Split{
			MemberID: s.MemberID,
			Owed:     amount.Mul(s.Percentage).Div(hundred).Round(2),
		}
	}
	return splits, nil
}

// Total sums the owed amounts of splits.
func Total(splits []models.Split) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(s.Owed)
	}
	return sum
}

func checkUnique(members []string) error {
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if m == "" {
			return fmt.Errorf("%w: member id cannot be empty", ErrInvalidInput)
		}
		if seen[m] {
			return fmt.Errorf("%w: member %s appears more than once", ErrInvalidInput, m)
		}
		seen[m] = true
	}
	return nil
}
