package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SettleSplit marks a member's split of an expense as settled.
// Settling an already settled split succeeds without changes.
func (s *SQLiteStore) SettleSplit(ctx context.Context, expenseID, memberID string) error {
	// Check if split exists
	var settled bool
	err := s.db.QueryRowContext(ctx,
		"SELECT settled FROM expense_splits WHERE expense_id = ? AND member_id = ?",
		expenseID, memberID,
	).Scan(&settled)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("split", expenseID+"/"+memberID)
	}
	if err != nil {
		return fmt.Errorf("failed to check split existence: %w", err)
	}
	if settled {
		return nil
	}

	// Only ever flips false to true
	_, err = s.db.ExecContext(ctx,
		"UPDATE expense_splits SET settled = 1 WHERE expense_id = ? AND member_id = ? AND settled = 0",
		expenseID, memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to settle split: %w", err)
	}

	return nil
}
