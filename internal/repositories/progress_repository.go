package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/skillhub/backend/internal/models"
	"go.uber.org/zap"
)

// progressRepository implements ProgressRepository over the completed_steps table
type progressRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB, logger *zap.Logger) *progressRepository {
	return &progressRepository{
		db:     db,
		logger: logger,
	}
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// GetByUserID returns the user's completion set in insertion order
func (r *progressRepository) GetByUserID(ctx context.Context, userID int) ([]string, error) {
	steps, err := r.listSteps(ctx, r.db, userID)
	if err != nil {
		r.logger.Error("failed to get completed steps", zap.Error(err), zap.Int("userId", userID))
		return nil, err
	}
	return steps, nil
}

// Toggle flips the membership of stepID in the user's completion set and returns
// the new full set together with the new membership of stepID.
//
// The user row is locked for the duration of the transaction, so concurrent toggles
// of the same user are applied one after another instead of overwriting each other.
func (r *progressRepository) Toggle(ctx context.Context, userID int, stepID string) ([]string, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lockedID int
	err = tx.QueryRowContext(ctx, `SELECT id FROM users WHERE id = ? FOR UPDATE`, userID).Scan(&lockedID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("user %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to lock user", zap.Error(err), zap.Int("userId", userID))
		return nil, false, fmt.Errorf("failed to lock user: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM completed_steps WHERE user_id = ? AND step_id = ?`, userID, stepID)
	if err != nil {
		r.logger.Error("failed to delete completed step", zap.Error(err), zap.Int("userId", userID))
		return nil, false, fmt.Errorf("failed to delete completed step: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	completed := removed == 0
	if completed {
		if _, err := tx.ExecContext(ctx, `INSERT INTO completed_steps (user_id, step_id) VALUES (?, ?)`, userID, stepID); err != nil {
			r.logger.Error("failed to insert completed step", zap.Error(err), zap.Int("userId", userID))
			return nil, false, fmt.Errorf("failed to insert completed step: %w", err)
		}
	}

	steps, err := r.listSteps(ctx, tx, userID)
	if err != nil {
		r.logger.Error("failed to read completed steps", zap.Error(err), zap.Int("userId", userID))
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("failed to commit toggle", zap.Error(err), zap.Int("userId", userID))
		return nil, false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return steps, completed, nil
}

func (r *progressRepository) listSteps(ctx context.Context, q queryer, userID int) ([]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT step_id FROM completed_steps WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed steps: %w", err)
	}
	defer rows.Close()

	steps := []string{}
	for rows.Next() {
		var stepID string
		if err := rows.Scan(&stepID); err != nil {
			return nil, fmt.Errorf("failed to scan completed step: %w", err)
		}
		steps = append(steps, stepID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate completed steps: %w", err)
	}

	return steps, nil
}
