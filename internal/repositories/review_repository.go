package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skillhub/backend/internal/models"
	"go.uber.org/zap"
)

// reviewRepository implements ReviewRepository
type reviewRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB, logger *zap.Logger) *reviewRepository {
	return &reviewRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll returns all reviews ordered by ID
func (r *reviewRepository) GetAll(ctx context.Context) ([]models.Review, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, img, course, quote FROM reviews ORDER BY id`)
	if err != nil {
		r.logger.Error("failed to query reviews", zap.Error(err))
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(&review.ID, &review.Name, &review.Img, &review.Course, &review.Quote); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

// CreateIfMissing inserts the review unless one with the same name and course exists.
// It reports whether a row was inserted.
func (r *reviewRepository) CreateIfMissing(ctx context.Context, review *models.Review) (bool, error) {
	query := `
		INSERT INTO reviews (name, img, course, quote)
		SELECT ?, ?, ?, ? FROM DUAL
		WHERE NOT EXISTS (SELECT 1 FROM reviews WHERE name = ? AND course = ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		review.Name, review.Img, review.Course, review.Quote,
		review.Name, review.Course,
	)
	if err != nil {
		r.logger.Error("failed to create review", zap.Error(err), zap.String("name", review.Name))
		return false, fmt.Errorf("failed to create review: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return false, nil
	}

	if id, err := result.LastInsertId(); err == nil {
		review.ID = int(id)
	}
	return true, nil
}
