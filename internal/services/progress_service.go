package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillhub/backend/internal/models"
	"go.uber.org/zap"
)

// ProgressRepository is the interface that wraps methods for completed_steps table data access
type ProgressRepository interface {
	CompletedStepsReader
	// Method Toggle flips the membership of "stepID" in the user's completion set.
	//
	// It returns the new full set and whether "stepID" is now a member.
	// If the user does not exist, an error wrapping models.ErrNotFound is returned.
	Toggle(ctx context.Context, userID int, stepID string) ([]string, bool, error)
}

// progressService implements ProgressService
type progressService struct {
	repo   ProgressRepository
	logger *zap.Logger
}

// NewProgressService creates a new progress service
func NewProgressService(repo ProgressRepository, logger *zap.Logger) *progressService {
	return &progressService{
		repo:   repo,
		logger: logger,
	}
}

// GetProgress returns the user's completion set
func (s *progressService) GetProgress(ctx context.Context, userID int) ([]string, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// ToggleStep flips one step in the user's completion set and returns the new set.
// Step identifiers are opaque here; only empty and over-long values are rejected.
func (s *progressService) ToggleStep(ctx context.Context, userID int, stepID string) ([]string, error) {
	if err := validateStepID(stepID); err != nil {
		return nil, err
	}

	steps, completed, err := s.repo.Toggle(ctx, userID, stepID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("step toggled",
		zap.Int("userId", userID),
		zap.String("stepId", stepID),
		zap.Bool("completed", completed),
	)
	return steps, nil
}

func validateStepID(stepID string) error {
	if strings.TrimSpace(stepID) == "" {
		return fmt.Errorf("stepId is required: %w", models.ErrInvalidRequest)
	}
	if len(stepID) > models.MaxStepIDLength {
		return fmt.Errorf("stepId must be at most %d bytes: %w", models.MaxStepIDLength, models.ErrInvalidRequest)
	}
	return nil
}
