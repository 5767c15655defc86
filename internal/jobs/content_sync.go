// Package jobs holds background work run by the API server.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/skillhub/backend/internal/seed"
	"github.com/skillhub/backend/internal/services"
	"go.uber.org/zap"
)

// Seeder writes a seed document to the content store
type Seeder interface {
	Seed(ctx context.Context, doc *seed.Document) (*services.SeedResult, error)
}

// ContentSync re-applies a seed file to the content store
type ContentSync struct {
	seeder  Seeder
	path    string
	timeout time.Duration
	logger  *zap.Logger
}

// NewContentSync creates a content sync job for the seed file at path
func NewContentSync(seeder Seeder, path string, logger *zap.Logger) *ContentSync {
	return &ContentSync{
		seeder:  seeder,
		path:    path,
		timeout: 2 * time.Minute,
		logger:  logger,
	}
}

// Run loads the seed file and applies it once
func (j *ContentSync) Run(ctx context.Context) (*services.SeedResult, error) {
	doc, err := seed.Load(j.path)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	result, err := j.seeder.Seed(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to sync content from %s: %w", j.path, err)
	}
	return result, nil
}

// Schedule registers the job on c with a standard cron expression.
// Failures of a scheduled run are logged; the next run proceeds as usual.
func (j *ContentSync) Schedule(c *cron.Cron, spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	_, err := c.AddFunc(spec, func() {
		if _, err := j.Run(context.Background()); err != nil {
			j.logger.Error("scheduled content sync failed", zap.String("file", j.path), zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule content sync: %w", err)
	}
	return nil
}

// NextRun returns the first run time of spec after from
func NextRun(spec string, from time.Time) (time.Time, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron expression: %w", err)
	}
	return schedule.Next(from), nil
}
