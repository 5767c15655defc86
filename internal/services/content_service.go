package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillhub/backend/internal/models"
	"github.com/skillhub/backend/internal/seed"
	"go.uber.org/zap"
)

// ContentRepository is the interface that wraps methods for content tables data access
type ContentRepository interface {
	// Method ListByNamespace returns all content items of the namespace with their steps and links.
	//
	// The result is never nil on success.
	ListByNamespace(ctx context.Context, ns models.Namespace) ([]models.Content, error)
	// Method Upsert creates or replaces the content item identified by namespace and slug.
	//
	// Steps and links of an existing item are replaced as a whole. The ID of "content" is set on success.
	Upsert(ctx context.Context, content *models.Content) error
}

// ReviewRepository is the interface that wraps methods for Reviews table data access
type ReviewRepository interface {
	// Method GetAll returns all reviews ordered by ID.
	GetAll(ctx context.Context) ([]models.Review, error)
	// Method CreateIfMissing inserts the review unless one with the same name and course exists.
	//
	// It reports whether a row was inserted.
	CreateIfMissing(ctx context.Context, review *models.Review) (bool, error)
}

// SeedResult summarizes what a seed run wrote
type SeedResult struct {
	Contents       int
	Steps          int
	ReviewsCreated int
	ReviewsSkipped int
}

// contentService implements ContentService
type contentService struct {
	contentRepo ContentRepository
	reviewRepo  ReviewRepository
	logger      *zap.Logger
}

// NewContentService creates a new content service
func NewContentService(contentRepo ContentRepository, reviewRepo ReviewRepository, logger *zap.Logger) *contentService {
	return &contentService{
		contentRepo: contentRepo,
		reviewRepo:  reviewRepo,
		logger:      logger,
	}
}

// ListRoadmaps returns all roadmaps
func (s *contentService) ListRoadmaps(ctx context.Context) ([]models.Content, error) {
	return s.list(ctx, models.NamespaceRoadmap)
}

// ListLearning returns all learning items
func (s *contentService) ListLearning(ctx context.Context) ([]models.Content, error) {
	return s.list(ctx, models.NamespaceLearning)
}

// ListReviews returns all reviews
func (s *contentService) ListReviews(ctx context.Context) ([]models.Review, error) {
	return s.reviewRepo.GetAll(ctx)
}

func (s *contentService) list(ctx context.Context, ns models.Namespace) ([]models.Content, error) {
	items, err := s.contentRepo.ListByNamespace(ctx, ns)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].Icon = models.ResolveIcon(string(items[i].Icon))
	}
	return items, nil
}

// Seed writes the content and reviews of a seed document.
// The whole document is validated before anything is written.
func (s *contentService) Seed(ctx context.Context, doc *seed.Document) (*SeedResult, error) {
	contents := doc.Contents()
	if err := validateContents(contents); err != nil {
		return nil, err
	}

	reviews := doc.ReviewModels()
	for i, r := range reviews {
		if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Course) == "" {
			return nil, fmt.Errorf("review %d: name and course are required: %w", i+1, models.ErrInvalidRequest)
		}
	}

	result := &SeedResult{}
	for i := range contents {
		if err := s.contentRepo.Upsert(ctx, &contents[i]); err != nil {
			return nil, fmt.Errorf("failed to seed %s %q: %w", contents[i].Namespace, contents[i].Slug, err)
		}
		result.Contents++
		result.Steps += len(contents[i].Steps)
	}

	for i := range reviews {
		created, err := s.reviewRepo.CreateIfMissing(ctx, &reviews[i])
		if err != nil {
			return nil, fmt.Errorf("failed to seed review of %q: %w", reviews[i].Name, err)
		}
		if created {
			result.ReviewsCreated++
		} else {
			result.ReviewsSkipped++
		}
	}

	s.logger.Info("content seeded",
		zap.Int("contents", result.Contents),
		zap.Int("steps", result.Steps),
		zap.Int("reviewsCreated", result.ReviewsCreated),
		zap.Int("reviewsSkipped", result.ReviewsSkipped),
	)
	return result, nil
}

// validateContents checks the fields Step Identifiers are built from.
// A step number must stay unique and positive within its item.
func validateContents(contents []models.Content) error {
	seen := make(map[models.Namespace]map[string]bool)
	for _, c := range contents {
		if strings.TrimSpace(c.Slug) == "" {
			return fmt.Errorf("%s %q: id is required: %w", c.Namespace, c.Title, models.ErrInvalidRequest)
		}
		if strings.TrimSpace(c.Title) == "" {
			return fmt.Errorf("%s %q: title is required: %w", c.Namespace, c.Slug, models.ErrInvalidRequest)
		}
		if seen[c.Namespace] == nil {
			seen[c.Namespace] = make(map[string]bool)
		}
		if seen[c.Namespace][c.Slug] {
			return fmt.Errorf("%s %q appears twice: %w", c.Namespace, c.Slug, models.ErrInvalidRequest)
		}
		seen[c.Namespace][c.Slug] = true

		steps := make(map[int]bool, len(c.Steps))
		for _, step := range c.Steps {
			if step.ID <= 0 {
				return fmt.Errorf("%s %q: step id %d must be positive: %w", c.Namespace, c.Slug, step.ID, models.ErrInvalidRequest)
			}
			if steps[step.ID] {
				return fmt.Errorf("%s %q: duplicate step id %d: %w", c.Namespace, c.Slug, step.ID, models.ErrInvalidRequest)
			}
			steps[step.ID] = true
		}
	}
	return nil
}
