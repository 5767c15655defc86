package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skillhub/backend/internal/models"
	"go.uber.org/zap"
)

// contentRepository implements ContentRepository
type contentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewContentRepository creates a new content repository
func NewContentRepository(db *sql.DB, logger *zap.Logger) *contentRepository {
	return &contentRepository{
		db:     db,
		logger: logger,
	}
}

// ListByNamespace returns every content item of the namespace with its steps and links.
// Items are ordered by ID, steps by position and links by position within their kind.
func (r *contentRepository) ListByNamespace(ctx context.Context, ns models.Namespace) ([]models.Content, error) {
	query := `
		SELECT c.id, c.slug, c.title, c.description, c.icon,
			s.id, s.step_number, s.title, s.description,
			l.kind, l.name, l.url
		FROM contents c
		LEFT JOIN content_steps s ON s.content_id = c.id
		LEFT JOIN step_links l ON l.step_row_id = s.id
		WHERE c.namespace = ?
		ORDER BY c.id, s.position, s.id, l.kind, l.position, l.id
	`

	rows, err := r.db.QueryContext(ctx, query, ns)
	if err != nil {
		r.logger.Error("failed to query content", zap.Error(err), zap.String("namespace", string(ns)))
		return nil, fmt.Errorf("failed to query content: %w", err)
	}
	defer rows.Close()

	items := []models.Content{}
	var (
		current   *models.Content
		lastStep  int64
		stepIndex = -1
	)

	for rows.Next() {
		var (
			contentID                      int
			slug, title, description, icon string
			stepRowID, stepNumber          sql.NullInt64
			stepTitle, stepDescription     sql.NullString
			linkKind, linkName, linkURL    sql.NullString
		)
		if err := rows.Scan(
			&contentID, &slug, &title, &description, &icon,
			&stepRowID, &stepNumber, &stepTitle, &stepDescription,
			&linkKind, &linkName, &linkURL,
		); err != nil {
			r.logger.Error("failed to scan content row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan content row: %w", err)
		}

		if current == nil || current.ID != contentID {
			items = append(items, models.Content{
				ID:          contentID,
				Namespace:   ns,
				Slug:        slug,
				Title:       title,
				Description: description,
				Icon:        models.Icon(icon),
				Steps:       []models.Step{},
			})
			current = &items[len(items)-1]
			lastStep = 0
			stepIndex = -1
		}

		if !stepRowID.Valid {
			continue
		}
		if stepRowID.Int64 != lastStep {
			current.Steps = append(current.Steps, models.Step{
				ID:          int(stepNumber.Int64),
				Title:       stepTitle.String,
				Description: stepDescription.String,
				Resources:   []models.Link{},
				Assignments: []models.Link{},
			})
			lastStep = stepRowID.Int64
			stepIndex = len(current.Steps) - 1
		}

		if !linkKind.Valid {
			continue
		}
		step := &current.Steps[stepIndex]
		link := models.Link{Name: linkName.String, URL: linkURL.String}
		switch models.LinkKind(linkKind.String) {
		case models.LinkKindResource:
			step.Resources = append(step.Resources, link)
		case models.LinkKindAssignment:
			step.Assignments = append(step.Assignments, link)
		}
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("failed to iterate content rows", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate content rows: %w", err)
	}

	return items, nil
}

// Upsert creates or replaces a content item identified by namespace and slug.
// Its steps and links are replaced as a whole inside one transaction.
func (r *contentRepository) Upsert(ctx context.Context, content *models.Content) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// LAST_INSERT_ID(id) makes LastInsertId return the existing row's ID on update
	result, err := tx.ExecContext(ctx, `
		INSERT INTO contents (namespace, slug, title, description, icon)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id), title = VALUES(title), description = VALUES(description), icon = VALUES(icon)
	`, content.Namespace, content.Slug, content.Title, content.Description, content.Icon)
	if err != nil {
		r.logger.Error("failed to upsert content", zap.Error(err), zap.String("slug", content.Slug))
		return fmt.Errorf("failed to upsert content: %w", err)
	}

	contentID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get content id: %w", err)
	}
	content.ID = int(contentID)

	// Links go with their steps (ON DELETE CASCADE)
	if _, err := tx.ExecContext(ctx, `DELETE FROM content_steps WHERE content_id = ?`, contentID); err != nil {
		r.logger.Error("failed to clear content steps", zap.Error(err), zap.String("slug", content.Slug))
		return fmt.Errorf("failed to clear content steps: %w", err)
	}

	for position, step := range content.Steps {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO content_steps (content_id, step_number, position, title, description)
			VALUES (?, ?, ?, ?, ?)
		`, contentID, step.ID, position, step.Title, step.Description)
		if err != nil {
			r.logger.Error("failed to insert step", zap.Error(err), zap.String("slug", content.Slug), zap.Int("step", step.ID))
			return fmt.Errorf("failed to insert step %d: %w", step.ID, err)
		}

		stepRowID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get step id: %w", err)
		}

		if err := insertLinks(ctx, tx, stepRowID, models.LinkKindResource, step.Resources); err != nil {
			return err
		}
		if err := insertLinks(ctx, tx, stepRowID, models.LinkKindAssignment, step.Assignments); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("failed to commit content upsert", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertLinks(ctx context.Context, tx *sql.Tx, stepRowID int64, kind models.LinkKind, links []models.Link) error {
	for position, link := range links {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO step_links (step_row_id, kind, position, name, url)
			VALUES (?, ?, ?, ?, ?)
		`, stepRowID, kind, position, link.Name, link.URL); err != nil {
			return fmt.Errorf("failed to insert %s link: %w", kind, err)
		}
	}
	return nil
}
