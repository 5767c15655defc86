package client

import (
	"context"
	"errors"
	"math"
	"net/http"
	"sort"
	"sync"

	"github.com/skillhub/backend/internal/models"
	"go.uber.org/zap"
)

// ProgressAPI is the part of the API the progress controller talks to
type ProgressAPI interface {
	GetProgress(ctx context.Context, token string) ([]string, error)
	ToggleProgress(ctx context.Context, token, stepID string) ([]string, error)
}

// TokenSource supplies the current bearer token, "" when signed out
type TokenSource interface {
	Token() string
}

// ProgressController keeps a local mirror of the user's completion set.
//
// Toggles are applied to the mirror before the request is sent. A successful
// response replaces the mirror with the server's set; an error response flips
// the step back; a transport failure leaves the optimistic state in place.
// The mirror lock is never held during a request, so a second toggle may
// interleave with the reconciliation of the first.
type ProgressController struct {
	api            ProgressAPI
	tokens         TokenSource
	logger         *zap.Logger
	onAuthRequired func()

	mu        sync.Mutex
	completed map[string]struct{}
}

// NewProgressController creates a controller with an empty mirror.
// onAuthRequired is called when a toggle needs a sign-in; it may be nil.
func NewProgressController(api ProgressAPI, tokens TokenSource, logger *zap.Logger, onAuthRequired func()) *ProgressController {
	return &ProgressController{
		api:            api,
		tokens:         tokens,
		logger:         logger,
		onAuthRequired: onAuthRequired,
		completed:      make(map[string]struct{}),
	}
}

// Load replaces the mirror with the server's completion set.
// Without a token the mirror is cleared and ErrLoginRequired returned.
func (c *ProgressController) Load(ctx context.Context) error {
	token := c.tokens.Token()
	if token == "" {
		c.replace(nil)
		return ErrLoginRequired
	}

	steps, err := c.api.GetProgress(ctx, token)
	if err != nil {
		return err
	}
	c.replace(steps)
	return nil
}

// Toggle flips stepID optimistically and reconciles with the server
func (c *ProgressController) Toggle(ctx context.Context, stepID string) error {
	token := c.tokens.Token()
	if token == "" {
		c.authRequired()
		return ErrLoginRequired
	}

	c.flip(stepID)

	steps, err := c.api.ToggleProgress(ctx, token, stepID)
	if err == nil {
		c.replace(steps)
		return nil
	}

	if errors.Is(err, ErrUnreachable) {
		c.logger.Warn("progress toggle not delivered, keeping local state",
			zap.String("stepId", stepID),
			zap.Error(err),
		)
		return nil
	}

	// Compensating flip; only exact if nothing else touched stepID meanwhile
	c.flip(stepID)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		c.authRequired()
	}
	return err
}

// IsCompleted reports whether stepID is in the mirror
func (c *ProgressController) IsCompleted(stepID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.completed[stepID]
	return ok
}

// Completed returns the mirrored set, sorted
func (c *ProgressController) Completed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	steps := make([]string, 0, len(c.completed))
	for id := range c.completed {
		steps = append(steps, id)
	}
	sort.Strings(steps)
	return steps
}

// Count returns the number of completed steps
func (c *ProgressController) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.completed)
}

// Percent returns the completed share of total as a rounded percentage, 0 when total is 0
func (c *ProgressController) Percent(total int) int {
	return percentOf(c.Count(), total)
}

// ContentProgress counts the completed steps of one content item and returns
// them with the item's step count and rounded percentage
func (c *ProgressController) ContentProgress(content *models.Content) (done, total, percent int) {
	c.mu.Lock()
	for _, step := range content.Steps {
		if _, ok := c.completed[content.StepID(step)]; ok {
			done++
		}
	}
	c.mu.Unlock()

	total = len(content.Steps)
	return done, total, percentOf(done, total)
}

func percentOf(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

func (c *ProgressController) flip(stepID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.completed[stepID]; ok {
		delete(c.completed, stepID)
	} else {
		c.completed[stepID] = struct{}{}
	}
}

func (c *ProgressController) replace(steps []string) {
	set := make(map[string]struct{}, len(steps))
	for _, id := range steps {
		set[id] = struct{}{}
	}
	c.mu.Lock()
	c.completed = set
	c.mu.Unlock()
}

func (c *ProgressController) authRequired() {
	if c.onAuthRequired != nil {
		c.onAuthRequired()
	}
}
