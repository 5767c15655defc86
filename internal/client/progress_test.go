package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/skillhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

// mockProgressAPI answers toggles from a server-side set unless err is set
type mockProgressAPI struct {
	mu     sync.Mutex
	server []string
	err    error
	calls  int
	// during runs inside ToggleProgress before it answers
	during func()
}

func (m *mockProgressAPI) GetProgress(ctx context.Context, token string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return slices.Clone(m.server), nil
}

func (m *mockProgressAPI) ToggleProgress(ctx context.Context, token, stepID string) ([]string, error) {
	if m.during != nil {
		m.during()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if i := slices.Index(m.server, stepID); i >= 0 {
		m.server = slices.Delete(m.server, i, i+1)
	} else {
		m.server = append(m.server, stepID)
	}
	return slices.Clone(m.server), nil
}

func TestProgressController_Load(t *testing.T) {
	api := &mockProgressAPI{server: []string{"roadmap-web-2", "learning-os-1"}}
	c := NewProgressController(api, staticToken("tok"), zap.NewNop(), nil)

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, []string{"learning-os-1", "roadmap-web-2"}, c.Completed())
	assert.Equal(t, 2, c.Count())

	signedOut := NewProgressController(api, staticToken(""), zap.NewNop(), nil)
	assert.ErrorIs(t, signedOut.Load(context.Background()), ErrLoginRequired)
	assert.Zero(t, signedOut.Count())
}

func TestProgressController_Toggle(t *testing.T) {
	t.Run("no token asks for login and mutates nothing", func(t *testing.T) {
		api := &mockProgressAPI{}
		asked := 0
		c := NewProgressController(api, staticToken(""), zap.NewNop(), func() { asked++ })

		err := c.Toggle(context.Background(), "roadmap-web-1")

		assert.ErrorIs(t, err, ErrLoginRequired)
		assert.Equal(t, 1, asked)
		assert.False(t, c.IsCompleted("roadmap-web-1"))
		assert.Zero(t, api.calls)
	})

	t.Run("optimistic before the response", func(t *testing.T) {
		api := &mockProgressAPI{}
		c := NewProgressController(api, staticToken("tok"), zap.NewNop(), nil)
		var seen bool
		api.during = func() { seen = c.IsCompleted("roadmap-web-1") }

		require.NoError(t, c.Toggle(context.Background(), "roadmap-web-1"))

		assert.True(t, seen)
		assert.True(t, c.IsCompleted("roadmap-web-1"))
	})

	t.Run("success reconciles with the server set", func(t *testing.T) {
		api := &mockProgressAPI{server: []string{"learning-os-1"}}
		c := NewProgressController(api, staticToken("tok"), zap.NewNop(), nil)

		require.NoError(t, c.Toggle(context.Background(), "roadmap-web-1"))

		// learning-os-1 was completed in another session and shows up after reconciliation
		assert.Equal(t, []string{"learning-os-1", "roadmap-web-1"}, c.Completed())
	})

	t.Run("error response flips back", func(t *testing.T) {
		apiErr := &APIError{StatusCode: 400, Message: "stepId is required"}
		api := &mockProgressAPI{err: apiErr}
		asked := 0
		c := NewProgressController(api, staticToken("tok"), zap.NewNop(), func() { asked++ })

		err := c.Toggle(context.Background(), "roadmap-web-1")

		assert.ErrorIs(t, err, apiErr)
		assert.False(t, c.IsCompleted("roadmap-web-1"))
		assert.Zero(t, asked)
	})

	t.Run("401 flips back and asks for login", func(t *testing.T) {
		api := &mockProgressAPI{err: &APIError{StatusCode: 401, Message: "invalid or expired token"}}
		asked := 0
		c := NewProgressController(api, staticToken("expired"), zap.NewNop(), func() { asked++ })

		err := c.Toggle(context.Background(), "roadmap-web-1")

		assert.Error(t, err)
		assert.False(t, c.IsCompleted("roadmap-web-1"))
		assert.Equal(t, 1, asked)
	})

	t.Run("network failure keeps optimistic state and is logged", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		api := &mockProgressAPI{err: fmt.Errorf("%w: dial tcp: connection refused", ErrUnreachable)}
		c := NewProgressController(api, staticToken("tok"), zap.New(core), nil)

		err := c.Toggle(context.Background(), "roadmap-web-1")

		assert.NoError(t, err)
		assert.True(t, c.IsCompleted("roadmap-web-1"))
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "roadmap-web-1", logs.All()[0].ContextMap()["stepId"])
	})

	t.Run("other failures flip back", func(t *testing.T) {
		api := &mockProgressAPI{err: errors.New("failed to decode response")}
		c := NewProgressController(api, staticToken("tok"), zap.NewNop(), nil)

		assert.Error(t, c.Toggle(context.Background(), "roadmap-web-1"))
		assert.False(t, c.IsCompleted("roadmap-web-1"))
	})

	t.Run("scenario", func(t *testing.T) {
		api := &mockProgressAPI{}
		c := NewProgressController(api, staticToken("tok"), zap.NewNop(), nil)

		require.NoError(t, c.Toggle(context.Background(), "roadmap-web-1"))
		assert.Equal(t, []string{"roadmap-web-1"}, c.Completed())
		require.NoError(t, c.Toggle(context.Background(), "roadmap-web-1"))
		assert.Empty(t, c.Completed())
	})
}

func TestProgressController_Percent(t *testing.T) {
	api := &mockProgressAPI{server: []string{"a", "b", "c"}}
	c := NewProgressController(api, staticToken("tok"), zap.NewNop(), nil)
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, 0, c.Percent(0))
	assert.Equal(t, 43, c.Percent(7))
	assert.Equal(t, 100, c.Percent(3))
}

func TestProgressController_ContentProgress(t *testing.T) {
	api := &mockProgressAPI{server: []string{"roadmap-web-1", "roadmap-web-3", "learning-web-2"}}
	c := NewProgressController(api, staticToken("tok"), zap.NewNop(), nil)
	require.NoError(t, c.Load(context.Background()))

	web := &models.Content{
		Namespace: models.NamespaceRoadmap,
		Slug:      "web",
		Steps:     []models.Step{{ID: 1}, {ID: 2}, {ID: 3}},
	}
	done, total, percent := c.ContentProgress(web)
	assert.Equal(t, 2, done)
	assert.Equal(t, 3, total)
	assert.Equal(t, 67, percent)

	done, total, percent = c.ContentProgress(&models.Content{Namespace: models.NamespaceLearning, Slug: "empty"})
	assert.Zero(t, done)
	assert.Zero(t, total)
	assert.Zero(t, percent)
}

func TestProgressController_MirrorMatchesServer(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		api := &mockProgressAPI{}
		c := NewProgressController(api, staticToken("tok"), zap.NewNop(), nil)
		ids := rapid.SliceOfN(rapid.SampledFrom([]string{"roadmap-web-1", "roadmap-web-2", "learning-os-1"}), 1, 20).Draw(t, "ids")

		for _, id := range ids {
			before := c.IsCompleted(id)
			if err := c.Toggle(context.Background(), id); err != nil {
				t.Fatalf("toggle %q: %v", id, err)
			}
			if c.IsCompleted(id) == before {
				t.Fatalf("%q did not flip", id)
			}
		}

		server := slices.Clone(api.server)
		slices.Sort(server)
		if !slices.Equal(server, c.Completed()) {
			t.Fatalf("mirror %v differs from server %v", c.Completed(), server)
		}
	})
}

func TestProgressController_FailedTogglesLeaveMirrorUnchanged(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.SliceOfDistinct(rapid.SampledFrom([]string{"roadmap-web-1", "roadmap-web-2", "learning-os-1"}), func(s string) string { return s }).Draw(t, "initial")
		api := &mockProgressAPI{server: initial}
		c := NewProgressController(api, staticToken("tok"), zap.NewNop(), nil)
		if err := c.Load(context.Background()); err != nil {
			t.Fatalf("load: %v", err)
		}
		before := c.Completed()

		api.err = &APIError{StatusCode: 500, Message: "internal server error"}
		id := rapid.SampledFrom([]string{"roadmap-web-1", "roadmap-web-2", "learning-os-1"}).Draw(t, "id")
		if err := c.Toggle(context.Background(), id); err == nil {
			t.Fatalf("expected error")
		}

		if !slices.Equal(before, c.Completed()) {
			t.Fatalf("mirror changed from %v to %v", before, c.Completed())
		}
	})
}
