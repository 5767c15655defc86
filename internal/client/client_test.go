package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skillhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ToggleProgress(t *testing.T) {
	var gotAuth, gotStep string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/progress/toggle", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		var req models.ToggleStepRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotStep = req.StepID
		w.Write([]byte(`{"completedSteps":["roadmap-web-1"]}`))
	}))
	defer srv.Close()

	steps, err := New(srv.URL+"/", nil).ToggleProgress(context.Background(), "tok", "roadmap-web-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"roadmap-web-1"}, steps)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "roadmap-web-1", gotStep)
}

func TestClient_APIError(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectedMessage string
	}{
		{name: "error field", status: http.StatusUnauthorized, body: `{"error":"invalid or expired token"}`, expectedMessage: "invalid or expired token"},
		{name: "message field", status: http.StatusBadRequest, body: `{"message":"stepId is required"}`, expectedMessage: "stepId is required"},
		{name: "no body", status: http.StatusInternalServerError, body: ``, expectedMessage: "internal server error"},
		{name: "not json", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, expectedMessage: "bad gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, nil).GetProgress(context.Background(), "tok")

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.expectedMessage, apiErr.Message)
			assert.NotErrorIs(t, err, ErrUnreachable)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).ToggleProgress(context.Background(), "tok", "roadmap-web-1")
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestClient_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL, nil).GetProgress(ctx, "tok")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrUnreachable))
}

func TestClient_Content(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/content/roadmaps":
			w.Write([]byte(`[{"roadmapId":"web","title":"Web","icon":"globe","steps":[{"id":1,"title":"HTML"}]}]`))
		case "/api/content/learning":
			w.Write([]byte(`[{"learningId":"os","title":"OS","icon":"cpu","steps":[]}]`))
		case "/api/content/reviews":
			w.Write([]byte(`[{"id":1,"name":"Priya","course":"Web","quote":"Great"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	c := New(srv.URL, nil)

	roadmaps, err := c.Roadmaps(context.Background())
	require.NoError(t, err)
	require.Len(t, roadmaps, 1)
	assert.Equal(t, "roadmap-web-1", roadmaps[0].StepID(roadmaps[0].Steps[0]))

	learning, err := c.Learning(context.Background())
	require.NoError(t, err)
	require.Len(t, learning, 1)
	assert.Equal(t, models.NamespaceLearning, learning[0].Namespace)
	assert.Equal(t, "os", learning[0].Slug)

	reviews, err := c.Reviews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Priya", reviews[0].Name)
}

func TestClient_Auth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			w.Write([]byte(`{"id":1,"name":"Ada","email":"ada@example.com","completedSteps":["roadmap-web-1"],"token":"tok"}`))
		case "/api/auth/register":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":2,"name":"Bob","email":"bob@example.com","completedSteps":[],"token":"tok2"}`))
		case "/api/auth/update":
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			w.Write([]byte(`{"id":1,"name":"Ada L.","email":"ada@example.com","completedSteps":[]}`))
		case "/api/auth/password":
			w.Write([]byte(`{"message":"password updated successfully"}`))
		}
	}))
	defer srv.Close()
	c := New(srv.URL, nil)
	ctx := context.Background()

	login, err := c.Login(ctx, &models.LoginRequest{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "tok", login.Token)
	assert.Equal(t, []string{"roadmap-web-1"}, login.CompletedSteps)

	reg, err := c.Register(ctx, &models.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, 2, reg.ID)

	name := "Ada L."
	profile, err := c.UpdateProfile(ctx, "tok", &models.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", profile.Name)

	assert.NoError(t, c.ChangePassword(ctx, "tok", &models.ChangePasswordRequest{CurrentPassword: "a", NewPassword: "b"}))
}
