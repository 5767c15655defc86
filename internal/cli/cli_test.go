package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/skillhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "tok"

// fakeAPI serves the subset of the API the CLI calls, for one user with password "secret"
type fakeAPI struct {
	mu      sync.Mutex
	name    string
	steps   []string
	toggles int
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, f.auth(req.Email))
	})
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.name = req.Name
		f.mu.Unlock()
		writeJSON(w, http.StatusCreated, f.auth(req.Email))
	})
	mux.HandleFunc("PUT /api/auth/update", f.guard(func(w http.ResponseWriter, r *http.Request) {
		var req models.UpdateProfileRequest
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		if req.Name != nil {
			f.name = *req.Name
		}
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.auth("ada@example.com").ProfileResponse)
	}))
	mux.HandleFunc("PUT /api/auth/password", f.guard(func(w http.ResponseWriter, r *http.Request) {
		var req models.ChangePasswordRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.CurrentPassword != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "current password is incorrect"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "password updated successfully"})
	}))
	mux.HandleFunc("GET /api/progress", f.guard(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, models.ProgressResponse{CompletedSteps: slices.Clone(f.steps)})
	}))
	mux.HandleFunc("POST /api/progress/toggle", f.guard(func(w http.ResponseWriter, r *http.Request) {
		var req models.ToggleStepRequest
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.toggles++
		if i := slices.Index(f.steps, req.StepID); i >= 0 {
			f.steps = slices.Delete(f.steps, i, i+1)
		} else {
			f.steps = append(f.steps, req.StepID)
		}
		writeJSON(w, http.StatusOK, models.ProgressResponse{CompletedSteps: slices.Clone(f.steps)})
	}))
	mux.HandleFunc("GET /api/content/roadmaps", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Content{{
			Namespace: models.NamespaceRoadmap,
			Slug:      "web",
			Title:     "Web Development",
			Icon:      models.IconGlobe,
			Steps: []models.Step{
				{ID: 1, Title: "HTML", Resources: []models.Link{{Name: "MDN", URL: "https://developer.mozilla.org"}}},
				{ID: 2, Title: "CSS"},
			},
		}})
	})
	mux.HandleFunc("GET /api/content/learning", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Content{})
	})

	return mux
}

func (f *fakeAPI) guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			return
		}
		next(w, r)
	}
}

func (f *fakeAPI) auth(email string) models.AuthResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := f.name
	if name == "" {
		name = "Ada"
	}
	return models.AuthResponse{
		ProfileResponse: models.ProfileResponse{ID: 7, Name: name, Email: email, CompletedSteps: slices.Clone(f.steps)},
		Token:           testToken,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type harness struct {
	t      *testing.T
	api    *fakeAPI
	apiURL string
	state  string
}

func newHarness(t *testing.T) *harness {
	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	return &harness{t: t, api: api, apiURL: srv.URL, state: filepath.Join(t.TempDir(), "state.db")}
}

// run executes one skillhub invocation against the fake API and the shared state file
func (h *harness) run(args ...string) (string, string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--api", h.apiURL, "--state", h.state}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func (h *harness) login() {
	h.t.Helper()
	_, _, err := h.run("login", "--email", "ada@example.com", "--password", "secret")
	require.NoError(h.t, err)
}

func TestLoginWhoamiLogout(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("whoami")
	require.NoError(t, err)
	assert.Equal(t, "Not signed in\n", out)

	out, _, err = h.run("login", "--email", "ada@example.com", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Ada <ada@example.com>")

	out, _, err = h.run("whoami")
	require.NoError(t, err)
	assert.Equal(t, "Ada <ada@example.com> (id 7)\n", out)

	out, _, err = h.run("logout")
	require.NoError(t, err)
	assert.Equal(t, "Signed out\n", out)

	out, _, err = h.run("whoami")
	require.NoError(t, err)
	assert.Equal(t, "Not signed in\n", out)
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("login", "--email", "ada@example.com", "--password", "nope")
	assert.EqualError(t, err, "invalid email or password")

	out, _, err := h.run("whoami")
	require.NoError(t, err)
	assert.Equal(t, "Not signed in\n", out)
}

func TestRegister(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("register", "--name", "Grace", "--email", "grace@example.com", "--password", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Registered and signed in as Grace <grace@example.com>\n", out)
}

func TestToggleAndProgress(t *testing.T) {
	h := newHarness(t)
	h.login()

	out, _, err := h.run("toggle", "roadmap-web-1")
	require.NoError(t, err)
	assert.Equal(t, "roadmap-web-1: completed (1 steps completed)\n", out)

	out, _, err = h.run("toggle", "--namespace", "roadmap", "--content", "web", "--step", "2")
	require.NoError(t, err)
	assert.Equal(t, "roadmap-web-2: completed (2 steps completed)\n", out)

	out, _, err = h.run("toggle", "roadmap-web-1")
	require.NoError(t, err)
	assert.Equal(t, "roadmap-web-1: not completed (1 steps completed)\n", out)

	out, _, err = h.run("progress")
	require.NoError(t, err)
	assert.Contains(t, out, "1 steps completed")
	assert.Regexp(t, `roadmap\s+web\s+Web Development\s+1/2\s+50%`, out)
	assert.Equal(t, 3, h.api.toggles)
}

func TestToggle_MalformedIDNeverSent(t *testing.T) {
	h := newHarness(t)
	h.login()

	_, _, err := h.run("toggle", "roadmap-web")
	require.Error(t, err)
	assert.Zero(t, h.api.toggles)
}

func TestToggle_RequiresLogin(t *testing.T) {
	h := newHarness(t)

	_, errOut, err := h.run("toggle", "roadmap-web-1")
	assert.EqualError(t, err, "not signed in; run skillhub login first")
	assert.Contains(t, errOut, "Please log in")
	assert.Zero(t, h.api.toggles)
}

func TestStepIDFromInput(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		namespace     string
		content       string
		step          int
		expected      string
		expectedError string
	}{
		{name: "argument", args: []string{"learning-go-basics-4"}, expected: "learning-go-basics-4"},
		{name: "flags", namespace: "roadmap", content: "web", step: 3, expected: "roadmap-web-3"},
		{name: "argument and flags", args: []string{"roadmap-web-3"}, step: 3, expectedError: "pass either STEP_ID or --namespace/--content/--step, not both"},
		{name: "empty argument", args: []string{""}, expectedError: "step id is required"},
		{name: "malformed argument", args: []string{"web-3"}, expectedError: `invalid step id "web-3": expected <namespace>-<content>-<step>, e.g. roadmap-web-3`},
		{name: "unknown namespace argument", args: []string{"course-web-3"}, expectedError: `invalid step id "course-web-3": expected <namespace>-<content>-<step>, e.g. roadmap-web-3`},
		{name: "trailing space argument", args: []string{"roadmap-web-3 "}, expectedError: `invalid step id "roadmap-web-3 ": expected <namespace>-<content>-<step>, e.g. roadmap-web-3`},
		{name: "unknown namespace", namespace: "course", content: "web", step: 1, expectedError: `--namespace must be "roadmap" or "learning"`},
		{name: "missing content", namespace: "roadmap", step: 1, expectedError: "--content is required"},
		{name: "zero step", namespace: "roadmap", content: "web", expectedError: "--step must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := stepIDFromInput(tt.args, tt.namespace, tt.content, tt.step)
			if tt.expectedError != "" {
				assert.EqualError(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestPassword(t *testing.T) {
	h := newHarness(t)
	h.login()

	out, _, err := h.run("password", "--current", "secret", "--new", "better")
	require.NoError(t, err)
	assert.Equal(t, "Password updated successfully.\n", out)

	_, _, err = h.run("password", "--current", "wrong", "--new", "better")
	assert.EqualError(t, err, "Current password is incorrect.")
}

func TestProfileUpdate(t *testing.T) {
	h := newHarness(t)
	h.login()

	_, _, err := h.run("profile", "update")
	assert.EqualError(t, err, "nothing to update: pass --name and/or --email")

	out, _, err := h.run("profile", "update", "--name", "Ada L.")
	require.NoError(t, err)
	assert.Equal(t, "Profile updated: Ada L. <ada@example.com>\n", out)

	out, _, err = h.run("whoami")
	require.NoError(t, err)
	assert.Equal(t, "Ada L. <ada@example.com> (id 7)\n", out)
}

func TestContentListing(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("roadmaps")
	require.NoError(t, err)
	assert.Regexp(t, `web\s+Web Development\s+globe\s+2 steps`, out)

	out, _, err = h.run("learning")
	require.NoError(t, err)
	assert.Equal(t, "Nothing here yet\n", out)

	h.login()
	_, _, err = h.run("toggle", "roadmap-web-2")
	require.NoError(t, err)

	out, _, err = h.run("roadmaps", "--steps")
	require.NoError(t, err)
	assert.Contains(t, out, "[ ] roadmap-web-1  HTML")
	assert.Contains(t, out, "resource: MDN https://developer.mozilla.org")
	assert.Contains(t, out, "[x] roadmap-web-2  CSS")
}

func TestUnreachableAPI(t *testing.T) {
	h := newHarness(t)
	h.apiURL = "http://127.0.0.1:1"

	_, _, err := h.run("roadmaps")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot reach the API")
}

func TestSeed_RequiresFile(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("seed")
	assert.Error(t, err)
}
