// Package client talks to the SkillHub API on behalf of a signed-in user.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/skillhub/backend/internal/models"
)

// ErrUnreachable wraps transport failures: the request never produced an HTTP response
var ErrUnreachable = errors.New("server unreachable")

// APIError is a non-2xx response of the API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Client is an HTTP client of the SkillHub API.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL, e.g. "http://localhost:5000"
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Register creates an account
func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login signs in with email and password
func (c *Client) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfile changes name and/or email of the token's user
func (c *Client) UpdateProfile(ctx context.Context, token string, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	var resp models.ProfileResponse
	if err := c.do(ctx, http.MethodPut, "/api/auth/update", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChangePassword replaces the password of the token's user
func (c *Client) ChangePassword(ctx context.Context, token string, req *models.ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPut, "/api/auth/password", token, req, nil)
}

// GetProgress returns the completion set of the token's user
func (c *Client) GetProgress(ctx context.Context, token string) ([]string, error) {
	var resp models.ProgressResponse
	if err := c.do(ctx, http.MethodGet, "/api/progress", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.CompletedSteps, nil
}

// ToggleProgress flips one step and returns the authoritative new set
func (c *Client) ToggleProgress(ctx context.Context, token, stepID string) ([]string, error) {
	var resp models.ProgressResponse
	if err := c.do(ctx, http.MethodPost, "/api/progress/toggle", token, models.ToggleStepRequest{StepID: stepID}, &resp); err != nil {
		return nil, err
	}
	return resp.CompletedSteps, nil
}

// Roadmaps lists all roadmaps
func (c *Client) Roadmaps(ctx context.Context) ([]models.Content, error) {
	var items []models.Content
	if err := c.do(ctx, http.MethodGet, "/api/content/roadmaps", "", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Learning lists all learning items
func (c *Client) Learning(ctx context.Context) ([]models.Content, error) {
	var items []models.Content
	if err := c.do(ctx, http.MethodGet, "/api/content/learning", "", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Reviews lists all reviews
func (c *Client) Reviews(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	if err := c.do(ctx, http.MethodGet, "/api/content/reviews", "", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// newAPIError reads the error message of a failed response.
// The API sends {"error": ...}; {"message": ...} is accepted too.
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Error
		if apiErr.Message == "" {
			apiErr.Message = body.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.ToLower(http.StatusText(resp.StatusCode))
	}
	return apiErr
}
