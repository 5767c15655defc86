package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/skillhub/backend/internal/auth/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type mockUserResolver struct {
	exists bool
	err    error
	calls  int
}

func (m *mockUserResolver) ExistsByID(ctx context.Context, userID int) (bool, error) {
	m.calls++
	return m.exists, m.err
}

func TestAuthMiddleware(t *testing.T) {
	tg := service.NewTokenGenerator("test-secret", time.Hour)
	validToken, err := tg.GenerateToken(42)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	expiredToken, err := service.NewTokenGenerator("test-secret", -time.Hour).GenerateToken(42)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	tests := []struct {
		name           string
		header         string
		resolver       *mockUserResolver
		expectedStatus int
		expectedBody   string
		expectedCalls  int
	}{
		{
			name:           "valid token",
			header:         "Bearer " + validToken,
			resolver:       &mockUserResolver{exists: true},
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
		},
		{
			name:           "lower case scheme",
			header:         "bearer " + validToken,
			resolver:       &mockUserResolver{exists: true},
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
		},
		{
			name:           "missing header",
			header:         "",
			resolver:       &mockUserResolver{exists: true},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"authentication required"}`,
		},
		{
			name:           "wrong scheme",
			header:         "Basic " + validToken,
			resolver:       &mockUserResolver{exists: true},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"authentication required"}`,
		},
		{
			name:           "garbage token",
			header:         "Bearer not-a-jwt",
			resolver:       &mockUserResolver{exists: true},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid or expired token"}`,
		},
		{
			name:           "expired token",
			header:         "Bearer " + expiredToken,
			resolver:       &mockUserResolver{exists: true},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid or expired token"}`,
		},
		{
			name:           "user no longer exists",
			header:         "Bearer " + validToken,
			resolver:       &mockUserResolver{exists: false},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"user not found"}`,
			expectedCalls:  1,
		},
		{
			name:           "store failure",
			header:         "Bearer " + validToken,
			resolver:       &mockUserResolver{err: errors.New("db down")},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
			expectedCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = GetUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/progress", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			AuthMiddleware(tg, tt.resolver, zap.NewNop())(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCalls, tt.resolver.calls)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, 42, gotUserID)
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	_, ok := GetUserID(context.Background())
	assert.False(t, ok)

	userID, ok := GetUserID(withUserID(context.Background(), 7))
	assert.True(t, ok)
	assert.Equal(t, 7, userID)
}
