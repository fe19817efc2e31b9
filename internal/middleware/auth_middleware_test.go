package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubResolver struct {
	tokens map[string]string
	calls  int
}

func (s *stubResolver) ResolveUser(token string) (string, bool) {
	s.calls++
	userID, ok := s.tokens[token]
	return userID, ok
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{name: "valid", header: "Bearer abc", want: "abc", wantOK: true},
		{name: "missing", header: "", wantOK: false},
		{name: "no token", header: "Bearer", wantOK: false},
		{name: "empty token", header: "Bearer ", wantOK: false},
		{name: "wrong scheme", header: "Basic abc", wantOK: false},
		{name: "lower-case scheme", header: "bearer abc", wantOK: false},
		{name: "extra parts", header: "Bearer abc def", wantOK: false},
		{name: "double space", header: "Bearer  abc", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BearerToken(tt.header)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		header        string
		wantStatus    int
		wantUserID    string
		wantResolving bool
	}{
		{
			name:          "valid token",
			header:        "Bearer good",
			wantStatus:    http.StatusOK,
			wantUserID:    "alice",
			wantResolving: true,
		},
		{
			name:          "unknown token",
			header:        "Bearer bad",
			wantStatus:    http.StatusUnauthorized,
			wantResolving: true,
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			header:     "Token good",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "extra parts",
			header:     "Bearer good extra",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &stubResolver{tokens: map[string]string{"good": "alice"}}

			var gotUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID = GetUserID(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/notes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(resolver)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUserID, gotUserID)
			assert.Equal(t, tt.wantResolving, resolver.calls > 0)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}

func TestGetUserIDWithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", GetUserID(req))
}
