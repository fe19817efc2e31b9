package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"notes-server/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type failingTokenRepo struct {
	err error
}

func (f *failingTokenRepo) Create(digest, userID string) error { return f.err }
func (f *failingTokenRepo) FindUserID(digest string) (string, error) {
	return "", repository.ErrNotFound
}

func TestAuthService_IssueThenResolve(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		svc := NewAuthService(repository.NewTokenRepository())
		userID := rapid.StringMatching(`[A-Za-z0-9_@.\-]{1,40}`).Draw(t, "userID")

		token, err := svc.IssueToken(userID)
		if err != nil {
			t.Fatalf("IssueToken(%q) error = %v", userID, err)
		}

		got, ok := svc.ResolveUser(token)
		if !ok || got != userID {
			t.Fatalf("ResolveUser() = %q, %v; want %q, true", got, ok, userID)
		}
	})
}

func TestAuthService_ResolveUnknown(t *testing.T) {
	svc := NewAuthService(repository.NewTokenRepository())
	for i := 0; i < 3; i++ {
		_, err := svc.IssueToken(fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
	}

	rapid.Check(t, func(t *rapid.T) {
		candidate := rapid.String().Draw(t, "token")

		if userID, ok := svc.ResolveUser(candidate); ok {
			t.Fatalf("ResolveUser(%q) = %q, want absent", candidate, userID)
		}
	})
}

func TestAuthService_ResolveEdgeCases(t *testing.T) {
	svc := NewAuthService(repository.NewTokenRepository())

	token, err := svc.IssueToken("alice")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "upper-cased token", token: strings.ToUpper(token)},
		{name: "token with whitespace", token: " " + token},
		{name: "truncated token", token: token[:len(token)-1]},
		{name: "bearer prefix kept", token: "Bearer " + token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.token == token {
				t.Skip("variant equals the issued token")
			}

			userID, ok := svc.ResolveUser(tt.token)
			assert.False(t, ok)
			assert.Empty(t, userID)
		})
	}
}

func TestAuthService_MultipleTokensPerUser(t *testing.T) {
	svc := NewAuthService(repository.NewTokenRepository())

	first, err := svc.IssueToken("alice")
	require.NoError(t, err)
	second, err := svc.IssueToken("alice")
	require.NoError(t, err)
	other, err := svc.IssueToken("bob")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	for _, token := range []string{first, second} {
		userID, ok := svc.ResolveUser(token)
		assert.True(t, ok)
		assert.Equal(t, "alice", userID)
	}

	userID, ok := svc.ResolveUser(other)
	assert.True(t, ok)
	assert.Equal(t, "bob", userID)
}

// Tokens have no expiry or revocation: they stay valid for the lifetime of
// the token repository.
func TestAuthService_TokensArePermanent(t *testing.T) {
	svc := NewAuthService(repository.NewTokenRepository())

	token, err := svc.IssueToken("alice")
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		_, err := svc.IssueToken(fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
	}

	userID, ok := svc.ResolveUser(token)
	assert.True(t, ok)
	assert.Equal(t, "alice", userID)
}

func TestAuthService_IssueTokenErrors(t *testing.T) {
	tests := []struct {
		name    string
		repo    repository.TokenRepository
		userID  string
		wantErr error
	}{
		{
			name:    "empty user id",
			repo:    repository.NewTokenRepository(),
			userID:  "",
			wantErr: ErrUserIDRequired,
		},
		{
			name:    "whitespace user id",
			repo:    repository.NewTokenRepository(),
			userID:  "   ",
			wantErr: ErrUserIDRequired,
		},
		{
			name:    "token collision",
			repo:    &failingTokenRepo{err: fmt.Errorf("wrapped: %w", repository.ErrAlreadyExists)},
			userID:  "alice",
			wantErr: ErrTokenExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.repo)

			token, err := svc.IssueToken(tt.userID)
			assert.Empty(t, token)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestAuthService_IssueTokenStoreFailure(t *testing.T) {
	storeErr := errors.New("store unavailable")
	svc := NewAuthService(&failingTokenRepo{err: storeErr})

	_, err := svc.IssueToken("alice")
	require.Error(t, err)
	assert.True(t, errors.Is(err, storeErr))
	assert.False(t, errors.Is(err, ErrTokenExists))
}
