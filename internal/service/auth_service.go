package service

import (
	"errors"
	"fmt"
	"strings"

	"notes-server/internal/repository"
	"notes-server/pkg/hash"

	"github.com/google/uuid"
)

// AuthService issues opaque bearer tokens and resolves them back to user ids.
// Tokens never expire and cannot be revoked; they live as long as the token
// repository does.
type AuthService struct {
	tokenRepo repository.TokenRepository
}

func NewAuthService(tokenRepo repository.TokenRepository) *AuthService {
	return &AuthService{
		tokenRepo: tokenRepo,
	}
}

func (s *AuthService) IssueToken(userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", ErrUserIDRequired
	}

	token, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.tokenRepo.Create(hash.TokenDigest(token.String()), userID); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return "", ErrTokenExists
		}
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return token.String(), nil
}

// ResolveUser reports the user a token was issued to. Unknown tokens are a
// normal outcome, not an error.
func (s *AuthService) ResolveUser(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	userID, err := s.tokenRepo.FindUserID(hash.TokenDigest(token))
	if err != nil {
		return "", false
	}

	return userID, true
}
