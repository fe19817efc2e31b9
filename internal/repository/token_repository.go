package repository

import (
	"fmt"
	"sync"
)

// TokenRepository maps token digests to user ids. Raw tokens are never stored.
type TokenRepository interface {
	Create(digest, userID string) error
	FindUserID(digest string) (string, error)
}

type tokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewTokenRepository() TokenRepository {
	return &tokenRepository{
		tokens: make(map[string]string),
	}
}

func (r *tokenRepository) Create(digest, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tokens[digest]; exists {
		return fmt.Errorf("failed to create token: %w", ErrAlreadyExists)
	}

	r.tokens[digest] = userID
	return nil
}

func (r *tokenRepository) FindUserID(digest string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, exists := r.tokens[digest]
	if !exists {
		return "", fmt.Errorf("token not found: %w", ErrNotFound)
	}

	return userID, nil
}
