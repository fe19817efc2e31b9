package repository

import (
	"errors"
	"fmt"
	"sync"

	"notes-server/internal/domain"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

type NoteRepository interface {
	Create(note *domain.Note) error
	FindByID(id string) (*domain.Note, error)
	List(userID string) ([]*domain.Note, error)
	Update(note *domain.Note) error
	Delete(id string) error
}

type noteRepository struct {
	mu    sync.RWMutex
	notes map[string]*domain.Note
	// insertion order, used to keep List deterministic
	order []string
}

func NewNoteRepository() NoteRepository {
	return &noteRepository{
		notes: make(map[string]*domain.Note),
	}
}

func (r *noteRepository) Create(note *domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[note.ID]; exists {
		return fmt.Errorf("failed to create note %s: %w", note.ID, ErrAlreadyExists)
	}

	r.notes[note.ID] = note.Clone()
	r.order = append(r.order, note.ID)
	return nil
}

func (r *noteRepository) FindByID(id string) (*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, exists := r.notes[id]
	if !exists {
		return nil, fmt.Errorf("failed to find note %s: %w", id, ErrNotFound)
	}

	return note.Clone(), nil
}

// List returns the user's notes, most recently inserted first.
func (r *noteRepository) List(userID string) ([]*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]*domain.Note, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		note := r.notes[r.order[i]]
		if note.UserID == userID {
			notes = append(notes, note.Clone())
		}
	}

	return notes, nil
}

func (r *noteRepository) Update(note *domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[note.ID]; !exists {
		return fmt.Errorf("failed to update note %s: %w", note.ID, ErrNotFound)
	}

	r.notes[note.ID] = note.Clone()
	return nil
}

func (r *noteRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[id]; !exists {
		return fmt.Errorf("failed to delete note %s: %w", id, ErrNotFound)
	}

	delete(r.notes, id)
	for i, noteID := range r.order {
		if noteID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}
