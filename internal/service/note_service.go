package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"notes-server/internal/domain"
	"notes-server/internal/repository"

	"github.com/google/uuid"
)

// NoteEventPublisher receives notes that were successfully changed.
type NoteEventPublisher interface {
	PublishNoteEvent(event *domain.NoteEvent)
}

// NoteService validates note input and enforces ownership. Callers pass the
// already-authenticated user id.
type NoteService struct {
	repo      repository.NoteRepository
	publisher NoteEventPublisher

	// serialises read-check-write sequences
	mu  sync.Mutex
	now func() time.Time
}

// NewNoteService builds a NoteService. publisher may be nil.
func NewNoteService(repo repository.NoteRepository, publisher NoteEventPublisher) *NoteService {
	return &NoteService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *NoteService) Create(userID string, req *domain.CreateNoteRequest) (*domain.Note, error) {
	title := req.Title
	if title == nil {
		return nil, newValidationError(MsgTitleRequired)
	}

	trimmed, err := validateNoteFields(title, req.Body)
	if err != nil {
		return nil, err
	}

	body := ""
	if req.Body != nil {
		body = *req.Body
	}

	note := &domain.Note{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     trimmed,
		Body:      body,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	err = s.repo.Create(note)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.publish(domain.NoteCreated, note)

	return note, nil
}

// List returns the user's notes, newest first.
func (s *NoteService) List(userID string) ([]*domain.Note, error) {
	notes, err := s.repo.List(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	// the repository yields newest insertions first, so a stable sort keeps
	// equal timestamps in that order
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})

	return notes, nil
}

// Get looks a note up by id without any ownership check.
func (s *NoteService) Get(noteID string) (*domain.Note, error) {
	return s.find(noteID)
}

func (s *NoteService) Update(noteID, userID string, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.findOwned(noteID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title == nil && req.Body == nil {
		return nil, newValidationError(MsgNoUpdateFields)
	}

	trimmed, err := validateNoteFields(req.Title, req.Body)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = trimmed
	}
	if req.Body != nil {
		note.Body = *req.Body
	}

	now := s.now()
	note.UpdatedAt = &now

	if err := s.repo.Update(note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	s.publish(domain.NoteUpdated, note)

	return note, nil
}

func (s *NoteService) Delete(noteID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.findOwned(noteID, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(note.ID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if s.publisher != nil {
		s.publisher.PublishNoteEvent(&domain.NoteEvent{
			Type:   domain.NoteDeleted,
			UserID: note.UserID,
			NoteID: note.ID,
		})
	}

	return nil
}

func (s *NoteService) find(noteID string) (*domain.Note, error) {
	note, err := s.repo.FindByID(noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return note, nil
}

// findOwned checks existence before ownership.
func (s *NoteService) findOwned(noteID, userID string) (*domain.Note, error) {
	note, err := s.find(noteID)
	if err != nil {
		return nil, err
	}

	if note.UserID != userID {
		return nil, ErrForbidden
	}

	return note, nil
}

func (s *NoteService) publish(eventType domain.NoteEventType, note *domain.Note) {
	if s.publisher == nil {
		return
	}

	s.publisher.PublishNoteEvent(&domain.NoteEvent{
		Type:   eventType,
		UserID: note.UserID,
		NoteID: note.ID,
		Note:   note.Clone(),
	})
}
