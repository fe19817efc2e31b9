package domain

import "time"

const (
	MaxTitleLength = 80
	MaxBodyLength  = 500
)

type Note struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Clone returns a deep copy so callers can never mutate stored state.
func (n *Note) Clone() *Note {
	c := *n
	if n.UpdatedAt != nil {
		t := *n.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

// Pointer fields distinguish an omitted value from a blank one.
type CreateNoteRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

type UpdateNoteRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}
