package domain

type NoteEventType string

const (
	NoteCreated NoteEventType = "note_created"
	NoteUpdated NoteEventType = "note_updated"
	NoteDeleted NoteEventType = "note_deleted"
)

// NoteEvent describes a completed change to a note. Note is nil for deletions.
type NoteEvent struct {
	Type   NoteEventType
	UserID string
	NoteID string
	Note   *Note
}
