package websocket

import (
	"encoding/json"
	"time"

	"notes-server/internal/domain"
)

type MessageType string

const (
	TypeNoteCreated MessageType = MessageType(domain.NoteCreated)
	TypeNoteUpdated MessageType = MessageType(domain.NoteUpdated)
	TypeNoteDeleted MessageType = MessageType(domain.NoteDeleted)
	TypePing        MessageType = "ping"
	TypePong        MessageType = "pong"
	TypeError       MessageType = "error"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type NoteDeletePayload struct {
	NoteID string `json:"noteId"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	var payloadBytes json.RawMessage
	if payload != nil {
		bytes, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		payloadBytes = bytes
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Payload:   payloadBytes,
	}, nil
}

// NewNoteEventMessage renders a note event. Created and updated events carry
// the full note, deletions only its id.
func NewNoteEventMessage(event *domain.NoteEvent) (*Message, error) {
	if event.Note == nil {
		return NewMessage(MessageType(event.Type), &NoteDeletePayload{NoteID: event.NoteID})
	}
	return NewMessage(MessageType(event.Type), event.Note)
}

func (m *Message) UnmarshalPayload(v interface{}) error {
	if m.Payload == nil {
		return nil
	}
	return json.Unmarshal(m.Payload, v)
}
