package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"notes-server/internal/domain"
	"notes-server/internal/logger"
	"notes-server/internal/middleware"
	"notes-server/internal/service"
	"notes-server/pkg/response"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type NoteHandler struct {
	service *service.NoteService
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{
		service: service,
	}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNoteRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.Create(userID, &req)
	if err != nil {
		writeNoteError(w, err, "create")
		return
	}

	response.Created(w, note)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	notes, err := h.service.List(userID)
	if err != nil {
		writeNoteError(w, err, "list")
		return
	}

	response.Success(w, notes)
}

// Get only returns notes owned by the caller; NoteService.Get itself does not
// filter single-note reads.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	note, err := h.service.Get(noteID)
	if err != nil {
		writeNoteError(w, err, "get")
		return
	}

	if note.UserID != userID {
		writeNoteError(w, service.ErrForbidden, "get")
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	var req domain.UpdateNoteRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.Update(noteID, userID, &req)
	if err != nil {
		writeNoteError(w, err, "update")
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	if err := h.service.Delete(noteID, userID); err != nil {
		writeNoteError(w, err, "delete")
		return
	}

	response.NoContent(w)
}

// decodeBody treats an empty body as an empty JSON object.
func decodeBody(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeNoteError(w http.ResponseWriter, err error, action string) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(w, validationErr.Message)
	case errors.Is(err, service.ErrNoteNotFound):
		response.NotFound(w, "Note not found")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(w, "Forbidden")
	default:
		logger.Log.Error("note operation failed", zap.String("action", action), zap.Error(err))
		response.InternalError(w, "Internal server error")
	}
}
