package handler

import (
	"net/http"

	"notes-server/internal/config"
	"notes-server/internal/middleware"
	"notes-server/internal/service"
	"notes-server/internal/websocket"
	"notes-server/pkg/response"

	"github.com/gorilla/mux"
)

// NewRouter wires every route. wsManager may be nil, in which case /ws is not
// served.
func NewRouter(cfg *config.Config, authService *service.AuthService, noteService *service.NoteService, wsManager *websocket.Manager) *mux.Router {
	authHandler := NewAuthHandler(authService)
	noteHandler := NewNoteHandler(noteService)

	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/token", authHandler.IssueToken).Methods("POST", "OPTIONS")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(authService))

	protected.HandleFunc("/notes", noteHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes", noteHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Update).Methods("PUT", "PATCH", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Delete).Methods("DELETE", "OPTIONS")

	if wsManager != nil {
		wsHandler := NewWebSocketHandler(wsManager, authService, cfg.WebSocket)
		r.HandleFunc("/ws", wsHandler.HandleConnection).Methods("GET")
	}

	r.HandleFunc("/health", healthHandler).Methods("GET")

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{
		"status":  "healthy",
		"service": "notes-server",
	})
}
