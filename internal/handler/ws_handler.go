package handler

import (
	"net/http"

	"notes-server/internal/config"
	"notes-server/internal/logger"
	"notes-server/internal/middleware"
	"notes-server/internal/websocket"
	"notes-server/pkg/response"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WebSocketHandler struct {
	manager        *websocket.Manager
	resolver       middleware.TokenResolver
	upgrader       ws.Upgrader
	maxMessageSize int64
}

func NewWebSocketHandler(manager *websocket.Manager, resolver middleware.TokenResolver, cfg config.WebSocketConfig) *WebSocketHandler {
	return &WebSocketHandler{
		manager:  manager,
		resolver: resolver,
		upgrader: ws.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		maxMessageSize: cfg.MaxMessageSize,
	}
}

// HandleConnection accepts the token as a bearer header or, for browsers
// that cannot set headers on upgrades, as the "token" query parameter.
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		var ok bool
		token, ok = middleware.BearerToken(r.Header.Get("Authorization"))
		if !ok {
			response.Unauthorized(w, "Missing or malformed authorization header")
			return
		}
	}

	userID, ok := h.resolver.ResolveUser(token)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Warn("failed to upgrade connection", zap.String("user_id", userID), zap.Error(err))
		return
	}

	client := websocket.NewClient(uuid.New().String(), userID, conn, h.manager)

	h.manager.Register <- client

	go client.WritePump()
	go client.ReadPump(h.maxMessageSize)
}
