package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"notes-server/internal/domain"
	"notes-server/internal/logger"
	"notes-server/internal/service"
	"notes-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *validator.Validate
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	v := validator.New()
	v.RegisterValidation("notblank", validators.NotBlank)

	return &AuthHandler{
		authService: authService,
		validator:   v,
	}
}

// IssueToken is a mock login: any non-blank user id receives a fresh token.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req domain.IssueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "userId is required")
		return
	}

	token, err := h.authService.IssueToken(req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserIDRequired) {
			response.BadRequest(w, "userId is required")
			return
		}
		logger.Log.Error("failed to issue token", zap.Error(err))
		response.InternalError(w, "Internal server error")
		return
	}

	response.Success(w, &domain.TokenResponse{Token: token})
}
