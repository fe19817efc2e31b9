package domain

type IssueTokenRequest struct {
	UserID string `json:"userId" validate:"required,notblank"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
