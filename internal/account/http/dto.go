package http

import (
	"time"

	"github.com/meetroom-labs/zoom-booking-backend/internal/account"
)

// AccountResponse is the JSON shape for a Zoom account. Secret is omitted
// unless the caller is entitled to the credentials.
type AccountResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Login     string    `json:"login"`
	Secret    string    `json:"secret,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewAccountResponse(a *account.Account, includeSecret bool) AccountResponse {
	resp := AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Login:     a.Login,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
	if includeSecret {
		resp.Secret = a.Secret
	}
	return resp
}

// AccountTag is the minimal account reference embedded in other responses.
type AccountTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CreateAccountRequest struct {
	Name   string `json:"name" binding:"required"`
	Login  string `json:"login" binding:"required"`
	Secret string `json:"secret" binding:"required"`
}

type UpdateAccountRequest struct {
	Name     *string `json:"name"`
	Login    *string `json:"login"`
	Secret   *string `json:"secret"`
	IsActive *bool   `json:"is_active"`
}
