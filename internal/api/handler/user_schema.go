package handler

import (
	"time"

	"github.com/stockwise/inventory-system/internal/core/ports"
)

type registerRequest struct {
	Username string   `json:"username"  validate:"required,min=3,max=50"`
	Email    string   `json:"email"     validate:"required,email"`
	Password string   `json:"password"  validate:"required,min=6,max=100"`
	FullName string   `json:"full_name" validate:"required,max=200"`
	Roles    []string `json:"roles"     validate:"omitempty,dive,oneof=USER MANAGER ADMIN"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string   `json:"token"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

type updateUserRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	FullName string `json:"full_name" validate:"required,max=200"`
	Password string `json:"password"  validate:"omitempty,min=6,max=100"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Enabled   bool      `json:"enabled"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(r *ports.UserResult) userResponse {
	return userResponse{
		ID:        r.ID,
		Username:  r.Username,
		Email:     r.Email,
		FullName:  r.FullName,
		Enabled:   r.Enabled,
		Roles:     r.Roles,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toUserResponses(results []ports.UserResult) []userResponse {
	out := make([]userResponse, 0, len(results))
	for i := range results {
		out = append(out, toUserResponse(&results[i]))
	}
	return out
}
