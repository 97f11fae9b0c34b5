package types

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

type ErrorMessage struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Msg string `json:"msg"`
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 50), validation.Match(usernamePattern)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	Username         string `json:"username"`
	IsAdmin          bool   `json:"is_admin"`
	IsView           bool   `json:"is_view"`
	HasPasswordReset bool   `json:"has_password_reset"`
	IsAkg            bool   `json:"is_akg"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NewPassword, validation.Required, validation.Length(5, 100)),
	)
}
