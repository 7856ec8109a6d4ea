package auth

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ErrInvalidCredentials is returned for any failed login. The message
// never distinguishes a wrong email from a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Identity is the authenticated admin as seen by clients.
type Identity struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email must be a valid address"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
		),
	)
}

// AuthService checks admin credentials and mints session tokens.
type AuthService interface {
	// Login returns a signed session token for valid admin credentials.
	Login(ctx context.Context, req *LoginRequest) (token string, identity *Identity, err error)
}
