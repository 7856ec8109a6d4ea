package service

import (
	"context"
	"fmt"
	"strings"

	"jewelry-backend/internal/config"
	"jewelry-backend/internal/domains/auth"
	"jewelry-backend/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	adminEmail   string
	passwordHash []byte
	tokens       *jwt.Manager
}

// NewAuthService hashes the configured admin password once at startup.
// The plaintext never leaves the config layer after this point.
func NewAuthService(cfg *config.AdminConfig, tokens *jwt.Manager) (auth.AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	return &authService{
		adminEmail:   cfg.Email,
		passwordHash: hash,
		tokens:       tokens,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *auth.LoginRequest) (string, *auth.Identity, error) {
	email := strings.TrimSpace(req.Email)

	// Constant failure shape: email and password mismatches are
	// indistinguishable to the caller.
	if !strings.EqualFold(email, s.adminEmail) {
		return "", nil, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		return "", nil, auth.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(s.adminEmail, true)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	return token, &auth.Identity{Email: s.adminEmail, IsAdmin: true}, nil
}
