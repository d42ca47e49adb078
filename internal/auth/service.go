package auth

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-menu-service/internal/apperror"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Authenticator checks credentials against the single configured administrator.
type Authenticator struct {
	email        string
	passwordHash []byte
	tokens       *TokenManager
	logger       logger.ZapLogger
}

func NewAuthenticator(email, passwordHash string, tokens *TokenManager, log logger.ZapLogger) *Authenticator {
	return &Authenticator{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
		logger:       log,
	}
}

func (a *Authenticator) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(a.passwordHash) == 0 {
		a.logger.Warn("admin login attempted but no password hash is configured")
		return nil, apperror.Unauthorized("invalid credentials")
	}

	// compare first so an unknown email takes as long as a wrong password
	err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	if err != nil || email != a.email {
		a.logger.Info("admin login rejected", zap.String("email", email))
		return nil, apperror.Unauthorized("invalid credentials")
	}

	token, expiresAt, err := a.tokens.Issue(a.email, RoleAdmin)
	if err != nil {
		return nil, err
	}
	a.logger.Info("admin logged in", zap.String("email", a.email))
	return &LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}
