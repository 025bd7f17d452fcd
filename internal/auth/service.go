// Package auth guards the console with a single operator password and
// short-lived session tokens.
package auth

import (
	"context"
	"log/slog"
	"time"

	"ekoshield/internal/secrets"
	"ekoshield/internal/token"
	"ekoshield/pkg/apierrors"
	"ekoshield/pkg/requestcontext"
)

// SessionTTL bounds how long a console login stays valid.
const SessionTTL = 12 * time.Hour

// Service validates the operator password and mints session tokens.
type Service struct {
	passwordHash string
	tokens       *token.Service
	logger       *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New hashes the configured console password up front so the plaintext is
// not kept in memory past startup.
func New(consolePassword string, tokens *token.Service, opts ...Option) (*Service, error) {
	if tokens == nil {
		return nil, apierrors.New(apierrors.CodeInternal, "token service is required")
	}
	hash, err := secrets.Hash(consolePassword)
	if err != nil {
		return nil, err
	}

	s := &Service{
		passwordHash: hash,
		tokens:       tokens,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Login verifies the password and returns a signed session token.
func (s *Service) Login(ctx context.Context, password string) (string, error) {
	if err := secrets.Verify(password, s.passwordHash); err != nil {
		s.logger.WarnContext(ctx, "console login rejected",
			"request_id", requestcontext.RequestID(ctx),
			"client_ip", requestcontext.ClientIP(ctx),
		)
		return "", apierrors.New(apierrors.CodeUnauthorized, "invalid password")
	}

	sessionToken, err := s.tokens.Generate(SessionTTL)
	if err != nil {
		return "", apierrors.Wrap(err, apierrors.CodeInternal, "could not issue session token")
	}
	return sessionToken, nil
}

// ValidateToken satisfies the middleware token validator.
func (s *Service) ValidateToken(tokenString string) error {
	return s.tokens.ValidateToken(tokenString)
}
