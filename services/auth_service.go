package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/tournament-pairing/utils"
)

const defaultTokenTTL = 24 * time.Hour

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
}

type LoginInput struct {
	Password string `json:"password"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type authService struct {
	passwordHash string
	jwtSecret    []byte
	ttl          time.Duration
	now          func() time.Time
	logger       *slog.Logger
}

// NewAuthService checks organizer logins against a single bcrypt hash.
func NewAuthService(passwordHash, jwtSecret string, logger *slog.Logger) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		passwordHash: passwordHash,
		jwtSecret:    []byte(jwtSecret),
		ttl:          defaultTokenTTL,
		now:          time.Now,
		logger:       logger,
	}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidationFailed)
	}
	if !utils.CheckPasswordHash(input.Password, s.passwordHash) {
		s.logger.WarnContext(ctx, "organizer login rejected")
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	token, err := utils.GenerateJWT(s.jwtSecret, utils.RoleOrganizer, s.ttl, now)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: now.Add(s.ttl).UTC()}, nil
}
