package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockwise/inventory-system/internal/api/metrics"
	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

// LoginGuard throttles brute-force attempts (Redis-backed in production).
// Guard failures must not block logins: callers fail open.
type LoginGuard interface {
	IsLocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements credential verification and token issuance.
// Registration delegates to the user service.
type AuthService struct {
	users     ports.UserRepository
	userSvc   ports.UserService
	guard     LoginGuard
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	userSvc ports.UserService,
	guard LoginGuard,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		userSvc:   userSvc,
		guard:     guard,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Login verifies username+password and returns a signed token embedding the
// identity and role claims. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.guard != nil {
		locked, err := s.guard.IsLocked(ctx, username)
		if err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("login guard check failed, allowing attempt")
		} else if locked {
			metrics.LoginsTotal.WithLabelValues("locked").Inc()
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Enabled {
		metrics.LoginsTotal.WithLabelValues("disabled").Inc()
		return nil, domain.ErrAccountDisabled
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	if s.guard != nil {
		if err := s.guard.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("failed to reset login guard")
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("username", user.Username).Msg("login succeeded")

	return &ports.LoginResult{
		Token:    token,
		Username: user.Username,
		Roles:    user.Roles,
	}, nil
}

// Register creates a new account through the user service.
func (s *AuthService) Register(ctx context.Context, input ports.CreateUserInput) (*ports.UserResult, error) {
	return s.userSvc.Create(ctx, input)
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	if s.guard == nil {
		return
	}
	if err := s.guard.RecordFailure(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"roles":    user.Roles,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
