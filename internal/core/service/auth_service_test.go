package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

const testSecret = "test-secret"

// stubLoginGuard tracks failures in memory.
type stubLoginGuard struct {
	locked   bool
	failures int
	resets   int
	err      error // if set, every call returns this error
}

func (g *stubLoginGuard) IsLocked(_ context.Context, _ string) (bool, error) {
	return g.locked, g.err
}

func (g *stubLoginGuard) RecordFailure(_ context.Context, _ string) error {
	g.failures++
	return g.err
}

func (g *stubLoginGuard) Reset(_ context.Context, _ string) error {
	g.resets++
	return g.err
}

func newAuthFixture(t *testing.T) (*AuthService, *stubUserRepo, *stubLoginGuard) {
	t.Helper()
	users := newStubUserRepo()
	userSvc := NewUserService(users, newStubRoleRepo(), discardLogger)
	guard := &stubLoginGuard{}
	svc := NewAuthService(users, userSvc, guard, testSecret, time.Hour, discardLogger)
	return svc, users, guard
}

func seedAccount(t *testing.T, users *stubUserRepo, username, password string, roles []string, enabled bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	_, err = users.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Enabled:      enabled,
		Roles:        roles,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login tests
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	svc, users, guard := newAuthFixture(t)
	seedAccount(t, users, "jamie", "s3cret", []string{domain.RoleManager}, true)

	result, err := svc.Login(context.Background(), "jamie", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Username != "jamie" {
		t.Errorf("expected username jamie, got %q", result.Username)
	}
	if guard.resets != 1 {
		t.Errorf("expected guard reset after successful login, got %d resets", guard.resets)
	}

	// The token must carry the identity and role claims.
	token, err := jwt.Parse(result.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token must parse and validate: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["username"] != "jamie" {
		t.Errorf("expected username claim jamie, got %v", claims["username"])
	}
	roles, ok := claims["roles"].([]interface{})
	if !ok || len(roles) != 1 || roles[0] != domain.RoleManager {
		t.Errorf("expected roles claim [MANAGER], got %v", claims["roles"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, users, guard := newAuthFixture(t)
	seedAccount(t, users, "jamie", "s3cret", []string{domain.RoleUser}, true)

	_, err := svc.Login(context.Background(), "jamie", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if guard.failures != 1 {
		t.Errorf("expected 1 recorded failure, got %d", guard.failures)
	}
}

func TestAuthService_Login_UnknownUserIndistinguishable(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown users must look like bad credentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	if _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty username: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "jamie", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	seedAccount(t, users, "jamie", "s3cret", []string{domain.RoleUser}, false)

	_, err := svc.Login(context.Background(), "jamie", "s3cret")
	if !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestAuthService_Login_Locked(t *testing.T) {
	svc, users, guard := newAuthFixture(t)
	seedAccount(t, users, "jamie", "s3cret", []string{domain.RoleUser}, true)
	guard.locked = true

	_, err := svc.Login(context.Background(), "jamie", "s3cret")
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_GuardFailureFailsOpen(t *testing.T) {
	svc, users, guard := newAuthFixture(t)
	seedAccount(t, users, "jamie", "s3cret", []string{domain.RoleUser}, true)
	guard.err = errors.New("redis down")

	// A broken guard must not block a valid login.
	_, err := svc.Login(context.Background(), "jamie", "s3cret")
	if err != nil {
		t.Fatalf("guard failure must fail open: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Register tests
// ---------------------------------------------------------------------------

func TestAuthService_Register_DefaultsToUserRole(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	result, err := svc.Register(context.Background(), ports.CreateUserInput{
		Username: "jamie",
		Email:    "jamie@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Roles) != 1 || result.Roles[0] != domain.RoleUser {
		t.Errorf("expected default roles [USER], got %v", result.Roles)
	}
}

func TestAuthService_Register_ThenLogin(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), ports.CreateUserInput{
		Username: "jamie",
		Email:    "jamie@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "jamie", "s3cret"); err != nil {
		t.Fatalf("login after register failed: %v", err)
	}
}
