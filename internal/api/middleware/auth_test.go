package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func runAuth(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, rec, handler(c)
}

func TestAuth_ValidToken(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{
		"username": "alice",
		"roles":    []string{domain.RoleManager, domain.RoleUser},
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	c, _, err := runAuth(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if got, _ := c.Get("username").(string); got != "alice" {
		t.Errorf("username claim: want %q, got %q", "alice", got)
	}
	roles, _ := c.Get("roles").([]string)
	if len(roles) != 2 || roles[0] != domain.RoleManager || roles[1] != domain.RoleUser {
		t.Errorf("roles claim: got %v", roles)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, _, err := runAuth(t, "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	_, _, err := runAuth(t, "Token abc123")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	token := signedToken(t, "other-secret", jwt.MapClaims{
		"username": "alice",
		"roles":    []string{domain.RoleUser},
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	_, _, err := runAuth(t, "Bearer "+token)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{
		"username": "alice",
		"roles":    []string{domain.RoleUser},
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})

	_, _, err := runAuth(t, "Bearer "+token)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
