package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID   map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.nextID++
	clone := *u
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byID[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

// stubRoleRepo serves the seeded role catalogue.
type stubRoleRepo struct {
	roles []domain.Role
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: domain.DefaultRoles()}
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			clone := role
			return &clone, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.roles)), nil
}

func (r *stubRoleRepo) CreateAll(_ context.Context, roles []domain.Role) error {
	r.roles = append(r.roles, roles...)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newUserFixture() (*UserService, *stubUserRepo) {
	users := newStubUserRepo()
	return NewUserService(users, newStubRoleRepo(), discardLogger), users
}

func createUserInput(username, email string) ports.CreateUserInput {
	return ports.CreateUserInput{
		Username: username,
		Email:    email,
		Password: "s3cret-pass",
		FullName: "Jamie Doe",
	}
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestUserService_Create_DefaultsToUserRole(t *testing.T) {
	svc, users := newUserFixture()

	result, err := svc.Create(context.Background(), createUserInput("jamie", "jamie@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Roles) != 1 || result.Roles[0] != domain.RoleUser {
		t.Errorf("expected default roles [USER], got %v", result.Roles)
	}
	if !result.Enabled {
		t.Error("new accounts must be enabled")
	}

	stored := users.byID[result.ID]
	if stored.PasswordHash == "s3cret-pass" {
		t.Error("password must not be stored in plain text")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")) != nil {
		t.Error("stored hash must verify against the original password")
	}
}

func TestUserService_Create_ExplicitRoles(t *testing.T) {
	svc, _ := newUserFixture()

	input := createUserInput("jamie", "jamie@example.com")
	input.Roles = []string{domain.RoleManager, domain.RoleAdmin}

	result, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Roles) != 2 {
		t.Fatalf("expected 2 roles, got %v", result.Roles)
	}
}

func TestUserService_Create_UnknownRole(t *testing.T) {
	svc, users := newUserFixture()

	input := createUserInput("jamie", "jamie@example.com")
	input.Roles = []string{"SUPERVISOR"}

	_, err := svc.Create(context.Background(), input)
	if !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
	if len(users.byID) != 0 {
		t.Errorf("expected no stored users, got %d", len(users.byID))
	}
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	svc, _ := newUserFixture()
	_, _ = svc.Create(context.Background(), createUserInput("jamie", "jamie@example.com"))

	_, err := svc.Create(context.Background(), createUserInput("jamie", "other@example.com"))
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	svc, _ := newUserFixture()
	_, _ = svc.Create(context.Background(), createUserInput("jamie", "jamie@example.com"))

	_, err := svc.Create(context.Background(), createUserInput("other", "jamie@example.com"))
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update tests
// ---------------------------------------------------------------------------

func TestUserService_Update_EmptyPasswordKeepsHash(t *testing.T) {
	svc, users := newUserFixture()
	created, _ := svc.Create(context.Background(), createUserInput("jamie", "jamie@example.com"))
	originalHash := users.byID[created.ID].PasswordHash

	_, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{
		Email:    "jamie@example.com",
		FullName: "Jamie D.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users.byID[created.ID].PasswordHash != originalHash {
		t.Error("empty password must not change the stored hash")
	}
}

func TestUserService_Update_NonEmptyPasswordRehashes(t *testing.T) {
	svc, users := newUserFixture()
	created, _ := svc.Create(context.Background(), createUserInput("jamie", "jamie@example.com"))
	originalHash := users.byID[created.ID].PasswordHash

	_, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{
		Email:    "jamie@example.com",
		FullName: "Jamie D.",
		Password: "new-pass-123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	newHash := users.byID[created.ID].PasswordHash
	if newHash == originalHash {
		t.Error("non-empty password must replace the stored hash")
	}
	if bcrypt.CompareHashAndPassword([]byte(newHash), []byte("new-pass-123")) != nil {
		t.Error("new hash must verify against the new password")
	}
}

func TestUserService_Update_EmailConflict(t *testing.T) {
	svc, _ := newUserFixture()
	_, _ = svc.Create(context.Background(), createUserInput("jamie", "jamie@example.com"))
	second, _ := svc.Create(context.Background(), createUserInput("alex", "alex@example.com"))

	_, err := svc.Update(context.Background(), second.ID, ports.UpdateUserInput{
		Email: "jamie@example.com",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc, _ := newUserFixture()

	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
