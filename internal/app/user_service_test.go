package app

import (
	"context"
	"errors"
	"testing"

	"accounts/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	createFn        func(ctx context.Context, username, email, passwordHash string) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	listFn          func(ctx context.Context) ([]domain.User, error)
	updateFn        func(ctx context.Context, id int64, upd domain.UserUpdate) error
	deleteFn        func(ctx context.Context, id int64) error
}

func (m *mockUserRepo) Create(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, email, passwordHash)
	}
	return &domain.User{ID: 1, Username: username, Email: email, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) Update(ctx context.Context, id int64, upd domain.UserUpdate) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, upd)
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func TestUserService_Register_Success(t *testing.T) {
	ctx := context.Background()

	var storedHash string
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
			storedHash = passwordHash
			return &domain.User{ID: 7, Username: username, Email: email, PasswordHash: passwordHash}, nil
		},
	}

	svc := NewUserService(repo)
	id, err := svc.Register(ctx, "alice", "alice@example.com", "pw1")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != 7 {
		t.Errorf("expected id 7, got %d", id)
	}
	if storedHash == "pw1" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("pw1")); err != nil {
		t.Errorf("stored hash does not verify against the password: %v", err)
	}
}

func TestUserService_Register_MissingFields(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(&mockUserRepo{})

	cases := []struct {
		name                      string
		username, email, password string
	}{
		{"no username", "", "a@x.com", "pw"},
		{"no email", "a", "", "pw"},
		{"no password", "a", "a@x.com", ""},
	}

	for _, tc := range cases {
		if _, err := svc.Register(ctx, tc.username, tc.email, tc.password); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestUserService_Register_Conflict(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
			return nil, domain.ErrConflict
		},
	}

	svc := NewUserService(repo)
	if _, err := svc.Register(ctx, "alice", "alice@example.com", "pw1"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestUserService_VerifyCredentials_Success(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.DefaultCost)

	repo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "alice", PasswordHash: string(hash)}, nil
		},
	}

	svc := NewUserService(repo)
	user, err := svc.VerifyCredentials(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != 1 || user.Username != "alice" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestUserService_VerifyCredentials_Rejects(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.DefaultCost)

	repo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			if username == "alice" {
				return &domain.User{ID: 1, Username: "alice", PasswordHash: string(hash)}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	svc := NewUserService(repo)

	cases := []struct {
		name               string
		username, password string
	}{
		{"wrong password", "alice", "pw2"},
		{"unknown user", "bob", "pw1"},
		{"hash as password", "alice", string(hash)},
		{"empty password", "alice", ""},
	}

	for _, tc := range cases {
		if _, err := svc.VerifyCredentials(ctx, tc.username, tc.password); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("%s: expected ErrInvalidCredentials, got %v", tc.name, err)
		}
	}
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	ctx := context.Background()

	var got domain.UserUpdate
	repo := &mockUserRepo{
		updateFn: func(ctx context.Context, id int64, upd domain.UserUpdate) error {
			got = upd
			return nil
		},
	}

	svc := NewUserService(repo)
	if err := svc.Update(ctx, 1, UpdateInput{Email: "new@example.com", Password: "pw2"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got.Username != "" {
		t.Errorf("username should be unchanged, got %q", got.Username)
	}
	if got.Email != "new@example.com" {
		t.Errorf("expected new email, got %q", got.Email)
	}
	if got.PasswordHash == "" || got.PasswordHash == "pw2" {
		t.Errorf("password not rehashed: %q", got.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("pw2")); err != nil {
		t.Errorf("new hash does not verify: %v", err)
	}
}

func TestUserService_Update_NoPasswordLeavesHashEmpty(t *testing.T) {
	ctx := context.Background()

	var got domain.UserUpdate
	repo := &mockUserRepo{
		updateFn: func(ctx context.Context, id int64, upd domain.UserUpdate) error {
			got = upd
			return nil
		},
	}

	svc := NewUserService(repo)
	if err := svc.Update(ctx, 1, UpdateInput{Username: "alice2"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.PasswordHash != "" {
		t.Errorf("expected empty hash, got %q", got.PasswordHash)
	}
}

func TestUserService_List_StripsCredentials(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepo{
		listFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{
				{ID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: "secret"},
				{ID: 2, Username: "bob", Email: "bob@example.com", PasswordHash: "secret"},
			}, nil
		},
	}

	svc := NewUserService(repo)
	users, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].ID != 1 || users[0].Username != "alice" || users[0].Email != "alice@example.com" {
		t.Errorf("unexpected first user: %+v", users[0])
	}
}

func TestUserService_Provision_CreatesWhenMissing(t *testing.T) {
	ctx := context.Background()

	created := false
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
			created = true
			if passwordHash != "" {
				t.Errorf("provisioned user must have no usable password, got %q", passwordHash)
			}
			return &domain.User{ID: 3, Username: username, Email: email}, nil
		},
	}

	svc := NewUserService(repo)
	user, err := svc.Provision(ctx, "sso@example.com", "sso@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !created {
		t.Error("expected a new user to be created")
	}
	if user.ID != 3 {
		t.Errorf("expected id 3, got %d", user.ID)
	}
}

func TestUserService_Provision_ReturnsExisting(t *testing.T) {
	ctx := context.Background()

	repo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 4, Username: username}, nil
		},
		createFn: func(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
			t.Error("create should not be called for an existing user")
			return nil, domain.ErrConflict
		},
	}

	svc := NewUserService(repo)
	user, err := svc.Provision(ctx, "sso@example.com", "sso@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != 4 {
		t.Errorf("expected id 4, got %d", user.ID)
	}
}
