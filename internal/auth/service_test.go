package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/mrlokans/catalog/internal/database/users"
	"github.com/mrlokans/catalog/internal/entities"
)

func setupService(t *testing.T) (*Service, *users.Repository) {
	t.Helper()
	repo := users.NewRepository(setupTestDB(t))
	return NewService(repo, testAuthConfig()), repo
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"valid user", "reader", "secret1", nil},
		{"dots dashes underscores", "john.doe_42-x", "secret1", nil},
		{"missing username", "", "secret1", ErrUsernameRequired},
		{"blank username", "   ", "secret1", ErrUsernameRequired},
		{"space in username", "john doe", "secret1", ErrUsernameInvalid},
		{"at sign in username", "john@doe", "secret1", ErrUsernameInvalid},
		{"cyrillic username", "читатель", "secret1", ErrUsernameInvalid},
		{"too long username", strings.Repeat("a", 101), "secret1", ErrUsernameTooLong},
		{"missing password", "nopass", "", ErrPasswordRequired},
		{"short password", "shortpass", "abc", ErrPasswordTooShort},
		{"password over bcrypt limit", "longpass", strings.Repeat("x", 73), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := setupService(t)

			user, err := svc.Register(tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}

			count, cerr := repo.CountUsers()
			if cerr != nil {
				t.Fatalf("CountUsers() error = %v", cerr)
			}

			if tt.wantErr != nil {
				if count != 0 {
					t.Errorf("failed registration created %d rows", count)
				}
				return
			}

			if count != 1 {
				t.Errorf("expected 1 user, got %d", count)
			}
			if user.IsAdmin {
				t.Error("registered users must not be admins")
			}
			if user.PasswordHash == tt.password || user.PasswordHash == "" {
				t.Error("password must be stored hashed")
			}
		})
	}
}

func TestService_Register_Duplicate(t *testing.T) {
	svc, repo := setupService(t)

	if _, err := svc.Register("reader", "secret1"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if _, err := svc.Register("reader", "another1"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("second Register() error = %v, want ErrUserExists", err)
	}

	// Exact match only: a differently-cased name is a different user.
	if _, err := svc.Register("Reader", "secret1"); err != nil {
		t.Fatalf("Register(Reader) error = %v", err)
	}

	count, err := repo.CountUsers()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected 2 users, got %d", count)
	}
}

func TestService_CreateUser_Admin(t *testing.T) {
	svc, _ := setupService(t)

	// Administrative creation skips the minimum length policy.
	user, err := svc.CreateUser("root", "pw", true)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if !user.IsAdmin {
		t.Error("expected admin flag")
	}
}

func TestService_Register_UsernameCheckedFirst(t *testing.T) {
	svc, _ := setupService(t)

	tests := []struct {
		username string
		wantErr  error
	}{
		{"", ErrUsernameRequired},
		{"john doe", ErrUsernameInvalid},
		{strings.Repeat("a", 101), ErrUsernameTooLong},
	}
	for _, tt := range tests {
		if _, err := svc.Register(tt.username, "abc"); !errors.Is(err, tt.wantErr) {
			t.Errorf("Register(%q, short) error = %v, want %v", tt.username, err, tt.wantErr)
		}
		if _, err := svc.CreateAdmin(tt.username, "abc"); !errors.Is(err, tt.wantErr) {
			t.Errorf("CreateAdmin(%q, short) error = %v, want %v", tt.username, err, tt.wantErr)
		}
	}
}

func TestService_CreateAdmin(t *testing.T) {
	svc, _ := setupService(t)

	if _, err := svc.CreateAdmin("boss", "abc"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("CreateAdmin() error = %v, want ErrPasswordTooShort", err)
	}

	user, err := svc.CreateAdmin("boss", "secret1")
	if err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}
	if !user.IsAdmin {
		t.Error("expected admin flag")
	}

	if _, err := svc.CreateAdmin("boss", "secret1"); !errors.Is(err, ErrUserExists) {
		t.Errorf("CreateAdmin() error = %v, want ErrUserExists", err)
	}
}

func TestService_Authenticate(t *testing.T) {
	svc, _ := setupService(t)

	if _, err := svc.CreateUser("admin", "admin123", true); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if _, err := svc.Register("reader", "secret1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name      string
		username  string
		password  string
		wantErr   error
		wantAdmin bool
	}{
		{"admin correct", "admin", "admin123", nil, true},
		{"reader correct", "reader", "secret1", nil, false},
		{"wrong password", "admin", "wrong", ErrInvalidCredentials, false},
		{"unknown user", "ghost", "admin123", ErrInvalidCredentials, false},
		{"case mismatch", "Admin", "admin123", ErrInvalidCredentials, false},
		{"empty password", "admin", "", ErrInvalidCredentials, false},
		{"empty username", "", "admin123", ErrInvalidCredentials, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Authenticate(tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if user != nil {
					t.Error("expected nil user on failure")
				}
				return
			}
			if user.IsAdmin != tt.wantAdmin {
				t.Errorf("IsAdmin = %v, want %v", user.IsAdmin, tt.wantAdmin)
			}
		})
	}
}

type failingRepo struct {
	UserRepository
	err error
}

func (f failingRepo) UsernameExists(string) (bool, error) { return false, nil }
func (f failingRepo) CreateUser(*entities.User) error     { return f.err }

func TestService_CreateUser_StoreErrors(t *testing.T) {
	svc := NewService(failingRepo{err: errors.New("disk full")}, testAuthConfig())
	if _, err := svc.Register("reader", "secret1"); err == nil || errors.Is(err, ErrUserExists) {
		t.Errorf("expected wrapped storage error, got %v", err)
	}
}
