package auth

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/validator"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameRequired   = errors.New("username is required")
	ErrUsernameInvalid    = errors.New("username may contain only letters, digits, '.', '_' and '-'")
	ErrUsernameTooLong    = errors.New("username must be at most 100 characters")
	ErrPasswordTooShort   = errors.New("password is too short")
)

const maxUsernameLength = 100

// UserRepository defines the interface for user data access.
type UserRepository interface {
	CreateUser(user *entities.User) error
	GetUserByID(id uint) (*entities.User, error)
	GetUserByUsername(username string) (*entities.User, error)
	UsernameExists(username string) (bool, error)
}

// Credentials is a submitted username/password pair.
type Credentials struct {
	Username string `form:"username" validate:"required,max=100,username"`
	Password string `form:"password" validate:"required,max=72"`
}

// Service handles registration and authentication.
type Service struct {
	users  UserRepository
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(users UserRepository, cfg config.Auth) *Service {
	return &Service{
		users:  users,
		config: cfg,
	}
}

// Register creates a regular (non-admin) account.
func (s *Service) Register(username, password string) (*entities.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := s.validateNewPassword(password); err != nil {
		return nil, err
	}
	return s.CreateUser(username, password, false)
}

// CreateAdmin is Register for administrator accounts.
func (s *Service) CreateAdmin(username, password string) (*entities.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := s.validateNewPassword(password); err != nil {
		return nil, err
	}
	return s.CreateUser(username, password, true)
}

// CreateUser validates the username, hashes the password and stores the account.
// Usernames are compared case-sensitively.
func (s *Service) CreateUser(username, password string, isAdmin bool) (*entities.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validator.GetValidator().Struct(Credentials{Username: username, Password: password}); err != nil {
		if _, bad := validator.FieldErrors(err)["Password"]; bad {
			if password == "" {
				return nil, ErrPasswordRequired
			}
			return nil, ErrPasswordTooLong
		}
		return nil, ErrUsernameInvalid
	}

	exists, err := s.users.UsernameExists(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
	}

	if err := s.users.CreateUser(user); err != nil {
		// Lost a race with a concurrent registration of the same name.
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate validates credentials and returns the user.
// Unknown usernames and wrong passwords yield the same error.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	return s.users.GetUserByID(id)
}

func (s *Service) validateNewPassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if s.config.MinPasswordLength > 0 && len([]rune(password)) < s.config.MinPasswordLength {
		return fmt.Errorf("%w: at least %d characters required", ErrPasswordTooShort, s.config.MinPasswordLength)
	}
	return nil
}

func validateUsername(username string) error {
	switch {
	case strings.TrimSpace(username) == "":
		return ErrUsernameRequired
	case len(username) > maxUsernameLength:
		return ErrUsernameTooLong
	case !validator.IsValidUsername(username):
		return ErrUsernameInvalid
	}
	return nil
}
