package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"spartanmarket/internal/auth"
	"spartanmarket/internal/domain"
	applog "spartanmarket/internal/log"
	"spartanmarket/internal/repos"
	"spartanmarket/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	Users       *repos.UserRepo
	Tokens      *auth.TokenService
	Blobs       storage.BlobStore
	EmailDomain string
}

func NewUserService(users *repos.UserRepo, tokens *auth.TokenService, blobs storage.BlobStore, emailDomain string) *UserService {
	return &UserService{Users: users, Tokens: tokens, Blobs: blobs, EmailDomain: emailDomain}
}

// Register stores a new account with the password irreversibly hashed. The
// email must end with the institutional domain suffix.
func (s *UserService) Register(username, email, password string) (*domain.User, error) {
	if !strings.HasSuffix(strings.ToLower(email), strings.ToLower(s.EmailDomain)) {
		return nil, domain.ErrInvalidEmailDomain
	}
	if taken, err := s.Users.UsernameExists(username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrDuplicateUsername
	}
	if taken, err := s.Users.EmailExists(email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues a bearer token. Unknown usernames and
// wrong passwords are logged with different reasons but produce the same
// error, so callers cannot enumerate usernames.
func (s *UserService) Login(username, password string) (string, *domain.User, error) {
	u, err := s.Users.ByUsername(username)
	if err != nil {
		applog.Security(nil, "auth.login.fail", map[string]any{"username": username, "reason": "unknown_user"})
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		applog.Security(nil, "auth.login.fail", map[string]any{"username": username, "reason": "bad_password"})
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.Tokens.NewToken(u.Username)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *UserService) ByUsername(username string) (*domain.User, error) {
	u, err := s.Users.ByUsername(username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	return u, err
}

func (s *UserService) ByID(id string) (*domain.User, error) {
	u, err := s.Users.ByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	return u, err
}

// UpdateProfilePicture stores the uploaded file and points the profile at it.
func (s *UserService) UpdateProfilePicture(ctx context.Context, userID string, data []byte, filename string) (string, error) {
	url, err := s.Blobs.Store(ctx, data, filename)
	if err != nil {
		return "", err
	}
	if err := s.Users.UpdateProfilePicture(userID, url); err != nil {
		_ = s.Blobs.Remove(ctx, url)
		return "", err
	}
	return url, nil
}

// ChangePassword is the only path that mutates a stored password.
func (s *UserService) ChangePassword(userID, oldPassword, newPassword string) error {
	u, err := s.ByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Users.UpdatePasswordHash(userID, string(hash))
}
