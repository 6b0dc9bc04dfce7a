package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/wanderstay/wanderstay/internal/models"
	"github.com/wanderstay/wanderstay/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Authenticator owns credential verification and the session
// serialization of users. Sessions store only the serialized token; the
// full record is rehydrated per request via Deserialize.
type Authenticator struct {
	users UserStore
}

func NewAuthenticator(users UserStore) *Authenticator {
	return &Authenticator{users: users}
}

// Register creates a user with a bcrypt-hashed password. Returns
// store.ErrUsernameTaken when the username exists.
func (a *Authenticator) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := a.users.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Serialize returns the token stored in the session for a user.
func (a *Authenticator) Serialize(u *models.User) string {
	return u.ID.Hex()
}

// Deserialize rehydrates the user behind a session token.
func (a *Authenticator) Deserialize(ctx context.Context, token string) (*models.User, error) {
	return a.users.FindByID(ctx, token)
}
