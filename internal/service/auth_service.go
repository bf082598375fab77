package service

import (
	"context"
	"time"

	"github.com/xxxsen/mtodo/internal/model"
	appErr "github.com/xxxsen/mtodo/internal/pkg/errors"
	"github.com/xxxsen/mtodo/internal/pkg/password"
	"github.com/xxxsen/mtodo/internal/pkg/token"
)

type AuthService struct {
	users     CredentialStore
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users CredentialStore, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

// Login validates the credentials and mints a bearer token bound to the
// user's email. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", appErr.ErrUnauthorized
	}
	if !password.Verify(plainPassword, user.PasswordHash) {
		return "", appErr.ErrUnauthorized
	}
	return token.Issue(user.Email, s.jwtSecret, s.jwtTTL)
}

func (s *AuthService) CurrentUser(ctx context.Context, ident Identity) (*model.User, error) {
	return s.users.GetByID(ctx, ident.UserID)
}
