package service

import (
	"context"

	"github.com/xxxsen/mtodo/internal/model"
)

type UserService struct {
	users CredentialStore
}

func NewUserService(users CredentialStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}
