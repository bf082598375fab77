package service

import (
	"context"

	"github.com/xxxsen/mtodo/internal/model"
)

// Identity is the immutable authenticated-identity value the auth
// middleware attaches to a request.
type Identity struct {
	UserID string
	Email  string
}

// CredentialStore resolves users; backed by postgres in production and
// by an in-memory table in tests.
type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// TodoStore is the persistence capability set the todo service needs.
// GetByID must return the row regardless of owner; ownership decisions
// happen above the store.
type TodoStore interface {
	Create(ctx context.Context, todo *model.Todo) error
	GetByID(ctx context.Context, todoID string) (*model.Todo, error)
	ListByUser(ctx context.Context, userID string) ([]model.Todo, error)
	Update(ctx context.Context, todo *model.Todo) error
	Delete(ctx context.Context, todoID string) error
}
