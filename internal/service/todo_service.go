package service

import (
	"context"

	"github.com/xxxsen/mtodo/internal/model"
	appErr "github.com/xxxsen/mtodo/internal/pkg/errors"
	"github.com/xxxsen/mtodo/internal/pkg/timeutil"
)

// TodoService enforces the ownership invariant: a todo may only be read,
// modified or deleted by the user who owns it. Existence is checked
// before ownership, so a request for another user's real todo yields
// ErrForbidden rather than ErrNotFound.
type TodoService struct {
	todos TodoStore
}

func NewTodoService(todos TodoStore) *TodoService {
	return &TodoService{todos: todos}
}

func (s *TodoService) ListOwned(ctx context.Context, ident Identity) ([]model.Todo, error) {
	return s.todos.ListByUser(ctx, ident.UserID)
}

func (s *TodoService) Get(ctx context.Context, ident Identity, todoID string) (*model.Todo, error) {
	return s.getOwned(ctx, ident, todoID)
}

type TodoInput struct {
	Title       string
	Description string
	Completed   bool
}

func (s *TodoService) Create(ctx context.Context, ident Identity, input TodoInput) (*model.Todo, error) {
	todo := &model.Todo{
		ID:          newID(),
		UserID:      ident.UserID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		Ctime:       timeutil.NowUnix(),
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, ident Identity, todoID string, input TodoInput) (*model.Todo, error) {
	existing, err := s.getOwned(ctx, ident, todoID)
	if err != nil {
		return nil, err
	}
	existing.Title = input.Title
	existing.Description = input.Description
	existing.Completed = input.Completed
	if err := s.todos.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *TodoService) Delete(ctx context.Context, ident Identity, todoID string) error {
	if _, err := s.getOwned(ctx, ident, todoID); err != nil {
		return err
	}
	return s.todos.Delete(ctx, todoID)
}

func (s *TodoService) getOwned(ctx context.Context, ident Identity, todoID string) (*model.Todo, error) {
	todo, err := s.todos.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if todo.UserID != ident.UserID {
		return nil, appErr.ErrForbidden
	}
	return todo, nil
}
