package service

import (
	"context"
	"sync"

	"github.com/xxxsen/mtodo/internal/model"
	appErr "github.com/xxxsen/mtodo/internal/pkg/errors"
)

// In-memory stores backing the service tests; same capability set as
// the postgres repos.

type memoryTodoStore struct {
	mu    sync.Mutex
	todos map[string]model.Todo
	order []string
}

func newMemoryTodoStore() *memoryTodoStore {
	return &memoryTodoStore{todos: make(map[string]model.Todo)}
}

func (s *memoryTodoStore) Create(ctx context.Context, todo *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos[todo.ID] = *todo
	s.order = append(s.order, todo.ID)
	return nil
}

func (s *memoryTodoStore) GetByID(ctx context.Context, todoID string) (*model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	todo, ok := s.todos[todoID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	clone := todo
	return &clone, nil
}

func (s *memoryTodoStore) ListByUser(ctx context.Context, userID string) ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	todos := make([]model.Todo, 0)
	for _, id := range s.order {
		todo, ok := s.todos[id]
		if !ok || todo.UserID != userID {
			continue
		}
		todos = append(todos, todo)
	}
	return todos, nil
}

func (s *memoryTodoStore) Update(ctx context.Context, todo *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.todos[todo.ID]
	if !ok {
		return appErr.ErrNotFound
	}
	existing.Title = todo.Title
	existing.Description = todo.Description
	existing.Completed = todo.Completed
	s.todos[todo.ID] = existing
	return nil
}

func (s *memoryTodoStore) Delete(ctx context.Context, todoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.todos[todoID]; !ok {
		return appErr.ErrNotFound
	}
	delete(s.todos, todoID)
	return nil
}

type memoryCredentialStore struct {
	mu    sync.Mutex
	users map[string]model.User
	order []string
}

func newMemoryCredentialStore() *memoryCredentialStore {
	return &memoryCredentialStore{users: make(map[string]model.User)}
}

func (s *memoryCredentialStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return appErr.ErrConflict
		}
	}
	s.users[user.ID] = *user
	s.order = append(s.order, user.ID)
	return nil
}

func (s *memoryCredentialStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			clone := user
			return &clone, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (s *memoryCredentialStore) GetByID(ctx context.Context, userID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	clone := user
	return &clone, nil
}

func (s *memoryCredentialStore) List(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]model.User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, s.users[id])
	}
	return users, nil
}
