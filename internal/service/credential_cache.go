package service

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/xxxsen/mtodo/internal/model"
)

// WrapLruCache puts a bounded TTL cache in front of a CredentialStore.
// Only the by-email lookup is cached since that is the one the auth
// middleware performs on every request; the TTL bounds how long a
// deleted user keeps authenticating.
func WrapLruCache(next CredentialStore, size int, ttl time.Duration) CredentialStore {
	if next == nil || size <= 0 || ttl <= 0 {
		return next
	}
	return &lruCredentialStore{
		next:    next,
		byEmail: expirable.NewLRU[string, *model.User](size, nil, ttl),
	}
}

type lruCredentialStore struct {
	next    CredentialStore
	byEmail *expirable.LRU[string, *model.User]
}

func (l *lruCredentialStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if cached, ok := l.byEmail.Get(email); ok {
		return cloneUser(cached), nil
	}
	user, err := l.next.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	l.byEmail.Add(email, cloneUser(user))
	return user, nil
}

func (l *lruCredentialStore) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return l.next.GetByID(ctx, userID)
}

func (l *lruCredentialStore) List(ctx context.Context) ([]model.User, error) {
	return l.next.List(ctx)
}

func cloneUser(user *model.User) *model.User {
	if user == nil {
		return nil
	}
	clone := *user
	return &clone
}
