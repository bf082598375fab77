package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/mtodo/internal/model"
	appErr "github.com/xxxsen/mtodo/internal/pkg/errors"
	"github.com/xxxsen/mtodo/internal/pkg/password"
	"github.com/xxxsen/mtodo/internal/pkg/timeutil"
)

type CredentialWriter interface {
	CredentialStore
	Create(ctx context.Context, user *model.User) error
}

type fixtureUser struct {
	email    string
	fullName string
	plain    string
}

// Registration has no endpoint; the fixture accounts below are the only
// way into the system.
var fixtureUsers = []fixtureUser{
	{email: "johndoe@example.com", fullName: "John Doe", plain: "secret"},
	{email: "alice@example.com", fullName: "Alice Wonderson", plain: "secret"},
	{email: "bob@example.com", fullName: "Bob Smith", plain: "secret"},
}

// SeedFixtureUsers inserts the fixture accounts, skipping any email that
// already exists. Safe to run on every startup.
func SeedFixtureUsers(ctx context.Context, users CredentialWriter) error {
	for _, fixture := range fixtureUsers {
		if _, err := users.GetByEmail(ctx, fixture.email); err == nil {
			continue
		} else if !appErr.IsNotFound(err) {
			return err
		}
		hash, err := password.Hash(fixture.plain)
		if err != nil {
			return err
		}
		user := &model.User{
			ID:           newID(),
			Email:        fixture.email,
			FullName:     fixture.fullName,
			PasswordHash: hash,
			Ctime:        timeutil.NowUnix(),
		}
		if err := users.Create(ctx, user); err != nil {
			if appErr.IsConflict(err) {
				continue
			}
			return err
		}
		logutil.GetLogger(ctx).Info("seeded fixture user", zap.String("email", user.Email))
	}
	return nil
}
