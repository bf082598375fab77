package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/mtodo/internal/model"
	appErr "github.com/xxxsen/mtodo/internal/pkg/errors"
	"github.com/xxxsen/mtodo/internal/pkg/token"
	"github.com/xxxsen/mtodo/internal/service"
)

var authTestSecret = []byte("test-secret")

type staticCredentialStore struct {
	users map[string]model.User
}

func (s *staticCredentialStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return &user, nil
}

func (s *staticCredentialStore) GetByID(ctx context.Context, userID string) (*model.User, error) {
	for _, user := range s.users {
		if user.ID == userID {
			return &user, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (s *staticCredentialStore) List(ctx context.Context) ([]model.User, error) {
	return nil, nil
}

func newAuthTestStore() service.CredentialStore {
	return &staticCredentialStore{users: map[string]model.User{
		"johndoe@example.com": {ID: "user-1", Email: "johndoe@example.com"},
	}}
}

func runAuth(t *testing.T, authorization string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/todos", nil)
	if authorization != "" {
		c.Request.Header.Set("Authorization", authorization)
	}
	Auth(authTestSecret, newAuthTestStore())(c)
	return c, recorder
}

func TestAuthMissingHeader(t *testing.T) {
	c, recorder := runAuth(t, "")
	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	require.Equal(t, "Bearer", recorder.Header().Get("WWW-Authenticate"))
}

func TestAuthMalformedHeader(t *testing.T) {
	for _, header := range []string{"Bearer", "Basic abc", "garbage"} {
		c, recorder := runAuth(t, header)
		require.True(t, c.IsAborted(), header)
		require.Equal(t, http.StatusUnauthorized, recorder.Code, header)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	c, recorder := runAuth(t, "Bearer not-a-token")
	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthExpiredToken(t *testing.T) {
	expired, err := token.Issue("johndoe@example.com", authTestSecret, -time.Minute)
	require.NoError(t, err)
	c, recorder := runAuth(t, "Bearer "+expired)
	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthUnknownSubject(t *testing.T) {
	// valid token but the subject is not in the store; same 401 as a
	// bad token
	tokenString, err := token.Issue("ghost@example.com", authTestSecret, time.Minute)
	require.NoError(t, err)
	c, recorder := runAuth(t, "Bearer "+tokenString)
	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthSuccessSetsIdentity(t *testing.T) {
	tokenString, err := token.Issue("johndoe@example.com", authTestSecret, time.Minute)
	require.NoError(t, err)
	c, _ := runAuth(t, "Bearer "+tokenString)
	require.False(t, c.IsAborted())

	ident, ok := GetIdentity(c)
	require.True(t, ok)
	require.Equal(t, service.Identity{UserID: "user-1", Email: "johndoe@example.com"}, ident)
}

func TestAuthBearerCaseInsensitive(t *testing.T) {
	tokenString, err := token.Issue("johndoe@example.com", authTestSecret, time.Minute)
	require.NoError(t, err)
	c, _ := runAuth(t, "bearer "+tokenString)
	require.False(t, c.IsAborted())
}
