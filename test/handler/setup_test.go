package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/xxxsen/mtodo/internal/handler"
	"github.com/xxxsen/mtodo/internal/middleware"
	"github.com/xxxsen/mtodo/internal/repo"
	"github.com/xxxsen/mtodo/internal/service"
	"github.com/xxxsen/mtodo/test/testutil"
)

var testJWTSecret = []byte("test-secret")

func setupRouter(t *testing.T) (http.Handler, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, cleanup := testutil.OpenTestDB(t)
	userRepo := repo.NewUserRepo(conn)
	todoRepo := repo.NewTodoRepo(conn)
	require.NoError(t, service.SeedFixtureUsers(context.Background(), userRepo))

	authService := service.NewAuthService(userRepo, testJWTSecret, 15*time.Minute)
	todoService := service.NewTodoService(todoRepo)
	userService := service.NewUserService(userRepo)

	deps := handler.RouterDeps{
		Auth:        handler.NewAuthHandler(authService),
		Todos:       handler.NewTodoHandler(todoService),
		Users:       handler.NewUserHandler(userService),
		Credentials: service.WrapLruCache(userRepo, 16, time.Minute),
		JWTSecret:   testJWTSecret,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)

	return engine, cleanup
}

func login(t *testing.T, router http.Handler, email, plainPassword string) string {
	t.Helper()
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", plainPassword)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, "bearer", body.Data.TokenType)
	require.NotEmpty(t, body.Data.AccessToken)
	return body.Data.AccessToken
}

func doJSON(t *testing.T, router http.Handler, method, path, bearer string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var body struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NoError(t, json.Unmarshal(body.Data, out))
}
