package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/mtodo/internal/middleware"
	"github.com/xxxsen/mtodo/internal/pkg/response"
	"github.com/xxxsen/mtodo/internal/service"
)

type RouterDeps struct {
	Auth        *AuthHandler
	Todos       *TodoHandler
	Users       *UserHandler
	Credentials service.CredentialStore
	JWTSecret   []byte
	LoginRate   time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"hello": "world"})
	})
	api.POST("/auth/token", middleware.RateLimit(deps.LoginRate), deps.Auth.Token)

	authGroup := api.Group("")
	authGroup.Use(middleware.Auth(deps.JWTSecret, deps.Credentials))
	authGroup.GET("/auth/users/me", deps.Auth.Me)

	authGroup.GET("/todos", deps.Todos.List)
	authGroup.POST("/todos", deps.Todos.Create)
	authGroup.GET("/todos/:id", deps.Todos.Get)
	authGroup.PUT("/todos/:id", deps.Todos.Update)
	authGroup.DELETE("/todos/:id", deps.Todos.Delete)

	authGroup.GET("/users", deps.Users.List)
}
