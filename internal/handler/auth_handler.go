package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/mtodo/internal/pkg/response"
	"github.com/xxxsen/mtodo/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Token implements the password login flow. The body is form encoded
// with username/password fields, the OAuth2 password-grant shape.
func (h *AuthHandler) Token(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	plainPassword := c.PostForm("password")
	if username == "" || plainPassword == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "username and password are required")
		return
	}
	accessToken, err := h.auth.Login(c.Request.Context(), username, plainPassword)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"access_token": accessToken,
		"token_type":   "bearer",
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.CurrentUser(c.Request.Context(), getIdentity(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}
