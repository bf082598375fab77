package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/mtodo/internal/pkg/response"
	"github.com/xxxsen/mtodo/internal/service"
)

type TodoHandler struct {
	todos *service.TodoService
}

func NewTodoHandler(todos *service.TodoService) *TodoHandler {
	return &TodoHandler{todos: todos}
}

type todoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.todos.ListOwned(c.Request.Context(), getIdentity(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, todos)
}

func (h *TodoHandler) Get(c *gin.Context) {
	todo, err := h.todos.Get(c.Request.Context(), getIdentity(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, todo)
}

func (h *TodoHandler) Create(c *gin.Context) {
	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	if req.Title == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "title required")
		return
	}
	todo, err := h.todos.Create(c.Request.Context(), getIdentity(c), service.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, todo)
}

func (h *TodoHandler) Update(c *gin.Context) {
	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	if req.Title == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "title required")
		return
	}
	todo, err := h.todos.Update(c.Request.Context(), getIdentity(c), c.Param("id"), service.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, todo)
}

func (h *TodoHandler) Delete(c *gin.Context) {
	if err := h.todos.Delete(c.Request.Context(), getIdentity(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "todo deleted"})
}
