// Package v1 provides the public chat API handlers.
package v1

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/tanka-roy/c-hx-V01/internal/domain"
	"github.com/tanka-roy/c-hx-V01/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers the chat API routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	api.POST("/chat", h.Chat)
	api.GET("/models", h.ListModels)

	// Search is registered before :id so the static segment wins.
	api.GET("/conversations/search/:query", h.SearchConversations)
	api.GET("/conversations", h.ListConversations)
	api.GET("/conversations/:id/messages", h.GetMessages)
	api.DELETE("/conversations/:id", h.DeleteConversation)
	api.DELETE("/conversations", h.DeleteAllConversations)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "1.0.0",
	})
}

// errorResponse maps a service error onto a status code and error body.
func errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		msg := strings.TrimPrefix(err.Error(), domain.ErrInvalidRequest.Error()+": ")
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Conversation not found"})
	default:
		log.Printf("ERROR: %s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
