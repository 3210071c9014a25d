package v1

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/tanka-roy/c-hx-V01/internal/domain"
)

// ListConversations lists conversations, most recently updated first.
// GET /api/conversations
func (h *Handler) ListConversations(c echo.Context) error {
	conversations, err := h.service.ListConversations(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, nonNil(conversations))
}

// GetMessages returns a conversation's messages in order.
// GET /api/conversations/:id/messages
func (h *Handler) GetMessages(c echo.Context) error {
	messages, err := h.service.GetMessages(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, nonNil(messages))
}

// DeleteConversation removes a conversation and its messages.
// DELETE /api/conversations/:id
func (h *Handler) DeleteConversation(c echo.Context) error {
	if err := h.service.DeleteConversation(c.Request().Context(), c.Param("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Conversation deleted successfully"})
}

// DeleteAllConversations clears the store.
// DELETE /api/conversations
func (h *Handler) DeleteAllConversations(c echo.Context) error {
	deleted, err := h.service.DeleteAllConversations(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, domain.DeleteResponse{
		Message:      "All conversations deleted successfully",
		DeletedCount: deleted,
	})
}

// SearchConversations matches titles and message contents.
// GET /api/conversations/search/:query
func (h *Handler) SearchConversations(c echo.Context) error {
	// Echo routes on the raw path only when the request has one; only then
	// is the parameter still escaped.
	query := c.Param("query")
	if c.Request().URL.RawPath != "" {
		unescaped, err := url.PathUnescape(query)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid search query"})
		}
		query = unescaped
	}
	conversations, err := h.service.SearchConversations(c.Request().Context(), query)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, nonNil(conversations))
}

// nonNil keeps empty results encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
