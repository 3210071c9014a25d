package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tanka-roy/c-hx-V01/internal/domain"
)

// Chat runs one chat turn.
// POST /api/chat
func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	resp, err := h.service.Chat(ctx, &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListModels lists the selectable models.
// GET /api/models
func (h *Handler) ListModels(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.ListModels())
}
