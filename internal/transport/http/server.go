// Package http provides the HTTP server for the chat API.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/tanka-roy/c-hx-V01/internal/metrics"
	"github.com/tanka-roy/c-hx-V01/internal/service"
	v1 "github.com/tanka-roy/c-hx-V01/internal/transport/http/v1"
	"github.com/tanka-roy/c-hx-V01/internal/transport/ws"
)

// NewServer creates and configures the HTTP server.
// It serves the chat API, the WebSocket endpoint and Prometheus metrics.
func NewServer(svc *service.Service, wsServer *ws.Server, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	v1Handler := v1.NewHandler(svc)

	// Register Routes
	v1Handler.RegisterRoutes(e)
	if wsServer != nil {
		wsServer.RegisterRoutes(e)
	}
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	return e
}
