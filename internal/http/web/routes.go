package web

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all web UI routes
func RegisterRoutes(e *echo.Group, h *Handler) {
	e.GET("/", h.Index)
	e.GET("/extensions", h.ListExtensions)
	e.GET("/extensions/:plugin/:page", h.Extension)
}
