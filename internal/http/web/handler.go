package web

import (
	"context"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rssw.eu/licensepanel/internal/dom"
	"rssw.eu/licensepanel/internal/extension"
	"rssw.eu/licensepanel/internal/http/web/views"
	"rssw.eu/licensepanel/internal/middleware"
)

// Handler serves extension pages
type Handler struct {
	registry      *extension.Registry
	requester     extension.Requester
	defaultKey    string
	renderTimeout time.Duration
	logger        *zap.Logger
}

// NewHandler creates a new web handler. defaultKey is the extension the
// index redirects to; renderTimeout bounds how long a page waits for an
// extension (0 waits for the client).
func NewHandler(
	registry *extension.Registry,
	requester extension.Requester,
	defaultKey string,
	renderTimeout time.Duration,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		registry:      registry,
		requester:     requester,
		defaultKey:    defaultKey,
		renderTimeout: renderTimeout,
		logger:        logger,
	}
}

// Index redirects to the default extension page
func (h *Handler) Index(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/extensions/"+h.defaultKey)
}

// ListExtensions renders links to every registered extension
func (h *Handler) ListExtensions(c echo.Context) error {
	return h.render(c, "Extensions", views.ExtensionList(h.registry.Keys()))
}

// Extension activates the extension named by :plugin/:page against a fresh
// mount, waits for it to finish, and renders the mount.
func (h *Handler) Extension(c echo.Context) error {
	key := c.Param("plugin") + "/" + c.Param("page")
	factory, ok := h.registry.Lookup(key)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Extension not found")
	}

	ctx := c.Request().Context()
	mount := dom.NewMount()

	// Host reads outlive the request: deactivation does not abort them.
	inst := factory(context.WithoutCancel(ctx), extension.Host{Mount: mount, Requester: h.requester})

	var timeout <-chan time.Time
	if h.renderTimeout > 0 {
		timer := time.NewTimer(h.renderTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-inst.Done():
	case <-timeout:
		inst.Deactivate()
		h.logger.Warn("extension render timed out",
			zap.String("extension", key),
			zap.Duration("timeout", h.renderTimeout),
			zap.String("request_id", middleware.GetPage(ctx).RequestID),
		)
	case <-ctx.Done():
		// Client went away; there is nobody to render for.
		inst.Deactivate()
		h.logger.Debug("client disconnected before extension rendered",
			zap.String("extension", key),
			zap.String("request_id", middleware.GetPage(ctx).RequestID),
		)
		return nil
	}

	if isHTMX(c) {
		return h.renderFragment(c, views.Mount(mount))
	}
	return h.render(c, "CABL rules", views.Mount(mount))
}

func (h *Handler) render(c echo.Context, title string, body templ.Component) error {
	ctx := c.Request().Context()
	layout := views.Layout(views.LayoutData{
		Title:   title,
		Page:    middleware.GetPage(ctx),
		RepoURL: middleware.GetRepoURL(),
	}, body)
	return h.renderFragment(c, layout)
}

func (h *Handler) renderFragment(c echo.Context, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return component.Render(c.Request().Context(), c.Response())
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
