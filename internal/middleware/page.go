// Package middleware holds the echo middleware shared by the web pages.
package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	mwecho "github.com/labstack/echo/v4/middleware"

	"rssw.eu/licensepanel/internal/version"
)

const ThemeCookieName = "theme"

type pageKey struct{}

var validThemes = map[string]bool{"light": true, "dark": true}

// Page is request-scoped data the layout needs.
type Page struct {
	Theme     string
	Version   string
	RequestID string
}

// RequestID assigns every request a uuid, honoring an incoming X-Request-Id.
func RequestID() echo.MiddlewareFunc {
	return mwecho.RequestIDWithConfig(mwecho.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// PageContext stores the Page for the request in its context. The theme
// comes from the theme cookie and defaults to "light".
func PageContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Page{
				Theme:     "light",
				Version:   version.Version,
				RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
			}
			if cookie, err := c.Cookie(ThemeCookieName); err == nil && validThemes[cookie.Value] {
				p.Theme = cookie.Value
			}

			ctx := context.WithValue(c.Request().Context(), pageKey{}, p)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetPage returns the Page stored by PageContext, or defaults.
func GetPage(ctx context.Context) Page {
	if p, ok := ctx.Value(pageKey{}).(Page); ok {
		return p
	}
	return Page{Theme: "light", Version: version.Version}
}

// GetRepoURL returns the project repository URL.
func GetRepoURL() string {
	return version.RepoURL
}
