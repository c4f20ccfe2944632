// Package demodata provides sample host responses for demo deployments.
package demodata

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"rssw.eu/licensepanel/internal/panel"
)

//go:embed licenses.json oeinfo.json
var files embed.FS

const (
	LicensesPath = panel.LicensesPath
	IdentityPath = panel.IdentityPath
)

// ErrNotFound is returned for paths the fixtures do not serve.
var ErrNotFound = errors.New("demo fixture not found")

// Fixtures serves the embedded host responses.
type Fixtures struct {
	// IdentityInstalled controls whether the server identity endpoint exists,
	// as it does when the rules plugin is installed on the host.
	IdentityInstalled bool
}

func (f Fixtures) file(path string) ([]byte, error) {
	switch path {
	case LicensesPath:
		return files.ReadFile("licenses.json")
	case IdentityPath:
		if f.IdentityInstalled {
			return files.ReadFile("oeinfo.json")
		}
	}
	return nil, ErrNotFound
}

// GetJSON implements extension.Requester without a network round trip.
func (f Fixtures) GetJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := f.file(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// RegisterRoutes exposes the fixtures over HTTP under the host's paths.
func (f Fixtures) RegisterRoutes(e *echo.Echo) {
	serve := func(c echo.Context) error {
		data, err := f.file(c.Path())
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]any{
				"errors": []map[string]string{{"msg": "Unknown url : " + c.Path()}},
			})
		}
		return c.JSONBlob(http.StatusOK, data)
	}
	e.GET(LicensesPath, serve)
	e.GET(IdentityPath, serve)
}
