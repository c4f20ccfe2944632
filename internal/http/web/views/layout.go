package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"rssw.eu/licensepanel/internal/dom"
	"rssw.eu/licensepanel/internal/middleware"
)

//go:generate templ generate

// LayoutData is what the page shell shows around an extension.
type LayoutData struct {
	Title   string
	Page    middleware.Page
	RepoURL string
}

// Mount renders an extension's mount element.
func Mount(m *dom.Mount) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return m.Render(w)
	})
}
