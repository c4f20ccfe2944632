package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"rssw.eu/licensepanel/internal/demodata"
	"rssw.eu/licensepanel/internal/extension"
	"rssw.eu/licensepanel/internal/http/web"
	"rssw.eu/licensepanel/internal/panel"
)

// blockingRequester never answers until released.
type blockingRequester struct {
	release chan struct{}
}

func (b blockingRequester) GetJSON(ctx context.Context, path string, params url.Values, out any) error {
	<-b.release
	return errors.New("released")
}

func newHandler(t *testing.T, req extension.Requester, timeout time.Duration) *web.Handler {
	t.Helper()
	reg := extension.NewRegistry()
	if err := reg.Register(panel.ExtensionKey, panel.New(panel.Options{}).Factory()); err != nil {
		t.Fatalf("register: %v", err)
	}
	return web.NewHandler(reg, req, panel.ExtensionKey, timeout, nil)
}

func extensionContext(req *http.Request, rec *httptest.ResponseRecorder, plugin, page string) echo.Context {
	e := echo.New()
	c := e.NewContext(req, rec)
	c.SetParamNames("plugin", "page")
	c.SetParamValues(plugin, page)
	return c
}

func TestExtensionPage(t *testing.T) {
	t.Run("renders full page with licenses and identity", func(t *testing.T) {
		h := newHandler(t, demodata.Fixtures{IdentityInstalled: true}, 5*time.Second)
		req := httptest.NewRequest(http.MethodGet, "/extensions/openedge/license_recap", nil)
		rec := httptest.NewRecorder()

		if err := h.Extension(extensionContext(req, rec, "openedge", "license_recap")); err != nil {
			t.Fatalf("handler error: %v", err)
		}

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if ct := rec.Header().Get(echo.HeaderContentType); ct != echo.MIMETextHTMLCharsetUTF8 {
			t.Errorf("expected content type %q, got %q", echo.MIMETextHTMLCharsetUTF8, ct)
		}

		body := rec.Body.String()
		for _, want := range []string{
			"<!DOCTYPE html>",
			"CABL rules • Licenses",
			"<td>Globex Ltd</td>",
			"AZ3F9C1E-DEMO",
			`licenseRequest=%7B%22sonarQubeServerId%22:%22AZ3F9C1E-DEMO%22`,
			"Acquire or renew license for this server",
		} {
			if !strings.Contains(body, want) {
				t.Errorf("expected body to contain %q", want)
			}
		}
		if got := strings.Count(body, "<tr><td>"); got != 3 {
			t.Errorf("expected 3 license rows, got %d", got)
		}
	})

	t.Run("htmx request gets the fragment only", func(t *testing.T) {
		h := newHandler(t, demodata.Fixtures{IdentityInstalled: true}, 5*time.Second)
		req := httptest.NewRequest(http.MethodGet, "/extensions/openedge/license_recap", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()

		if err := h.Extension(extensionContext(req, rec, "openedge", "license_recap")); err != nil {
			t.Fatalf("handler error: %v", err)
		}

		body := rec.Body.String()
		if !strings.HasPrefix(body, `<div class="page page-limited">`) {
			t.Errorf("expected fragment to start with the mount element, got %q", body)
		}
		if strings.Contains(body, "<html") {
			t.Error("expected no page shell in fragment")
		}
	})

	t.Run("missing identity shows notice", func(t *testing.T) {
		h := newHandler(t, demodata.Fixtures{IdentityInstalled: false}, 5*time.Second)
		req := httptest.NewRequest(http.MethodGet, "/extensions/openedge/license_recap", nil)
		rec := httptest.NewRecorder()

		if err := h.Extension(extensionContext(req, rec, "openedge", "license_recap")); err != nil {
			t.Fatalf("handler error: %v", err)
		}

		body := rec.Body.String()
		if !strings.Contains(body, "Riverside Rules plugin is not installed...") {
			t.Error("expected not-installed notice")
		}
		if strings.Contains(body, "licenseRequest=") {
			t.Error("expected no license request link")
		}
	})

	t.Run("unknown extension is 404", func(t *testing.T) {
		h := newHandler(t, demodata.Fixtures{}, 5*time.Second)
		req := httptest.NewRequest(http.MethodGet, "/extensions/other/page", nil)
		rec := httptest.NewRecorder()

		err := h.Extension(extensionContext(req, rec, "other", "page"))

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusNotFound {
			t.Errorf("expected 404 HTTPError, got %v", err)
		}
	})

	t.Run("render timeout shows empty mount", func(t *testing.T) {
		blocker := blockingRequester{release: make(chan struct{})}
		defer close(blocker.release)

		h := newHandler(t, blocker, 20*time.Millisecond)
		req := httptest.NewRequest(http.MethodGet, "/extensions/openedge/license_recap", nil)
		rec := httptest.NewRecorder()

		if err := h.Extension(extensionContext(req, rec, "openedge", "license_recap")); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if !strings.Contains(rec.Body.String(), "<main><div></div></main>") {
			t.Errorf("expected empty mount, got %s", rec.Body.String())
		}
	})

	t.Run("client disconnect deactivates", func(t *testing.T) {
		blocker := blockingRequester{release: make(chan struct{})}
		defer close(blocker.release)

		h := newHandler(t, blocker, 0)
		ctx, cancel := context.WithCancel(context.Background())
		req := httptest.NewRequest(http.MethodGet, "/extensions/openedge/license_recap", nil).WithContext(ctx)
		rec := httptest.NewRecorder()

		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		if err := h.Extension(extensionContext(req, rec, "openedge", "license_recap")); err != nil {
			t.Errorf("expected no error for a dropped client, got %v", err)
		}
		if rec.Body.Len() != 0 {
			t.Errorf("expected nothing written, got %s", rec.Body.String())
		}
	})
}

func TestIndexRedirects(t *testing.T) {
	h := newHandler(t, demodata.Fixtures{}, time.Second)
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := h.Index(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Errorf("expected status %d, got %d", http.StatusFound, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/extensions/openedge/license_recap" {
		t.Errorf("expected redirect to license panel, got %q", loc)
	}
}

func TestListExtensions(t *testing.T) {
	h := newHandler(t, demodata.Fixtures{}, time.Second)
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/extensions", nil), rec)

	if err := h.ListExtensions(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `href="/extensions/openedge/license_recap"`) {
		t.Errorf("expected link to license panel, got %s", rec.Body.String())
	}
}
