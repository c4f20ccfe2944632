package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mwecho "github.com/labstack/echo/v4/middleware"
	mwsvc "rssw.eu/licensepanel/internal/middleware"

	"rssw.eu/licensepanel/internal/config"
	"rssw.eu/licensepanel/internal/demodata"
	"rssw.eu/licensepanel/internal/extension"
	"rssw.eu/licensepanel/internal/hostapi"
	"rssw.eu/licensepanel/internal/logging"
	"rssw.eu/licensepanel/internal/metrics"
	"rssw.eu/licensepanel/internal/panel"

	webhttp "rssw.eu/licensepanel/internal/http/web"
)

type Server struct {
	Echo     *echo.Echo
	HTTP     *http.Server
	Registry *extension.Registry
}

func demoFixtures(cfg *config.Config) demodata.Fixtures {
	return demodata.Fixtures{IdentityInstalled: !cfg.DemoNoIdentity}
}

// Requester returns the host API the extensions read from: the embedded
// fixtures in demo mode, the configured host otherwise.
func Requester(cfg *config.Config) (extension.Requester, error) {
	if cfg.DemoMode {
		return demoFixtures(cfg), nil
	}
	// Reads are not cancelled by deactivation, so the client timeout is what
	// bounds a host that never answers.
	client, err := hostapi.NewClient(cfg.HostURL, &http.Client{Timeout: cfg.HostTimeout})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Extensions builds the registry of every extension this service mounts.
func Extensions(cfg *config.Config, logger *zap.Logger) (*extension.Registry, error) {
	reg := extension.NewRegistry()
	licensePanel := panel.New(panel.Options{
		PortalURL:    cfg.PortalURL,
		GateIdentity: cfg.GateIdentity,
		Logger:       logger,
	})
	if err := reg.Register(panel.ExtensionKey, licensePanel.Factory()); err != nil {
		return nil, err
	}
	return reg, nil
}

func Build(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	//
	// Host services
	//
	requester, err := Requester(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.DemoMode {
		logger.Info("serving demo fixtures instead of a host", zap.Bool("identity_installed", !cfg.DemoNoIdentity))
	} else {
		logger.Info("reading from host", zap.String("host_url", cfg.HostURL), zap.String("source", cfg.HostURLSource))
	}

	registry, err := Extensions(cfg, logger)
	if err != nil {
		return nil, err
	}

	webHandler := webhttp.NewHandler(registry, requester, panel.ExtensionKey, cfg.RenderTimeout, logger)

	//
	// Echo
	//
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Health endpoints
	e.GET("/livez", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/readyz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Ready")
	})

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// Middleware
	e.Use(mwsvc.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(mwecho.Recover())

	// Host API fixtures, so a separate instance can point host_url here
	if cfg.DemoMode {
		demoFixtures(cfg).RegisterRoutes(e)
	}

	// Web UI
	webGroup := e.Group("")
	webGroup.Use(mwsvc.PageContext())
	webhttp.RegisterRoutes(webGroup, webHandler)

	//
	// HTTP server
	//
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		Echo:     e,
		HTTP:     srv,
		Registry: registry,
	}, nil
}
