// Package panel renders the CABL license overview: the licenses registered on
// the host, and a link for requesting a new license for this server.
//
// An activation runs two reads in sequence. The license list is fetched
// first and, if the activation is still displayed, rendered into the mount.
// Only then is the server identity fetched; its result fills the code block
// and the request link, or a not-installed notice when the read fails.
package panel

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"rssw.eu/licensepanel/internal/extension"
	"rssw.eu/licensepanel/internal/identity"
	"rssw.eu/licensepanel/internal/license"
	"rssw.eu/licensepanel/internal/metrics"
	"rssw.eu/licensepanel/internal/portal"
)

// ExtensionKey identifies the panel to the host.
const ExtensionKey = "openedge/license_recap"

// Host endpoints read by the panel.
const (
	LicensesPath = "/api/openedge/licenses"
	IdentityPath = "/api/riverside/oeinfo"
)

type Options struct {
	// PortalURL is the license portal base URL. Empty uses portal.DefaultBaseURL.
	PortalURL string

	// GateIdentity also skips the identity render once the activation has
	// been deactivated. By default only the license render is gated and the
	// identity result is written even after deactivation.
	GateIdentity bool

	Logger *zap.Logger
}

// Panel is the license overview extension. One Panel serves any number of
// activations.
type Panel struct {
	links        portal.Links
	gateIdentity bool
	logger       *zap.Logger
}

func New(opts Options) *Panel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Panel{
		links:        portal.NewLinks(opts.PortalURL),
		gateIdentity: opts.GateIdentity,
		logger:       logger.With(zap.String("extension", ExtensionKey)),
	}
}

// Factory adapts the panel for an extension.Registry.
func (p *Panel) Factory() extension.Factory {
	return func(ctx context.Context, host extension.Host) extension.Instance {
		return p.Activate(ctx, host)
	}
}

// Activation is one displayed instance of the panel.
type Activation struct {
	id   string
	life Lifecycle
	done chan struct{}

	mu  sync.Mutex
	err error
}

// ID identifies the activation in logs.
func (a *Activation) ID() string {
	return a.id
}

// Deactivate marks the panel as no longer displayed. A license list that
// arrives afterwards is not rendered. Requests already in flight are not
// aborted.
func (a *Activation) Deactivate() {
	a.life.Deactivate()
}

// Done is closed once the activation has finished its work.
func (a *Activation) Done() <-chan struct{} {
	return a.done
}

func (a *Activation) State() State {
	return a.life.State()
}

// Err returns the license list read error, if that read failed.
func (a *Activation) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

func (a *Activation) setErr(err error) {
	a.mu.Lock()
	a.err = err
	a.mu.Unlock()
}

// Activate starts rendering into host.Mount and returns immediately.
func (p *Panel) Activate(ctx context.Context, host extension.Host) *Activation {
	a := &Activation{
		id:   uuid.NewString(),
		done: make(chan struct{}),
	}
	a.life.Activate()

	go p.run(ctx, host, a, p.logger.With(zap.String("activation", a.id)))
	return a
}

func (p *Panel) run(ctx context.Context, host extension.Host, a *Activation, log *zap.Logger) {
	defer close(a.done)

	var list license.List
	if err := host.Requester.GetJSON(ctx, LicensesPath, nil, &list); err != nil {
		// Nothing is shown to the user; the mount stays blank.
		a.setErr(err)
		metrics.PanelActivationsTotal.WithLabelValues(ExtensionKey, metrics.OutcomeFailed).Inc()
		log.Warn("license list read failed", zap.Error(err))
		return
	}

	var slots identitySlots
	rendered := a.life.RunIfActive(func() {
		host.Mount.Update(func(root *html.Node) {
			slots = renderLicenses(root, list, p.links)
		})
	})
	if !rendered {
		metrics.PanelActivationsTotal.WithLabelValues(ExtensionKey, metrics.OutcomeSkipped).Inc()
		log.Debug("deactivated before license list arrived")
		return
	}
	metrics.PanelActivationsTotal.WithLabelValues(ExtensionKey, metrics.OutcomeRendered).Inc()
	log.Debug("license list rendered", zap.Int("licenses", list.Len()))

	var payload identity.Payload
	err := host.Requester.GetJSON(ctx, IdentityPath, nil, &payload)

	apply := func() {
		host.Mount.Update(func(*html.Node) {
			if err != nil {
				renderIdentityMissing(slots)
				return
			}
			renderIdentity(slots, payload, p.links)
		})
	}
	if p.gateIdentity {
		if !a.life.RunIfActive(apply) {
			log.Debug("deactivated before server identity arrived")
			return
		}
	} else {
		apply()
	}

	if err != nil {
		metrics.IdentityFallbacksTotal.WithLabelValues(ExtensionKey).Inc()
	}
}
