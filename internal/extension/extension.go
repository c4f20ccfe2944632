// Package extension defines the services a host hands to a page extension
// and the registry extensions are mounted from.
package extension

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"sync"

	"rssw.eu/licensepanel/internal/dom"
)

var (
	ErrEmptyKey     = errors.New("extension key is empty")
	ErrDuplicateKey = errors.New("extension key already registered")
	ErrNilFactory   = errors.New("extension factory is nil")
)

// Requester reads JSON from the host platform's web API.
type Requester interface {
	GetJSON(ctx context.Context, path string, params url.Values, out any) error
}

// Host is what an extension receives when it is activated.
type Host struct {
	Mount     *dom.Mount
	Requester Requester
}

// Instance is a running extension.
type Instance interface {
	// Deactivate tells the extension its mount is no longer displayed.
	Deactivate()
	// Done is closed once the extension has nothing left to render.
	Done() <-chan struct{}
}

// Factory activates an extension against a host.
type Factory func(ctx context.Context, host Host) Instance

// Registry maps extension keys (plugin/page) to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under key.
func (r *Registry) Register(key string, f Factory) error {
	if key == "" {
		return ErrEmptyKey
	}
	if f == nil {
		return ErrNilFactory
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[key]; ok {
		return ErrDuplicateKey
	}
	r.factories[key] = f
	return nil
}

// Lookup returns the factory registered under key.
func (r *Registry) Lookup(key string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[key]
	return f, ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
