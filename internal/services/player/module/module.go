// Package module wires player into the API using modkit
package module

import (
	"net/http"

	"playerpulse/internal/adapters/deals"
	"playerpulse/internal/adapters/steam"
	"playerpulse/internal/modkit"
	"playerpulse/internal/modkit/httpkit"
	"playerpulse/internal/services/player/domain"
	playerhttp "playerpulse/internal/services/player/http"
	"playerpulse/internal/services/player/service"
)

// Ports exposed by the player module
type Ports struct {
	Profile domain.ProfilePort
	Lookup  domain.CatalogLookupPort
}

// Module implements the player service module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    Ports
	register func(httpkit.Router)

	svc *service.Svc
}

// New constructs the player module around the shared upstream clients
func New(deps modkit.Deps, sc *steam.Client, dc *deals.Client, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("player")}, opts...)...)

	svc := service.New(sc, dc)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = Ports{Profile: svc, Lookup: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		playerhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Name satisfies module.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies module.Module
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }

// MountRoutes satisfies module.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	mount := func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		m.register(rr)
	}
	if m.prefix == "" {
		r.Group(mount)
		return
	}
	r.Route(m.prefix, mount)
}
