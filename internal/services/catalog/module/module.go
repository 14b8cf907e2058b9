// Package module wires catalog into the API using modkit
package module

import (
	"net/http"

	"playerpulse/internal/modkit"
	"playerpulse/internal/modkit/httpkit"
	"playerpulse/internal/services/catalog/domain"
	cathttp "playerpulse/internal/services/catalog/http"
	"playerpulse/internal/services/catalog/repo"
	"playerpulse/internal/services/catalog/service"
)

// Ports exposed by the catalog module
type Ports struct {
	Watch    domain.WatchPort
	Metadata domain.MetadataPort
}

// Module implements the catalog service module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    Ports
	register func(httpkit.Router)

	svc *service.Svc
}

// New constructs the catalog module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("catalog")}, opts...)...)

	svc := service.New(deps.PG, repo.NewPG())

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = Ports{Watch: svc, Metadata: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		cathttp.Register(r, m.svc)
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
