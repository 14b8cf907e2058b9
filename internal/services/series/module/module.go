// Package module wires series into the API using modkit
package module

import (
	"net/http"

	"playerpulse/internal/modkit"
	"playerpulse/internal/modkit/httpkit"
	"playerpulse/internal/services/series/domain"
	serieshttp "playerpulse/internal/services/series/http"
	"playerpulse/internal/services/series/repo"
	"playerpulse/internal/services/series/service"
)

// Ports exposed by the series module
type Ports struct {
	Writer domain.SampleWriterPort
	Rollup domain.RollupPort
	Reader domain.SeriesReadPort
}

// Module implements the series service module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    Ports
	register func(httpkit.Router)

	svc *service.Svc
}

// New constructs the series module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("series")}, opts...)...)

	svc := service.New(deps.PG, repo.NewPG(), FromConfig(deps.Cfg).Cfg)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = Ports{Writer: svc, Rollup: svc, Reader: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		serieshttp.Register(r, m.svc)
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
