// Package module wires auth into the API using modkit
package module

import (
	stdhttp "net/http"

	"playerpulse/internal/modkit"
	"playerpulse/internal/modkit/httpkit"
	"playerpulse/internal/platform/logger"
	"playerpulse/internal/platform/net/middleware"
	"playerpulse/internal/services/auth/domain"
	authhttp "playerpulse/internal/services/auth/http"
	"playerpulse/internal/services/auth/service"
)

// Ports exposed by the auth module
type Ports struct {
	// Auth is the full service surface for in-process callers
	Auth domain.ServicePort

	// Bearer plugs into the bearer middleware
	Bearer middleware.AuthPort

	// Signed plugs into the request-signature middleware
	Signed middleware.SignedPort
}

// Module implements the auth service module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(stdhttp.Handler) stdhttp.Handler
	ports    Ports
	register func(httpkit.Router)

	svc *service.Svc
}

// New constructs the auth module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("auth"),
		modkit.WithPrefix("/auth"),
	}, opts...)...)

	mo := FromConfig(deps.Cfg)
	if mo.SigningSecret == "" {
		// deliberately loud and obviously unsafe so misconfiguration is visible
		logger.Named("auth").Warn().Msg("AUTH_SIGNING_SECRET not set, using an insecure default")
		mo.SigningSecret = "insecure-default-signing-secret"
	}

	svc := service.New(service.Config{
		Credentials:   mo.Credentials,
		SigningSecret: mo.SigningSecret,
		TokenTTL:      mo.TokenTTL,
		Leeway:        mo.Leeway,
		SkewWindow:    mo.SkewWindow,
		NonceCap:      mo.NonceCap,
		NonceTTL:      mo.NonceTTL,
	})

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = Ports{
		Auth: svc,
		Bearer: httpkit.NewPortFunc(func(token string) (string, error) {
			claims, err := svc.VerifyToken(token)
			if err != nil {
				return "", err
			}
			return claims.ClientID, nil
		}),
		Signed: signedPort{v: svc},
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		authhttp.Register(r, m.svc)
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
// login carries its own signature check, no bearer in front
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		rr.Group(func(gr httpkit.Router) {
			gr.Use(httpkit.Signed(m.ports.Signed))
			m.register(gr)
		})
	})
}

// signedPort adapts the request verifier to the middleware seam
type signedPort struct {
	v domain.RequestVerifier
}

func (p signedPort) Verify(r *stdhttp.Request, body []byte) (string, error) {
	return p.v.VerifySignature(r.Method, r.URL.Path, body, domain.SignedHeaders{
		ClientID:  r.Header.Get("X-Client-Id"),
		Timestamp: r.Header.Get("X-Timestamp"),
		Nonce:     r.Header.Get("X-Nonce"),
		Signature: r.Header.Get("X-Signature"),
	})
}
