// Package api provides the HTTP API for the application
package api

import (
	stdhttp "net/http"
	"time"

	"playerpulse/internal/platform/config"
	"playerpulse/internal/platform/logger"
	phttp "playerpulse/internal/platform/net/http"
	"playerpulse/internal/platform/net/middleware"
	"playerpulse/internal/platform/store"

	"playerpulse/internal/adapters/deals"
	"playerpulse/internal/adapters/steam"

	"playerpulse/internal/modkit"
	"playerpulse/internal/modkit/httpkit"
	"playerpulse/internal/modkit/module"
	"playerpulse/internal/modkit/swaggerkit"

	metahttp "playerpulse/internal/services/meta/http"

	authmod "playerpulse/internal/services/auth/module"
	catalogmod "playerpulse/internal/services/catalog/module"
	playermod "playerpulse/internal/services/player/module"
	seriesmod "playerpulse/internal/services/series/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Steam          *steam.Client
	Deals          *deals.Client
	Scheduler      metahttp.SchedulerStatus
	EnableSwagger  bool
	EnableProfiler bool
	RateRPS        float64
	RateBurst      float64
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// common stack for the whole tree: correlation, recovery, logging, cors
	r.Use(httpkit.CommonStack()...)

	authModule := authmod.New(deps)
	auth := module.MustPortsOf[authmod.Ports](authModule)

	mods := []module.Module{
		catalogmod.New(deps),
		seriesmod.New(deps),
		playermod.New(deps, opt.Steam, opt.Deals),
	}

	// unauthenticated: identity and health
	metahttp.Register(r, metahttp.Deps{
		ServiceName: "playerpulse-api",
		StartedAt:   time.Now(),
		DB:          opt.Store,
		Scheduler:   opt.Scheduler,
	})

	// login carries its own signature check, no bearer in front
	module.Register(authModule.Name(), authModule.Ports())
	authModule.MountRoutes(r)

	// docs and profiler sit behind bearer auth only
	r.Group(func(gr phttp.Router) {
		gr.Use(httpkit.Auth(auth.Bearer))
		swaggerkit.Mount(gr, opt.EnableSwagger)
		phttp.MountProfiler(gr, "/debug", opt.EnableProfiler)
	})

	// everything under /api requires bearer + request signature
	httpkit.MountUnder(r, "/api", []func(stdhttp.Handler) stdhttp.Handler{
		httpkit.Auth(auth.Bearer),
		httpkit.Signed(auth.Signed),
		httpkit.RateLimit(middleware.RateLimitOptions{RPS: opt.RateRPS, Burst: opt.RateBurst}),
	}, func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name for cross-module lookups
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
