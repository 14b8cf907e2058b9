// @title         PlayerPulse API
// @version       0.1.0
// @description   Signed read API over watched-game player populations

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"playerpulse/internal/platform/config"
	"playerpulse/internal/platform/logger"
	phttp "playerpulse/internal/platform/net/http"
	"playerpulse/internal/platform/store"

	"playerpulse/internal/adapters/deals"
	"playerpulse/internal/adapters/steam"

	"playerpulse/internal/services/api"
	"playerpulse/internal/services/collector"
	"playerpulse/internal/services/sched"

	catalogrepo "playerpulse/internal/services/catalog/repo"
	catalogsvc "playerpulse/internal/services/catalog/service"
	seriesmod "playerpulse/internal/services/series/module"
	seriesrepo "playerpulse/internal/services/series/repo"
	seriessvc "playerpulse/internal/services/series/service"
)

func main() {
	root := config.New()
	appCfg := root.Prefix("PP_")
	pgCfg := root.Prefix("PP_PGSQL_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "playerpulse-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				Schema:      pgCfg.MayString("SCHEMA", "playerpulse"),
				MinConns:    int32(pgCfg.MayInt("MIN_CONNS", 10)),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 20)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// schema creation failures are fatal at startup
	if err := st.InitSchema(ctx); err != nil {
		l.Fatal().Err(err).Msg("schema init failed")
	}

	sc := steam.NewClient(steam.Options{
		APIKey:      appCfg.MayString("STEAM_API_KEY", ""),
		CountryCode: appCfg.MayString("STEAM_COUNTRY", "pl"),
		Language:    appCfg.MayString("STEAM_LANGUAGE", "english"),
	})
	dc := deals.NewClient(deals.Options{
		APIKey: appCfg.MayString("DEALS_API_KEY", ""),
	})

	catalog := catalogsvc.New(st.PG, catalogrepo.NewPG())
	series := seriessvc.New(st.PG, seriesrepo.NewPG(), seriesmod.FromConfig(appCfg).Cfg)

	engine := collector.New(collector.Config{
		SeedLimit: appCfg.MayInt("SEED_LIMIT", collector.DefaultSeedLimit),
	}, sc, catalog, catalog, series, series)

	wheel := sched.New(appCfg.MayDuration("SCHED_DRAIN", sched.DefaultDrain))
	if err := engine.RegisterJobs(wheel); err != nil {
		l.Fatal().Err(err).Msg("job registration failed")
	}

	// first boot: an empty watched list is seeded from the most-played chart
	if watched, err := catalog.ListWatched(ctx); err == nil && len(watched) == 0 {
		l.Info().Msg("watched list empty, seeding from most-played")
		if err := engine.RefreshWatched(ctx); err != nil {
			l.Warn().Err(err).Msg("initial seed failed, continuing")
		}
	}

	wheel.Start()
	defer wheel.Stop()

	srv := phttp.NewServer(appCfg)
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         appCfg,
			Store:          st,
			Logger:         l,
			Steam:          sc,
			Deals:          dc,
			Scheduler:      wheel,
			EnableSwagger:  appCfg.MayBool("SWAGGER", true),
			EnableProfiler: appCfg.MayBool("PROFILER", false),
			RateRPS:        appCfg.MayFloat64("RATE_RPS", 10),
			RateBurst:      appCfg.MayFloat64("RATE_BURST", 20),
		},
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	select {
	case <-ctx.Done():
		l.Info().Msg("shutdown signal received")
		shCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			l.Error().Err(err).Msg("http shutdown failed")
		}
	case err := <-errCh:
		if err != nil {
			l.Fatal().Err(err).Msg("http server stopped")
		}
	}
}
