// Command playerpulse-retention is the operator CLI: schema init, watched-list
// maintenance, and one-shot collection runs
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"playerpulse/internal/platform/config"
	"playerpulse/internal/platform/logger"
	"playerpulse/internal/platform/store"

	"playerpulse/internal/adapters/steam"

	"playerpulse/internal/services/collector"

	catalogrepo "playerpulse/internal/services/catalog/repo"
	catalogsvc "playerpulse/internal/services/catalog/service"
	seriesmod "playerpulse/internal/services/series/module"
	seriesrepo "playerpulse/internal/services/series/repo"
	seriessvc "playerpulse/internal/services/series/service"
)

const usage = `usage: playerpulse-retention <command> [flags]

commands:
  init                      create schema and tables
  watch-seed-top [--limit]  seed the watched list from the most-played chart
  watch-add <id> [--title]  add one id to the watched list
  watch-rm <id>             remove one id from the watched list
  watch-list                print the watched list
  watch-refresh-tags        re-fetch metadata for every watched id
  collect-once              run one sampling pass
`

type app struct {
	st      *store.Store
	catalog *catalogsvc.Svc
	series  *seriessvc.Svc
	engine  *collector.Engine
	log     *logger.Logger
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	l := logger.Get()
	ctx := context.Background()

	a, err := newApp(ctx, l)
	if err != nil {
		l.Error().Err(err).Msg("startup failed")
		os.Exit(1)
	}
	defer func() { _ = a.st.Close(context.Background()) }()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		l.Error().Err(err).Str("command", os.Args[1]).Msg("command failed")
		os.Exit(1)
	}
}

func newApp(ctx context.Context, l *logger.Logger) (*app, error) {
	root := config.New()
	appCfg := root.Prefix("PP_")
	pgCfg := root.Prefix("PP_PGSQL_")

	st, err := store.Open(ctx, store.Config{
		AppName: "playerpulse-retention",
		PG: store.PGConfig{
			Enabled:  true,
			URL:      pgCfg.MustString("DBURL"),
			Schema:   pgCfg.MayString("SCHEMA", "playerpulse"),
			MaxConns: int32(pgCfg.MayInt("MAX_CONNS", 4)),
		},
	}, store.WithLogger(*l))
	if err != nil {
		return nil, err
	}

	sc := steam.NewClient(steam.Options{
		APIKey:      appCfg.MayString("STEAM_API_KEY", ""),
		CountryCode: appCfg.MayString("STEAM_COUNTRY", "pl"),
		Language:    appCfg.MayString("STEAM_LANGUAGE", "english"),
	})

	catalog := catalogsvc.New(st.PG, catalogrepo.NewPG())
	series := seriessvc.New(st.PG, seriesrepo.NewPG(), seriesmod.FromConfig(appCfg).Cfg)
	engine := collector.New(collector.Config{
		SeedLimit: appCfg.MayInt("SEED_LIMIT", collector.DefaultSeedLimit),
	}, sc, catalog, catalog, series, series)

	return &app{st: st, catalog: catalog, series: series, engine: engine, log: l}, nil
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "init":
		return a.st.InitSchema(ctx)

	case "watch-seed-top":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", collector.DefaultSeedLimit, "most-played entries to take")
		_ = fs.Parse(args)
		return a.engine.SeedTop(ctx, *limit)

	case "watch-add":
		id, rest, err := takeID(args)
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		title := fs.String("title", "", "display name, fetched upstream when empty")
		_ = fs.Parse(rest)
		return a.watchAdd(ctx, id, *title)

	case "watch-rm":
		id, _, err := takeID(args)
		if err != nil {
			return err
		}
		return a.catalog.RemoveWatched(ctx, id)

	case "watch-list":
		return a.watchList(ctx)

	case "watch-refresh-tags":
		return a.engine.EnrichMetadata(ctx)

	case "collect-once":
		return a.engine.SampleOnce(ctx)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func takeID(args []string) (int64, []string, error) {
	if len(args) < 1 {
		return 0, nil, fmt.Errorf("an appid argument is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("appid must be an integer: %w", err)
	}
	return id, args[1:], nil
}

func (a *app) watchAdd(ctx context.Context, id int64, title string) error {
	if title == "" {
		if detail, err := a.engine.Detail(ctx, id); err == nil && detail != nil {
			title = detail.Name
		}
	}
	if title == "" {
		title = fmt.Sprintf("App %d", id)
	}
	count, err := a.engine.CurrentCount(ctx, id)
	if err != nil {
		a.log.Warn().Int64("appid", id).Err(err).Msg("count fetch failed, storing zero")
		count = 0
	}
	return a.catalog.UpsertWatched(ctx, id, title, count)
}

func (a *app) watchList(ctx context.Context) error {
	watched, err := a.catalog.ListWatched(ctx)
	if err != nil {
		return err
	}
	for _, w := range watched {
		fmt.Printf("%10d  %8d  %s\n", w.AppID, w.LastCount, w.Name)
	}
	return nil
}
