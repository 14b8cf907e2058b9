// Package collector holds the control loops that bind the scheduler, the
// upstream client, and the store
package collector

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"playerpulse/internal/adapters/steam"
	"playerpulse/internal/platform/logger"
	catalogdom "playerpulse/internal/services/catalog/domain"
	seriesdom "playerpulse/internal/services/series/domain"
)

// Defaults for the engine's cadences and caps
const (
	DefaultFanOut       = 10
	DefaultFetchTimeout = 10 * time.Second
	DefaultWriteTimeout = 5 * time.Second
	DefaultSampleCap    = 4 * time.Minute
	DefaultRefreshCap   = 5 * time.Minute
	DefaultHourlyTail   = 3 * time.Hour
	DefaultDailyTail    = 3 * 24 * time.Hour
	DefaultSeedLimit    = 100
)

// Config tunes the engine
type Config struct {
	// FanOut caps concurrent upstream fetches per job
	FanOut int64

	// FetchTimeout bounds one upstream call
	FetchTimeout time.Duration

	// WriteTimeout bounds one store write
	WriteTimeout time.Duration

	// SampleCap is the wall-clock budget of a sampling run
	SampleCap time.Duration

	// RefreshCap is the wall-clock budget of a watched-list refresh
	RefreshCap time.Duration

	// HourlyTail / DailyTail widen rollup windows so late samples are captured
	HourlyTail time.Duration
	DailyTail  time.Duration

	// SeedLimit caps how many most-played entries a refresh takes
	SeedLimit int
}

// Engine runs the collection jobs
type Engine struct {
	cfg    Config
	steam  *steam.Client
	watch  catalogdom.WatchPort
	meta   catalogdom.MetadataPort
	writer seriesdom.SampleWriterPort
	rollup seriesdom.RollupPort
	log    logger.Logger
	now    func() time.Time
}

// New creates a collection engine over the given ports
func New(
	cfg Config,
	sc *steam.Client,
	watch catalogdom.WatchPort,
	meta catalogdom.MetadataPort,
	writer seriesdom.SampleWriterPort,
	rollup seriesdom.RollupPort,
) *Engine {
	if cfg.FanOut <= 0 {
		cfg.FanOut = DefaultFanOut
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.SampleCap <= 0 {
		cfg.SampleCap = DefaultSampleCap
	}
	if cfg.RefreshCap <= 0 {
		cfg.RefreshCap = DefaultRefreshCap
	}
	if cfg.HourlyTail <= 0 {
		cfg.HourlyTail = DefaultHourlyTail
	}
	if cfg.DailyTail <= 0 {
		cfg.DailyTail = DefaultDailyTail
	}
	if cfg.SeedLimit <= 0 {
		cfg.SeedLimit = DefaultSeedLimit
	}
	return &Engine{
		cfg:    cfg,
		steam:  sc,
		watch:  watch,
		meta:   meta,
		writer: writer,
		rollup: rollup,
		log:    *logger.Named("collector"),
		now:    time.Now,
	}
}

// SampleOnce fetches the current player count for every watched id and stores
// a raw sample. Individual failures are counted, never fatal; the whole run is
// capped so a stuck upstream cannot stall the wheel
func (e *Engine) SampleOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.SampleCap)
	defer cancel()

	watched, err := e.watch.ListWatched(ctx)
	if err != nil {
		return err
	}

	var ok, fail atomic.Int64
	sem := semaphore.NewWeighted(e.cfg.FanOut)
	var wg sync.WaitGroup

	for _, w := range watched {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(w catalogdom.WatchedGame) {
			defer wg.Done()
			defer sem.Release(1)
			if err := e.sampleOne(ctx, w); err != nil {
				fail.Add(1)
				e.log.Warn().Int64("appid", w.AppID).Err(err).Msg("sample failed")
				return
			}
			ok.Add(1)
		}(w)
	}
	wg.Wait()

	e.log.Info().
		Int("watched", len(watched)).
		Int64("ok", ok.Load()).
		Int64("fail", fail.Load()).
		Msg("sampling pass done")
	if ctx.Err() != nil && ok.Load()+fail.Load() < int64(len(watched)) {
		return fmt.Errorf("sampling run hit its %s cap after %d of %d ids", e.cfg.SampleCap, ok.Load()+fail.Load(), len(watched))
	}
	return nil
}

func (e *Engine) sampleOne(ctx context.Context, w catalogdom.WatchedGame) error {
	fctx, fcancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
	count, err := e.steam.CurrentPlayers(fctx, w.AppID)
	fcancel()
	if err != nil {
		return err
	}
	ts := e.now().UTC().Unix()

	wctx, wcancel := context.WithTimeout(ctx, e.cfg.WriteTimeout)
	err = e.writer.InsertRaw(wctx, w.AppID, ts, count)
	wcancel()
	if err != nil {
		return err
	}

	wctx, wcancel = context.WithTimeout(ctx, e.cfg.WriteTimeout)
	err = e.watch.UpsertWatched(wctx, w.AppID, w.Name, count)
	wcancel()
	return err
}

// RefreshWatched pulls the upstream most-played chart and upserts each entry
// with its current count. Unknown ids get their proper name from app detail
func (e *Engine) RefreshWatched(ctx context.Context) error {
	return e.refresh(ctx, e.cfg.SeedLimit)
}

// SeedTop is RefreshWatched with an explicit entry cap, used by the CLI
func (e *Engine) SeedTop(ctx context.Context, limit int) error {
	if limit <= 0 {
		limit = e.cfg.SeedLimit
	}
	return e.refresh(ctx, limit)
}

func (e *Engine) refresh(ctx context.Context, limit int) error {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.RefreshCap)
	defer cancel()

	entries, err := e.steam.MostPlayed(ctx)
	if err != nil {
		return err
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	known := map[int64]string{}
	if watched, err := e.watch.ListWatched(ctx); err == nil {
		for _, w := range watched {
			known[w.AppID] = w.Name
		}
	}

	var ok, fail atomic.Int64
	sem := semaphore.NewWeighted(e.cfg.FanOut)
	var wg sync.WaitGroup

	for _, entry := range entries {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(entry steam.MostPlayedEntry) {
			defer wg.Done()
			defer sem.Release(1)
			if err := e.refreshOne(ctx, entry, known[entry.AppID]); err != nil {
				fail.Add(1)
				e.log.Warn().Int64("appid", entry.AppID).Err(err).Msg("refresh failed")
				return
			}
			ok.Add(1)
		}(entry)
	}
	wg.Wait()

	e.log.Info().
		Int("entries", len(entries)).
		Int64("ok", ok.Load()).
		Int64("fail", fail.Load()).
		Msg("watched-list refresh done")
	return nil
}

func (e *Engine) refreshOne(ctx context.Context, entry steam.MostPlayedEntry, knownName string) error {
	name := knownName
	if name == "" {
		dctx, dcancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
		detail, err := e.steam.AppDetail(dctx, entry.AppID)
		dcancel()
		if err == nil && detail != nil {
			name = detail.Name
		}
	}
	if name == "" {
		name = fmt.Sprintf("App %d", entry.AppID)
	}

	fctx, fcancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
	count, err := e.steam.CurrentPlayers(fctx, entry.AppID)
	fcancel()
	if err != nil {
		return err
	}

	wctx, wcancel := context.WithTimeout(ctx, e.cfg.WriteTimeout)
	defer wcancel()
	return e.watch.UpsertWatched(wctx, entry.AppID, name, count)
}

// EnrichMetadata fetches full detail for every watched id and rewrites its
// metadata record. Per-id errors are non-fatal
func (e *Engine) EnrichMetadata(ctx context.Context) error {
	watched, err := e.watch.ListWatched(ctx)
	if err != nil {
		return err
	}

	var ok, fail atomic.Int64
	sem := semaphore.NewWeighted(e.cfg.FanOut)
	var wg sync.WaitGroup

	for _, w := range watched {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(w catalogdom.WatchedGame) {
			defer wg.Done()
			defer sem.Release(1)
			if err := e.enrichOne(ctx, w.AppID); err != nil {
				fail.Add(1)
				e.log.Warn().Int64("appid", w.AppID).Err(err).Msg("enrich failed")
				return
			}
			ok.Add(1)
		}(w)
	}
	wg.Wait()

	e.log.Info().
		Int("watched", len(watched)).
		Int64("ok", ok.Load()).
		Int64("fail", fail.Load()).
		Msg("metadata enrich done")
	return nil
}

func (e *Engine) enrichOne(ctx context.Context, id int64) error {
	fctx, fcancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
	detail, err := e.steam.AppDetail(fctx, id)
	fcancel()
	if err != nil {
		return err
	}
	if detail == nil {
		// upstream has no record this tick, nothing to write
		return nil
	}

	wctx, wcancel := context.WithTimeout(ctx, e.cfg.WriteTimeout)
	defer wcancel()
	return e.meta.UpsertMetadata(wctx, catalogdom.MetadataWrite{
		AppID:              detail.AppID,
		Name:               detail.Name,
		Description:        detail.Description,
		HeaderImageURL:     detail.HeaderImage,
		BackgroundImageURL: detail.BackgroundImage,
		ReleaseDate:        detail.ReleaseDate,
		Price:              detail.Price,
		IsFree:             detail.IsFree,
		Genres:             detail.Genres,
		Categories:         detail.Categories,
	}, true)
}

// Detail fetches one storefront document under the engine's fetch timeout
func (e *Engine) Detail(ctx context.Context, id int64) (*steam.GameDetail, error) {
	fctx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
	defer cancel()
	return e.steam.AppDetail(fctx, id)
}

// CurrentCount fetches one live player count under the engine's fetch timeout
func (e *Engine) CurrentCount(ctx context.Context, id int64) (int64, error) {
	fctx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
	defer cancel()
	return e.steam.CurrentPlayers(fctx, id)
}

// RollupHourly aggregates the recent tail of raw samples into hourly buckets
func (e *Engine) RollupHourly(ctx context.Context) error {
	since := e.now().UTC().Add(-e.cfg.HourlyTail).Unix()
	n, err := e.rollup.RollupHourly(ctx, seriesdom.RollupWindow{Since: since})
	if err != nil {
		return err
	}
	e.log.Info().Int64("buckets", n).Msg("hourly rollup done")
	return nil
}

// RollupDaily aggregates the recent tail of raw samples into daily buckets
func (e *Engine) RollupDaily(ctx context.Context) error {
	since := e.now().UTC().Add(-e.cfg.DailyTail).Unix()
	n, err := e.rollup.RollupDaily(ctx, seriesdom.RollupWindow{Since: since})
	if err != nil {
		return err
	}
	e.log.Info().Int64("buckets", n).Msg("daily rollup done")
	return nil
}

// PurgeHourly prunes raw samples and hourly buckets past retention
func (e *Engine) PurgeHourly(ctx context.Context) error {
	now := e.now().UTC().Unix()
	if _, err := e.rollup.PurgeRaw(ctx, now); err != nil {
		return err
	}
	_, err := e.rollup.PurgeHourly(ctx, now)
	return err
}

// PurgeDaily prunes daily buckets past retention
func (e *Engine) PurgeDaily(ctx context.Context) error {
	_, err := e.rollup.PurgeDaily(ctx, e.now().UTC().Unix())
	return err
}
