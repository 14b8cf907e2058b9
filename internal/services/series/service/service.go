// Package service provides the series service implementation
package service

import (
	"context"
	"time"

	perr "playerpulse/internal/platform/errors"
	"playerpulse/internal/platform/logger"

	"playerpulse/internal/modkit/repokit"
	catalogsvc "playerpulse/internal/services/catalog/service"
	"playerpulse/internal/services/series/domain"
	"playerpulse/internal/services/series/repo"
)

const (
	// DefaultRawRetention keeps raw samples for two weeks
	DefaultRawRetention = 14 * 24 * time.Hour

	// DefaultHourlyRetention keeps hourly buckets for a month
	DefaultHourlyRetention = 30 * 24 * time.Hour

	// DefaultDailyRetention keeps daily buckets for a quarter
	DefaultDailyRetention = 90 * 24 * time.Hour
)

// fiveMinWindow is the width of an on-the-fly series bucket
const fiveMinWindow = 300

// Config configures retention windows
type Config struct {
	RawRetention    time.Duration
	HourlyRetention time.Duration
	DailyRetention  time.Duration
}

// Service defines the service contract for series
type Service interface {
	domain.SampleWriterPort
	domain.RollupPort
	domain.SeriesReadPort
}

// Svc implements the Service interface
type Svc struct {
	cfg    Config
	db     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
	log    logger.Logger
}

// New creates a new series service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) *Svc {
	if cfg.RawRetention <= 0 {
		cfg.RawRetention = DefaultRawRetention
	}
	if cfg.HourlyRetention <= 0 {
		cfg.HourlyRetention = DefaultHourlyRetention
	}
	if cfg.DailyRetention <= 0 {
		cfg.DailyRetention = DefaultDailyRetention
	}
	return &Svc{cfg: cfg, db: db, binder: binder, log: *logger.Named("series")}
}

// InsertRaw implements domain.SampleWriterPort
func (s *Svc) InsertRaw(ctx context.Context, id, ts, count int64) error {
	if err := catalogsvc.ValidateAppID(id); err != nil {
		return err
	}
	if ts < 0 || count < 0 {
		return perr.InvalidArgf("ts and player_count must be non-negative")
	}
	return s.binder.Bind(s.db).InsertRaw(ctx, id, ts, count)
}

// RollupHourly implements domain.RollupPort
func (s *Svc) RollupHourly(ctx context.Context, w domain.RollupWindow) (int64, error) {
	return s.binder.Bind(s.db).RollupHourly(ctx, w)
}

// RollupDaily implements domain.RollupPort
func (s *Svc) RollupDaily(ctx context.Context, w domain.RollupWindow) (int64, error) {
	return s.binder.Bind(s.db).RollupDaily(ctx, w)
}

// PurgeRaw implements domain.RollupPort
func (s *Svc) PurgeRaw(ctx context.Context, now int64) (int64, error) {
	return s.binder.Bind(s.db).DeleteRawBefore(ctx, now-int64(s.cfg.RawRetention.Seconds()))
}

// PurgeHourly implements domain.RollupPort
func (s *Svc) PurgeHourly(ctx context.Context, now int64) (int64, error) {
	return s.binder.Bind(s.db).DeleteHourlyBefore(ctx, now-int64(s.cfg.HourlyRetention.Seconds()))
}

// PurgeDaily implements domain.RollupPort
func (s *Svc) PurgeDaily(ctx context.Context, now int64) (int64, error) {
	cutoff := now - int64(s.cfg.DailyRetention.Seconds())
	day := time.Unix(cutoff, 0).UTC().Format("2006-01-02")
	return s.binder.Bind(s.db).DeleteDailyBefore(ctx, day)
}

// Purge implements domain.RollupPort
// now is wall-clock Unix seconds so retention survives process restarts
func (s *Svc) Purge(ctx context.Context, now int64) error {
	raw, err := s.PurgeRaw(ctx, now)
	if err != nil {
		return err
	}
	hourly, err := s.PurgeHourly(ctx, now)
	if err != nil {
		return err
	}
	daily, err := s.PurgeDaily(ctx, now)
	if err != nil {
		return err
	}
	s.log.Info().
		Int64("raw", raw).
		Int64("hourly", hourly).
		Int64("daily", daily).
		Msg("retention purge complete")
	return nil
}

// Series5Min implements domain.SeriesReadPort
// buckets are formed over the raw samples in 300 s windows anchored at since;
// each bucket is labeled with its first sample's timestamp floored to 300 s
func (s *Svc) Series5Min(ctx context.Context, id int64, rng domain.SeriesRange) ([]domain.Point5Min, error) {
	if err := validateRange(id, rng); err != nil {
		return nil, err
	}
	raw, err := s.binder.Bind(s.db).RawRange(ctx, id, rng)
	if err != nil {
		return nil, err
	}
	return bucket5Min(raw, rng.Since), nil
}

// SeriesHourly implements domain.SeriesReadPort
func (s *Svc) SeriesHourly(ctx context.Context, id int64, rng domain.SeriesRange) ([]domain.HourlyRow, error) {
	if err := validateRange(id, rng); err != nil {
		return nil, err
	}
	rows, err := s.binder.Bind(s.db).HourlyRange(ctx, id, rng)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.HourlyRow{}
	}
	return rows, nil
}

// SeriesDaily implements domain.SeriesReadPort
func (s *Svc) SeriesDaily(ctx context.Context, id int64, rng domain.SeriesRange) ([]domain.DailyRow, error) {
	if err := validateRange(id, rng); err != nil {
		return nil, err
	}
	rows, err := s.binder.Bind(s.db).DailyRange(ctx, id, rng)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.DailyRow{}
	}
	return rows, nil
}

func validateRange(id int64, rng domain.SeriesRange) error {
	if err := catalogsvc.ValidateAppID(id); err != nil {
		return err
	}
	if rng.Since < 0 || rng.Until < rng.Since {
		return perr.InvalidArgf("since and until must form a non-empty range")
	}
	return nil
}

// bucket5Min groups ordered samples into 300 s windows anchored at since
func bucket5Min(raw []domain.RawSample, since int64) []domain.Point5Min {
	out := []domain.Point5Min{}
	if len(raw) == 0 {
		return out
	}

	var (
		window  int64 = -1
		sum     int64
		n       int64
		min     int64
		max     int64
		firstTS int64
	)
	flush := func() {
		if n == 0 {
			return
		}
		out = append(out, domain.Point5Min{
			TS:  firstTS - firstTS%fiveMinWindow,
			Avg: float64(sum) / float64(n),
			Min: min,
			Max: max,
		})
	}
	for _, r := range raw {
		w := (r.TS - since) / fiveMinWindow
		if w != window {
			flush()
			window, sum, n, min, max, firstTS = w, 0, 0, r.Count, r.Count, r.TS
		}
		sum += r.Count
		n++
		if r.Count < min {
			min = r.Count
		}
		if r.Count > max {
			max = r.Count
		}
	}
	flush()
	return out
}
