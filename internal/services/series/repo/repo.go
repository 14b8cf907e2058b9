// Package repo provides the series repository implementation
package repo

import (
	"context"
	"fmt"
	"strings"

	"playerpulse/internal/platform/store"

	"playerpulse/internal/modkit/repokit"
	"playerpulse/internal/services/series/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the series repository
type Storage interface {
	InsertRaw(ctx context.Context, id, ts, count int64) error
	RollupHourly(ctx context.Context, w domain.RollupWindow) (int64, error)
	RollupDaily(ctx context.Context, w domain.RollupWindow) (int64, error)
	DeleteRawBefore(ctx context.Context, cutoff int64) (int64, error)
	DeleteHourlyBefore(ctx context.Context, cutoff int64) (int64, error)
	DeleteDailyBefore(ctx context.Context, day string) (int64, error)
	RawRange(ctx context.Context, id int64, rng domain.SeriesRange) ([]domain.RawSample, error)
	HourlyRange(ctx context.Context, id int64, rng domain.SeriesRange) ([]domain.HourlyRow, error)
	DailyRange(ctx context.Context, id int64, rng domain.SeriesRange) ([]domain.DailyRow, error)
}

// InsertRaw implements Storage; duplicate (appid, ts) pairs are ignored
func (s *pg) InsertRaw(ctx context.Context, id, ts, count int64) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO player_samples (appid, ts, player_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (appid, ts) DO NOTHING
	`, id, ts, count)
	return err
}

// rollupFilter renders the optional window filters shared by both rollups
func rollupFilter(w domain.RollupWindow, args *[]any) string {
	var sb strings.Builder
	arg := func(v any) string { *args = append(*args, v); return fmt.Sprintf("$%d", len(*args)) }

	sb.WriteString(" WHERE TRUE")
	if w.Since > 0 {
		sb.WriteString(" AND ts >= " + arg(w.Since))
	}
	if w.Until > 0 {
		sb.WriteString(" AND ts <= " + arg(w.Until))
	}
	if len(w.IDs) > 0 {
		sb.WriteString(" AND appid = ANY(" + arg(w.IDs) + ")")
	}
	return sb.String()
}

// RollupHourly implements Storage
// percentile_disc matches the discrete p95 rule: ascending sort, take the
// element at max(0, ceil(0.95*N)-1)
func (s *pg) RollupHourly(ctx context.Context, w domain.RollupWindow) (int64, error) {
	var args []any
	where := rollupFilter(w, &args)

	tag, err := s.q.Exec(ctx, `
		INSERT INTO hourly_stats (appid, hour_ts, avg, min, max, p95)
		SELECT
			appid,
			(ts / 3600) * 3600 AS hour_ts,
			AVG(player_count),
			MIN(player_count),
			MAX(player_count),
			percentile_disc(0.95) WITHIN GROUP (ORDER BY player_count)
		FROM player_samples
	`+where+`
		GROUP BY appid, (ts / 3600) * 3600
		ON CONFLICT (appid, hour_ts) DO UPDATE SET
			avg = EXCLUDED.avg,
			min = EXCLUDED.min,
			max = EXCLUDED.max,
			p95 = EXCLUDED.p95
	`, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// RollupDaily implements Storage
func (s *pg) RollupDaily(ctx context.Context, w domain.RollupWindow) (int64, error) {
	var args []any
	where := rollupFilter(w, &args)

	tag, err := s.q.Exec(ctx, `
		INSERT INTO daily_stats (appid, day, avg, min, max, p95)
		SELECT
			appid,
			to_char(to_timestamp(ts) AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
			AVG(player_count),
			MIN(player_count),
			MAX(player_count),
			percentile_disc(0.95) WITHIN GROUP (ORDER BY player_count)
		FROM player_samples
	`+where+`
		GROUP BY appid, to_char(to_timestamp(ts) AT TIME ZONE 'UTC', 'YYYY-MM-DD')
		ON CONFLICT (appid, day) DO UPDATE SET
			avg = EXCLUDED.avg,
			min = EXCLUDED.min,
			max = EXCLUDED.max,
			p95 = EXCLUDED.p95
	`, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteRawBefore implements Storage
func (s *pg) DeleteRawBefore(ctx context.Context, cutoff int64) (int64, error) {
	tag, err := s.q.Exec(ctx, `DELETE FROM player_samples WHERE ts < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteHourlyBefore implements Storage
func (s *pg) DeleteHourlyBefore(ctx context.Context, cutoff int64) (int64, error) {
	tag, err := s.q.Exec(ctx, `DELETE FROM hourly_stats WHERE hour_ts < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteDailyBefore implements Storage; ISO dates compare lexicographically
func (s *pg) DeleteDailyBefore(ctx context.Context, day string) (int64, error) {
	tag, err := s.q.Exec(ctx, `DELETE FROM daily_stats WHERE day < $1`, day)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// RawRange implements Storage; bounds are inclusive
func (s *pg) RawRange(ctx context.Context, id int64, rng domain.SeriesRange) ([]domain.RawSample, error) {
	return store.Many(ctx, s.q, func(row store.Row) (domain.RawSample, error) {
		var r domain.RawSample
		err := row.Scan(&r.AppID, &r.TS, &r.Count)
		return r, err
	}, `
		SELECT appid, ts, player_count
		FROM player_samples
		WHERE appid = $1 AND ts >= $2 AND ts <= $3
		ORDER BY ts ASC
	`, id, rng.Since, rng.Until)
}

// HourlyRange implements Storage
func (s *pg) HourlyRange(ctx context.Context, id int64, rng domain.SeriesRange) ([]domain.HourlyRow, error) {
	return store.Many(ctx, s.q, func(row store.Row) (domain.HourlyRow, error) {
		var r domain.HourlyRow
		err := row.Scan(&r.AppID, &r.HourTS, &r.Avg, &r.Min, &r.Max, &r.P95)
		return r, err
	}, `
		SELECT appid, hour_ts, avg, min, max, p95
		FROM hourly_stats
		WHERE appid = $1 AND hour_ts >= $2 AND hour_ts <= $3
		ORDER BY hour_ts ASC
	`, id, rng.Since, rng.Until)
}

// DailyRange implements Storage
func (s *pg) DailyRange(ctx context.Context, id int64, rng domain.SeriesRange) ([]domain.DailyRow, error) {
	return store.Many(ctx, s.q, func(row store.Row) (domain.DailyRow, error) {
		var r domain.DailyRow
		err := row.Scan(&r.AppID, &r.Day, &r.Avg, &r.Min, &r.Max, &r.P95)
		return r, err
	}, `
		SELECT appid, day, avg, min, max, p95
		FROM daily_stats
		WHERE appid = $1
			AND day >= to_char(to_timestamp($2) AT TIME ZONE 'UTC', 'YYYY-MM-DD')
			AND day <= to_char(to_timestamp($3) AT TIME ZONE 'UTC', 'YYYY-MM-DD')
		ORDER BY day ASC
	`, id, rng.Since, rng.Until)
}
