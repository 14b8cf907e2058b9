package domain

import "context"

// SampleWriterPort ingests raw samples
type SampleWriterPort interface {
	// InsertRaw stores one sample; a duplicate (id, ts) pair is a no-op
	InsertRaw(ctx context.Context, id, ts, count int64) error
}

// RollupPort derives and prunes aggregate buckets
type RollupPort interface {
	// RollupHourly aggregates raw samples into hourly buckets and returns the
	// number of buckets written; re-running a window is idempotent
	RollupHourly(ctx context.Context, w RollupWindow) (int64, error)

	// RollupDaily aggregates raw samples into daily buckets
	RollupDaily(ctx context.Context, w RollupWindow) (int64, error)

	// PurgeRaw deletes raw samples older than the retention window
	PurgeRaw(ctx context.Context, now int64) (int64, error)

	// PurgeHourly deletes hourly buckets older than the retention window
	PurgeHourly(ctx context.Context, now int64) (int64, error)

	// PurgeDaily deletes daily buckets older than the retention window
	PurgeDaily(ctx context.Context, now int64) (int64, error)

	// Purge runs all three retention deletes against the same reference time
	Purge(ctx context.Context, now int64) error
}

// SeriesReadPort serves bounded range reads
type SeriesReadPort interface {
	Series5Min(ctx context.Context, id int64, rng SeriesRange) ([]Point5Min, error)
	SeriesHourly(ctx context.Context, id int64, rng SeriesRange) ([]HourlyRow, error)
	SeriesDaily(ctx context.Context, id int64, rng SeriesRange) ([]DailyRow, error)
}
