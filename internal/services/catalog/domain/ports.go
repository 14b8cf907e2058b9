package domain

import "context"

// WatchPort maintains the watched list
type WatchPort interface {
	// UpsertWatched inserts id or updates last_count; name sticks on conflict
	UpsertWatched(ctx context.Context, id int64, name string, lastCount int64) error

	// RemoveWatched deletes id; samples, rollups, and metadata cascade
	RemoveWatched(ctx context.Context, id int64) error

	// ListWatched returns the watched list ordered by last_count descending
	ListWatched(ctx context.Context) ([]WatchedGame, error)
}

// MetadataPort maintains and serves game metadata
type MetadataPort interface {
	// UpsertMetadata replaces the scalar fields; replace controls whether the
	// relationship sets are rewritten or union-inserted
	UpsertMetadata(ctx context.Context, rec MetadataWrite, replace bool) error

	// GetGame returns one game with aggregated tags, not-found when absent
	GetGame(ctx context.Context, id int64) (Game, error)

	// GetAllGames returns every game with aggregated tags
	GetAllGames(ctx context.Context) ([]Game, error)

	// TagsBatch returns the tag sets for up to 100 ids
	TagsBatch(ctx context.Context, in TagsBatchInput) (TagsBatchOutput, error)

	// Genres returns the distinct sorted genre list
	Genres(ctx context.Context) ([]string, error)

	// Categories returns the distinct sorted category list
	Categories(ctx context.Context) ([]string, error)
}
