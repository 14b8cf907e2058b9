package domain

import (
	"context"

	"playerpulse/internal/adapters/deals"
)

// ProfilePort serves player-centric pass-through reads
type ProfilePort interface {
	// Summary returns the public profile for a player identifier
	Summary(ctx context.Context, ident string) (PlayerSummary, error)

	// OwnedGames returns the player's library
	OwnedGames(ctx context.Context, ident string) ([]OwnedGame, error)

	// RecentlyPlayed returns the player's recent sessions
	RecentlyPlayed(ctx context.Context, ident string) ([]OwnedGame, error)

	// ResolveVanity maps a vanity name to a numeric id
	ResolveVanity(ctx context.Context, name string) (ResolvedID, error)
}

// CatalogLookupPort serves catalog-wide pass-through reads
type CatalogLookupPort interface {
	// ComingSoon returns upstream's featured coming-soon list
	ComingSoon(ctx context.Context) ([]ComingSoonEntry, error)

	// DealsForApp returns current store offers; empty when no aggregator is
	// configured
	DealsForApp(ctx context.Context, id int64) ([]deals.Deal, error)
}
