// Package service provides the player service implementation
package service

import (
	"context"

	perr "playerpulse/internal/platform/errors"

	"playerpulse/internal/adapters/deals"
	"playerpulse/internal/adapters/steam"
	catalogsvc "playerpulse/internal/services/catalog/service"
	"playerpulse/internal/services/player/domain"
)

// Service defines the service contract for player
type Service interface {
	domain.ProfilePort
	domain.CatalogLookupPort
}

// Svc implements the Service interface
type Svc struct {
	steam *steam.Client
	deals *deals.Client
}

// New creates a new player service; the deals client may be disabled
func New(sc *steam.Client, dc *deals.Client) *Svc {
	return &Svc{steam: sc, deals: dc}
}

// resolve turns any accepted identifier into a numeric account id
func (s *Svc) resolve(ctx context.Context, raw string) (string, error) {
	ident, err := ParseIdentifier(raw)
	if err != nil {
		return "", err
	}
	if ident.Kind == domain.KindSteamID {
		return ident.Value, nil
	}
	id, err := s.steam.ResolveVanity(ctx, ident.Value)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", perr.NotFoundf("vanity name %q not found", ident.Value)
	}
	return id, nil
}

// Summary implements domain.ProfilePort
func (s *Svc) Summary(ctx context.Context, ident string) (domain.PlayerSummary, error) {
	id, err := s.resolve(ctx, ident)
	if err != nil {
		return domain.PlayerSummary{}, err
	}
	sum, err := s.steam.PlayerSummary(ctx, id)
	if err != nil {
		return domain.PlayerSummary{}, err
	}
	if sum == nil {
		return domain.PlayerSummary{}, perr.NotFoundf("player %s not found", id)
	}
	return *sum, nil
}

// OwnedGames implements domain.ProfilePort
func (s *Svc) OwnedGames(ctx context.Context, ident string) ([]domain.OwnedGame, error) {
	id, err := s.resolve(ctx, ident)
	if err != nil {
		return nil, err
	}
	games, err := s.steam.OwnedGames(ctx, id)
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []domain.OwnedGame{}
	}
	return games, nil
}

// RecentlyPlayed implements domain.ProfilePort
func (s *Svc) RecentlyPlayed(ctx context.Context, ident string) ([]domain.OwnedGame, error) {
	id, err := s.resolve(ctx, ident)
	if err != nil {
		return nil, err
	}
	games, err := s.steam.RecentlyPlayed(ctx, id)
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []domain.OwnedGame{}
	}
	return games, nil
}

// ResolveVanity implements domain.ProfilePort
func (s *Svc) ResolveVanity(ctx context.Context, name string) (domain.ResolvedID, error) {
	if !vanityRE.MatchString(name) {
		return domain.ResolvedID{}, perr.InvalidArgf("vanity name must be 2-32 chars of [A-Za-z0-9_-]")
	}
	id, err := s.steam.ResolveVanity(ctx, name)
	if err != nil {
		return domain.ResolvedID{}, err
	}
	if id == "" {
		return domain.ResolvedID{}, perr.NotFoundf("vanity name %q not found", name)
	}
	return domain.ResolvedID{SteamID: id}, nil
}

// ComingSoon implements domain.CatalogLookupPort
func (s *Svc) ComingSoon(ctx context.Context) ([]domain.ComingSoonEntry, error) {
	entries, err := s.steam.ComingSoon(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.ComingSoonEntry{}
	}
	return entries, nil
}

// DealsForApp implements domain.CatalogLookupPort
func (s *Svc) DealsForApp(ctx context.Context, id int64) ([]deals.Deal, error) {
	if err := catalogsvc.ValidateAppID(id); err != nil {
		return nil, err
	}
	offers, err := s.deals.DealsForApp(ctx, id)
	if err != nil {
		return nil, err
	}
	if offers == nil {
		offers = []deals.Deal{}
	}
	return offers, nil
}
