// Package service provides the catalog service implementation
package service

import (
	"context"

	perr "playerpulse/internal/platform/errors"

	"playerpulse/internal/modkit/repokit"
	"playerpulse/internal/services/catalog/domain"
	"playerpulse/internal/services/catalog/repo"
)

// maxAppID bounds accepted ids; the vendor catalog never goes this high
const maxAppID = 10_000_000

// Service defines the service contract for catalog
type Service interface {
	domain.WatchPort
	domain.MetadataPort
}

// Svc implements the Service interface
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
}

// New creates a new catalog service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Svc {
	return &Svc{db: db, binder: binder}
}

// ValidateAppID rejects ids outside the accepted catalog range
func ValidateAppID(id int64) error {
	if id <= 0 || id >= maxAppID {
		return perr.InvalidArgf("appid must be a positive integer below %d", maxAppID)
	}
	return nil
}

// UpsertWatched implements domain.WatchPort
func (s *Svc) UpsertWatched(ctx context.Context, id int64, name string, lastCount int64) error {
	if err := ValidateAppID(id); err != nil {
		return err
	}
	if lastCount < 0 {
		return perr.InvalidArgf("last_count must be non-negative")
	}
	return s.binder.Bind(s.db).UpsertWatched(ctx, id, name, lastCount)
}

// RemoveWatched implements domain.WatchPort
func (s *Svc) RemoveWatched(ctx context.Context, id int64) error {
	if err := ValidateAppID(id); err != nil {
		return err
	}
	return s.binder.Bind(s.db).RemoveWatched(ctx, id)
}

// ListWatched implements domain.WatchPort
func (s *Svc) ListWatched(ctx context.Context) ([]domain.WatchedGame, error) {
	return s.binder.Bind(s.db).ListWatched(ctx)
}

// UpsertMetadata implements domain.MetadataPort
// scalar fields always replace; replace=true rewrites the tag sets, otherwise
// new tags union-insert next to the existing ones
func (s *Svc) UpsertMetadata(ctx context.Context, rec domain.MetadataWrite, replace bool) error {
	if err := ValidateAppID(rec.AppID); err != nil {
		return err
	}
	return repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if err := r.UpsertDetail(ctx, rec); err != nil {
			return err
		}
		if replace {
			if err := r.DeleteTags(ctx, rec.AppID); err != nil {
				return err
			}
		}
		return r.InsertTags(ctx, rec.AppID, rec.Genres, rec.Categories)
	})
}

// GetGame implements domain.MetadataPort
func (s *Svc) GetGame(ctx context.Context, id int64) (domain.Game, error) {
	if err := ValidateAppID(id); err != nil {
		return domain.Game{}, err
	}
	g, ok, err := s.binder.Bind(s.db).GetGame(ctx, id)
	if err != nil {
		return domain.Game{}, err
	}
	if !ok {
		return domain.Game{}, perr.NotFoundf("game %d not found", id)
	}
	return g, nil
}

// GetAllGames implements domain.MetadataPort
func (s *Svc) GetAllGames(ctx context.Context) ([]domain.Game, error) {
	games, err := s.binder.Bind(s.db).GetAllGames(ctx)
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []domain.Game{}
	}
	return games, nil
}

// TagsBatch implements domain.MetadataPort
// input size and id bounds are enforced by the bind layer; the repo gets at
// most 100 validated ids
func (s *Svc) TagsBatch(ctx context.Context, in domain.TagsBatchInput) (domain.TagsBatchOutput, error) {
	tags, err := s.binder.Bind(s.db).TagsForIDs(ctx, in.IDs)
	if err != nil {
		return domain.TagsBatchOutput{}, err
	}
	return domain.TagsBatchOutput{Tags: tags}, nil
}

// Genres implements domain.MetadataPort
func (s *Svc) Genres(ctx context.Context) ([]string, error) {
	return s.binder.Bind(s.db).Genres(ctx)
}

// Categories implements domain.MetadataPort
func (s *Svc) Categories(ctx context.Context) ([]string, error) {
	return s.binder.Bind(s.db).Categories(ctx)
}
