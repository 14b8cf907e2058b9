// Package repo provides the catalog repository implementation
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	perr "playerpulse/internal/platform/errors"
	"playerpulse/internal/platform/store"

	"playerpulse/internal/modkit/repokit"
	"playerpulse/internal/services/catalog/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the catalog repository
type Storage interface {
	UpsertWatched(ctx context.Context, id int64, name string, lastCount int64) error
	RemoveWatched(ctx context.Context, id int64) error
	ListWatched(ctx context.Context) ([]domain.WatchedGame, error)

	UpsertDetail(ctx context.Context, rec domain.MetadataWrite) error
	DeleteTags(ctx context.Context, id int64) error
	InsertTags(ctx context.Context, id int64, genres, categories []string) error

	GetGame(ctx context.Context, id int64) (domain.Game, bool, error)
	GetAllGames(ctx context.Context) ([]domain.Game, error)
	TagsForIDs(ctx context.Context, ids []int64) (map[int64]domain.GameTags, error)
	Genres(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
}

// UpsertWatched implements Storage
// name is set on first insert only; a conflict refreshes last_count
func (s *pg) UpsertWatched(ctx context.Context, id int64, name string, lastCount int64) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO watched_games (appid, name, last_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (appid) DO UPDATE SET last_count = EXCLUDED.last_count
	`, id, name, lastCount)
	return err
}

// RemoveWatched implements Storage; dependent rows cascade via FK
func (s *pg) RemoveWatched(ctx context.Context, id int64) error {
	_, err := s.q.Exec(ctx, `DELETE FROM watched_games WHERE appid = $1`, id)
	return err
}

// ListWatched implements Storage
func (s *pg) ListWatched(ctx context.Context) ([]domain.WatchedGame, error) {
	return store.Many(ctx, s.q, func(r store.Row) (domain.WatchedGame, error) {
		var g domain.WatchedGame
		err := r.Scan(&g.AppID, &g.Name, &g.LastCount)
		return g, err
	}, `
		SELECT appid, name, last_count
		FROM watched_games
		ORDER BY last_count DESC, appid ASC
	`)
}

// UpsertDetail implements Storage; a conflict replaces every scalar field
func (s *pg) UpsertDetail(ctx context.Context, rec domain.MetadataWrite) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO game_details
			(appid, name, description, header_image, background_image, release_date, price, is_free)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (appid) DO UPDATE SET
			name             = EXCLUDED.name,
			description      = EXCLUDED.description,
			header_image     = EXCLUDED.header_image,
			background_image = EXCLUDED.background_image,
			release_date     = EXCLUDED.release_date,
			price            = EXCLUDED.price,
			is_free          = EXCLUDED.is_free
	`, rec.AppID, rec.Name, rec.Description, rec.HeaderImageURL, rec.BackgroundImageURL,
		rec.ReleaseDate, rec.Price, rec.IsFree)
	return err
}

// DeleteTags implements Storage
func (s *pg) DeleteTags(ctx context.Context, id int64) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM game_genres WHERE appid = $1`, id); err != nil {
		return err
	}
	_, err := s.q.Exec(ctx, `DELETE FROM game_categories WHERE appid = $1`, id)
	return err
}

// InsertTags implements Storage; duplicate pairs are ignored
func (s *pg) InsertTags(ctx context.Context, id int64, genres, categories []string) error {
	if err := s.insertPairs(ctx, "game_genres", "genre", id, genres); err != nil {
		return err
	}
	return s.insertPairs(ctx, "game_categories", "category", id, categories)
}

func (s *pg) insertPairs(ctx context.Context, table, col string, id int64, vals []string) error {
	if len(vals) == 0 {
		return nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (appid, %s) VALUES ", table, col)
	args := make([]any, 0, len(vals)+1)
	args = append(args, id)
	for i, v := range vals {
		if i > 0 {
			sb.WriteByte(',')
		}
		args = append(args, v)
		fmt.Fprintf(&sb, "($1,$%d)", len(args))
	}
	fmt.Fprintf(&sb, " ON CONFLICT (appid, %s) DO NOTHING", col)
	_, err := s.q.Exec(ctx, sb.String(), args...)
	return err
}

const gameSelect = `
	SELECT
		d.appid, d.name, d.description, d.header_image, d.background_image,
		d.release_date, d.price, d.is_free,
		COALESCE(array_agg(DISTINCT g.genre) FILTER (WHERE g.genre IS NOT NULL), '{}'),
		COALESCE(array_agg(DISTINCT c.category) FILTER (WHERE c.category IS NOT NULL), '{}')
	FROM game_details d
	LEFT JOIN game_genres g ON g.appid = d.appid
	LEFT JOIN game_categories c ON c.appid = d.appid
`

const gameGroup = `
	GROUP BY d.appid, d.name, d.description, d.header_image, d.background_image,
		d.release_date, d.price, d.is_free
`

// GetGame implements Storage
func (s *pg) GetGame(ctx context.Context, id int64) (domain.Game, bool, error) {
	g, err := store.One(ctx, s.q, scanGame, gameSelect+` WHERE d.appid = $1 `+gameGroup, id)
	if errors.Is(err, perr.ErrNotFound) {
		return domain.Game{}, false, nil
	}
	if err != nil {
		return domain.Game{}, false, err
	}
	return g, true, nil
}

// GetAllGames implements Storage
func (s *pg) GetAllGames(ctx context.Context) ([]domain.Game, error) {
	return store.Many(ctx, s.q, scanGame, gameSelect+gameGroup+` ORDER BY d.name ASC`)
}

func scanGame(r store.Row) (domain.Game, error) {
	var g domain.Game
	err := r.Scan(
		&g.AppID, &g.Name, &g.Description, &g.HeaderImageURL, &g.BackgroundImageURL,
		&g.ReleaseDate, &g.Price, &g.IsFree, &g.Genres, &g.Categories,
	)
	return g, err
}

// TagsForIDs implements Storage
func (s *pg) TagsForIDs(ctx context.Context, ids []int64) (map[int64]domain.GameTags, error) {
	out := make(map[int64]domain.GameTags, len(ids))
	for _, id := range ids {
		out[id] = domain.GameTags{Genres: []string{}, Categories: []string{}}
	}

	type pair struct {
		id int64
		v  string
	}
	fill := func(sql string, assign func(t *domain.GameTags, v string)) error {
		pairs, err := store.Many(ctx, s.q, func(r store.Row) (pair, error) {
			var p pair
			err := r.Scan(&p.id, &p.v)
			return p, err
		}, sql, ids)
		if err != nil {
			return err
		}
		for _, p := range pairs {
			t := out[p.id]
			assign(&t, p.v)
			out[p.id] = t
		}
		return nil
	}

	if err := fill(
		`SELECT appid, genre FROM game_genres WHERE appid = ANY($1) ORDER BY appid, genre`,
		func(t *domain.GameTags, v string) { t.Genres = append(t.Genres, v) },
	); err != nil {
		return nil, err
	}
	if err := fill(
		`SELECT appid, category FROM game_categories WHERE appid = ANY($1) ORDER BY appid, category`,
		func(t *domain.GameTags, v string) { t.Categories = append(t.Categories, v) },
	); err != nil {
		return nil, err
	}
	return out, nil
}

// Genres implements Storage
func (s *pg) Genres(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, `SELECT DISTINCT genre FROM game_genres ORDER BY genre ASC`)
}

// Categories implements Storage
func (s *pg) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, `SELECT DISTINCT category FROM game_categories ORDER BY category ASC`)
}

func (s *pg) distinct(ctx context.Context, sql string) ([]string, error) {
	vals, err := store.Many(ctx, s.q, func(r store.Row) (string, error) {
		var v string
		err := r.Scan(&v)
		return v, err
	}, sql)
	if err != nil {
		return nil, err
	}
	if vals == nil {
		vals = []string{}
	}
	return vals, nil
}
