// Package http provides http transport for catalog
package http

import (
	stdhttp "net/http"
	"strconv"

	perr "playerpulse/internal/platform/errors"

	"playerpulse/internal/modkit/httpkit"
	"playerpulse/internal/services/catalog/domain"
	svc "playerpulse/internal/services/catalog/service"
)

// Register mounts catalog endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/games", h.allGames)
	httpkit.Get(r, "/games/{id}", h.game)
	httpkit.PostJSON[domain.TagsBatchInput](r, "/games/tags/batch", h.tagsBatch)
	httpkit.Get(r, "/current-players", h.currentPlayers)
	httpkit.Get(r, "/genres", h.genres)
	httpkit.Get(r, "/categories", h.categories)
}

type handlers struct{ svc svc.Service }

// pathID parses the {id} segment
func pathID(r *stdhttp.Request) (int64, error) {
	raw := httpkit.Param(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, perr.InvalidArgf("appid must be an integer")
	}
	return id, nil
}

// @Summary List all game metadata
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.Game "ok"
// @Router /api/games [get]
func (h *handlers) allGames(r *stdhttp.Request) (any, error) {
	return h.svc.GetAllGames(r.Context())
}

// @Summary Single game metadata
// @Tags Catalog
// @Produce json
// @Param id path int true "App id"
// @Success 200 {object} domain.Game "ok"
// @Failure 404 {object} httpkit.ErrorBody "not found"
// @Router /api/games/{id} [get]
func (h *handlers) game(r *stdhttp.Request) (any, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	return h.svc.GetGame(r.Context(), id)
}

// @Summary Tag sets for a batch of ids
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body domain.TagsBatchInput true "Ids, at most 100"
// @Success 200 {object} domain.TagsBatchOutput "ok"
// @Router /api/games/tags/batch [post]
func (h *handlers) tagsBatch(r *stdhttp.Request, in domain.TagsBatchInput) (any, error) {
	return h.svc.TagsBatch(r.Context(), in)
}

// @Summary Watched list with latest counts
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.WatchedGame "ok"
// @Router /api/current-players [get]
func (h *handlers) currentPlayers(r *stdhttp.Request) (any, error) {
	return h.svc.ListWatched(r.Context())
}

// @Summary Distinct genres
// @Tags Catalog
// @Produce json
// @Success 200 {array} string "ok"
// @Router /api/genres [get]
func (h *handlers) genres(r *stdhttp.Request) (any, error) {
	return h.svc.Genres(r.Context())
}

// @Summary Distinct categories
// @Tags Catalog
// @Produce json
// @Success 200 {array} string "ok"
// @Router /api/categories [get]
func (h *handlers) categories(r *stdhttp.Request) (any, error) {
	return h.svc.Categories(r.Context())
}
