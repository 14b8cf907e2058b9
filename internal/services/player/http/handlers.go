// Package http provides http transport for player
package http

import (
	stdhttp "net/http"
	"strconv"

	perr "playerpulse/internal/platform/errors"

	"playerpulse/internal/modkit/httpkit"
	svc "playerpulse/internal/services/player/service"
)

// Register mounts player endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/player-summary/{steam_id}", h.summary)
	httpkit.Get(r, "/owned-games/{steam_id}", h.ownedGames)
	httpkit.Get(r, "/recently-played/{steam_id}", h.recentlyPlayed)
	httpkit.Get(r, "/resolve-vanity/{name}", h.resolveVanity)
	httpkit.Get(r, "/coming-soon", h.comingSoon)
	httpkit.Get(r, "/deals/{id}", h.deals)
}

type handlers struct{ svc svc.Service }

// @Summary Public profile for a player
// @Tags Player
// @Produce json
// @Param steam_id path string true "Steam id, vanity name, or profile url"
// @Success 200 {object} domain.PlayerSummary "ok"
// @Failure 404 {object} httpkit.ErrorBody "not found"
// @Router /api/player-summary/{steam_id} [get]
func (h *handlers) summary(r *stdhttp.Request) (any, error) {
	return h.svc.Summary(r.Context(), httpkit.Param(r, "steam_id"))
}

// @Summary Library of a player
// @Tags Player
// @Produce json
// @Param steam_id path string true "Steam id, vanity name, or profile url"
// @Success 200 {array} domain.OwnedGame "ok"
// @Router /api/owned-games/{steam_id} [get]
func (h *handlers) ownedGames(r *stdhttp.Request) (any, error) {
	return h.svc.OwnedGames(r.Context(), httpkit.Param(r, "steam_id"))
}

// @Summary Recently played games of a player
// @Tags Player
// @Produce json
// @Param steam_id path string true "Steam id, vanity name, or profile url"
// @Success 200 {array} domain.OwnedGame "ok"
// @Router /api/recently-played/{steam_id} [get]
func (h *handlers) recentlyPlayed(r *stdhttp.Request) (any, error) {
	return h.svc.RecentlyPlayed(r.Context(), httpkit.Param(r, "steam_id"))
}

// @Summary Resolve a vanity name to a numeric id
// @Tags Player
// @Produce json
// @Param name path string true "Vanity name"
// @Success 200 {object} domain.ResolvedID "ok"
// @Failure 404 {object} httpkit.ErrorBody "not found"
// @Router /api/resolve-vanity/{name} [get]
func (h *handlers) resolveVanity(r *stdhttp.Request) (any, error) {
	return h.svc.ResolveVanity(r.Context(), httpkit.Param(r, "name"))
}

// @Summary Upstream coming-soon shelf
// @Tags Player
// @Produce json
// @Success 200 {array} domain.ComingSoonEntry "ok"
// @Router /api/coming-soon [get]
func (h *handlers) comingSoon(r *stdhttp.Request) (any, error) {
	return h.svc.ComingSoon(r.Context())
}

// @Summary Current store offers for a game
// @Tags Player
// @Produce json
// @Param id path int true "App id"
// @Success 200 {array} deals.Deal "ok"
// @Router /api/deals/{id} [get]
func (h *handlers) deals(r *stdhttp.Request) (any, error) {
	id, err := strconv.ParseInt(httpkit.Param(r, "id"), 10, 64)
	if err != nil {
		return nil, perr.InvalidArgf("appid must be an integer")
	}
	return h.svc.DealsForApp(r.Context(), id)
}
