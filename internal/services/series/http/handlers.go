// Package http provides http transport for series
package http

import (
	stdhttp "net/http"
	"strconv"

	perr "playerpulse/internal/platform/errors"

	"playerpulse/internal/modkit/httpkit"
	"playerpulse/internal/services/series/domain"
	svc "playerpulse/internal/services/series/service"
)

// Register mounts series endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/series/{id}/5min", h.fiveMin)
	httpkit.Get(r, "/series/{id}/hourly", h.hourly)
	httpkit.Get(r, "/series/{id}/daily", h.daily)
}

type handlers struct{ svc svc.Service }

func parseQuery(r *stdhttp.Request) (int64, domain.SeriesRange, error) {
	id, err := strconv.ParseInt(httpkit.Param(r, "id"), 10, 64)
	if err != nil {
		return 0, domain.SeriesRange{}, perr.InvalidArgf("appid must be an integer")
	}
	q := r.URL.Query()
	since, err := strconv.ParseInt(q.Get("since"), 10, 64)
	if err != nil {
		return 0, domain.SeriesRange{}, perr.InvalidArgf("since must be unix seconds")
	}
	until, err := strconv.ParseInt(q.Get("until"), 10, 64)
	if err != nil {
		return 0, domain.SeriesRange{}, perr.InvalidArgf("until must be unix seconds")
	}
	return id, domain.SeriesRange{Since: since, Until: until}, nil
}

// @Summary Five-minute series from raw samples
// @Tags Series
// @Produce json
// @Param id path int true "App id"
// @Param since query int true "Range start, unix seconds"
// @Param until query int true "Range end, unix seconds"
// @Success 200 {array} domain.Point5Min "ok"
// @Router /api/series/{id}/5min [get]
func (h *handlers) fiveMin(r *stdhttp.Request) (any, error) {
	id, rng, err := parseQuery(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Series5Min(r.Context(), id, rng)
}

// @Summary Hourly rollup series
// @Tags Series
// @Produce json
// @Param id path int true "App id"
// @Param since query int true "Range start, unix seconds"
// @Param until query int true "Range end, unix seconds"
// @Success 200 {array} domain.HourlyRow "ok"
// @Router /api/series/{id}/hourly [get]
func (h *handlers) hourly(r *stdhttp.Request) (any, error) {
	id, rng, err := parseQuery(r)
	if err != nil {
		return nil, err
	}
	return h.svc.SeriesHourly(r.Context(), id, rng)
}

// @Summary Daily rollup series
// @Tags Series
// @Produce json
// @Param id path int true "App id"
// @Param since query int true "Range start, unix seconds"
// @Param until query int true "Range end, unix seconds"
// @Success 200 {array} domain.DailyRow "ok"
// @Router /api/series/{id}/daily [get]
func (h *handlers) daily(r *stdhttp.Request) (any, error) {
	id, rng, err := parseQuery(r)
	if err != nil {
		return nil, err
	}
	return h.svc.SeriesDaily(r.Context(), id, rng)
}
