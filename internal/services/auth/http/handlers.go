// Package http provides http transport for auth
package http

import (
	stdhttp "net/http"

	perr "playerpulse/internal/platform/errors"

	"playerpulse/internal/modkit/httpkit"
	"playerpulse/internal/services/auth/domain"
	svc "playerpulse/internal/services/auth/service"
)

// Register mounts auth endpoints on the given router
// the signature middleware runs in front of these routes, so the context
// already carries the verified signer
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.LoginInput](r, "/login", h.login)
}

type handlers struct{ svc svc.Service }

// @Summary Issue a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.LoginInput true "Client identity"
// @Success 200 {object} domain.TokenOutput "ok"
// @Failure 401 {object} httpkit.ErrorBody "signature rejected"
// @Failure 403 {object} httpkit.ErrorBody "unknown client"
// @Router /auth/login [post]
func (h *handlers) login(r *stdhttp.Request, in domain.LoginInput) (any, error) {
	// the body must name the same client that signed the request
	if signer := httpkit.MustClient(r); signer != in.ClientID {
		return nil, perr.Unauthorizedf("client mismatch")
	}
	return h.svc.Login(r.Context(), in)
}
