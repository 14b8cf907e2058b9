package httpkit

import (
	"net/http"
	"strings"

	perrs "playerpulse/internal/platform/errors"
	pnet "playerpulse/internal/platform/net"
)

// Client returns the authenticated client id from the request context
func Client(r *http.Request) (string, error) {
	cid := pnet.ClientID(r.Context())
	if cid == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return cid, nil
}

// MustClient returns the authenticated client id or panics
// only use on routes protected by the auth middleware
func MustClient(r *http.Request) string {
	cid, err := Client(r)
	if err != nil {
		panic(err)
	}
	return cid
}

// JWT returns the raw bearer token from the Authorization header
func JWT(r *http.Request) (string, error) {
	authz := r.Header.Get("Authorization")
	if strings.TrimSpace(authz) == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	// case-insensitive Bearer prefix (don't trim the whole header first)
	const prefix = "bearer "
	if len(authz) < len(prefix) || strings.ToLower(authz[:len(prefix)]) != prefix {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(authz[len(prefix):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}

// MustJWT returns the raw bearer token or panics
// only use on routes protected by the auth middleware
func MustJWT(r *http.Request) string {
	raw, err := JWT(r)
	if err != nil {
		panic(err)
	}
	return raw
}
