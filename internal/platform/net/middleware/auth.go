package middleware

import (
	"bytes"
	"io"
	"net/http"

	perr "playerpulse/internal/platform/errors"
	pnet "playerpulse/internal/platform/net"
)

// AuthPort is the seam the auth service implements for bearer routes
type AuthPort interface {
	// Parse returns the authenticated client id from the request or an error
	Parse(r *http.Request) (clientID string, err error)
}

// SignedPort is the seam the auth service implements for HMAC-signed routes
type SignedPort interface {
	// Verify checks the request signature headers against the buffered body
	// and returns the verified client id
	Verify(r *http.Request, body []byte) (clientID string, err error)
}

// maxSignedBody bounds how much request body the signature check will buffer
const maxSignedBody = 4 << 20

// Auth validates the bearer token and stores the client id on context
// a nil port disables the check
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			cid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithClient(r.Context(), cid)))
		})
	}
}

// Signed verifies the per-request HMAC signature. The body is buffered once
// and restored so downstream handlers can still read it. When a bearer layer
// already identified a client, the signer must be the same client
func Signed(p SignedPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			var body []byte
			if r.Body != nil {
				b, err := io.ReadAll(io.LimitReader(r.Body, maxSignedBody))
				_ = r.Body.Close()
				if err != nil {
					status, wire := pnet.Error(perr.Unauthorizedf("unreadable request body"), pnet.RequestID(r.Context()))
					write(w, status, wire)
					return
				}
				body = b
				r.Body = io.NopCloser(bytes.NewReader(body))
			}
			cid, err := p.Verify(r, body)
			if err != nil {
				status, wire := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, wire)
				return
			}
			if bearer := pnet.ClientID(r.Context()); bearer != "" && bearer != cid {
				status, wire := pnet.Error(perr.Unauthorizedf("signature client does not match token client"), pnet.RequestID(r.Context()))
				write(w, status, wire)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithClient(r.Context(), cid)))
		})
	}
}
