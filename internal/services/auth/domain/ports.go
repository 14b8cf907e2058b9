package domain

import "context"

// ServicePort is the auth workflow surface
type ServicePort interface {
	// Login issues a bearer token for a known client
	Login(ctx context.Context, in LoginInput) (TokenOutput, error)

	TokenVerifier
	RequestVerifier
}

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	// VerifyToken decodes and validates a bearer token string
	VerifyToken(token string) (Claims, error)
}

// RequestVerifier validates per-request HMAC signatures
type RequestVerifier interface {
	// VerifySignature checks the canonical message signature and replay
	// defenses; returns the verified client id
	VerifySignature(method, path string, body []byte, h SignedHeaders) (string, error)
}
