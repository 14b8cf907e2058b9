// Package service contains the auth core: token issuance, signature
// verification, and replay defense
package service

import (
	"context"
	"time"

	perr "playerpulse/internal/platform/errors"
	"playerpulse/internal/platform/logger"
	"playerpulse/internal/services/auth/domain"
)

const (
	// DefaultTokenTTL matches the desktop client refresh cadence
	DefaultTokenTTL = 1200 * time.Second

	// DefaultLeeway tolerates clock skew on token validation
	DefaultLeeway = 5 * time.Minute

	// DefaultSkewWindow bounds how stale a signed request may be
	DefaultSkewWindow = 60 * time.Second
)

// Config configures the auth service
type Config struct {
	// Credentials maps client_id to client_secret, loaded once at startup
	Credentials map[string]string

	// SigningSecret signs bearer tokens; never logged
	SigningSecret string

	TokenTTL   time.Duration
	Leeway     time.Duration
	SkewWindow time.Duration

	NonceCap int
	NonceTTL time.Duration
}

// Service defines the service contract for auth
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	cfg    Config
	secret []byte
	nonces *NonceCache
	log    logger.Logger
	now    func() time.Time
}

// New creates a new auth service
// credentials and the signing secret are immutable for the process lifetime
func New(cfg Config) *Svc {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.Leeway <= 0 {
		cfg.Leeway = DefaultLeeway
	}
	if cfg.SkewWindow <= 0 {
		cfg.SkewWindow = DefaultSkewWindow
	}
	if cfg.NonceCap <= 0 {
		cfg.NonceCap = defaultNonceCap
	}
	if cfg.NonceTTL <= 0 {
		cfg.NonceTTL = defaultNonceTTL
	}
	return &Svc{
		cfg:    cfg,
		secret: []byte(cfg.SigningSecret),
		nonces: NewNonceCache(cfg.NonceCap, cfg.NonceTTL),
		log:    *logger.Named("auth"),
		now:    time.Now,
	}
}

// Login issues a bearer token for a known client
func (s *Svc) Login(ctx context.Context, in domain.LoginInput) (domain.TokenOutput, error) {
	if _, ok := s.cfg.Credentials[in.ClientID]; !ok {
		return domain.TokenOutput{}, perr.Forbiddenf("unknown client")
	}
	tok, err := s.IssueToken(in.ClientID, nil)
	if err != nil {
		return domain.TokenOutput{}, err
	}
	return domain.TokenOutput{
		AccessToken: tok,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.cfg.TokenTTL / time.Second),
	}, nil
}

// SecretFor returns the client secret for a known client id
func (s *Svc) SecretFor(clientID string) (string, bool) {
	sec, ok := s.cfg.Credentials[clientID]
	return sec, ok
}

// truncID shortens identifiers for warn logs so secrets-adjacent strings
// never land in full
func truncID(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:8] + "..."
}
