package module

import (
	"time"

	"playerpulse/internal/platform/config"
	"playerpulse/internal/services/auth/service"
)

// Options holds configuration settings for the auth module
type Options struct {
	Credentials   map[string]string
	SigningSecret string
	TokenTTL      time.Duration
	Leeway        time.Duration
	SkewWindow    time.Duration
	NonceCap      int
	NonceTTL      time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	af := cfg.Prefix("AUTH_")
	return Options{
		// {"client-id": "client-secret", ...}
		Credentials:   af.MustJSONMap("CLIENTS"),
		SigningSecret: af.MayString("SIGNING_SECRET", ""),
		TokenTTL:      af.MayDuration("TOKEN_TTL", service.DefaultTokenTTL),
		Leeway:        af.MayDuration("LEEWAY", service.DefaultLeeway),
		SkewWindow:    af.MayDuration("SKEW_WINDOW", service.DefaultSkewWindow),
		NonceCap:      af.MayInt("NONCE_CAP", 10_000),
		NonceTTL:      af.MayDuration("NONCE_TTL", 5*time.Minute),
	}
}
