package config

import (
	"encoding/json"
	"os"
	"strings"

	"playerpulse/internal/platform/logger"
)

// MustJSONMap panics if the given key is missing, empty, or not a JSON object of strings
func (c Conf) MustJSONMap(key string) map[string]string {
	s := strings.TrimSpace(os.Getenv(c.key(key)))
	if s == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Err(err).Msg("invalid JSON object value")
	}
	return m
}

// MayJSONMap returns the parsed JSON object or def if missing/empty; logs and returns def if invalid
func (c Conf) MayJSONMap(key string, def map[string]string) map[string]string {
	s := strings.TrimSpace(os.Getenv(c.key(key)))
	if s == "" {
		return def
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Err(err).Msg("invalid JSON object; using default")
		return def
	}
	return m
}
