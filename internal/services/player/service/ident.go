package service

import (
	"net/url"
	"regexp"
	"strings"

	perr "playerpulse/internal/platform/errors"
	"playerpulse/internal/services/player/domain"
)

var (
	steamIDRE = regexp.MustCompile(`^7656119[0-9]{10}$`)
	vanityRE  = regexp.MustCompile(`^[A-Za-z0-9_-]{2,32}$`)
)

// ParseIdentifier accepts a numeric account id, a vanity name, or a full
// profile URL containing either
func ParseIdentifier(raw string) (domain.Identifier, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.Identifier{}, perr.InvalidArgf("player identifier is required")
	}

	if strings.Contains(s, "://") || strings.HasPrefix(s, "steamcommunity.com/") {
		return parseProfileURL(s)
	}

	if steamIDRE.MatchString(s) {
		return domain.Identifier{Kind: domain.KindSteamID, Value: s}, nil
	}
	if vanityRE.MatchString(s) {
		return domain.Identifier{Kind: domain.KindVanity, Value: s}, nil
	}
	return domain.Identifier{}, perr.InvalidArgf("player identifier is not a steam id, vanity name, or profile url")
}

func parseProfileURL(s string) (domain.Identifier, error) {
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return domain.Identifier{}, perr.InvalidArgf("profile url is malformed")
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return domain.Identifier{}, perr.InvalidArgf("profile url is missing its id segment")
	}
	switch parts[0] {
	case "profiles":
		if steamIDRE.MatchString(parts[1]) {
			return domain.Identifier{Kind: domain.KindSteamID, Value: parts[1]}, nil
		}
	case "id":
		if vanityRE.MatchString(parts[1]) {
			return domain.Identifier{Kind: domain.KindVanity, Value: parts[1]}, nil
		}
	}
	return domain.Identifier{}, perr.InvalidArgf("profile url does not name a valid player")
}
