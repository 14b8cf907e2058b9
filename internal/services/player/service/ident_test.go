package service

import (
	"testing"

	"playerpulse/internal/services/player/domain"
)

func TestParseIdentifier(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		kind domain.IdentifierKind
		val  string
		ok   bool
	}{
		{"steam id", "76561197960287930", domain.KindSteamID, "76561197960287930", true},
		{"steam id with spaces", "  76561197960287930  ", domain.KindSteamID, "76561197960287930", true},
		{"vanity name", "gabelogannewell", domain.KindVanity, "gabelogannewell", true},
		{"vanity with dash", "some_user-2", domain.KindVanity, "some_user-2", true},
		{"profiles url", "https://steamcommunity.com/profiles/76561197960287930", domain.KindSteamID, "76561197960287930", true},
		{"profiles url trailing slash", "https://steamcommunity.com/profiles/76561197960287930/", domain.KindSteamID, "76561197960287930", true},
		{"vanity url", "https://steamcommunity.com/id/gabelogannewell", domain.KindVanity, "gabelogannewell", true},
		{"schemeless url", "steamcommunity.com/id/gabelogannewell", domain.KindVanity, "gabelogannewell", true},
		{"empty", "", 0, "", false},
		{"too short vanity", "a", 0, "", false},
		{"illegal characters", "not a name", 0, "", false},
		// 17 digits without the steam id prefix fall through to vanity
		{"wrong id prefix", "12341197960287930", domain.KindVanity, "12341197960287930", true},
		{"url without id segment", "https://steamcommunity.com/profiles", 0, "", false},
		{"url with bogus segment", "https://steamcommunity.com/groups/valve", 0, "", false},
		{"url with bad vanity", "https://steamcommunity.com/id/??", 0, "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseIdentifier(c.in)
			if !c.ok {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Kind != c.kind {
				t.Fatalf("kind = %v, want %v", got.Kind, c.kind)
			}
			if c.val != "" && got.Value != c.val {
				t.Fatalf("value = %q, want %q", got.Value, c.val)
			}
		})
	}
}
