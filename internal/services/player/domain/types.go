// Package domain holds DTOs for player http and service contracts
package domain

import "playerpulse/internal/adapters/steam"

type (
	// PlayerSummary re-exports the upstream profile shape
	PlayerSummary = steam.PlayerSummary

	// OwnedGame re-exports the upstream library entry shape
	OwnedGame = steam.OwnedGame

	// ComingSoonEntry re-exports the upstream coming-soon shape
	ComingSoonEntry = steam.ComingSoonEntry
)

// ResolvedID is the response of vanity resolution
type ResolvedID struct {
	SteamID string `json:"steam_id"`
}

// IdentifierKind classifies a parsed player identifier
type IdentifierKind int

const (
	// KindSteamID is a 17-digit numeric account id
	KindSteamID IdentifierKind = iota

	// KindVanity is a short custom profile name
	KindVanity
)

// Identifier is a validated player identifier
type Identifier struct {
	Kind  IdentifierKind
	Value string
}
