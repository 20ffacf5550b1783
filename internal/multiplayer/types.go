// Package multiplayer pairs remote sessions into online duels.
// A host opens a lobby and shares its code; whoever joins with the code
// plays Sin. Each match runs one authoritative duel on the server and both
// sessions draw from it.
package multiplayer

import "github.com/vovakirdan/tin-quest/internal/core"

// SessionID uniquely identifies a connected player (e.g., one SSH session).
type SessionID string

// MatchID uniquely identifies a running duel.
type MatchID string

// SideName returns the character a player controls in a duel.
func SideName(p core.PlayerID) string {
	switch p {
	case core.Player1:
		return "Tin"
	case core.Player2:
		return "Sin"
	default:
		return "nobody"
	}
}

// Playable reports whether a remote player may send the action into a match.
// Pausing and restarting stay with the server.
func Playable(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionJump, core.ActionAttack:
		return true
	}
	return false
}
