package model

// Identity is the persistent string key a player is known by across
// sessions, human name or bot name.
type Identity string

// PlayerRecord is the identity-keyed aggregate persisted in the snapshot.
// JSON field names match the on-disk score file format.
type PlayerRecord struct {
	// Code is the bcrypt hash of the player's shared secret.
	// Immutable once set; empty for bots.
	Code  string `json:"code,omitempty"`
	Wins  int    `json:"wins"`
	Draws int    `json:"draws"`
	IsBot bool   `json:"isBot"`

	// Competence is the bot's probability of choosing a strong move
	// rather than a random legal one, in [0.3, 0.9). Bots only.
	Competence  float64 `json:"competence,omitempty"`
	GamesPlayed int     `json:"gamesPlayed,omitempty"`
}
