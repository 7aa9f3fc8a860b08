package model

import "time"

// GameID is the opaque identifier for one in-progress two-participant game.
type GameID string

// ResultEntry records one terminal game outcome in the snapshot history.
type ResultEntry struct {
	GameID     GameID     `json:"gameId"`
	Players    []Identity `json:"players"`
	Winner     Identity   `json:"winner,omitempty"`
	Draw       bool       `json:"draw"`
	FinishedAt time.Time  `json:"finishedAt"`
}

// Snapshot is the complete persisted state: every PlayerRecord plus the
// result history. It is serialized as a whole on every mutation.
type Snapshot struct {
	Players map[Identity]*PlayerRecord `json:"players"`
	History []ResultEntry              `json:"history"`
}

// NewSnapshot returns an empty snapshot, the substitute for absent or
// corrupt persisted state.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Players: make(map[Identity]*PlayerRecord),
		History: []ResultEntry{},
	}
}
