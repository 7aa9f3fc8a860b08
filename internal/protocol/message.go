// Package protocol defines the framed JSON messages exchanged between
// clients and the server. Every frame is a flat object tagged with a
// "type" field; field names are part of the wire format and must not
// change.
package protocol

import "github.com/tictacmatch/tictacmatch-go/internal/model"

// Kind tags a wire message.
type Kind string

const (
	KindLogin        Kind = "login"
	KindLoginSuccess Kind = "login-success"
	KindLoginFailed  Kind = "login-failed"
	KindStart        Kind = "start"
	KindStartVsBot   Kind = "start-vs-bot"
	KindMove         Kind = "move"
	KindGameOver     Kind = "game-over"
	KindLeaderboard  Kind = "leaderboard"
)

// Message is implemented by every wire message.
type Message interface {
	Kind() Kind
}

// Login authenticates or registers a player. Client to server.
type Login struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (Login) Kind() Kind { return KindLogin }

// LoginSuccess acknowledges an accepted login.
type LoginSuccess struct {
	Name string `json:"name"`
}

func (LoginSuccess) Kind() Kind { return KindLoginSuccess }

// LoginFailed reports a credential mismatch; the client should re-prompt.
type LoginFailed struct{}

func (LoginFailed) Kind() Kind { return KindLoginFailed }

// Start announces a human pairing: the receiver's mark and opponent name.
type Start struct {
	Symbol   string `json:"symbol"`
	Opponent string `json:"opponent"`
}

func (Start) Kind() Kind { return KindStart }

// StartVsBot announces a bot pairing. The client drives the bot locally
// using the supplied competence coefficient.
type StartVsBot struct {
	Symbol        string  `json:"symbol"`
	Opponent      string  `json:"opponent"`
	BotCompetence float64 `json:"botCompetence"`
}

func (StartVsBot) Kind() Kind { return KindStartVsBot }

// Move claims a cell. Routed verbatim to the other participant.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (Move) Kind() Kind { return KindMove }

// GameOver reports a terminal result. Winner is empty on a draw.
type GameOver struct {
	Winner model.Identity `json:"winner,omitempty"`
	Draw   bool           `json:"draw"`
}

func (GameOver) Kind() Kind { return KindGameOver }

// LeaderboardEntry is one ranked row in a leaderboard message.
type LeaderboardEntry struct {
	Name  model.Identity `json:"name"`
	Wins  int            `json:"wins"`
	Draws int            `json:"draws"`
	IsBot bool           `json:"isBot"`
}

// Leaderboard delivers the post-game top-10 ranking.
type Leaderboard struct {
	Top10 []LeaderboardEntry `json:"top10"`
}

func (Leaderboard) Kind() Kind { return KindLeaderboard }
