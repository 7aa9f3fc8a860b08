package bots

import (
	"sync"

	"github.com/tictacmatch/tictacmatch-go/internal/model"
	"github.com/tictacmatch/tictacmatch-go/internal/protocol"
)

// Bot is a synthetic participant. It takes part in sessions and in
// outcome accounting, but its send capability discards everything: the
// human client simulates the bot's play locally.
type Bot struct {
	name       model.Identity
	competence float64

	mu     sync.Mutex
	gameID model.GameID
}

// Identity returns the bot's persistent name.
func (b *Bot) Identity() model.Identity { return b.name }

// IsBot always reports true.
func (b *Bot) IsBot() bool { return true }

// Send discards the message.
func (b *Bot) Send(msg protocol.Message) {}

// Closed always reports false; bots hold no connection to lose.
func (b *Bot) Closed() bool { return false }

// SetGame records the bot's current session.
func (b *Bot) SetGame(id model.GameID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gameID = id
}

// Game returns the bot's current session.
func (b *Bot) Game() model.GameID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gameID
}

// Competence returns the bot's persisted competence coefficient.
func (b *Bot) Competence() float64 { return b.competence }
