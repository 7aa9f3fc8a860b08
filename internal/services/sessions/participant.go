package sessions

import (
	"github.com/tictacmatch/tictacmatch-go/internal/model"
	"github.com/tictacmatch/tictacmatch-go/internal/protocol"
)

// Participant is one side of a game session. Humans forward messages
// over their live connection; bots discard them, since bot behavior is
// simulated by the human client in this protocol.
type Participant interface {
	// Identity returns the persistent name this participant plays as.
	Identity() model.Identity

	// IsBot reports whether this is a synthetic participant.
	IsBot() bool

	// Send delivers a message, or discards it for participants that
	// cannot receive.
	Send(msg protocol.Message)

	// Closed reports whether the participant's connection is gone.
	// Bots never close.
	Closed() bool

	// SetGame records the session this participant is currently in.
	SetGame(id model.GameID)

	// Game returns the current session, or "" when idle.
	Game() model.GameID
}
