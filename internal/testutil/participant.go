package testutil

import (
	"sync"

	"github.com/tictacmatch/tictacmatch-go/internal/model"
	"github.com/tictacmatch/tictacmatch-go/internal/protocol"
)

// FakeParticipant records every message sent to it. It satisfies the
// sessions.Participant interface for service tests.
type FakeParticipant struct {
	Name model.Identity
	Bot  bool

	mu     sync.Mutex
	sent   []protocol.Message
	gameID model.GameID
	closed bool
}

// NewFakeParticipant creates a human fake participant.
func NewFakeParticipant(name model.Identity) *FakeParticipant {
	return &FakeParticipant{Name: name}
}

// Identity returns the participant's name.
func (p *FakeParticipant) Identity() model.Identity { return p.Name }

// IsBot reports the Bot flag.
func (p *FakeParticipant) IsBot() bool { return p.Bot }

// Send records the message.
func (p *FakeParticipant) Send(msg protocol.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, msg)
}

// Close marks the participant's connection as gone.
func (p *FakeParticipant) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// Closed reports whether Close has been called.
func (p *FakeParticipant) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// SetGame records the current session identifier.
func (p *FakeParticipant) SetGame(id model.GameID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gameID = id
}

// Game returns the current session identifier.
func (p *FakeParticipant) Game() model.GameID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gameID
}

// Sent returns a copy of everything sent so far.
func (p *FakeParticipant) Sent() []protocol.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]protocol.Message, len(p.sent))
	copy(out, p.sent)
	return out
}

// LastSent returns the most recent message, or nil.
func (p *FakeParticipant) LastSent() protocol.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.sent) == 0 {
		return nil
	}
	return p.sent[len(p.sent)-1]
}
