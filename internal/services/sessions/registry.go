// Package sessions maps opaque game identifiers to their two
// participants and routes in-game messages between them.
package sessions

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/tictacmatch/tictacmatch-go/internal/model"
	"github.com/tictacmatch/tictacmatch-go/internal/protocol"
)

// Session holds exactly two participants under one game identifier.
type Session struct {
	ID model.GameID
	A  Participant
	B  Participant
}

// Opponent returns the other participant, or nil if p is not in the
// session.
func (s *Session) Opponent(p Participant) Participant {
	switch p {
	case s.A:
		return s.B
	case s.B:
		return s.A
	default:
		return nil
	}
}

// Has reports whether p is one of the session's participants.
func (s *Session) Has(p Participant) bool {
	return p == s.A || p == s.B
}

// Registry tracks active sessions
type Registry struct {
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[model.GameID]*Session
}

// NewRegistry creates an empty session registry
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:   logger.With(slog.String("component", "sessions")),
		sessions: make(map[model.GameID]*Session),
	}
}

// Create mints a fresh session for the two participants and tells both
// about it.
func (r *Registry) Create(a, b Participant) *Session {
	sess := &Session{
		ID: model.GameID(uuid.NewString()),
		A:  a,
		B:  b,
	}

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()

	a.SetGame(sess.ID)
	b.SetGame(sess.ID)

	r.logger.Info("session created",
		slog.String("game_id", string(sess.ID)),
		slog.String("player_a", string(a.Identity())),
		slog.String("player_b", string(b.Identity())))
	return sess
}

// Get looks up a session by identifier.
func (r *Registry) Get(id model.GameID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

// Take removes and returns the session in one step, claiming it for
// the caller. Exactly one of any set of racing callers gets it; the
// rest see a miss.
func (r *Registry) Take(id model.GameID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	return sess, ok
}

// RouteMove forwards a move to the non-origin participant. Moves
// referencing an unknown session are dropped without effect.
func (r *Registry) RouteMove(id model.GameID, origin Participant, move protocol.Move) {
	sess, ok := r.Get(id)
	if !ok {
		return
	}

	opponent := sess.Opponent(origin)
	if opponent == nil {
		return
	}
	opponent.Send(move)
}

// Destroy removes the session. Destroying an already-removed
// identifier is a no-op.
func (r *Registry) Destroy(id model.GameID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// DropParticipant removes every session the participant is part of,
// as part of disconnect cleanup.
func (r *Registry) DropParticipant(p Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, sess := range r.sessions {
		if sess.Has(p) {
			delete(r.sessions, id)
		}
	}
}
