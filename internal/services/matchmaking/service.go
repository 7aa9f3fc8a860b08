// Package matchmaking holds the single-slot waiting queue. A lone
// connection waits for a human peer while a randomized fallback timer
// counts down to a bot pairing; exactly one of the two outcomes occurs
// per queue entry.
package matchmaking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tictacmatch/tictacmatch-go/internal/dependencies/clock"
	"github.com/tictacmatch/tictacmatch-go/internal/dependencies/random"
	"github.com/tictacmatch/tictacmatch-go/internal/game"
	"github.com/tictacmatch/tictacmatch-go/internal/protocol"
	"github.com/tictacmatch/tictacmatch-go/internal/services/bots"
	"github.com/tictacmatch/tictacmatch-go/internal/services/sessions"
)

// Config holds matchmaking settings
type Config struct {
	// FallbackDelay bounds the randomized wait before an unpaired
	// connection is matched against a bot. The actual delay is drawn
	// uniformly from [0, FallbackDelay).
	FallbackDelay time.Duration
}

// DefaultConfig returns default matchmaking configuration
func DefaultConfig() Config {
	return Config{
		FallbackDelay: time.Second,
	}
}

// Service pairs connections into game sessions
type Service struct {
	registry *sessions.Registry
	bots     *bots.Service
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
	cfg      Config

	mu       sync.Mutex
	waiting  sessions.Participant
	fallback clock.Timer
}

// New creates a new matchmaking Service
func New(
	registry *sessions.Registry,
	botService *bots.Service,
	clk clock.Clock,
	rnd random.Random,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if cfg.FallbackDelay <= 0 {
		cfg.FallbackDelay = DefaultConfig().FallbackDelay
	}
	return &Service{
		registry: registry,
		bots:     botService,
		clock:    clk,
		random:   rnd,
		logger:   logger.With(slog.String("component", "matchmaking")),
		cfg:      cfg,
	}
}

// Enqueue places the participant in the queue. With an empty slot it
// becomes the waiter and the bot-fallback timer is armed; with an
// occupied slot it is paired with the waiter immediately. The slot is
// read and cleared atomically, so no event can observe a half-paired
// state.
func (s *Service) Enqueue(ctx context.Context, p sessions.Participant) {
	s.mu.Lock()

	if s.waiting == nil {
		s.waiting = p
		delay := s.drawDelay()
		s.fallback = s.clock.AfterFunc(delay, func() {
			s.pairWithBot(p)
		})
		s.mu.Unlock()

		s.logger.Info("participant waiting for opponent",
			slog.String("player", string(p.Identity())),
			slog.Duration("fallback_delay", delay))
		return
	}

	if s.waiting == p {
		// Re-login from a connection that is already queued; keep the
		// existing slot and timer.
		s.mu.Unlock()
		return
	}

	waiter := s.waiting
	s.waiting = nil
	if s.fallback != nil {
		s.fallback.Stop()
		s.fallback = nil
	}
	s.mu.Unlock()

	sess := s.registry.Create(waiter, p)
	waiter.Send(protocol.Start{Symbol: string(game.X), Opponent: string(p.Identity())})
	p.Send(protocol.Start{Symbol: string(game.O), Opponent: string(waiter.Identity())})

	s.logger.Info("participants paired",
		slog.String("game_id", string(sess.ID)),
		slog.String("player_x", string(waiter.Identity())),
		slog.String("player_o", string(p.Identity())))
}

// Remove clears the slot if the participant is the current waiter,
// cancelling its fallback. Called on disconnect.
func (s *Service) Remove(p sessions.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.waiting != p {
		return
	}
	s.waiting = nil
	if s.fallback != nil {
		s.fallback.Stop()
		s.fallback = nil
	}
}

// pairWithBot is the deferred fallback action. The timer is stopped on
// pairing and on disconnect, and occupancy is re-checked here anyway: a
// callback already in flight when the slot changed hands must no-op.
func (s *Service) pairWithBot(p sessions.Participant) {
	s.mu.Lock()
	if s.waiting != p {
		s.mu.Unlock()
		return
	}
	s.waiting = nil
	s.fallback = nil
	s.mu.Unlock()

	ctx := context.Background()
	bot := s.bots.Allocate(ctx, p.Identity())
	sess := s.registry.Create(p, bot)

	// A disconnect can land between the slot re-check and the pairing.
	// Disconnect cleanup marks the participant closed before releasing
	// its bindings, so either this check sees the closed state and the
	// pairing is undone here, or the cleanup's release and drop run
	// after the pairing and tear it down there.
	if p.Closed() {
		s.bots.Release(p.Identity())
		s.registry.Destroy(sess.ID)

		s.logger.Info("participant disconnected during bot pairing",
			slog.String("player", string(p.Identity())))
		return
	}

	p.Send(protocol.StartVsBot{
		Symbol:        string(game.X),
		Opponent:      string(bot.Identity()),
		BotCompetence: bot.Competence(),
	})

	s.logger.Info("participant paired with bot",
		slog.String("game_id", string(sess.ID)),
		slog.String("player", string(p.Identity())),
		slog.String("bot", string(bot.Identity())))
}

// drawDelay picks a fallback delay uniformly from [0, FallbackDelay)
// with millisecond granularity. Callers hold s.mu.
func (s *Service) drawDelay() time.Duration {
	maxMs := int(s.cfg.FallbackDelay / time.Millisecond)
	if maxMs <= 0 {
		maxMs = 1
	}
	return time.Duration(s.random.Intn(maxMs)) * time.Millisecond
}
