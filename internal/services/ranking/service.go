// Package ranking reconciles terminal game outcomes into the score
// snapshot and derives the leaderboard from it.
package ranking

import (
	"context"
	"log/slog"
	"sort"

	"github.com/tictacmatch/tictacmatch-go/internal/dependencies/clock"
	"github.com/tictacmatch/tictacmatch-go/internal/model"
	"github.com/tictacmatch/tictacmatch-go/internal/protocol"
	"github.com/tictacmatch/tictacmatch-go/internal/services/scores"
	"github.com/tictacmatch/tictacmatch-go/internal/services/sessions"
)

// TopSize is how many entries a leaderboard carries.
const TopSize = 10

// Service applies terminal results and fans the recomputed ranking out
// to both participants.
type Service struct {
	scores   *scores.Service
	registry *sessions.Registry
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates a new ranking Service
func New(
	scoresService *scores.Service,
	registry *sessions.Registry,
	clk clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		scores:   scoresService,
		registry: registry,
		clock:    clk,
		logger:   logger.With(slog.String("component", "ranking")),
	}
}

// Reconcile applies a terminal result to the session's participants
// exactly once. The session is claimed atomically up front, so of any
// number of racing duplicate reports (both clients report the same
// result) exactly one proceeds; the rest see a miss and are ignored,
// as are results for sessions that never existed.
func (s *Service) Reconcile(ctx context.Context, id model.GameID, winner model.Identity, draw bool) {
	sess, ok := s.registry.Take(id)
	if !ok {
		return
	}

	participants := []sessions.Participant{sess.A, sess.B}

	_ = s.scores.Update(ctx, func(snap *model.Snapshot) {
		if draw {
			// Bots do not accrue draws
			for _, p := range participants {
				if p.IsBot() {
					continue
				}
				if rec, ok := snap.Players[p.Identity()]; ok {
					rec.Draws++
				}
			}
		} else {
			// A single increment for whichever participant the winner
			// names, human or bot
			for _, p := range participants {
				if p.Identity() != winner {
					continue
				}
				if rec, ok := snap.Players[p.Identity()]; ok {
					rec.Wins++
				}
				break
			}
		}

		entryWinner := winner
		if draw {
			entryWinner = ""
		}
		snap.History = append(snap.History, model.ResultEntry{
			GameID:     id,
			Players:    []model.Identity{sess.A.Identity(), sess.B.Identity()},
			Winner:     entryWinner,
			Draw:       draw,
			FinishedAt: s.clock.Now(),
		})
	})

	top := s.Top(TopSize)
	for _, p := range participants {
		p.Send(protocol.Leaderboard{Top10: top})
	}

	s.logger.Info("game reconciled",
		slog.String("game_id", string(id)),
		slog.String("winner", string(winner)),
		slog.Bool("draw", draw))
}

// Top derives the current ranking: wins descending, draws breaking
// ties, truncated to n entries. Never persisted.
func (s *Service) Top(n int) []protocol.LeaderboardEntry {
	entries := make([]protocol.LeaderboardEntry, 0)
	s.scores.View(func(snap *model.Snapshot) {
		for id, rec := range snap.Players {
			entries = append(entries, protocol.LeaderboardEntry{
				Name:  id,
				Wins:  rec.Wins,
				Draws: rec.Draws,
				IsBot: rec.IsBot,
			})
		}
	})

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		if entries[i].Draws != entries[j].Draws {
			return entries[i].Draws > entries[j].Draws
		}
		return entries[i].Name < entries[j].Name
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
