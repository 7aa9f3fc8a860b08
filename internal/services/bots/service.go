// Package bots allocates stable synthetic opponents for humans the
// matchmaking queue could not pair.
package bots

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/tictacmatch/tictacmatch-go/internal/dependencies/random"
	"github.com/tictacmatch/tictacmatch-go/internal/model"
	"github.com/tictacmatch/tictacmatch-go/internal/services/scores"
)

// namePool is the fixed set of bot display names, preferred over
// synthesized ones while any remain unclaimed.
var namePool = []string{
	"SneakyNoah", "ShadowLiam", "ChillRiley", "Skyler88", "NovaKai",
	"SilentFinn", "MysteriousAva", "EchoZane", "LunaMax", "GhostHarper",
	"PixelTheo", "CrimsonIvy", "VelvetQuinn", "DriftEmber", "WittyNico",
}

// Competence coefficient bounds for newly created bot records.
const (
	minCompetence   = 0.3
	competenceRange = 0.6
)

// Service binds at most one bot to each live human connection and
// keeps bot PlayerRecords in the score snapshot.
type Service struct {
	scores *scores.Service
	random random.Random
	logger *slog.Logger

	mu      sync.Mutex
	byHuman map[model.Identity]*Bot
}

// New creates a new bot allocator
func New(scoresService *scores.Service, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		scores:  scoresService,
		random:  rnd,
		logger:  logger.With(slog.String("component", "bots")),
		byHuman: make(map[model.Identity]*Bot),
	}
}

// Allocate returns the bot bound to the human, creating the binding on
// first use. Repeated calls while the binding lives return the same
// bot unchanged, which guards against overlapping queue cycles.
func (s *Service) Allocate(ctx context.Context, human model.Identity) *Bot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bot, ok := s.byHuman[human]; ok {
		return bot
	}

	name := s.pickName()

	var competence float64
	_ = s.scores.Update(ctx, func(snap *model.Snapshot) {
		rec, ok := snap.Players[name]
		if !ok {
			rec = &model.PlayerRecord{
				IsBot:      true,
				Competence: minCompetence + s.random.Float64()*competenceRange,
			}
			snap.Players[name] = rec
		}
		rec.GamesPlayed++
		competence = rec.Competence
	})

	bot := &Bot{name: name, competence: competence}
	s.byHuman[human] = bot

	s.logger.Info("bot allocated",
		slog.String("bot", string(name)),
		slog.String("human", string(human)),
		slog.Float64("competence", competence))
	return bot
}

// Release drops the human's bot binding so a future session can be
// assigned a fresh (possibly different) bot identity.
func (s *Service) Release(human model.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byHuman, human)
}

// pickName chooses a bot identity: an unused pool name if any remain,
// else an existing bot record at random, else a synthesized one.
// Callers hold s.mu.
func (s *Service) pickName() model.Identity {
	var available []model.Identity
	var existingBots []model.Identity

	s.scores.View(func(snap *model.Snapshot) {
		for _, name := range namePool {
			if _, used := snap.Players[model.Identity(name)]; !used {
				available = append(available, model.Identity(name))
			}
		}
		for id, rec := range snap.Players {
			if rec.IsBot {
				existingBots = append(existingBots, id)
			}
		}
	})

	if len(available) > 0 {
		return available[s.random.Intn(len(available))]
	}
	if len(existingBots) > 0 {
		sort.Slice(existingBots, func(i, j int) bool { return existingBots[i] < existingBots[j] })
		return existingBots[s.random.Intn(len(existingBots))]
	}
	return model.Identity(fmt.Sprintf("Bot_%d", s.random.Intn(10000)))
}
