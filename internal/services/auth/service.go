// Package auth is the identity and login gate: first use of a name
// registers it, later uses must present the same shared secret.
package auth

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/tictacmatch/tictacmatch-go/internal/model"
	"github.com/tictacmatch/tictacmatch-go/internal/services/scores"
)

// Service handles registration and credential checks
type Service struct {
	scores *scores.Service
	logger *slog.Logger
}

// New creates a new auth Service
func New(scores *scores.Service, logger *slog.Logger) *Service {
	return &Service{
		scores: scores,
		logger: logger.With(slog.String("component", "auth")),
	}
}

// Login registers the name on first use or verifies the secret against
// the stored credential. Returns model.ErrInvalidCredentials on
// mismatch; the caller is expected to let the client retry.
func (s *Service) Login(ctx context.Context, name, code string) error {
	id := model.Identity(name)

	if rec, ok := s.scores.Get(id); ok {
		return s.verify(rec, code)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// Re-check under the write lock; another connection may have
	// registered the same name since the read above.
	var existing *model.PlayerRecord
	_ = s.scores.Update(ctx, func(snap *model.Snapshot) {
		if rec, ok := snap.Players[id]; ok {
			existing = rec
			return
		}
		snap.Players[id] = &model.PlayerRecord{Code: string(hash)}
	})
	if existing != nil {
		return s.verify(*existing, code)
	}

	s.logger.Info("registered new player", slog.String("name", name))
	return nil
}

// verify checks the secret against the stored hash. Bot records carry
// no credential and can never be logged into.
func (s *Service) verify(rec model.PlayerRecord, code string) error {
	if rec.IsBot || rec.Code == "" {
		return model.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.Code), []byte(code)) != nil {
		return model.ErrInvalidCredentials
	}
	return nil
}
