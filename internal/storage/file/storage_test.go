package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tictacmatch/tictacmatch-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	dir     string
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.storage = New(filepath.Join(s.dir, "score.json"))
	s.ctx = context.Background()
}

func (s *StorageSuite) TestLoadMissingFileReturnsEmptySnapshot() {
	snap, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Empty(snap.Players)
	s.Empty(snap.History)
}

func (s *StorageSuite) TestLoadCorruptFileReturnsEmptySnapshot() {
	path := filepath.Join(s.dir, "score.json")
	s.Require().NoError(os.WriteFile(path, []byte("{not json"), 0o644))

	snap, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Empty(snap.Players)
}

func (s *StorageSuite) TestSaveLoadRoundTrip() {
	snap := model.NewSnapshot()
	snap.Players["alice"] = &model.PlayerRecord{Code: "hash", Wins: 2, Draws: 1}
	snap.Players["NovaKai"] = &model.PlayerRecord{IsBot: true, Competence: 0.55, GamesPlayed: 3}

	s.Require().NoError(s.storage.Save(s.ctx, snap))

	loaded, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Require().Contains(loaded.Players, model.Identity("alice"))
	s.Equal(2, loaded.Players["alice"].Wins)
	s.Require().Contains(loaded.Players, model.Identity("NovaKai"))
	s.True(loaded.Players["NovaKai"].IsBot)
	s.InDelta(0.55, loaded.Players["NovaKai"].Competence, 1e-9)
}

func (s *StorageSuite) TestSaveOverwritesCompletely() {
	snap := model.NewSnapshot()
	snap.Players["alice"] = &model.PlayerRecord{Wins: 1}
	s.Require().NoError(s.storage.Save(s.ctx, snap))

	replacement := model.NewSnapshot()
	replacement.Players["bob"] = &model.PlayerRecord{Wins: 5}
	s.Require().NoError(s.storage.Save(s.ctx, replacement))

	loaded, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.NotContains(loaded.Players, model.Identity("alice"))
	s.Contains(loaded.Players, model.Identity("bob"))
}

func (s *StorageSuite) TestSaveLeavesNoTempFiles() {
	snap := model.NewSnapshot()
	s.Require().NoError(s.storage.Save(s.ctx, snap))

	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	s.Len(entries, 1)
}
