package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tictacmatch/tictacmatch-go/internal/model"
	"github.com/tictacmatch/tictacmatch-go/internal/services/scores"
	"github.com/tictacmatch/tictacmatch-go/internal/storage/memory"
	"github.com/tictacmatch/tictacmatch-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	scores  *scores.Service
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.scores = scores.New(s.ctx, memory.New(), testutil.NopLogger())
	s.service = New(s.scores, testutil.NopLogger())
}

func (s *ServiceSuite) TestFirstLoginRegisters() {
	err := s.service.Login(s.ctx, "alice", "secretA")
	s.Require().NoError(err)

	rec, ok := s.scores.Get("alice")
	s.Require().True(ok)
	s.False(rec.IsBot)
	s.Zero(rec.Wins)
	s.Zero(rec.Draws)
	s.NotEmpty(rec.Code)
	s.NotEqual("secretA", rec.Code) // stored hashed
}

func (s *ServiceSuite) TestReturningLoginWithMatchingSecret() {
	s.Require().NoError(s.service.Login(s.ctx, "alice", "secretA"))
	s.NoError(s.service.Login(s.ctx, "alice", "secretA"))
}

func (s *ServiceSuite) TestReturningLoginWithWrongSecret() {
	s.Require().NoError(s.service.Login(s.ctx, "alice", "secretA"))

	err := s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestCredentialIsImmutable() {
	s.Require().NoError(s.service.Login(s.ctx, "alice", "secretA"))

	before, _ := s.scores.Get("alice")
	_ = s.service.Login(s.ctx, "alice", "other")
	after, _ := s.scores.Get("alice")

	s.Equal(before.Code, after.Code)
}

func (s *ServiceSuite) TestBotNameCannotBeLoggedInto() {
	err := s.scores.Update(s.ctx, func(snap *model.Snapshot) {
		snap.Players["NovaKai"] = &model.PlayerRecord{IsBot: true, Competence: 0.5}
	})
	s.Require().NoError(err)

	err = s.service.Login(s.ctx, "NovaKai", "anything")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestRegistrationDoesNotResetCounts() {
	s.Require().NoError(s.service.Login(s.ctx, "alice", "secretA"))
	err := s.scores.Update(s.ctx, func(snap *model.Snapshot) {
		snap.Players["alice"].Wins = 3
	})
	s.Require().NoError(err)

	s.Require().NoError(s.service.Login(s.ctx, "alice", "secretA"))

	rec, _ := s.scores.Get("alice")
	s.Equal(3, rec.Wins)
}
