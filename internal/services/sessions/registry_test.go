package sessions

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tictacmatch/tictacmatch-go/internal/protocol"
	"github.com/tictacmatch/tictacmatch-go/internal/testutil"
)

type RegistrySuite struct {
	suite.Suite
	registry *Registry
	alice    *testutil.FakeParticipant
	bob      *testutil.FakeParticipant
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.registry = NewRegistry(testutil.NopLogger())
	s.alice = testutil.NewFakeParticipant("alice")
	s.bob = testutil.NewFakeParticipant("bob")
}

func (s *RegistrySuite) TestCreateAssignsGameToBothParticipants() {
	sess := s.registry.Create(s.alice, s.bob)

	s.NotEmpty(sess.ID)
	s.Equal(sess.ID, s.alice.Game())
	s.Equal(sess.ID, s.bob.Game())
}

func (s *RegistrySuite) TestCreateMintsUniqueIdentifiers() {
	a := s.registry.Create(s.alice, s.bob)
	b := s.registry.Create(testutil.NewFakeParticipant("carol"), testutil.NewFakeParticipant("dave"))
	s.NotEqual(a.ID, b.ID)
}

func (s *RegistrySuite) TestRouteMoveForwardsToOpponent() {
	sess := s.registry.Create(s.alice, s.bob)

	s.registry.RouteMove(sess.ID, s.alice, protocol.Move{Row: 0, Col: 0})

	s.Empty(s.alice.Sent())
	s.Require().Len(s.bob.Sent(), 1)
	move, ok := s.bob.LastSent().(protocol.Move)
	s.Require().True(ok)
	s.Equal(0, move.Row)
	s.Equal(0, move.Col)
}

func (s *RegistrySuite) TestRouteMoveUnknownSessionIsDropped() {
	s.registry.RouteMove("missing", s.alice, protocol.Move{Row: 1, Col: 1})
	s.Empty(s.alice.Sent())
	s.Empty(s.bob.Sent())
}

func (s *RegistrySuite) TestRouteMoveFromStrangerIsDropped() {
	sess := s.registry.Create(s.alice, s.bob)

	stranger := testutil.NewFakeParticipant("mallory")
	s.registry.RouteMove(sess.ID, stranger, protocol.Move{Row: 2, Col: 2})

	s.Empty(s.alice.Sent())
	s.Empty(s.bob.Sent())
}

func (s *RegistrySuite) TestTakeClaimsSessionExactlyOnce() {
	sess := s.registry.Create(s.alice, s.bob)

	taken, ok := s.registry.Take(sess.ID)
	s.Require().True(ok)
	s.Equal(sess.ID, taken.ID)

	// The claim removed it; nobody else can take or find it.
	_, ok = s.registry.Take(sess.ID)
	s.False(ok)
	_, ok = s.registry.Get(sess.ID)
	s.False(ok)
}

func (s *RegistrySuite) TestConcurrentTakesYieldOneWinner() {
	sess := s.registry.Create(s.alice, s.bob)

	const claimants = 8
	var wins atomic.Int32
	var wg sync.WaitGroup
	wg.Add(claimants)
	for i := 0; i < claimants; i++ {
		go func() {
			defer wg.Done()
			if _, ok := s.registry.Take(sess.ID); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), wins.Load())
}

func (s *RegistrySuite) TestDestroyMakesRoutesNoOps() {
	sess := s.registry.Create(s.alice, s.bob)
	s.registry.Destroy(sess.ID)

	s.registry.RouteMove(sess.ID, s.alice, protocol.Move{})
	s.Empty(s.bob.Sent())

	// destroying again is fine
	s.registry.Destroy(sess.ID)
}

func (s *RegistrySuite) TestDropParticipantRemovesTheirSessions() {
	sess := s.registry.Create(s.alice, s.bob)

	s.registry.DropParticipant(s.alice)

	_, ok := s.registry.Get(sess.ID)
	s.False(ok)
}
