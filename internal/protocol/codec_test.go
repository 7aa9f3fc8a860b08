package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type CodecSuite struct {
	suite.Suite
}

func TestCodecSuite(t *testing.T) {
	suite.Run(t, new(CodecSuite))
}

func (s *CodecSuite) TestDecodeLogin() {
	msg, err := Decode([]byte(`{"type":"login","name":"alice","code":"secretA"}`))
	s.Require().NoError(err)

	login, ok := msg.(*Login)
	s.Require().True(ok)
	s.Equal("alice", login.Name)
	s.Equal("secretA", login.Code)
}

func (s *CodecSuite) TestDecodeMove() {
	msg, err := Decode([]byte(`{"type":"move","row":0,"col":2}`))
	s.Require().NoError(err)

	move, ok := msg.(*Move)
	s.Require().True(ok)
	s.Equal(0, move.Row)
	s.Equal(2, move.Col)
}

func (s *CodecSuite) TestDecodeGameOverWithNullWinner() {
	msg, err := Decode([]byte(`{"type":"game-over","winner":null,"draw":true}`))
	s.Require().NoError(err)

	over, ok := msg.(*GameOver)
	s.Require().True(ok)
	s.Empty(over.Winner)
	s.True(over.Draw)
}

func (s *CodecSuite) TestDecodeMalformedJSON() {
	_, err := Decode([]byte(`{"type":"login",`))
	s.ErrorIs(err, ErrMalformed)
}

func (s *CodecSuite) TestDecodeUnknownKind() {
	_, err := Decode([]byte(`{"type":"teleport"}`))
	s.ErrorIs(err, ErrUnknownKind)
}

func (s *CodecSuite) TestEncodeInjectsTypeTag() {
	data, err := Encode(Start{Symbol: "X", Opponent: "bob"})
	s.Require().NoError(err)

	var obj map[string]any
	s.Require().NoError(json.Unmarshal(data, &obj))
	s.Equal("start", obj["type"])
	s.Equal("X", obj["symbol"])
	s.Equal("bob", obj["opponent"])
}

func (s *CodecSuite) TestEncodeDecodeRoundTrip() {
	data, err := Encode(StartVsBot{Symbol: "X", Opponent: "NovaKai", BotCompetence: 0.65})
	s.Require().NoError(err)

	msg, err := Decode(data)
	s.Require().NoError(err)

	vsBot, ok := msg.(*StartVsBot)
	s.Require().True(ok)
	s.Equal("NovaKai", vsBot.Opponent)
	s.InDelta(0.65, vsBot.BotCompetence, 1e-9)
}

func (s *CodecSuite) TestEncodeLeaderboardPreservesOrder() {
	data, err := Encode(Leaderboard{Top10: []LeaderboardEntry{
		{Name: "alice", Wins: 3},
		{Name: "bob", Wins: 1},
	}})
	s.Require().NoError(err)

	msg, err := Decode(data)
	s.Require().NoError(err)

	lb := msg.(*Leaderboard)
	s.Require().Len(lb.Top10, 2)
	s.Equal("alice", string(lb.Top10[0].Name))
	s.Equal("bob", string(lb.Top10[1].Name))
}
