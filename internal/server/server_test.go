package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"github.com/tictacmatch/tictacmatch-go/internal/factory"
	"github.com/tictacmatch/tictacmatch-go/internal/protocol"
	"github.com/tictacmatch/tictacmatch-go/internal/services/matchmaking"
	"github.com/tictacmatch/tictacmatch-go/internal/testutil"
)

const readTimeout = 5 * time.Second

type ServerSuite struct {
	suite.Suite
	app *factory.App
	ts  *httptest.Server
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	// A long fallback so pairing tests never race the bot timer.
	s.app, s.ts = s.newServer(time.Minute)
}

func (s *ServerSuite) TearDownTest() {
	s.ts.Close()
}

func (s *ServerSuite) newServer(fallback time.Duration) (*factory.App, *httptest.Server) {
	app, err := factory.New(context.Background(), factory.Config{
		Logger:      testutil.NopLogger(),
		StorageType: factory.StorageTypeMemory,
		Matchmaking: matchmaking.Config{FallbackDelay: fallback},
	})
	s.Require().NoError(err)

	router := NewRouter(RouterConfig{
		Logger:         testutil.NopLogger(),
		WSHandler:      app.WSHandler,
		RankingService: app.RankingService,
	})
	return app, httptest.NewServer(router)
}

func (s *ServerSuite) dial(ts *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	if resp != nil {
		defer resp.Body.Close()
	}
	s.T().Cleanup(func() { _ = conn.Close() })
	return conn
}

func (s *ServerSuite) send(conn *websocket.Conn, msg protocol.Message) {
	data, err := protocol.Encode(msg)
	s.Require().NoError(err)
	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, data))
}

func (s *ServerSuite) read(conn *websocket.Conn) protocol.Message {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(readTimeout)))
	_, data, err := conn.ReadMessage()
	s.Require().NoError(err)
	msg, err := protocol.Decode(data)
	s.Require().NoError(err)
	return msg
}

func (s *ServerSuite) login(conn *websocket.Conn, name, code string) {
	s.send(conn, protocol.Login{Name: name, Code: code})
	msg := s.read(conn)
	success, ok := msg.(*protocol.LoginSuccess)
	s.Require().True(ok, "expected login-success, got %s", msg.Kind())
	s.Equal(name, success.Name)
}

func (s *ServerSuite) TestHealthz() {
	resp, err := http.Get(s.ts.URL + "/healthz")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *ServerSuite) TestHumanPairingFullGame() {
	alice := s.dial(s.ts)
	bob := s.dial(s.ts)

	s.login(alice, "alice", "secret-a")
	s.login(bob, "bob", "secret-b")

	// First in gets X, second O, each told the other's name.
	aliceStart, ok := s.read(alice).(*protocol.Start)
	s.Require().True(ok)
	s.Equal("X", aliceStart.Symbol)
	s.Equal("bob", aliceStart.Opponent)

	bobStart, ok := s.read(bob).(*protocol.Start)
	s.Require().True(ok)
	s.Equal("O", bobStart.Symbol)
	s.Equal("alice", bobStart.Opponent)

	// Moves are relayed verbatim to the opponent only.
	s.send(alice, protocol.Move{Row: 1, Col: 2})
	move, ok := s.read(bob).(*protocol.Move)
	s.Require().True(ok)
	s.Equal(1, move.Row)
	s.Equal(2, move.Col)

	s.send(bob, protocol.GameOver{Winner: "bob"})

	for _, conn := range []*websocket.Conn{alice, bob} {
		lb, ok := s.read(conn).(*protocol.Leaderboard)
		s.Require().True(ok)
		s.Require().NotEmpty(lb.Top10)
		s.Equal("bob", string(lb.Top10[0].Name))
		s.Equal(1, lb.Top10[0].Wins)
	}

	// The HTTP view agrees with what the sockets were told.
	resp, err := http.Get(s.ts.URL + "/api/leaderboard")
	s.Require().NoError(err)
	defer resp.Body.Close()
	var body struct {
		Top10 []protocol.LeaderboardEntry `json:"top10"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Require().NotEmpty(body.Top10)
	s.Equal("bob", string(body.Top10[0].Name))
}

func (s *ServerSuite) TestLoneConnectionPairedWithBot() {
	_, ts := s.newServer(30 * time.Millisecond)
	defer ts.Close()

	carol := s.dial(ts)
	s.login(carol, "carol", "secret-c")

	start, ok := s.read(carol).(*protocol.StartVsBot)
	s.Require().True(ok, "expected start-vs-bot")
	s.Equal("X", start.Symbol)
	s.NotEmpty(start.Opponent)
	s.GreaterOrEqual(start.BotCompetence, 0.3)
	s.Less(start.BotCompetence, 0.9)

	// The client simulates the bot locally and reports the outcome.
	s.send(carol, protocol.GameOver{Winner: "carol"})
	lb, ok := s.read(carol).(*protocol.Leaderboard)
	s.Require().True(ok)
	s.Require().NotEmpty(lb.Top10)
	s.Equal("carol", string(lb.Top10[0].Name))
	s.Equal(1, lb.Top10[0].Wins)
}

func (s *ServerSuite) TestWrongCredentialCanRetryOnSameConnection() {
	first := s.dial(s.ts)
	s.login(first, "dave", "right-code")
	s.Require().NoError(first.Close())

	second := s.dial(s.ts)
	s.send(second, protocol.Login{Name: "dave", Code: "wrong-code"})
	_, ok := s.read(second).(*protocol.LoginFailed)
	s.Require().True(ok, "expected login-failed")

	// Same connection, correct secret.
	s.login(second, "dave", "right-code")
}

func (s *ServerSuite) TestMalformedFrameKeepsConnectionOpen() {
	conn := s.dial(s.ts)
	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"mystery"}`)))

	s.login(conn, "erin", "secret-e")
}

func (s *ServerSuite) TestDisconnectWhileWaitingLeavesSlotForNextPair() {
	ghost := s.dial(s.ts)
	s.login(ghost, "ghost", "secret-g")
	s.Require().NoError(ghost.Close())

	// Give the server's read loop a moment to notice the close and
	// clear the waiting slot.
	time.Sleep(100 * time.Millisecond)

	frank := s.dial(s.ts)
	grace := s.dial(s.ts)
	s.login(frank, "frank", "secret-f")
	s.login(grace, "grace", "secret-gr")

	start, ok := s.read(frank).(*protocol.Start)
	s.Require().True(ok)
	s.Equal("grace", start.Opponent)
}
