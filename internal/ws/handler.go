package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/tictacmatch/tictacmatch-go/internal/model"
	"github.com/tictacmatch/tictacmatch-go/internal/protocol"
	"github.com/tictacmatch/tictacmatch-go/internal/services/auth"
	"github.com/tictacmatch/tictacmatch-go/internal/services/bots"
	"github.com/tictacmatch/tictacmatch-go/internal/services/matchmaking"
	"github.com/tictacmatch/tictacmatch-go/internal/services/ranking"
	"github.com/tictacmatch/tictacmatch-go/internal/services/sessions"
)

// Handler upgrades HTTP requests to websocket connections and runs the
// per-connection read loop.
type Handler struct {
	auth        *auth.Service
	matchmaking *matchmaking.Service
	registry    *sessions.Registry
	bots        *bots.Service
	ranking     *ranking.Service
	logger      *slog.Logger

	upgrader websocket.Upgrader
}

// NewHandler creates a new websocket Handler
func NewHandler(
	authService *auth.Service,
	matchmakingService *matchmaking.Service,
	registry *sessions.Registry,
	botService *bots.Service,
	rankingService *ranking.Service,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		auth:        authService,
		matchmaking: matchmakingService,
		registry:    registry,
		bots:        botService,
		ranking:     rankingService,
		logger:      logger.With(slog.String("component", "ws")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The CLI client dials without an Origin header and browsers
			// connect from any host serving the frontend.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and services the connection until the
// peer goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			slog.String("remote", r.RemoteAddr),
			slog.String("error", err.Error()))
		return
	}

	client := NewClient(conn, h.logger)
	go client.WritePump()

	h.serve(r.Context(), client)
}

// serve runs the read loop and tears the connection's state down when
// it ends: the waiting slot, the bot binding, and any live session.
func (h *Handler) serve(ctx context.Context, client *Client) {
	defer func() {
		// Mark the connection closed before tearing state down, so a
		// bot fallback racing this cleanup observes the closed state
		// and abandons its pairing.
		client.Close()
		h.matchmaking.Remove(client)
		if id := client.Identity(); id != "" {
			h.bots.Release(id)
		}
		h.registry.DropParticipant(client)

		h.logger.Info("connection closed",
			slog.String("player", string(client.Identity())))
	}()

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("read failed",
					slog.String("player", string(client.Identity())),
					slog.String("error", err.Error()))
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			// Malformed input never kills the connection.
			h.logger.Warn("dropping undecodable frame",
				slog.String("player", string(client.Identity())),
				slog.String("error", err.Error()))
			continue
		}

		h.dispatch(ctx, client, msg)
	}
}

func (h *Handler) dispatch(ctx context.Context, client *Client, msg protocol.Message) {
	switch m := msg.(type) {
	case *protocol.Login:
		h.handleLogin(ctx, client, m)
	case *protocol.Move:
		h.registry.RouteMove(client.Game(), client, *m)
	case *protocol.GameOver:
		h.ranking.Reconcile(ctx, client.Game(), m.Winner, m.Draw)
	default:
		h.logger.Warn("dropping unexpected message kind",
			slog.String("player", string(client.Identity())),
			slog.String("kind", string(msg.Kind())))
	}
}

// handleLogin authenticates the connection and, on success, puts it in
// the matchmaking queue. A rejected credential leaves the connection
// open for another attempt.
func (h *Handler) handleLogin(ctx context.Context, client *Client, m *protocol.Login) {
	if err := h.auth.Login(ctx, m.Name, m.Code); err != nil {
		if !errors.Is(err, model.ErrInvalidCredentials) {
			h.logger.Error("login failed",
				slog.String("name", m.Name),
				slog.String("error", err.Error()))
		}
		client.Send(protocol.LoginFailed{})
		return
	}

	client.SetIdentity(model.Identity(m.Name))
	client.Send(protocol.LoginSuccess{Name: m.Name})
	h.matchmaking.Enqueue(ctx, client)
}
