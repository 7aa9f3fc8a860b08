// Package server assembles the HTTP surface: the websocket endpoint
// plus a small read-only API, behind logging and recovery middleware.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tictacmatch/tictacmatch-go/internal/middleware"
	"github.com/tictacmatch/tictacmatch-go/internal/protocol"
	"github.com/tictacmatch/tictacmatch-go/internal/services/ranking"
	"github.com/tictacmatch/tictacmatch-go/internal/ws"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger         *slog.Logger
	WSHandler      *ws.Handler
	RankingService *ranking.Service
}

// NewRouter creates the router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
	r.Use(middleware.Logging(cfg.Logger))

	r.Handle("/ws", cfg.WSHandler)
	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/leaderboard", leaderboardHandler(cfg.RankingService)).Methods(http.MethodGet)

	return r
}

// leaderboardHandler serves the current top-10 in the same shape the
// websocket leaderboard message uses.
func leaderboardHandler(rankingService *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Top10 []protocol.LeaderboardEntry `json:"top10"`
		}{Top10: rankingService.Top(ranking.TopSize)})
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
