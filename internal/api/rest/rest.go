// Package rest exposes the scorekeep HTTP API: game and player registries,
// the active-session operations, statistics, and a websocket feed pushing
// the refreshed session view after every mutation.
package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	gamesvc "github.com/louisbranch/scorekeep/internal/game/service"
	playersvc "github.com/louisbranch/scorekeep/internal/player/service"
	"github.com/louisbranch/scorekeep/internal/session/engine"
	"github.com/louisbranch/scorekeep/internal/stats"
	"github.com/louisbranch/scorekeep/internal/storage"
)

// APIPrefix is the URL prefix shared by every route.
const APIPrefix = "/api/v1"

// Server holds the HTTP handlers and their collaborators.
type Server struct {
	games    *gamesvc.Service
	players  *playersvc.Service
	engine   *engine.Engine
	stats    *stats.Aggregator
	sessions storage.SessionStore
	feed     *feed
}

// NewServer wires the HTTP surface to its services. It registers a change
// listener on the engine so websocket subscribers receive every refreshed
// view; call it before the engine starts serving requests.
func NewServer(games *gamesvc.Service, players *playersvc.Service, sessionEngine *engine.Engine, aggregator *stats.Aggregator, sessions storage.SessionStore) *Server {
	s := &Server{
		games:    games,
		players:  players,
		engine:   sessionEngine,
		stats:    aggregator,
		sessions: sessions,
		feed:     newFeed(),
	}
	sessionEngine.OnChange(s.feed.broadcast)
	return s
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix(APIPrefix).Subrouter()

	api.HandleFunc("/games", s.handleListGames).Methods(http.MethodGet)
	api.HandleFunc("/games", s.handleCreateGame).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}", s.handleGetGame).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", s.handleUpdateGame).Methods(http.MethodPut)
	api.HandleFunc("/games/{id}", s.handleDeleteGame).Methods(http.MethodDelete)

	api.HandleFunc("/players", s.handleListPlayers).Methods(http.MethodGet)
	api.HandleFunc("/players", s.handleCreatePlayer).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}", s.handleGetPlayer).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", s.handleUpdatePlayer).Methods(http.MethodPut)

	api.HandleFunc("/session", s.handleStartSession).Methods(http.MethodPost)
	api.HandleFunc("/session", s.handleGetSession).Methods(http.MethodGet)
	api.HandleFunc("/session", s.handleCancelSession).Methods(http.MethodDelete)
	api.HandleFunc("/session/end", s.handleEndSession).Methods(http.MethodPost)
	api.HandleFunc("/session/rounds", s.handleAddRound).Methods(http.MethodPost)
	api.HandleFunc("/session/rounds/{index}/scores/{playerID}", s.handleUpdateScore).Methods(http.MethodPut)
	api.HandleFunc("/session/rounds/{index}/scores/{playerID}", s.handleClearScore).Methods(http.MethodDelete)
	api.HandleFunc("/session/players", s.handleAddSessionPlayer).Methods(http.MethodPost)
	api.HandleFunc("/session/players/order", s.handleReorderPlayers).Methods(http.MethodPut)
	api.HandleFunc("/session/players/{id}", s.handleRemoveSessionPlayer).Methods(http.MethodDelete)
	api.HandleFunc("/session/config", s.handleUpdateConfig).Methods(http.MethodPatch)
	api.HandleFunc("/session/feed", s.handleSessionFeed).Methods(http.MethodGet)

	api.HandleFunc("/stats/common", s.handleCommonStats).Methods(http.MethodGet)
	api.HandleFunc("/stats/games", s.handleGameCounts).Methods(http.MethodGet)

	api.HandleFunc("/selection", s.handleLastSelection).Methods(http.MethodGet)

	return router
}
