package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/louisbranch/scorekeep/internal/player/domain"
)

type playerRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Photo  []byte `json:"photo"`
}

func (req playerRequest) toInput() domain.CreatePlayerInput {
	return domain.CreatePlayerInput{Name: req.Name, Avatar: req.Avatar, Photo: req.Photo}
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.players.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	payload := make([]playerJSON, 0, len(players))
	for _, player := range players {
		payload = append(payload, toPlayerJSON(player))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	player, err := s.players.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPlayerJSON(player))
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := s.players.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlayerJSON(player))
}

func (s *Server) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	player, err := s.players.Update(r.Context(), mux.Vars(r)["id"], req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlayerJSON(player))
}
