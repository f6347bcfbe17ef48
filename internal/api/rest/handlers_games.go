package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/louisbranch/scorekeep/internal/game/domain"
	apperrors "github.com/louisbranch/scorekeep/internal/platform/errors"
)

type gameRequest struct {
	Name            string `json:"name"`
	WinCondition    string `json:"win_condition"`
	Target          int    `json:"target"`
	Rounds          int    `json:"rounds"`
	FixedRoundScore int    `json:"fixed_round_score"`
	Icon            string `json:"icon"`
	Color           string `json:"color"`
}

func (req gameRequest) toInput() (domain.CreateGameInput, error) {
	winCondition, err := domain.ParseWinCondition(req.WinCondition)
	if err != nil {
		return domain.CreateGameInput{}, apperrors.New(apperrors.CodeGameInvalidWinCondition, err.Error())
	}
	return domain.CreateGameInput{
		Name:            req.Name,
		WinCondition:    winCondition,
		Target:          req.Target,
		Rounds:          req.Rounds,
		FixedRoundScore: req.FixedRoundScore,
		Icon:            req.Icon,
		Color:           req.Color,
	}, nil
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.games.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	payload := make([]gameJSON, 0, len(games))
	for _, game := range games {
		payload = append(payload, toGameJSON(game))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(w, r, err)
		return
	}
	game, err := s.games.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGameJSON(game))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := s.games.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGameJSON(game))
}

func (s *Server) handleUpdateGame(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(w, r, err)
		return
	}
	game, err := s.games.Update(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGameJSON(game))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.games.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
