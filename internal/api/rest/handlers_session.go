package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	apperrors "github.com/louisbranch/scorekeep/internal/platform/errors"
	"github.com/louisbranch/scorekeep/internal/session/engine"
)

type startSessionRequest struct {
	GameID    string                     `json:"game_id"`
	PlayerIDs []string                   `json:"player_ids"`
	Title     string                     `json:"title"`
	Config    map[string]json.RawMessage `json:"config"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	patch, err := parseLimitOverrides(req.Config)
	if err != nil {
		writeError(w, r, apperrors.New(apperrors.CodeGameInvalidLimit, "limits must be numbers or null"))
		return
	}

	view, err := s.engine.Start(r.Context(), engine.StartInput{
		GameID:    req.GameID,
		PlayerIDs: req.PlayerIDs,
		Title:     req.Title,
		Config:    configFromPatch(patch),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toViewJSON(view))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.engine.View(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewJSON(view))
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Cancel(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.End(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddRound(w http.ResponseWriter, r *http.Request) {
	view, err := s.engine.AddEmptyRound(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewJSON(view))
}

type scoreRequest struct {
	Value json.RawMessage `json:"value"`
}

// handleUpdateScore records a score. Non-numeric values are ignored with a
// 204 rather than rejected, so partially typed input never corrupts a round
// or surfaces an error mid-keystroke.
func (s *Server) handleUpdateScore(w http.ResponseWriter, r *http.Request) {
	roundIndex, err := parseRoundIndex(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req scoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var value int
	if err := json.Unmarshal(req.Value, &value); err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	view, err := s.engine.UpdateScore(r.Context(), roundIndex, mux.Vars(r)["playerID"], value)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewJSON(view))
}

func (s *Server) handleClearScore(w http.ResponseWriter, r *http.Request) {
	roundIndex, err := parseRoundIndex(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := s.engine.ClearScore(r.Context(), roundIndex, mux.Vars(r)["playerID"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewJSON(view))
}

type sessionPlayerRequest struct {
	PlayerID string `json:"player_id"`
}

func (s *Server) handleAddSessionPlayer(w http.ResponseWriter, r *http.Request) {
	var req sessionPlayerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	view, err := s.engine.AddPlayer(r.Context(), req.PlayerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewJSON(view))
}

func (s *Server) handleRemoveSessionPlayer(w http.ResponseWriter, r *http.Request) {
	view, err := s.engine.RemovePlayer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewJSON(view))
}

type reorderRequest struct {
	PlayerIDs []string `json:"player_ids"`
}

func (s *Server) handleReorderPlayers(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	view, err := s.engine.Reorder(r.Context(), req.PlayerIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewJSON(view))
}

func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	if !decodeBody(w, r, &raw) {
		return
	}
	patch, err := parseLimitOverrides(raw)
	if err != nil {
		writeError(w, r, apperrors.New(apperrors.CodeGameInvalidLimit, "limits must be numbers or null"))
		return
	}
	view, err := s.engine.UpdateConfig(r.Context(), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewJSON(view))
}

func (s *Server) handleLastSelection(w http.ResponseWriter, r *http.Request) {
	playerIDs, err := s.sessions.GetLastSelectedPlayers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if playerIDs == nil {
		playerIDs = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"player_ids": playerIDs})
}

func parseRoundIndex(r *http.Request) (int, error) {
	raw := mux.Vars(r)["index"]
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.WithMetadata(apperrors.CodeSessionRoundOutOfRange, "round index must be a number", map[string]string{"Round": raw})
	}
	return index, nil
}
