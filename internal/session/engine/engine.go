// Package engine owns the process-wide active session and its lifecycle:
// starting, score entry with reactive end-condition evaluation, roster
// mutations, limit overrides, and ending or cancelling with archival.
package engine

import (
	"context"
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	gamedomain "github.com/louisbranch/scorekeep/internal/game/domain"
	apperrors "github.com/louisbranch/scorekeep/internal/platform/errors"
	"github.com/louisbranch/scorekeep/internal/platform/id"
	"github.com/louisbranch/scorekeep/internal/session/domain"
	"github.com/louisbranch/scorekeep/internal/storage"
	"github.com/louisbranch/scorekeep/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Stores groups the storage interfaces the engine depends on.
type Stores struct {
	Game    storage.GameStore
	Player  storage.PlayerStore
	Session storage.SessionStore
	Archive storage.ArchiveStore
}

// Engine serializes all mutations of the single active session. Every
// operation is atomic with respect to callers; derived state is recomputed
// on read rather than cached.
type Engine struct {
	mu          sync.Mutex
	notifyMu    sync.Mutex
	stores      Stores
	telemetry   *telemetry.Emitter
	tracer      trace.Tracer
	clock       func() time.Time
	idGenerator func() (string, error)
	active      *domain.Session
	listeners   []func(View)
}

// New creates an Engine with default dependencies.
func New(stores Stores, emitter *telemetry.Emitter) *Engine {
	return &Engine{
		stores:      stores,
		telemetry:   emitter,
		tracer:      otel.Tracer("scorekeep/session-engine"),
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// OnChange registers a listener invoked with the refreshed view after every
// successful mutation. A zero-value view signals that no session is active.
// Listeners must be registered before the engine starts serving requests and
// must not call back into the engine.
func (e *Engine) OnChange(listener func(View)) {
	e.listeners = append(e.listeners, listener)
}

// publish delivers the refreshed view to listeners. Callers hold e.mu; the
// notify lock is chained before the state lock is released so overlapping
// mutations deliver their views in mutation order and never leave a stale
// view as the last message.
func (e *Engine) publish(view View) {
	e.notifyMu.Lock()
	e.mu.Unlock()
	for _, listener := range e.listeners {
		listener(view)
	}
	e.notifyMu.Unlock()
}

// Restore loads a previously persisted active session, if any. Called once
// at process start.
func (e *Engine) Restore(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.stores.Session.GetActiveSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}
	e.active = &session
	return nil
}

// StartInput describes a session start request.
type StartInput struct {
	GameID    string
	PlayerIDs []string
	Title     string
	Config    domain.Config
}

// Start begins a new session, implicitly discarding any active one. The
// player order is preserved exactly as given and is also persisted as the
// roster preselection for the next start.
func (e *Engine) Start(ctx context.Context, input StartInput) (View, error) {
	ctx, span := e.tracer.Start(ctx, "engine.start_session")
	defer span.End()

	e.mu.Lock()
	view, err := e.startLocked(ctx, input)
	if err != nil {
		e.mu.Unlock()
		return View{}, err
	}
	e.publish(view)
	e.emit(ctx, "session_started", map[string]string{
		"session_id": view.SessionID,
		"game_id":    view.GameID,
		"players":    strconv.Itoa(len(view.Roster)),
	})
	return view, nil
}

func (e *Engine) startLocked(ctx context.Context, input StartInput) (View, error) {
	game, err := e.stores.Game.GetGame(ctx, input.GameID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return View{}, apperrors.WithMetadata(apperrors.CodeNotFound, "game not found", map[string]string{"GameID": input.GameID})
		}
		return View{}, err
	}
	for _, playerID := range input.PlayerIDs {
		if _, err := e.stores.Player.GetPlayer(ctx, playerID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return View{}, apperrors.WithMetadata(apperrors.CodeNotFound, "player not found", map[string]string{"PlayerID": playerID})
			}
			return View{}, err
		}
	}

	session, err := domain.CreateSession(domain.CreateSessionInput{
		GameID: input.GameID,
		Title:  input.Title,
		Roster: input.PlayerIDs,
		Config: input.Config,
	}, e.clock, e.idGenerator)
	if err != nil {
		return View{}, codedSessionError(err, nil)
	}

	// The preselection is written before the session row: a failure between
	// the two must not leave a persisted session that the caller was told
	// failed to start.
	if err := e.stores.Session.PutLastSelectedPlayers(ctx, session.Roster); err != nil {
		return View{}, err
	}
	if err := e.stores.Session.SaveActiveSession(ctx, session); err != nil {
		return View{}, err
	}

	e.active = &session
	return e.buildViewLocked(ctx, game), nil
}

// AddEmptyRound appends a blank round to the active session.
func (e *Engine) AddEmptyRound(ctx context.Context) (View, error) {
	return e.mutate(ctx, "engine.add_round", func(session *domain.Session) error {
		session.AddEmptyRound()
		return nil
	})
}

// UpdateScore records a score and re-evaluates the end condition. When the
// updated round is the last one, is now complete, and no end condition
// holds, a fresh empty round is appended automatically.
func (e *Engine) UpdateScore(ctx context.Context, roundIndex int, playerID string, value int) (View, error) {
	ctx, span := e.tracer.Start(ctx, "engine.update_score")
	defer span.End()

	e.mu.Lock()
	view, err := e.updateScoreLocked(ctx, roundIndex, playerID, value)
	if err != nil {
		e.mu.Unlock()
		return View{}, err
	}
	e.publish(view)
	return view, nil
}

func (e *Engine) updateScoreLocked(ctx context.Context, roundIndex int, playerID string, value int) (View, error) {
	session, err := e.requireActive()
	if err != nil {
		return View{}, err
	}
	if err := session.SetScore(roundIndex, playerID, value); err != nil {
		return View{}, codedSessionError(err, map[string]string{
			"PlayerID": playerID,
			"Round":    strconv.Itoa(roundIndex + 1),
		})
	}

	game := e.lookupGameLocked(ctx, session.GameID)
	lastIndex := len(session.History) - 1
	reason := domain.EvaluateEnd(session, game.Target, game.Rounds)
	if reason == domain.EndReasonNone && roundIndex == lastIndex && session.RoundComplete(lastIndex) {
		session.AddEmptyRound()
	}

	session.UpdatedAt = e.clock().UTC()
	if err := e.stores.Session.SaveActiveSession(ctx, *session); err != nil {
		return View{}, err
	}
	return e.buildViewLocked(ctx, game), nil
}

// ClearScore blanks a round cell. Blank cells sum as zero but leave the
// round incomplete for end-condition purposes.
func (e *Engine) ClearScore(ctx context.Context, roundIndex int, playerID string) (View, error) {
	ctx, span := e.tracer.Start(ctx, "engine.clear_score")
	defer span.End()

	e.mu.Lock()
	view, err := e.clearScoreLocked(ctx, roundIndex, playerID)
	if err != nil {
		e.mu.Unlock()
		return View{}, err
	}
	e.publish(view)
	return view, nil
}

func (e *Engine) clearScoreLocked(ctx context.Context, roundIndex int, playerID string) (View, error) {
	session, err := e.requireActive()
	if err != nil {
		return View{}, err
	}
	if err := session.ClearScore(roundIndex, playerID); err != nil {
		return View{}, codedSessionError(err, map[string]string{
			"PlayerID": playerID,
			"Round":    strconv.Itoa(roundIndex + 1),
		})
	}
	session.UpdatedAt = e.clock().UTC()
	if err := e.stores.Session.SaveActiveSession(ctx, *session); err != nil {
		return View{}, err
	}
	return e.buildViewLocked(ctx, e.lookupGameLocked(ctx, session.GameID)), nil
}

// AddPlayer appends a registered player to the roster.
func (e *Engine) AddPlayer(ctx context.Context, playerID string) (View, error) {
	ctx, span := e.tracer.Start(ctx, "engine.add_player")
	defer span.End()

	e.mu.Lock()
	view, err := e.addPlayerLocked(ctx, playerID)
	if err != nil {
		e.mu.Unlock()
		return View{}, err
	}
	e.publish(view)
	return view, nil
}

func (e *Engine) addPlayerLocked(ctx context.Context, playerID string) (View, error) {
	session, err := e.requireActive()
	if err != nil {
		return View{}, err
	}
	if _, err := e.stores.Player.GetPlayer(ctx, playerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return View{}, apperrors.WithMetadata(apperrors.CodeNotFound, "player not found", map[string]string{"PlayerID": playerID})
		}
		return View{}, err
	}
	if err := session.AddPlayer(playerID); err != nil {
		return View{}, codedSessionError(err, map[string]string{"PlayerID": playerID})
	}

	session.UpdatedAt = e.clock().UTC()
	if err := e.stores.Session.SaveActiveSession(ctx, *session); err != nil {
		return View{}, err
	}
	return e.buildViewLocked(ctx, e.lookupGameLocked(ctx, session.GameID)), nil
}

// RemovePlayer drops a roster player and strips their historical scores.
func (e *Engine) RemovePlayer(ctx context.Context, playerID string) (View, error) {
	return e.mutate(ctx, "engine.remove_player", func(session *domain.Session) error {
		return session.RemovePlayer(playerID)
	})
}

// Reorder replaces the roster order with a permutation of itself.
func (e *Engine) Reorder(ctx context.Context, newOrder []string) (View, error) {
	return e.mutate(ctx, "engine.reorder_players", func(session *domain.Session) error {
		return session.Reorder(newOrder)
	})
}

// UpdateConfig merges limit overrides into the session config. This is the
// "continue past limit" mechanism: it clears a game-over signal only when
// the new limits are no longer exceeded.
func (e *Engine) UpdateConfig(ctx context.Context, patch domain.ConfigPatch) (View, error) {
	return e.mutate(ctx, "engine.update_config", func(session *domain.Session) error {
		session.Config = session.Config.Merge(patch)
		return nil
	})
}

// End archives the active session's final scores and clears it. Irreversible.
func (e *Engine) End(ctx context.Context) error {
	ctx, span := e.tracer.Start(ctx, "engine.end_session")
	defer span.End()

	e.mu.Lock()
	attrs, err := e.endLocked(ctx)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.publish(View{})
	e.emit(ctx, "session_ended", attrs)
	return nil
}

func (e *Engine) endLocked(ctx context.Context) (map[string]string, error) {
	session, err := e.requireActive()
	if err != nil {
		return nil, err
	}

	entryID, err := e.idGenerator()
	if err != nil {
		return nil, err
	}
	results := make([]storage.PlayerResult, 0, len(session.Roster))
	for _, playerID := range session.Roster {
		results = append(results, storage.PlayerResult{
			PlayerID: playerID,
			Score:    session.AggregateScore(playerID),
		})
	}
	entry := storage.ArchiveEntry{
		ID:         entryID,
		GameID:     session.GameID,
		Results:    results,
		FinishedAt: e.clock().UTC(),
	}

	// The persisted row is cleared before the archive append so a failed
	// append can be retried: the in-memory session survives until both
	// steps succeed, and a retry appends exactly one entry.
	if err := e.stores.Session.ClearActiveSession(ctx); err != nil {
		return nil, err
	}
	if err := e.stores.Archive.AppendArchiveEntry(ctx, entry); err != nil {
		return nil, err
	}

	attrs := map[string]string{
		"session_id": session.ID,
		"game_id":    session.GameID,
		"rounds":     strconv.Itoa(len(session.History)),
	}
	e.active = nil
	return attrs, nil
}

// Cancel discards the active session without archiving it. Irreversible.
func (e *Engine) Cancel(ctx context.Context) error {
	ctx, span := e.tracer.Start(ctx, "engine.cancel_session")
	defer span.End()

	e.mu.Lock()
	session, err := e.requireActive()
	if err == nil {
		err = e.stores.Session.ClearActiveSession(ctx)
	}
	if err != nil {
		e.mu.Unlock()
		return err
	}
	sessionID := session.ID
	e.active = nil
	e.publish(View{})
	e.emit(ctx, "session_cancelled", map[string]string{"session_id": sessionID})
	return nil
}

// View returns the derived state of the active session.
func (e *Engine) View(ctx context.Context) (View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.requireActive()
	if err != nil {
		return View{}, err
	}
	return e.buildViewLocked(ctx, e.lookupGameLocked(ctx, session.GameID)), nil
}

// Active reports whether a session is currently in progress.
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active != nil
}

func (e *Engine) mutate(ctx context.Context, spanName string, apply func(*domain.Session) error) (View, error) {
	ctx, span := e.tracer.Start(ctx, spanName)
	defer span.End()

	e.mu.Lock()
	view, err := e.mutateLocked(ctx, apply)
	if err != nil {
		e.mu.Unlock()
		return View{}, err
	}
	e.publish(view)
	return view, nil
}

func (e *Engine) mutateLocked(ctx context.Context, apply func(*domain.Session) error) (View, error) {
	session, err := e.requireActive()
	if err != nil {
		return View{}, err
	}
	if err := apply(session); err != nil {
		return View{}, codedSessionError(err, nil)
	}
	session.UpdatedAt = e.clock().UTC()
	if err := e.stores.Session.SaveActiveSession(ctx, *session); err != nil {
		return View{}, err
	}
	return e.buildViewLocked(ctx, e.lookupGameLocked(ctx, session.GameID)), nil
}

func (e *Engine) requireActive() (*domain.Session, error) {
	if e.active == nil {
		return nil, apperrors.New(apperrors.CodeSessionNotActive, "no active session")
	}
	return e.active, nil
}

// lookupGameLocked resolves the session's game template. A deleted game
// degrades to highest-wins with no default limits rather than failing the
// operation, so orphaned sessions stay usable.
func (e *Engine) lookupGameLocked(ctx context.Context, gameID string) gamedomain.Game {
	game, err := e.stores.Game.GetGame(ctx, gameID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("session engine: lookup game %s: %v", gameID, err)
		}
		return gamedomain.Game{ID: gameID, WinCondition: gamedomain.WinConditionHighest}
	}
	return game
}

func (e *Engine) emit(ctx context.Context, name string, attrs map[string]string) {
	if err := e.telemetry.Emit(ctx, storage.TelemetryEvent{Name: name, Attributes: attrs}); err != nil {
		log.Printf("session engine: emit %s: %v", name, err)
	}
}

func codedSessionError(err error, metadata map[string]string) error {
	switch {
	case errors.Is(err, domain.ErrEmptyGameID):
		return apperrors.New(apperrors.CodeNotFound, err.Error())
	case errors.Is(err, domain.ErrEmptyRoster):
		return apperrors.New(apperrors.CodeSessionEmptyRoster, err.Error())
	case errors.Is(err, domain.ErrDuplicatePlayer):
		return apperrors.WithMetadata(apperrors.CodeSessionDuplicatePlayer, err.Error(), metadata)
	case errors.Is(err, domain.ErrPlayerNotInRoster):
		return apperrors.WithMetadata(apperrors.CodeSessionPlayerNotInRoster, err.Error(), metadata)
	case errors.Is(err, domain.ErrLastPlayer):
		return apperrors.New(apperrors.CodeSessionLastPlayer, err.Error())
	case errors.Is(err, domain.ErrRosterMismatch):
		return apperrors.New(apperrors.CodeSessionRosterMismatch, err.Error())
	case errors.Is(err, domain.ErrRoundOutOfRange):
		return apperrors.WithMetadata(apperrors.CodeSessionRoundOutOfRange, err.Error(), metadata)
	default:
		return err
	}
}
