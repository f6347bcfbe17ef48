// Package app wires the scorekeep runtime: storage, services, the session
// engine and the HTTP lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/scorekeep/internal/api/rest"
	gamesvc "github.com/louisbranch/scorekeep/internal/game/service"
	"github.com/louisbranch/scorekeep/internal/platform/config"
	playersvc "github.com/louisbranch/scorekeep/internal/player/service"
	"github.com/louisbranch/scorekeep/internal/session/engine"
	"github.com/louisbranch/scorekeep/internal/stats"
	"github.com/louisbranch/scorekeep/internal/storage/sqlite"
	"github.com/louisbranch/scorekeep/internal/telemetry"
)

type serverEnv struct {
	DBPath string `env:"SCOREKEEP_DB_PATH"`
}

func loadServerEnv() serverEnv {
	var cfg serverEnv
	_ = config.ParseEnv(&cfg)
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "scorekeep.db")
	}
	return cfg
}

// Server hosts the scorekeep HTTP API and storage lifecycle.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	store      *sqlite.Store
	engine     *engine.Engine
}

// New creates a configured server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured server for the provided address.
func NewWithAddr(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	env := loadServerEnv()
	store, err := sqlite.Open(env.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	sessionEngine := engine.New(engine.Stores{
		Game:    store,
		Player:  store,
		Session: store,
		Archive: store,
	}, telemetry.NewEmitter(store))

	api := rest.NewServer(
		gamesvc.New(store),
		playersvc.New(store),
		sessionEngine,
		stats.New(store, store),
		store,
	)

	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           api.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		store:  store,
		engine: sessionEngine,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a server until context cancellation.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve restores any persisted active session and serves HTTP until context
// cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	if err := s.engine.Restore(ctx); err != nil {
		return fmt.Errorf("restore active session: %w", err)
	}

	log.Printf("scorekeep server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		err := <-serveErr
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Close releases the listener and storage resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}
}
