// Package main seeds the local scorekeep database with fixture games and
// players.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/louisbranch/scorekeep/internal/platform/config"
	"github.com/louisbranch/scorekeep/internal/seed"
	"github.com/louisbranch/scorekeep/internal/storage/sqlite"
)

type seedEnv struct {
	DBPath string `env:"SCOREKEEP_DB_PATH" envDefault:"data/scorekeep.db"`
}

func main() {
	log.SetPrefix("[SCOREKEEP] ")
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	var cfg seedEnv
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("parse env: %v", err)
	}

	fixturePath := flag.String("fixtures", filepath.Join("internal", "seed", "testdata", "fixtures.yaml"), "path to the YAML fixture file")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database")
	flag.Parse()

	fixture, err := seed.Load(*fixturePath)
	if err != nil {
		config.Exitf("load fixtures: %v", err)
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		config.Exitf("open store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	result, err := seed.Apply(context.Background(), fixture, store, store)
	if err != nil {
		config.Exitf("apply fixtures: %v", err)
	}
	log.Printf("seeded %d games and %d players into %s", result.Games, result.Players, cfg.DBPath)
}
