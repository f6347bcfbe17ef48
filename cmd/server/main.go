// Package main starts the scorekeep HTTP server process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/louisbranch/scorekeep/internal/app"
	"github.com/louisbranch/scorekeep/internal/platform/config"
	"github.com/louisbranch/scorekeep/internal/platform/otel"
)

type mainEnv struct {
	Port int `env:"SCOREKEEP_PORT" envDefault:"8080"`
}

func main() {
	log.SetPrefix("[SCOREKEEP] ")
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	var cfg mainEnv
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("parse env: %v", err)
	}
	flag.IntVar(&cfg.Port, "port", cfg.Port, "The HTTP server port")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Setup(ctx, "scorekeep")
	if err != nil {
		config.Exitf("setup tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	if err := app.Run(ctx, cfg.Port); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
