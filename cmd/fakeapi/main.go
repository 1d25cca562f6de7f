package main

import (
	"fmt"
	"os"

	"github.com/salonbook/salon/internal/config"
	"github.com/salonbook/salon/internal/fakeapi"
	"github.com/salonbook/salon/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFakeAPI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.GetLogger()

	srv, err := fakeapi.New(fakeapi.Config{
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		DatabaseURL: cfg.DatabaseURL,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	if _, err := srv.CreateUser(cfg.AdminEmail, cfg.AdminPassword, "Admin", true); err != nil {
		// A persistent database keeps the admin from a previous run
		log.Warn().Err(err).Str("email", cfg.AdminEmail).Msg("Admin account not seeded")
	} else {
		log.Info().Str("email", cfg.AdminEmail).Msg("Seeded admin account")
	}

	// Start HTTP server (this blocks)
	if err := srv.Start(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
