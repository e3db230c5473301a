package main

import (
	"context"

	"inn/config"
	"inn/di"
	"inn/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()

	// Reconcile room availability against the booking set before
	// taking traffic, so stale flags never survive a restart.
	if _, err := app.Bookings.RefreshAvailability(context.Background()); err != nil {
		log.Error().Err(err).Msg("startup availability reconciliation failed")
	}

	app.HTTP.Serve()
}
