package main

import (
	"context"
	"os"

	"github.com/yigit/coursenotes/internal/pkg/logger" // Still needed for initial error logging
	"github.com/yigit/coursenotes/internal/server"
)

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal or a listener error
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
