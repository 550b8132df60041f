package main

import (
	"os"

	"github.com/authentikate/authentikate/internal/pkg/logger"
	"github.com/authentikate/authentikate/internal/server"
)

// @title AuthentiKate API
// @version 1.0
// @description Biometric exam attendance authentication service for exam officers

// @contact.name API Support
// @contact.email support@authentikate.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal or a server error
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
