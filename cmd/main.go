package main

import (
	"os"

	_ "github.com/lshigami/mybeing/docs" // Swagger docs
	"github.com/rs/zerolog/log"
)

// @title MyBeing API
// @version 1.0
// @description Quizzes with scored result bands, newsletter capture, articles and an owner-only admin.
// @contact.name MyBeing
// @license.name MIT
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey AdminToken
// @in header
// @name Authorization
func main() {
	if err := Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
