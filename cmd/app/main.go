package main

import (
	"os"
	"todoapp/config"
	"todoapp/di"
	"todoapp/shared/logger"
	"todoapp/shared/timezone"

	"github.com/rs/zerolog/log"
)

// @title Todo Service
// @version 1.0
// @description Todo list with a JSON API, htmx fragments and a live websocket view over one store.
// @BasePath /
func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.UseJSONOutput(cfg, os.Stdout)
	logger.SetLogLevel(cfg)
	timezone.Init(cfg)

	http, cleanup, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	err = http.Serve()

	cleanup()

	if err != nil {
		log.Fatal().Err(err).Msg("HTTP server stopped with error")
	}
}
