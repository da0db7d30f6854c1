package main

import (
	"errors"
	"os"
	"todoapp/config"
	"todoapp/helper"
	"todoapp/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down) is required")
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	err := helper.Runner(cfg, os.Args[1])
	if errors.Is(err, helper.ErrUnknownAction) {
		log.Fatal().Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}

	if err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
