package main

import (
	"time"
	"todoapp/config"
	"todoapp/internal/client"
	"todoapp/internal/tui"
	"todoapp/shared/logger"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	timeout := time.Duration(cfg.Client.TimeoutSeconds) * time.Second
	program := tea.NewProgram(tui.New(client.New(cfg), timeout), tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		log.Fatal().Err(err).Str("base_url", cfg.Client.BaseURL).Msg("Terminal client stopped with error")
	}
}
