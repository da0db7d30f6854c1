package logger_test

import (
	"bytes"
	"errors"
	"todoapp/config"
	"todoapp/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func restoreLogger(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func TestInitLogger(t *testing.T) {
	restoreLogger(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("store unreachable"))

	assert.Contains(t, buf.String(), "store unreachable")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		expectedLevel zerolog.Level
	}{
		{name: "debug level", logLevel: "debug", expectedLevel: zerolog.DebugLevel},
		{name: "info level", logLevel: "info", expectedLevel: zerolog.InfoLevel},
		{name: "error level", logLevel: "error", expectedLevel: zerolog.ErrorLevel},
		{name: "invalid level defaults to trace", logLevel: "invalid_level", expectedLevel: zerolog.TraceLevel},
		{name: "empty level uses NoLevel", logLevel: "", expectedLevel: zerolog.NoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreLogger(t)

			var buf bytes.Buffer
			log.Logger = log.Output(&buf)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expectedLevel, zerolog.GlobalLevel())
		})
	}
}

func TestUseJSONOutput(t *testing.T) {
	t.Run("development keeps the console writer", func(t *testing.T) {
		restoreLogger(t)

		var console bytes.Buffer
		log.Logger = log.Output(&console)

		var out bytes.Buffer
		cfg := &config.Config{}
		cfg.Server.Env = "development"

		logger.UseJSONOutput(cfg, &out)
		log.Info().Msg("hello")

		assert.Empty(t, out.String())
		assert.Contains(t, console.String(), "hello")
	})

	t.Run("production writes json lines", func(t *testing.T) {
		restoreLogger(t)
		zerolog.SetGlobalLevel(zerolog.TraceLevel)

		var out bytes.Buffer
		cfg := &config.Config{}
		cfg.Server.Env = "production"
		cfg.App.Name = "todoapp"

		logger.UseJSONOutput(cfg, &out)
		log.Info().Msg("hello")

		assert.Contains(t, out.String(), `"message":"hello"`)
		assert.Contains(t, out.String(), `"app":"todoapp"`)
	})
}
