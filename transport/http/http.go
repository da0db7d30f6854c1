package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"todoapp/config"
	"todoapp/internal/handlers/health"
	"todoapp/internal/handlers/live"
	"todoapp/shared/constant"
	"todoapp/transport/http/router"

	"github.com/rs/zerolog/log"
)

const readHeaderTimeout = 5 * time.Second

type HTTP struct {
	Config *config.Config
	Router router.Router
	State  *health.State
	Hub    *live.Hub
	server *http.Server
}

func New(cfg *config.Config, r router.Router, state *health.State, hub *live.Hub) *HTTP {
	return &HTTP{
		Config: cfg,
		Router: r,
		State:  state,
		Hub:    hub,
	}
}

// Serve runs the server until SIGINT or SIGTERM, then shuts it down gracefully.
func (h *HTTP) Serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return h.Run(ctx)
}

// Run serves until ctx is done. While shutting down, /health reports 503 for the grace
// period before the listener closes, and in-flight requests get the cleanup period to finish.
func (h *HTTP) Run(ctx context.Context) error {
	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.Router.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	hubDone := make(chan struct{})

	go func() {
		defer close(hubDone)

		if err := h.Hub.Run(hubCtx); err != nil {
			log.Error().Err(err).Msg("Live hub stopped, sessions will not receive updates")
		}
	}()

	defer func() {
		stopHub()
		<-hubDone
	}()

	serveErr := make(chan error, 1)

	go func() {
		log.Info().Str("addr", h.server.Addr).Msg("Starting up HTTP server.")

		serveErr <- h.server.ListenAndServe()
	}()

	h.State.Set(health.ServerStateReady)

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("failed to start HTTP server: %w", err)
	case <-ctx.Done():
	}

	return h.shutdown()
}

func (h *HTTP) shutdown() error {
	shutdownConfig := h.Config.Server.Shutdown

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")
	} else {
		log.Info().Msg("Received SIGTERM.")
		log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

		h.State.Set(health.ServerStateInGracePeriod)

		time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)
	}

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.State.Set(health.ServerStateInCleanupPeriod)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")

	return nil
}
