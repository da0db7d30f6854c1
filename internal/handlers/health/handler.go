package health

import (
	"net/http"
	"todoapp/shared/constant"
	"todoapp/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	state *State
}

func New(state *State) Handler {
	return Handler{
		state: state,
	}
}

func (h *Handler) Router(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health reports whether the server takes traffic.
// @Summary Health check
// @Description 200 while serving, 503 once shutdown has begun so load balancers drain the instance.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Failure 503 {object} response.Message
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	if h.state.Get() != ServerStateReady {
		response.WithPreparingShutdown(w)

		return
	}

	response.WithMessage(w, http.StatusOK, constant.ResponseHealthy)
}
