package page

import (
	"net/http"
	"todoapp/transport/http/response"
	"todoapp/web"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	view *web.Renderer
}

func New(view *web.Renderer) Handler {
	return Handler{
		view: view,
	}
}

func (h *Handler) Router(r chi.Router) {
	r.Get("/", h.Index)
}

// Index serves the htmx front end.
func (h *Handler) Index(w http.ResponseWriter, _ *http.Request) {
	html, err := h.view.Index()
	if err != nil {
		log.Error().Err(err).Msg("failed to render index")
		response.WithError(w, err)

		return
	}

	response.WithHTML(w, http.StatusOK, html)
}
