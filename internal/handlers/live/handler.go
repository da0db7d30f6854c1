package live

import (
	"net/http"
	"todoapp/infras/otel"
	"todoapp/shared/constant"
	"todoapp/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const readLimit = 4096

type Handler struct {
	hub      *Hub
	otel     otel.Otel
	upgrader websocket.Upgrader
}

func New(hub *Hub, otel otel.Otel) Handler {
	return Handler{
		hub:  hub,
		otel: otel,
		upgrader: websocket.Upgrader{
			// Same policy as CORS: any origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get(web.LivePath, handler.Connect)
}

// Connect upgrades to a websocket and keeps the connection showing the current todo list.
// @Summary Live todo list
// @Description Websocket. Every message is the rendered todo_list fragment as an htmx out-of-band swap.
// @Tags Live
// @Success 101
// @Router /live [get]
func (handler *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Connect")

	ws, err := handler.upgrader.Upgrade(w, r, nil)
	if err != nil {
		scope.TraceError(err)
		scope.End()
		log.Warn().Err(err).Msg("failed to upgrade live session")

		return
	}

	ws.SetReadLimit(readLimit)

	id := middleware.GetReqID(ctx)
	if id == "" {
		id = uuid.NewString()
	}

	s := newSession(id, ws, handler.hub.bufferSize)

	err = handler.hub.join(ctx, s)
	scope.TraceIfError(err)
	scope.End()

	if err != nil {
		log.Error().Err(err).Str("session", id).Msg("failed to join live session")
		s.close()

		return
	}

	log.Info().Str("session", id).Msg("live session connected")

	go s.writeLoop(handler.hub.writeWait)

	s.readLoop()
	handler.hub.leave(s)

	log.Info().Str("session", id).Msg("live session disconnected")
}
