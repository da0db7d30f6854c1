package live

import (
	"context"
	"fmt"
	"sync"
	"time"
	"todoapp/config"
	"todoapp/infras/otel"
	"todoapp/internal/domains/todo/event"
	"todoapp/internal/domains/todo/service"
	"todoapp/shared/constant"
	gDto "todoapp/shared/dto"
	"todoapp/web"

	"github.com/rs/zerolog/log"
)

// Hub keeps every live session showing the current todo list. After each change on the feed
// it re-lists once and pushes the rendered list to all sessions; concurrent edits are last
// write wins at the store.
type Hub struct {
	service    service.Todo
	view       *web.Renderer
	feed       event.Subscriber
	otel       otel.Otel
	bufferSize int
	writeWait  time.Duration
	timeout    time.Duration

	// mu serializes renders with joins, so a session never receives an older list after a newer one.
	mu       sync.Mutex
	sessions map[*session]struct{}
}

const defaultWriteWait = 10 * time.Second

func NewHub(cfg *config.Config, service service.Todo, view *web.Renderer, feed event.Subscriber, otel otel.Otel) *Hub {
	writeWait := time.Duration(cfg.App.Live.WriteWaitSecond) * time.Second
	if writeWait <= 0 {
		writeWait = defaultWriteWait
	}

	return &Hub{
		service:    service,
		view:       view,
		feed:       feed,
		otel:       otel,
		bufferSize: cfg.App.Live.SendBufferSize,
		writeWait:  writeWait,
		timeout:    time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second,
		sessions:   map[*session]struct{}{},
	}
}

// Run follows the change feed until ctx is done, then closes every session.
func (h *Hub) Run(ctx context.Context) error {
	changes, err := h.feed.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to follow todo changes: %w", err)
	}

	log.Info().Msg("Live hub following todo changes")

	for change := range changes {
		log.Debug().
			Str("action", string(change.Action)).
			Str("id", change.Todo.ID).
			Msg("broadcasting todo change")

		h.broadcast(ctx)
	}

	h.closeAll()

	return nil
}

// Sessions returns the number of connected sessions.
func (h *Hub) Sessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.sessions)
}

func (h *Hub) join(ctx context.Context, s *session) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg, err := h.render(ctx)
	if err != nil {
		return err
	}

	s.enqueue(msg)
	h.sessions[s] = struct{}{}

	return nil
}

func (h *Hub) leave(s *session) {
	h.mu.Lock()
	delete(h.sessions, s)
	h.mu.Unlock()

	s.close()
}

func (h *Hub) broadcast(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.sessions) == 0 {
		return
	}

	msg, err := h.render(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to render live todo list")

		return
	}

	for s := range h.sessions {
		if !s.enqueue(msg) {
			log.Warn().Str("session", s.id).Msg("dropping slow live session")

			delete(h.sessions, s)
			s.close()
		}
	}
}

func (h *Hub) render(ctx context.Context) ([]byte, error) {
	ctx, scope := h.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".RenderLiveList")
	defer scope.End()

	if h.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	todos, err := h.service.List(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	html, err := h.view.LiveTodoList(todos)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to render todos: %w", err)
	}

	return html, nil
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.sessions {
		delete(h.sessions, s)
		s.close()
	}
}
