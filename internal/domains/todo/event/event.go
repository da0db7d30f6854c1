package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"todoapp/config"
	"todoapp/infras/otel"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/shared/constant"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

const otelChannelAttribute = "event.channel"

// Change is one mutation of the todo collection as carried on the change feed.
type Change struct {
	Action Action           `json:"action"`
	Todo   dto.TodoResponse `json:"todo"`
}

type Publisher interface {
	Publish(ctx context.Context, change Change) error
}

// Subscriber delivers changes until ctx is done, then closes the channel.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan Change, error)
}

// RedisFeed is the change feed over a Redis pub/sub channel, shared by every instance of the service.
type RedisFeed struct {
	client  *redis.Client
	otel    otel.Otel
	channel string
}

func New(client *redis.Client, cfg *config.Config, otel otel.Otel) *RedisFeed {
	return &RedisFeed{
		client:  client,
		otel:    otel,
		channel: cfg.App.Live.Channel,
	}
}

func (f *RedisFeed) Publish(ctx context.Context, change Change) (err error) {
	ctx, scope := f.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelChannelAttribute, f.channel)

	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to marshal change: %w", err)
	}

	if err = f.client.Publish(ctx, f.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change: %w", err)
	}

	return nil
}

func (f *RedisFeed) Subscribe(ctx context.Context) (<-chan Change, error) {
	pubsub := f.client.Subscribe(ctx, f.channel)

	// Wait for the subscription to be confirmed so no change published after return is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()

		return nil, fmt.Errorf("failed to subscribe to %s: %w", f.channel, err)
	}

	changes := make(chan Change)

	go func() {
		defer close(changes)
		defer pubsub.Close()

		messages := pubsub.Channel()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				var change Change
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					log.Warn().Err(err).Str("channel", f.channel).Msg("dropping malformed change")

					continue
				}

				select {
				case changes <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return changes, nil
}
