package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/caffeinepub/food-order-delivery-platform/internal/config"
	"github.com/caffeinepub/food-order-delivery-platform/internal/usecase"
)

// Module provides the order event publisher to the fx graph.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) (usecase.EventPublisher, error) {
	if p.Config.AMQPURL == "" {
		p.Logger.Info("order events disabled: no amqp url configured")
		return Nop{}, nil
	}

	publisher, err := Dial(p.Config.AMQPURL, p.Config.EventsExchange, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}
