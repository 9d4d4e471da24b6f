package notify

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/restoflow/restoflow/internal/config"
)

// Module wires the WebSocket hub and the async dispatcher for fx.
var Module = fx.Options(
	fx.Provide(NewHub),
	fx.Provide(newDispatcher),
	fx.Provide(func(d *Dispatcher) Publisher { return d }),
	fx.Invoke(registerLifecycle),
)

type dispatcherParams struct {
	fx.In

	Hub    *Hub
	Config *config.Config
	Logger *slog.Logger
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	return NewDispatcher(p.Hub, p.Config.NotifyQueueSize, p.Config.NotifyWorkers, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Ctx        context.Context
	Dispatcher *Dispatcher
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			p.Dispatcher.Start(p.Ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			p.Dispatcher.Stop()
			return nil
		},
	})
}
