package reminder

import (
	"context"

	"github.com/bigdino44/DemoManagerPro/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("reminder",
	fx.Provide(func(cfg config.Config) Config {
		return Config{PollInterval: cfg.Reminder.PollInterval}
	}),
	fx.Provide(NewWorker),
	fx.Invoke(runWorker),
)

func runWorker(lc fx.Lifecycle, cfg config.Config, worker *Worker) {
	if !cfg.Reminder.Enabled {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go worker.RunForever(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
