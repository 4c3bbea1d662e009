// Package reminder runs a background loop that raises a notification for
// each demo booked on the current day.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/bigdino44/DemoManagerPro/internal/clock"
	demodomain "github.com/bigdino44/DemoManagerPro/internal/demo/domain"
	notificationdomain "github.com/bigdino44/DemoManagerPro/internal/notification/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config controls the reminder worker loop.
type Config struct {
	PollInterval time.Duration
}

func DefaultConfig() Config {
	return Config{PollInterval: time.Minute}
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultConfig().PollInterval
	}
	return c
}

type Params struct {
	fx.In

	Log             *zap.Logger
	Clock           clock.Clock
	DemoSvc         demodomain.Service
	NotificationSvc notificationdomain.Service
	Config          Config `optional:"true"`
}

type Worker struct {
	log             *zap.Logger
	clock           clock.Clock
	demoSvc         demodomain.Service
	notificationSvc notificationdomain.Service
	cfg             Config
}

func NewWorker(p Params) *Worker {
	return &Worker{
		log:             p.Log.Named("reminder"),
		clock:           p.Clock,
		demoSvc:         p.DemoSvc,
		notificationSvc: p.NotificationSvc,
		cfg:             p.Config.withDefaults(),
	}
}

// RunForever polls until the context is cancelled.
func (w *Worker) RunForever(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := w.RunOnce(ctx); err != nil {
			w.log.Warn("reminder run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce emits one deduplicated reminder per demo scheduled today. The
// notification dedupe key makes repeated runs idempotent.
func (w *Worker) RunOnce(ctx context.Context) error {
	today := w.clock.Now()
	demos, err := w.demoSvc.ListForDate(ctx, today)
	if err != nil {
		return err
	}

	for _, demo := range demos {
		location := demodomain.Catalog[demo.Location]
		_, err := w.notificationSvc.Add(ctx, notificationdomain.AddNotificationRequest{
			Title:     "Upcoming demo",
			Message:   fmt.Sprintf("%s at %s (%s)", demo.Company, demo.Time, location.Name),
			Type:      notificationdomain.KindInfo,
			DedupeKey: "demo_reminder:" + demo.ID.String(),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
