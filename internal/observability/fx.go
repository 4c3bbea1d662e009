// Package observability wires logging, tracing and metrics together.
package observability

import (
	"github.com/bigdino44/DemoManagerPro/internal/observability/logger"
	"github.com/bigdino44/DemoManagerPro/internal/observability/metrics"
	"github.com/bigdino44/DemoManagerPro/internal/observability/tracing"
	"go.uber.org/fx"
)

var Module = fx.Options(
	logger.Module,
	fx.Provide(metrics.New),
	fx.Invoke(tracing.NewProvider),
)
