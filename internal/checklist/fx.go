package checklist

import (
	"github.com/bigdino44/DemoManagerPro/internal/checklist/service"
	"go.uber.org/fx"
)

var Module = fx.Module("checklist.service",
	fx.Provide(service.NewService),
)
