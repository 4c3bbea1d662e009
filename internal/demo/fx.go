package demo

import (
	"github.com/bigdino44/DemoManagerPro/internal/demo/service"
	"go.uber.org/fx"
)

var Module = fx.Module("demo.service",
	fx.Provide(service.NewService),
)
