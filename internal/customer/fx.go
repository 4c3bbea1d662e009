package customer

import (
	customerdomain "github.com/bigdino44/DemoManagerPro/internal/customer/domain"
	"github.com/bigdino44/DemoManagerPro/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(service.NewService),
	fx.Provide(func(s *service.Service) customerdomain.Service { return s }),
	fx.Provide(func(s *service.Service) customerdomain.RevenueRecorder { return s }),
)
