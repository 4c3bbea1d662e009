package notification

import (
	notificationdomain "github.com/bigdino44/DemoManagerPro/internal/notification/domain"
	"github.com/bigdino44/DemoManagerPro/internal/notification/service"
	"go.uber.org/fx"
)

var Module = fx.Module("notification.service",
	fx.Provide(service.NewService),
	fx.Provide(func(s *service.Service) notificationdomain.Service { return s }),
)
