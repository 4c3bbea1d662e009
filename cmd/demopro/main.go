package main

import (
	"github.com/bigdino44/DemoManagerPro/internal/checklist"
	"github.com/bigdino44/DemoManagerPro/internal/clock"
	"github.com/bigdino44/DemoManagerPro/internal/config"
	"github.com/bigdino44/DemoManagerPro/internal/customer"
	"github.com/bigdino44/DemoManagerPro/internal/demo"
	"github.com/bigdino44/DemoManagerPro/internal/events"
	"github.com/bigdino44/DemoManagerPro/internal/migration"
	"github.com/bigdino44/DemoManagerPro/internal/notification"
	"github.com/bigdino44/DemoManagerPro/internal/observability"
	"github.com/bigdino44/DemoManagerPro/internal/reminder"
	"github.com/bigdino44/DemoManagerPro/internal/seed"
	"github.com/bigdino44/DemoManagerPro/internal/selection"
	"github.com/bigdino44/DemoManagerPro/internal/server"
	"github.com/bigdino44/DemoManagerPro/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		clock.Module,
		fx.Provide(events.NewOutbox),
		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			if cfg.Bootstrap.SeedSampleData {
				return seed.EnsureSampleData(conn)
			}
			return nil
		}),
		customer.Module,
		demo.Module,
		checklist.Module,
		notification.Module,
		selection.Module,
		reminder.Module,
		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server, engine *gin.Engine) {
			s.RegisterAPIRoutes(engine)
		}),
		fx.Invoke(server.RunHTTP),
	)
	app.Run()
}
