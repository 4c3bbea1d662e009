// Package server exposes the CRM core over HTTP.
package server

import (
	"context"
	"net/http"

	checklistdomain "github.com/bigdino44/DemoManagerPro/internal/checklist/domain"
	"github.com/bigdino44/DemoManagerPro/internal/config"
	customerdomain "github.com/bigdino44/DemoManagerPro/internal/customer/domain"
	demodomain "github.com/bigdino44/DemoManagerPro/internal/demo/domain"
	notificationdomain "github.com/bigdino44/DemoManagerPro/internal/notification/domain"
	"github.com/bigdino44/DemoManagerPro/internal/observability/logger"
	"github.com/bigdino44/DemoManagerPro/internal/observability/metrics"
	"github.com/bigdino44/DemoManagerPro/internal/selection"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServerParam struct {
	fx.In

	Cfg             config.Config
	DB              *gorm.DB
	Log             *zap.Logger
	Metrics         *metrics.Metrics `optional:"true"`
	CustomerSvc     customerdomain.Service
	DemoSvc         demodomain.Service
	ChecklistSvc    checklistdomain.Service
	NotificationSvc notificationdomain.Service
	Selection       *selection.Coordinator
}

// Server carries the handler dependencies.
type Server struct {
	cfg config.Config
	db  *gorm.DB
	log *zap.Logger

	customerSvc     customerdomain.Service
	demoSvc         demodomain.Service
	checklistSvc    checklistdomain.Service
	notificationSvc notificationdomain.Service
	selection       *selection.Coordinator

	metrics *metrics.Metrics
	limiter *rateLimiter
}

func NewServer(p ServerParam) *Server {
	var limiter *rateLimiter
	if p.Cfg.RateLimit.Enabled {
		limiter = newRateLimiter(p.Cfg.RateLimit.Limit, p.Cfg.RateLimit.Window)
	}
	return &Server{
		cfg:             p.Cfg,
		db:              p.DB,
		log:             p.Log.Named("server"),
		customerSvc:     p.CustomerSvc,
		demoSvc:         p.DemoSvc,
		checklistSvc:    p.ChecklistSvc,
		notificationSvc: p.NotificationSvc,
		selection:       p.Selection,
		metrics:         p.Metrics,
		limiter:         limiter,
	}
}

// NewEngine builds the gin engine with the shared middleware stack.
func NewEngine(cfg config.Config, m *metrics.Metrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	engine.Use(metrics.GinMiddleware(m))
	return engine
}

// RegisterAPIRoutes mounts every endpoint of the CRM API.
func (s *Server) RegisterAPIRoutes(engine *gin.Engine) {
	engine.GET("/healthz", s.Healthz)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	writes := api.Group("")
	writes.Use(s.writeRateLimit())

	api.GET("/customers", s.ListCustomers)
	api.GET("/customers/:id", s.GetCustomerByID)
	writes.POST("/customers", s.CreateCustomer)
	writes.PATCH("/customers/:id", s.UpdateCustomer)
	writes.PUT("/customers/:id/revenue", s.UpdateCustomerRevenue)
	writes.PUT("/customers/:id/select", s.SelectCustomer)

	api.GET("/demos", s.ListDemos)
	api.GET("/demos/:id", s.GetDemoByID)
	writes.POST("/demos", s.CreateDemo)
	writes.PUT("/demos/:id/select", s.SelectDemo)

	api.GET("/locations", s.ListLocations)

	api.GET("/selection", s.CurrentSelection)
	writes.DELETE("/selection/demo", s.ClearDemoSelection)
	writes.PUT("/selection/date", s.SelectDate)

	api.GET("/checklist", s.ListChecklist)
	writes.POST("/checklist", s.CreateChecklistItem)
	writes.PATCH("/checklist/:id", s.UpdateChecklistItem)
	writes.POST("/checklist/:id/toggle", s.ToggleChecklistItem)
	writes.DELETE("/checklist/:id", s.DeleteChecklistItem)

	api.GET("/notifications", s.ListNotifications)
	writes.POST("/notifications", s.CreateNotification)
	writes.POST("/notifications/:id/read", s.MarkNotificationRead)
	writes.POST("/notifications/read-all", s.MarkAllNotificationsRead)
}

// Healthz reports liveness plus a database ping.
func (s *Server) Healthz(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) writeRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter == nil {
			c.Next()
			return
		}
		if !s.limiter.Allow(c.ClientIP()) {
			AbortWithError(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}

// RunHTTP starts the HTTP server under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
