package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/rendalink/locador/docs"
	"github.com/rendalink/locador/internal/app/api/handlers"
	mw "github.com/rendalink/locador/internal/app/api/middleware"
	"github.com/rendalink/locador/internal/app/service/access"
	"github.com/rendalink/locador/internal/app/service/billingjob"
	"github.com/rendalink/locador/internal/app/service/dashboard"
	"github.com/rendalink/locador/internal/app/service/profile"
	"github.com/rendalink/locador/internal/app/service/property"
	subsvc "github.com/rendalink/locador/internal/app/service/subscription"
	"github.com/rendalink/locador/internal/app/service/tenancy"
	cfgpkg "github.com/rendalink/locador/pkg/config"
	metrics "github.com/rendalink/locador/pkg/metrics"
	types "github.com/rendalink/locador/pkg/types"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Request tracing only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

type routeDeps struct {
	fx.In

	Log      *zap.SugaredLogger
	Cfg      *cfgpkg.Config
	Guard    *access.Service
	Subs     *subsvc.Service
	Job      *billingjob.Service
	Profiles *profile.Service
	Props    *property.Service
	Tenancy  *tenancy.Service
	Dash     *dashboard.Service
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	log := d.Log
	cfg := d.Cfg

	// Prometheus metrics
	if cfg != nil && cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Internal job triggers: no end-user auth, service token inside the handler
	internal := r.Group("/internal")
	internal.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterJobRoutes(internal, d.Job, cfg.Jobs.ServiceToken, log)

	// Authenticated product API
	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(), mw.AuthMiddleware(cfg.Auth.JWTSecret, d.Profiles, log))

	// Access guard poll endpoint: reachable by any authenticated caller,
	// including blocked admins; it is how the UI gate learns the reason.
	handlers.RegisterAccessRoutes(apiV1, d.Guard)

	// System-owner billing console
	system := apiV1.Group("/system")
	system.Use(mw.RequireRole(types.RoleSystemOwner))
	handlers.RegisterSystemRoutes(system, d.Subs)

	// Admin product surface, gated by the subscription access guard
	admin := apiV1.Group("/admin")
	admin.Use(mw.RequireRole(types.RoleAdmin), mw.AdminAccessGate(d.Guard))
	handlers.RegisterAdminRoutes(admin, d.Dash, d.Props, d.Tenancy)

	// Tenant portal
	tenant := apiV1.Group("/tenant")
	tenant.Use(mw.RequireRole(types.RoleTenant))
	handlers.RegisterTenantRoutes(tenant, d.Tenancy)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
