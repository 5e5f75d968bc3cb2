package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/estimator/internal/catalog"
	catalogdomain "github.com/smallbiznis/estimator/internal/catalog/domain"
	"github.com/smallbiznis/estimator/internal/config"
	"github.com/smallbiznis/estimator/internal/estimate"
	estimatedomain "github.com/smallbiznis/estimator/internal/estimate/domain"
	"github.com/smallbiznis/estimator/internal/observability"
	obsmiddleware "github.com/smallbiznis/estimator/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/estimator/internal/observability/metrics"
	obstracing "github.com/smallbiznis/estimator/internal/observability/tracing"
	"github.com/smallbiznis/estimator/internal/pricing"
	"github.com/smallbiznis/estimator/internal/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	catalog.Module,
	pricing.Module,
	validation.Module,
	estimate.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORS(cfg.CORSAllowedOrigins))
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewEngine(obsCfg, cfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	catalogSvc  catalogdomain.Service
	estimateSvc estimatedomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	CatalogSvc  catalogdomain.Service
	EstimateSvc estimatedomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log.Named("http.server"),
		catalogSvc:  p.CatalogSvc,
		estimateSvc: p.EstimateSvc,
	}

	svc.registerCatalogRoutes()
	svc.registerEstimateRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerCatalogRoutes() {
	s.engine.GET("/providers", s.ListProviders)
	s.engine.GET("/plans", s.ListPlans)
}

func (s *Server) registerEstimateRoutes() {
	est := s.engine.Group("/estimate", s.EmployerContext())

	est.GET("", s.GetEstimate)
	est.PUT("", s.UpdateEstimate)
	est.POST("/finalise", s.FinaliseEstimate)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
