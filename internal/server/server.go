package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/stockroom/internal/config"
	"github.com/smallbiznis/stockroom/internal/observability"
	obsmiddleware "github.com/smallbiznis/stockroom/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/stockroom/internal/observability/metrics"
	obstracing "github.com/smallbiznis/stockroom/internal/observability/tracing"
	"github.com/smallbiznis/stockroom/internal/product"
	productdomain "github.com/smallbiznis/stockroom/internal/product/domain"
	"github.com/smallbiznis/stockroom/internal/reference"
	referencedomain "github.com/smallbiznis/stockroom/internal/reference/domain"
	"github.com/smallbiznis/stockroom/internal/report"
	reportdomain "github.com/smallbiznis/stockroom/internal/report/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	reference.Module,
	product.Module,
	report.Module,
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.registerRoutes() }),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
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

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
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
	engine     *gin.Engine
	cfg        config.Config
	db         *gorm.DB
	genID      *snowflake.Node
	productSvc productdomain.Service
	reportSvc  reportdomain.Service
	refrepo    referencedomain.Repository
	obsMetrics *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	GenID      *snowflake.Node
	ProductSvc productdomain.Service
	ReportSvc  reportdomain.Service
	Refrepo    referencedomain.Repository
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		genID:      p.GenID,
		productSvc: p.ProductSvc,
		reportSvc:  p.ReportSvc,
		refrepo:    p.Refrepo,
		obsMetrics: p.ObsMetrics,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	r := s.engine

	r.GET("/", s.Home)
	r.GET("/init-db", s.InitDB)

	// -------- Products --------
	products := r.Group("/products")
	{
		products.GET("", s.ListProducts)
		products.GET("/new", s.NewProductFormData)
		products.POST("", s.CreateProduct)
		products.GET("/:id/edit", s.EditProductFormData)
		products.POST("/:id/update", s.UpdateProduct)
		products.POST("/:id/delete", s.DeleteProduct)
		products.POST("/:id/txn-adjust", s.AdjustProductStock)
	}

	// -------- Reports --------
	reports := r.Group("/reports")
	{
		reports.GET("/products", s.ProductReport)
	}
}
