// Package server exposes the rate engine over HTTP. Handlers stay thin:
// bind, authorize, call the service, translate the error.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apikeydomain "github.com/pressratelabs/pressrate/internal/apikey/domain"
	"github.com/pressratelabs/pressrate/internal/authz"
	catalogdomain "github.com/pressratelabs/pressrate/internal/catalog/domain"
	"github.com/pressratelabs/pressrate/internal/config"
	importerdomain "github.com/pressratelabs/pressrate/internal/importer/domain"
	pricingdomain "github.com/pressratelabs/pressrate/internal/pricing/domain"
	ratedomain "github.com/pressratelabs/pressrate/internal/rate/domain"
	"github.com/pressratelabs/pressrate/internal/ratecard"
	"github.com/pressratelabs/pressrate/internal/ratelimit"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Config     *config.Config
	Log        *zap.Logger
	DB         *gorm.DB
	Limiter    *ratelimit.Limiter
	Gate       authz.Gate
	CatalogSvc catalogdomain.Service
	RateSvc    ratedomain.Service
	PricingSvc pricingdomain.Service
	ImportSvc  importerdomain.Service
	APIKeySvc  apikeydomain.Service
	Ratecard   *ratecard.Generator
}

type Server struct {
	cfg        *config.Config
	log        *zap.Logger
	db         *gorm.DB
	limiter    *ratelimit.Limiter
	gate       authz.Gate
	catalogSvc catalogdomain.Service
	rateSvc    ratedomain.Service
	pricingSvc pricingdomain.Service
	importSvc  importerdomain.Service
	apiKeySvc  apikeydomain.Service
	ratecard   *ratecard.Generator
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:        p.Config,
		log:        p.Log.Named("server"),
		db:         p.DB,
		limiter:    p.Limiter,
		gate:       p.Gate,
		catalogSvc: p.CatalogSvc,
		rateSvc:    p.RateSvc,
		pricingSvc: p.PricingSvc,
		importSvc:  p.ImportSvc,
		apiKeySvc:  p.APIKeySvc,
		ratecard:   p.Ratecard,
	}
}

func NewEngine(s *Server) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", s.Healthz)
	engine.GET("/readyz", s.Readyz)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/v1", s.APIKeyRequired())
	{
		v1.GET("/catalog", s.ListCatalog)
		v1.POST("/catalog/validate", s.ValidateCatalogName)
		v1.GET("/catalog/similar", s.SimilarCatalogEntries)
		v1.PATCH("/catalog/:id/status", s.RequireAction(authz.ObjectCatalog, authz.ActionWrite), s.SetCatalogStatus)

		v1.POST("/rates", s.RequireAction(authz.ObjectRate, authz.ActionWrite), s.CreateRate)
		v1.GET("/rates", s.ListRates)
		v1.GET("/rates/:id", s.GetRate)
		v1.PATCH("/rates/:id", s.RequireAction(authz.ObjectRate, authz.ActionWrite), s.UpdateRate)
		v1.POST("/rates/:id/deactivate", s.RequireAction(authz.ObjectRate, authz.ActionWrite), s.DeactivateRate)
		v1.DELETE("/rates/:id", s.RequireAction(authz.ObjectRate, authz.ActionDelete), s.DeleteRate)

		v1.POST("/quotes", s.Quote)

		v1.POST("/imports", s.RequireAction(authz.ObjectImport, authz.ActionWrite), s.StageImport)
		v1.POST("/imports/:id/commit", s.RequireAction(authz.ObjectImport, authz.ActionWrite), s.CommitImport)
		v1.GET("/imports/:id", s.GetImport)

		v1.GET("/publications/:id/ratecard", s.DownloadRatecard)

		v1.POST("/api-keys", s.RequireAdmin(), s.CreateAPIKey)
		v1.GET("/api-keys", s.RequireAdmin(), s.ListAPIKeys)
		v1.DELETE("/api-keys/:id", s.RequireAdmin(), s.RevokeAPIKey)
	}

	return engine
}

// RunHTTP owns the listener lifecycle under fx.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log *zap.Logger) {
	addr := cfg.Server.Addr
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdown := time.Duration(cfg.Server.ShutdownSeconds) * time.Second
			if shutdown <= 0 {
				shutdown = 10 * time.Second
			}
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdown)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Provide(NewEngine),
	fx.Invoke(RunHTTP),
)
