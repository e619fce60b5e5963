package main

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"github.com/Mohan777-G/metrics-whisperer-ai/config"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/controller"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/metrics"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/prometheus"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/scheduler"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/service"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/translator"
)

// @title           Metrics Whisperer API
// @version         1.0
// @description     Conversational front-end over Prometheus: ask questions in natural language, get answers backed by PromQL instant queries plus Grafana Explore deep links.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8000
// @BasePath  /
// @schemes   http

// @tag.name         query
// @tag.description  Natural language metric queries

// @tag.name         health
// @tag.description  Liveness and Prometheus connectivity checks

func main() {
	app := fx.New(
		// Core Dependencies
		fx.Provide(
			NewConfig,
		),
		// Infrastructure Dependencies
		fx.Provide(
			NewGinEngine,
			translator.New,
			prometheus.NewHTTPClient,
			metrics.NewCollectors,
			metrics.NewSampler,
			service.NewAnswerService,
			controller.NewQueryController,
		),
		fx.Invoke(
			RegisterAPIRoutes,
			RegisterScheduler,
			WaitForStore,
		),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second) // Timeout for startup
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}
	<-app.Done()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 30*time.Second) // Timeout for graceful shutdown
	defer cancelStop()
	log.Info().Msg("Shutting down application...")
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown due to error or timeout")
	}
}

func NewConfig() (*config.Config, error) {
	return config.NewConfig()
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func RegisterAPIRoutes(
	lifecycle fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	queryController *controller.QueryController,
) {
	controller.RegisterQueryRoutes(router, queryController)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Starting HTTP server on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error().Err(err).Msg("HTTP server ListenAndServe error")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Shutting down HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}

// --- Invoker Functions ---

func RegisterScheduler(lc fx.Lifecycle, cfg *config.Config, sampler *metrics.Sampler) {
	scheduler.NewScheduler(lc, cfg, sampler)
}

// WaitForStore pings Prometheus with capped exponential backoff after startup.
// An unreachable store degrades the service rather than failing it; requests
// still classify the outage per call.
func WaitForStore(lc fx.Lifecycle, store prometheus.Client) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				b := backoff.NewExponentialBackOff()
				b.MaxElapsedTime = 30 * time.Second

				err := backoff.Retry(func() error {
					pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					return store.Ready(pingCtx)
				}, b)
				if err != nil {
					log.Warn().Err(err).Msg("Prometheus not reachable at startup, continuing degraded")
					return
				}
				log.Info().Msg("Prometheus connection established")
			}()
			return nil
		},
	})
}
