package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/realty/internal/config"
	"github.com/mamadbah2/realty/internal/engine/analytics"
	"github.com/mamadbah2/realty/internal/engine/scoring"
	"github.com/mamadbah2/realty/internal/repository/sources"
	"github.com/mamadbah2/realty/internal/scheduler"
	"github.com/mamadbah2/realty/internal/server/handlers"
	"github.com/mamadbah2/realty/internal/server/router"
	"github.com/mamadbah2/realty/internal/service/assistant"
	"github.com/mamadbah2/realty/internal/service/portfolio"
	"github.com/mamadbah2/realty/pkg/clients/anthropic"
	"github.com/mamadbah2/realty/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	table, err := scoring.LoadTable(cfg.Scoring.TablePath)
	if err != nil {
		baseLogger.Fatal("failed to load scoring table", zap.Error(err))
	}

	source, closeSource, err := sources.Open(context.Background(), cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init property source", zap.String("source", cfg.Source.Kind), zap.Error(err))
	}
	defer func() {
		if err := closeSource(context.Background()); err != nil {
			baseLogger.Error("failed to close property source", zap.Error(err))
		}
	}()

	engine := scoring.NewEngine(table)
	aggregator := analytics.NewAggregator(cfg.Market.Trends, cfg.Market.AffordablePrice)
	portfolioSvc := portfolio.NewService(source, engine, aggregator, logger.Named(baseLogger, "svc.portfolio"))

	// An empty snapshot is served until the next successful refresh.
	if _, err := portfolioSvc.Refresh(context.Background()); err != nil {
		baseLogger.Error("initial refresh failed", zap.Error(err))
	}

	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, assistant uses scripted answers")
	}
	assistantSvc := assistant.NewService(portfolioSvc, aiClient, logger.Named(baseLogger, "svc.assistant"))

	handlerLogger := logger.Named(baseLogger, "handlers")
	engineHTTP := router.New(router.Handlers{
		Properties: handlers.NewPropertyHandler(portfolioSvc, handlerLogger),
		Analytics:  handlers.NewAnalyticsHandler(portfolioSvc, portfolioSvc, handlerLogger),
		Chat:       handlers.NewChatHandler(assistantSvc, handlerLogger),
	}, logger.Named(baseLogger, "router"))

	sched, err := scheduler.NewScheduler(cfg.Refresh, portfolioSvc, logger.Named(baseLogger, "scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engineHTTP,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("source", cfg.Source.Kind))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
