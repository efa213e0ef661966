package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/castline/shopfloor/internal/config"
	"github.com/castline/shopfloor/internal/repository/mongodb"
	"github.com/castline/shopfloor/internal/repository/sheets"
	"github.com/castline/shopfloor/internal/scheduler"
	"github.com/castline/shopfloor/internal/server/handlers"
	"github.com/castline/shopfloor/internal/server/router"
	reportsvc "github.com/castline/shopfloor/internal/service/report"
	"github.com/castline/shopfloor/pkg/clients/notify"
	"github.com/castline/shopfloor/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
	}

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	// Optional integrations: the sheets archive and webhook notifier are
	// only wired when configured.
	var archiveRepo sheets.Repository
	if cfg.SheetsEnabled() {
		archiveRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets archive", zap.Error(err))
		}
		baseLogger.Info("sheets archive enabled")
	} else {
		baseLogger.Warn("sheets archive not configured, daily summaries disabled")
	}

	var notifier notify.Client
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewClient(cfg.Notify)
		baseLogger.Info("webhook notifier enabled")
	} else {
		baseLogger.Warn("notify webhook not configured, completeness alerts disabled")
	}

	svc := reportsvc.NewService(mongoRepo, loc, baseLogger.Named("svc.report"))
	reportHandler := handlers.NewReportHandler(svc, baseLogger.Named("handlers.report"))
	engine := router.New(reportHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, svc, archiveRepo, notifier, loc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
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
