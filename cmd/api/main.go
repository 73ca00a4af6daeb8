package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/casesmedia/subscription-insights-api/infrastructure/dataset"
	"github.com/casesmedia/subscription-insights-api/infrastructure/integrator/sheets"
	"github.com/casesmedia/subscription-insights-api/infrastructure/integrator/sheets/sheetsclient"
	"github.com/casesmedia/subscription-insights-api/internal/api"
	"github.com/casesmedia/subscription-insights-api/internal/config"
	"github.com/casesmedia/subscription-insights-api/internal/scheduler"
	"github.com/casesmedia/subscription-insights-api/internal/usecases/reporting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level: %s, falling back to 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("log level set to: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := dataset.NewStore()

	sheetsClient := sheetsclient.NewClient(cfg)
	loader := sheets.New(cfg, sheetsClient)

	reportingService := reporting.NewService(cfg, loader, store)

	datasetRefreshService := scheduler.NewDatasetRefreshService(loader, store, cfg)
	if err := datasetRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("error starting dataset refresh scheduler")
	} else {
		logrus.Info("dataset refresh scheduler started")
	}

	server, err := api.New(
		cfg,
		reportingService,
		datasetRefreshService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
