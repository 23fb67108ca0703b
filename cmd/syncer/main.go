package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gopkg.in/natefinch/lumberjack.v2"

	"amendement_fetcher/internal/config"
	"amendement_fetcher/internal/httpclient"
	"amendement_fetcher/internal/publisher"
	"amendement_fetcher/internal/sanitize"
	"amendement_fetcher/internal/scheduler"
	"amendement_fetcher/internal/service"
	"amendement_fetcher/internal/source"
	"amendement_fetcher/internal/source/an"
	"amendement_fetcher/internal/source/senat"
	"amendement_fetcher/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger(config.LogConfig{Level: "info"})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.Log)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
		URL:             cfg.RabbitMQ.URL,
		Exchange:        cfg.RabbitMQ.Exchange,
		EventRoutingKey: cfg.RabbitMQ.EventRoutingKey,
		AlertRoutingKey: cfg.RabbitMQ.AlertRoutingKey,
		EventQueueName:  cfg.RabbitMQ.EventQueueName,
		AlertQueueName:  cfg.RabbitMQ.AlertQueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitMQ.Close()

	lectureStore := postgres.NewLectureStore(db)
	amendementStore := postgres.NewAmendementStore(db)
	refDataStore := postgres.NewRefDataStore(db)
	txManager := postgres.NewTransactionManager(db)

	httpClient := httpclient.New(httpclient.Config{
		Timeout:        cfg.Sources.HTTP.Timeout,
		MaxAttempts:    cfg.Sources.HTTP.Retry.MaxAttempts,
		InitialBackoff: cfg.Sources.HTTP.Retry.InitialBackoff,
		MaxBackoff:     cfg.Sources.HTTP.Retry.MaxBackoff,
		CacheTTL:       cfg.Sources.HTTP.CacheTTL,
	}, logger)

	cleaner := sanitize.NewCleaner()
	applier := source.NewApplier(rabbitMQ, lectureStore, logger)

	anSource := an.New(an.Options{
		Client:   httpClient,
		Cleaner:  cleaner,
		Applier:  applier,
		RefData:  refDataStore,
		Progress: lectureStore,
		BaseURL:  cfg.Sources.AN.BaseURL,
		Logger:   logger,
	})
	senatSource := senat.New(senat.Options{
		Client:  httpClient,
		Cleaner: cleaner,
		Applier: applier,
		RefData: refDataStore,
		BaseURL: cfg.Sources.Senat.BaseURL,
		Logger:  logger,
	})

	fetchService := service.NewFetchService(
		lectureStore,
		amendementStore,
		txManager,
		[]source.RemoteSource{anSource, senatSource},
		rabbitMQ,
		logger,
		cfg.Fetch,
	)

	sched := scheduler.NewScheduler(fetchService, cfg.Fetch.Interval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting amendement fetcher",
		"interval", cfg.Fetch.Interval,
		"max_404", cfg.Fetch.Max404,
	)

	if err := sched.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var logLevel slog.Level
	switch cfg.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	return slog.New(slog.NewJSONHandler(out, opts))
}
