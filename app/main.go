package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/techpulse/blog-api/app/api"
	"github.com/techpulse/blog-api/app/blobstore"
	"github.com/techpulse/blog-api/app/cfg"
	"github.com/techpulse/blog-api/app/configstore"
	"github.com/techpulse/blog-api/app/database"
	"github.com/techpulse/blog-api/app/feed"
	"github.com/techpulse/blog-api/app/guid"
	"github.com/techpulse/blog-api/app/ingest"
	"github.com/techpulse/blog-api/app/newsletter"
	"github.com/techpulse/blog-api/app/slack"
	"github.com/techpulse/blog-api/app/tasks"
	"github.com/techpulse/blog-api/app/token"
)

func main() {
	appConfig, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appConfig.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting blog API server", "version", appConfig.Version)

	db, err := database.NewConnection(appConfig.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "migration_version", version, "dirty", dirty)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	var blobs blobstore.Store
	if appConfig.UseCloudStorage {
		if err := blobstore.UseEmulator(appConfig.StorageEmulator); err != nil {
			slog.Error("Failed to configure storage emulator", "error", err)
			os.Exit(1)
		}
		gcs, err := blobstore.NewGCS(startupCtx, appConfig.Bucket)
		if err != nil {
			slog.Error("Failed to create Cloud Storage client", "error", err)
			os.Exit(1)
		}
		blobs = gcs
		slog.Info("Using Cloud Storage", "bucket", appConfig.Bucket)
	} else {
		blobs = blobstore.NewLocal(appConfig.DataDir)
		slog.Info("Using local storage", "dir", appConfig.DataDir)
	}

	postRepo := database.NewPostRepository(db)
	subscriberRepo := database.NewSubscriberRepository(db)
	configs := configstore.NewStore(blobs)

	if err := ingest.SeedSources(startupCtx, configs, appConfig.SeedFile); err != nil {
		slog.Warn("Failed to seed feed sources", "error", err)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	fetcher := feed.NewFetcher(httpClient, appConfig.UserAgent,
		time.Duration(appConfig.PageDelay)*time.Second, appConfig.MaxPages)
	runner := ingest.NewRunner(fetcher, postRepo, configs,
		time.Duration(appConfig.WriteDelay)*time.Millisecond)

	locator := guid.NewLocator(postRepo)
	tokens := token.NewCodec(appConfig.UnsubscribeSecret)
	newsletters := newsletter.NewService(blobs)
	inquiries := slack.NewClient(httpClient, appConfig.SlackWebhookURL)

	scheduler := tasks.NewScheduler(func() tasks.TaskInterface {
		return tasks.NewIngestTask(func(ctx context.Context) error {
			_, err := runner.Run(ctx)
			return err
		})
	}, time.Duration(appConfig.SchedulerInterval)*time.Second, 1)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(postRepo, subscriberRepo, locator, runner,
		configs, newsletters, inquiries, tokens)
	server := api.NewServer(handler, appConfig.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appConfig.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
