package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mockinterview/backend/internal/api"
	"github.com/mockinterview/backend/internal/domain/questionbank"
	"github.com/mockinterview/backend/internal/grader"
	"github.com/mockinterview/backend/internal/resume"
	"github.com/mockinterview/backend/internal/service"
	"github.com/mockinterview/backend/internal/store"
	"github.com/mockinterview/backend/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the question timer",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger, kv, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer kv.Close()

	// ── Dependencies ────────────────────────────────────────────────
	bank := questionbank.Default()
	persister := store.NewPersister(kv, cfg.StateKey, logger)
	svc := service.NewInterviewService(ctx, service.Deps{
		Store:     persister,
		Bank:      bank,
		Grader:    grader.KeywordGrader{},
		Extractor: resume.NewExtractor(logger),
		Logger:    logger,
	})
	defer svc.Close()

	watcher := watch.New(svc, cfg.TickInterval, watch.LogSink(logger), logger)
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	// ── Server ──────────────────────────────────────────────────────
	handler := api.NewHandler(svc, bank, cfg.MaxResumeBytes, logger)
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           api.NewRouter(handler, cfg.AllowedOrigins),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("store", cfg.StoreBackend),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", zap.Error(err))
			return err
		}
		return nil
	})

	return g.Wait()
}
