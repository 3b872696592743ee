package main

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	grpcHandler "github.com/dracma/presale/internal/handler/grpc"
	httpHandler "github.com/dracma/presale/internal/handler/http"
	"github.com/dracma/presale/internal/infrastructure/assistant"
)

const (
	shutdownTimeout = 5 * time.Second
	healthInterval  = 30 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the gRPC health endpoint and the purchase indexer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	cfg, log := a.cfg, a.logger

	log.Info("starting", zap.String("app", cfg.App.Name), zap.String("version", cfg.App.Version))

	hub := httpHandler.NewStreamHub(log)
	if _, err := a.bus.OnTransitionAsync(hub.Broadcast); err != nil {
		return err
	}

	gen, err := assistant.New(ctx, cfg.Assistant.APIKey, cfg.Assistant.Model, log)
	if err != nil {
		return err
	}

	deps := httpHandler.Deps{
		Presale:   a.presale,
		Assistant: gen,
		Metrics:   a.metrics,
		Gatherer:  a.registry,
		Stream:    hub,
		Network:   cfg.Chain.Name,
		Logger:    log,
	}
	if cfg.Indexer.Enabled {
		deps.Purchases = a.indexer
		go a.indexer.Run(ctx, cfg.Indexer.Interval)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Port,
		Handler:           httpHandler.NewHandler(deps).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpcHandler.NewServer(cfg.GRPC.EnableReflection, log)
	go grpcServer.Monitor(ctx, func(ctx context.Context) error {
		_, err := a.chain.LatestBlock(ctx)
		return err
	}, healthInterval)

	lis, err := net.Listen("tcp", cfg.GRPC.Port)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", cfg.GRPC.Port)
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info("gRPC server listening", zap.String("addr", cfg.GRPC.Port))
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- errors.Wrap(err, "serving gRPC")
		}
	}()
	go func() {
		log.Info("HTTP server listening", zap.String("addr", cfg.HTTP.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- errors.Wrap(err, "serving HTTP")
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	log.Info("shutting down servers")
	grpcServer.GracefulStop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP server shutdown error", zap.Error(err))
	}
	hub.Close()

	log.Info("waiting for in-flight transactions")
	return serveErr
}
