package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/app/setup"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/config"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/delivery/grpcapi"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/delivery/http/handlers"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/logger"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/migrate"
	"github.com/urfave/cli/v2"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func serve(c *cli.Context) error {
	cfg := config.MustLoad()

	log, closer, err := logger.New(cfg.LogConfig)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closer.Close()
	slog.SetDefault(log)

	deps, err := setup.InitializeDependencies(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			slog.Error("failed to release dependencies", "error", err.Error())
		}
	}()

	if c.Bool("migrate") {
		if err := migrate.Run(deps.DB, cfg.OrderDB.MigrationsPath, migrate.Up); err != nil {
			return err
		}
	}

	useCases, err := setup.InitializeUseCases(deps)
	if err != nil {
		return err
	}

	router := handlers.NewRouter(
		handlers.RouterConfig{
			AllowedOrigins: strings.Split(cfg.HTTPServer.AllowedOrigin, ","),
			RequestTimeout: cfg.HTTPServer.WriteTimeout,
		},
		handlers.NewPaymentHandler(useCases.PaymentUsecase),
		deps.SQLDB,
		deps.Registry,
	)
	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTPServer.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTPServer.WriteTimeout,
	}

	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, grpcapi.NewHealthHandler(deps.SQLDB, cfg.OrderDB.QueryTimeout))

	lis, err := net.Listen("tcp", net.JoinHostPort(cfg.GRPCServer.Host, cfg.GRPCServer.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	serveErr := make(chan error, 2)
	go func() {
		slog.Info("http server started", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		slog.Info("grpc server started", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			serveErr <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case runErr = <-serveErr:
		slog.Error("server stopped unexpectedly", "error", runErr.Error())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown failed", "error", err.Error())
	}
	grpcServer.GracefulStop()

	slog.Info("payment service stopped")
	return runErr
}
