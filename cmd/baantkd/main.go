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

	"github.com/Fouxth/BaanTK-sub000/internal/application/usecase"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/port"
	"github.com/Fouxth/BaanTK-sub000/internal/domain/service"
	"github.com/Fouxth/BaanTK-sub000/internal/infrastructure/adapter"
	"github.com/Fouxth/BaanTK-sub000/internal/infrastructure/config"
	"github.com/Fouxth/BaanTK-sub000/internal/infrastructure/messaging"
	pgRepo "github.com/Fouxth/BaanTK-sub000/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/Fouxth/BaanTK-sub000/internal/presentation/grpc"
	"github.com/Fouxth/BaanTK-sub000/internal/presentation/rest"
	"github.com/Fouxth/BaanTK-sub000/pkg/auth"
	pkgkafka "github.com/Fouxth/BaanTK-sub000/pkg/kafka"
	"github.com/Fouxth/BaanTK-sub000/pkg/observability"
	pkgpostgres "github.com/Fouxth/BaanTK-sub000/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Service: cfg.ServiceName,
		Level:   cfg.LogLevel,
		Format:  "json",
	})

	logger.Info("starting decision engine",
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
	)

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort shutdown

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	dbCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: int32(cfg.DB.MaxConns),
		MinConns: int32(cfg.DB.MinConns),
	}
	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	if migErr := pkgpostgres.RunMigrations(dbCfg.DSN(), "file://internal/infrastructure/persistence/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	borrowerRepo := pgRepo.NewBorrowerRepo(pool)
	blacklistRepo := pgRepo.NewBlacklistRepo(pool)
	reminderLogRepo := pgRepo.NewReminderLogRepo(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		TLS:           cfg.Kafka.TLS,
		SASLEnabled:   cfg.Kafka.SASLEnabled,
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
	})
	defer kafkaProducer.Close()
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer, logger)
	dispatcher := messaging.NewKafkaReminderDispatcher(kafkaProducer, logger)

	var verifier port.IdentityVerifier
	if cfg.Identity.BaseURL == "" {
		logger.Warn("identity provider not configured, using stub verifier")
		verifier = adapter.NewStubIdentityVerifier()
	} else {
		verifier = adapter.NewIdentityClient(
			cfg.Identity.APIKey, cfg.Identity.BaseURL,
			cfg.Identity.Timeout, cfg.Identity.MaxRetries,
		)
	}

	// Wire domain services.
	guard := service.NewIntakeGuard(borrowerRepo, blacklistRepo)
	scorer := service.NewScoringEngine(service.DefaultScoringConfig())
	terms := service.NewTermsCalculator()
	policy := service.NewApprovalPolicy(service.PolicyConfig{
		AutoApproveEnabled:  cfg.Policy.AutoApproveEnabled,
		AutoApproveMinScore: cfg.Policy.AutoApproveMinScore,
	})

	// Wire use cases.
	submitUC := usecase.NewSubmitApplicationUseCase(borrowerRepo, publisher, verifier, guard, scorer, terms, policy, logger)
	getUC := usecase.NewGetBorrowerUseCase(borrowerRepo)
	decideUC := usecase.NewDecideApplicationUseCase(borrowerRepo, publisher, logger)
	signUC := usecase.NewSignContractUseCase(borrowerRepo, publisher)
	paymentUC := usecase.NewRecordPaymentUseCase(borrowerRepo, publisher, logger)
	sweepUC := usecase.NewOverdueSweepUseCase(borrowerRepo, reminderLogRepo, dispatcher, publisher, logger, cfg.Sweep.Workers)

	// JWT service.
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     cfg.Auth.JWTSecret,
		Issuer:     cfg.Auth.Issuer,
		Expiration: cfg.Auth.TokenTTL,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	handler := grpcPresentation.NewBorrowerServiceHandler(submitUC, getUC, decideUC, signUC, paymentUC, sweepUC, logger)
	grpcServer := grpcPresentation.NewServer(handler, cfg.GRPCAddr(), logger, jwtSvc)

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(cfg.ServiceName, map[string]rest.ReadinessCheck{
		"postgres": func(ctx context.Context) error {
			return pkgpostgres.HealthCheck(ctx, pool)
		},
	}, logger)
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Periodic overdue sweep.
	go runSweepLoop(ctx, sweepUC, cfg.Sweep.Interval, logger)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("decision engine stopped")
}

// runSweepLoop triggers the overdue sweep on a fixed interval until ctx ends.
func runSweepLoop(ctx context.Context, sweep *usecase.OverdueSweepUseCase, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("overdue sweep scheduled", "interval", interval.String())

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := sweep.Execute(ctx)
			if err != nil {
				logger.Error("scheduled overdue sweep failed", "error", err)
				continue
			}
			logger.Info("scheduled overdue sweep finished",
				"processed", result.Processed,
				"overdue", result.Overdue,
				"reminders_sent", result.RemindersSent,
				"failed", result.Failed)
		}
	}
}
