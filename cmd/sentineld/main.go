package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Khaja2988/AI-Driven-WAF/internal/application/usecase"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/port"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/service"
	"github.com/Khaja2988/AI-Driven-WAF/internal/infrastructure/config"
	"github.com/Khaja2988/AI-Driven-WAF/internal/infrastructure/geoip"
	kafkainfra "github.com/Khaja2988/AI-Driven-WAF/internal/infrastructure/kafka"
	"github.com/Khaja2988/AI-Driven-WAF/internal/infrastructure/memory"
	"github.com/Khaja2988/AI-Driven-WAF/internal/infrastructure/messaging"
	pginfra "github.com/Khaja2988/AI-Driven-WAF/internal/infrastructure/postgres"
	grpcpresentation "github.com/Khaja2988/AI-Driven-WAF/internal/presentation/grpc"
	"github.com/Khaja2988/AI-Driven-WAF/internal/presentation/rest"
	"github.com/Khaja2988/AI-Driven-WAF/pkg/auth"
	pkgkafka "github.com/Khaja2988/AI-Driven-WAF/pkg/kafka"
	"github.com/Khaja2988/AI-Driven-WAF/pkg/observability"
	"github.com/Khaja2988/AI-Driven-WAF/pkg/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("sentineld exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})

	logger.Info("starting sentineld",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"persistence", cfg.Database.Enabled,
		"publishing", cfg.Kafka.Enabled,
	)

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTelEndpoint,
			SampleRatio: 1,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() {
				sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer scancel()
				_ = shutdown(sctx)
			}()
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	assessmentMetrics, err := observability.NewAssessmentMetrics(meterProvider.Meter("sentineld"))
	if err != nil {
		return fmt.Errorf("init assessment metrics: %w", err)
	}

	checks := map[string]rest.Check{}

	// Assessment store.
	var repo port.AssessmentRepository
	if cfg.Database.Enabled {
		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		pool, err := postgres.NewPool(dbCtx, postgres.Config{URL: cfg.Database.URL})
		dbCancel()
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
			return err
		}
		logger.Info("connected to database")

		repo = pginfra.NewAssessmentRepository(pool)
		checks["database"] = func(ctx context.Context) error { return postgres.HealthCheck(ctx, pool) }
	} else {
		repo = memory.NewAssessmentRepository(cfg.AuditCapacity)
		logger.Info("using in-memory assessment log", "capacity", cfg.AuditCapacity)
	}

	// Event publishing.
	kafkaCfg := pkgkafka.Config{
		ClientID:      cfg.Kafka.ClientID,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
		Brokers:       cfg.Kafka.Brokers,
	}
	var publisher port.EventPublisher
	if cfg.Kafka.Enabled {
		producer, err := pkgkafka.NewProducer(kafkaCfg)
		if err != nil {
			return err
		}
		defer producer.Close()
		publisher = kafkainfra.NewPublisher(producer, cfg.Kafka.Topic, logger)
	} else {
		publisher = messaging.NewLogPublisher(logger, slog.LevelDebug)
	}

	// Geolocation.
	var enricher *service.GeoEnricher
	if cfg.GeoIPCityDB != "" {
		resolver, err := geoip.Open(cfg.GeoIPCityDB)
		if err != nil {
			return err
		}
		defer resolver.Close()
		enricher = service.NewGeoEnricher(resolver, logger)
		logger.Info("geoip enrichment enabled", "database", cfg.GeoIPCityDB)
	}

	audit := usecase.NewAuditTrail(repo, publisher, assessmentMetrics, logger)
	analyzeLogin := usecase.NewAnalyzeLogin(service.NewLoginAnomalyScorer(), enricher, audit, logger)
	analyzePayload := usecase.NewAnalyzePayload(service.NewThreatClassifier(), audit, logger)
	getAssessment := usecase.NewGetAssessment(repo)
	listAssessments := usecase.NewListAssessments(repo)

	jwtService, err := newJWTService(cfg)
	if err != nil {
		return err
	}

	// gRPC server.
	grpcHandler := grpcpresentation.NewRiskServiceHandler(grpcpresentation.UseCases{
		AnalyzeLogin:    analyzeLogin,
		AnalyzePayload:  analyzePayload,
		GetAssessment:   getAssessment,
		ListAssessments: listAssessments,
	}, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		JWT:         jwtService,
		Address:     cfg.GRPCAddress(),
		TLSCertFile: cfg.TLS.CertFile,
		TLSKeyFile:  cfg.TLS.KeyFile,
		Reflection:  cfg.GRPCReflection,
	}, logger)
	if err != nil {
		return err
	}

	// HTTP server.
	router := rest.NewRouter(rest.RouterConfig{
		Health: rest.NewHealthHandler(cfg.ServiceName, checks),
		Risk: rest.NewRiskHandler(rest.UseCases{
			AnalyzeLogin:    analyzeLogin,
			AnalyzePayload:  analyzePayload,
			GetAssessment:   getAssessment,
			ListAssessments: listAssessments,
		}, logger),
		Metrics:     metricsHandler,
		JWT:         jwtService,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})
	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 3)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	if cfg.Kafka.ConsumeLogins {
		consumer, err := pkgkafka.NewConsumer(kafkaCfg, cfg.Kafka.LoginTopic,
			kafkainfra.NewLoginHandler(analyzeLogin, logger).Handle, logger)
		if err != nil {
			return err
		}
		defer consumer.Close()

		go func() {
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("login consumer error: %w", err)
			}
		}()
		logger.Info("consuming login events", "topic", cfg.Kafka.LoginTopic)
	}

	logger.Info("sentineld started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
		"auth", jwtService != nil,
	)

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server error", "error", runErr)
	}

	logger.Info("shutting down sentineld")
	cancel()

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("sentineld stopped")
	return runErr
}

func newJWTService(cfg *config.Config) (*auth.JWTService, error) {
	if !cfg.Auth.Enabled {
		return nil, nil
	}
	jwtCfg := auth.JWTConfig{
		Secret: cfg.Auth.JWTSecret,
		Issuer: cfg.Auth.Issuer,
	}
	if cfg.Auth.PublicKeyFile != "" {
		pem, err := auth.LoadKeyFromFile(cfg.Auth.PublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(pem)
	}
	return auth.NewJWTService(jwtCfg)
}
