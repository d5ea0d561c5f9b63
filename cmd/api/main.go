// Entry point for the payroll REST API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"payroll.service/internal/api"
	"payroll.service/internal/config"
	"payroll.service/internal/core/service"
	"payroll.service/internal/identity"
	"payroll.service/internal/ports/messaging"
	"payroll.service/internal/ports/repository"
	"payroll.service/pkg/aws"
	"payroll.service/pkg/database"
	"payroll.service/pkg/logger"
	"payroll.service/pkg/telemetry"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}

	// Configure structured logging
	logger.Setup(cfg.IsLocalDev)

	// Configure OpenTelemetry Tracing
	shutdownTracer, err := telemetry.InitTracer("payroll-api", cfg.IsLocalDev)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init tracer")
	}
	defer func() {
		_ = shutdownTracer(context.Background())
	}()

	// DB connection
	db, err := database.NewInstrumentedConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening database")
	}
	defer db.Close()
	log.Info().Msg("Successfully connected to the database.")

	// AWS SDK Config
	awsCfg, err := aws.NewAWSConfig(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load SDK config")
	}

	// Identity provider access. With a shared JWT secret tokens are
	// verified locally; otherwise every session lookup calls the
	// provider (cached, behind a circuit breaker).
	identityClient := identity.NewHTTPClient(cfg.IdentityURL)
	var sessions identity.Client = identityClient
	if cfg.JWTSecret != "" {
		sessions = identity.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	}

	// Initialize dependencies
	sqsClient := sqs.NewFromConfig(awsCfg)
	timesheets := repository.NewTimesheetRepository(db)
	employees := repository.NewEmployeeRepository(db, timesheets)
	jobs := repository.NewJobRepository(db)
	exports := repository.NewExportJobRepository(db)
	producer := messaging.NewExportProducer(messaging.NewSQSSender(sqsClient, cfg.ExportSQSQueueURL))
	reports := service.NewReportService(employees, timesheets, jobs, cfg.ReportCompany)

	// Setup router and server
	router := api.NewRouter(api.Dependencies{
		Identity:      sessions,
		Authenticator: identityClient,
		Employees:     employees,
		Timesheets:    timesheets,
		Jobs:          jobs,
		Exports:       exports,
		Reports:       reports,
		Producer:      producer,
	})

	// Middleware to inject logger with trace ID
	loggerMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = logger.EnrichContextWithLogger(ctx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	// Wrap the router with OpenTelemetry middleware to create spans for each request
	handler := otelhttp.NewHandler(loggerMiddleware(router), "api")

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: handler,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("Payroll API starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
