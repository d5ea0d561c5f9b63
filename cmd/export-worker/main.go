// Entry point for the payroll export worker.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/rs/zerolog/log"

	"payroll.service/internal/config"
	"payroll.service/internal/core/service"
	"payroll.service/internal/notify"
	"payroll.service/internal/ports/repository"
	"payroll.service/internal/worker"
	"payroll.service/internal/worker/export"
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
	shutdownTracer, err := telemetry.InitTracer("payroll-export-worker", cfg.IsLocalDev)
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

	// Initialize dependencies
	sqsClient := sqs.NewFromConfig(awsCfg)
	sesClient := ses.NewFromConfig(awsCfg)
	timesheets := repository.NewTimesheetRepository(db)
	employees := repository.NewEmployeeRepository(db, timesheets)
	jobs := repository.NewJobRepository(db)
	exports := repository.NewExportJobRepository(db)
	reports := service.NewReportService(employees, timesheets, jobs, cfg.ReportCompany)
	emailService := notify.NewSESEmailService(sesClient, cfg.EmailSender)
	processor := export.NewProcessor(reports, exports, emailService)

	// Start worker
	ctx, cancel := context.WithCancel(context.Background())
	app := worker.NewWorker(sqsClient, cfg.ExportSQSQueueURL, processor)

	go func() {
		app.Start(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down worker...")

	// Cancel the context to signal the poller to stop.
	cancel()

	log.Info().Msg("Worker exited gracefully")
}
