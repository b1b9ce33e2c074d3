package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/petcare-api/internal/app/api"
	platformobservability "github.com/Apurer/petcare-api/internal/platform/observability"
	emailactivities "github.com/Apurer/petcare-api/internal/platform/temporal/activities/notifications"
	emailworkflows "github.com/Apurer/petcare-api/internal/platform/temporal/workflows/notifications"
)

func main() {
	ctx := context.Background()
	const serviceName = "petcare-worker"
	cfg, err := api.LoadBaseConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	temporalClient, err := api.ConnectTemporal(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	activities := emailactivities.NewActivities(api.NewMailer(cfg, logger))
	w := worker.New(temporalClient, emailworkflows.TaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(emailworkflows.EmailDeliveryWorkflow, workflow.RegisterOptions{Name: emailworkflows.EmailDeliveryWorkflowName})
	w.RegisterActivityWithOptions(activities.SendEmail, activity.RegisterOptions{Name: emailactivities.SendEmailActivityName})

	logger.Info("worker listening", slog.String("taskQueue", emailworkflows.TaskQueue), slog.String("namespace", cfg.Temporal.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
