package notifications

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/petcare-api/internal/domains/notifications/domain"
	emailactivities "github.com/Apurer/petcare-api/internal/platform/temporal/activities/notifications"
)

const (
	// EmailDeliveryWorkflowName is the public identifier for registering the workflow.
	EmailDeliveryWorkflowName = "notifications.workflows.EmailDelivery"
	// TaskQueue is consumed by the worker processing notification workflows.
	TaskQueue = "NOTIFICATIONS"
)

// EmailDeliveryInput is the workflow payload.
type EmailDeliveryInput struct {
	Email   domain.Email
	TraceID string
}

// DeliveryActivityOptions bounds each SendEmail attempt and its retries.
func DeliveryActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    5,
		},
	}
}

// EmailDeliveryWorkflow sends one email through the SendEmail activity.
func EmailDeliveryWorkflow(ctx workflow.Context, input EmailDeliveryInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("EmailDeliveryWorkflow started", withTraceID(input.TraceID, "reference", input.Email.Reference)...)
	actx := workflow.WithActivityOptions(ctx, DeliveryActivityOptions())
	if err := workflow.ExecuteActivity(actx, emailactivities.SendEmailActivityName, input.Email).Get(ctx, nil); err != nil {
		logger.Error("EmailDeliveryWorkflow failed", withTraceID(input.TraceID, "reference", input.Email.Reference, "error", err)...)
		return err
	}
	logger.Info("EmailDeliveryWorkflow completed", withTraceID(input.TraceID, "reference", input.Email.Reference)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
