// Package dispatch holds the Dispatcher implementations: durable via Temporal, or inline goroutines.
package dispatch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/petcare-api/internal/domains/notifications/domain"
	"github.com/Apurer/petcare-api/internal/domains/notifications/ports"
	emailworkflows "github.com/Apurer/petcare-api/internal/platform/temporal/workflows/notifications"
)

var (
	_ ports.Dispatcher = (*TemporalDispatcher)(nil)
	_ ports.Dispatcher = (*InlineDispatcher)(nil)
)

// TemporalDispatcher starts an EmailDelivery workflow per message and does not wait for it.
type TemporalDispatcher struct {
	client    client.Client
	taskQueue string
}

func NewTemporalDispatcher(c client.Client) *TemporalDispatcher {
	return &TemporalDispatcher{client: c, taskQueue: emailworkflows.TaskQueue}
}

// Dispatch starts the workflow. A message whose workflow id was already used is treated as sent.
func (d *TemporalDispatcher) Dispatch(ctx context.Context, email domain.Email) error {
	if d == nil || d.client == nil {
		return errors.New("temporal dispatcher not configured")
	}
	if err := email.Validate(); err != nil {
		return err
	}
	traceID := workflowTraceID(ctx)
	options := client.StartWorkflowOptions{
		ID:                    WorkflowID(email, traceID),
		TaskQueue:             d.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}
	_, err := d.client.ExecuteWorkflow(ctx, options, emailworkflows.EmailDeliveryWorkflowName, emailworkflows.EmailDeliveryInput{Email: email, TraceID: traceID})
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil
		}
		return fmt.Errorf("start email workflow: %w", err)
	}
	return nil
}

// WorkflowID derives a stable id from recipient, subject and reference.
// Messages without a reference fall back to the trace id so unrelated sends are not merged.
func WorkflowID(email domain.Email, traceID string) string {
	reference := strings.TrimSpace(email.Reference)
	if reference == "" {
		reference = traceID
		if reference == "" {
			reference = fmt.Sprintf("fallback-%d", time.Now().UnixNano())
		}
	}
	key := strings.ToLower(strings.TrimSpace(email.To)) + "\x00" + strings.TrimSpace(email.Subject) + "\x00" + reference
	sum := sha256.Sum256([]byte(key))
	return "notification-email-" + hex.EncodeToString(sum[:8])
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.HasTraceID() {
		return ""
	}
	return spanCtx.TraceID().String()
}
