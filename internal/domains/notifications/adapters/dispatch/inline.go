package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Apurer/petcare-api/internal/domains/notifications/domain"
	"github.com/Apurer/petcare-api/internal/domains/notifications/ports"
)

// DefaultSendTimeout bounds one inline delivery.
const DefaultSendTimeout = 15 * time.Second

// InlineDispatcher sends each message from a tracked goroutine in this process.
type InlineDispatcher struct {
	mailer  ports.Mailer
	logger  *slog.Logger
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewInlineDispatcher(mailer ports.Mailer, logger *slog.Logger, timeout time.Duration) *InlineDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	return &InlineDispatcher{mailer: mailer, logger: logger, timeout: timeout}
}

func (d *InlineDispatcher) Dispatch(ctx context.Context, email domain.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ports.ErrDispatcherClosed
	}
	d.wg.Add(1)
	d.mu.Unlock()

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	go func() {
		defer d.wg.Done()
		defer cancel()
		if err := d.mailer.Send(sendCtx, email); err != nil {
			d.logger.LogAttrs(sendCtx, slog.LevelWarn, "email delivery failed",
				slog.String("email.to", email.To),
				slog.String("email.reference", email.Reference),
				slog.String("error", err.Error()),
			)
		}
	}()
	return nil
}

// Close stops accepting messages and waits for in-flight sends or ctx, whichever ends first.
func (d *InlineDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
