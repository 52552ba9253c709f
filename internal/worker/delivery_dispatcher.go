package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
)

const (
	defaultLease       = 2 * time.Minute
	defaultBaseBackoff = 30 * time.Second
	defaultMaxBackoff  = 30 * time.Minute
)

// DeliveryFacade exposes the subset of application functionality required by the dispatcher.
type DeliveryFacade interface {
	ClaimDeliveries(ctx context.Context, lease time.Duration, limit int) ([]model.DeliveryTask, error)
	Deliver(ctx context.Context, orderID string) error
	CompleteDelivery(ctx context.Context, id string) error
	RetryDelivery(ctx context.Context, task model.DeliveryTask, cause error, next time.Time, final bool) error
}

// Options tunes polling and retry behaviour.
type Options struct {
	PollInterval time.Duration
	BatchSize    int
	Workers      int
	MaxAttempts  int
	Lease        time.Duration
	BaseBackoff  time.Duration
	MaxBackoff   time.Duration
}

// DeliveryDispatcher drains the delivery outbox with a pool of workers.
// Each task is claimed under a lease so concurrent instances never send
// the same email twice while the lease holds.
type DeliveryDispatcher struct {
	facade DeliveryFacade
	opts   Options
	logger *slog.Logger
	now    func() time.Time

	jobs   chan model.DeliveryTask
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDeliveryDispatcher constructs the dispatcher worker pool.
func NewDeliveryDispatcher(facade DeliveryFacade, opts Options, logger *slog.Logger) *DeliveryDispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.Lease <= 0 {
		opts.Lease = defaultLease
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = defaultBaseBackoff
	}
	if opts.MaxBackoff < opts.BaseBackoff {
		opts.MaxBackoff = max(defaultMaxBackoff, opts.BaseBackoff)
	}
	return &DeliveryDispatcher{
		facade: facade,
		opts:   opts,
		logger: logger,
		now:    time.Now,
		jobs:   make(chan model.DeliveryTask, opts.BatchSize*opts.Workers),
	}
}

// Start launches background processing.
func (d *DeliveryDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.opts.Workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}

	d.wg.Add(1)
	go d.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (d *DeliveryDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *DeliveryDispatcher) dispatch(ctx context.Context) {
	defer d.wg.Done()
	defer close(d.jobs)
	ticker := time.NewTicker(d.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.claimAndDispatch(ctx)
		}
	}
}

func (d *DeliveryDispatcher) claimAndDispatch(ctx context.Context) {
	tasks, err := d.facade.ClaimDeliveries(ctx, d.opts.Lease, d.opts.BatchSize)
	if err != nil {
		d.logger.Error("claim deliveries failed", slog.Any("error", err))
		return
	}
	for _, task := range tasks {
		select {
		case <-ctx.Done():
			return
		case d.jobs <- task:
		}
	}
}

func (d *DeliveryDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-d.jobs:
			if !ok {
				return
			}
			d.handleTask(ctx, task)
		}
	}
}

// handleTask sends one delivery and records the outcome. The outcome is written even
// when Stop cancels ctx mid-send, so the task is not left waiting for its lease.
func (d *DeliveryDispatcher) handleTask(ctx context.Context, task model.DeliveryTask) {
	err := d.facade.Deliver(ctx, task.OrderID)
	bookkeeping := context.WithoutCancel(ctx)
	if err == nil || errors.Is(err, domainErrors.ErrNothingToDeliver) {
		if err != nil {
			d.logger.Warn("delivery skipped", slog.String("order_id", task.OrderID), slog.Any("error", err))
		}
		if err := d.facade.CompleteDelivery(bookkeeping, task.ID); err != nil {
			d.logger.Error("mark delivery sent failed", slog.String("delivery_id", task.ID), slog.Any("error", err))
		}
		return
	}

	attempt := task.Attempts + 1
	final := attempt >= d.opts.MaxAttempts
	next := d.now().Add(d.backoff(attempt))
	d.logger.Error("delivery attempt failed",
		slog.String("order_id", task.OrderID),
		slog.Int("attempt", attempt),
		slog.Bool("final", final),
		slog.Any("error", err),
	)
	if err := d.facade.RetryDelivery(bookkeeping, task, err, next, final); err != nil {
		d.logger.Error("record delivery failure failed", slog.String("delivery_id", task.ID), slog.Any("error", err))
	}
}

// backoff doubles the base delay per attempt up to MaxBackoff.
func (d *DeliveryDispatcher) backoff(attempt int) time.Duration {
	delay := d.opts.BaseBackoff
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= d.opts.MaxBackoff {
			return d.opts.MaxBackoff
		}
	}
	return delay
}
