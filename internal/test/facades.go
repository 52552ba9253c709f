package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/trivima/assetstore/internal/domain/model"
)

// RetryCall stores information about RetryDelivery invocations.
type RetryCall struct {
	TaskID  string
	Attempt int
	Cause   error
	Next    time.Time
	Final   bool
}

// DeliveryFacadeStub mimics dispatcher interactions with the store facade.
type DeliveryFacadeStub struct {
	Batches   [][]model.DeliveryTask
	ClaimFn   func(context.Context, time.Duration, int) ([]model.DeliveryTask, error)
	DeliverFn func(context.Context, string) error
	Completed []string
	Retries   []RetryCall
	Delivered []string

	mu         sync.Mutex
	claimCalls int32
}

// Lock exposes internal mutex for external synchronization.
func (s *DeliveryFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *DeliveryFacadeStub) Unlock() { s.mu.Unlock() }

// ClaimDeliveries returns batches from configured queue.
func (s *DeliveryFacadeStub) ClaimDeliveries(ctx context.Context, lease time.Duration, limit int) ([]model.DeliveryTask, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, lease, limit)
	}
	call := atomic.AddInt32(&s.claimCalls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	return nil, nil
}

// Deliver records the order and runs DeliverFn when set.
func (s *DeliveryFacadeStub) Deliver(ctx context.Context, orderID string) error {
	s.mu.Lock()
	s.Delivered = append(s.Delivered, orderID)
	s.mu.Unlock()
	if s.DeliverFn != nil {
		return s.DeliverFn(ctx, orderID)
	}
	return nil
}

// CompleteDelivery records completed tasks. Like a database call it fails on a done context.
func (s *DeliveryFacadeStub) CompleteDelivery(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Completed = append(s.Completed, id)
	return nil
}

// RetryDelivery records failed attempts. It fails on a done context.
func (s *DeliveryFacadeStub) RetryDelivery(ctx context.Context, task model.DeliveryTask, cause error, next time.Time, final bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Retries = append(s.Retries, RetryCall{TaskID: task.ID, Attempt: task.Attempts + 1, Cause: cause, Next: next, Final: final})
	return nil
}
