package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
	testhelpers "github.com/trivima/assetstore/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, facade *testhelpers.DeliveryFacadeStub, done func() bool) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		facade.Lock()
		ok := done()
		facade.Unlock()
		if ok {
			return
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for dispatcher")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewDeliveryDispatcherDefaults(t *testing.T) {
	d := NewDeliveryDispatcher(&testhelpers.DeliveryFacadeStub{}, Options{}, testLogger())
	if d.opts.BatchSize != 1 || d.opts.Workers != 1 || d.opts.MaxAttempts != 1 {
		t.Fatalf("unexpected defaults %+v", d.opts)
	}
	if d.opts.Lease != defaultLease || d.opts.BaseBackoff != defaultBaseBackoff || d.opts.MaxBackoff != defaultMaxBackoff {
		t.Fatalf("unexpected timing defaults %+v", d.opts)
	}
}

func TestDeliveryDispatcherBackoff(t *testing.T) {
	d := NewDeliveryDispatcher(&testhelpers.DeliveryFacadeStub{}, Options{
		BaseBackoff: time.Second,
		MaxBackoff:  5 * time.Second,
	}, testLogger())

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 5 * time.Second},
		{10, 5 * time.Second},
	}
	for _, tc := range cases {
		if got := d.backoff(tc.attempt); got != tc.want {
			t.Errorf("backoff(%d) = %v, want %v", tc.attempt, got, tc.want)
		}
	}
}

func TestDeliveryDispatcherDeliversTasks(t *testing.T) {
	facade := &testhelpers.DeliveryFacadeStub{Batches: [][]model.DeliveryTask{
		{{ID: "d1", OrderID: "o1"}, {ID: "d2", OrderID: "o2"}},
	}}
	d := NewDeliveryDispatcher(facade, Options{PollInterval: 5 * time.Millisecond, BatchSize: 2, Workers: 2, MaxAttempts: 3}, testLogger())

	d.Start(context.Background())
	waitFor(t, facade, func() bool { return len(facade.Completed) == 2 })
	d.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Retries) != 0 {
		t.Fatalf("expected no retries, got %+v", facade.Retries)
	}
	if len(facade.Delivered) != 2 {
		t.Fatalf("expected two deliveries, got %v", facade.Delivered)
	}
}

func TestDeliveryDispatcherHandleTask(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	smtpErr := errors.New("smtp down")

	cases := []struct {
		name      string
		attempts  int
		err       error
		completed bool
		final     bool
	}{
		{name: "sent", completed: true},
		{name: "nothing to deliver", err: domainErrors.ErrNothingToDeliver, completed: true},
		{name: "first failure", err: smtpErr},
		{name: "last attempt", attempts: 2, err: smtpErr, final: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facade := &testhelpers.DeliveryFacadeStub{
				DeliverFn: func(context.Context, string) error { return tc.err },
			}
			d := NewDeliveryDispatcher(facade, Options{MaxAttempts: 3, BaseBackoff: time.Minute}, testLogger())
			d.now = func() time.Time { return now }

			d.handleTask(context.Background(), model.DeliveryTask{ID: "d1", OrderID: "o1", Attempts: tc.attempts})

			if tc.completed {
				if len(facade.Completed) != 1 || len(facade.Retries) != 0 {
					t.Fatalf("expected completion, got completed=%v retries=%+v", facade.Completed, facade.Retries)
				}
				return
			}
			if len(facade.Retries) != 1 || len(facade.Completed) != 0 {
				t.Fatalf("expected one retry, got completed=%v retries=%+v", facade.Completed, facade.Retries)
			}
			retry := facade.Retries[0]
			if retry.Final != tc.final {
				t.Fatalf("expected final=%v, got %v", tc.final, retry.Final)
			}
			if !errors.Is(retry.Cause, smtpErr) {
				t.Fatalf("unexpected cause %v", retry.Cause)
			}
			if want := now.Add(d.backoff(tc.attempts + 1)); !retry.Next.Equal(want) {
				t.Fatalf("expected next attempt %v, got %v", want, retry.Next)
			}
		})
	}
}

func TestDeliveryDispatcherRecordsOutcomeAfterStop(t *testing.T) {
	cases := []struct {
		name      string
		deliver   func(context.Context, string) error
		completed int
		retries   int
	}{
		{name: "sent before stop", deliver: func(context.Context, string) error { return nil }, completed: 1},
		{name: "send interrupted", deliver: func(ctx context.Context, _ string) error { return ctx.Err() }, retries: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facade := &testhelpers.DeliveryFacadeStub{DeliverFn: tc.deliver}
			d := NewDeliveryDispatcher(facade, Options{MaxAttempts: 3}, testLogger())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			d.handleTask(ctx, model.DeliveryTask{ID: "d1", OrderID: "o1"})

			if len(facade.Completed) != tc.completed || len(facade.Retries) != tc.retries {
				t.Fatalf("completed=%v retries=%+v", facade.Completed, facade.Retries)
			}
		})
	}
}

func TestDeliveryDispatcherSurvivesClaimErrors(t *testing.T) {
	calls := 0
	facade := &testhelpers.DeliveryFacadeStub{}
	facade.ClaimFn = func(context.Context, time.Duration, int) ([]model.DeliveryTask, error) {
		facade.Lock()
		defer facade.Unlock()
		calls++
		if calls == 1 {
			return nil, errors.New("db down")
		}
		if calls == 2 {
			return []model.DeliveryTask{{ID: "d1", OrderID: "o1"}}, nil
		}
		return nil, nil
	}
	d := NewDeliveryDispatcher(facade, Options{PollInterval: 5 * time.Millisecond}, testLogger())

	d.Start(context.Background())
	waitFor(t, facade, func() bool { return len(facade.Completed) == 1 })
	d.Stop()
}
