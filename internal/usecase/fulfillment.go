package usecase

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
	"github.com/trivima/assetstore/internal/domain/repository"
)

const defaultRecipientName = "Customer"

// DownloadNotifier sends the download email for purchased items.
type DownloadNotifier interface {
	Notify(ctx context.Context, to, name, orderID string, items []model.LineItem) error
}

// FulfillmentService drains the delivery outbox filled by payment capture.
type FulfillmentService struct {
	orders     repository.OrderRepository
	users      repository.UserRepository
	deliveries repository.DeliveryRepository
	notifier   DownloadNotifier
	now        func() time.Time
}

// NewFulfillmentService constructs FulfillmentService.
func NewFulfillmentService(orders repository.OrderRepository, users repository.UserRepository, deliveries repository.DeliveryRepository, notifier DownloadNotifier) *FulfillmentService {
	return &FulfillmentService{
		orders:     orders,
		users:      users,
		deliveries: deliveries,
		notifier:   notifier,
		now:        time.Now,
	}
}

// ClaimDeliveries leases due delivery tasks for this process.
func (s *FulfillmentService) ClaimDeliveries(ctx context.Context, lease time.Duration, limit int) ([]model.DeliveryTask, error) {
	return s.deliveries.ClaimDue(ctx, s.now(), lease, limit)
}

// Deliver emails the purchaser of orderID their download links. It returns
// ErrNothingToDeliver when the order or its purchaser no longer exists.
func (s *FulfillmentService) Deliver(ctx context.Context, orderID string) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrOrderNotFound) {
			return domainErrors.ErrNothingToDeliver
		}
		return err
	}

	user, err := s.users.GetByID(ctx, order.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.ErrNothingToDeliver
		}
		return err
	}
	if user.Email == "" {
		return domainErrors.ErrNothingToDeliver
	}

	name := user.Name
	if name == "" {
		name = defaultRecipientName
	}
	return s.notifier.Notify(ctx, user.Email, name, order.ID, order.Items)
}

// CompleteDelivery marks a task done.
func (s *FulfillmentService) CompleteDelivery(ctx context.Context, id string) error {
	return s.deliveries.MarkSent(ctx, id, s.now())
}

// RetryDelivery records a failed attempt. A final failure parks the task.
func (s *FulfillmentService) RetryDelivery(ctx context.Context, task model.DeliveryTask, cause error, next time.Time, final bool) error {
	return s.deliveries.MarkFailed(ctx, task.ID, task.Attempts+1, cause.Error(), next, final)
}
