package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
	"github.com/trivima/assetstore/internal/domain/repository"
)

// OrderService covers order listing and administration outside of checkout.
type OrderService struct {
	orders repository.OrderRepository
}

// NewOrderService constructs OrderService.
func NewOrderService(orders repository.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// UserOrders returns the caller's orders, newest first.
func (u *OrderService) UserOrders(ctx context.Context, userID string) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// AllOrders returns every order, newest first.
func (u *OrderService) AllOrders(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

// UpdateStatus sets the fulfilment status to any known label.
func (u *OrderService) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown order status %q", domainErrors.ErrValidation, status)
	}
	return u.orders.UpdateStatus(ctx, orderID, status)
}

// Remove deletes an order without touching stock or coupon usage.
func (u *OrderService) Remove(ctx context.Context, orderID string) error {
	return u.orders.Delete(ctx, orderID)
}
