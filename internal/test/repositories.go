package test

import (
	"context"
	"slices"
	"sync"
	"time"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[string]*model.User
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[string]*model.User),
	}
}

// Add seeds a user.
func (s *UserRepositoryStub) Add(user model.User) {
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[string]*model.User)
	}
	s.Users[user.Email] = &user
	s.ByID[user.ID] = &user
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) error {
	if s.Err != nil {
		return s.Err
	}
	if _, exists := s.Users[user.Email]; exists {
		return domainErrors.ErrAlreadyExists
	}
	s.Add(*user)
	return nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// StockCall records a stock adjustment.
type StockCall struct {
	ID       string
	Quantity int64
}

// ProductRepositoryStub keeps products in a map and lets tests override lookups.
type ProductRepositoryStub struct {
	Products    map[string]model.Product
	GetByIDsFn  func(context.Context, []string) (map[string]model.Product, error)
	CreateErr   error
	Created     []model.Product
	StockCalls  []StockCall
	RequestedID [][]string
}

// NewProductRepositoryStub seeds the stub with products.
func NewProductRepositoryStub(products ...model.Product) *ProductRepositoryStub {
	s := &ProductRepositoryStub{Products: make(map[string]model.Product)}
	for _, p := range products {
		s.Products[p.ID] = p
	}
	return s
}

// Create stores the product.
func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.Created = append(s.Created, *product)
	if s.Products == nil {
		s.Products = make(map[string]model.Product)
	}
	s.Products[product.ID] = *product
	return nil
}

// GetByID returns a stored product.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if p, ok := s.Products[id]; ok {
		return &p, nil
	}
	return nil, domainErrors.ErrProductNotFound
}

// GetByIDs returns the stored subset of ids.
func (s *ProductRepositoryStub) GetByIDs(ctx context.Context, ids []string) (map[string]model.Product, error) {
	s.RequestedID = append(s.RequestedID, ids)
	if s.GetByIDsFn != nil {
		return s.GetByIDsFn(ctx, ids)
	}
	found := make(map[string]model.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.Products[id]; ok {
			found[id] = p
		}
	}
	return found, nil
}

// List returns every stored product.
func (s *ProductRepositoryStub) List(ctx context.Context) ([]model.Product, error) {
	products := make([]model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		products = append(products, p)
	}
	return products, nil
}

// Delete removes a product.
func (s *ProductRepositoryStub) Delete(ctx context.Context, id string) error {
	if _, ok := s.Products[id]; !ok {
		return domainErrors.ErrProductNotFound
	}
	delete(s.Products, id)
	return nil
}

// AddStock increases stored stock.
func (s *ProductRepositoryStub) AddStock(ctx context.Context, id string, quantity int64) (int64, error) {
	return s.adjust(id, quantity)
}

// RemoveStock decreases stored stock, clamped at zero.
func (s *ProductRepositoryStub) RemoveStock(ctx context.Context, id string, quantity int64) (int64, error) {
	return s.adjust(id, -quantity)
}

func (s *ProductRepositoryStub) adjust(id string, delta int64) (int64, error) {
	s.StockCalls = append(s.StockCalls, StockCall{ID: id, Quantity: delta})
	p, ok := s.Products[id]
	if !ok {
		return 0, domainErrors.ErrProductNotFound
	}
	p.Stock = max(p.Stock+delta, 0)
	s.Products[id] = p
	return p.Stock, nil
}

// CouponRepositoryStub keeps coupons keyed by code.
type CouponRepositoryStub struct {
	Coupons      map[string]*model.Coupon
	Err          error
	ActiveAt     []time.Time
	Created      []model.Coupon
	Deleted      []string
	ActiveToggle map[string]bool
}

// NewCouponRepositoryStub seeds the stub with coupons.
func NewCouponRepositoryStub(coupons ...model.Coupon) *CouponRepositoryStub {
	s := &CouponRepositoryStub{Coupons: make(map[string]*model.Coupon), ActiveToggle: make(map[string]bool)}
	for i := range coupons {
		c := coupons[i]
		s.Coupons[c.Code] = &c
	}
	return s
}

// Create stores the coupon unless the code is taken.
func (s *CouponRepositoryStub) Create(ctx context.Context, coupon *model.Coupon) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Coupons[coupon.Code]; ok {
		return domainErrors.ErrCouponExists
	}
	s.Created = append(s.Created, *coupon)
	s.Coupons[coupon.Code] = coupon
	return nil
}

// GetByCode returns the coupon with code.
func (s *CouponRepositoryStub) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if c, ok := s.Coupons[code]; ok {
		return c, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns every coupon ordered by code.
func (s *CouponRepositoryStub) List(ctx context.Context) ([]model.Coupon, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	codes := make([]string, 0, len(s.Coupons))
	for code := range s.Coupons {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	result := make([]model.Coupon, 0, len(codes))
	for _, code := range codes {
		result = append(result, *s.Coupons[code])
	}
	return result, nil
}

// ListActive filters List by the redeemable window at now.
func (s *CouponRepositoryStub) ListActive(ctx context.Context, now time.Time) ([]model.Coupon, error) {
	s.ActiveAt = append(s.ActiveAt, now)
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	active := all[:0]
	for _, c := range all {
		if c.IsActive && !c.Expired(now) {
			active = append(active, c)
		}
	}
	return active, nil
}

// Delete records the removal.
func (s *CouponRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Deleted = append(s.Deleted, id)
	return nil
}

// SetActive records the toggle.
func (s *CouponRepositoryStub) SetActive(ctx context.Context, id string, active bool) error {
	if s.Err != nil {
		return s.Err
	}
	s.ActiveToggle[id] = active
	return nil
}

// MarkPaidCall records a MarkPaid invocation.
type MarkPaidCall struct {
	OrderID   string
	PaymentID string
	PayerID   string
}

// OrderRepositoryStub stores orders in memory and allows tests to customize behaviour.
type OrderRepositoryStub struct {
	mu sync.Mutex

	PlaceFn    func(context.Context, *model.Order, time.Time) error
	DiscardFn  func(context.Context, string) error
	AttachFn   func(context.Context, string, string) error
	MarkPaidFn func(context.Context, string, string, string, time.Time) (bool, error)
	GetErr     error

	Orders       map[string]*model.Order
	Placed       []model.Order
	Discarded    []string
	MarkPaidCall []MarkPaidCall
	StatusCalls  map[string]model.OrderStatus
	Deleted      []string
}

// NewOrderRepositoryStub seeds the stub with orders.
func NewOrderRepositoryStub(orders ...model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Orders: make(map[string]*model.Order), StatusCalls: make(map[string]model.OrderStatus)}
	for i := range orders {
		o := orders[i]
		s.Orders[o.ID] = &o
	}
	return s
}

// Place records and stores the order.
func (s *OrderRepositoryStub) Place(ctx context.Context, order *model.Order, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Placed = append(s.Placed, *order)
	if s.PlaceFn != nil {
		if err := s.PlaceFn(ctx, order, now); err != nil {
			return err
		}
	}
	stored := *order
	s.Orders[order.ID] = &stored
	return nil
}

// Discard records and removes the order.
func (s *OrderRepositoryStub) Discard(ctx context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Discarded = append(s.Discarded, orderID)
	if s.DiscardFn != nil {
		return s.DiscardFn(ctx, orderID)
	}
	delete(s.Orders, orderID)
	return nil
}

// CancelUnpaid removes an unpaid order owned by userID.
func (s *OrderRepositoryStub) CancelUnpaid(ctx context.Context, orderID, userID string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.Orders[orderID]
	if !ok || o.UserID != userID {
		return nil, domainErrors.ErrOrderNotFound
	}
	if o.Payment {
		return nil, domainErrors.ErrOrderAlreadyPaid
	}
	delete(s.Orders, orderID)
	return o, nil
}

// AttachPayPalOrder stores the remote intent id on the order.
func (s *OrderRepositoryStub) AttachPayPalOrder(ctx context.Context, orderID, paypalOrderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AttachFn != nil {
		return s.AttachFn(ctx, orderID, paypalOrderID)
	}
	o, ok := s.Orders[orderID]
	if !ok {
		return domainErrors.ErrOrderNotFound
	}
	o.PayPalOrderID = paypalOrderID
	return nil
}

// GetByID returns a copy of the stored order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	if o, ok := s.Orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, domainErrors.ErrOrderNotFound
}

// GetByPayPalOrderID returns a copy of the order carrying the remote intent id.
func (s *OrderRepositoryStub) GetByPayPalOrderID(ctx context.Context, paypalOrderID string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	for _, o := range s.Orders {
		if o.PayPalOrderID == paypalOrderID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrOrderNotFound
}

// MarkPaid flips the payment flag once.
func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, orderID, paymentID, payerID string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.MarkPaidCall = append(s.MarkPaidCall, MarkPaidCall{OrderID: orderID, PaymentID: paymentID, PayerID: payerID})
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, orderID, paymentID, payerID, now)
	}
	o, ok := s.Orders[orderID]
	if !ok || o.Payment {
		return false, nil
	}
	o.Payment = true
	o.Status = model.OrderStatusAssetReady
	o.PayPalPaymentID = paymentID
	o.PayPalPayerID = payerID
	return true, nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	all, _ := s.List(ctx)
	result := make([]model.Order, 0, len(all))
	for _, o := range all {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}

// List returns every order, newest first.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		result = append(result, *o)
	}
	slices.SortFunc(result, func(a, b model.Order) int { return b.Date.Compare(a.Date) })
	return result, nil
}

// UpdateStatus records and applies the status.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.Orders[orderID]
	if !ok {
		return domainErrors.ErrOrderNotFound
	}
	s.StatusCalls[orderID] = status
	o.Status = status
	return nil
}

// Delete removes the order.
func (s *OrderRepositoryStub) Delete(ctx context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Orders[orderID]; !ok {
		return domainErrors.ErrOrderNotFound
	}
	s.Deleted = append(s.Deleted, orderID)
	delete(s.Orders, orderID)
	return nil
}

// ReviewRepositoryStub stores reviews in insertion order.
type ReviewRepositoryStub struct {
	Reviews   []model.Review
	CreateErr error
	ListErr   error
}

// Create stores the review unless the user already reviewed the product.
func (s *ReviewRepositoryStub) Create(ctx context.Context, review *model.Review) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	for _, r := range s.Reviews {
		if r.UserID == review.UserID && r.ProductID == review.ProductID {
			return domainErrors.ErrAlreadyReviewed
		}
	}
	s.Reviews = append(s.Reviews, *review)
	return nil
}

// ListByProduct returns the product's reviews, newest first.
func (s *ReviewRepositoryStub) ListByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	var result []model.Review
	for i := len(s.Reviews) - 1; i >= 0; i-- {
		if s.Reviews[i].ProductID == productID {
			result = append(result, s.Reviews[i])
		}
	}
	return result, nil
}

// ListByUser returns the user's reviews, newest first.
func (s *ReviewRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.Review, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	var result []model.Review
	for i := len(s.Reviews) - 1; i >= 0; i-- {
		if s.Reviews[i].UserID == userID {
			result = append(result, s.Reviews[i])
		}
	}
	return result, nil
}

// DeliveryFailure records a MarkFailed invocation.
type DeliveryFailure struct {
	ID        string
	Attempts  int
	LastError string
	Next      time.Time
	Final     bool
}

// DeliveryRepositoryStub records outbox transitions.
type DeliveryRepositoryStub struct {
	mu sync.Mutex

	ClaimFn  func(context.Context, time.Time, time.Duration, int) ([]model.DeliveryTask, error)
	Sent     []string
	Failures []DeliveryFailure
}

// ClaimDue delegates to ClaimFn or returns nothing.
func (s *DeliveryRepositoryStub) ClaimDue(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]model.DeliveryTask, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, now, lease, limit)
	}
	return nil, nil
}

// MarkSent records the id.
func (s *DeliveryRepositoryStub) MarkSent(ctx context.Context, id string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, id)
	return nil
}

// MarkFailed records the failure.
func (s *DeliveryRepositoryStub) MarkFailed(ctx context.Context, id string, attempts int, lastErr string, next time.Time, final bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failures = append(s.Failures, DeliveryFailure{ID: id, Attempts: attempts, LastError: lastErr, Next: next, Final: final})
	return nil
}
