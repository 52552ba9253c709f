package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Products() ProductRepository
	Coupons() CouponRepository
	Orders() OrderRepository
	Reviews() ReviewRepository
	Deliveries() DeliveryRepository
}
