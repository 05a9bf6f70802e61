package orders

import "context"

// Store creates and looks up orders and serves the reference catalogs.
// MemStore and Repo both satisfy it; callers should not care which one they get.
type Store interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (Order, error)
	GetOrder(ctx context.Context, id int64) (Order, error)
	ListFlavors(ctx context.Context) ([]Flavor, error)
	ListHostels(ctx context.Context) ([]Hostel, error)
}

// newOrder fills everything the store owns: total, status, empty contact fields.
func newOrder(id int64, in CreateOrderInput) Order {
	return Order{
		ID:       id,
		Hostel:   in.Hostel,
		Room:     in.Room,
		Quantity: in.Quantity,
		Flavors:  append([]string(nil), in.Flavors...),
		Total:    PriceInput(in),
		Status:   StatusPending,
	}
}
