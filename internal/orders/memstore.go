package orders

import (
	"context"
	"sync"
)

// MemStore keeps everything in process memory. Data is gone on restart.
type MemStore struct {
	mu      sync.Mutex
	orders  map[int64]Order
	nextID  int64
	flavors []Flavor
	hostels []Hostel
}

func NewMemStore() *MemStore {
	return &MemStore{
		orders:  make(map[int64]Order),
		nextID:  1,
		flavors: SeedFlavors(),
		hostels: SeedHostels(),
	}
}

func (s *MemStore) CreateOrder(_ context.Context, in CreateOrderInput) (Order, error) {
	if err := in.Validate(); err != nil {
		return Order{}, err
	}

	// read counter, increment, insert: satu critical section
	s.mu.Lock()
	defer s.mu.Unlock()

	o := newOrder(s.nextID, in)
	s.nextID++
	s.orders[o.ID] = o
	return o.clone(), nil
}

func (s *MemStore) GetOrder(_ context.Context, id int64) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o.clone(), nil
}

func (s *MemStore) ListFlavors(_ context.Context) ([]Flavor, error) {
	return append([]Flavor(nil), s.flavors...), nil
}

func (s *MemStore) ListHostels(_ context.Context) ([]Hostel, error) {
	return append([]Hostel(nil), s.hostels...), nil
}
