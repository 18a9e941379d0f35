// Package orders holds orders: the public feed, history of the user, an order looked up by number
// and the result of placing an order.
//
// Each of them has its own status, so requests for different ones do not race.
package orders

import (
	"context"
	"errors"
	"sync"

	"github.com/stellarburgers/burger/cmd/burger/state/lifecycle"
	apiorders "github.com/stellarburgers/burger/pkg/api/types/orders"
)

const storeName = "orders"

// ErrPlacementInFlight is returned when an order is placed while another placement is in progress.
var ErrPlacementInFlight = errors.New("an order is being placed")

// Client is the part of rest.BurgerClient used by Store.
type Client interface {
	GetFeed(ctx context.Context) (apiorders.Feed, error)
	GetUserOrders(ctx context.Context) ([]apiorders.Order, error)
	GetOrderByNumber(ctx context.Context, number int) (*apiorders.Order, error)
	PlaceOrder(ctx context.Context, ingredientIds []string) (apiorders.Placement, error)
}

// slice is a piece of state loaded by one operation.
type slice[T any] struct {
	seq    lifecycle.Sequence
	value  T
	status lifecycle.Status
}

type Store struct {
	client   Client
	observer lifecycle.Observer

	mu            sync.Mutex
	feed          slice[apiorders.Feed]
	userOrders    slice[[]apiorders.Order]
	orderByNumber slice[*apiorders.Order]
	placement     slice[*apiorders.Placement]
}

type Option func(*Store) *Store

func WithObserver(o lifecycle.Observer) Option {
	return func(s *Store) *Store {
		s.observer = o
		return s
	}
}

func New(client Client, options ...Option) *Store {
	s := &Store{client: client}
	s.feed.value = apiorders.Feed{Orders: []apiorders.Order{}}
	s.userOrders.value = []apiorders.Order{}
	for _, opt := range options {
		s = opt(s)
	}
	return s
}

// load runs f as a request for sl.
//
// While loading, the value loaded before is kept. The result is applied only when it is
// the response of the latest request for sl. On failure, the value is kept.
//
// Request numbers are issued and checked under s.mu, together with the status they guard.
func load[T any](s *Store, sl *slice[T], operation string, f func() (T, error)) (T, error) {
	s.mu.Lock()
	n := sl.seq.Next()
	sl.status = lifecycle.Pending()
	s.mu.Unlock()
	s.observer.Notify(storeName, operation, lifecycle.Pending())

	v, err := f()
	if err != nil {
		status := lifecycle.Rejected(err)
		settle(s, sl, n, operation, status, func() {})
		return v, err
	}
	settle(s, sl, n, operation, lifecycle.Fulfilled(), func() { sl.value = v })
	return v, nil
}

// settle applies status and update to sl when n is the latest request for it.
func settle[T any](s *Store, sl *slice[T], n uint64, operation string, status lifecycle.Status, update func()) {
	s.mu.Lock()
	if !sl.seq.Latest(n) {
		s.mu.Unlock()
		return
	}
	sl.status = status
	update()
	s.mu.Unlock()
	s.observer.Notify(storeName, operation, status)
}

// FetchFeed replaces the feed. Orders and totals are replaced together.
func (s *Store) FetchFeed(ctx context.Context) (apiorders.Feed, error) {
	return load(s, &s.feed, "fetchFeed", func() (apiorders.Feed, error) {
		return s.client.GetFeed(ctx)
	})
}

// FetchUserOrders replaces orders of the user.
func (s *Store) FetchUserOrders(ctx context.Context) ([]apiorders.Order, error) {
	return load(s, &s.userOrders, "fetchUserOrders", func() ([]apiorders.Order, error) {
		return s.client.GetUserOrders(ctx)
	})
}

// FetchOrderByNumber looks up an order. Not found is nil without errors.
func (s *Store) FetchOrderByNumber(ctx context.Context, number int) (*apiorders.Order, error) {
	return load(s, &s.orderByNumber, "fetchOrderByNumber", func() (*apiorders.Order, error) {
		return s.client.GetOrderByNumber(ctx, number)
	})
}

// PlaceOrder submits ingredientIds as they are.
//
// While another placement is in flight, it returns ErrPlacementInFlight without requests.
// On success, the placement is stored. On failure, the placement stored before is cleared.
func (s *Store) PlaceOrder(ctx context.Context, ingredientIds []string) (apiorders.Placement, error) {
	s.mu.Lock()
	if s.placement.status.IsLoading() {
		s.mu.Unlock()
		return apiorders.Placement{}, ErrPlacementInFlight
	}
	s.placement.status = lifecycle.Pending()
	s.mu.Unlock()
	s.observer.Notify(storeName, "placeOrder", lifecycle.Pending())

	placement, err := s.client.PlaceOrder(ctx, ingredientIds)
	if err != nil {
		status := lifecycle.Rejected(err)
		s.transit("placeOrder", func() {
			s.placement.value = nil
			s.placement.status = status
		}, status)
		return apiorders.Placement{}, err
	}

	s.transit("placeOrder", func() {
		s.placement.value = &placement
		s.placement.status = lifecycle.Fulfilled()
	}, lifecycle.Fulfilled())
	return placement, nil
}

// ClearPlacement forgets the result of placement, when the confirmation is dismissed.
func (s *Store) ClearPlacement() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placement.value = nil
	if !s.placement.status.IsLoading() {
		s.placement.status = lifecycle.Status{}
	}
}

// ClearOrderByNumber forgets the order looked up.
func (s *Store) ClearOrderByNumber() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderByNumber.value = nil
	if !s.orderByNumber.status.IsLoading() {
		s.orderByNumber.status = lifecycle.Status{}
	}
}

type Snapshot struct {
	Feed       apiorders.Feed
	FeedStatus lifecycle.Status

	UserOrders       []apiorders.Order
	UserOrdersStatus lifecycle.Status

	// OrderByNumber is nil when not looked up or not found.
	OrderByNumber       *apiorders.Order
	OrderByNumberStatus lifecycle.Status

	// Placement is nil unless the last placement succeeded.
	Placement       *apiorders.Placement
	PlacementStatus lifecycle.Status
}

func (s Snapshot) statuses() []lifecycle.Status {
	return []lifecycle.Status{s.PlacementStatus, s.FeedStatus, s.UserOrdersStatus, s.OrderByNumberStatus}
}

// IsLoading reports whether any operation is in flight.
func (s Snapshot) IsLoading() bool {
	for _, st := range s.statuses() {
		if st.IsLoading() {
			return true
		}
	}
	return false
}

// Error is the first error found in placement, feed, user orders and order by number, in this order.
func (s Snapshot) Error() string {
	for _, st := range s.statuses() {
		if st.Error != "" {
			return st.Error
		}
	}
	return ""
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Feed: apiorders.Feed{
			Orders:     append([]apiorders.Order{}, s.feed.value.Orders...),
			Total:      s.feed.value.Total,
			TotalToday: s.feed.value.TotalToday,
		},
		FeedStatus:          s.feed.status,
		UserOrders:          append([]apiorders.Order{}, s.userOrders.value...),
		UserOrdersStatus:    s.userOrders.status,
		OrderByNumberStatus: s.orderByNumber.status,
		PlacementStatus:     s.placement.status,
	}
	if o := s.orderByNumber.value; o != nil {
		found := *o
		snap.OrderByNumber = &found
	}
	if p := s.placement.value; p != nil {
		placement := *p
		snap.Placement = &placement
	}
	return snap
}

func (s *Store) IsLoading() bool {
	return s.Snapshot().IsLoading()
}

func (s *Store) Error() string {
	return s.Snapshot().Error()
}
