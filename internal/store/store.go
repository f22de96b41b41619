package store

import (
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Pronoysaha90/AuraAntique/internal/domain"
)

// Observer receives the new state after every dispatch.
type Observer func(domain.StoreState)

// Store owns one StoreState and the observers bound to it.
type Store struct {
	mu        sync.RWMutex
	state     domain.StoreState
	observers map[int]Observer
	nextID    int
}

// New returns a store holding the empty initial state.
func New() *Store {
	return &Store{
		state:     domain.NewStoreState(),
		observers: make(map[int]Observer),
	}
}

// Dispatch applies a through Reduce, then notifies observers in subscription
// order with a snapshot of the new state.
func (s *Store) Dispatch(a Action) domain.StoreState {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	snapshot := s.state.Clone()
	observers := s.observerList()
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot.Clone())
	}
	return snapshot
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) observerList() []Observer {
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Observer, len(ids))
	for i, id := range ids {
		out[i] = s.observers[id]
	}
	return out
}

// State returns a snapshot that shares nothing with the store.
func (s *Store) State() domain.StoreState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) AddToCart(p domain.Product) { s.Dispatch(AddToCartAction(p)) }

func (s *Store) RemoveFromCart(id string) { s.Dispatch(RemoveFromCartAction(id)) }

// UpdateQuantity sets the line quantity; a quantity of zero or less removes it.
func (s *Store) UpdateQuantity(id string, quantity int) {
	s.Dispatch(UpdateQuantityAction(id, quantity))
}

func (s *Store) ClearCart() { s.Dispatch(ClearCartAction()) }

func (s *Store) ToggleWishlist(p domain.Product) { s.Dispatch(ToggleWishlistAction(p)) }

func (s *Store) SetCartOpen(open bool) { s.Dispatch(SetCartOpenAction(open)) }

func (s *Store) SetCheckoutOpen(open bool) { s.Dispatch(SetCheckoutOpenAction(open)) }

// ProceedToCheckout closes the cart panel and opens checkout in one step.
func (s *Store) ProceedToCheckout() { s.Dispatch(ProceedToCheckoutAction()) }

func (s *Store) IsInWishlist(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.FindWishlistEntry(id) >= 0
}

func (s *Store) IsInCart(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.FindCartItem(id) >= 0
}

func (s *Store) CartTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CartTotal()
}

func (s *Store) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CartCount()
}
