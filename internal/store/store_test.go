package store

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pronoysaha90/AuraAntique/internal/domain"
)

func TestNew_EmptyState(t *testing.T) {
	s := New()
	st := s.State()

	assert.Empty(t, st.Cart)
	assert.Empty(t, st.Wishlist)
	assert.False(t, st.IsCartOpen)
	assert.False(t, st.IsCheckoutOpen)
	assert.True(t, s.CartTotal().IsZero())
	assert.Equal(t, 0, s.CartCount())
}

func TestStore_CartOperations(t *testing.T) {
	s := New()
	s.AddToCart(ruby)
	s.AddToCart(ruby)
	s.AddToCart(diamond)

	assert.True(t, s.IsInCart("1"))
	assert.Equal(t, 3, s.CartCount())
	assert.True(t, decimal.NewFromInt(2450*2+1890).Equal(s.CartTotal()))

	s.UpdateQuantity("3", 3)
	assert.Equal(t, 5, s.CartCount())

	s.RemoveFromCart("1")
	assert.False(t, s.IsInCart("1"))
	assert.True(t, decimal.NewFromInt(1890*3).Equal(s.CartTotal()))

	s.ClearCart()
	assert.Equal(t, 0, s.CartCount())
	assert.True(t, s.CartTotal().IsZero())
}

func TestStore_Wishlist(t *testing.T) {
	s := New()
	assert.False(t, s.IsInWishlist("2"))

	s.ToggleWishlist(emerald)
	assert.True(t, s.IsInWishlist("2"))

	s.ToggleWishlist(emerald)
	assert.False(t, s.IsInWishlist("2"))
}

func TestStore_Flags(t *testing.T) {
	s := New()
	s.SetCartOpen(true)
	assert.True(t, s.State().IsCartOpen)

	s.ProceedToCheckout()
	st := s.State()
	assert.False(t, st.IsCartOpen)
	assert.True(t, st.IsCheckoutOpen)

	s.SetCheckoutOpen(false)
	assert.False(t, s.State().IsCheckoutOpen)
}

func TestStore_StateIsSnapshot(t *testing.T) {
	s := New()
	s.AddToCart(ruby)

	st := s.State()
	st.Cart[0].Quantity = 99
	st.Cart = append(st.Cart, domain.CartItem{Product: emerald, Quantity: 1})

	assert.Equal(t, 1, s.CartCount())
}

func TestStore_SubscribeNotifiesInOrder(t *testing.T) {
	s := New()
	var calls []string
	var last domain.StoreState

	s.Subscribe(func(st domain.StoreState) { calls = append(calls, "first"); last = st })
	s.Subscribe(func(domain.StoreState) { calls = append(calls, "second") })

	s.AddToCart(sapphire)

	assert.Equal(t, []string{"first", "second"}, calls)
	require.Len(t, last.Cart, 1)
	assert.Equal(t, "4", last.Cart[0].ID)
}

func TestStore_Unsubscribe(t *testing.T) {
	s := New()
	n := 0
	unsubscribe := s.Subscribe(func(domain.StoreState) { n++ })

	s.AddToCart(ruby)
	unsubscribe()
	unsubscribe()
	s.AddToCart(ruby)

	assert.Equal(t, 1, n)
}

func TestStore_ObserverMayReadStore(t *testing.T) {
	s := New()
	var count int
	s.Subscribe(func(domain.StoreState) { count = s.CartCount() })

	s.AddToCart(ruby)
	assert.Equal(t, 1, count)
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				s.AddToCart(ruby)
			}
		}()
	}
	wg.Wait()

	st := s.State()
	require.Len(t, st.Cart, 1)
	assert.Equal(t, 200, st.Cart[0].Quantity)
}
