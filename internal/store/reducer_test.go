package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pronoysaha90/AuraAntique/internal/domain"
)

func product(id string, price int64) domain.Product {
	return domain.Product{ID: id, Name: "Product " + id, Price: decimal.NewFromInt(price)}
}

var (
	ruby     = product("1", 2450)
	emerald  = product("2", 2850)
	diamond  = product("3", 1890)
	sapphire = product("4", 3650)
)

func apply(actions ...Action) domain.StoreState {
	s := domain.NewStoreState()
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

func expectedTotal(s domain.StoreState) (decimal.Decimal, int) {
	total := decimal.Zero
	count := 0
	for _, item := range s.Cart {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}
	return total, count
}

func TestReduce_AddToCart_SameProductTwice(t *testing.T) {
	s := apply(AddToCartAction(ruby), AddToCartAction(ruby))

	require.Len(t, s.Cart, 1)
	assert.Equal(t, 2, s.Cart[0].Quantity)
	assert.Equal(t, "1", s.Cart[0].ID)
}

func TestReduce_AddToCart_PreservesInsertionOrder(t *testing.T) {
	s := apply(AddToCartAction(diamond), AddToCartAction(ruby), AddToCartAction(diamond))

	require.Len(t, s.Cart, 2)
	assert.Equal(t, "3", s.Cart[0].ID)
	assert.Equal(t, 2, s.Cart[0].Quantity)
	assert.Equal(t, "1", s.Cart[1].ID)
}

func TestReduce_AddToCart_NeverDuplicates(t *testing.T) {
	catalog := []domain.Product{ruby, emerald, diamond, sapphire}
	s := domain.NewStoreState()
	for i := 0; i < 50; i++ {
		s = Reduce(s, AddToCartAction(catalog[(i*7)%len(catalog)]))

		seen := map[string]bool{}
		for _, item := range s.Cart {
			require.False(t, seen[item.ID], "duplicate %s after %d adds", item.ID, i+1)
			seen[item.ID] = true
			require.GreaterOrEqual(t, item.Quantity, 1)
		}
	}
	assert.Equal(t, 50, s.CartCount())
}

func TestReduce_RemoveFromCart(t *testing.T) {
	s := apply(AddToCartAction(ruby), AddToCartAction(emerald), RemoveFromCartAction("1"))

	require.Len(t, s.Cart, 1)
	assert.Equal(t, "2", s.Cart[0].ID)
}

func TestReduce_RemoveFromCart_UnknownIsNoop(t *testing.T) {
	before := apply(AddToCartAction(ruby))
	after := Reduce(before, RemoveFromCartAction("missing"))
	assert.Equal(t, before, after)
}

func TestReduce_UpdateQuantity_SetsInPlace(t *testing.T) {
	s := apply(AddToCartAction(ruby), AddToCartAction(emerald), UpdateQuantityAction("1", 5))

	require.Len(t, s.Cart, 2)
	assert.Equal(t, "1", s.Cart[0].ID)
	assert.Equal(t, 5, s.Cart[0].Quantity)
}

func TestReduce_UpdateQuantity_NonPositiveRemoves(t *testing.T) {
	base := []Action{AddToCartAction(ruby), AddToCartAction(emerald)}
	removed := apply(append(base, RemoveFromCartAction("1"))...)

	for _, q := range []int{0, -1, -100} {
		got := apply(append(append([]Action{}, base...), UpdateQuantityAction("1", q))...)
		assert.Equal(t, removed, got, "quantity %d", q)
	}
}

func TestReduce_UpdateQuantity_UnknownIsNoop(t *testing.T) {
	before := apply(AddToCartAction(ruby))
	assert.Equal(t, before, Reduce(before, UpdateQuantityAction("9", 3)))
}

func TestReduce_ClearCart_KeepsWishlistAndFlags(t *testing.T) {
	s := apply(
		AddToCartAction(ruby),
		ToggleWishlistAction(emerald),
		SetCartOpenAction(true),
		ClearCartAction(),
	)

	assert.Empty(t, s.Cart)
	assert.NotNil(t, s.Cart)
	require.Len(t, s.Wishlist, 1)
	assert.True(t, s.IsCartOpen)
	assert.True(t, s.CartTotal().IsZero())
	assert.Equal(t, 0, s.CartCount())
}

func TestReduce_ToggleWishlist_IsItsOwnInverse(t *testing.T) {
	starts := []domain.StoreState{
		apply(),
		apply(ToggleWishlistAction(emerald)),
		apply(ToggleWishlistAction(ruby), ToggleWishlistAction(sapphire)),
	}
	for _, start := range starts {
		for _, p := range []domain.Product{ruby, emerald} {
			twice := Reduce(Reduce(start, ToggleWishlistAction(p)), ToggleWishlistAction(p))
			assert.ElementsMatch(t, start.Wishlist, twice.Wishlist)
		}
	}
}

func TestReduce_ToggleWishlist_AppendsAndRemoves(t *testing.T) {
	s := apply(ToggleWishlistAction(ruby), ToggleWishlistAction(diamond))
	require.Len(t, s.Wishlist, 2)
	assert.Equal(t, "3", s.Wishlist[1].ID)

	s = Reduce(s, ToggleWishlistAction(ruby))
	require.Len(t, s.Wishlist, 1)
	assert.Equal(t, "3", s.Wishlist[0].ID)
}

func TestReduce_Flags(t *testing.T) {
	s := apply(SetCartOpenAction(true), SetCartOpenAction(true))
	assert.True(t, s.IsCartOpen)

	s = Reduce(s, SetCheckoutOpenAction(true))
	assert.True(t, s.IsCartOpen, "setters do not couple the flags")
	assert.True(t, s.IsCheckoutOpen)

	s = Reduce(s, SetCheckoutOpenAction(false))
	assert.False(t, s.IsCheckoutOpen)
}

func TestReduce_ProceedToCheckout(t *testing.T) {
	s := apply(SetCartOpenAction(true), ProceedToCheckoutAction())
	assert.False(t, s.IsCartOpen)
	assert.True(t, s.IsCheckoutOpen)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	before := apply(AddToCartAction(ruby), AddToCartAction(emerald), ToggleWishlistAction(diamond))
	snapshot := before.Clone()

	for _, a := range []Action{
		AddToCartAction(ruby),
		RemoveFromCartAction("1"),
		UpdateQuantityAction("2", 9),
		UpdateQuantityAction("2", 0),
		ClearCartAction(),
		ToggleWishlistAction(diamond),
		ProceedToCheckoutAction(),
	} {
		_ = Reduce(before, a)
		require.Equal(t, snapshot, before, "action %s mutated its input", a.Type)
	}
}

func TestReduce_UnknownActionIsNoop(t *testing.T) {
	before := apply(AddToCartAction(ruby))
	assert.Equal(t, before, Reduce(before, Action{Type: "SOMETHING_ELSE"}))
}

func TestReduce_DerivedValuesHoldAfterEveryMutation(t *testing.T) {
	actions := []Action{
		AddToCartAction(ruby),
		AddToCartAction(emerald),
		AddToCartAction(ruby),
		UpdateQuantityAction("2", 4),
		AddToCartAction(sapphire),
		RemoveFromCartAction("1"),
		UpdateQuantityAction("4", -1),
		AddToCartAction(diamond),
		ClearCartAction(),
		AddToCartAction(diamond),
	}

	s := domain.NewStoreState()
	for _, a := range actions {
		s = Reduce(s, a)
		total, count := expectedTotal(s)
		assert.True(t, total.Equal(s.CartTotal()), "total after %s", a.Type)
		assert.Equal(t, count, s.CartCount(), "count after %s", a.Type)
	}
}
