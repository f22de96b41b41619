package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(id string, price int64, qty int) CartItem {
	return CartItem{Product: Product{ID: id, Price: decimal.NewFromInt(price)}, Quantity: qty}
}

// ============================================================================
// StoreState derived values
// ============================================================================

func TestCartTotal_MultipleItems(t *testing.T) {
	s := StoreState{Cart: []CartItem{item("1", 2450, 2), item("3", 1890, 1)}}
	// 4900 + 1890
	assert.True(t, decimal.NewFromInt(6790).Equal(s.CartTotal()))
}

func TestCartTotal_FractionalPrices(t *testing.T) {
	s := StoreState{Cart: []CartItem{
		{Product: Product{ID: "a", Price: decimal.RequireFromString("0.10")}, Quantity: 3},
	}}
	assert.Equal(t, "0.3", s.CartTotal().String())
}

func TestCartTotal_Empty(t *testing.T) {
	assert.True(t, NewStoreState().CartTotal().IsZero())
	assert.True(t, StoreState{}.CartTotal().IsZero())
}

func TestCartCount(t *testing.T) {
	s := StoreState{Cart: []CartItem{item("1", 10, 2), item("2", 10, 3)}}
	assert.Equal(t, 5, s.CartCount())
	assert.Equal(t, 0, NewStoreState().CartCount())
}

func TestFindCartItem(t *testing.T) {
	s := StoreState{Cart: []CartItem{item("1", 10, 1), item("2", 10, 1)}}
	assert.Equal(t, 1, s.FindCartItem("2"))
	assert.Equal(t, -1, s.FindCartItem("9"))
}

func TestFindWishlistEntry(t *testing.T) {
	s := StoreState{Wishlist: []Product{{ID: "4"}}}
	assert.Equal(t, 0, s.FindWishlistEntry("4"))
	assert.Equal(t, -1, s.FindWishlistEntry("1"))
}

func TestClone_DoesNotShareSlices(t *testing.T) {
	s := StoreState{Cart: []CartItem{item("1", 10, 1)}, Wishlist: []Product{{ID: "2"}}, IsCartOpen: true}
	c := s.Clone()

	c.Cart[0].Quantity = 7
	c.Wishlist[0].ID = "x"

	assert.Equal(t, 1, s.Cart[0].Quantity)
	assert.Equal(t, "2", s.Wishlist[0].ID)
	assert.True(t, c.IsCartOpen)
}

func TestProductDiscount(t *testing.T) {
	orig := decimal.NewFromInt(4200)
	p := Product{Price: decimal.NewFromInt(2450), OriginalPrice: &orig}
	assert.True(t, decimal.NewFromInt(1750).Equal(p.Discount()))

	assert.True(t, Product{Price: decimal.NewFromInt(10)}.Discount().IsZero())
}
