package domain

import "github.com/shopspring/decimal"

// CartItem is a product line in the cart. Quantity is always at least 1.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal returns price times quantity for the line.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// StoreState is everything a shopper's session holds between requests.
type StoreState struct {
	Cart           []CartItem `json:"cart"`
	Wishlist       []Product  `json:"wishlist"`
	IsCartOpen     bool       `json:"isCartOpen"`
	IsCheckoutOpen bool       `json:"isCheckoutOpen"`
}

// NewStoreState returns the empty initial state.
func NewStoreState() StoreState {
	return StoreState{
		Cart:     []CartItem{},
		Wishlist: []Product{},
	}
}

// CartTotal is the sum of price times quantity over the cart.
func (s StoreState) CartTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Cart {
		total = total.Add(item.Subtotal())
	}
	return total
}

// CartCount is the sum of quantities over the cart.
func (s StoreState) CartCount() int {
	var count int
	for _, item := range s.Cart {
		count += item.Quantity
	}
	return count
}

// FindCartItem returns the index of the cart line for productID, or -1.
func (s StoreState) FindCartItem(productID string) int {
	for i := range s.Cart {
		if s.Cart[i].ID == productID {
			return i
		}
	}
	return -1
}

// FindWishlistEntry returns the index of productID in the wishlist, or -1.
func (s StoreState) FindWishlistEntry(productID string) int {
	for i := range s.Wishlist {
		if s.Wishlist[i].ID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no slices with s. Products are treated as
// immutable, so their OriginalPrice pointers are shared.
func (s StoreState) Clone() StoreState {
	out := s
	out.Cart = append(make([]CartItem, 0, len(s.Cart)), s.Cart...)
	out.Wishlist = append(make([]Product, 0, len(s.Wishlist)), s.Wishlist...)
	return out
}
