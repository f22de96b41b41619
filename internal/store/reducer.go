// Package store holds a shopper's cart, wishlist and overlay flags and applies
// every change through a pure reducer.
package store

import "github.com/Pronoysaha90/AuraAntique/internal/domain"

// ActionType names a state transition.
type ActionType string

const (
	ActionAddToCart         ActionType = "ADD_TO_CART"
	ActionRemoveFromCart    ActionType = "REMOVE_FROM_CART"
	ActionUpdateQuantity    ActionType = "UPDATE_QUANTITY"
	ActionClearCart         ActionType = "CLEAR_CART"
	ActionToggleWishlist    ActionType = "TOGGLE_WISHLIST"
	ActionSetCartOpen       ActionType = "SET_CART_OPEN"
	ActionSetCheckoutOpen   ActionType = "SET_CHECKOUT_OPEN"
	ActionProceedToCheckout ActionType = "PROCEED_TO_CHECKOUT"
)

// Action is a transition request. Only the fields relevant to Type are read.
type Action struct {
	Type      ActionType
	Product   domain.Product
	ProductID string
	Quantity  int
	Open      bool
}

func AddToCartAction(p domain.Product) Action {
	return Action{Type: ActionAddToCart, Product: p}
}

func RemoveFromCartAction(id string) Action {
	return Action{Type: ActionRemoveFromCart, ProductID: id}
}

func UpdateQuantityAction(id string, quantity int) Action {
	return Action{Type: ActionUpdateQuantity, ProductID: id, Quantity: quantity}
}

func ClearCartAction() Action { return Action{Type: ActionClearCart} }

func ToggleWishlistAction(p domain.Product) Action {
	return Action{Type: ActionToggleWishlist, Product: p}
}

func SetCartOpenAction(open bool) Action {
	return Action{Type: ActionSetCartOpen, Open: open}
}

func SetCheckoutOpenAction(open bool) Action {
	return Action{Type: ActionSetCheckoutOpen, Open: open}
}

func ProceedToCheckoutAction() Action { return Action{Type: ActionProceedToCheckout} }

// Reduce returns the state that results from applying a to state. The input
// is never modified. Unknown action types and unknown product IDs leave the
// state as it was.
func Reduce(state domain.StoreState, a Action) domain.StoreState {
	next := state.Clone()

	switch a.Type {
	case ActionAddToCart:
		if i := next.FindCartItem(a.Product.ID); i >= 0 {
			next.Cart[i].Quantity++
		} else {
			next.Cart = append(next.Cart, domain.CartItem{Product: a.Product, Quantity: 1})
		}

	case ActionRemoveFromCart:
		next.Cart = removeCartItem(next.Cart, a.ProductID)

	case ActionUpdateQuantity:
		if a.Quantity <= 0 {
			next.Cart = removeCartItem(next.Cart, a.ProductID)
			break
		}
		if i := next.FindCartItem(a.ProductID); i >= 0 {
			next.Cart[i].Quantity = a.Quantity
		}

	case ActionClearCart:
		next.Cart = []domain.CartItem{}

	case ActionToggleWishlist:
		if i := next.FindWishlistEntry(a.Product.ID); i >= 0 {
			next.Wishlist = append(next.Wishlist[:i], next.Wishlist[i+1:]...)
		} else {
			next.Wishlist = append(next.Wishlist, a.Product)
		}

	case ActionSetCartOpen:
		next.IsCartOpen = a.Open

	case ActionSetCheckoutOpen:
		next.IsCheckoutOpen = a.Open

	case ActionProceedToCheckout:
		next.IsCartOpen = false
		next.IsCheckoutOpen = true
	}

	return next
}

func removeCartItem(cart []domain.CartItem, id string) []domain.CartItem {
	out := cart[:0]
	for _, item := range cart {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}
