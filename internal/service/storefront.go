// Package service implements the storefront's shopper-facing operations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Pronoysaha90/AuraAntique/internal/catalog"
	"github.com/Pronoysaha90/AuraAntique/internal/checkout"
	"github.com/Pronoysaha90/AuraAntique/internal/domain"
	"github.com/Pronoysaha90/AuraAntique/internal/metrics"
	"github.com/Pronoysaha90/AuraAntique/internal/notify"
	"github.com/Pronoysaha90/AuraAntique/internal/session"
	apperrors "github.com/Pronoysaha90/AuraAntique/pkg/errors"
	"github.com/Pronoysaha90/AuraAntique/pkg/logger"
	"github.com/Pronoysaha90/AuraAntique/pkg/validator"
)

// Toast copy shown to shoppers.
const (
	addedToCartDescription = "View your cart to checkout"
	wishlistAddedTitle     = "Added to wishlist"
	wishlistRemovedTitle   = "Removed from wishlist"
	newsletterTitle        = "Thank you for subscribing!"
	newsletterDescription  = "You will receive updates on new collections."
)

// Events is the set of analytics events the storefront emits.
type Events interface {
	PublishCartUpdated(ctx context.Context, sessionID string, st domain.StoreState) error
	PublishWishlistToggled(ctx context.Context, sessionID, productID string, added bool) error
	PublishOrderPlaced(ctx context.Context, sessionID string, conf domain.OrderConfirmation, items []domain.CartItem) error
	PublishNewsletterSubscribed(ctx context.Context, sessionID, email string) error
}

// StoreView is a store snapshot with its derived totals.
type StoreView struct {
	domain.StoreState
	CartTotal decimal.Decimal `json:"cartTotal"`
	CartCount int             `json:"cartCount"`
}

func viewOf(st domain.StoreState) StoreView {
	return StoreView{StoreState: st, CartTotal: st.CartTotal(), CartCount: st.CartCount()}
}

// NewsletterInput is a newsletter signup.
type NewsletterInput struct {
	Email string `json:"email" validate:"required,email,max=254" errmsg:"required=Email is required; email=Invalid email address"`
}

// StorefrontService applies shopper actions to their session, raising toasts,
// metrics and events along the way.
type StorefrontService struct {
	catalog *catalog.Catalog
	events  Events
	logger  *slog.Logger
}

func NewStorefrontService(c *catalog.Catalog, events Events, logger *slog.Logger) *StorefrontService {
	return &StorefrontService{catalog: c, events: events, logger: logger}
}

// Catalog exposes the read-only catalog.
func (s *StorefrontService) Catalog() *catalog.Catalog { return s.catalog }

// Product looks up a catalog product, failing with NotFound.
func (s *StorefrontService) Product(id string) (domain.Product, error) {
	p, ok := s.catalog.Product(id)
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", id)
	}
	return p, nil
}

// Products lists the catalog, optionally narrowed to one category.
func (s *StorefrontService) Products(category string) []domain.Product {
	if category = strings.TrimSpace(category); category != "" {
		return s.catalog.ProductsByCategory(category)
	}
	return s.catalog.Products()
}

// WatchCart publishes a cart.updated event whenever a session's cart lines
// change. It is meant to be registered with session.Manager.OnCreate.
func (s *StorefrontService) WatchCart(sess *session.Session) {
	last := sess.Store.State().Cart
	sess.Store.Subscribe(func(st domain.StoreState) {
		if cartEqual(last, st.Cart) {
			return
		}
		last = st.Cart
		ctx := logger.WithSessionID(context.Background(), sess.ID)
		if err := s.events.PublishCartUpdated(ctx, sess.ID, st); err != nil {
			s.logger.Error("failed to publish cart event",
				slog.String("session_id", sess.ID),
				slog.String("error", err.Error()),
			)
		}
	})
}

func cartEqual(a, b []domain.CartItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Quantity != b[i].Quantity {
			return false
		}
	}
	return true
}

func (s *StorefrontService) log(ctx context.Context) *slog.Logger {
	if l := logger.FromContext(ctx); l != slog.Default() {
		return l
	}
	return s.logger
}

// Store returns the session's state and totals.
func (s *StorefrontService) Store(_ context.Context, sess *session.Session) StoreView {
	sess.Lock()
	defer sess.Unlock()
	return viewOf(sess.Store.State())
}

// AddToCart adds one unit of a catalog product and confirms with a toast.
func (s *StorefrontService) AddToCart(ctx context.Context, sess *session.Session, productID string) (StoreView, error) {
	p, err := s.Product(productID)
	if err != nil {
		return StoreView{}, err
	}

	sess.Lock()
	defer sess.Unlock()

	sess.Store.AddToCart(p)
	sess.Notifier.Notify(ctx, notify.Success(p.Name+" added to cart", addedToCartDescription))
	metrics.CartItemsAdded.Inc()

	s.log(ctx).InfoContext(ctx, "added to cart",
		slog.String("product_id", p.ID),
		slog.Int("cart_count", sess.Store.CartCount()),
	)
	return viewOf(sess.Store.State()), nil
}

// UpdateQuantity sets a cart line's quantity; zero or less removes the line.
func (s *StorefrontService) UpdateQuantity(ctx context.Context, sess *session.Session, productID string, quantity int) StoreView {
	sess.Lock()
	defer sess.Unlock()

	sess.Store.UpdateQuantity(productID, quantity)
	s.log(ctx).InfoContext(ctx, "updated cart quantity",
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)
	return viewOf(sess.Store.State())
}

func (s *StorefrontService) RemoveFromCart(ctx context.Context, sess *session.Session, productID string) StoreView {
	sess.Lock()
	defer sess.Unlock()

	sess.Store.RemoveFromCart(productID)
	s.log(ctx).InfoContext(ctx, "removed from cart", slog.String("product_id", productID))
	return viewOf(sess.Store.State())
}

func (s *StorefrontService) ClearCart(ctx context.Context, sess *session.Session) StoreView {
	sess.Lock()
	defer sess.Unlock()

	sess.Store.ClearCart()
	s.log(ctx).InfoContext(ctx, "cleared cart")
	return viewOf(sess.Store.State())
}

func (s *StorefrontService) SetCartOpen(_ context.Context, sess *session.Session, open bool) StoreView {
	sess.Lock()
	defer sess.Unlock()

	sess.Store.SetCartOpen(open)
	return viewOf(sess.Store.State())
}

// ToggleWishlist flips a product's wishlist membership. The toast reflects
// membership before the flip.
func (s *StorefrontService) ToggleWishlist(ctx context.Context, sess *session.Session, productID string) (StoreView, bool, error) {
	p, err := s.Product(productID)
	if err != nil {
		return StoreView{}, false, err
	}

	sess.Lock()
	defer sess.Unlock()

	wasIn := sess.Store.IsInWishlist(p.ID)
	sess.Store.ToggleWishlist(p)

	title, direction := wishlistAddedTitle, "added"
	if wasIn {
		title, direction = wishlistRemovedTitle, "removed"
	}
	sess.Notifier.Notify(ctx, notify.Success(title, p.Name))
	metrics.WishlistToggles.WithLabelValues(direction).Inc()

	if err := s.events.PublishWishlistToggled(ctx, sess.ID, p.ID, !wasIn); err != nil {
		s.log(ctx).ErrorContext(ctx, "failed to publish wishlist event", slog.String("error", err.Error()))
	}

	s.log(ctx).InfoContext(ctx, "toggled wishlist",
		slog.String("product_id", p.ID),
		slog.String("direction", direction),
	)
	return viewOf(sess.Store.State()), !wasIn, nil
}

func (s *StorefrontService) IsInWishlist(_ context.Context, sess *session.Session, productID string) bool {
	sess.Lock()
	defer sess.Unlock()
	return sess.Store.IsInWishlist(productID)
}

// ProceedToCheckout closes the cart panel and opens checkout together.
func (s *StorefrontService) ProceedToCheckout(ctx context.Context, sess *session.Session) checkout.View {
	sess.Lock()
	defer sess.Unlock()

	sess.Store.ProceedToCheckout()
	s.log(ctx).InfoContext(ctx, "proceeded to checkout", slog.Int("cart_count", sess.Store.CartCount()))
	return sess.Checkout.View()
}

func (s *StorefrontService) Checkout(_ context.Context, sess *session.Session) checkout.View {
	sess.Lock()
	defer sess.Unlock()
	return sess.Checkout.View()
}

// SetCheckoutField edits one checkout field.
func (s *StorefrontService) SetCheckoutField(_ context.Context, sess *session.Session, name, value string) (checkout.View, error) {
	sess.Lock()
	defer sess.Unlock()

	if err := sess.Checkout.SetField(name, value); err != nil {
		return checkout.View{}, err
	}
	return sess.Checkout.View(), nil
}

// SubmitCheckout validates and places the order. When form is non-nil it
// replaces the current field values first. On validation failure the returned
// view still carries the field errors alongside the 422 error.
func (s *StorefrontService) SubmitCheckout(ctx context.Context, sess *session.Session, form *domain.CheckoutFormData) (checkout.View, error) {
	sess.Lock()
	defer sess.Unlock()

	if form != nil {
		sess.Checkout.Fill(*form)
	}
	alreadyPlaced := sess.Checkout.Step() == domain.CheckoutStepSuccess
	items := sess.Store.State().Cart

	conf, err := sess.Checkout.Submit(ctx)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && errors.Is(err, apperrors.ErrValidation) {
			for field := range appErr.Fields {
				metrics.CheckoutValidationFailures.WithLabelValues(field).Inc()
			}
			s.log(ctx).InfoContext(ctx, "checkout validation failed", slog.Int("fields", len(appErr.Fields)))
		}
		return sess.Checkout.View(), err
	}
	if alreadyPlaced {
		return sess.Checkout.View(), nil
	}

	metrics.OrdersPlaced.Inc()
	if err := s.events.PublishOrderPlaced(ctx, sess.ID, *conf, items); err != nil {
		s.log(ctx).ErrorContext(ctx, "failed to publish order event", slog.String("error", err.Error()))
	}
	s.log(ctx).InfoContext(ctx, "order placed",
		slog.String("order_id", conf.OrderID),
		slog.Int("item_count", conf.ItemCount),
		slog.String("total", conf.Total.String()),
	)
	return sess.Checkout.View(), nil
}

// CloseCheckout hides checkout and discards the form.
func (s *StorefrontService) CloseCheckout(_ context.Context, sess *session.Session) checkout.View {
	sess.Lock()
	defer sess.Unlock()

	sess.Checkout.Close()
	return sess.Checkout.View()
}

// SubscribeNewsletter acknowledges a signup. Nothing is stored.
func (s *StorefrontService) SubscribeNewsletter(ctx context.Context, sess *session.Session, input NewsletterInput) error {
	input.Email = strings.TrimSpace(input.Email)
	if err := validator.Validate(input); err != nil {
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			return apperrors.Validation("newsletter validation failed", valErr.Fields())
		}
		return fmt.Errorf("validate newsletter input: %w", err)
	}

	sess.Lock()
	sess.Notifier.Notify(ctx, notify.Success(newsletterTitle, newsletterDescription))
	sess.Unlock()

	metrics.NewsletterSignups.Inc()
	if err := s.events.PublishNewsletterSubscribed(ctx, sess.ID, input.Email); err != nil {
		s.log(ctx).ErrorContext(ctx, "failed to publish newsletter event", slog.String("error", err.Error()))
	}
	s.log(ctx).InfoContext(ctx, "newsletter signup")
	return nil
}

// Notify queues a toast for the session.
func (s *StorefrontService) Notify(ctx context.Context, sess *session.Session, t notify.Toast) {
	sess.Lock()
	defer sess.Unlock()
	sess.Notifier.Notify(ctx, t)
}

// Toasts drains the session's pending toasts.
func (s *StorefrontService) Toasts(_ context.Context, sess *session.Session) []notify.Toast {
	return sess.Inbox.Drain()
}
