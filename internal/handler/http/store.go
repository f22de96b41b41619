package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Pronoysaha90/AuraAntique/internal/domain"
	"github.com/Pronoysaha90/AuraAntique/internal/service"
	"github.com/Pronoysaha90/AuraAntique/internal/session"
	apperrors "github.com/Pronoysaha90/AuraAntique/pkg/errors"
	"github.com/Pronoysaha90/AuraAntique/pkg/httputil"
	"github.com/Pronoysaha90/AuraAntique/pkg/validator"
)

// StoreHandler handles the shopper's cart, wishlist, checkout and newsletter.
type StoreHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
}

// NewStoreHandler creates a new store HTTP handler.
func NewStoreHandler(svc *service.StorefrontService, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// ProductRequest names a catalog product.
type ProductRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// UpdateQuantityRequest sets a cart line's quantity. Zero or less removes it.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// OpenRequest opens or closes an overlay.
type OpenRequest struct {
	Open *bool `json:"open" validate:"required"`
}

// CheckoutFieldRequest edits one checkout field.
type CheckoutFieldRequest struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value"`
}

// WishlistStatus answers whether a product is wishlisted.
type WishlistStatus struct {
	ProductID  string `json:"productId"`
	InWishlist bool   `json:"inWishlist"`
}

// WishlistToggleResponse is the store after a toggle plus its direction.
type WishlistToggleResponse struct {
	Store service.StoreView `json:"store"`
	Added bool              `json:"added"`
}

// --- Handlers ---

// GetStore handles GET /api/v1/store
func (h *StoreHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, h.service.Store(r.Context(), sess))
}

// AddToCart handles POST /api/v1/store/cart/items
func (h *StoreHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	view, err := h.service.AddToCart(r.Context(), sess, req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, view)
}

// UpdateQuantity handles PUT /api/v1/store/cart/items/{id}
func (h *StoreHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	writeData(w, http.StatusOK, h.service.UpdateQuantity(r.Context(), sess, chi.URLParam(r, "id"), *req.Quantity))
}

// RemoveFromCart handles DELETE /api/v1/store/cart/items/{id}
func (h *StoreHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, h.service.RemoveFromCart(r.Context(), sess, chi.URLParam(r, "id")))
}

// ClearCart handles DELETE /api/v1/store/cart
func (h *StoreHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, h.service.ClearCart(r.Context(), sess))
}

// SetCartOpen handles PUT /api/v1/store/cart/open
func (h *StoreHandler) SetCartOpen(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req OpenRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	writeData(w, http.StatusOK, h.service.SetCartOpen(r.Context(), sess, *req.Open))
}

// ToggleWishlist handles POST /api/v1/store/wishlist/toggle
func (h *StoreHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	view, added, err := h.service.ToggleWishlist(r.Context(), sess, req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, WishlistToggleResponse{Store: view, Added: added})
}

// IsInWishlist handles GET /api/v1/store/wishlist/{id}
func (h *StoreHandler) IsInWishlist(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	writeData(w, http.StatusOK, WishlistStatus{
		ProductID:  id,
		InWishlist: h.service.IsInWishlist(r.Context(), sess, id),
	})
}

// ProceedToCheckout handles POST /api/v1/store/checkout/proceed
func (h *StoreHandler) ProceedToCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, h.service.ProceedToCheckout(r.Context(), sess))
}

// GetCheckout handles GET /api/v1/store/checkout
func (h *StoreHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, h.service.Checkout(r.Context(), sess))
}

// SetCheckoutField handles PATCH /api/v1/store/checkout/fields
func (h *StoreHandler) SetCheckoutField(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req CheckoutFieldRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	view, err := h.service.SetCheckoutField(r.Context(), sess, req.Name, req.Value)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, view)
}

// SubmitCheckout handles POST /api/v1/store/checkout/submit. An empty body
// submits the fields already entered.
func (h *StoreHandler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var form *domain.CheckoutFormData
	var req domain.CheckoutFormData
	switch err := json.NewDecoder(r.Body).Decode(&req); {
	case err == nil:
		form = &req
	case errors.Is(err, io.EOF):
	default:
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	view, err := h.service.SubmitCheckout(r.Context(), sess, form)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, view)
}

// CloseCheckout handles POST /api/v1/store/checkout/close
func (h *StoreHandler) CloseCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, h.service.CloseCheckout(r.Context(), sess))
}

// SubscribeNewsletter handles POST /api/v1/newsletter
func (h *StoreHandler) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req service.NewsletterInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := h.service.SubscribeNewsletter(r.Context(), sess, req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"status": "subscribed"})
}

// Toasts handles GET /api/v1/toasts
func (h *StoreHandler) Toasts(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, h.service.Toasts(r.Context(), sess))
}

// --- Helpers ---

func (h *StoreHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Internal(errors.New("no session in request context")), h.logger)
	}
	return sess, ok
}

func writeData(w http.ResponseWriter, status int, v any) {
	httputil.WriteJSON(w, status, httputil.Response{Data: v})
}
