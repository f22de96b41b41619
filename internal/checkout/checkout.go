// Package checkout runs the checkout modal: field editing, validation and the
// form to success transition.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pronoysaha90/AuraAntique/internal/domain"
	"github.com/Pronoysaha90/AuraAntique/internal/notify"
	"github.com/Pronoysaha90/AuraAntique/internal/store"
	apperrors "github.com/Pronoysaha90/AuraAntique/pkg/errors"
	"github.com/Pronoysaha90/AuraAntique/pkg/validator"
)

const (
	orderPlacedTitle = "Order placed successfully!"
	validationFailed = "checkout validation failed"
)

// View is what the checkout modal renders.
type View struct {
	Open         bool                      `json:"open"`
	Step         domain.CheckoutStep       `json:"step"`
	Fields       domain.CheckoutFormData   `json:"fields"`
	Errors       map[string]string         `json:"errors"`
	Items        []domain.CartItem         `json:"items"`
	Total        decimal.Decimal           `json:"total"`
	ItemCount    int                       `json:"itemCount"`
	Confirmation *domain.OrderConfirmation `json:"confirmation,omitempty"`
}

// Checkout holds one shopper's checkout form. It is not safe for concurrent
// use; the owning session serializes access.
type Checkout struct {
	store        *store.Store
	notifier     notify.Notifier
	step         domain.CheckoutStep
	form         domain.CheckoutFormData
	errors       map[string]string
	confirmation *domain.OrderConfirmation
}

// New returns a checkout in the form step bound to s. Toasts go to n.
func New(s *store.Store, n notify.Notifier) *Checkout {
	return &Checkout{
		store:    s,
		notifier: n,
		step:     domain.CheckoutStepForm,
		errors:   make(map[string]string),
	}
}

func (c *Checkout) Step() domain.CheckoutStep { return c.step }

func (c *Checkout) Form() domain.CheckoutFormData { return c.form }

// Errors returns a copy of the current per-field messages.
func (c *Checkout) Errors() map[string]string {
	out := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// View snapshots the modal together with the cart it is checking out.
func (c *Checkout) View() View {
	st := c.store.State()
	return View{
		Open:         st.IsCheckoutOpen,
		Step:         c.step,
		Fields:       c.form,
		Errors:       c.Errors(),
		Items:        st.Cart,
		Total:        st.CartTotal(),
		ItemCount:    st.CartCount(),
		Confirmation: c.confirmation,
	}
}

// SetField stores value and clears any error shown for that field without
// re-validating.
func (c *Checkout) SetField(name, value string) error {
	if !c.form.Set(name, value) {
		return apperrors.InvalidInput(fmt.Sprintf("unknown checkout field %q", name))
	}
	delete(c.errors, name)
	return nil
}

// Fill replaces every field at once, clearing errors on fields whose value
// changed.
func (c *Checkout) Fill(form domain.CheckoutFormData) {
	for _, name := range domain.CheckoutFields {
		prev, _ := c.form.Get(name)
		next, _ := form.Get(name)
		if prev != next {
			delete(c.errors, name)
		}
	}
	c.form = form
}

// Submit validates all fields. On failure the errors are kept for display and
// a 422 AppError carrying them is returned; the cart is untouched. On success
// the step moves to success, the cart is cleared and a toast is sent. The
// confirmation is computed from the cart before it is cleared.
//
// Submitting again while in the success step returns the same confirmation.
func (c *Checkout) Submit(ctx context.Context) (*domain.OrderConfirmation, error) {
	if c.step == domain.CheckoutStepSuccess && c.confirmation != nil {
		return c.confirmation, nil
	}

	fields, err := Validate(c.form)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(fields) > 0 {
		c.errors = fields
		return nil, apperrors.Validation(validationFailed, c.Errors())
	}

	st := c.store.State()
	conf := &domain.OrderConfirmation{
		OrderID:   uuid.NewString(),
		ItemCount: st.CartCount(),
		Total:     st.CartTotal(),
		Email:     c.form.Email,
	}

	c.errors = make(map[string]string)
	c.step = domain.CheckoutStepSuccess
	c.confirmation = conf
	c.store.ClearCart()
	c.notifier.Notify(ctx, notify.Success(orderPlacedTitle, ""))

	return conf, nil
}

// Close hides the modal and resets the form for the next open.
func (c *Checkout) Close() {
	c.store.SetCheckoutOpen(false)
	c.step = domain.CheckoutStepForm
	c.form = domain.CheckoutFormData{}
	c.errors = make(map[string]string)
	c.confirmation = nil
}

// Validate checks every field and returns the first failed rule's message per
// field. An empty map means the form is valid.
func Validate(form domain.CheckoutFormData) (map[string]string, error) {
	err := validator.Validate(form)
	if err == nil {
		return map[string]string{}, nil
	}
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Fields(), nil
	}
	return nil, fmt.Errorf("validate checkout form: %w", err)
}
