package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Pronoysaha90/AuraAntique/internal/checkout"
	"github.com/Pronoysaha90/AuraAntique/internal/domain"
	"github.com/Pronoysaha90/AuraAntique/internal/notify"
	"github.com/Pronoysaha90/AuraAntique/internal/service"
	"github.com/Pronoysaha90/AuraAntique/internal/session"
	apperrors "github.com/Pronoysaha90/AuraAntique/pkg/errors"
	"github.com/Pronoysaha90/AuraAntique/pkg/httputil"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("page.html").Funcs(template.FuncMap{
		"money": money,
		"stars": stars,
	}).ParseFS(templateFS, "templates/page.html"),
)

// checkoutSections groups the checkout fields the way the form lays them out.
var checkoutSections = []struct {
	Title  string
	Fields []fieldSpec
}{
	{"Personal Information", []fieldSpec{
		{domain.FieldFirstName, "First Name", "text", "John"},
		{domain.FieldLastName, "Last Name", "text", "Doe"},
		{domain.FieldEmail, "Email", "email", "john@example.com"},
	}},
	{"Shipping Address", []fieldSpec{
		{domain.FieldAddress, "Address", "text", "123 Main Street"},
		{domain.FieldCity, "City", "text", "New York"},
		{domain.FieldZipCode, "Zip Code", "text", "10001"},
	}},
	{"Payment Details", []fieldSpec{
		{domain.FieldCardNumber, "Card Number", "text", "1234 5678 9012 3456"},
		{domain.FieldExpiryDate, "Expiry Date", "text", "MM/YY"},
		{domain.FieldCVV, "CVV", "text", "123"},
	}},
}

type fieldSpec struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
}

type fieldView struct {
	fieldSpec
	Value string
	Error string
}

type sectionView struct {
	Title  string
	Fields []fieldView
}

type productCard struct {
	domain.Product
	InWishlist bool
	InCart     bool
	WasPrice   string
}

type pageData struct {
	Nav          []domain.NavLink
	Categories   []domain.Category
	Products     []productCard
	Stats        []domain.Stat
	Testimonials []domain.Testimonial
	Store        service.StoreView
	Checkout     checkout.View
	Sections     []sectionView
	Toasts       []notify.Toast
}

// PageHandler renders the storefront page and accepts its HTML form posts.
// Every form post redirects back to the page with 303 See Other.
type PageHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(svc *service.StorefrontService, logger *slog.Logger) *PageHandler {
	return &PageHandler{service: svc, logger: logger}
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	cat := h.service.Catalog()

	view := h.service.Store(ctx, sess)
	data := pageData{
		Nav:          cat.NavLinks(),
		Categories:   cat.Categories(),
		Stats:        cat.Stats(),
		Testimonials: cat.Testimonials(),
		Store:        view,
		Checkout:     h.service.Checkout(ctx, sess),
		Toasts:       h.service.Toasts(ctx, sess),
	}
	for _, p := range cat.Featured() {
		card := productCard{
			Product:    p,
			InWishlist: view.FindWishlistEntry(p.ID) >= 0,
			InCart:     view.FindCartItem(p.ID) >= 0,
		}
		if p.OriginalPrice != nil {
			card.WasPrice = money(*p.OriginalPrice)
		}
		data.Products = append(data.Products, card)
	}
	data.Sections = sections(data.Checkout)

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		httputil.WriteError(w, r, apperrors.Internal(err), h.logger)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// AddToCart handles POST /ui/cart/add
func (h *PageHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, func(sess *session.Session) error {
		_, err := h.service.AddToCart(r.Context(), sess, r.PostFormValue("productId"))
		return err
	})
}

// UpdateQuantity handles POST /ui/cart/update
func (h *PageHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, func(sess *session.Session) error {
		q, err := strconv.Atoi(r.PostFormValue("quantity"))
		if err != nil {
			return apperrors.InvalidInput("quantity must be a whole number")
		}
		h.service.UpdateQuantity(r.Context(), sess, r.PostFormValue("productId"), q)
		return nil
	})
}

// RemoveFromCart handles POST /ui/cart/remove
func (h *PageHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, func(sess *session.Session) error {
		h.service.RemoveFromCart(r.Context(), sess, r.PostFormValue("productId"))
		return nil
	})
}

// ClearCart handles POST /ui/cart/clear
func (h *PageHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, func(sess *session.Session) error {
		h.service.ClearCart(r.Context(), sess)
		return nil
	})
}

// SetCartOpen handles POST /ui/cart/open
func (h *PageHandler) SetCartOpen(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, func(sess *session.Session) error {
		open, err := strconv.ParseBool(r.PostFormValue("open"))
		if err != nil {
			return apperrors.InvalidInput("open must be true or false")
		}
		h.service.SetCartOpen(r.Context(), sess, open)
		return nil
	})
}

// ToggleWishlist handles POST /ui/wishlist/toggle
func (h *PageHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, func(sess *session.Session) error {
		_, _, err := h.service.ToggleWishlist(r.Context(), sess, r.PostFormValue("productId"))
		return err
	})
}

// ProceedToCheckout handles POST /ui/checkout/proceed
func (h *PageHandler) ProceedToCheckout(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, func(sess *session.Session) error {
		h.service.ProceedToCheckout(r.Context(), sess)
		return nil
	})
}

// SubmitCheckout handles POST /ui/checkout/submit. Field errors are kept on
// the session and shown when the page is rendered again.
func (h *PageHandler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, func(sess *session.Session) error {
		var form domain.CheckoutFormData
		for _, name := range domain.CheckoutFields {
			form.Set(name, r.PostFormValue(name))
		}
		_, err := h.service.SubmitCheckout(r.Context(), sess, &form)
		if errors.Is(err, apperrors.ErrValidation) {
			return nil
		}
		return err
	})
}

// CloseCheckout handles POST /ui/checkout/close
func (h *PageHandler) CloseCheckout(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, func(sess *session.Session) error {
		h.service.CloseCheckout(r.Context(), sess)
		return nil
	})
}

// SubscribeNewsletter handles POST /ui/newsletter
func (h *PageHandler) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, func(sess *session.Session) error {
		err := h.service.SubscribeNewsletter(r.Context(), sess, service.NewsletterInput{Email: r.PostFormValue("email")})
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && errors.Is(err, apperrors.ErrValidation) {
			h.service.Notify(r.Context(), sess, notify.Failure(firstMessage(appErr.Fields), ""))
			return nil
		}
		return err
	})
}

// form parses the posted form, applies fn and redirects to the page.
func (h *PageHandler) form(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid form body"), h.logger)
		return
	}
	if err := fn(sess); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Internal(errors.New("no session in request context")), h.logger)
	}
	return sess, ok
}

func sections(v checkout.View) []sectionView {
	out := make([]sectionView, 0, len(checkoutSections))
	for _, s := range checkoutSections {
		sv := sectionView{Title: s.Title}
		for _, f := range s.Fields {
			value, _ := v.Fields.Get(f.Name)
			sv.Fields = append(sv.Fields, fieldView{fieldSpec: f, Value: value, Error: v.Errors[f.Name]})
		}
		out = append(out, sv)
	}
	return out
}

func firstMessage(fields map[string]string) string {
	if msg, ok := fields["email"]; ok {
		return msg
	}
	for _, msg := range fields {
		return msg
	}
	return "Invalid input"
}

// money formats an amount as dollars with thousands separators, dropping
// the cents when they are zero: 2450 -> "$2,450", 19.5 -> "$19.50".
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if frac != "00" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// stars reports, for each of five positions, whether it is filled.
func stars(rating int) []bool {
	out := make([]bool, 5)
	for i := range out {
		out[i] = i < rating
	}
	return out
}
