package domain

import "github.com/shopspring/decimal"

// CheckoutStep is the checkout modal's display state.
type CheckoutStep string

const (
	CheckoutStepForm    CheckoutStep = "form"
	CheckoutStepSuccess CheckoutStep = "success"
)

// Checkout field names as they appear in forms and error maps.
const (
	FieldFirstName  = "firstName"
	FieldLastName   = "lastName"
	FieldEmail      = "email"
	FieldAddress    = "address"
	FieldCity       = "city"
	FieldZipCode    = "zipCode"
	FieldCardNumber = "cardNumber"
	FieldExpiryDate = "expiryDate"
	FieldCVV        = "cvv"
)

// CheckoutFields lists every checkout field in form order.
var CheckoutFields = []string{
	FieldFirstName, FieldLastName, FieldEmail,
	FieldAddress, FieldCity, FieldZipCode,
	FieldCardNumber, FieldExpiryDate, FieldCVV,
}

// CheckoutFormData holds the shopper's shipping and payment input. Lengths are
// counted in characters.
type CheckoutFormData struct {
	FirstName  string `json:"firstName" validate:"min=2,max=50" errmsg:"min=First name is required; max=First name must be at most 50 characters"`
	LastName   string `json:"lastName" validate:"min=2,max=50" errmsg:"min=Last name is required; max=Last name must be at most 50 characters"`
	Email      string `json:"email" validate:"email,max=100" errmsg:"email=Invalid email address; max=Email must be at most 100 characters"`
	Address    string `json:"address" validate:"min=5,max=200" errmsg:"min=Address is required; max=Address must be at most 200 characters"`
	City       string `json:"city" validate:"min=2,max=100" errmsg:"min=City is required; max=City must be at most 100 characters"`
	ZipCode    string `json:"zipCode" validate:"min=3,max=20" errmsg:"min=Zip code is required; max=Zip code must be at most 20 characters"`
	CardNumber string `json:"cardNumber" validate:"min=16,max=19" errmsg:"min=Card number must be 16 digits; max=Card number must be at most 19 digits"`
	ExpiryDate string `json:"expiryDate" validate:"min=5" errmsg:"min=Expiry date is required"`
	CVV        string `json:"cvv" validate:"min=3,max=4" errmsg:"min=CVV is required; max=CVV must be at most 4 digits"`
}

// Get returns the value of the named field.
func (f CheckoutFormData) Get(name string) (string, bool) {
	p := f.field(name)
	if p == nil {
		return "", false
	}
	return *p, true
}

// Set assigns the named field and reports whether the name was known.
func (f *CheckoutFormData) Set(name, value string) bool {
	p := f.field(name)
	if p == nil {
		return false
	}
	*p = value
	return true
}

func (f *CheckoutFormData) field(name string) *string {
	switch name {
	case FieldFirstName:
		return &f.FirstName
	case FieldLastName:
		return &f.LastName
	case FieldEmail:
		return &f.Email
	case FieldAddress:
		return &f.Address
	case FieldCity:
		return &f.City
	case FieldZipCode:
		return &f.ZipCode
	case FieldCardNumber:
		return &f.CardNumber
	case FieldExpiryDate:
		return &f.ExpiryDate
	case FieldCVV:
		return &f.CVV
	}
	return nil
}

// OrderConfirmation summarises a placed order. It carries no
// payment details.
type OrderConfirmation struct {
	OrderID   string          `json:"orderId"`
	ItemCount int             `json:"itemCount"`
	Total     decimal.Decimal `json:"total"`
	Email     string          `json:"email"`
}
