package domain

import "github.com/shopspring/decimal"

// Product is an immutable catalog record.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Material      string           `json:"material"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image"`
	Category      string           `json:"category"`
	Rating        int              `json:"rating"`
	IsOnSale      bool             `json:"isOnSale,omitempty"`
}

// Discount returns how much cheaper the product is than its original price,
// or zero when it has none.
func (p Product) Discount() decimal.Decimal {
	if p.OriginalPrice == nil || !p.OriginalPrice.GreaterThan(p.Price) {
		return decimal.Zero
	}
	return p.OriginalPrice.Sub(p.Price)
}

// Category is a collection tile on the landing page.
type Category struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Pieces int    `json:"pieces"`
	Image  string `json:"image"`
}

// Testimonial is a customer quote.
type Testimonial struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	Role   string `json:"role"`
}

// Stat is a heritage highlight such as "40+ Years of Excellence".
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// NavLink is an anchor in the page navigation.
type NavLink struct {
	Name string `json:"name"`
	Href string `json:"href"`
}
