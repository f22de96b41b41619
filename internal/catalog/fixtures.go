package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/Pronoysaha90/AuraAntique/internal/domain"
)

const assetPrefix = "/assets/"

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func pricePtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

var products = []domain.Product{
	{
		ID:            "1",
		Name:          "Victorian Ruby Pendant",
		Material:      "18K Gold • Ruby",
		Price:         price(2450),
		OriginalPrice: pricePtr(4200),
		Image:         assetPrefix + "product-ruby-pendant.jpg",
		Category:      "Necklaces",
		Rating:        5,
		IsOnSale:      true,
	},
	{
		ID:       "2",
		Name:     "Emerald Drop Earrings",
		Material: "22K Gold • Emerald",
		Price:    price(2850),
		Image:    assetPrefix + "product-emerald-earrings.jpg",
		Category: "Earrings",
		Rating:   5,
	},
	{
		ID:            "3",
		Name:          "Art Deco Diamond Ring",
		Material:      "Platinum & Gold • Diamond",
		Price:         price(1890),
		OriginalPrice: pricePtr(4800),
		Image:         assetPrefix + "product-diamond-ring.jpg",
		Category:      "Rings",
		Rating:        5,
		IsOnSale:      true,
	},
	{
		ID:       "4",
		Name:     "Sapphire Tennis Bracelet",
		Material: "18K White Gold • Sapphire",
		Price:    price(3650),
		Image:    assetPrefix + "product-sapphire-bracelet.jpg",
		Category: "Bracelets",
		Rating:   5,
	},
}

var categories = []domain.Category{
	{Name: "Necklaces", Pieces: 24, Image: assetPrefix + "category-necklaces.jpg"},
	{Name: "Earrings", Pieces: 32, Image: assetPrefix + "category-earrings.jpg"},
	{Name: "Rings", Pieces: 28, Image: assetPrefix + "category-rings.jpg"},
	{Name: "Bracelets", Pieces: 18, Image: assetPrefix + "category-bracelets.jpg"},
}

var testimonials = []domain.Testimonial{
	{
		Text:   "The Victorian pendant I purchased exceeded expectations. The craftsmanship is extraordinary, and you can truly feel the heritage in every detail.",
		Author: "Eleanor Thompson",
		Role:   "Jewelry Enthusiast",
	},
	{
		Text:   "AuraAntique has become my go-to for meaningful gifts. Each piece tells a story and the quality is simply unmatched in the market.",
		Author: "James Richardson",
		Role:   "Fashion Designer",
	},
	{
		Text:   "The attention to detail is remarkable. I've been collecting from AuraAntique for years and the quality is simply unmatched in the market.",
		Author: "Sophia Chen",
		Role:   "Art Collector",
	},
}

var stats = []domain.Stat{
	{Value: "15+", Label: "Master Artisans"},
	{Value: "500+", Label: "Unique Designs"},
	{Value: "10K+", Label: "Happy Clients"},
	{Value: "40+", Label: "Years of Excellence"},
}

var navLinks = []domain.NavLink{
	{Name: "Home", Href: "#home"},
	{Name: "Collections", Href: "#collections"},
	{Name: "Products", Href: "#products"},
	{Name: "About", Href: "#about"},
	{Name: "Contact", Href: "#contact"},
}
