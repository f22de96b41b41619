// Package catalog serves the storefront's fixed product and marketing data.
package catalog

import (
	"context"
	"errors"

	"github.com/Pronoysaha90/AuraAntique/internal/domain"
	"github.com/Pronoysaha90/AuraAntique/pkg/slug"
)

// Catalog is a read-only view over fixture data. Every accessor returns a
// fresh slice, so callers may modify results freely.
type Catalog struct {
	products     []domain.Product
	byID         map[string]int
	categories   []domain.Category
	testimonials []domain.Testimonial
	stats        []domain.Stat
	nav          []domain.NavLink
}

// Default returns the AuraAntique catalog.
func Default() *Catalog {
	return New(products, categories, testimonials, stats, navLinks)
}

// New builds a catalog over the given data. Later duplicates of a product ID
// are ignored, and categories without a slug get one from their name.
func New(
	products []domain.Product,
	categories []domain.Category,
	testimonials []domain.Testimonial,
	stats []domain.Stat,
	nav []domain.NavLink,
) *Catalog {
	c := &Catalog{
		byID:         make(map[string]int, len(products)),
		categories:   clone(categories),
		testimonials: clone(testimonials),
		stats:        clone(stats),
		nav:          clone(nav),
	}
	for i := range c.categories {
		if c.categories[i].Slug == "" {
			c.categories[i].Slug = slug.Generate(c.categories[i].Name)
		}
	}
	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

// Products returns all products in catalog order.
func (c *Catalog) Products() []domain.Product {
	return clone(c.products)
}

// Product looks up a product by ID.
func (c *Catalog) Product(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// ProductsByCategory returns products whose category matches name or its
// slug, ignoring case.
func (c *Catalog) ProductsByCategory(name string) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range c.products {
		if slug.Match(p.Category, name) {
			out = append(out, p)
		}
	}
	return out
}

// Featured returns the landing page's featured grid, which is the whole range.
func (c *Catalog) Featured() []domain.Product {
	return c.Products()
}

// OnSale returns products flagged as on sale.
func (c *Catalog) OnSale() []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range c.products {
		if p.IsOnSale {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Categories() []domain.Category {
	return clone(c.categories)
}

func (c *Catalog) Testimonials() []domain.Testimonial {
	return clone(c.testimonials)
}

func (c *Catalog) Stats() []domain.Stat {
	return clone(c.stats)
}

func (c *Catalog) NavLinks() []domain.NavLink {
	return clone(c.nav)
}

// Check reports an error when the catalog has nothing to sell. It is used as
// a readiness probe.
func (c *Catalog) Check(_ context.Context) error {
	if len(c.products) == 0 {
		return errors.New("catalog has no products")
	}
	return nil
}

func clone[T any](in []T) []T {
	return append(make([]T, 0, len(in)), in...)
}
