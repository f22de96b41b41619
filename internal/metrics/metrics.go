// Package metrics defines the storefront's business metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartItemsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "cart_items_added_total",
		Help:      "Products added to carts.",
	})

	WishlistToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "wishlist_toggles_total",
		Help:      "Wishlist toggles by direction.",
	}, []string{"direction"})

	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "orders_placed_total",
		Help:      "Checkouts that passed validation.",
	})

	CheckoutValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "checkout_validation_failures_total",
		Help:      "Checkout field validation failures by field.",
	}, []string{"field"})

	NewsletterSignups = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "newsletter_signups_total",
		Help:      "Accepted newsletter signups.",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "storefront",
		Name:      "active_sessions",
		Help:      "Shopper sessions currently held in memory.",
	})

	SessionsEvicted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "sessions_evicted_total",
		Help:      "Sessions dropped from memory by reason.",
	}, []string{"reason"})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "events_published_total",
		Help:      "Storefront events by topic and outcome.",
	}, []string{"topic", "status"})

	EventBreakerState = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "storefront",
		Name:      "event_breaker_state",
		Help:      "Event publisher circuit breaker state (0=closed, 1=half-open, 2=open).",
	})
)
