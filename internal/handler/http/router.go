package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Pronoysaha90/AuraAntique/internal/service"
	"github.com/Pronoysaha90/AuraAntique/internal/session"
	"github.com/Pronoysaha90/AuraAntique/pkg/health"
	"github.com/Pronoysaha90/AuraAntique/pkg/middleware"
)

// RouterConfig carries the HTTP-facing settings.
type RouterConfig struct {
	Session        SessionConfig
	CORS           middleware.CORSConfig
	RateLimitRPS   float64
	RateLimitBurst int

	// Per-IP budget for starting new sessions.
	SessionCreateRPS   float64
	SessionCreateBurst int
}

// NewRouter creates a chi router with all storefront routes registered. ctx
// bounds the rate limiter's background sweeper.
func NewRouter(
	ctx context.Context,
	svc *service.StorefrontService,
	sessions *session.Manager,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger, sessionCookieID))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(svc, logger)
	storeHandler := NewStoreHandler(svc, logger)
	pageHandler := NewPageHandler(svc, logger)

	limit := middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	createLimit := middleware.RateLimit(ctx, cfg.SessionCreateRPS, cfg.SessionCreateBurst, logger)
	withSession := Sessions(sessions, cfg.Session, createLimit, logger)

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/testimonials", catalogHandler.ListTestimonials)
		r.Get("/stats", catalogHandler.ListStats)
	})

	r.Group(func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(withSession)

		r.Get("/api/v1/store", storeHandler.GetStore)
		r.Get("/api/v1/store/wishlist/{id}", storeHandler.IsInWishlist)
		r.Get("/api/v1/store/checkout", storeHandler.GetCheckout)
		r.Get("/api/v1/toasts", storeHandler.Toasts)

		r.Group(func(r chi.Router) {
			r.Use(limit)

			r.Post("/api/v1/store/cart/items", storeHandler.AddToCart)
			r.Put("/api/v1/store/cart/items/{id}", storeHandler.UpdateQuantity)
			r.Delete("/api/v1/store/cart/items/{id}", storeHandler.RemoveFromCart)
			r.Delete("/api/v1/store/cart", storeHandler.ClearCart)
			r.Put("/api/v1/store/cart/open", storeHandler.SetCartOpen)
			r.Post("/api/v1/store/wishlist/toggle", storeHandler.ToggleWishlist)
			r.Post("/api/v1/store/checkout/proceed", storeHandler.ProceedToCheckout)
			r.Patch("/api/v1/store/checkout/fields", storeHandler.SetCheckoutField)
			r.Post("/api/v1/store/checkout/submit", storeHandler.SubmitCheckout)
			r.Post("/api/v1/store/checkout/close", storeHandler.CloseCheckout)
			r.Post("/api/v1/newsletter", storeHandler.SubscribeNewsletter)
		})
	})

	// Server-rendered page and its HTML form fallbacks.
	r.Group(func(r chi.Router) {
		r.Use(withSession)

		r.Get("/", pageHandler.Index)

		r.Route("/ui", func(r chi.Router) {
			r.Use(limit)

			r.Post("/cart/add", pageHandler.AddToCart)
			r.Post("/cart/update", pageHandler.UpdateQuantity)
			r.Post("/cart/remove", pageHandler.RemoveFromCart)
			r.Post("/cart/clear", pageHandler.ClearCart)
			r.Post("/cart/open", pageHandler.SetCartOpen)
			r.Post("/wishlist/toggle", pageHandler.ToggleWishlist)
			r.Post("/checkout/proceed", pageHandler.ProceedToCheckout)
			r.Post("/checkout/submit", pageHandler.SubmitCheckout)
			r.Post("/checkout/close", pageHandler.CloseCheckout)
			r.Post("/newsletter", pageHandler.SubscribeNewsletter)
		})
	})

	return r
}
