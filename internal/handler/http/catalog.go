package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Pronoysaha90/AuraAntique/internal/service"
	"github.com/Pronoysaha90/AuraAntique/pkg/httputil"
	"github.com/Pronoysaha90/AuraAntique/pkg/pagination"
)

// CatalogHandler serves the read-only catalog.
type CatalogHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.StorefrontService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{service: svc, logger: logger}
}

// ListProducts handles GET /api/v1/catalog/products[?category=&page=&per_page=]
// Totals are reported in the X-Total-Count and X-Total-Pages headers.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.service.Products(r.URL.Query().Get("category"))
	params := pagination.FromRequest(r)

	pagination.SetHeaders(w, len(products), params)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pagination.Window(products, params)})
}

// GetProduct handles GET /api/v1/catalog/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Product(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
}

// ListCategories handles GET /api/v1/catalog/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Catalog().Categories()})
}

// ListTestimonials handles GET /api/v1/catalog/testimonials
func (h *CatalogHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Catalog().Testimonials()})
}

// ListStats handles GET /api/v1/catalog/stats
func (h *CatalogHandler) ListStats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Catalog().Stats()})
}
