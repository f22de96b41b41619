// Package event publishes storefront analytics events.
package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Pronoysaha90/AuraAntique/internal/domain"
	"github.com/Pronoysaha90/AuraAntique/internal/metrics"
	pkgkafka "github.com/Pronoysaha90/AuraAntique/pkg/kafka"
	"github.com/Pronoysaha90/AuraAntique/pkg/logger"
)

const (
	TopicCartUpdated          = "storefront.cart.updated"
	TopicWishlistToggled      = "storefront.wishlist.toggled"
	TopicOrderPlaced          = "storefront.order.placed"
	TopicNewsletterSubscribed = "storefront.newsletter.subscribed"
)

const (
	SubjectSession   = "session"
	SourceStorefront = "storefront"
)

// Publisher writes one event to a topic. *pkgkafka.Producer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, e *pkgkafka.Event) error
}

// NoopPublisher discards events. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, *pkgkafka.Event) error { return nil }

// LineData is one cart line within an event.
type LineData struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type CartUpdatedData struct {
	SessionID string          `json:"session_id"`
	Items     []LineData      `json:"items"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

type WishlistToggledData struct {
	SessionID string `json:"session_id"`
	ProductID string `json:"product_id"`
	Added     bool   `json:"added"`
}

// OrderPlacedData describes a placed order. Shipping and payment fields are
// never included.
type OrderPlacedData struct {
	SessionID string          `json:"session_id"`
	OrderID   string          `json:"order_id"`
	Items     []LineData      `json:"items"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

type NewsletterSubscribedData struct {
	Email string `json:"email"`
}

// Producer turns storefront changes into events.
type Producer struct {
	publisher Publisher
	logger    *slog.Logger
}

func NewProducer(publisher Publisher, logger *slog.Logger) *Producer {
	return &Producer{publisher: publisher, logger: logger}
}

func lines(items []domain.CartItem) []LineData {
	out := make([]LineData, len(items))
	for i, item := range items {
		out[i] = LineData{ProductID: item.ID, Name: item.Name, Price: item.Price, Quantity: item.Quantity}
	}
	return out
}

func (p *Producer) PublishCartUpdated(ctx context.Context, sessionID string, st domain.StoreState) error {
	return p.publish(ctx, TopicCartUpdated, sessionID, CartUpdatedData{
		SessionID: sessionID,
		Items:     lines(st.Cart),
		ItemCount: st.CartCount(),
		Total:     st.CartTotal(),
	})
}

func (p *Producer) PublishWishlistToggled(ctx context.Context, sessionID, productID string, added bool) error {
	return p.publish(ctx, TopicWishlistToggled, sessionID, WishlistToggledData{
		SessionID: sessionID,
		ProductID: productID,
		Added:     added,
	})
}

func (p *Producer) PublishOrderPlaced(ctx context.Context, sessionID string, conf domain.OrderConfirmation, items []domain.CartItem) error {
	return p.publish(ctx, TopicOrderPlaced, sessionID, OrderPlacedData{
		SessionID: sessionID,
		OrderID:   conf.OrderID,
		Items:     lines(items),
		ItemCount: conf.ItemCount,
		Total:     conf.Total,
	})
}

func (p *Producer) PublishNewsletterSubscribed(ctx context.Context, sessionID, email string) error {
	return p.publish(ctx, TopicNewsletterSubscribed, sessionID, NewsletterSubscribedData{Email: email})
}

func (p *Producer) publish(ctx context.Context, topic, sessionID string, data any) error {
	e, err := pkgkafka.NewEvent(topic, SourceStorefront, pkgkafka.Subject{ID: sessionID, Kind: SubjectSession}, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		e.WithCorrelationID(id)
	}

	if err := p.publisher.Publish(ctx, topic, e); err != nil {
		status := "error"
		if errors.Is(err, ErrBreakerOpen) {
			status = "breaker_open"
		}
		metrics.EventsPublished.WithLabelValues(topic, status).Inc()
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	metrics.EventsPublished.WithLabelValues(topic, "ok").Inc()
	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("session_id", sessionID),
	)
	return nil
}
