package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pronoysaha90/AuraAntique/internal/domain"
	"github.com/Pronoysaha90/AuraAntique/internal/metrics"
	pkgkafka "github.com/Pronoysaha90/AuraAntique/pkg/kafka"
	"github.com/Pronoysaha90/AuraAntique/pkg/logger"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, e *pkgkafka.Event) error {
	args := m.Called(ctx, topic, e)
	return args.Error(0)
}

func sampleState() domain.StoreState {
	return domain.StoreState{Cart: []domain.CartItem{
		{Product: domain.Product{ID: "1", Name: "Victorian Ruby Pendant", Price: decimal.NewFromInt(2450)}, Quantity: 2},
	}}
}

func TestProducer_PublishCartUpdated(t *testing.T) {
	pub := new(mockPublisher)
	var got *pkgkafka.Event
	pub.On("Publish", mock.Anything, TopicCartUpdated, mock.AnythingOfType("*kafka.Event")).
		Run(func(args mock.Arguments) { got = args.Get(2).(*pkgkafka.Event) }).
		Return(nil)

	before := testutil.ToFloat64(metrics.EventsPublished.WithLabelValues(TopicCartUpdated, "ok"))
	ctx := logger.WithCorrelationID(context.Background(), "corr-1")

	err := NewProducer(pub, logger.Discard()).PublishCartUpdated(ctx, "sess-1", sampleState())
	require.NoError(t, err)
	pub.AssertExpectations(t)

	require.NotNil(t, got)
	assert.Equal(t, "sess-1", got.Subject.ID)
	assert.Equal(t, SubjectSession, got.Subject.Kind)
	assert.Equal(t, SourceStorefront, got.Source)
	assert.Equal(t, "corr-1", got.CorrelationID)

	var data CartUpdatedData
	require.NoError(t, got.Decode(&data))
	assert.Equal(t, 2, data.ItemCount)
	assert.True(t, decimal.NewFromInt(4900).Equal(data.Total))
	require.Len(t, data.Items, 1)
	assert.Equal(t, "1", data.Items[0].ProductID)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.EventsPublished.WithLabelValues(TopicCartUpdated, "ok")))
}

func TestProducer_PublishOrderPlaced_OmitsFormData(t *testing.T) {
	pub := new(mockPublisher)
	var got *pkgkafka.Event
	pub.On("Publish", mock.Anything, TopicOrderPlaced, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(2).(*pkgkafka.Event) }).
		Return(nil)

	conf := domain.OrderConfirmation{OrderID: "ord-1", ItemCount: 2, Total: decimal.NewFromInt(4900), Email: "jane@example.com"}
	err := NewProducer(pub, logger.Discard()).PublishOrderPlaced(context.Background(), "sess-1", conf, sampleState().Cart)
	require.NoError(t, err)

	require.NotNil(t, got)
	raw := string(got.Data)
	assert.Contains(t, raw, `"order_id":"ord-1"`)
	assert.NotContains(t, raw, "jane@example.com")
	assert.NotContains(t, raw, "card")
}

func TestProducer_PublishWishlistAndNewsletter(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, TopicWishlistToggled, mock.Anything).Return(nil).Once()
	pub.On("Publish", mock.Anything, TopicNewsletterSubscribed, mock.Anything).Return(nil).Once()

	p := NewProducer(pub, logger.Discard())
	require.NoError(t, p.PublishWishlistToggled(context.Background(), "s", "2", true))
	require.NoError(t, p.PublishNewsletterSubscribed(context.Background(), "s", "a@b.co"))
	pub.AssertExpectations(t)
}

func TestProducer_PublishError(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, TopicWishlistToggled, mock.Anything).Return(errors.New("broker down"))

	before := testutil.ToFloat64(metrics.EventsPublished.WithLabelValues(TopicWishlistToggled, "error"))
	err := NewProducer(pub, logger.Discard()).PublishWishlistToggled(context.Background(), "s", "2", false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), TopicWishlistToggled)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.EventsPublished.WithLabelValues(TopicWishlistToggled, "error")))
}

func TestNoopPublisher(t *testing.T) {
	p := NewProducer(NoopPublisher{}, logger.Discard())
	assert.NoError(t, p.PublishCartUpdated(context.Background(), "s", domain.NewStoreState()))
}

func TestBreakerPublisher_TripsAndRejects(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	cfg := DefaultBreakerConfig()
	cfg.MinRequests = 2
	cfg.Timeout = time.Hour
	b := NewBreakerPublisher(pub, cfg, logger.Discard())

	for i := 0; i < 2; i++ {
		require.Error(t, b.Publish(context.Background(), TopicCartUpdated, &pkgkafka.Event{}))
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.EventBreakerState))

	err := b.Publish(context.Background(), TopicCartUpdated, &pkgkafka.Event{})
	assert.ErrorIs(t, err, ErrBreakerOpen)
	pub.AssertNumberOfCalls(t, "Publish", 2)

	p := NewProducer(b, logger.Discard())
	before := testutil.ToFloat64(metrics.EventsPublished.WithLabelValues(TopicOrderPlaced, "breaker_open"))
	require.Error(t, p.PublishOrderPlaced(context.Background(), "s", domain.OrderConfirmation{}, nil))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.EventsPublished.WithLabelValues(TopicOrderPlaced, "breaker_open")))
}

func TestBreakerPublisher_PassesThroughWhenHealthy(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, TopicCartUpdated, mock.Anything).Return(nil)

	b := NewBreakerPublisher(pub, DefaultBreakerConfig(), logger.Discard())
	require.NoError(t, b.Publish(context.Background(), TopicCartUpdated, &pkgkafka.Event{}))
	assert.Equal(t, gobreaker.StateClosed, b.State())
}
