package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/logger"
)

func TestPublisher_PublishCatalogSearched(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewProducerConfig())
	var sent CatalogSearchedEvent
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		return json.Unmarshal(val, &sent)
	})

	publisher := NewPublisherWithProducer(producer, nil)
	c := domain.DefaultCriteria()
	c.Search = "lamp"
	c.MaxPrice = domain.Price(50)

	ctx := logger.WithSessionID(context.Background(), "sess-1")
	require.NoError(t, publisher.PublishCatalogSearched(ctx, c, 7))
	require.NoError(t, publisher.Close())

	assert.Equal(t, EventTypeCatalogSearched, sent.EventType)
	assert.NotEmpty(t, sent.EventID)
	assert.Equal(t, "sess-1", sent.SessionID)
	assert.Equal(t, 7, sent.Total)
	assert.Equal(t, 2, sent.ActiveFilters)
	assert.True(t, c.Equal(sent.Criteria))
}

func TestPublisher_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewProducerConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewPublisherWithProducer(producer, nil)
	err := publisher.PublishCatalogChanged(context.Background(), CatalogChangedEvent{Reason: "import"})

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func message(eventType string, payload interface{}) *sarama.ConsumerMessage {
	b, _ := json.Marshal(payload)
	msg := &sarama.ConsumerMessage{Topic: TopicCatalogChanged, Value: b}
	if eventType != "" {
		msg.Headers = []*sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(eventType)},
			{Key: []byte("event_id"), Value: []byte("evt-1")},
		}
	}
	return msg
}

func TestConsumer_DispatchesCatalogChanged(t *testing.T) {
	c := newConsumer(nil, nil, "storefront", []string{TopicCatalogChanged})

	var got CatalogChangedEvent
	c.RegisterHandler(EventTypeCatalogChanged, CatalogChangedHandler(func(_ context.Context, e CatalogChangedEvent) error {
		got = e
		return nil
	}))

	err := c.handleMessage(context.Background(), message(EventTypeCatalogChanged, CatalogChangedEvent{
		EventID:    "evt-1",
		ProductIDs: []string{"1", "2"},
		Reason:     "price update",
	}))

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, got.ProductIDs)
	assert.Equal(t, "price update", got.Reason)
}

func TestConsumer_RejectsUnroutableMessages(t *testing.T) {
	c := newConsumer(nil, nil, "storefront", nil)
	ctx := context.Background()

	assert.ErrorIs(t, c.handleMessage(ctx, message("", nil)), ErrNoHandler)
	assert.ErrorIs(t, c.handleMessage(ctx, message("catalog.deleted", nil)), ErrNoHandler)
}

func TestConsumer_HandlerErrors(t *testing.T) {
	c := newConsumer(nil, nil, "storefront", nil)
	boom := errors.New("redis down")
	c.RegisterHandler(EventTypeCatalogChanged, CatalogChangedHandler(func(context.Context, CatalogChangedEvent) error {
		return boom
	}))
	ctx := context.Background()

	assert.ErrorIs(t, c.handleMessage(ctx, message(EventTypeCatalogChanged, CatalogChangedEvent{})), boom)

	bad := message(EventTypeCatalogChanged, nil)
	bad.Value = []byte("{")
	assert.Error(t, c.handleMessage(ctx, bad))
}
