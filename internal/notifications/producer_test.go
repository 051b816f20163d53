package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaPublisherSendsKeyedMessage(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "reservation-events" {
			return errors.New("wrong topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "res-1" {
			return errors.New("wrong key " + string(key))
		}
		value, _ := msg.Value.Encode()
		var decoded ReservationEvent
		if err := json.Unmarshal(value, &decoded); err != nil {
			return err
		}
		if decoded.Type != EventReservationCreated {
			return errors.New("wrong type")
		}
		return nil
	})

	publisher := NewKafkaPublisherWithProducer(producer, "reservation-events")
	event := NewReservationEvent(EventReservationCreated, "res-1", "user123", "space456",
		time.Now(), time.Now().Add(time.Hour))

	require.NoError(t, publisher.Publish(context.Background(), event))
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisherSurfacesSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewKafkaPublisherWithProducer(producer, "reservation-events")
	err := publisher.Publish(context.Background(),
		NewReservationEvent(EventReservationCancelled, "res-2", "user123", "space789", time.Now(), time.Now()))

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func TestMemoryPublisherKeepsOrder(t *testing.T) {
	publisher := NewMemoryPublisher()
	ctx := context.Background()

	_ = publisher.Publish(ctx, NewReservationEvent(EventReservationCreated, "a", "u", "s", time.Now(), time.Now()))
	_ = publisher.Publish(ctx, NewReservationEvent(EventReservationCheckedIn, "a", "u", "s", time.Now(), time.Now()))

	events := publisher.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventReservationCreated, events[0].Type)
	assert.Equal(t, EventReservationCheckedIn, events[1].Type)
}
