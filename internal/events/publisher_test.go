package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange, key string
	msg           amqp091.Publishing
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{exchange: "gearshare.events", ch: ch}

	ev := BookingStatusChanged{BookingID: 7, From: "confirmed", To: "active", Version: 4, ActorID: 10,
		At: time.Date(2026, 7, 4, 10, 0, 0, 0, time.UTC)}
	require.NoError(t, p.Publish(context.Background(), KeyBookingStatusChanged, ev))

	require.Len(t, ch.sent, 1)
	got := ch.sent[0]
	assert.Equal(t, "gearshare.events", got.exchange)
	assert.Equal(t, KeyBookingStatusChanged, got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp091.Persistent, got.msg.DeliveryMode)

	var decoded BookingStatusChanged
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, ev, decoded)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_PublishError(t *testing.T) {
	p := &Publisher{exchange: "gearshare.events", ch: &fakeChannel{err: errors.New("channel closed")}}
	err := p.Publish(context.Background(), KeySessionTransitioned, map[string]int{"booking_id": 1})
	assert.ErrorContains(t, err, "failed to publish session.transitioned")
}

func TestLogPublisher(t *testing.T) {
	var p LogPublisher
	assert.NoError(t, p.Publish(context.Background(), KeyBookingCreated, map[string]int{"booking_id": 1}))
	assert.NoError(t, p.Close())
}
