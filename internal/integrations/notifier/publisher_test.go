package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeChannel struct {
	exchange string
	key      string
	msgs     []amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.exchange = exchange
	f.key = key
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Send(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisherWithChannel(ch, "amenity.notifications", "reservation.created", nopLogger{})

	ok, err := p.Send(context.Background(), 42, "Reservation created", "Pool, 10:00-12:00", []string{"email"})
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, ch.msgs, 1)
	assert.Equal(t, "amenity.notifications", ch.exchange)
	assert.Equal(t, "reservation.created", ch.key)
	assert.Equal(t, amqp.Persistent, ch.msgs[0].DeliveryMode)

	var n Notification
	require.NoError(t, json.Unmarshal(ch.msgs[0].Body, &n))
	assert.Equal(t, int64(42), n.RequesterID)
	assert.Equal(t, "Reservation created", n.Title)
	assert.Equal(t, []string{"email"}, n.Channels)
	assert.Equal(t, ch.msgs[0].MessageId, n.ID)
	assert.NotEmpty(t, n.ID)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_SendFailure(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := NewPublisherWithChannel(ch, "x", "k", nopLogger{})

	ok, err := p.Send(context.Background(), 1, "title", "message", nil)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrPublish)
}

func TestPublisher_InvalidNotification(t *testing.T) {
	p := NewPublisherWithChannel(&fakeChannel{}, "x", "k", nopLogger{})

	_, err := p.Send(context.Background(), 0, "title", "message", nil)
	assert.ErrorIs(t, err, ErrInvalidNotification)

	_, err = p.Send(context.Background(), 1, " ", "message", nil)
	assert.ErrorIs(t, err, ErrInvalidNotification)
}
