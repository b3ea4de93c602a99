package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingPublisher struct {
	calls int
	err   error
}

func (c *countingPublisher) Publish(context.Context, Event) error {
	c.calls++
	return c.err
}

func TestMulti_PublishesToAll(t *testing.T) {
	a, b := &countingPublisher{}, &countingPublisher{}

	err := Multi{a, b}.Publish(context.Background(), Event{Type: StockChanged})

	assert.NoError(t, err)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

func TestMulti_KeepsGoingAfterFailure(t *testing.T) {
	boom := errors.New("broker down")
	a, b := &countingPublisher{err: boom}, &countingPublisher{}

	err := Multi{a, b}.Publish(context.Background(), Event{Type: ProductCreated})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, b.calls)
}
