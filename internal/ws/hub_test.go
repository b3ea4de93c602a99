package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-inventory-api/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHub_PublishQueuesJSON(t *testing.T) {
	hub := NewHub(zap.NewNop())
	id := uuid.New()

	err := hub.Publish(context.Background(), events.Event{Type: events.StockChanged, ProductID: id, Quantity: 7, ChangeAmount: -3})
	require.NoError(t, err)

	select {
	case msg := <-hub.Broadcast:
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, "stock_changed", got["type"])
		assert.Equal(t, id.String(), got["productId"])
		assert.EqualValues(t, -3, got["changeAmount"])
	case <-time.After(time.Second):
		t.Fatal("nothing broadcast")
	}
}

func TestHub_PublishRespectsContext(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hub.Broadcast = make(chan []byte) // nobody reading

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := hub.Publish(ctx, events.Event{Type: events.ProductCreated})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHub_RunStopsOnCancel(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	require.NoError(t, hub.Publish(context.Background(), events.Event{Type: events.ProductDeleted}))
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_JoinAndLeaveReturnAfterStop(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	returned := make(chan bool)
	go func() {
		hub.Leave(nil)
		returned <- hub.Join(nil)
	}()

	select {
	case joined := <-returned:
		assert.False(t, joined)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("join/leave blocked after the hub stopped")
	}
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_LeaveWhileRunning(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	left := make(chan struct{})
	go func() {
		hub.Leave(nil)
		close(left)
	}()

	select {
	case <-left:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("leave was not served by the running hub")
	}
}
