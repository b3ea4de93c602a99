package messaging

import (
	"encoding/json"
	"testing"
	"time"

	"go-inventory-api/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	id := uuid.New()
	at := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	evt := events.Event{Type: events.StockChanged, ProductID: id, SKU: "SKU-1", Quantity: 7, ChangeAmount: -3, OccurredAt: at}

	msg, err := buildMessage(evt)
	require.NoError(t, err)

	assert.Equal(t, id.String(), string(msg.Key))
	assert.Equal(t, at, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event-type", msg.Headers[0].Key)
	assert.Equal(t, "stock_changed", string(msg.Headers[0].Value))

	var decoded events.Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, evt.ProductID, decoded.ProductID)
	assert.Equal(t, -3, decoded.ChangeAmount)
}
