// Package events describes inventory changes pushed to live subscribers
// (websocket clients, the Kafka stock topic) after they are committed.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	ProductCreated Type = "product_created"
	ProductUpdated Type = "product_updated"
	ProductDeleted Type = "product_deleted"
	StockChanged   Type = "stock_changed"
)

type Event struct {
	Type         Type       `json:"type"`
	ProductID    uuid.UUID  `json:"productId"`
	SKU          string     `json:"sku"`
	Name         string     `json:"name"`
	Quantity     int        `json:"quantity"`
	ChangeAmount int        `json:"changeAmount,omitempty"`
	Reason       string     `json:"reason,omitempty"`
	EntryID      *uuid.UUID `json:"entryId,omitempty"`
	ActorID      *uuid.UUID `json:"actorId,omitempty"`
	OccurredAt   time.Time  `json:"occurredAt"`
}

// Publisher delivers committed events. Implementations must not block for long:
// callers publish on the request path.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, evt Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
