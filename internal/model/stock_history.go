package model

import (
	"time"

	"github.com/google/uuid"
)

// StockHistory is one immutable ledger entry. Rows are only ever inserted.
type StockHistory struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"_id"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"productId"`
	Product          *ProductSummary `gorm:"-" json:"product"`
	ChangeAmount     int             `gorm:"not null" json:"changeAmount"`
	PreviousQuantity int             `gorm:"not null" json:"previousQuantity"`
	NewQuantity      int             `gorm:"not null" json:"newQuantity"`
	Reason           string          `gorm:"type:text" json:"reason"`
	UpdatedBy        *uuid.UUID      `gorm:"type:uuid;index" json:"updatedBy"`
	CreatedAt        time.Time       `gorm:"not null;index" json:"createdAt"`
}

func (StockHistory) TableName() string {
	return "stock_histories"
}

// StockMovement is the per-day inbound/outbound total used by the dashboard.
type StockMovement struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}
