package client

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `json:"_id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type ProductInput struct {
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// ProductPatch sends only the non-nil fields.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	SKU         *string          `json:"sku,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Description *string          `json:"description,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
}

type ProductQuery struct {
	Search     string
	Category   string
	LowStock   bool
	Sort       string
	Descending bool
}

type Category struct {
	ID          uuid.UUID `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ProductRef struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
	SKU  string    `json:"sku"`
}

type StockEntry struct {
	ID               uuid.UUID   `json:"_id"`
	ProductID        uuid.UUID   `json:"productId"`
	Product          *ProductRef `json:"product"`
	ChangeAmount     int         `json:"changeAmount"`
	PreviousQuantity int         `json:"previousQuantity"`
	NewQuantity      int         `json:"newQuantity"`
	Reason           string      `json:"reason"`
	UpdatedBy        *uuid.UUID  `json:"updatedBy"`
	CreatedAt        time.Time   `json:"createdAt"`
}

type StockAdjustment struct {
	ProductID    uuid.UUID `json:"productId"`
	ChangeAmount int       `json:"changeAmount"`
	Reason       string    `json:"reason,omitempty"`
}

type User struct {
	ID      uuid.UUID `json:"_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"isAdmin"`
}

// Session is a user together with the token issued for it.
type Session struct {
	User
	Token string `json:"token"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

type DashboardStats struct {
	TotalProducts     int64           `json:"totalProducts"`
	TotalCategories   int64           `json:"totalCategories"`
	LowStockProducts  int64           `json:"lowStockProducts"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	TotalValuation    decimal.Decimal `json:"totalValuation"`
	RecentChanges     []StockEntry    `json:"recentChanges"`
}

type StockMovement struct {
	Date     string `json:"date"`
	Inbound  int64  `json:"inbound"`
	Outbound int64  `json:"outbound"`
}
