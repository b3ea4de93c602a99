package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// prices go over the wire as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	SKU         string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"sku"`
	Category    string          `gorm:"type:varchar(255);index;not null" json:"category"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	ImageURL    string          `gorm:"type:varchar(512)" json:"imageUrl"`
}

// Summary is the reference embedded in stock history responses.
func (p *Product) Summary() *ProductSummary {
	return &ProductSummary{ID: p.ID, Name: p.Name, SKU: p.SKU}
}

// ProductSummary is a read-only projection of the products table.
type ProductSummary struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
	SKU  string    `json:"sku"`
}

// ProductFilter narrows and orders a product listing.
type ProductFilter struct {
	Search   string
	Category string
	// LowStockBelow keeps products whose quantity is under the value; 0 disables it.
	LowStockBelow int
	SortBy        string
	Descending    bool
}

// ProductSortColumns maps the public sort keys to columns.
var ProductSortColumns = map[string]string{
	"name":      "name",
	"sku":       "sku",
	"category":  "category",
	"quantity":  "quantity",
	"price":     "price",
	"createdAt": "created_at",
}
