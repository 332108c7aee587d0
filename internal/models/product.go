package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Keep prices as JSON numbers in snapshots and API responses.
	decimal.MarshalJSONWithoutQuotes = true
}

// DateLayout is the format of CreatedAt and UpdatedAt.
const DateLayout = "2006-01-02"

// Product represents a perfume in the catalog.
// Its JSON form is also the snapshot format written to the key-value store.
type Product struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Thumbnail string           `json:"thumbnail"`
	Gallery   []string         `json:"gallery"`
	Price     decimal.Decimal  `json:"price"`
	SalePrice *decimal.Decimal `json:"salePrice,omitempty"`
	Quantity  int              `json:"quantity"`
	ShortDesc string           `json:"shortDesc"`
	LongDesc  string           `json:"longDesc"`
	Type      string           `json:"type"`
	Category  string           `json:"category"`
	SKU       string           `json:"sku"`
	Featured  bool             `json:"featured"`
	Status    StockStatus      `json:"status"`
	CreatedAt string           `json:"createdAt"`
	UpdatedAt string           `json:"updatedAt"`
	Related   []string         `json:"related"`
}

// Clone returns a deep copy so callers cannot alias the store's slices.
func (p Product) Clone() Product {
	c := p
	if p.Gallery != nil {
		c.Gallery = append([]string{}, p.Gallery...)
	}
	if p.Related != nil {
		c.Related = append([]string{}, p.Related...)
	}
	if p.SalePrice != nil {
		sp := *p.SalePrice
		c.SalePrice = &sp
	}
	return c
}

// OnSale reports whether a sale price is set.
func (p Product) OnSale() bool {
	return p.SalePrice != nil
}

// ProductInput holds the caller-settable fields of a new product.
type ProductInput struct {
	Name      string
	Thumbnail string
	Gallery   []string
	Price     decimal.Decimal
	SalePrice *decimal.Decimal
	Quantity  int
	ShortDesc string
	LongDesc  string
	Type      string
	Category  string
	SKU       string
	Featured  bool
}

// ProductUpdate is a partial update. Nil fields are left unchanged.
// ClearSalePrice removes the sale price and takes precedence over SalePrice.
type ProductUpdate struct {
	Name           *string
	Thumbnail      *string
	Gallery        *[]string
	Price          *decimal.Decimal
	SalePrice      *decimal.Decimal
	ClearSalePrice bool
	Quantity       *int
	ShortDesc      *string
	LongDesc       *string
	Type           *string
	Category       *string
	SKU            *string
	Featured       *bool
	Related        *[]string
}

// CatalogStats summarizes the collection for the list page header.
type CatalogStats struct {
	Total      int             `json:"total"`
	Featured   int             `json:"featured"`
	OutOfStock int             `json:"outOfStock"`
	TotalValue decimal.Decimal `json:"totalValue"`
}
