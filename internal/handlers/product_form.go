package handlers

import (
	"strings"
	"time"

	"parfum/internal/models"
	"parfum/internal/services"

	"github.com/shopspring/decimal"
)

// Form choices offered by the admin panel. The store accepts any value.
var (
	Categories = []string{"Luxury", "Floral", "Oriental", "Citrus", "Woody", "Fresh"}
	Types      = []string{"Eau de Parfum", "Eau de Toilette", "Parfum", "Eau de Cologne"}
)

// ProductForm is the create/edit payload.
type ProductForm struct {
	Name      string   `json:"name" validate:"notblank"`
	Thumbnail string   `json:"thumbnail" validate:"required"`
	Gallery   []string `json:"gallery" validate:"max=5"`
	Price     float64  `json:"price" validate:"gt=0"`
	SalePrice *float64 `json:"salePrice" validate:"omitempty,gte=0,ltfield=Price"`
	Quantity  int      `json:"quantity" validate:"gte=0"`
	ShortDesc string   `json:"shortDesc"`
	LongDesc  string   `json:"longDesc"`
	Type      string   `json:"type"`
	Category  string   `json:"category"`
	SKU       string   `json:"sku"`
	Featured  bool     `json:"featured"`
}

// newProductForm returns the blank create form.
func newProductForm() ProductForm {
	return ProductForm{
		Gallery:  []string{},
		Type:     Types[0],
		Category: Categories[0],
	}
}

// formFromProduct pre-fills the edit form.
func formFromProduct(p models.Product) ProductForm {
	f := ProductForm{
		Name:      p.Name,
		Thumbnail: p.Thumbnail,
		Gallery:   append([]string{}, p.Gallery...),
		Price:     p.Price.InexactFloat64(),
		Quantity:  p.Quantity,
		ShortDesc: p.ShortDesc,
		LongDesc:  p.LongDesc,
		Type:      p.Type,
		Category:  p.Category,
		SKU:       p.SKU,
		Featured:  p.Featured,
	}
	if p.SalePrice != nil {
		sp := p.SalePrice.InexactFloat64()
		f.SalePrice = &sp
	}
	return f
}

// normalize trims the name, fills an empty SKU and drops a zero sale price.
func (f *ProductForm) normalize(now time.Time) {
	f.Name = strings.TrimSpace(f.Name)
	f.SKU = strings.TrimSpace(f.SKU)
	if f.SKU == "" && f.Name != "" {
		f.SKU = services.GenerateSKU(f.Name, now)
	}
	if f.SalePrice != nil && *f.SalePrice == 0 {
		f.SalePrice = nil
	}
	if f.Gallery == nil {
		f.Gallery = []string{}
	}
}

func (f ProductForm) salePrice() *decimal.Decimal {
	if f.SalePrice == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f.SalePrice)
	return &d
}

func (f ProductForm) toInput() models.ProductInput {
	return models.ProductInput{
		Name:      f.Name,
		Thumbnail: f.Thumbnail,
		Gallery:   f.Gallery,
		Price:     decimal.NewFromFloat(f.Price),
		SalePrice: f.salePrice(),
		Quantity:  f.Quantity,
		ShortDesc: f.ShortDesc,
		LongDesc:  f.LongDesc,
		Type:      f.Type,
		Category:  f.Category,
		SKU:       f.SKU,
		Featured:  f.Featured,
	}
}

func (f ProductForm) toUpdate() models.ProductUpdate {
	price := decimal.NewFromFloat(f.Price)
	gallery := f.Gallery
	return models.ProductUpdate{
		Name:           &f.Name,
		Thumbnail:      &f.Thumbnail,
		Gallery:        &gallery,
		Price:          &price,
		SalePrice:      f.salePrice(),
		ClearSalePrice: f.SalePrice == nil,
		Quantity:       &f.Quantity,
		ShortDesc:      &f.ShortDesc,
		LongDesc:       &f.LongDesc,
		Type:           &f.Type,
		Category:       &f.Category,
		SKU:            &f.SKU,
		Featured:       &f.Featured,
	}
}
