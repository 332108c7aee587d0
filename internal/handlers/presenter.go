package handlers

import (
	"parfum/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders an amount as en-US currency, e.g. "$1,234.50".
func FormatUSD(amount decimal.Decimal) string {
	f := amount.Round(2).InexactFloat64()
	if f < 0 {
		return "-" + usdPrinter.Sprintf("$%.2f", -f)
	}
	return usdPrinter.Sprintf("$%.2f", f)
}

// DiscountPercent returns the rounded saving of sale relative to price.
func DiscountPercent(price, sale decimal.Decimal) int64 {
	if !price.IsPositive() {
		return 0
	}
	hundred := decimal.NewFromInt(100)
	return hundred.Sub(sale.Mul(hundred).Div(price)).Round(0).IntPart()
}

// ProductView is a product plus the display fields used by the admin pages.
type ProductView struct {
	models.Product
	DisplayPrice     string `json:"displayPrice"`
	DisplaySalePrice string `json:"displaySalePrice,omitempty"`
	DiscountPercent  int64  `json:"discountPercent,omitempty"`
	StatusLabel      string `json:"statusLabel"`
	// StockLevel is the width of the stock bar, 0-100.
	StockLevel int `json:"stockLevel"`
}

func newProductView(p models.Product) ProductView {
	v := ProductView{
		Product:      p,
		DisplayPrice: FormatUSD(p.Price),
		StatusLabel:  p.Status.Label(),
		StockLevel:   p.Quantity,
	}
	if v.StockLevel > 100 {
		v.StockLevel = 100
	}
	if v.StockLevel < 0 {
		v.StockLevel = 0
	}
	if p.SalePrice != nil {
		v.DisplaySalePrice = FormatUSD(*p.SalePrice)
		v.DiscountPercent = DiscountPercent(p.Price, *p.SalePrice)
	}
	return v
}

func newProductViews(products []models.Product) []ProductView {
	out := make([]ProductView, len(products))
	for i, p := range products {
		out[i] = newProductView(p)
	}
	return out
}

// StatsView is the list page header.
type StatsView struct {
	Total      int    `json:"total"`
	Featured   int    `json:"featured"`
	OutOfStock int    `json:"outOfStock"`
	TotalValue string `json:"totalValue"`
}

func newStatsView(s models.CatalogStats) StatsView {
	return StatsView{
		Total:      s.Total,
		Featured:   s.Featured,
		OutOfStock: s.OutOfStock,
		TotalValue: FormatUSD(s.TotalValue),
	}
}
