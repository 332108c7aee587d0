package services

import (
	"parfum/internal/models"

	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func salePrice(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// DefaultCatalog returns the eight sample perfumes used when no snapshot exists.
// Every call returns a fresh copy.
func DefaultCatalog() []models.Product {
	return []models.Product{
		{
			ID:        "1",
			Name:      "Midnight Oud",
			Thumbnail: "https://images.unsplash.com/photo-1541643600914-78b084683601?w=400&h=400&fit=crop",
			Gallery: []string{
				"https://images.unsplash.com/photo-1541643600914-78b084683601?w=800&h=800&fit=crop",
				"https://images.unsplash.com/photo-1590736969954-9920385bf7a9?w=800&h=800&fit=crop",
			},
			Price:     price("299.99"),
			SalePrice: salePrice("249.99"),
			Quantity:  42,
			ShortDesc: "A mysterious blend of oud, amber, and spice",
			LongDesc:  "Midnight Oud is an exquisite fragrance that captures the essence of Arabian nights.",
			Type:      "Eau de Parfum",
			Category:  "Luxury",
			SKU:       "PERF-001-MID",
			Featured:  true,
			Status:    models.StatusInStock,
			CreatedAt: "2024-01-15",
			UpdatedAt: "2024-02-20",
			Related:   []string{"2", "3"},
		},
		{
			ID:        "2",
			Name:      "White Gardenia",
			Thumbnail: "https://images.unsplash.com/photo-1590736969954-9920385bf7a9?w=400&h=400&fit=crop",
			Gallery:   []string{},
			Price:     price("189.99"),
			Quantity:  15,
			ShortDesc: "Fresh floral scent with gardenia and jasmine",
			LongDesc:  "A delicate blend of white gardenia, jasmine, and lily of the valley.",
			Type:      "Eau de Toilette",
			Category:  "Floral",
			SKU:       "PERF-002-WHI",
			Featured:  true,
			Status:    models.StatusInStock,
			CreatedAt: "2024-02-01",
			UpdatedAt: "2024-02-25",
			Related:   []string{},
		},
		{
			ID:        "3",
			Name:      "Amber Noir",
			Thumbnail: "https://images.unsplash.com/photo-1541643600914-78b084683601?w=400&h=400&fit=crop",
			Gallery:   []string{},
			Price:     price("349.99"),
			Quantity:  0,
			ShortDesc: "Rich amber and vanilla with woody undertones",
			LongDesc:  "A luxurious blend of amber, vanilla, patchouli, and cedarwood.",
			Type:      "Parfum",
			Category:  "Oriental",
			SKU:       "PERF-003-AMB",
			Featured:  false,
			Status:    models.StatusOutOfStock,
			CreatedAt: "2024-01-20",
			UpdatedAt: "2024-02-28",
			Related:   []string{},
		},
		{
			ID:        "4",
			Name:      "Royal Musk",
			Thumbnail: "https://images.unsplash.com/photo-1598454444372-3c9b05a5867d?w=400&h=400&fit=crop",
			Gallery: []string{
				"https://images.unsplash.com/photo-1598454444372-3c9b05a5867d?w=800&h=800&fit=crop",
			},
			Price:     price("279.99"),
			SalePrice: salePrice("229.99"),
			Quantity:  30,
			ShortDesc: "Warm musk with a hint of citrus",
			LongDesc:  "Royal Musk delivers a balance of white musk, refreshing citrus notes, and subtle wood.",
			Type:      "Eau de Parfum",
			Category:  "Classic",
			SKU:       "PERF-004-MUS",
			Featured:  false,
			Status:    models.StatusInStock,
			CreatedAt: "2024-03-02",
			UpdatedAt: "2024-03-10",
			Related:   []string{"1"},
		},
		{
			ID:        "5",
			Name:      "Pink Velvet",
			Thumbnail: "https://images.unsplash.com/photo-1585386959984-a4155223f425?w=400&h=400&fit=crop",
			Gallery:   []string{},
			Price:     price("159.99"),
			Quantity:  65,
			ShortDesc: "Sweet fruity scent with strawberry and rose",
			LongDesc:  "Playful and elegant, this scent mixes rose petals with fruity strawberry sweetness.",
			Type:      "Body Mist",
			Category:  "Floral",
			SKU:       "PERF-005-PVK",
			Featured:  true,
			Status:    models.StatusInStock,
			CreatedAt: "2024-03-12",
			UpdatedAt: "2024-03-20",
			Related:   []string{},
		},
		{
			ID:        "6",
			Name:      "Ocean Breeze",
			Thumbnail: "https://images.unsplash.com/photo-1520975922071-aafc3a1c6c5b?w=400&h=400&fit=crop",
			Gallery:   []string{},
			Price:     price("129.99"),
			Quantity:  7,
			ShortDesc: "Fresh aquatics with sea salt and mint",
			LongDesc:  "A refreshing escape with notes of ocean mist, salt breeze, and crisp mint.",
			Type:      "Cologne",
			Category:  "Fresh",
			SKU:       "PERF-006-OCB",
			Featured:  false,
			Status:    models.StatusLowStock,
			CreatedAt: "2024-03-05",
			UpdatedAt: "2024-03-18",
			Related:   []string{},
		},
		{
			ID:        "7",
			Name:      "Saffron Night",
			Thumbnail: "https://images.unsplash.com/photo-1505577058444-a3dab90d4253?w=400&h=400&fit=crop",
			Gallery:   []string{},
			Price:     price("399.99"),
			SalePrice: salePrice("359.99"),
			Quantity:  4,
			ShortDesc: "Luxurious saffron with smoky leather",
			LongDesc:  "Dark and provocative. Saffron, leather, and warm resinous notes.",
			Type:      "Parfum",
			Category:  "Oriental",
			SKU:       "PERF-007-SAF",
			Featured:  true,
			Status:    models.StatusLowStock,
			CreatedAt: "2024-03-15",
			UpdatedAt: "2024-03-22",
			Related:   []string{},
		},
		{
			ID:        "8",
			Name:      "Citrus Burst",
			Thumbnail: "https://images.unsplash.com/photo-1470337458703-46ad1756a187?w=400&h=400&fit=crop",
			Gallery:   []string{},
			Price:     price("109.99"),
			Quantity:  100,
			ShortDesc: "Energizing lemon and bergamot blend",
			LongDesc:  "Bright, bold, and energetic. A lively blast of citrus optimism.",
			Type:      "Eau de Cologne",
			Category:  "Fresh",
			SKU:       "PERF-008-CIT",
			Featured:  false,
			Status:    models.StatusInStock,
			CreatedAt: "2024-03-10",
			UpdatedAt: "2024-03-25",
			Related:   []string{},
		},
	}
}
