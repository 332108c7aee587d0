package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// PaginationParams are the list query parameters.
type PaginationParams struct {
	Page    int
	PerPage int
	Search  string
}

// Pagination describes the page returned to the client.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func getPaginationParams(c *fiber.Ctx, perPage int) PaginationParams {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return PaginationParams{
		Page:    page,
		PerPage: perPage,
		Search:  c.Query("search"),
	}
}

// paginate slices items to the requested page. Pages past the end are
// clamped to the last page.
func paginate[T any](items []T, params PaginationParams) ([]T, Pagination) {
	total := len(items)
	totalPages := (total + params.PerPage - 1) / params.PerPage

	page := params.Page
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * params.PerPage
	end := start + params.PerPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return items[start:end], Pagination{
		Page:       page,
		PerPage:    params.PerPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
