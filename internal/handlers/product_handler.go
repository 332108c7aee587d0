package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parfum/internal/models"
	"parfum/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// DefaultItemsPerPage is the list page size of the admin panel.
const DefaultItemsPerPage = 8

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
	perPage  int
	now      func() time.Time
}

// NewProductHandler creates a new ProductHandler. perPage <= 0 selects DefaultItemsPerPage.
func NewProductHandler(service *services.ProductService, perPage int) *ProductHandler {
	if perPage <= 0 {
		perPage = DefaultItemsPerPage
	}
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
		perPage:  perPage,
		now:      time.Now,
	}
}

// RegisterRoutes registers the product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/stats", h.HandleGetStats)
	productRoutes.Get("/options", h.HandleGetFormOptions)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Patch("/:id", h.HandlePatchProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Get("/:id/related", h.HandleGetRelated)
	productRoutes.Put("/:id/related", h.HandleSetRelated)
}

func productNotFound(c *fiber.Ctx, id string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": fmt.Sprintf("Product with ID %s not found", id),
	})
}

func (h *ProductHandler) serviceError(c *fiber.Ctx, id string, err error, action string) error {
	if errors.Is(err, services.ErrProductNotFound) {
		return productNotFound(c, id)
	}
	logrus.WithError(err).WithField("product_id", id).Errorf("Could not %s product", action)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Operation failed. Please try again.",
		"error":   err.Error(),
	})
}

// HandleListProducts returns one page of products matching the search query.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	params := getPaginationParams(c, h.perPage)
	products := h.service.SearchProducts(params.Search)
	page, pagination := paginate(products, params)

	return c.JSON(fiber.Map{
		"products":   newProductViews(page),
		"pagination": pagination,
		"search":     params.Search,
		"stats":      newStatsView(h.service.Stats()),
	})
}

// HandleGetStats returns the catalog summary.
func (h *ProductHandler) HandleGetStats(c *fiber.Ctx) error {
	return c.JSON(newStatsView(h.service.Stats()))
}

// HandleGetFormOptions returns the choices and defaults of the product form.
func (h *ProductHandler) HandleGetFormOptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories":   Categories,
		"types":        Types,
		"defaults":     newProductForm(),
		"maxGallery":   5,
		"itemsPerPage": h.perPage,
	})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id := c.Params("id")
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return h.serviceError(c, id, err, "get")
	}
	return c.JSON(newProductView(*product))
}

// HandleCreateProduct validates the form and creates a product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	form := newProductForm()
	if err := c.BodyParser(&form); err != nil {
		return invalidBody(c, err)
	}
	form.normalize(h.now())
	if err := h.validate.Struct(form); err != nil {
		return validationFailed(c, err)
	}

	product, err := h.service.CreateProduct(form.toInput())
	if err != nil {
		return h.serviceError(c, "", err, "create")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully!",
		"product": newProductView(*product),
	})
}

// HandleUpdateProduct replaces every form field of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.service.GetProductByID(id); err != nil {
		return h.serviceError(c, id, err, "update")
	}
	return h.update(c, id, ProductForm{})
}

// HandlePatchProduct merges the supplied fields over the current product.
func (h *ProductHandler) HandlePatchProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	current, err := h.service.GetProductByID(id)
	if err != nil {
		return h.serviceError(c, id, err, "update")
	}
	return h.update(c, id, formFromProduct(*current))
}

func (h *ProductHandler) update(c *fiber.Ctx, id string, form ProductForm) error {
	if err := c.BodyParser(&form); err != nil {
		return invalidBody(c, err)
	}
	form.normalize(h.now())
	if err := h.validate.Struct(form); err != nil {
		return validationFailed(c, err)
	}

	product, err := h.service.UpdateProduct(id, form.toUpdate())
	if err != nil {
		return h.serviceError(c, id, err, "update")
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully!",
		"product": newProductView(*product),
	})
}

// HandleDeleteProduct deletes a product. Missing products are reported as deleted.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(id); err != nil {
		return h.serviceError(c, id, err, "delete")
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted successfully", id),
	})
}

// HandleGetRelated returns the related picker state: the current selection
// and the candidates, optionally filtered by name.
func (h *ProductHandler) HandleGetRelated(c *fiber.Ctx) error {
	id := c.Params("id")
	current, err := h.service.GetProductByID(id)
	if err != nil {
		return h.serviceError(c, id, err, "get related for")
	}

	search := strings.ToLower(strings.TrimSpace(c.Query("search")))
	all := h.service.GetAllProducts()
	byID := make(map[string]models.Product, len(all))
	candidates := []models.Product{}
	for _, p := range all {
		byID[p.ID] = p
		if p.ID == id {
			continue
		}
		if search == "" || strings.Contains(strings.ToLower(p.Name), search) {
			candidates = append(candidates, p)
		}
	}

	// Dangling references stay in the selection but cannot be shown.
	selected := []models.Product{}
	for _, rid := range current.Related {
		if p, ok := byID[rid]; ok {
			selected = append(selected, p)
		}
	}

	return c.JSON(fiber.Map{
		"product":          newProductView(*current),
		"selected":         current.Related,
		"selectedProducts": newProductViews(selected),
		"candidates":       newProductViews(candidates),
	})
}

// RelatedRequest is the body of PUT /products/:id/related.
type RelatedRequest struct {
	Related []string `json:"related"`
}

// HandleSetRelated replaces the related product IDs.
func (h *ProductHandler) HandleSetRelated(c *fiber.Ctx) error {
	id := c.Params("id")
	var req RelatedRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if req.Related == nil {
		req.Related = []string{}
	}

	if err := h.service.SetRelatedProducts(id, req.Related); err != nil {
		return h.serviceError(c, id, err, "set related for")
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return h.serviceError(c, id, err, "get")
	}
	return c.JSON(fiber.Map{
		"message": "Related products saved successfully!",
		"product": newProductView(*product),
	})
}
