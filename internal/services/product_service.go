package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"parfum/internal/models"
	"parfum/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrProductNotFound is returned when no product has the requested ID.
var ErrProductNotFound = errors.New("product not found")

// Catalog event names passed to the EventPublisher.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher receives a notification after each committed mutation.
type EventPublisher interface {
	PublishCatalogEvent(event string, payload map[string]interface{}) error
}

// ProductService owns the product collection. Every mutation is written to the
// snapshot repository before it becomes visible in memory.
type ProductService struct {
	repo      repositories.SnapshotRepository
	publisher EventPublisher
	now       func() time.Time
	newID     func() string

	mu       sync.RWMutex
	loaded   bool
	products []models.Product
}

// ProductServiceOption customizes a ProductService.
type ProductServiceOption func(*ProductService)

// WithClock overrides the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) ProductServiceOption {
	return func(s *ProductService) { s.now = now }
}

// WithIDGenerator overrides product ID generation.
func WithIDGenerator(newID func() string) ProductServiceOption {
	return func(s *ProductService) { s.newID = newID }
}

// WithEventPublisher sends catalog events to p.
func WithEventPublisher(p EventPublisher) ProductServiceOption {
	return func(s *ProductService) { s.publisher = p }
}

// NewProductService creates a new ProductService. The collection is loaded on
// first use or by an explicit call to Init.
func NewProductService(repo repositories.SnapshotRepository, opts ...ProductServiceOption) *ProductService {
	s := &ProductService{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads the snapshot, falling back to the default catalog when the
// snapshot is missing or unreadable. Calling Init again is a no-op.
func (s *ProductService) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
}

// Close writes the current collection and releases it. The next operation
// reloads from the snapshot.
func (s *ProductService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil
	}
	if err := s.repo.Save(s.products); err != nil {
		return fmt.Errorf("failed to flush catalog: %w", err)
	}
	s.products = nil
	s.loaded = false
	return nil
}

// ensureLoaded must be called with s.mu held for writing.
func (s *ProductService) ensureLoaded() {
	if s.loaded {
		return
	}
	s.loaded = true

	products, err := s.repo.Load()
	if err == nil {
		for i := range products {
			products[i].Status = models.DeriveStatus(products[i].Quantity)
		}
		s.products = products
		logrus.WithField("products", len(products)).Info("Catalog loaded from snapshot")
		return
	}

	if errors.Is(err, repositories.ErrSnapshotNotFound) {
		logrus.Info("No catalog snapshot found, seeding default catalog")
	} else {
		logrus.WithError(err).Warn("Catalog snapshot unreadable, seeding default catalog")
	}
	s.products = DefaultCatalog()
	if err := s.repo.Save(s.products); err != nil {
		logrus.WithError(err).Warn("Failed to write seeded catalog")
	}
}

// readLocked runs fn with the collection loaded and a read lock held.
func (s *ProductService) readLocked(fn func()) {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		fn()
		return
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	fn()
}

// commit persists next and then swaps it in. Must be called with s.mu held for writing.
func (s *ProductService) commit(next []models.Product) error {
	if err := s.repo.Save(next); err != nil {
		return fmt.Errorf("failed to persist catalog: %w", err)
	}
	s.products = next
	return nil
}

func (s *ProductService) today() string {
	return s.now().UTC().Format(models.DateLayout)
}

func (s *ProductService) indexOf(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *ProductService) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

func (s *ProductService) publish(event string, p models.Product) {
	if s.publisher == nil {
		return
	}
	payload := map[string]interface{}{
		"event":     event,
		"productId": p.ID,
		"name":      p.Name,
		"status":    p.Status,
		"at":        s.now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishCatalogEvent(event, payload); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"event":      event,
			"product_id": p.ID,
		}).Warn("Failed to publish catalog event")
	}
}

// GetAllProducts returns the collection in insertion order.
func (s *ProductService) GetAllProducts() []models.Product {
	var out []models.Product
	s.readLocked(func() {
		out = cloneAll(s.products)
	})
	return out
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	var (
		out *models.Product
		err error
	)
	s.readLocked(func() {
		i := s.indexOf(id)
		if i < 0 {
			err = fmt.Errorf("%w: %s", ErrProductNotFound, id)
			return
		}
		p := s.products[i].Clone()
		out = &p
	})
	return out, err
}

// SearchProducts returns products whose name, SKU or category contains query,
// ignoring case. A blank query returns the whole collection.
func (s *ProductService) SearchProducts(query string) []models.Product {
	if strings.TrimSpace(query) == "" {
		return s.GetAllProducts()
	}
	q := strings.ToLower(query)

	out := []models.Product{}
	s.readLocked(func() {
		for _, p := range s.products {
			if strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.SKU), q) ||
				strings.Contains(strings.ToLower(p.Category), q) {
				out = append(out, p.Clone())
			}
		}
	})
	return out
}

// CreateProduct adds a new product and returns it.
func (s *ProductService) CreateProduct(input models.ProductInput) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	today := s.today()
	p := models.Product{
		ID:        s.uniqueID(),
		Name:      input.Name,
		Thumbnail: input.Thumbnail,
		Gallery:   append([]string{}, input.Gallery...),
		Price:     input.Price,
		Quantity:  input.Quantity,
		ShortDesc: input.ShortDesc,
		LongDesc:  input.LongDesc,
		Type:      input.Type,
		Category:  input.Category,
		SKU:       input.SKU,
		Featured:  input.Featured,
		Status:    models.DeriveStatus(input.Quantity),
		CreatedAt: today,
		UpdatedAt: today,
		Related:   []string{},
	}
	if input.SalePrice != nil {
		sp := *input.SalePrice
		p.SalePrice = &sp
	}

	next := append(cloneAll(s.products), p)
	if err := s.commit(next); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"product_id": p.ID, "name": p.Name}).Info("Product created")
	s.publish(EventProductCreated, p)
	out := p.Clone()
	return &out, nil
}

// UpdateProduct merges upd into the product with the given ID. The status is
// re-derived when the quantity is part of the update; updatedAt is always refreshed.
func (s *ProductService) UpdateProduct(id string, upd models.ProductUpdate) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}

	next := cloneAll(s.products)
	p := &next[i]
	applyUpdate(p, upd)
	if upd.Quantity != nil {
		p.Status = models.DeriveStatus(p.Quantity)
	}
	p.UpdatedAt = s.today()

	if err := s.commit(next); err != nil {
		return nil, err
	}

	logrus.WithField("product_id", id).Info("Product updated")
	s.publish(EventProductUpdated, *p)
	out := p.Clone()
	return &out, nil
}

// SetRelatedProducts replaces the related product IDs of a product.
// IDs are not checked against the collection.
func (s *ProductService) SetRelatedProducts(id string, relatedIDs []string) error {
	related := append([]string{}, relatedIDs...)
	_, err := s.UpdateProduct(id, models.ProductUpdate{Related: &related})
	return err
}

// DeleteProduct removes a product. Deleting a missing product is not an error
// and related references in other products are left untouched.
func (s *ProductService) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	next := make([]models.Product, 0, len(s.products))
	var removed *models.Product
	for _, p := range s.products {
		if p.ID == id {
			p := p
			removed = &p
			continue
		}
		next = append(next, p.Clone())
	}

	if err := s.commit(next); err != nil {
		return err
	}
	if removed != nil {
		logrus.WithField("product_id", id).Info("Product deleted")
		s.publish(EventProductDeleted, *removed)
	}
	return nil
}

// Stats summarizes the collection.
func (s *ProductService) Stats() models.CatalogStats {
	stats := models.CatalogStats{TotalValue: decimal.Zero}
	s.readLocked(func() {
		stats.Total = len(s.products)
		for _, p := range s.products {
			if p.Featured {
				stats.Featured++
			}
			if p.Status == models.StatusOutOfStock {
				stats.OutOfStock++
			}
			stats.TotalValue = stats.TotalValue.Add(p.Price)
		}
	})
	return stats
}

func applyUpdate(p *models.Product, upd models.ProductUpdate) {
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Thumbnail != nil {
		p.Thumbnail = *upd.Thumbnail
	}
	if upd.Gallery != nil {
		p.Gallery = append([]string{}, (*upd.Gallery)...)
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.ClearSalePrice {
		p.SalePrice = nil
	} else if upd.SalePrice != nil {
		sp := *upd.SalePrice
		p.SalePrice = &sp
	}
	if upd.Quantity != nil {
		p.Quantity = *upd.Quantity
	}
	if upd.ShortDesc != nil {
		p.ShortDesc = *upd.ShortDesc
	}
	if upd.LongDesc != nil {
		p.LongDesc = *upd.LongDesc
	}
	if upd.Type != nil {
		p.Type = *upd.Type
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.SKU != nil {
		p.SKU = *upd.SKU
	}
	if upd.Featured != nil {
		p.Featured = *upd.Featured
	}
	if upd.Related != nil {
		p.Related = append([]string{}, (*upd.Related)...)
	}
}

func cloneAll(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}
