package services_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"parfum/internal/models"
	"parfum/internal/repositories"
	"parfum/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSnapshotRepository is a mock implementation of repositories.SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Load() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockSnapshotRepository) Save(products []models.Product) error {
	args := m.Called(products)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishCatalogEvent(event string, payload map[string]interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}

var fixedNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newSeededService(t *testing.T) (*services.ProductService, *repositories.KVSnapshotRepository) {
	t.Helper()
	repo := repositories.NewKVSnapshotRepository(repositories.NewMemoryKeyValueRepository(), "")
	return services.NewProductService(repo, services.WithClock(fixedClock)), repo
}

func testInput(quantity int) models.ProductInput {
	return models.ProductInput{
		Name:      "Test",
		Thumbnail: "x",
		Price:     decimal.NewFromInt(10),
		Quantity:  quantity,
		Type:      "Parfum",
		Category:  "Woody",
		SKU:       "PERF-TEST-0001",
	}
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}

func TestProductService_SeedsDefaultCatalog(t *testing.T) {
	service, repo := newSeededService(t)

	products := service.GetAllProducts()
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8"}, ids(products))

	// The seed is written back so the snapshot mirrors memory.
	stored, err := repo.Load()
	require.NoError(t, err)
	assert.JSONEq(t, mustJSON(t, products), mustJSON(t, stored))

	for _, p := range products {
		assert.Equal(t, models.DeriveStatus(p.Quantity), p.Status, "product %s", p.ID)
	}
}

func TestProductService_CreateProduct(t *testing.T) {
	service, repo := newSeededService(t)

	created, err := service.CreateProduct(testInput(5))
	require.NoError(t, err)
	assert.Equal(t, models.StatusLowStock, created.Status)
	assert.NotEmpty(t, created.ID)
	assert.NotContains(t, []string{"1", "2", "3", "4", "5", "6", "7", "8"}, created.ID)
	assert.Equal(t, "2025-06-01", created.CreatedAt)
	assert.Equal(t, "2025-06-01", created.UpdatedAt)
	assert.Equal(t, []string{}, created.Related)

	all := service.GetAllProducts()
	assert.Len(t, all, 9)
	assert.Equal(t, created.ID, all[8].ID)

	stored, err := repo.Load()
	require.NoError(t, err)
	assert.Len(t, stored, 9)
	assert.Equal(t, created.ID, stored[8].ID)
}

func TestProductService_CreateProduct_StatusMatchesQuantity(t *testing.T) {
	service, _ := newSeededService(t)
	for _, q := range []int{0, 1, 10, 11, 250} {
		created, err := service.CreateProduct(testInput(q))
		require.NoError(t, err)
		assert.Equal(t, models.DeriveStatus(q), created.Status)
	}
}

func TestProductService_CreateProduct_SkipsTakenIDs(t *testing.T) {
	repo := repositories.NewKVSnapshotRepository(repositories.NewMemoryKeyValueRepository(), "")
	generated := []string{"3", "", "7", "fresh-id"}
	service := services.NewProductService(repo, services.WithIDGenerator(func() string {
		id := generated[0]
		generated = generated[1:]
		return id
	}))

	created, err := service.CreateProduct(testInput(1))
	require.NoError(t, err)
	assert.Equal(t, "fresh-id", created.ID)
}

func TestProductService_CreateProduct_CopiesInput(t *testing.T) {
	service, _ := newSeededService(t)
	input := testInput(3)
	input.Gallery = []string{"g1.jpg"}
	sale := decimal.NewFromInt(8)
	input.SalePrice = &sale

	created, err := service.CreateProduct(input)
	require.NoError(t, err)

	input.Gallery[0] = "changed.jpg"
	created.Gallery[0] = "changed-too.jpg"

	stored, err := service.GetProductByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1.jpg"}, stored.Gallery)
	assert.True(t, stored.SalePrice.Equal(decimal.NewFromInt(8)))
}

func TestProductService_UpdateProduct_Quantity(t *testing.T) {
	service, repo := newSeededService(t)
	before, err := service.GetProductByID("1")
	require.NoError(t, err)
	require.Equal(t, models.StatusInStock, before.Status)

	zero := 0
	updated, err := service.UpdateProduct("1", models.ProductUpdate{Quantity: &zero})
	require.NoError(t, err)

	assert.Equal(t, models.StatusOutOfStock, updated.Status)
	assert.Equal(t, 0, updated.Quantity)
	assert.Equal(t, "2025-06-01", updated.UpdatedAt)
	assert.NotEqual(t, before.UpdatedAt, updated.UpdatedAt)

	// Untouched fields keep their values.
	assert.Equal(t, before.Name, updated.Name)
	assert.Equal(t, before.SKU, updated.SKU)
	assert.Equal(t, before.CreatedAt, updated.CreatedAt)
	assert.Equal(t, before.Related, updated.Related)
	assert.True(t, before.Price.Equal(updated.Price))
	assert.True(t, before.SalePrice.Equal(*updated.SalePrice))

	stored, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, models.StatusOutOfStock, stored[0].Status)
}

func TestProductService_UpdateProduct_WithoutQuantityKeepsStatus(t *testing.T) {
	service, _ := newSeededService(t)
	name := "Midnight Oud Intense"
	updated, err := service.UpdateProduct("6", models.ProductUpdate{Name: &name, ClearSalePrice: true})
	require.NoError(t, err)
	assert.Equal(t, "Midnight Oud Intense", updated.Name)
	assert.Equal(t, models.StatusLowStock, updated.Status)
	assert.Nil(t, updated.SalePrice)
}

func TestProductService_UpdateProduct_SalePrice(t *testing.T) {
	service, _ := newSeededService(t)
	sale := decimal.RequireFromString("99.50")
	updated, err := service.UpdateProduct("8", models.ProductUpdate{SalePrice: &sale})
	require.NoError(t, err)
	require.NotNil(t, updated.SalePrice)
	assert.Equal(t, "99.5", updated.SalePrice.String())

	updated, err = service.UpdateProduct("8", models.ProductUpdate{ClearSalePrice: true, SalePrice: &sale})
	require.NoError(t, err)
	assert.Nil(t, updated.SalePrice)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	mockRepo.On("Load").Return(services.DefaultCatalog(), nil).Once()
	service := services.NewProductService(mockRepo)

	qty := 3
	updated, err := service.UpdateProduct("missing", models.ProductUpdate{Quantity: &qty})
	assert.ErrorIs(t, err, services.ErrProductNotFound)
	assert.Nil(t, updated)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	service, repo := newSeededService(t)

	require.NoError(t, service.DeleteProduct("2"))
	_, err := service.GetProductByID("2")
	assert.ErrorIs(t, err, services.ErrProductNotFound)

	// Idempotent.
	assert.NoError(t, service.DeleteProduct("2"))
	assert.Len(t, service.GetAllProducts(), 7)

	// No cascade: product 1 still references the deleted product.
	p1, err := service.GetProductByID("1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, p1.Related)

	stored, err := repo.Load()
	require.NoError(t, err)
	assert.NotContains(t, ids(stored), "2")
}

func TestProductService_SearchProducts(t *testing.T) {
	service, _ := newSeededService(t)

	assert.Equal(t, ids(service.GetAllProducts()), ids(service.SearchProducts("")))
	assert.Len(t, service.SearchProducts("   "), 8)

	byName := service.SearchProducts("oud")
	assert.Equal(t, []string{"1"}, ids(byName))

	bySKU := service.SearchProducts("MID")
	assert.Equal(t, []string{"1"}, ids(bySKU))
	assert.Equal(t, "PERF-001-MID", bySKU[0].SKU)

	byCategory := service.SearchProducts("floral")
	assert.Equal(t, []string{"2", "5"}, ids(byCategory))

	assert.Equal(t, []string{"3", "7"}, ids(service.SearchProducts("ORIENTAL")))
	assert.Empty(t, service.SearchProducts("vetiver"))
}

func TestProductService_SetRelatedProducts(t *testing.T) {
	service, _ := newSeededService(t)

	require.NoError(t, service.SetRelatedProducts("5", []string{"1", "does-not-exist"}))
	p, err := service.GetProductByID("5")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "does-not-exist"}, p.Related)
	assert.Equal(t, "2025-06-01", p.UpdatedAt)

	err = service.SetRelatedProducts("nope", []string{"1"})
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestProductService_RoundTrip(t *testing.T) {
	kv := repositories.NewMemoryKeyValueRepository()
	repo := repositories.NewKVSnapshotRepository(kv, "")
	service := services.NewProductService(repo, services.WithClock(fixedClock))

	_, err := service.CreateProduct(testInput(12))
	require.NoError(t, err)
	require.NoError(t, service.SetRelatedProducts("3", []string{"1", "ghost"}))
	before := service.GetAllProducts()

	require.NoError(t, service.Close())

	reloaded := services.NewProductService(repositories.NewKVSnapshotRepository(kv, ""))
	after := reloaded.GetAllProducts()
	assert.Equal(t, ids(before), ids(after))
	assert.JSONEq(t, mustJSON(t, before), mustJSON(t, after))
}

func TestProductService_CorruptSnapshotFallsBackToSeed(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	mockRepo.On("Load").Return(nil, errors.New("failed to decode snapshot")).Once()
	mockRepo.On("Save", mock.AnythingOfType("[]models.Product")).Return(nil).Once()

	service := services.NewProductService(mockRepo)
	service.Init()
	service.Init()

	assert.Len(t, service.GetAllProducts(), 8)
	mockRepo.AssertExpectations(t)
}

func TestProductService_LoadRederivesStatus(t *testing.T) {
	stale := services.DefaultCatalog()[:1]
	stale[0].Quantity = 2
	mockRepo := new(MockSnapshotRepository)
	mockRepo.On("Load").Return(stale, nil).Once()

	service := services.NewProductService(mockRepo)
	p, err := service.GetProductByID("1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusLowStock, p.Status)
}

func TestProductService_PersistFailureRollsBack(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	mockRepo.On("Load").Return(services.DefaultCatalog(), nil).Once()
	mockRepo.On("Save", mock.Anything).Return(errors.New("storage full"))
	service := services.NewProductService(mockRepo)

	_, err := service.CreateProduct(testInput(4))
	assert.ErrorContains(t, err, "storage full")
	assert.Len(t, service.GetAllProducts(), 8)

	qty := 0
	_, err = service.UpdateProduct("1", models.ProductUpdate{Quantity: &qty})
	assert.Error(t, err)
	p, _ := service.GetProductByID("1")
	assert.Equal(t, 42, p.Quantity)
	assert.Equal(t, models.StatusInStock, p.Status)

	assert.Error(t, service.DeleteProduct("1"))
	assert.Len(t, service.GetAllProducts(), 8)
}

func TestProductService_PublishesEvents(t *testing.T) {
	publisher := new(MockEventPublisher)
	repo := repositories.NewKVSnapshotRepository(repositories.NewMemoryKeyValueRepository(), "")
	service := services.NewProductService(repo, services.WithEventPublisher(publisher))

	publisher.On("PublishCatalogEvent", services.EventProductCreated, mock.Anything).Return(nil).Once()
	publisher.On("PublishCatalogEvent", services.EventProductUpdated, mock.Anything).Return(errors.New("broker down")).Once()
	publisher.On("PublishCatalogEvent", services.EventProductDeleted, mock.MatchedBy(func(payload map[string]interface{}) bool {
		return payload["productId"] == "4"
	})).Return(nil).Once()

	_, err := service.CreateProduct(testInput(20))
	require.NoError(t, err)
	// A publish failure does not fail the mutation.
	require.NoError(t, service.SetRelatedProducts("4", nil))
	require.NoError(t, service.DeleteProduct("4"))
	// Deleting a missing product publishes nothing.
	require.NoError(t, service.DeleteProduct("4"))

	publisher.AssertExpectations(t)
}

func TestProductService_Stats(t *testing.T) {
	service, _ := newSeededService(t)

	stats := service.Stats()
	assert.Equal(t, 8, stats.Total)
	assert.Equal(t, 4, stats.Featured)
	assert.Equal(t, 1, stats.OutOfStock)
	assert.Equal(t, "1919.92", stats.TotalValue.StringFixed(2))
}
