package repositories

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/zara-amin/zeenat-jewels-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, categoryID uint, status string) *models.Product {
	t.Helper()
	product := models.Product{
		Name:        name,
		RetailPrice: decimal.NewFromInt(100),
		Status:      status,
		CategoryID:  categoryID,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	return &product
}

func TestProductList_Filters(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	rings := models.Category{Name: "Rings"}
	pendants := models.Category{Name: "Pendants"}
	db.Create(&rings)
	db.Create(&pendants)

	createTestProduct(t, db, "Gold Ring", rings.ID, models.StatusAvailable)
	createTestProduct(t, db, "Silver Ring", rings.ID, models.StatusSold)
	createTestProduct(t, db, "Ruby Pendant", pendants.ID, models.StatusAvailable)

	tests := []struct {
		name          string
		filter        ProductFilter
		expectedNames []string
	}{
		{
			name:          "no filter returns everything",
			filter:        ProductFilter{},
			expectedNames: []string{"Gold Ring", "Silver Ring", "Ruby Pendant"},
		},
		{
			name:          "filter by category id",
			filter:        ProductFilter{CategoryID: pendants.ID},
			expectedNames: []string{"Ruby Pendant"},
		},
		{
			name:          "filter by category name is case-insensitive",
			filter:        ProductFilter{CategoryName: "ring"},
			expectedNames: []string{"Gold Ring", "Silver Ring"},
		},
		{
			name:          "category name substring matches",
			filter:        ProductFilter{CategoryName: "PEND"},
			expectedNames: []string{"Ruby Pendant"},
		},
		{
			name:          "filter by status",
			filter:        ProductFilter{Status: models.StatusSold},
			expectedNames: []string{"Silver Ring"},
		},
		{
			name:          "filters combine with AND",
			filter:        ProductFilter{CategoryName: "ring", Status: models.StatusAvailable},
			expectedNames: []string{"Gold Ring"},
		},
		{
			name:          "no match yields empty result",
			filter:        ProductFilter{CategoryName: "bangle"},
			expectedNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.List(ctx, tt.filter)
			assert.NoError(t, err)

			names := make([]string, 0, len(products))
			for _, p := range products {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.expectedNames, names)
		})
	}
}

func TestProductList_PaginationOrdering(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	rings := models.Category{Name: "Rings"}
	db.Create(&rings)

	for i := 0; i < 5; i++ {
		createTestProduct(t, db, "Ring", rings.ID, models.StatusAvailable)
	}

	// First page
	page1, err := repo.List(ctx, ProductFilter{Limit: 2, Offset: 0})
	assert.NoError(t, err)
	assert.Len(t, page1, 2)
	assert.Equal(t, uint(1), page1[0].ID)
	assert.Equal(t, uint(2), page1[1].ID)

	// Second page continues where the first left off
	page2, err := repo.List(ctx, ProductFilter{Limit: 2, Offset: 2})
	assert.NoError(t, err)
	assert.Len(t, page2, 2)
	assert.Equal(t, uint(3), page2[0].ID)
	assert.Equal(t, uint(4), page2[1].ID)

	// Offset past the end
	page4, err := repo.List(ctx, ProductFilter{Limit: 2, Offset: 10})
	assert.NoError(t, err)
	assert.Len(t, page4, 0)

	// Negative offset is treated as zero
	defaulted, err := repo.List(ctx, ProductFilter{Offset: -3})
	assert.NoError(t, err)
	assert.Len(t, defaulted, 5)
}

func TestProductList_PreloadsCategory(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewProductRepository(db)

	rings := models.Category{Name: "Rings"}
	db.Create(&rings)
	createTestProduct(t, db, "Gold Ring", rings.ID, models.StatusAvailable)

	products, err := repo.List(context.Background(), ProductFilter{})
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	if assert.NotNil(t, products[0].Category) {
		assert.Equal(t, "Rings", products[0].Category.Name)
	}
}

func TestProductFindByIDAndKey(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	rings := models.Category{Name: "Rings"}
	db.Create(&rings)
	created := createTestProduct(t, db, "Gold Ring", rings.ID, models.StatusAvailable)

	byID, err := repo.FindByID(ctx, created.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, byID) {
		assert.Equal(t, "Gold Ring", byID.Name)
	}

	byKey, err := repo.FindByKey(ctx, created.UniqueKey)
	assert.NoError(t, err)
	if assert.NotNil(t, byKey) {
		assert.Equal(t, created.ID, byKey.ID)
	}

	missing, err := repo.FindByID(ctx, 9999)
	assert.NoError(t, err)
	assert.Nil(t, missing, "Unknown id should return nil without error")

	missingKey, err := repo.FindByKey(ctx, "no-such-key")
	assert.NoError(t, err)
	assert.Nil(t, missingKey, "Unknown key should return nil without error")
}

func TestProductCountByCategory(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	rings := models.Category{Name: "Rings"}
	empty := models.Category{Name: "Bangles"}
	db.Create(&rings)
	db.Create(&empty)

	createTestProduct(t, db, "Gold Ring", rings.ID, models.StatusAvailable)
	createTestProduct(t, db, "Silver Ring", rings.ID, models.StatusAvailable)

	count, err := repo.CountByCategory(ctx, rings.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	zero, err := repo.CountByCategory(ctx, empty.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), zero)
}

func TestProductDelete(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	rings := models.Category{Name: "Rings"}
	db.Create(&rings)
	product := createTestProduct(t, db, "Gold Ring", rings.ID, models.StatusAvailable)

	assert.NoError(t, repo.Delete(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)
}
