package repositories

import (
	"context"
	"strings"

	"github.com/zara-amin/zeenat-jewels-api/models"
	"gorm.io/gorm"
)

// DefaultListLimit caps unpaginated product listings
const DefaultListLimit = 100

// ProductFilter holds the optional listing predicates. Zero values mean
// "no constraint on that dimension"; all set filters are combined with AND.
type ProductFilter struct {
	CategoryName string // case-insensitive substring match on the category name
	CategoryID   uint
	Status       string
	Limit        int
	Offset       int
}

// ProductRepository is the interface for product persistence operations
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	FindByKey(ctx context.Context, uniqueKey string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, product *models.Product) error
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository returns a gorm-backed ProductRepository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db}
}

// List applies the filter conjunctively, then paginates. Results are ordered
// by primary key ascending so pagination is reproducible.
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).Preload("Category")

	if filter.CategoryName != "" {
		pattern := "%" + strings.ToLower(filter.CategoryName) + "%"
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("LOWER(categories.name) LIKE ?", pattern)
	}
	if filter.CategoryID != 0 {
		query = query.Where("products.category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		query = query.Where("products.status = ?", filter.Status)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var products []models.Product
	err := query.
		Order("products.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	return products, err
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&product, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByKey(ctx context.Context, uniqueKey string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Preload("Category").Where("unique_key = ?", uniqueKey).First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Delete(product).Error
}

func (r *productRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
