package repositories

import (
	"context"

	"github.com/zara-amin/zeenat-jewels-api/models"
	"gorm.io/gorm"
)

// OrderRepository is the interface for order persistence operations
type OrderRepository interface {
	// Create persists the order and all its items atomically
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id uint) (*models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository returns a gorm-backed OrderRepository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db}
}

// Create writes the order row and its items in a single transaction so a
// partially persisted order is never observable.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *orderRepository) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items").Order("id ASC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}
