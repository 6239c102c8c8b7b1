package services

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/zara-amin/zeenat-jewels-api/models"
	"github.com/zara-amin/zeenat-jewels-api/repositories"
)

// OrderItemRequest is one requested line of an order. Name, ImageURL and
// UnitPrice are snapshots supplied by the storefront at order time.
type OrderItemRequest struct {
	ProductID uint            `json:"product_id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	ImageURL  string          `json:"image_url"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest is the payload for placing an order. Address line 2
// and postal code are the only optional contact fields.
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name" validate:"required"`
	Email        string             `json:"email" validate:"required,email"`
	Phone        string             `json:"phone" validate:"required"`
	AddressLine1 string             `json:"address_line1" validate:"required"`
	AddressLine2 string             `json:"address_line2"`
	City         string             `json:"city" validate:"required"`
	PostalCode   string             `json:"postal_code"`
	Country      string             `json:"country" validate:"required"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderService validates order requests, prices them and persists them
type OrderService struct {
	orders   repositories.OrderRepository
	validate *validator.Validate
}

// NewOrderService builds an OrderService
func NewOrderService(orders repositories.OrderRepository, validate *validator.Validate) *OrderService {
	return &OrderService{orders: orders, validate: validate}
}

// Create prices every line (line total = unit price x quantity), sums the
// order total and persists the order with all its items in one transaction.
// userID is nil for guest checkout. Nothing is persisted on validation
// failure.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest, userID *uint) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, NewValidationError("EMPTY_ORDER", "Order must contain at least one item")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("VALIDATION_ERROR", err.Error())
	}
	for _, item := range req.Items {
		if item.UnitPrice.IsNegative() {
			return nil, NewValidationError("NEGATIVE_PRICE", "Unit price must not be negative")
		}
	}

	order := models.Order{
		UserID:       userID,
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		Status:       models.OrderStatusPending,
	}

	total := decimal.Zero
	for _, item := range req.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			ImageURL:  item.ImageURL,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})
	}
	order.TotalAmount = total

	if err := s.orders.Create(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns all orders with their items
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

// Get returns one order by id, or ErrNotFound
func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}
