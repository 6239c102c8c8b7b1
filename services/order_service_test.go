package services

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/zara-amin/zeenat-jewels-api/models"
	"github.com/zara-amin/zeenat-jewels-api/repositories"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrderService(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return NewOrderService(repositories.NewOrderRepository(db), validator.New()), db
}

func validOrderRequest(items ...OrderItemRequest) CreateOrderRequest {
	return CreateOrderRequest{
		CustomerName: "Ayesha Khan",
		Email:        "ayesha@example.com",
		Phone:        "+92-300-5556677",
		AddressLine1: "14 Mall Road",
		City:         "Lahore",
		Country:      "Pakistan",
		Items:        items,
	}
}

func TestOrderCreate_PricesLinesAndTotal(t *testing.T) {
	orders, _ := setupOrderService(t)

	req := validOrderRequest(
		OrderItemRequest{ProductID: 1, Name: "Gold Ring", UnitPrice: decimal.NewFromInt(2000), Quantity: 2},
		OrderItemRequest{ProductID: 2, Name: "Pendant", UnitPrice: decimal.RequireFromString("149.50"), Quantity: 3},
	)

	order, err := orders.Create(context.Background(), req, nil)
	assert.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	assert.Equal(t, "4000", order.Items[0].LineTotal.String())
	assert.Equal(t, "448.5", order.Items[1].LineTotal.String())
	assert.Equal(t, "4448.5", order.TotalAmount.String(), "Total is the sum of all line totals")
}

func TestOrderCreate_AttachesUser(t *testing.T) {
	orders, _ := setupOrderService(t)

	userID := uint(9)
	req := validOrderRequest(OrderItemRequest{ProductID: 1, Name: "Ring", UnitPrice: decimal.NewFromInt(100), Quantity: 1})

	order, err := orders.Create(context.Background(), req, &userID)
	assert.NoError(t, err)
	if assert.NotNil(t, order.UserID) {
		assert.Equal(t, userID, *order.UserID)
	}
}

func TestOrderCreate_ZeroPriceItemIsAllowed(t *testing.T) {
	orders, _ := setupOrderService(t)

	// Free promotional items are fine, only negative prices are rejected
	req := validOrderRequest(OrderItemRequest{ProductID: 1, Name: "Gift Box", UnitPrice: decimal.Zero, Quantity: 1})

	order, err := orders.Create(context.Background(), req, nil)
	assert.NoError(t, err)
	assert.True(t, order.TotalAmount.IsZero())
}

func TestOrderCreate_Rejections(t *testing.T) {
	orders, db := setupOrderService(t)

	tests := []struct {
		name         string
		req          CreateOrderRequest
		expectedCode string
	}{
		{
			name:         "empty items",
			req:          validOrderRequest(),
			expectedCode: "EMPTY_ORDER",
		},
		{
			name: "missing contact fields",
			req: CreateOrderRequest{
				Items: []OrderItemRequest{{ProductID: 1, Name: "Ring", UnitPrice: decimal.NewFromInt(100), Quantity: 1}},
			},
			expectedCode: "VALIDATION_ERROR",
		},
		{
			name:         "zero quantity",
			req:          validOrderRequest(OrderItemRequest{ProductID: 1, Name: "Ring", UnitPrice: decimal.NewFromInt(100), Quantity: 0}),
			expectedCode: "VALIDATION_ERROR",
		},
		{
			name:         "negative quantity",
			req:          validOrderRequest(OrderItemRequest{ProductID: 1, Name: "Ring", UnitPrice: decimal.NewFromInt(100), Quantity: -2}),
			expectedCode: "VALIDATION_ERROR",
		},
		{
			name:         "negative unit price",
			req:          validOrderRequest(OrderItemRequest{ProductID: 1, Name: "Ring", UnitPrice: decimal.NewFromInt(-5), Quantity: 1}),
			expectedCode: "NEGATIVE_PRICE",
		},
		{
			name:         "item missing name",
			req:          validOrderRequest(OrderItemRequest{ProductID: 1, UnitPrice: decimal.NewFromInt(100), Quantity: 1}),
			expectedCode: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := orders.Create(context.Background(), tt.req, nil)

			var validationErr *ValidationError
			if assert.True(t, errors.As(err, &validationErr)) {
				assert.Equal(t, tt.expectedCode, validationErr.Code)
			}
		})
	}

	// Nothing was persisted by any rejected request
	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestOrderGet(t *testing.T) {
	orders, _ := setupOrderService(t)
	ctx := context.Background()

	req := validOrderRequest(OrderItemRequest{ProductID: 1, Name: "Ring", UnitPrice: decimal.NewFromInt(100), Quantity: 1})
	created, err := orders.Create(ctx, req, nil)
	assert.NoError(t, err)

	found, err := orders.Get(ctx, created.ID)
	assert.NoError(t, err)
	assert.Len(t, found.Items, 1)

	_, err = orders.Get(ctx, 9999)
	assert.True(t, errors.Is(err, ErrNotFound))
}
