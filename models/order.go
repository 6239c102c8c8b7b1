package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status values
const (
	OrderStatusPending = "pending"
)

// Order represents a customer order with its shipping details.
// UserID is nil for guest checkout.
type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       *uint           `gorm:"index" json:"user_id,omitempty"`
	CustomerName string          `gorm:"not null" json:"customer_name"`
	Email        string          `gorm:"not null" json:"email"`
	Phone        string          `gorm:"not null" json:"phone"`
	AddressLine1 string          `gorm:"not null" json:"address_line1"`
	AddressLine2 string          `json:"address_line2"`
	City         string          `gorm:"not null" json:"city"`
	PostalCode   string          `json:"postal_code"`
	Country      string          `gorm:"not null" json:"country"`
	Status       string          `gorm:"not null;default:'pending'" json:"status"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0" json:"total_amount"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. Name, ImageURL and UnitPrice are
// snapshots taken from the product at order time; ProductID carries no
// foreign key so deleting a product never alters historical orders.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Name      string          `gorm:"not null" json:"name"`
	ImageURL  string          `json:"image_url"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	LineTotal decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"line_total"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
