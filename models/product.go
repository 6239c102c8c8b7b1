package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product status values
const (
	StatusAvailable  = "available"
	StatusOutOfStock = "out_of_stock"
	StatusSold       = "sold"
)

// Product represents a catalog item. UniqueKey is the opaque identifier
// used in public-facing URLs so sequential ids are never exposed.
type Product struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	UniqueKey       string           `gorm:"uniqueIndex;not null" json:"unique_key"`
	Name            string           `gorm:"not null" json:"name"`
	FullName        string           `json:"full_name"`
	Type            string           `json:"type"`
	RetailPrice     decimal.Decimal  `gorm:"type:decimal(16,2);not null" json:"retail_price"`
	OfferPrice      *decimal.Decimal `gorm:"type:decimal(16,2)" json:"offer_price"`
	Currency        string           `gorm:"size:8;not null;default:'PKR'" json:"currency"`
	Description     string           `gorm:"type:text" json:"description"`
	DeliveryCharges decimal.Decimal  `gorm:"type:decimal(16,2);not null;default:0" json:"delivery_charges"`
	Stock           int              `gorm:"not null;default:0" json:"stock"`
	Status          string           `gorm:"not null;default:'available'" json:"status"` // available, out_of_stock, sold
	Images          string           `gorm:"type:text" json:"images"`                    // JSON array of image references
	Available       int              `gorm:"not null;default:0" json:"available"`
	Sold            int              `gorm:"not null;default:0" json:"sold"`
	CategoryID      uint             `gorm:"not null;index" json:"category_id"`
	Category        *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// BeforeCreate assigns the public unique key when none was provided
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.UniqueKey == "" {
		p.UniqueKey = uuid.New().String()
	}
	if p.Currency == "" {
		p.Currency = "PKR"
	}
	if p.Status == "" {
		p.Status = StatusAvailable
	}
	return nil
}

// EffectivePrice returns the offer price when one is set, else the retail price
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.OfferPrice != nil {
		return *p.OfferPrice
	}
	return p.RetailPrice
}

// SetImages stores the image references as a JSON array
func (p *Product) SetImages(images []string) error {
	if len(images) == 0 {
		p.Images = ""
		return nil
	}
	data, err := json.Marshal(images)
	if err != nil {
		return err
	}
	p.Images = string(data)
	return nil
}

// ImageList decodes the stored image references. Rows written before the
// encoding was canonicalized may hold a comma-joined or bare string; those
// are still readable but never written back in that form.
func (p *Product) ImageList() []string {
	if p.Images == "" {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal([]byte(p.Images), &images); err == nil {
		return images
	}
	parts := strings.Split(p.Images, ",")
	images = make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			images = append(images, trimmed)
		}
	}
	return images
}

// AddImage appends one image reference, re-encoding canonically
func (p *Product) AddImage(ref string) error {
	return p.SetImages(append(p.ImageList(), ref))
}
