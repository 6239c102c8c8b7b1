package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
	"github.com/zara-amin/zeenat-jewels-api/models"
	"github.com/zara-amin/zeenat-jewels-api/repositories"
)

// ProductView is the product portion of the composite detail response,
// with images decoded into an ordered list
type ProductView struct {
	ID              uint             `json:"id"`
	UniqueKey       string           `json:"unique_key"`
	Name            string           `json:"name"`
	FullName        string           `json:"full_name"`
	Type            string           `json:"type"`
	Description     string           `json:"description"`
	RetailPrice     decimal.Decimal  `json:"retail_price"`
	OfferPrice      *decimal.Decimal `json:"offer_price"`
	Currency        string           `json:"currency"`
	DeliveryCharges decimal.Decimal  `json:"delivery_charges"`
	Stock           int              `json:"stock"`
	Status          string           `json:"status"`
	Images          []string         `json:"images"`
	Available       int              `json:"available"`
	Sold            int              `json:"sold"`
	Category        string           `json:"category"`
	CreatedAt       time.Time        `json:"created_at"`
}

// WhatsAppInfo carries the contact deep link shown on the detail page
type WhatsAppInfo struct {
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// OrderInfo is the static order block of the detail page. TotalPrice is
// the effective price plus delivery charges; the rest never varies per
// product.
type OrderInfo struct {
	TotalPrice     decimal.Decimal `json:"total_price"`
	DeliveryTime   string          `json:"delivery_time"`
	PaymentMethods []string        `json:"payment_methods"`
	Warranty       string          `json:"warranty"`
	ReturnPolicy   string          `json:"return_policy"`
}

// ProductDetail is the composite view backing the storefront detail page
type ProductDetail struct {
	Product      ProductView  `json:"product"`
	WhatsAppInfo WhatsAppInfo `json:"whatsapp_info"`
	OrderInfo    OrderInfo    `json:"order_info"`
}

// CatalogService formats product detail views
type CatalogService struct {
	products      repositories.ProductRepository
	whatsappPhone string
}

// NewCatalogService builds a CatalogService. whatsappPhone is the shop's
// contact number embedded in every detail view.
func NewCatalogService(products repositories.ProductRepository, whatsappPhone string) *CatalogService {
	return &CatalogService{products: products, whatsappPhone: whatsappPhone}
}

// DetailByID returns the composite detail view for an internal id
func (s *CatalogService) DetailByID(ctx context.Context, id uint) (*ProductDetail, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return s.buildDetail(product), nil
}

// DetailByKey returns the composite detail view for a public unique key
func (s *CatalogService) DetailByKey(ctx context.Context, uniqueKey string) (*ProductDetail, error) {
	product, err := s.products.FindByKey(ctx, uniqueKey)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return s.buildDetail(product), nil
}

func (s *CatalogService) buildDetail(p *models.Product) *ProductDetail {
	categoryName := ""
	if p.Category != nil {
		categoryName = p.Category.Name
	}

	price := p.EffectivePrice()
	// Format with the value's own precision so a fractional price is
	// quoted exactly rather than rounded
	precision := 0
	if exp := price.Exponent(); exp < 0 {
		precision = int(-exp)
	}
	ac := accounting.Accounting{Symbol: p.Currency + " ", Precision: precision}
	message := fmt.Sprintf(
		"Hi! I'm interested in %s (Key: %s). Price: %s. Can you provide more details?",
		p.Name, p.UniqueKey, ac.FormatMoney(price),
	)

	return &ProductDetail{
		Product: ProductView{
			ID:              p.ID,
			UniqueKey:       p.UniqueKey,
			Name:            p.Name,
			FullName:        p.FullName,
			Type:            p.Type,
			Description:     p.Description,
			RetailPrice:     p.RetailPrice,
			OfferPrice:      p.OfferPrice,
			Currency:        p.Currency,
			DeliveryCharges: p.DeliveryCharges,
			Stock:           p.Stock,
			Status:          p.Status,
			Images:          p.ImageList(),
			Available:       p.Available,
			Sold:            p.Sold,
			Category:        categoryName,
			CreatedAt:       p.CreatedAt,
		},
		WhatsAppInfo: WhatsAppInfo{
			Phone:       s.whatsappPhone,
			Message:     message,
			WhatsAppURL: whatsappURL(s.whatsappPhone, message),
		},
		OrderInfo: OrderInfo{
			TotalPrice:     p.EffectivePrice().Add(p.DeliveryCharges),
			DeliveryTime:   "2-3 business days",
			PaymentMethods: []string{"Cash on Delivery", "Bank Transfer", "Online Payment"},
			Warranty:       "1 year warranty",
			ReturnPolicy:   "7 days return policy",
		},
	}
}

// whatsappURL builds the wa.me deep link from a display phone number and
// a prefilled message
func whatsappURL(phone, message string) string {
	digits := strings.NewReplacer("+", "", "-", "", " ", "").Replace(phone)
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(message))
}
