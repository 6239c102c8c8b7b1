package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/zara-amin/zeenat-jewels-api/config"
	"github.com/zara-amin/zeenat-jewels-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenDB opens a fresh in-memory database with the full schema
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// TestConfig returns a configuration suitable for tests. The database URL
// is a placeholder; tests connect through OpenDB instead.
func TestConfig() *config.Config {
	return &config.Config{
		DatabaseURL:              "sqlite://:memory:",
		Port:                     "8080",
		GoEnv:                    "test",
		SecretKey:                "test-secret",
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: 60,
		WhatsAppPhone:            "+92-300-1234567",
		AWSRegion:                "us-east-1",
		AWSS3Bucket:              "test-bucket",
	}
}

// CreateUser inserts a user with a bcrypt-hashed password
func CreateUser(t *testing.T, db *gorm.DB, email, password string, isAdmin bool) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Email:          email,
		FullName:       "Test User",
		HashedPassword: string(hashed),
		IsActive:       true,
		IsAdmin:        isAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

// CreateCategory inserts a category
func CreateCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := models.Category{Name: name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	return &category
}

// CreateProduct inserts a product priced in whole units. offer may be 0
// to leave the offer price unset.
func CreateProduct(t *testing.T, db *gorm.DB, categoryID uint, name string, retail, offer int64) *models.Product {
	t.Helper()

	product := models.Product{
		Name:            name,
		RetailPrice:     decimal.NewFromInt(retail),
		DeliveryCharges: decimal.NewFromInt(0),
		Stock:           10,
		Status:          models.StatusAvailable,
		CategoryID:      categoryID,
	}
	if offer > 0 {
		offerPrice := decimal.NewFromInt(offer)
		product.OfferPrice = &offerPrice
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	return &product
}
