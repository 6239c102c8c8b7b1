package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/zara-amin/zeenat-jewels-api/models"
	"github.com/zara-amin/zeenat-jewels-api/repositories"
	"gorm.io/gorm"
)

var seedCategories = []string{
	"Anklet",
	"Bangle",
	"Bracelet",
	"Combo",
	"Ear Stud",
	"Earing",
	"Hoop",
	"Pendant",
	"Ring",
	"Wall Frame",
}

// Seed inserts ten sample products into every empty category. Categories
// that already hold products are left alone so the command is safe to
// rerun.
func Seed(db *gorm.DB) error {
	ctx := context.Background()
	categories := repositories.NewCategoryRepository(db)
	products := repositories.NewProductRepository(db)

	for _, name := range seedCategories {
		category, err := categories.GetOrCreate(ctx, name)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}

		count, err := products.CountByCategory(ctx, category.ID)
		if err != nil {
			return fmt.Errorf("count products in %q: %w", name, err)
		}
		if count > 0 {
			log.Printf("%s already has data, skipping", name)
			continue
		}

		for i := 1; i <= 10; i++ {
			product, err := sampleProduct(name, category.ID, i)
			if err != nil {
				return fmt.Errorf("build sample product for %q: %w", name, err)
			}
			if err := products.Create(ctx, product); err != nil {
				return fmt.Errorf("insert sample product for %q: %w", name, err)
			}
		}
		log.Printf("Inserted 10 products into %s", name)
	}

	return nil
}

func sampleProduct(categoryName string, categoryID uint, i int) (*models.Product, error) {
	offer := decimal.NewFromInt(int64(90 + (i-1)*5))
	product := &models.Product{
		Name:            fmt.Sprintf("%s Item %d", categoryName, i),
		FullName:        fmt.Sprintf("Full %s Item %d", categoryName, i),
		Type:            categoryName,
		RetailPrice:     decimal.NewFromInt(int64(100 + (i-1)*10)),
		OfferPrice:      &offer,
		Currency:        "USD",
		Description:     fmt.Sprintf("This is a description for %s item %d.", categoryName, i),
		DeliveryCharges: decimal.NewFromInt(5),
		Stock:           50 - (i - 1),
		Status:          models.StatusAvailable,
		Available:       1,
		Sold:            0,
		CategoryID:      categoryID,
	}
	if err := product.SetImages([]string{fmt.Sprintf("image_%d.jpg", i)}); err != nil {
		return nil, err
	}
	return product, nil
}
