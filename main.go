package main

import (
	"log"
	"os"

	"github.com/zara-amin/zeenat-jewels-api/cmd"
	"github.com/zara-amin/zeenat-jewels-api/config"
	"github.com/zara-amin/zeenat-jewels-api/models"
	"github.com/zara-amin/zeenat-jewels-api/routes"
	"github.com/zara-amin/zeenat-jewels-api/services"
	"gorm.io/gorm"
)

func main() {
	// Basic logging
	log.Println("Starting Zeenat Jewels API server...")

	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := autoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	storage, err := services.NewS3Service(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize S3 storage: %v", err)
	}

	router, err := routes.NewRouter(cfg, db, storage)
	if err != nil {
		log.Fatalf("Failed to set up router: %v", err)
	}

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// autoMigrate creates or updates the schema for every model
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
}
