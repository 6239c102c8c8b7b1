package cmd

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/zara-amin/zeenat-jewels-api/config"
	"github.com/zara-amin/zeenat-jewels-api/models"
	"gorm.io/gorm"
)

// RunCli dispatches the management subcommands. The server process calls
// this when it is started with any arguments.
func RunCli() {
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openDatabase()
					if err != nil {
						return err
					}
					if err := migrate(db); err != nil {
						return err
					}
					log.Println("Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Populate the catalog with sample jewelry data",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openDatabase()
					if err != nil {
						return err
					}
					if err := migrate(db); err != nil {
						return err
					}
					if err := Seed(db); err != nil {
						return err
					}
					log.Println("Database seeded with sample data successfully")
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDatabase() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return config.ConnectDatabase(cfg)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
}
