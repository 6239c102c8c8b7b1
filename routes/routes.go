package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/zara-amin/zeenat-jewels-api/config"
	"github.com/zara-amin/zeenat-jewels-api/controllers"
	"github.com/zara-amin/zeenat-jewels-api/middleware"
	"github.com/zara-amin/zeenat-jewels-api/repositories"
	"github.com/zara-amin/zeenat-jewels-api/services"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and controllers onto a gin
// engine. Integration tests build the same router against an in-memory
// database and a mock storage backend.
func NewRouter(cfg *config.Config, db *gorm.DB, storage services.S3Interface) (*gin.Engine, error) {
	validate := validator.New()

	users := repositories.NewUserRepository(db)
	categories := repositories.NewCategoryRepository(db)
	products := repositories.NewProductRepository(db)
	orders := repositories.NewOrderRepository(db)

	tokens, err := services.NewTokenService(cfg)
	if err != nil {
		return nil, err
	}
	authService := services.NewAuthService(users, tokens, validate)
	orderService := services.NewOrderService(orders, validate)
	catalogService := services.NewCatalogService(products, cfg.WhatsAppPhone)

	authController := controllers.NewAuthController(authService)
	categoryController := controllers.NewCategoryController(categories)
	productController := controllers.NewProductController(products, catalogService)
	orderController := controllers.NewOrderController(orderService)
	uploadController := controllers.NewUploadController(products, storage)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus(db))

		auth := v1.Group("/auth")
		{
			auth.POST("/signup", authController.Signup)
			auth.POST("/login", authController.Login)
			auth.POST("/forgot-password", authController.ForgotPassword)
			auth.POST("/reset-password", authController.ResetPassword)
		}

		public := v1.Group("")
		{
			public.GET("/products", productController.List)
			public.GET("/products/:identifier", productController.Get)
			public.GET("/products/:identifier/details", productController.Detail)
			public.GET("/categories", categoryController.List)
			public.GET("/categories/with-counts", categoryController.ListWithCounts)
		}

		ordersGroup := v1.Group("/orders")
		{
			ordersGroup.POST("", middleware.OptionalUser(tokens), orderController.Create)
			ordersGroup.GET("", middleware.RequireAdmin(tokens, users), orderController.List)
			ordersGroup.GET("/:id", middleware.RequireAdmin(tokens, users), orderController.Get)
		}

		admin := v1.Group("")
		admin.Use(middleware.RequireAdmin(tokens, users))
		{
			admin.POST("/products", productController.Create)
			admin.PUT("/products/:identifier", productController.Update)
			admin.DELETE("/products/:identifier", productController.Delete)
			admin.POST("/products/:identifier/images", uploadController.UploadProductImage)
			admin.POST("/categories", categoryController.Create)
		}
	}

	return router, nil
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Zeenat Jewels API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to get database instance",
				},
			})
			return
		}

		if err := sqlDB.Ping(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_CONNECTION_ERROR",
					"message": "Database connection failed",
				},
			})
			return
		}

		tables, err := db.Migrator().GetTables()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_QUERY_ERROR",
					"message": "Failed to query tables",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Database connected",
			"tables":  tables,
		})
	}
}
