package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zara-amin/zeenat-jewels-api/models"
	"github.com/zara-amin/zeenat-jewels-api/repositories"
)

// CategoryController handles the category endpoints
type CategoryController struct {
	categories repositories.CategoryRepository
}

// NewCategoryController builds a CategoryController
func NewCategoryController(categories repositories.CategoryRepository) *CategoryController {
	return &CategoryController{categories: categories}
}

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// List handles GET /api/v1/categories - returns all category names
func (cc *CategoryController) List(c *gin.Context) {
	categories, err := cc.categories.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list categories",
			},
		})
		return
	}

	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    names,
	})
}

// ListWithCounts handles GET /api/v1/categories/with-counts - every
// category with its product count, including counts of zero
func (cc *CategoryController) ListWithCounts(c *gin.Context) {
	rows, err := cc.categories.ListWithCounts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list categories",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rows,
	})
}

// Create handles POST /api/v1/categories (admin only)
func (cc *CategoryController) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	existing, err := cc.categories.FindByName(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check category",
			},
		})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CATEGORY_EXISTS",
				"message": "Category already exists",
			},
		})
		return
	}

	category := models.Category{Name: req.Name}
	if err := cc.categories.Create(c.Request.Context(), &category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create category",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}
