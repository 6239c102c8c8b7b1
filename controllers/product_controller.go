package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/zara-amin/zeenat-jewels-api/models"
	"github.com/zara-amin/zeenat-jewels-api/repositories"
	"github.com/zara-amin/zeenat-jewels-api/services"
)

// ProductController handles the catalog endpoints
type ProductController struct {
	products repositories.ProductRepository
	catalog  *services.CatalogService
}

// NewProductController builds a ProductController
func NewProductController(products repositories.ProductRepository, catalog *services.CatalogService) *ProductController {
	return &ProductController{products: products, catalog: catalog}
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name            string           `json:"name" binding:"required"`
	FullName        string           `json:"full_name"`
	Type            string           `json:"type"`
	RetailPrice     decimal.Decimal  `json:"retail_price"`
	OfferPrice      *decimal.Decimal `json:"offer_price"`
	Currency        string           `json:"currency"`
	Description     string           `json:"description"`
	DeliveryCharges decimal.Decimal  `json:"delivery_charges"`
	Stock           int              `json:"stock"`
	Status          string           `json:"status"`
	Images          []string         `json:"images"`
	Available       int              `json:"available"`
	Sold            int              `json:"sold"`
	CategoryID      uint             `json:"category_id" binding:"required"`
}

// UpdateProductRequest represents the request body for updating a product.
// Only the fields present in the request are applied.
type UpdateProductRequest struct {
	Name            *string          `json:"name"`
	FullName        *string          `json:"full_name"`
	Type            *string          `json:"type"`
	RetailPrice     *decimal.Decimal `json:"retail_price"`
	OfferPrice      *decimal.Decimal `json:"offer_price"`
	Currency        *string          `json:"currency"`
	Description     *string          `json:"description"`
	DeliveryCharges *decimal.Decimal `json:"delivery_charges"`
	Stock           *int             `json:"stock"`
	Status          *string          `json:"status"`
	Images          []string         `json:"images"`
	Available       *int             `json:"available"`
	Sold            *int             `json:"sold"`
	CategoryID      *uint            `json:"category_id"`
}

// List handles GET /api/v1/products - the main listing for the storefront table
func (pc *ProductController) List(c *gin.Context) {
	filter, ok := listFilterFromQuery(c)
	if !ok {
		return
	}

	products, err := pc.products.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// Get handles GET /api/v1/products/:identifier. The identifier is either
// the internal numeric id or the public unique key.
func (pc *ProductController) Get(c *gin.Context) {
	var product *models.Product
	var err error

	identifier := c.Param("identifier")
	if id, parseErr := strconv.ParseUint(identifier, 10, 64); parseErr == nil {
		product, err = pc.products.FindByID(c.Request.Context(), uint(id))
	} else {
		product, err = pc.products.FindByKey(c.Request.Context(), identifier)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load product",
			},
		})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// Detail handles GET /api/v1/products/:identifier/details - the composite
// view for the detail page (decoded images, total price, WhatsApp deep
// link). The identifier is either the internal id or the unique key.
func (pc *ProductController) Detail(c *gin.Context) {
	var detail *services.ProductDetail
	var err error

	identifier := c.Param("identifier")
	if id, parseErr := strconv.ParseUint(identifier, 10, 64); parseErr == nil {
		detail, err = pc.catalog.DetailByID(c.Request.Context(), uint(id))
	} else {
		detail, err = pc.catalog.DetailByKey(c.Request.Context(), identifier)
	}
	pc.respondDetail(c, detail, err)
}

func (pc *ProductController) respondDetail(c *gin.Context, detail *services.ProductDetail, err error) {
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load product details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    detail,
	})
}

// Create handles POST /api/v1/products (admin only)
func (pc *ProductController) Create(c *gin.Context) {
	var req CreateProductRequest
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
	if req.RetailPrice.IsNegative() || (req.OfferPrice != nil && req.OfferPrice.IsNegative()) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Prices must not be negative",
			},
		})
		return
	}

	product := models.Product{
		Name:            req.Name,
		FullName:        req.FullName,
		Type:            req.Type,
		RetailPrice:     req.RetailPrice,
		OfferPrice:      req.OfferPrice,
		Currency:        req.Currency,
		Description:     req.Description,
		DeliveryCharges: req.DeliveryCharges,
		Stock:           req.Stock,
		Status:          req.Status,
		Available:       req.Available,
		Sold:            req.Sold,
		CategoryID:      req.CategoryID,
	}
	if err := product.SetImages(req.Images); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid image list",
			},
		})
		return
	}

	if err := pc.products.Create(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create product",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// Update handles PUT /api/v1/products/:identifier (admin only). Updates
// address products by numeric id only.
func (pc *ProductController) Update(c *gin.Context) {
	id, ok := uintParam(c, "identifier")
	if !ok {
		return
	}

	var req UpdateProductRequest
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

	product, err := pc.products.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load product",
			},
		})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	applyProductPatch(product, &req)

	if err := pc.products.Update(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// Delete handles DELETE /api/v1/products/:identifier (admin only). Deletes
// address products by numeric id only.
func (pc *ProductController) Delete(c *gin.Context) {
	id, ok := uintParam(c, "identifier")
	if !ok {
		return
	}

	product, err := pc.products.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load product",
			},
		})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	if err := pc.products.Delete(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted",
	})
}

// applyProductPatch copies the fields set in the request onto the product
func applyProductPatch(product *models.Product, req *UpdateProductRequest) {
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.FullName != nil {
		product.FullName = *req.FullName
	}
	if req.Type != nil {
		product.Type = *req.Type
	}
	if req.RetailPrice != nil {
		product.RetailPrice = *req.RetailPrice
	}
	if req.OfferPrice != nil {
		product.OfferPrice = req.OfferPrice
	}
	if req.Currency != nil {
		product.Currency = *req.Currency
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.DeliveryCharges != nil {
		product.DeliveryCharges = *req.DeliveryCharges
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Status != nil {
		product.Status = *req.Status
	}
	if req.Images != nil {
		_ = product.SetImages(req.Images)
	}
	if req.Available != nil {
		product.Available = *req.Available
	}
	if req.Sold != nil {
		product.Sold = *req.Sold
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
}

// listFilterFromQuery parses the listing query parameters, writing a 400
// response and returning ok=false when a numeric parameter is malformed
func listFilterFromQuery(c *gin.Context) (repositories.ProductFilter, bool) {
	filter := repositories.ProductFilter{
		CategoryName: c.Query("category_name"),
		Status:       c.Query("status"),
	}

	for name, target := range map[string]*int{
		"limit":  &filter.Limit,
		"offset": &filter.Offset,
	} {
		if raw := c.Query(name); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil {
				badQueryParam(c, name)
				return filter, false
			}
			*target = value
		}
	}

	if raw := c.Query("category_id"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			badQueryParam(c, "category_id")
			return filter, false
		}
		filter.CategoryID = uint(value)
	}

	return filter, true
}

func badQueryParam(c *gin.Context, name string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "INVALID_QUERY",
			"message": "Invalid value for query parameter " + name,
		},
	})
}

// uintParam parses a numeric path parameter, writing a 400 response and
// returning ok=false when it is not a number
func uintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid value for path parameter " + name,
			},
		})
		return 0, false
	}
	return uint(value), true
}
