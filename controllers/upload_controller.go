package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zara-amin/zeenat-jewels-api/repositories"
	"github.com/zara-amin/zeenat-jewels-api/services"
	"github.com/zara-amin/zeenat-jewels-api/utils"
)

// UploadController handles product image uploads
type UploadController struct {
	products repositories.ProductRepository
	storage  services.S3Interface
}

// NewUploadController builds an UploadController
func NewUploadController(products repositories.ProductRepository, storage services.S3Interface) *UploadController {
	return &UploadController{products: products, storage: storage}
}

// UploadProductImage handles POST /api/v1/products/:identifier/images
// (admin only, numeric id).
// The PNG is stored in S3 and its key appended to the product's image list.
func (uc *UploadController) UploadProductImage(c *gin.Context) {
	id, ok := uintParam(c, "identifier")
	if !ok {
		return
	}

	product, err := uc.products.FindByID(c.Request.Context(), id)
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

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "An image file is required in the 'image' form field",
			},
		})
		return
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		var uploadErr *utils.FileUploadError
		code := "INVALID_FILE"
		if errors.As(err, &uploadErr) {
			code = uploadErr.Code
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	s3Key, err := uc.storage.UploadFile(fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to store image",
			},
		})
		return
	}

	if err := product.AddImage(s3Key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to record image",
			},
		})
		return
	}
	if err := uc.products.Update(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update product",
			},
		})
		return
	}

	// Best effort: the key is stored either way
	imageURL, err := uc.storage.GetPresignedURL(s3Key)
	if err != nil {
		imageURL = ""
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"product_id": product.ID,
			"s3_key":     s3Key,
			"image_url":  imageURL,
			"images":     product.ImageList(),
		},
	})
}
