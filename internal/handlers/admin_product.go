package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"techub/internal/cache"
	"techub/internal/commerce"
	"techub/internal/models"
)

type productRequest struct {
	Name           string            `json:"name" binding:"required"`
	Price          string            `json:"price" binding:"required"`
	Description    string            `json:"description"`
	StockQuantity  int               `json:"stock_quantity"`
	CategoryID     int64             `json:"category_id" binding:"required"`
	BrandID        int64             `json:"brand_id" binding:"required"`
	Specifications models.SpecMap    `json:"specifications"`
	ImageURLs      models.StringList `json:"image_urls"`
	IsFeatured     bool              `json:"is_featured"`
}

func (r productRequest) toInput() (commerce.ProductInput, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return commerce.ProductInput{}, err
	}
	return commerce.ProductInput{
		Name:           r.Name,
		Price:          price,
		Description:    r.Description,
		StockQuantity:  r.StockQuantity,
		CategoryID:     r.CategoryID,
		BrandID:        r.BrandID,
		Specifications: r.Specifications,
		ImageURLs:      r.ImageURLs,
		IsFeatured:     r.IsFeatured,
	}, nil
}

func CreateProduct(catalog *commerce.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/products"
		defer handlePanic(c, route)

		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		in, err := req.toInput()
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid price")
			return
		}
		if in.Price.IsNegative() || req.StockQuantity < 0 {
			respondWithError(c, http.StatusBadRequest, route, "price and stock must not be negative")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		product, err := catalog.CreateProduct(ctx, in)
		if respondCommerceError(c, route, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
	}
}

func UpdateProduct(catalog *commerce.Catalog, productCache *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/products/:id"
		defer handlePanic(c, route)

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		in, err := req.toInput()
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid price")
			return
		}
		if in.Price.IsNegative() || req.StockQuantity < 0 {
			respondWithError(c, http.StatusBadRequest, route, "price and stock must not be negative")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		product, err := catalog.UpdateProduct(ctx, id, in)
		if respondCommerceError(c, route, err) {
			return
		}
		productCache.InvalidateProduct(ctx, id)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
	}
}

func DeleteProduct(catalog *commerce.Catalog, productCache *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/products/:id"

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if respondCommerceError(c, route, catalog.DeleteProduct(ctx, id)) {
			return
		}
		productCache.InvalidateProduct(ctx, id)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "product deleted"})
	}
}
