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

// GetProducts lists the catalog with the storefront filters:
// category_id, brand_id, min_price, max_price, search, featured,
// spec[key]=value pairs, plus limit/offset pagination.
func GetProducts(catalog *commerce.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products"

		filter, err := parseProductFilter(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		products, err := catalog.ListProducts(ctx, filter)
		if respondCommerceError(c, route, err) {
			return
		}
		if products == nil {
			products = []models.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
	}
}

func parseProductFilter(c *gin.Context) (commerce.ProductFilter, error) {
	var filter commerce.ProductFilter

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, err
		}
		filter.CategoryID = id
	}
	if raw := c.Query("brand_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, err
		}
		filter.BrandID = id
	}
	if raw := c.Query("min_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, err
		}
		filter.MinPrice = &price
	}
	if raw := c.Query("max_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, err
		}
		filter.MaxPrice = &price
	}
	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, err
		}
		filter.Featured = &featured
	}
	filter.Search = c.Query("search")
	if spec := c.QueryMap("spec"); len(spec) > 0 {
		filter.Spec = spec
	}

	limit, offset, err := parsePaginationParams(c.Query("limit"), c.Query("offset"))
	if err != nil {
		return filter, err
	}
	filter.Limit = limit
	filter.Offset = offset
	return filter, nil
}

// GetProduct serves a single product, read through the redis cache when one
// is configured.
func GetProduct(catalog *commerce.Catalog, productCache *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products/:id"

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var cached models.Product
		if productCache.GetProduct(ctx, id, &cached) {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": cached})
			return
		}

		product, err := catalog.GetProduct(ctx, id)
		if respondCommerceError(c, route, err) {
			return
		}
		productCache.SetProduct(ctx, id, product)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
	}
}

// GetRelatedProducts serves up to four products from the same category,
// shuffled so the storefront can rotate suggestions.
func GetRelatedProducts(catalog *commerce.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products/:id/related"

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		related, err := catalog.ListRelated(ctx, id, 4)
		if respondCommerceError(c, route, err) {
			return
		}
		if related == nil {
			related = []models.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": related})
	}
}

func GetCategories(catalog *commerce.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/categories"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		categories, err := catalog.ListCategories(ctx)
		if respondCommerceError(c, route, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
	}
}

func GetBrands(catalog *commerce.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/brands"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		brands, err := catalog.ListBrands(ctx)
		if respondCommerceError(c, route, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": brands})
	}
}
