package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"techub/internal/commerce"
	"techub/internal/middleware"
	"techub/internal/models"
)

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart returns the caller's cart lines and the advisory live-price total.
func GetCart(carts *commerce.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/carts"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cartID, err := carts.FindCart(ctx, middleware.UserID(c))
		if errors.Is(err, commerce.ErrCartNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"items": []models.CartLine{}, "total": "0"}})
			return
		}
		if respondCommerceError(c, route, err) {
			return
		}

		items, err := carts.ListItems(ctx, cartID)
		if respondCommerceError(c, route, err) {
			return
		}
		total, err := carts.Total(ctx, cartID)
		if respondCommerceError(c, route, err) {
			return
		}
		if items == nil {
			items = []models.CartLine{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"cart_id": cartID,
			"items":   items,
			"total":   total,
		}})
	}
}

// AddToCart creates the cart lazily and adds or sums the line. The stock
// check here is advisory; checkout re-validates against current stock
// regardless, because cart state can go stale.
func AddToCart(carts *commerce.CartStore, catalog *commerce.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/carts/items"
		defer handlePanic(c, route)

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if req.Quantity <= 0 {
			respondWithError(c, http.StatusBadRequest, route, commerce.ErrInvalidQuantity.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		product, err := catalog.GetProduct(ctx, req.ProductID)
		if respondCommerceError(c, route, err) {
			return
		}
		if req.Quantity > product.StockQuantity {
			respondWithError(c, http.StatusConflict, route,
				fmt.Sprintf("insufficient stock, only %d items available", product.StockQuantity))
			return
		}

		cartID, err := carts.GetOrCreateCart(ctx, middleware.UserID(c))
		if respondCommerceError(c, route, err) {
			return
		}
		item, err := carts.AddItem(ctx, cartID, req.ProductID, req.Quantity)
		if respondCommerceError(c, route, err) {
			return
		}

		items, err := carts.ListItems(ctx, cartID)
		if respondCommerceError(c, route, err) {
			return
		}
		total, err := carts.Total(ctx, cartID)
		if respondCommerceError(c, route, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"item":  item,
			"items": items,
			"total": total,
		}})
	}
}

// UpdateCartItem sets a line's quantity; zero or less removes the line.
func UpdateCartItem(carts *commerce.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/carts/items/:product_id"
		defer handlePanic(c, route)

		productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cartID, err := carts.FindCart(ctx, middleware.UserID(c))
		if respondCommerceError(c, route, err) {
			return
		}
		item, err := carts.SetItemQuantity(ctx, cartID, productID, *req.Quantity)
		if respondCommerceError(c, route, err) {
			return
		}

		items, err := carts.ListItems(ctx, cartID)
		if respondCommerceError(c, route, err) {
			return
		}
		total, err := carts.Total(ctx, cartID)
		if respondCommerceError(c, route, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"item":  item,
			"items": items,
			"total": total,
		}})
	}
}

func RemoveFromCart(carts *commerce.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/carts/items/:product_id"

		productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cartID, err := carts.FindCart(ctx, middleware.UserID(c))
		if respondCommerceError(c, route, err) {
			return
		}
		if respondCommerceError(c, route, carts.RemoveItem(ctx, cartID, productID)) {
			return
		}

		items, err := carts.ListItems(ctx, cartID)
		if respondCommerceError(c, route, err) {
			return
		}
		total, err := carts.Total(ctx, cartID)
		if respondCommerceError(c, route, err) {
			return
		}
		if items == nil {
			items = []models.CartLine{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"items": items,
			"total": total,
		}})
	}
}

func ClearCart(carts *commerce.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/carts"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cartID, err := carts.FindCart(ctx, middleware.UserID(c))
		if respondCommerceError(c, route, err) {
			return
		}
		if respondCommerceError(c, route, carts.Clear(ctx, cartID)) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "cart cleared"})
	}
}
