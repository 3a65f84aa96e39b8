package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"techub/internal/commerce"
)

type brandRequest struct {
	Name string `json:"name" binding:"required"`
}

func CreateBrand(catalog *commerce.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/brands"
		defer handlePanic(c, route)

		var req brandRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		brand, err := catalog.CreateBrand(ctx, req.Name)
		if respondCommerceError(c, route, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": brand})
	}
}

func UpdateBrand(catalog *commerce.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/brands/:id"
		defer handlePanic(c, route)

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid brand id")
			return
		}

		var req brandRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		brand, err := catalog.UpdateBrand(ctx, id, req.Name)
		if respondCommerceError(c, route, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": brand})
	}
}

func DeleteBrand(catalog *commerce.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/brands/:id"

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid brand id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if respondCommerceError(c, route, catalog.DeleteBrand(ctx, id)) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "brand deleted"})
	}
}
