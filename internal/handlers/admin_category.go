package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"techub/internal/commerce"
)

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func CreateCategory(catalog *commerce.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/categories"
		defer handlePanic(c, route)

		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		category, err := catalog.CreateCategory(ctx, req.Name)
		if respondCommerceError(c, route, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": category})
	}
}

func UpdateCategory(catalog *commerce.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/categories/:id"
		defer handlePanic(c, route)

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid category id")
			return
		}

		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		category, err := catalog.UpdateCategory(ctx, id, req.Name)
		if respondCommerceError(c, route, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
	}
}

func DeleteCategory(catalog *commerce.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/categories/:id"

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid category id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if respondCommerceError(c, route, catalog.DeleteCategory(ctx, id)) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "category deleted"})
	}
}
