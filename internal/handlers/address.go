package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"techub/internal/commerce"
	"techub/internal/middleware"
	"techub/internal/models"
)

type addressRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Address1    string `json:"address1" binding:"required"`
	City        string `json:"city" binding:"required"`
	PostCode    string `json:"post_code" binding:"required"`
	State       string `json:"state" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

func (r addressRequest) toInput() commerce.AddressInput {
	return commerce.AddressInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Address1:    r.Address1,
		City:        r.City,
		PostCode:    r.PostCode,
		State:       r.State,
		PhoneNumber: r.PhoneNumber,
	}
}

func CreateAddress(addresses *commerce.AddressStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/address"
		defer handlePanic(c, route)

		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		address, err := addresses.Create(ctx, middleware.UserID(c), req.toInput())
		if respondCommerceError(c, route, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": address})
	}
}

func GetUserAddresses(addresses *commerce.AddressStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/address"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		list, err := addresses.ListByUser(ctx, middleware.UserID(c))
		if respondCommerceError(c, route, err) {
			return
		}
		if list == nil {
			list = []models.Address{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
	}
}

// getOwnAddress loads an address and enforces ownership.
func getOwnAddress(c *gin.Context, route string, addresses *commerce.AddressStore) (models.Address, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, route, "invalid address id")
		return models.Address{}, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	address, err := addresses.Get(ctx, id)
	if respondCommerceError(c, route, err) {
		return models.Address{}, false
	}
	if address.UserID != middleware.UserID(c) {
		respondWithError(c, http.StatusNotFound, route, commerce.ErrAddressNotFound.Error())
		return models.Address{}, false
	}
	return address, true
}

func GetAddress(addresses *commerce.AddressStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/address/:id"

		address, ok := getOwnAddress(c, route, addresses)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": address})
	}
}

func UpdateAddress(addresses *commerce.AddressStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/address/:id"
		defer handlePanic(c, route)

		address, ok := getOwnAddress(c, route, addresses)
		if !ok {
			return
		}

		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		updated, err := addresses.Update(ctx, address.ID, req.toInput())
		if respondCommerceError(c, route, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
	}
}

func DeleteAddress(addresses *commerce.AddressStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/address/:id"

		address, ok := getOwnAddress(c, route, addresses)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if respondCommerceError(c, route, addresses.Delete(ctx, address.ID)) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "address deleted"})
	}
}
