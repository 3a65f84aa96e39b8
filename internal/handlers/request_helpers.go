package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"techub/internal/commerce"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": details,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondCommerceError maps typed commerce outcomes onto the response
// taxonomy: validation, not-found, insufficient stock naming the product, or
// a generic failure. Returns false if err was nil.
func respondCommerceError(c *gin.Context, route string, err error) bool {
	if err == nil {
		return false
	}

	var stockErr *commerce.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":      "insufficient stock",
			"product_id": stockErr.ProductID,
			"requested":  stockErr.Requested,
			"available":  stockErr.Available,
		})
		return true
	}

	var transitionErr *commerce.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		respondWithError(c, http.StatusConflict, route, transitionErr.Error())
		return true
	}

	switch {
	case errors.Is(err, commerce.ErrInvalidQuantity),
		errors.Is(err, commerce.ErrEmptyCart),
		errors.Is(err, commerce.ErrEmptyOrder),
		errors.Is(err, commerce.ErrUnknownCategory),
		errors.Is(err, commerce.ErrUnknownBrand):
		respondWithError(c, http.StatusBadRequest, route, err.Error())
	case errors.Is(err, commerce.ErrProductNotFound),
		errors.Is(err, commerce.ErrCartNotFound),
		errors.Is(err, commerce.ErrItemNotFound),
		errors.Is(err, commerce.ErrOrderNotFound),
		errors.Is(err, commerce.ErrPaymentNotFound),
		errors.Is(err, commerce.ErrShippingNotFound),
		errors.Is(err, commerce.ErrAddressNotFound),
		errors.Is(err, commerce.ErrCategoryNotFound),
		errors.Is(err, commerce.ErrBrandNotFound):
		respondWithError(c, http.StatusNotFound, route, err.Error())
	case errors.Is(err, commerce.ErrCategoryExists),
		errors.Is(err, commerce.ErrBrandExists),
		errors.Is(err, commerce.ErrCategoryInUse),
		errors.Is(err, commerce.ErrBrandInUse):
		respondWithError(c, http.StatusConflict, route, err.Error())
	default:
		log.Printf("[%s] [ERROR] %v", route, err)
		respondWithError(c, http.StatusInternalServerError, route, "db error")
	}
	return true
}
