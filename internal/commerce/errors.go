package commerce

import (
	"errors"
	"fmt"
)

// Component failures propagate as typed outcomes to the checkout orchestrator
// and the handler layer, which match them with errors.Is / errors.As. Nothing
// below is ever swallowed; logging is a side effect, not a substitute.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrItemNotFound     = errors.New("item not found in cart")
	ErrOrderNotFound    = errors.New("order not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrShippingNotFound = errors.New("shipping record not found")
	ErrAddressNotFound  = errors.New("address not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBrandNotFound    = errors.New("brand not found")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrEmptyOrder       = errors.New("order has no items")

	// Product writes referencing a missing category or brand.
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownBrand    = errors.New("unknown brand")

	// Taxonomy writes that collide with existing rows.
	ErrCategoryExists = errors.New("category already exists")
	ErrBrandExists    = errors.New("brand already exists")
	ErrCategoryInUse  = errors.New("category still has products")
	ErrBrandInUse     = errors.New("brand still has products")
)

// InsufficientStockError names the offending product so the caller can prompt
// a quantity adjustment.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// InvalidTransitionError reports a status change that is not in the
// transition table.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s status transition: %s -> %s", e.Entity, e.From, e.To)
}
