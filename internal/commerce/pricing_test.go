package commerce

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPriceItemsComputesLineTotalsAndSubtotal(t *testing.T) {
	items := []PricedItem{
		{ProductID: 1, Name: "USB-C Cable", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		{ProductID: 2, Name: "Mouse Pad", Quantity: 1, UnitPrice: decimal.RequireFromString("25.00")},
	}

	priced, subtotal, err := PriceItems(items)
	if err != nil {
		t.Fatalf("PriceItems returned error: %v", err)
	}
	if len(priced) != 2 {
		t.Fatalf("expected 2 priced lines, got %d", len(priced))
	}
	if !priced[0].LineTotal.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("expected first line total 20.00, got %s", priced[0].LineTotal)
	}
	if !priced[1].LineTotal.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("expected second line total 25.00, got %s", priced[1].LineTotal)
	}
	if !subtotal.Equal(decimal.RequireFromString("45.00")) {
		t.Fatalf("expected subtotal 45.00, got %s", subtotal)
	}
}

func TestPriceItemsRoundsOnlyTheSubtotal(t *testing.T) {
	// Three lines of 3 x 3.333 sum to 29.997 before the final rounding.
	items := []PricedItem{
		{ProductID: 1, Quantity: 3, UnitPrice: decimal.RequireFromString("3.333")},
		{ProductID: 2, Quantity: 3, UnitPrice: decimal.RequireFromString("3.333")},
		{ProductID: 3, Quantity: 3, UnitPrice: decimal.RequireFromString("3.333")},
	}

	priced, subtotal, err := PriceItems(items)
	if err != nil {
		t.Fatalf("PriceItems returned error: %v", err)
	}
	if !priced[0].LineTotal.Equal(decimal.RequireFromString("9.999")) {
		t.Fatalf("line totals must keep full precision, got %s", priced[0].LineTotal)
	}
	if !subtotal.Equal(decimal.RequireFromString("30.00")) {
		t.Fatalf("expected subtotal rounded to 30.00, got %s", subtotal)
	}
}

func TestPriceItemsRejectsEmptyInput(t *testing.T) {
	if _, _, err := PriceItems(nil); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if _, _, err := PriceItems([]PricedItem{}); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart for empty slice, got %v", err)
	}
}

func TestPriceItemsRejectsNonPositiveQuantity(t *testing.T) {
	for _, qty := range []int{0, -1} {
		items := []PricedItem{{ProductID: 1, Quantity: qty, UnitPrice: decimal.RequireFromString("5.00")}}
		if _, _, err := PriceItems(items); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity for quantity %d, got %v", qty, err)
		}
	}
}

func TestPriceItemsDoesNotMutateInput(t *testing.T) {
	items := []PricedItem{{ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")}}
	original := items[0].LineTotal

	if _, _, err := PriceItems(items); err != nil {
		t.Fatalf("PriceItems returned error: %v", err)
	}
	if !items[0].LineTotal.Equal(original) {
		t.Fatal("input slice must not be mutated")
	}
}
