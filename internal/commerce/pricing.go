package commerce

import "github.com/shopspring/decimal"

// PricedItem is one order line with its frozen unit price.
type PricedItem struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// PriceItems computes line totals and the order subtotal from the given
// quantities and unit prices. Pure function; prices must already come from
// the catalog, never from client input.
//
// Rounding to two decimals happens once, on the final subtotal. Per-line
// rounding would accumulate drift across many lines.
func PriceItems(items []PricedItem) ([]PricedItem, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, ErrEmptyCart
	}

	out := make([]PricedItem, 0, len(items))
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, decimal.Zero, ErrInvalidQuantity
		}
		item.LineTotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(item.LineTotal)
		out = append(out, item)
	}
	return out, subtotal.Round(2), nil
}
