package commerce

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"techub/internal/models"
)

// Checkout converts a user's cart into an order aggregate, decrements stock
// and clears the cart as one all-or-nothing operation. It is the only
// component aware of the full sequence; a failure at any step leaves the
// database exactly as it was before the attempt, cart included.
type Checkout struct {
	DB *pgxpool.Pool
}

type CheckoutInput struct {
	UserID        string
	PaymentMethod string
	AddressID     *int64
	Shipping      *ShippingInput
}

// PlaceOrder runs the whole checkout inside a single transaction:
//
//	load cart lines -> reprice from live catalog -> create order aggregate
//	-> conditional stock decrement per line -> clear cart -> commit
//
// Prices are re-read inside the transaction, so an admin price change after
// items were added is always reflected in the order. Stock is re-validated by
// the conditional decrement regardless of what the cart displayed. Nothing is
// retried automatically; the caller may resubmit.
func (co *Checkout) PlaceOrder(ctx context.Context, in CheckoutInput) (models.OrderDetails, error) {
	tx, err := co.DB.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return models.OrderDetails{}, err
	}
	defer tx.Rollback(ctx)

	var cartID int64
	err = tx.QueryRow(ctx, `SELECT cart_id FROM cart WHERE user_id = $1`, in.UserID).Scan(&cartID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.OrderDetails{}, ErrEmptyCart
	}
	if err != nil {
		return models.OrderDetails{}, err
	}

	items, err := loadCheckoutLines(ctx, tx, cartID)
	if err != nil {
		return models.OrderDetails{}, err
	}
	if len(items) == 0 {
		return models.OrderDetails{}, ErrEmptyCart
	}

	priced, subtotal, err := PriceItems(items)
	if err != nil {
		return models.OrderDetails{}, err
	}

	details, err := createAggregate(ctx, tx, in.UserID, in.AddressID, priced, subtotal, in.PaymentMethod, in.Shipping)
	if err != nil {
		return models.OrderDetails{}, err
	}

	// Decrement in product-id order so concurrent checkouts over overlapping
	// carts take row locks in a consistent order and cannot deadlock.
	for _, item := range sortedByProduct(priced) {
		if _, err := decrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			// Rolls back the aggregate and every prior decrement.
			return models.OrderDetails{}, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cartitems WHERE cart_id = $1`, cartID); err != nil {
		return models.OrderDetails{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.OrderDetails{}, err
	}
	return details, nil
}

// sortedByProduct returns a copy of the priced lines ordered by product id.
// The copy keeps the aggregate's line order untouched.
func sortedByProduct(priced []PricedItem) []PricedItem {
	out := make([]PricedItem, len(priced))
	copy(out, priced)
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// loadCheckoutLines reads the cart joined with current product name and price
// inside the checkout transaction. Client-supplied prices never enter here.
func loadCheckoutLines(ctx context.Context, tx dbtx, cartID int64) ([]PricedItem, error) {
	rows, err := tx.Query(ctx, `
		SELECT ci.product_id, p.name, ci.quantity, p.price
		FROM cartitems ci
		JOIN products p ON ci.product_id = p.products_id
		WHERE ci.cart_id = $1
		ORDER BY ci.cartitems_id`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PricedItem
	for rows.Next() {
		var item PricedItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
