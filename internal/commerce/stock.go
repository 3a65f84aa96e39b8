package commerce

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx so the ledger can run
// standalone or inside the checkout transaction.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StockLedger owns the authoritative per-product inventory counter.
// stock_quantity is mutated only through the conditional update below, never
// via read-modify-write at the application layer.
type StockLedger struct {
	DB *pgxpool.Pool
}

// Decrement atomically checks and subtracts quantity. The WHERE clause makes
// check-then-decrement a single statement, so two concurrent checkouts for
// the last unit cannot both succeed.
func (l *StockLedger) Decrement(ctx context.Context, productID int64, quantity int) (int, error) {
	return decrementStock(ctx, l.DB, productID, quantity)
}

func decrementStock(ctx context.Context, db dbtx, productID int64, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}

	var newLevel int
	err := db.QueryRow(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity - $2
		WHERE products_id = $1 AND stock_quantity >= $2
		RETURNING stock_quantity`,
		productID, quantity,
	).Scan(&newLevel)
	if err == nil {
		return newLevel, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	// No row matched: either the product is gone or stock is short.
	var available int
	err = db.QueryRow(ctx, `SELECT stock_quantity FROM products WHERE products_id = $1`, productID).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrProductNotFound
	}
	if err != nil {
		return 0, err
	}
	return 0, &InsufficientStockError{ProductID: productID, Requested: quantity, Available: available}
}

// Restock adds quantity back. Used by admin adjustments and by order
// cancellation before shipment.
func (l *StockLedger) Restock(ctx context.Context, productID int64, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}

	var newLevel int
	err := l.DB.QueryRow(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity + $2
		WHERE products_id = $1
		RETURNING stock_quantity`,
		productID, quantity,
	).Scan(&newLevel)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrProductNotFound
	}
	return newLevel, err
}
