package commerce

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"techub/internal/models"
)

// CartStore holds per-user pending selections. A cart row is created lazily on
// the first item add and destroyed content-wise on checkout or explicit clear.
type CartStore struct {
	DB *pgxpool.Pool
}

// GetOrCreateCart is idempotent; at most one cart exists per user.
func (s *CartStore) GetOrCreateCart(ctx context.Context, userID string) (int64, error) {
	var cartID int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO cart (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING cart_id`, userID).Scan(&cartID)
	return cartID, err
}

func (s *CartStore) FindCart(ctx context.Context, userID string) (int64, error) {
	var cartID int64
	err := s.DB.QueryRow(ctx, `SELECT cart_id FROM cart WHERE user_id = $1`, userID).Scan(&cartID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrCartNotFound
	}
	return cartID, err
}

// AddItem inserts a line or sums the quantity into the existing
// (cart, product) line. Repeat adds never duplicate rows.
func (s *CartStore) AddItem(ctx context.Context, cartID, productID int64, quantity int) (models.CartItem, error) {
	if quantity <= 0 {
		return models.CartItem{}, ErrInvalidQuantity
	}

	var item models.CartItem
	err := s.DB.QueryRow(ctx, `
		INSERT INTO cartitems (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cartitems.quantity + EXCLUDED.quantity
		RETURNING cartitems_id, cart_id, product_id, quantity`,
		cartID, productID, quantity,
	).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity)
	return item, err
}

// SetItemQuantity replaces the line quantity. Zero or negative removes the
// line entirely.
func (s *CartStore) SetItemQuantity(ctx context.Context, cartID, productID int64, quantity int) (models.CartItem, error) {
	if quantity <= 0 {
		if err := s.RemoveItem(ctx, cartID, productID); err != nil {
			return models.CartItem{}, err
		}
		return models.CartItem{CartID: cartID, ProductID: productID}, nil
	}

	var item models.CartItem
	err := s.DB.QueryRow(ctx, `
		UPDATE cartitems SET quantity = $1
		WHERE cart_id = $2 AND product_id = $3
		RETURNING cartitems_id, cart_id, product_id, quantity`,
		quantity, cartID, productID,
	).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.CartItem{}, ErrItemNotFound
	}
	return item, err
}

func (s *CartStore) RemoveItem(ctx context.Context, cartID, productID int64) error {
	tag, err := s.DB.Exec(ctx, `
		DELETE FROM cartitems WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

// ListItems returns the cart lines joined with live product data, in
// insertion order. Used for display and as checkout input.
func (s *CartStore) ListItems(ctx context.Context, cartID int64) ([]models.CartLine, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT ci.cartitems_id, ci.cart_id, ci.product_id, ci.quantity,
			p.name, p.price, p.image_urls, p.stock_quantity,
			(ci.quantity * p.price) AS item_total
		FROM cartitems ci
		JOIN products p ON ci.product_id = p.products_id
		WHERE ci.cart_id = $1
		ORDER BY ci.cartitems_id`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CartLine
	for rows.Next() {
		var line models.CartLine
		if err := rows.Scan(&line.CartItemID, &line.CartID, &line.ProductID, &line.Quantity,
			&line.ProductName, &line.Price, &line.ImageURLs, &line.StockQuantity,
			&line.ItemTotal); err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, rows.Err()
}

func (s *CartStore) Clear(ctx context.Context, cartID int64) error {
	_, err := s.DB.Exec(ctx, `DELETE FROM cartitems WHERE cart_id = $1`, cartID)
	return err
}

// Total sums quantity times the current product price. Display-only; checkout
// reprices authoritatively inside its transaction.
func (s *CartStore) Total(ctx context.Context, cartID int64) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := s.DB.QueryRow(ctx, `
		SELECT SUM(ci.quantity * p.price)
		FROM cartitems ci
		JOIN products p ON ci.product_id = p.products_id
		WHERE ci.cart_id = $1`, cartID).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal.Round(2), nil
}
