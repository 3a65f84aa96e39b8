package models

import "github.com/shopspring/decimal"

type Cart struct {
	ID     int64  `json:"cart_id"`
	UserID string `json:"user_id"`
}

type CartItem struct {
	ID        int64 `json:"cartitems_id"`
	CartID    int64 `json:"cart_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CartLine is a cart item joined with live product data for display and as
// checkout input. ItemTotal uses the current price and is advisory only; the
// authoritative total is recomputed inside the checkout transaction.
type CartLine struct {
	CartItemID    int64           `json:"cartitems_id"`
	CartID        int64           `json:"cart_id"`
	ProductID     int64           `json:"product_id"`
	Quantity      int             `json:"quantity"`
	ProductName   string          `json:"product_name"`
	Price         decimal.Decimal `json:"price"`
	ImageURLs     StringList      `json:"image_urls"`
	StockQuantity int             `json:"stock_quantity"`
	ItemTotal     decimal.Decimal `json:"item_total"`
}
