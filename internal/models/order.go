package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          int64           `json:"order_id"`
	UserID      string          `json:"user_id"`
	AddressID   *int64          `json:"address_id,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      OrderStatus     `json:"status"`
	OrderDate   time.Time       `json:"order_date"`
}

// OrderItem freezes product name, unit price and quantity at purchase time.
// Price is a copy, never a live reference to the product row.
type OrderItem struct {
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	ImageURLs StringList      `json:"image_urls,omitempty"`
}

// OrderDetails is the composed aggregate returned by checkout and order reads.
type OrderDetails struct {
	Order
	Items    []OrderItem `json:"items"`
	Payment  *Payment    `json:"payment,omitempty"`
	Shipping *Shipping   `json:"shipping,omitempty"`
}
