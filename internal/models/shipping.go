package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shipping is an optional 1:1 extension of an order, mutated only by admin
// tracking updates after creation.
type Shipping struct {
	ID             int64           `json:"shipping_id"`
	OrderID        int64           `json:"order_id"`
	Method         string          `json:"method"`
	Carrier        string          `json:"carrier,omitempty"`
	Cost           decimal.Decimal `json:"cost"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
	EstimatedDate  *time.Time      `json:"estimated_date,omitempty"`
}
