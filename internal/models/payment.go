package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID          int64           `json:"payment_id"`
	OrderID     int64           `json:"order_id"`
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	Status      PaymentStatus   `json:"status"`
	PaymentDate time.Time       `json:"payment_date"`
}
