package events

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"techub/internal/models"
)

const (
	TopicOrderCreated   = "order.created"
	TopicPaymentUpdated = "order.payment.updated"
	TopicOrderStatus    = "order.status.updated"
)

const (
	EventOrderCreated   = "OrderCreated"
	EventPaymentUpdated = "PaymentUpdated"
	EventOrderStatus    = "OrderStatusUpdated"
)

// Envelope wraps every published event. CorrelationID is the order id, so all
// events for one order keep their partition ordering.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID     int64            `json:"order_id"`
	UserID      string           `json:"user_id"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Items       []OrderItemEvent `json:"items"`
}

type OrderItemEvent struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type PaymentUpdatedPayload struct {
	PaymentID int64                `json:"payment_id"`
	OrderID   int64                `json:"order_id"`
	Status    models.PaymentStatus `json:"status"`
}

type OrderStatusPayload struct {
	OrderID int64              `json:"order_id"`
	Status  models.OrderStatus `json:"status"`
}
