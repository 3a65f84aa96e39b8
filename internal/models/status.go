package models

// OrderStatus is the closed set of states an order can be in. Writes go
// through CanTransition; arbitrary strings are never persisted.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

var orderNext = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:    {OrderProcessing: true, OrderCancelled: true},
	OrderProcessing: {OrderShipped: true, OrderCancelled: true},
	OrderShipped:    {OrderDelivered: true},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderNext[s]
	return ok
}

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	return orderNext[s][to]
}

// Terminal reports whether no further transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(orderNext[s]) == 0
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

var paymentNext = map[PaymentStatus]map[PaymentStatus]bool{
	PaymentPending:   {PaymentPaid: true, PaymentFailed: true, PaymentCancelled: true},
	PaymentPaid:      {},
	PaymentFailed:    {},
	PaymentCancelled: {},
}

func (s PaymentStatus) Valid() bool {
	_, ok := paymentNext[s]
	return ok
}

func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	return paymentNext[s][to]
}
