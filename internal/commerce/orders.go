package commerce

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"techub/internal/models"
)

// OrderStore owns the order aggregate: header, frozen line items and the 1:1
// payment record, created together and never partially. OrderItem and Payment
// rows are never deleted afterwards; only statuses move.
type OrderStore struct {
	DB *pgxpool.Pool
}

// ShippingInput is the optional shipping record created with an order.
type ShippingInput struct {
	Method        string
	Carrier       string
	Cost          decimal.Decimal
	EstimatedDate *time.Time
}

// createAggregate inserts the order header, its items and the pending payment
// inside the caller's transaction. The caller commits or rolls back; this
// function never half-applies.
func createAggregate(ctx context.Context, tx dbtx, userID string, addressID *int64,
	items []PricedItem, subtotal decimal.Decimal, paymentMethod string,
	shipping *ShippingInput) (models.OrderDetails, error) {

	if len(items) == 0 {
		return models.OrderDetails{}, ErrEmptyOrder
	}

	var details models.OrderDetails
	err := tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, address_id, total_amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING order_id, user_id, address_id, total_amount, status, order_date`,
		userID, addressID, subtotal, models.OrderPending,
	).Scan(&details.ID, &details.UserID, &details.AddressID,
		&details.TotalAmount, &details.Status, &details.OrderDate)
	if err != nil {
		return models.OrderDetails{}, err
	}

	details.Items = make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO orderitems (order_id, product_id, name, quantity, price)
			VALUES ($1, $2, $3, $4, $5)`,
			details.ID, item.ProductID, item.Name, item.Quantity, item.UnitPrice); err != nil {
			return models.OrderDetails{}, err
		}
		details.Items = append(details.Items, models.OrderItem{
			OrderID:   details.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice,
		})
	}

	payment := models.Payment{OrderID: details.ID, Method: paymentMethod, Amount: subtotal, Status: models.PaymentPending}
	err = tx.QueryRow(ctx, `
		INSERT INTO payment (order_id, method, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING payment_id, payment_date`,
		payment.OrderID, payment.Method, payment.Amount, payment.Status,
	).Scan(&payment.ID, &payment.PaymentDate)
	if err != nil {
		return models.OrderDetails{}, err
	}
	details.Payment = &payment

	if shipping != nil {
		record := models.Shipping{
			OrderID:       details.ID,
			Method:        shipping.Method,
			Carrier:       shipping.Carrier,
			Cost:          shipping.Cost,
			EstimatedDate: shipping.EstimatedDate,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO shipping (order_id, method, carrier, cost, estimated_date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING shipping_id`,
			record.OrderID, record.Method, record.Carrier, record.Cost, record.EstimatedDate,
		).Scan(&record.ID)
		if err != nil {
			return models.OrderDetails{}, err
		}
		details.Shipping = &record
	}

	return details, nil
}

func (s *OrderStore) GetOrder(ctx context.Context, orderID int64) (models.Order, error) {
	var o models.Order
	err := s.DB.QueryRow(ctx, `
		SELECT order_id, user_id, address_id, total_amount, status, order_date
		FROM orders WHERE order_id = $1`, orderID,
	).Scan(&o.ID, &o.UserID, &o.AddressID, &o.TotalAmount, &o.Status, &o.OrderDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	return o, err
}

// GetOrderDetails loads the full aggregate: header, items joined with live
// product images, payment and the optional shipping record.
func (s *OrderStore) GetOrderDetails(ctx context.Context, orderID int64) (models.OrderDetails, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return models.OrderDetails{}, err
	}
	details := models.OrderDetails{Order: order}

	rows, err := s.DB.Query(ctx, `
		SELECT oi.order_id, oi.product_id, oi.name, oi.quantity, oi.price, p.image_urls
		FROM orderitems oi
		JOIN products p ON oi.product_id = p.products_id
		WHERE oi.order_id = $1`, orderID)
	if err != nil {
		return models.OrderDetails{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.OrderID, &item.ProductID, &item.Name,
			&item.Quantity, &item.Price, &item.ImageURLs); err != nil {
			return models.OrderDetails{}, err
		}
		details.Items = append(details.Items, item)
	}
	if err := rows.Err(); err != nil {
		return models.OrderDetails{}, err
	}

	var payment models.Payment
	err = s.DB.QueryRow(ctx, `
		SELECT payment_id, order_id, method, amount, status, payment_date
		FROM payment WHERE order_id = $1`, orderID,
	).Scan(&payment.ID, &payment.OrderID, &payment.Method, &payment.Amount,
		&payment.Status, &payment.PaymentDate)
	if err == nil {
		details.Payment = &payment
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return models.OrderDetails{}, err
	}

	var shipping models.Shipping
	err = s.DB.QueryRow(ctx, `
		SELECT shipping_id, order_id, method, carrier, cost, tracking_number, estimated_date
		FROM shipping WHERE order_id = $1`, orderID,
	).Scan(&shipping.ID, &shipping.OrderID, &shipping.Method, &shipping.Carrier,
		&shipping.Cost, &shipping.TrackingNumber, &shipping.EstimatedDate)
	if err == nil {
		details.Shipping = &shipping
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return models.OrderDetails{}, err
	}

	return details, nil
}

func (s *OrderStore) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.listOrders(ctx, `
		SELECT order_id, user_id, address_id, total_amount, status, order_date
		FROM orders WHERE user_id = $1 ORDER BY order_date DESC`, userID)
}

func (s *OrderStore) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.listOrders(ctx, `
		SELECT order_id, user_id, address_id, total_amount, status, order_date
		FROM orders ORDER BY order_date DESC`)
}

func (s *OrderStore) listOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.AddressID, &o.TotalAmount, &o.Status, &o.OrderDate); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateOrderStatus applies one transition from the models transition table.
// Cancelling an unshipped order returns its units to stock in the same
// transaction.
func (s *OrderStore) UpdateOrderStatus(ctx context.Context, orderID int64, to models.OrderStatus) (models.Order, error) {
	if !to.Valid() {
		return models.Order{}, &InvalidTransitionError{Entity: "order", To: string(to)}
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Order{}, err
	}
	defer tx.Rollback(ctx)

	var o models.Order
	err = tx.QueryRow(ctx, `
		SELECT order_id, user_id, address_id, total_amount, status, order_date
		FROM orders WHERE order_id = $1 FOR UPDATE`, orderID,
	).Scan(&o.ID, &o.UserID, &o.AddressID, &o.TotalAmount, &o.Status, &o.OrderDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}

	if !o.Status.CanTransition(to) {
		return models.Order{}, &InvalidTransitionError{Entity: "order", From: string(o.Status), To: string(to)}
	}

	if _, err := tx.Exec(ctx, `UPDATE orders SET status = $1 WHERE order_id = $2`, to, orderID); err != nil {
		return models.Order{}, err
	}

	if to == models.OrderCancelled {
		if err := restockOrderItems(ctx, tx, orderID); err != nil {
			return models.Order{}, err
		}
		if _, err := tx.Exec(ctx, `
			UPDATE payment SET status = $1, payment_date = now()
			WHERE order_id = $2 AND status = $3`,
			models.PaymentCancelled, orderID, models.PaymentPending); err != nil {
			return models.Order{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Order{}, err
	}
	o.Status = to
	return o, nil
}

func restockOrderItems(ctx context.Context, tx dbtx, orderID int64) error {
	rows, err := tx.Query(ctx, `SELECT product_id, quantity FROM orderitems WHERE order_id = $1`, orderID)
	if err != nil {
		return err
	}
	defer rows.Close()

	type line struct {
		productID int64
		quantity  int
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.quantity); err != nil {
			return err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, l := range lines {
		if _, err := tx.Exec(ctx, `
			UPDATE products SET stock_quantity = stock_quantity + $2
			WHERE products_id = $1`, l.productID, l.quantity); err != nil {
			return err
		}
	}
	return nil
}

// UpdatePaymentStatus is the gateway callback entry point. A transition to
// paid also moves the order to processing, in the same transaction.
func (s *OrderStore) UpdatePaymentStatus(ctx context.Context, paymentID int64, to models.PaymentStatus) (models.Payment, error) {
	if !to.Valid() {
		return models.Payment{}, &InvalidTransitionError{Entity: "payment", To: string(to)}
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Payment{}, err
	}
	defer tx.Rollback(ctx)

	var payment models.Payment
	err = tx.QueryRow(ctx, `
		SELECT payment_id, order_id, method, amount, status, payment_date
		FROM payment WHERE payment_id = $1 FOR UPDATE`, paymentID,
	).Scan(&payment.ID, &payment.OrderID, &payment.Method, &payment.Amount,
		&payment.Status, &payment.PaymentDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Payment{}, ErrPaymentNotFound
	}
	if err != nil {
		return models.Payment{}, err
	}

	if !payment.Status.CanTransition(to) {
		return models.Payment{}, &InvalidTransitionError{Entity: "payment", From: string(payment.Status), To: string(to)}
	}

	err = tx.QueryRow(ctx, `
		UPDATE payment SET status = $1, payment_date = now()
		WHERE payment_id = $2
		RETURNING payment_date`, to, paymentID).Scan(&payment.PaymentDate)
	if err != nil {
		return models.Payment{}, err
	}
	payment.Status = to

	if to == models.PaymentPaid {
		var orderStatus models.OrderStatus
		err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE order_id = $1 FOR UPDATE`, payment.OrderID).Scan(&orderStatus)
		if err != nil {
			return models.Payment{}, err
		}
		if orderStatus.CanTransition(models.OrderProcessing) {
			if _, err := tx.Exec(ctx, `UPDATE orders SET status = $1 WHERE order_id = $2`,
				models.OrderProcessing, payment.OrderID); err != nil {
				return models.Payment{}, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

// UpdateShippingTracking records carrier and tracking number for an order.
func (s *OrderStore) UpdateShippingTracking(ctx context.Context, orderID int64, carrier, trackingNumber string) (models.Shipping, error) {
	var shipping models.Shipping
	err := s.DB.QueryRow(ctx, `
		UPDATE shipping SET carrier = $1, tracking_number = $2
		WHERE order_id = $3
		RETURNING shipping_id, order_id, method, carrier, cost, tracking_number, estimated_date`,
		carrier, trackingNumber, orderID,
	).Scan(&shipping.ID, &shipping.OrderID, &shipping.Method, &shipping.Carrier,
		&shipping.Cost, &shipping.TrackingNumber, &shipping.EstimatedDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Shipping{}, ErrShippingNotFound
	}
	return shipping, err
}
