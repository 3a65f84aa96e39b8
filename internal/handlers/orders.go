package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"techub/internal/cache"
	"techub/internal/commerce"
	"techub/internal/events"
	"techub/internal/middleware"
	"techub/internal/models"
)

type checkoutRequest struct {
	PaymentMethod  string `json:"payment_method" binding:"required"`
	AddressID      *int64 `json:"address_id"`
	ShippingMethod string `json:"shipping_method"`
	ShippingCost   string `json:"shipping_cost"`
}

// CheckoutCart runs the all-or-nothing checkout and publishes order.created
// after the transaction commits. On failure the cart is untouched.
func CheckoutCart(checkout *commerce.Checkout, publisher *events.Publisher, productCache *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders/checkout"
		defer handlePanic(c, route)

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if req.PaymentMethod != "cash" && req.PaymentMethod != "card" {
			respondWithError(c, http.StatusBadRequest, route, "invalid payment method")
			return
		}

		in := commerce.CheckoutInput{
			UserID:        middleware.UserID(c),
			PaymentMethod: req.PaymentMethod,
			AddressID:     req.AddressID,
		}
		if req.ShippingMethod != "" {
			cost := decimal.Zero
			if req.ShippingCost != "" {
				parsed, err := decimal.NewFromString(req.ShippingCost)
				if err != nil || parsed.IsNegative() {
					respondWithError(c, http.StatusBadRequest, route, "invalid shipping cost")
					return
				}
				cost = parsed
			}
			in.Shipping = &commerce.ShippingInput{Method: req.ShippingMethod, Cost: cost}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		details, err := checkout.PlaceOrder(ctx, in)
		if respondCommerceError(c, route, err) {
			return
		}

		items := make([]events.OrderItemEvent, 0, len(details.Items))
		for _, item := range details.Items {
			items = append(items, events.OrderItemEvent{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
			productCache.InvalidateProduct(ctx, item.ProductID)
		}
		publisher.Publish(events.TopicOrderCreated, events.EventOrderCreated, details.ID, events.OrderCreatedPayload{
			OrderID:     details.ID,
			UserID:      details.UserID,
			TotalAmount: details.TotalAmount,
			Items:       items,
		})

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "checkout successful",
			"data":    details,
		})
	}
}

func GetMyOrders(orders *commerce.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		list, err := orders.ListOrdersByUser(ctx, middleware.UserID(c))
		if respondCommerceError(c, route, err) {
			return
		}
		if list == nil {
			list = []models.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
	}
}

// GetOrderDetails returns the full aggregate. Users can only read their own
// orders; the admin surface uses its own routes.
func GetOrderDetails(orders *commerce.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:order_id"

		orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid order id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		details, err := orders.GetOrderDetails(ctx, orderID)
		if respondCommerceError(c, route, err) {
			return
		}
		if details.UserID != middleware.UserID(c) {
			respondWithError(c, http.StatusNotFound, route, commerce.ErrOrderNotFound.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": details})
	}
}

type paymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentStatus is the gateway callback: paid also moves the order to
// processing inside the same transaction.
func UpdatePaymentStatus(orders *commerce.OrderStore, publisher *events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/orders/payment/:payment_id"
		defer handlePanic(c, route)

		paymentID, err := strconv.ParseInt(c.Param("payment_id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid payment id")
			return
		}

		var req paymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		payment, err := orders.UpdatePaymentStatus(ctx, paymentID, models.PaymentStatus(req.Status))
		if respondCommerceError(c, route, err) {
			return
		}

		publisher.Publish(events.TopicPaymentUpdated, events.EventPaymentUpdated, payment.OrderID, events.PaymentUpdatedPayload{
			PaymentID: payment.ID,
			OrderID:   payment.OrderID,
			Status:    payment.Status,
		})
		c.JSON(http.StatusOK, gin.H{"success": true, "data": payment})
	}
}

/* =========================
   ADMIN
========================= */

func GetAllOrders(orders *commerce.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/orders"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		list, err := orders.ListAllOrders(ctx)
		if respondCommerceError(c, route, err) {
			return
		}
		if list == nil {
			list = []models.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
	}
}

func GetOrdersByUser(orders *commerce.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/orders/user/:user_id"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		list, err := orders.ListOrdersByUser(ctx, c.Param("user_id"))
		if respondCommerceError(c, route, err) {
			return
		}
		if list == nil {
			list = []models.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
	}
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus applies one admin-driven transition from the status
// table. Cancelling restocks the order's units.
func UpdateOrderStatus(orders *commerce.OrderStore, publisher *events.Publisher, productCache *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/orders/:order_id/status"
		defer handlePanic(c, route)

		orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid order id")
			return
		}

		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := orders.UpdateOrderStatus(ctx, orderID, models.OrderStatus(req.Status))
		if respondCommerceError(c, route, err) {
			return
		}
		if order.Status == models.OrderCancelled {
			// Restocked quantities made cached stock levels stale.
			details, err := orders.GetOrderDetails(ctx, orderID)
			if err == nil {
				for _, item := range details.Items {
					productCache.InvalidateProduct(ctx, item.ProductID)
				}
			}
		}

		publisher.Publish(events.TopicOrderStatus, events.EventOrderStatus, order.ID, events.OrderStatusPayload{
			OrderID: order.ID,
			Status:  order.Status,
		})
		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}

type shippingTrackingRequest struct {
	Carrier        string `json:"carrier" binding:"required"`
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

func UpdateShippingTracking(orders *commerce.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/orders/:order_id/shipping"
		defer handlePanic(c, route)

		orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid order id")
			return
		}

		var req shippingTrackingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		shipping, err := orders.UpdateShippingTracking(ctx, orderID, req.Carrier, req.TrackingNumber)
		if respondCommerceError(c, route, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": shipping})
	}
}
