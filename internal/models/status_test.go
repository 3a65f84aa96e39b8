package models

import "testing"

func TestOrderStatusHappyPath(t *testing.T) {
	path := []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered}
	for i := 0; i < len(path)-1; i++ {
		if !path[i].CanTransition(path[i+1]) {
			t.Fatalf("expected %s -> %s to be allowed", path[i], path[i+1])
		}
	}
	if !OrderDelivered.Terminal() {
		t.Fatal("expected delivered to be terminal")
	}
}

func TestOrderStatusCancellation(t *testing.T) {
	if !OrderPending.CanTransition(OrderCancelled) {
		t.Fatal("expected pending order to be cancellable")
	}
	if !OrderProcessing.CanTransition(OrderCancelled) {
		t.Fatal("expected processing order to be cancellable")
	}
	if OrderShipped.CanTransition(OrderCancelled) {
		t.Fatal("shipped order must not be cancellable")
	}
	if OrderDelivered.CanTransition(OrderCancelled) {
		t.Fatal("delivered order must not be cancellable")
	}
}

func TestOrderStatusNoBackwardsOrSkippedTransitions(t *testing.T) {
	forbidden := [][2]OrderStatus{
		{OrderPending, OrderShipped},
		{OrderPending, OrderDelivered},
		{OrderProcessing, OrderDelivered},
		{OrderShipped, OrderProcessing},
		{OrderDelivered, OrderPending},
		{OrderCancelled, OrderPending},
		{OrderCancelled, OrderProcessing},
	}
	for _, pair := range forbidden {
		if pair[0].CanTransition(pair[1]) {
			t.Fatalf("transition %s -> %s must be rejected", pair[0], pair[1])
		}
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		if !s.Valid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	if OrderStatus("completed").Valid() {
		t.Fatal("unknown status string must not be valid")
	}
	if OrderStatus("").Valid() {
		t.Fatal("empty status must not be valid")
	}
}

func TestPaymentStatusTransitions(t *testing.T) {
	for _, to := range []PaymentStatus{PaymentPaid, PaymentFailed, PaymentCancelled} {
		if !PaymentPending.CanTransition(to) {
			t.Fatalf("expected pending -> %s to be allowed", to)
		}
	}
	if PaymentPaid.CanTransition(PaymentPending) {
		t.Fatal("paid payment must not go back to pending")
	}
	if PaymentFailed.CanTransition(PaymentPaid) {
		t.Fatal("failed payment must not move to paid")
	}
	if PaymentStatus("refunded").Valid() {
		t.Fatal("unknown payment status must not be valid")
	}
}
