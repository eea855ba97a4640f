package models

import (
	"strings"
	"testing"
	"time"
)

func TestCalculateCharges(t *testing.T) {
	tests := []struct {
		name        string
		totalAmount float64
		deliveryFee float64
		wantTaxes   float64
		wantGrand   float64
	}{
		{"reference example", 200, 50, 10, 260},
		{"rounds taxes up", 190, 50, 10, 250}, // 5% of 190 = 9.5
		{"rounds taxes down", 188, 50, 9, 247},
		{"zero fee", 100, 0, 5, 105},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taxes, grand := CalculateCharges(tt.totalAmount, tt.deliveryFee)
			if taxes != tt.wantTaxes {
				t.Errorf("taxes = %v, want %v", taxes, tt.wantTaxes)
			}
			if grand != tt.wantGrand {
				t.Errorf("grandTotal = %v, want %v", grand, tt.wantGrand)
			}
		})
	}
}

func TestNewOrderIDFormat(t *testing.T) {
	now := time.Now()
	id := NewOrderID(now)

	if !strings.HasPrefix(id, "ORD") {
		t.Fatalf("order id %q missing ORD prefix", id)
	}
	// "ORD" + 13-digit millisecond timestamp + 3-digit suffix.
	if len(id) != 19 {
		t.Fatalf("order id %q length = %d, want 19", id, len(id))
	}
	for _, r := range id[3:] {
		if r < '0' || r > '9' {
			t.Fatalf("order id %q has non-digit payload", id)
		}
	}
}

func TestSettlePayment(t *testing.T) {
	now := time.Now()
	tests := []struct {
		method     string
		wantStatus string
		wantRef    bool
	}{
		{PaymentCOD, PaymentPending, true},
		{PaymentWallet, PaymentPending, true},
		{PaymentCard, PaymentCompleted, true},
		{PaymentUPI, PaymentCompleted, true},
		{"cheque", PaymentFailed, false},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			status, ref := SettlePayment(tt.method, now)
			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if (ref != "") != tt.wantRef {
				t.Errorf("ref = %q, want ref present = %v", ref, tt.wantRef)
			}
		})
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, method := range []string{PaymentCOD, PaymentCard, PaymentUPI, PaymentWallet} {
		if !ValidPaymentMethod(method) {
			t.Errorf("ValidPaymentMethod(%q) = false", method)
		}
	}
	if ValidPaymentMethod("cash") {
		t.Error(`ValidPaymentMethod("cash") = true`)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusPreparing, true},
		{StatusPreparing, StatusOutForDelivery, true},
		{StatusOutForDelivery, StatusDelivered, true},

		{StatusPending, StatusPreparing, false}, // no skipping
		{StatusConfirmed, StatusDelivered, false},
		{StatusPreparing, StatusConfirmed, false}, // no going back

		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusPreparing, StatusCancelled, false}, // too late to cancel

		{StatusDelivered, StatusCancelled, false}, // terminal
		{StatusCancelled, StatusConfirmed, false},
		{StatusDelivered, StatusConfirmed, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminalStatus(t *testing.T) {
	if !TerminalStatus(StatusDelivered) || !TerminalStatus(StatusCancelled) {
		t.Error("delivered and cancelled must be terminal")
	}
	if TerminalStatus(StatusOutForDelivery) {
		t.Error("out_for_delivery is not terminal")
	}
}
