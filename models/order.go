package models

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending        = "pending"
	StatusConfirmed      = "confirmed"
	StatusPreparing      = "preparing"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

const (
	PaymentCOD    = "cod"
	PaymentCard   = "card"
	PaymentUPI    = "upi"
	PaymentWallet = "wallet"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// TaxRate is applied to the cart total at checkout.
const TaxRate = 0.05

// OrderItem denormalizes the food name and price so later catalog
// changes cannot corrupt order history.
type OrderItem struct {
	FoodID   primitive.ObjectID `bson:"foodId" json:"foodId"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Subtotal float64            `bson:"subtotal" json:"subtotal"`
}

type OrderReview struct {
	Rating  int       `bson:"rating" json:"rating"`
	Comment string    `bson:"comment,omitempty" json:"comment,omitempty"`
	RatedAt time.Time `bson:"ratedAt" json:"ratedAt"`
}

// Order is the immutable snapshot created at checkout.
type Order struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID               string             `bson:"orderId" json:"orderId"`
	UserID                primitive.ObjectID `bson:"userId" json:"userId"`
	ShopID                primitive.ObjectID `bson:"shopId" json:"shopId"`
	Items                 []OrderItem        `bson:"items" json:"items"`
	TotalAmount           float64            `bson:"totalAmount" json:"totalAmount"`
	DeliveryFee           float64            `bson:"deliveryFee" json:"deliveryFee"`
	Taxes                 float64            `bson:"taxes" json:"taxes"`
	GrandTotal            float64            `bson:"grandTotal" json:"grandTotal"`
	Status                string             `bson:"status" json:"status"`
	PaymentMethod         string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus         string             `bson:"paymentStatus" json:"paymentStatus"`
	PaymentRef            string             `bson:"paymentRef,omitempty" json:"paymentRef,omitempty"`
	DeliveryAddress       string             `bson:"deliveryAddress" json:"deliveryAddress"`
	Phone                 string             `bson:"phone" json:"phone"`
	EstimatedDeliveryTime time.Time          `bson:"estimatedDeliveryTime" json:"estimatedDeliveryTime"`
	Review                *OrderReview       `bson:"review,omitempty" json:"review,omitempty"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewOrderID builds a sortable, human-shareable id:
// "ORD" + millisecond timestamp + zero-padded 3-digit random suffix.
// Callers retry on a duplicate-key insert; see the orders unique index.
func NewOrderID(now time.Time) string {
	return fmt.Sprintf("ORD%d%03d", now.UnixMilli(), rand.Intn(1000))
}

// CalculateCharges derives taxes and the grand total from the cart total
// and the configured delivery fee.
func CalculateCharges(totalAmount, deliveryFee float64) (taxes, grandTotal float64) {
	taxes = math.Round(totalAmount * TaxRate)
	grandTotal = totalAmount + deliveryFee + taxes
	return taxes, grandTotal
}

// SettlePayment simulates the payment outcome for a method. Card and UPI
// settle immediately; cod and wallet stay pending until delivery with a
// synthetic reference issued up front.
func SettlePayment(method string, now time.Time) (status, ref string) {
	switch method {
	case PaymentCard, PaymentUPI:
		return PaymentCompleted, fmt.Sprintf("PAY%d", now.UnixMilli())
	case PaymentCOD, PaymentWallet:
		return PaymentPending, fmt.Sprintf("PAY%d", now.UnixMilli())
	default:
		return PaymentFailed, ""
	}
}

func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCOD, PaymentCard, PaymentUPI, PaymentWallet:
		return true
	}
	return false
}

var statusRank = map[string]int{
	StatusPending:        0,
	StatusConfirmed:      1,
	StatusPreparing:      2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

// CanTransition reports whether an order may move from one status to the
// next. The chain only advances one step at a time; cancellation is
// allowed until preparation starts; delivered and cancelled are terminal.
func CanTransition(from, to string) bool {
	if from == StatusDelivered || from == StatusCancelled {
		return false
	}
	if to == StatusCancelled {
		return statusRank[from] < statusRank[StatusPreparing]
	}
	fromRank, ok1 := statusRank[from]
	toRank, ok2 := statusRank[to]
	return ok1 && ok2 && toRank == fromRank+1
}

func TerminalStatus(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}
