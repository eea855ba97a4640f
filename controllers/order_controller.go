package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"foodmarket/config"
	"foodmarket/database"
	"foodmarket/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	orderIDRetries   = 3
	deliveryEstimate = 45 * time.Minute
)

// Checkout converts the open cart into an immutable order. The cart flip
// is the commit point: a single FindOneAndUpdate that only matches an
// open, non-empty cart, so a concurrent checkout or add cannot slip in
// between the read and the flip. A failed order insert flips the cart
// back (compensating action).
func Checkout(c *gin.Context) {
	var body struct {
		PaymentMethod   string `json:"paymentMethod" binding:"required"`
		DeliveryAddress string `json:"deliveryAddress" binding:"required"`
		Phone           string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "paymentMethod, deliveryAddress and phone are required"})
		return
	}
	if !models.ValidPaymentMethod(body.PaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment method"})
		return
	}

	userID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cart models.Cart
	err := database.CartCollection.FindOneAndUpdate(ctx,
		bson.M{
			"userId":     userID,
			"checkedOut": false,
			"items.0":    bson.M{"$exists": true},
		},
		bson.M{
			"$set": bson.M{"checkedOut": true, "updatedAt": time.Now()},
			"$inc": bson.M{"version": 1},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart"})
		return
	}

	shopID, _ := cart.ShopID()

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, models.OrderItem{
			FoodID:   line.FoodID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
			Subtotal: line.Subtotal,
		})
	}

	now := time.Now()
	deliveryFee := config.DeliveryFee()
	taxes, grandTotal := models.CalculateCharges(cart.TotalAmount, deliveryFee)
	paymentStatus, paymentRef := models.SettlePayment(body.PaymentMethod, now)

	order := models.Order{
		ID:                    primitive.NewObjectID(),
		OrderID:               models.NewOrderID(now),
		UserID:                userID,
		ShopID:                shopID,
		Items:                 items,
		TotalAmount:           cart.TotalAmount,
		DeliveryFee:           deliveryFee,
		Taxes:                 taxes,
		GrandTotal:            grandTotal,
		Status:                models.StatusConfirmed,
		PaymentMethod:         body.PaymentMethod,
		PaymentStatus:         paymentStatus,
		PaymentRef:            paymentRef,
		DeliveryAddress:       body.DeliveryAddress,
		Phone:                 body.Phone,
		EstimatedDeliveryTime: now.Add(deliveryEstimate),
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	// The unique index on orderId turns a collision into a duplicate-key
	// error; re-roll the random suffix and retry.
	inserted := false
	for attempt := 0; attempt < orderIDRetries; attempt++ {
		if _, err = database.OrderCollection.InsertOne(ctx, order); err == nil {
			inserted = true
			break
		}
		if !mongo.IsDuplicateKeyError(err) {
			break
		}
		order.OrderID = models.NewOrderID(time.Now())
	}
	if !inserted {
		// Reopen the cart so the user can try again; nothing was ordered.
		_, rollbackErr := database.CartCollection.UpdateOne(ctx,
			bson.M{"_id": cart.ID},
			bson.M{"$set": bson.M{"checkedOut": false}, "$inc": bson.M{"version": 1}})
		if rollbackErr != nil {
			slog.Error("failed to reopen cart after order insert failure",
				"cartId", cart.ID.Hex(), "error", rollbackErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order"})
		return
	}

	for _, line := range cart.Items {
		_, _ = database.FoodCollection.UpdateOne(ctx,
			bson.M{"_id": line.FoodID},
			bson.M{"$inc": bson.M{"orderCount": line.Quantity}})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order placed successfully",
		"data":    order,
	})
}

func GetOrders(c *gin.Context) {
	userID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.OrderCollection.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
}

func GetOrder(c *gin.Context) {
	userID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := database.OrderCollection.FindOne(ctx, bson.M{"_id": orderID, "userId": userID}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// CancelOrder lets the customer cancel before preparation starts.
func CancelOrder(c *gin.Context) {
	userID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := database.OrderCollection.UpdateOne(ctx,
		bson.M{
			"_id":    orderID,
			"userId": userID,
			"status": bson.M{"$in": []string{models.StatusPending, models.StatusConfirmed}},
		},
		bson.M{"$set": bson.M{"status": models.StatusCancelled, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to cancel order"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order not found or can no longer be cancelled"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order cancelled"})
}

// ReviewOrder records a post-delivery rating on the order and feeds the
// shop rating aggregate through the same path as standalone reviews.
func ReviewOrder(c *gin.Context) {
	userID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var body struct {
		Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Rating must be between 1 and 5"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	var order models.Order
	err = database.OrderCollection.FindOneAndUpdate(ctx,
		bson.M{
			"_id":    orderID,
			"userId": userID,
			"status": models.StatusDelivered,
			"review": bson.M{"$exists": false},
		},
		bson.M{"$set": bson.M{
			"review":    models.OrderReview{Rating: body.Rating, Comment: body.Comment, RatedAt: now},
			"updatedAt": now,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order not found, not delivered yet, or already reviewed"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save review"})
		return
	}

	if err := submitReview(ctx, order.ShopID, userID, body.Rating, body.Comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update shop rating"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Thanks for your review"})
}
