package controllers

import (
	"context"
	"net/http"
	"time"

	"foodmarket/database"
	"foodmarket/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetOrdersAdmin(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if shopID := c.Query("shopId"); shopID != "" {
		objID, err := primitive.ObjectIDFromHex(shopID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid shop id"})
			return
		}
		filter["shopId"] = objID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.OrderCollection.Find(ctx, filter,
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

func GetOrderAdmin(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := database.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// UpdateOrderStatus advances an order one step along
// pending -> confirmed -> preparing -> out_for_delivery -> delivered.
// Delivery of a cod/wallet order also settles the payment.
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := database.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	if !models.CanTransition(order.Status, body.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Cannot move order from " + order.Status + " to " + body.Status,
		})
		return
	}

	update := bson.M{"status": body.Status, "updatedAt": time.Now()}
	if body.Status == models.StatusDelivered && order.PaymentStatus == models.PaymentPending {
		update["paymentStatus"] = models.PaymentCompleted
	}

	// Guard on the status read above so two admins cannot both advance.
	result, err := database.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": orderID, "status": order.Status},
		bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update order"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Order status changed concurrently, retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated"})
}

// CancelOrderAdmin cancels any non-terminal order and marks a completed
// payment as refunded.
func CancelOrderAdmin(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	err = database.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch order"})
		return
	}
	if models.TerminalStatus(order.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order is already " + order.Status})
		return
	}

	update := bson.M{"status": models.StatusCancelled, "updatedAt": time.Now()}
	if order.PaymentStatus == models.PaymentCompleted {
		update["paymentStatus"] = models.PaymentRefunded
	}

	result, err := database.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": orderID, "status": order.Status},
		bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to cancel order"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Order status changed concurrently, retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order cancelled"})
}
