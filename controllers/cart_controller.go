package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"foodmarket/database"
	"foodmarket/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var errCartVersion = errors.New("cart was modified concurrently")

const cartRetries = 3

// openCart returns the user's open cart, creating an empty one when
// absent. At most one open cart exists per user (partial unique index).
func openCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := database.CartCollection.FindOne(ctx, bson.M{"userId": userID, "checkedOut": false}).Decode(&cart)
	if err == nil {
		return &cart, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	now := time.Now()
	cart = models.Cart{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Items:     []models.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := database.CartCollection.InsertOne(ctx, cart); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the race to another request; read theirs.
			err = database.CartCollection.FindOne(ctx, bson.M{"userId": userID, "checkedOut": false}).Decode(&cart)
			if err != nil {
				return nil, err
			}
			return &cart, nil
		}
		return nil, err
	}
	return &cart, nil
}

// saveCart persists the mutated items with an optimistic version check.
// A concurrent writer bumps the version and the update matches nothing.
func saveCart(ctx context.Context, cart *models.Cart) error {
	result, err := database.CartCollection.UpdateOne(ctx,
		bson.M{"_id": cart.ID, "version": cart.Version, "checkedOut": false},
		bson.M{
			"$set": bson.M{
				"items":       cart.Items,
				"totalAmount": cart.TotalAmount,
				"updatedAt":   time.Now(),
			},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errCartVersion
	}
	return nil
}

// mutateCart runs fn against a fresh read of the open cart, retrying a
// bounded number of times when a concurrent writer wins the version race.
func mutateCart(ctx context.Context, userID primitive.ObjectID, fn func(*models.Cart) error) (*models.Cart, error) {
	var lastErr error
	for attempt := 0; attempt < cartRetries; attempt++ {
		cart, err := openCart(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := fn(cart); err != nil {
			return nil, err
		}
		if err := saveCart(ctx, cart); err != nil {
			if err == errCartVersion {
				lastErr = err
				continue
			}
			return nil, err
		}
		return cart, nil
	}
	return nil, lastErr
}

func AddToCart(c *gin.Context) {
	var body struct {
		FoodID   string `json:"foodId" binding:"required"`
		ShopID   string `json:"shopId" binding:"required"`
		Quantity int    `json:"quantity" binding:"required,gte=1"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	foodID, err := primitive.ObjectIDFromHex(body.FoodID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid food id"})
		return
	}
	shopID, err := primitive.ObjectIDFromHex(body.ShopID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid shop id"})
		return
	}
	userID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var food models.Food
	if err := database.FoodCollection.FindOne(ctx, bson.M{"_id": foodID}).Decode(&food); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Food not found"})
		return
	}
	if food.ShopID != shopID {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Food does not belong to this shop"})
		return
	}
	if !food.InStock {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Food is out of stock"})
		return
	}

	// Price is snapshotted here; later catalog edits never re-price the line.
	item := models.CartItem{
		FoodID:   foodID,
		ShopID:   shopID,
		Name:     food.Name,
		Price:    food.Price,
		Quantity: body.Quantity,
	}

	cart, err := mutateCart(ctx, userID, func(cart *models.Cart) error {
		return cart.AddItem(item)
	})
	if err != nil {
		if err == models.ErrShopMismatch {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Cart already holds items from another shop; clear it first"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Added to cart", "data": cart})
}

func GetCart(c *gin.Context) {
	userID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	err := database.CartCollection.FindOne(ctx, bson.M{"userId": userID, "checkedOut": false}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"items": []models.CartItem{}, "totalAmount": 0}})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": cart})
}

func GetCartSummary(c *gin.Context) {
	userID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	err := database.CartCollection.FindOne(ctx, bson.M{"userId": userID, "checkedOut": false}).Decode(&cart)
	if err != nil && err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"itemCount":     len(cart.Items),
			"totalQuantity": cart.TotalQuantity(),
			"totalAmount":   cart.TotalAmount,
		},
	})
}

func UpdateCartItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid item index"})
		return
	}

	var body struct {
		Quantity int `json:"quantity" binding:"required,gte=1"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantity must be at least 1"})
		return
	}

	userID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cart, err := mutateCart(ctx, userID, func(cart *models.Cart) error {
		return cart.UpdateQuantity(index, body.Quantity)
	})
	if err != nil {
		if err == models.ErrItemIndex {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart updated", "data": cart})
}

func RemoveCartItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid item index"})
		return
	}

	userID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cart, err := mutateCart(ctx, userID, func(cart *models.Cart) error {
		return cart.RemoveItem(index)
	})
	if err != nil {
		if err == models.ErrItemIndex {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed", "data": cart})
}

// ClearCart is idempotent: clearing an absent or already-empty cart
// succeeds without side effects.
func ClearCart(c *gin.Context) {
	userID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := database.CartCollection.UpdateOne(ctx,
		bson.M{"userId": userID, "checkedOut": false},
		bson.M{
			"$set": bson.M{"items": []models.CartItem{}, "totalAmount": 0, "updatedAt": time.Now()},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
}
