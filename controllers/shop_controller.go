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
)

type shopInput struct {
	Name              string   `json:"name" binding:"required"`
	LicenseID         string   `json:"licenseId" binding:"required"`
	Email             string   `json:"email" binding:"required,email"`
	Phone             string   `json:"phone" binding:"required"`
	Address           string   `json:"address" binding:"required"`
	Longitude         float64  `json:"longitude"`
	Latitude          float64  `json:"latitude"`
	Cuisine           []string `json:"cuisine"`
	MenuCategory      []string `json:"menuCategory"`
	OpenTime          string   `json:"openTime" binding:"required"`
	CloseTime         string   `json:"closeTime" binding:"required"`
	DeliveryAvailable bool     `json:"deliveryAvailable"`
	DeliveryCharge    float64  `json:"deliveryCharge"`
}

func CreateShop(c *gin.Context) {
	var input shopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	location, err := models.NewGeoPoint(input.Longitude, input.Latitude)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ownerID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	shop := models.Shop{
		ID:                primitive.NewObjectID(),
		Name:              input.Name,
		LicenseID:         input.LicenseID,
		Email:             input.Email,
		Phone:             input.Phone,
		Address:           input.Address,
		Location:          location,
		Cuisine:           input.Cuisine,
		MenuCategory:      input.MenuCategory,
		Rating:            models.Rating{},
		OpenTime:          input.OpenTime,
		CloseTime:         input.CloseTime,
		IsActive:          true,
		DeliveryAvailable: input.DeliveryAvailable,
		DeliveryCharge:    input.DeliveryCharge,
		OwnerID:           ownerID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := database.ShopCollection.InsertOne(ctx, shop); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create shop"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Shop created", "data": shop})
}

func GetShop(c *gin.Context) {
	shopID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid shop id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var shop models.Shop
	if err := database.ShopCollection.FindOne(ctx, bson.M{"_id": shopID}).Decode(&shop); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Shop not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"shop":   shop,
			"isOpen": shop.IsOpenAt(time.Now()),
		},
	})
}

func UpdateShop(c *gin.Context) {
	shopID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid shop id"})
		return
	}

	var input struct {
		Name              *string   `json:"name"`
		Phone             *string   `json:"phone"`
		Address           *string   `json:"address"`
		Longitude         *float64  `json:"longitude"`
		Latitude          *float64  `json:"latitude"`
		Cuisine           *[]string `json:"cuisine"`
		MenuCategory      *[]string `json:"menuCategory"`
		OpenTime          *string   `json:"openTime"`
		CloseTime         *string   `json:"closeTime"`
		IsActive          *bool     `json:"isActive"`
		DeliveryAvailable *bool     `json:"deliveryAvailable"`
		DeliveryCharge    *float64  `json:"deliveryCharge"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		update["name"] = *input.Name
	}
	if input.Phone != nil {
		update["phone"] = *input.Phone
	}
	if input.Address != nil {
		update["address"] = *input.Address
	}
	if input.Longitude != nil && input.Latitude != nil {
		location, err := models.NewGeoPoint(*input.Longitude, *input.Latitude)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		update["location"] = location
	}
	if input.Cuisine != nil {
		update["cuisine"] = *input.Cuisine
	}
	if input.MenuCategory != nil {
		update["menuCategory"] = *input.MenuCategory
	}
	if input.OpenTime != nil {
		update["openTime"] = *input.OpenTime
	}
	if input.CloseTime != nil {
		update["closeTime"] = *input.CloseTime
	}
	if input.IsActive != nil {
		update["isActive"] = *input.IsActive
	}
	if input.DeliveryAvailable != nil {
		update["deliveryAvailable"] = *input.DeliveryAvailable
	}
	if input.DeliveryCharge != nil {
		update["deliveryCharge"] = *input.DeliveryCharge
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": shopID}
	if c.GetString("role") != models.RoleAdmin {
		ownerID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))
		filter["ownerId"] = ownerID
	}

	result, err := database.ShopCollection.UpdateOne(ctx, filter, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update shop"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Shop not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Shop updated"})
}

// DeleteShop refuses while the shop still has undelivered orders.
func DeleteShop(c *gin.Context) {
	shopID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid shop id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pending, err := database.OrderCollection.CountDocuments(ctx, bson.M{
		"shopId": shopID,
		"status": bson.M{"$nin": []string{models.StatusDelivered, models.StatusCancelled}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to check orders"})
		return
	}
	if pending > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Shop has pending orders and cannot be deleted"})
		return
	}

	filter := bson.M{"_id": shopID}
	if c.GetString("role") != models.RoleAdmin {
		ownerID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))
		filter["ownerId"] = ownerID
	}

	result, err := database.ShopCollection.DeleteOne(ctx, filter)
	if err != nil || result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Shop not found"})
		return
	}

	_, _ = database.FoodCollection.DeleteMany(ctx, bson.M{"shopId": shopID})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Shop deleted"})
}

func listShops(ctx context.Context, filter bson.M) ([]models.Shop, error) {
	cursor, err := database.ShopCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var shops []models.Shop
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

func GetShops(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	shops, err := listShops(ctx, bson.M{"isActive": true})
	if err != nil && err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch shops"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": shops})
}
