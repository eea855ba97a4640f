package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"foodmarket/database"
	"foodmarket/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func CreateFood(c *gin.Context) {
	var input struct {
		Name        string  `json:"name" binding:"required"`
		Price       float64 `json:"price" binding:"required,gte=1"`
		CookingTime int     `json:"cookingTime" binding:"required,gte=1"`
		IsVeg       bool    `json:"isVeg"`
		IsBeverage  bool    `json:"isBeverage"`
		Cuisine     string  `json:"cuisine"`
		CategoryID  string  `json:"categoryId"`
		ShopID      string  `json:"shopId" binding:"required"`
		Image       string  `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	shopID, err := primitive.ObjectIDFromHex(input.ShopID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid shop id"})
		return
	}

	userID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	shopFilter := bson.M{"_id": shopID}
	if c.GetString("role") != models.RoleAdmin {
		shopFilter["ownerId"] = userID
	}
	var shop models.Shop
	if err := database.ShopCollection.FindOne(ctx, shopFilter).Decode(&shop); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Shop not found"})
		return
	}

	now := time.Now()
	food := models.Food{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Price:       input.Price,
		CookingTime: input.CookingTime,
		InStock:     true,
		IsVeg:       input.IsVeg,
		IsBeverage:  input.IsBeverage,
		Cuisine:     input.Cuisine,
		ShopID:      shopID,
		Image:       input.Image,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.CategoryID != "" {
		if categoryID, err := primitive.ObjectIDFromHex(input.CategoryID); err == nil {
			food.CategoryID = categoryID
		}
	}

	if _, err := database.FoodCollection.InsertOne(ctx, food); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create food"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Food created", "data": food})
}

func UpdateFood(c *gin.Context) {
	foodID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid food id"})
		return
	}

	var input struct {
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		CookingTime *int     `json:"cookingTime"`
		InStock     *bool    `json:"inStock"`
		IsVeg       *bool    `json:"isVeg"`
		IsBeverage  *bool    `json:"isBeverage"`
		Cuisine     *string  `json:"cuisine"`
		Image       *string  `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}
	if input.Price != nil && *input.Price < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Price must be at least 1"})
		return
	}
	if input.CookingTime != nil && *input.CookingTime < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cooking time must be at least 1 minute"})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		update["name"] = *input.Name
	}
	if input.Price != nil {
		update["price"] = *input.Price
	}
	if input.CookingTime != nil {
		update["cookingTime"] = *input.CookingTime
	}
	if input.InStock != nil {
		update["inStock"] = *input.InStock
	}
	if input.IsVeg != nil {
		update["isVeg"] = *input.IsVeg
	}
	if input.IsBeverage != nil {
		update["isBeverage"] = *input.IsBeverage
	}
	if input.Cuisine != nil {
		update["cuisine"] = *input.Cuisine
	}
	if input.Image != nil {
		update["image"] = *input.Image
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": foodID}
	if c.GetString("role") != models.RoleAdmin {
		userID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))
		filter["userId"] = userID
	}

	result, err := database.FoodCollection.UpdateOne(ctx, filter, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update food"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Food not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Food updated"})
}

func DeleteFood(c *gin.Context) {
	foodID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid food id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": foodID}
	if c.GetString("role") != models.RoleAdmin {
		userID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))
		filter["userId"] = userID
	}

	result, err := database.FoodCollection.DeleteOne(ctx, filter)
	if err != nil || result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Food not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Food deleted"})
}

// GetFoods lists the catalog with optional filters passed as query
// params: shopId, cuisine, categoryId, veg, beverage, inStock.
func GetFoods(c *gin.Context) {
	filter := bson.M{}

	if shopID := c.Query("shopId"); shopID != "" {
		objID, err := primitive.ObjectIDFromHex(shopID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid shop id"})
			return
		}
		filter["shopId"] = objID
	}
	if cuisine := c.Query("cuisine"); cuisine != "" {
		filter["cuisine"] = cuisine
	}
	if categoryID := c.Query("categoryId"); categoryID != "" {
		objID, err := primitive.ObjectIDFromHex(categoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category id"})
			return
		}
		filter["categoryId"] = objID
	}
	if veg := c.Query("veg"); veg != "" {
		isVeg, _ := strconv.ParseBool(veg)
		filter["isVeg"] = isVeg
	}
	if beverage := c.Query("beverage"); beverage != "" {
		isBeverage, _ := strconv.ParseBool(beverage)
		filter["isBeverage"] = isBeverage
	}
	if inStock := c.Query("inStock"); inStock != "" {
		stocked, _ := strconv.ParseBool(inStock)
		filter["inStock"] = stocked
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.FoodCollection.Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch foods"})
		return
	}

	var foods []models.Food
	if err := cursor.All(ctx, &foods); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode foods"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": foods})
}

func GetFood(c *gin.Context) {
	foodID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid food id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var food models.Food
	if err := database.FoodCollection.FindOne(ctx, bson.M{"_id": foodID}).Decode(&food); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Food not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": food})
}
