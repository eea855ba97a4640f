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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// submitReview is the single mutation path for the shop rating
// aggregate: append the review document, then fold the rating into the
// running average.
func submitReview(ctx context.Context, shopID, userID primitive.ObjectID, rating int, comment string) error {
	review := models.Review{
		ID:        primitive.NewObjectID(),
		ShopID:    shopID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if _, err := database.ReviewCollection.InsertOne(ctx, review); err != nil {
		return err
	}

	var shop models.Shop
	if err := database.ShopCollection.FindOne(ctx, bson.M{"_id": shopID}).Decode(&shop); err != nil {
		return err
	}

	updated := shop.Rating.Add(rating)
	_, err := database.ShopCollection.UpdateOne(ctx,
		bson.M{"_id": shopID},
		bson.M{"$set": bson.M{"rating": updated, "updatedAt": time.Now()}})
	return err
}

func CreateReview(c *gin.Context) {
	shopID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid shop id"})
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

	userID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var shop models.Shop
	if err := database.ShopCollection.FindOne(ctx, bson.M{"_id": shopID}).Decode(&shop); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Shop not found"})
		return
	}

	if err := submitReview(ctx, shopID, userID, body.Rating, body.Comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to submit review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review submitted"})
}

func GetShopReviews(c *gin.Context) {
	shopID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid shop id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.ReviewCollection.Find(ctx,
		bson.M{"shopId": shopID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(100))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch reviews"})
		return
	}

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": reviews})
}
