package controllers

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"

	"foodmarket/database"
	"foodmarket/models"
	"foodmarket/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	trendingWindow  = 7 * 24 * time.Hour
	preferenceLimit = 5
	historyLimit    = 50
)

// shopResult is a shop annotated with the derived discovery fields.
type shopResult struct {
	models.Shop
	DistanceKm        *float64 `json:"distanceKm,omitempty"`
	EstimatedDelivery *int     `json:"estimatedDeliveryTime,omitempty"` // minutes
	DeliveryCharge    float64  `json:"deliveryCharge"`
	IsOpen            bool     `json:"isOpen"`
	TrendingScore     float64  `json:"trendingScore,omitempty"`
	MatchScore        float64  `json:"matchScore,omitempty"`
}

func annotate(shop models.Shop, hasPoint bool, lon, lat float64, now time.Time) shopResult {
	result := shopResult{
		Shop:           shop,
		DeliveryCharge: shop.DeliveryCharge,
		IsOpen:         shop.IsOpenAt(now),
	}
	if hasPoint {
		distance := utils.HaversineKm(lon, lat, shop.Location.Lon(), shop.Location.Lat())
		eta := utils.EstimatedDeliveryMinutes(distance)
		result.DistanceKm = &distance
		result.EstimatedDelivery = &eta
		result.DeliveryCharge = utils.AdjustedDeliveryCharge(shop.DeliveryCharge, distance)
	}
	return result
}

func parsePoint(c *gin.Context) (lon, lat float64, ok bool) {
	lonStr, latStr := c.Query("longitude"), c.Query("latitude")
	if lonStr == "" || latStr == "" {
		return 0, 0, false
	}
	lon, err1 := strconv.ParseFloat(lonStr, 64)
	lat, err2 := strconv.ParseFloat(latStr, 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lon, lat, true
}

// SearchShops filters active shops on cuisine, rating floor, distance,
// open-now, delivery availability, and fast delivery (<=30 min ETA).
// With a query point and no explicit sort, results come back nearest
// first.
func SearchShops(c *gin.Context) {
	lon, lat, hasPoint := parsePoint(c)
	now := time.Now()

	filter := bson.M{"isActive": true}
	if cuisine := c.Query("cuisine"); cuisine != "" {
		filter["cuisine"] = cuisine
	}
	if minRating := c.Query("minRating"); minRating != "" {
		floor, err := strconv.ParseFloat(minRating, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid minRating"})
			return
		}
		filter["rating.average"] = bson.M{"$gte": floor}
	}
	if c.Query("delivery") == "true" {
		filter["deliveryAvailable"] = true
	}

	maxDistance := 0.0
	if maxStr := c.Query("maxDistance"); maxStr != "" {
		parsed, err := strconv.ParseFloat(maxStr, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid maxDistance"})
			return
		}
		maxDistance = parsed
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shops, err := listShops(ctx, filter)
	if err != nil && err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to search shops"})
		return
	}

	openNow := c.Query("openNow") == "true"
	fastDelivery := c.Query("fastDelivery") == "true"

	results := make([]shopResult, 0, len(shops))
	for _, shop := range shops {
		result := annotate(shop, hasPoint, lon, lat, now)
		if openNow && !result.IsOpen {
			continue
		}
		if hasPoint && maxDistance > 0 && *result.DistanceKm > maxDistance {
			continue
		}
		if fastDelivery {
			if !hasPoint || *result.EstimatedDelivery > 30 {
				continue
			}
		}
		results = append(results, result)
	}

	switch c.Query("sort") {
	case "rating":
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Rating.Average > results[j].Rating.Average
		})
	case "name":
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Name < results[j].Name
		})
	default:
		if hasPoint {
			sort.SliceStable(results, func(i, j int) bool {
				return *results[i].DistanceKm < *results[j].DistanceKm
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(results), "data": results})
}

// NearbyShops uses the 2dsphere index through a $geoNear pipeline and
// re-annotates with the same rounded haversine the rest of discovery uses.
func NearbyShops(c *gin.Context) {
	lon, lat, hasPoint := parsePoint(c)
	if !hasPoint {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "longitude and latitude are required"})
		return
	}

	maxDistanceKm := 10.0
	if maxStr := c.Query("maxDistance"); maxStr != "" {
		parsed, err := strconv.ParseFloat(maxStr, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid maxDistance"})
			return
		}
		maxDistanceKm = parsed
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$geoNear", Value: bson.M{
			"near":          bson.M{"type": "Point", "coordinates": []float64{lon, lat}},
			"distanceField": "geoDistance",
			"maxDistance":   maxDistanceKm * 1000, // meters
			"query":         bson.M{"isActive": true},
			"spherical":     true,
		}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.ShopCollection.Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to find nearby shops"})
		return
	}

	var shops []models.Shop
	if err := cursor.All(ctx, &shops); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode shops"})
		return
	}

	now := time.Now()
	results := make([]shopResult, 0, len(shops))
	for _, shop := range shops {
		results = append(results, annotate(shop, true, lon, lat, now))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(results), "data": results})
}

// weeklyDeliveredCounts aggregates orders delivered in the trailing
// window, grouped per shop.
func weeklyDeliveredCounts(ctx context.Context) (map[primitive.ObjectID]int, error) {
	since := time.Now().Add(-trendingWindow)
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"status":    models.StatusDelivered,
			"createdAt": bson.M{"$gte": since},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$shopId",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := database.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ShopID primitive.ObjectID `bson:"_id"`
		Count  int                `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[primitive.ObjectID]int, len(rows))
	for _, row := range rows {
		counts[row.ShopID] = row.Count
	}
	return counts, nil
}

// TrendingShops ranks shops by recent delivered volume, rating, featured
// placement, and proximity.
func TrendingShops(c *gin.Context) {
	lon, lat, hasPoint := parsePoint(c)
	now := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	counts, err := weeklyDeliveredCounts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to aggregate orders"})
		return
	}

	shops, err := listShops(ctx, bson.M{"isActive": true})
	if err != nil && err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch shops"})
		return
	}

	results := make([]shopResult, 0, len(shops))
	for _, shop := range shops {
		result := annotate(shop, hasPoint, lon, lat, now)

		signals := utils.ShopSignals{
			RatingAverage: shop.Rating.Average,
			WeeklyOrders:  counts[shop.ID],
			Featured:      shop.IsFeatured,
		}
		if hasPoint {
			signals.DistanceKm = *result.DistanceKm
		} else {
			// No query point: the proximity bonus cannot apply.
			signals.DistanceKm = 1e9
		}
		if !utils.TrendingEligible(signals) {
			continue
		}
		result.TrendingScore = utils.TrendingScore(signals)
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].TrendingScore != results[j].TrendingScore {
			return results[i].TrendingScore > results[j].TrendingScore
		}
		return results[i].Rating.Average > results[j].Rating.Average
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(results), "data": results})
}

// userPreferences walks the user's recent delivered orders newest-first
// and takes the first few distinct cuisines and menu categories those
// shops carry.
func userPreferences(ctx context.Context, userID primitive.ObjectID) (cuisines, categories []string, err error) {
	cursor, err := database.OrderCollection.Find(ctx,
		bson.M{"userId": userID, "status": models.StatusDelivered},
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(historyLimit))
	if err != nil {
		return nil, nil, err
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, nil, err
	}

	shopIDs := make([]primitive.ObjectID, 0, len(orders))
	seen := make(map[primitive.ObjectID]bool, len(orders))
	for _, order := range orders {
		if !seen[order.ShopID] {
			seen[order.ShopID] = true
			shopIDs = append(shopIDs, order.ShopID)
		}
	}
	if len(shopIDs) == 0 {
		return nil, nil, nil
	}

	shopCursor, err := database.ShopCollection.Find(ctx, bson.M{"_id": bson.M{"$in": shopIDs}})
	if err != nil {
		return nil, nil, err
	}
	var shops []models.Shop
	if err := shopCursor.All(ctx, &shops); err != nil {
		return nil, nil, err
	}

	shopByID := make(map[primitive.ObjectID]models.Shop, len(shops))
	for _, shop := range shops {
		shopByID[shop.ID] = shop
	}

	// Rebuild discovery order from the order history, not the $in result.
	var cuisineStream, categoryStream []string
	for _, shopID := range shopIDs {
		if shop, ok := shopByID[shopID]; ok {
			cuisineStream = append(cuisineStream, shop.Cuisine...)
			categoryStream = append(categoryStream, shop.MenuCategory...)
		}
	}

	return utils.FirstDistinct(cuisineStream, preferenceLimit),
		utils.FirstDistinct(categoryStream, preferenceLimit), nil
}

// RecommendShops personalizes the shop list against the user's top
// historical cuisines and categories.
func RecommendShops(c *gin.Context) {
	lon, lat, hasPoint := parsePoint(c)
	now := time.Now()
	userID, _ := primitive.ObjectIDFromHex(c.MustGet("userId").(string))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	prefCuisines, prefCategories, err := userPreferences(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to read order history"})
		return
	}

	shops, err := listShops(ctx, bson.M{"isActive": true})
	if err != nil && err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch shops"})
		return
	}

	results := make([]shopResult, 0, len(shops))
	for _, shop := range shops {
		result := annotate(shop, hasPoint, lon, lat, now)
		result.MatchScore = utils.MatchScore(
			shop.Cuisine, shop.MenuCategory,
			prefCuisines, prefCategories,
			shop.Rating.Average, shop.IsFeatured)
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		if results[i].Rating.Average != results[j].Rating.Average {
			return results[i].Rating.Average > results[j].Rating.Average
		}
		if hasPoint {
			return *results[i].DistanceKm < *results[j].DistanceKm
		}
		return false
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(results),
		"data":    results,
		"preferences": gin.H{
			"cuisines":   prefCuisines,
			"categories": prefCategories,
		},
	})
}
