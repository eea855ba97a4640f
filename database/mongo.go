package database

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client
var DB *mongo.Database

var UserCollection *mongo.Collection
var ShopCollection *mongo.Collection
var FoodCollection *mongo.Collection
var CartCollection *mongo.Collection
var OrderCollection *mongo.Collection
var ReviewCollection *mongo.Collection

func ConnectMongo() {
	uri := os.Getenv("MONGO_URI")
	dbName := os.Getenv("DB_NAME")

	if uri == "" || dbName == "" {
		log.Fatal("MONGO_URI or DB_NAME not set in environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	Client = client
	DB = client.Database(dbName)

	slog.Info("connected to MongoDB", "database", dbName)
}

func InitCollections() {
	UserCollection = DB.Collection("users")
	ShopCollection = DB.Collection("shops")
	FoodCollection = DB.Collection("foods")
	CartCollection = DB.Collection("carts")
	OrderCollection = DB.Collection("orders")
	ReviewCollection = DB.Collection("reviews")
}

// EnsureIndexes creates the indexes the query paths depend on: the
// 2dsphere index behind $geoNear, unique user emails, a unique orderId
// (the checkout retry loop relies on the duplicate-key error), and the
// one-open-cart-per-user constraint.
func EnsureIndexes(ctx context.Context) error {
	_, err := ShopCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "location", Value: "2dsphere"}},
	})
	if err != nil {
		return err
	}

	_, err = UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = OrderCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "orderId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = CartCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"checkedOut": false}),
	})
	return err
}
