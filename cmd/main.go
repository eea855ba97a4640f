package main

import (
	"context"
	"log/slog"
	"time"

	"foodmarket/config"
	"foodmarket/database"
	"foodmarket/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {

	config.LoadEnv()

	database.ConnectMongo()
	database.InitCollections()
	database.ConnectRedis()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(ctx); err != nil {
		slog.Error("failed to ensure indexes", "error", err)
	}

	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.GetEnv("CORS_ORIGIN", "http://localhost:3000")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(r)

	port := config.GetEnv("PORT", "8080")
	r.Run(":" + port)
}
