package routes

import (
	"foodmarket/controllers"
	"foodmarket/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{
		api.POST("/register", controllers.Register)
		api.POST("/login", controllers.Login)
		api.POST("/logout", controllers.Logout)
		api.POST("/otp/request", controllers.RequestOTP)
		api.POST("/otp/verify", controllers.VerifyOTP)

		// Public catalog and discovery.
		api.GET("/shops", controllers.GetShops)
		api.GET("/shops/search", controllers.SearchShops)
		api.GET("/shops/nearby", controllers.NearbyShops)
		api.GET("/shops/trending", controllers.TrendingShops)
		api.GET("/shops/:id", controllers.GetShop)
		api.GET("/shops/:id/reviews", controllers.GetShopReviews)
		api.GET("/foods", controllers.GetFoods)
		api.GET("/foods/:id", controllers.GetFood)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/shops/recommendations", controllers.RecommendShops)
			protected.POST("/shops/:id/reviews", controllers.CreateReview)

			owner := protected.Group("/owner")
			owner.Use(middleware.OwnerMiddleware())
			{
				owner.POST("/shops", controllers.CreateShop)
				owner.PUT("/shops/:id", controllers.UpdateShop)
				owner.DELETE("/shops/:id", controllers.DeleteShop)

				owner.POST("/foods", controllers.CreateFood)
				owner.PUT("/foods/:id", controllers.UpdateFood)
				owner.DELETE("/foods/:id", controllers.DeleteFood)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.GET("/orders", controllers.GetOrdersAdmin)
				admin.GET("/orders/:id", controllers.GetOrderAdmin)
				admin.PUT("/orders/:id/status", controllers.UpdateOrderStatus)
				admin.PUT("/orders/:id/cancel", controllers.CancelOrderAdmin)
			}

			user := protected.Group("/user")
			{
				user.POST("/cart", controllers.AddToCart)
				user.GET("/cart", controllers.GetCart)
				user.GET("/cart/summary", controllers.GetCartSummary)
				user.PUT("/cart/:index", controllers.UpdateCartItem)
				user.DELETE("/cart/:index", controllers.RemoveCartItem)
				user.DELETE("/cart", controllers.ClearCart)

				user.POST("/checkout", controllers.Checkout)
				user.GET("/orders", controllers.GetOrders)
				user.GET("/orders/:id", controllers.GetOrder)
				user.PUT("/orders/:id/cancel", controllers.CancelOrder)
				user.POST("/orders/:id/review", controllers.ReviewOrder)
			}
		}
	}
}
