// File: /routes/routes.go
package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"perfectspot-api/config"
	"perfectspot-api/controllers"
	"perfectspot-api/middleware"
	"perfectspot-api/services"
)

func SetupCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	userController := controllers.NewUserController(db)
	eventController := controllers.NewEventController(db)
	reviewController := controllers.NewReviewController(db)
	friendController := controllers.NewFriendController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Auth routes (public)
	r.POST("/signup", authController.Signup)
	r.POST("/signin", authController.Signin)
	r.POST("/google-signin", authController.GoogleSignin)
	r.POST("/send-verification", authController.SendVerification)
	r.POST("/verify-code", authController.VerifyCode)

	// Event reads are open to anonymous callers; per-caller flags need the
	// optional principal
	events := r.Group("/events")
	events.Use(middleware.OptionalAuthMiddleware(cfg.JWTSecret))
	{
		events.GET("", eventController.GetEvents)
		events.GET("/:id", eventController.GetEvent)
		events.GET("/:id/reviews", reviewController.GetReviews)
	}

	// Protected routes
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// Event mutations
		protected.POST("/events", eventController.CreateEvent)
		protected.DELETE("/events/:id", eventController.DeleteEvent)
		protected.PATCH("/events/:id/edit", eventController.UpdateEvent)
		protected.PATCH("/events/:id/promote", eventController.PromoteEvent)
		protected.POST("/events/:id/rsvp", eventController.ToggleRSVP)

		// Reviews
		protected.POST("/events/:id/reviews/add", reviewController.CreateReview)
		protected.PATCH("/events/:id/reviews/:review_id", reviewController.UpdateReview)
		protected.DELETE("/events/:id/reviews/:review_id", reviewController.DeleteReview)

		// Users
		protected.GET("/users/search", userController.SearchUsers)
		protected.GET("/users/:id/profile", userController.GetProfile)
		protected.GET("/users/:id/friendship", friendController.GetFriendshipStatus)
		protected.DELETE("/users/:id/unfriend", friendController.Unfriend)
		protected.GET("/me/friends", friendController.GetMyFriends)

		// Friend requests
		protected.GET("/friend-requests", friendController.GetFriendRequests)
		protected.POST("/friend-requests", friendController.SendFriendRequest)
		protected.POST("/friend-requests/:request_id/accept", friendController.AcceptFriendRequest)
		protected.POST("/friend-requests/:request_id/decline", friendController.DeclineFriendRequest)
		protected.POST("/friend-requests/:request_id/cancel", friendController.CancelFriendRequest)
	}
}
