package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"pulsehub/config"
	"pulsehub/handlers"
	"pulsehub/middleware"
	"pulsehub/repositories"
	"pulsehub/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	config.InitJWT()

	// Initialize database
	db := config.InitDB()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	versionRepo := repositories.NewPostVersionRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	communityRepo := repositories.NewCommunityRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	followRepo := repositories.NewFollowRepository(db)
	likeRepo := repositories.NewLikeRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	savedRepo := repositories.NewSavedPostRepository(db)
	complaintRepo := repositories.NewComplaintRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	notificationService := services.NewNotificationService(notificationRepo, followRepo)
	membershipService := services.NewMembershipService(communityRepo)
	postService := services.NewPostService(
		postRepo, versionRepo, tagRepo, communityRepo, userRepo,
		likeRepo, commentRepo, savedRepo,
		membershipService, notificationService,
	)
	feedService := services.NewFeedService(postRepo, likeRepo, commentRepo, savedRepo, time.Now().UnixNano())
	engagementService := services.NewEngagementService(
		postRepo, likeRepo, commentRepo, savedRepo, followRepo, userRepo,
		notificationService,
	)
	tagService := services.NewTagService(tagRepo)
	complaintService := services.NewComplaintService(complaintRepo, postRepo, commentRepo, communityRepo, membershipService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	postHandler := handlers.NewPostHandler(postService)
	feedHandler := handlers.NewFeedHandler(feedService)
	communityHandler := handlers.NewCommunityHandler(membershipService)
	engagementHandler := handlers.NewEngagementHandler(engagementService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	tagHandler := handlers.NewTagHandler(tagService)
	complaintHandler := handlers.NewComplaintHandler(complaintService)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Read paths resolve the viewer when a token is present but never
		// require one.
		public := v1.Group("/")
		public.Use(middleware.AuthOptional())
		{
			public.GET("/feed", feedHandler.GetFeed)
			public.GET("/posts/:id", postHandler.GetPost)
			public.GET("/tags", tagHandler.GetTags)
			public.GET("/communities", communityHandler.GetCommunities)
			public.GET("/communities/:id", communityHandler.GetCommunity)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthRequired())
		{
			// Profile
			protected.GET("/profile", authHandler.GetProfile)

			// Posts
			protected.POST("/posts", postHandler.CreatePost)
			protected.PUT("/posts/:id", postHandler.UpdateDraft)
			protected.DELETE("/posts/:id", postHandler.DeletePost)
			protected.POST("/posts/:id/approve", postHandler.ApprovePost)
			protected.POST("/posts/:id/reject", postHandler.RejectPost)

			// Engagement
			protected.POST("/posts/:id/like", engagementHandler.ToggleLike)
			protected.POST("/posts/:id/save", engagementHandler.ToggleSave)
			protected.POST("/posts/:id/comments", engagementHandler.AddComment)
			protected.DELETE("/comments/:id", engagementHandler.DeleteComment)
			protected.POST("/users/:id/follow", engagementHandler.ToggleFollow)

			// Communities
			protected.POST("/communities", communityHandler.CreateCommunity)
			protected.POST("/communities/:id/subscription", communityHandler.ToggleSubscription)
			protected.POST("/communities/:id/notifications", communityHandler.ToggleNotifications)
			protected.GET("/communities/:id/pending", postHandler.GetPendingPosts)

			// Complaints
			protected.POST("/complaints", complaintHandler.FileComplaint)
			protected.PUT("/complaints/:id", complaintHandler.DecideComplaint)
			protected.GET("/communities/:id/complaints", complaintHandler.GetPendingComplaints)

			// Notifications
			protected.GET("/notifications", notificationHandler.GetNotifications)
			protected.PUT("/notifications/read", notificationHandler.MarkRead)
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
