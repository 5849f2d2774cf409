package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stackithq/stackit/backend/internal/database"
	"github.com/stackithq/stackit/backend/internal/handlers"
	"github.com/stackithq/stackit/backend/internal/middleware"
	"github.com/stackithq/stackit/backend/internal/notify"
)

type Server struct {
	db      *database.Database
	handler *handlers.Handler
}

// New wires the handlers around an already opened database handle.
func New(db *database.Database) *Server {
	notifier := notify.New(db.DB())
	return &Server{
		db:      db,
		handler: handlers.NewHandler(db.DB(), notifier),
	}
}

// NewHTTPServer creates and configures the HTTP server for cmd/api
func NewHTTPServer() *http.Server {
	db, err := database.New()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	newServer := New(db)
	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Question routes (public reads, personalized when a token is sent)
		api.GET("/questions", s.handler.Question.GetQuestions)
		api.GET("/questions/:id", middleware.OptionalAuth(), s.handler.Question.GetQuestion)

		// User routes (public reads)
		api.GET("/users/:id", s.handler.User.GetUserProfile)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth protected routes
			protected.GET("/me", s.handler.Auth.GetMe)

			// Question protected routes
			protected.POST("/questions", s.handler.Question.CreateQuestion)
			protected.PUT("/questions/:id", s.handler.Question.UpdateQuestion)
			protected.DELETE("/questions/:id", s.handler.Question.DeleteQuestion)

			// Answer protected routes
			protected.POST("/questions/:id/answers", s.handler.Answer.CreateAnswer)
			protected.PUT("/answers/:id", s.handler.Answer.UpdateAnswer)
			protected.DELETE("/answers/:id", s.handler.Answer.DeleteAnswer)

			// Voting and acceptance
			protected.POST("/vote", s.handler.Vote.CastVote)
			protected.POST("/accept", s.handler.Answer.SetAcceptance)

			// Notification routes
			protected.GET("/notifications", s.handler.Notification.GetNotifications)
			protected.PUT("/notifications/read", s.handler.Notification.MarkAllRead)
			protected.PUT("/notifications/read/:id", s.handler.Notification.MarkRead)
		}
	}

	return r
}
