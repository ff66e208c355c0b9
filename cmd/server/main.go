package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/bekarys04/Social_Network/internal/config"
	"github.com/bekarys04/Social_Network/internal/database"
	"github.com/bekarys04/Social_Network/internal/handlers"
	"github.com/bekarys04/Social_Network/internal/realtime"
	"github.com/bekarys04/Social_Network/internal/repository"
	cronjobs "github.com/bekarys04/Social_Network/internal/scheduler"
	"github.com/bekarys04/Social_Network/internal/services"
	"github.com/bekarys04/Social_Network/pkg/logger"
	"github.com/bekarys04/Social_Network/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	privacyRepo := repository.NewPrivacyRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	postRepo := repository.NewPostRepository(db)

	// --- Realtime ---
	registry := realtime.NewRegistry(nil)
	dispatcher := realtime.NewDispatcher(registry, notificationRepo)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	connectionService := services.NewConnectionService(connectionRepo, blockRepo, userRepo, dispatcher)
	blockService := services.NewBlockService(blockRepo, connectionRepo, userRepo)
	privacyService := services.NewPrivacyService(privacyRepo, connectionRepo, blockRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	messageService := services.NewMessageService(messageRepo, privacyService, dispatcher)
	postService := services.NewPostService(postRepo, privacyService, dispatcher)

	// Presence transitions fan out to the user's friends only.
	registry.SetListener(func(userID string, online bool) {
		id, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return
		}
		friendIDs, err := connectionService.FriendIDs(context.Background(), id)
		if err != nil {
			logger.Log.Warnf("Failed to resolve friends for status broadcast: %v", err)
			return
		}
		targets := make([]string, 0, len(friendIDs))
		for _, fid := range friendIDs {
			targets = append(targets, fid.Hex())
		}
		status := realtime.StatusOffline
		if online {
			status = realtime.StatusOnline
		}
		dispatcher.BroadcastStatus(userID, status, targets)
	})

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, privacyService, cfg)
	connectionHandler := handlers.NewConnectionHandler(connectionService)
	blockHandler := handlers.NewBlockHandler(blockService)
	privacyHandler := handlers.NewPrivacyHandler(privacyService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	messageHandler := handlers.NewMessageHandler(messageService)
	postHandler := handlers.NewPostHandler(postService)
	wsHandler := handlers.NewWSHandler(registry, dispatcher, messageService, cfg.JWTSecret)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public user routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")

	// Protected user routes
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedUserRoutes.HandleFunc("/{id}", userHandler.GetUserHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}/posts", postHandler.ListUserPostsHandler).Methods("GET")

	// Friend routes
	protectedFriendRoutes := router.PathPrefix("/friends").Subrouter()
	protectedFriendRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedFriendRoutes.HandleFunc("/{id}/request", connectionHandler.SendRequestHandler).Methods("POST")
	protectedFriendRoutes.HandleFunc("/requests", connectionHandler.ListPendingHandler).Methods("GET")
	protectedFriendRoutes.HandleFunc("/requests/{id}/respond", connectionHandler.RespondHandler).Methods("POST")
	protectedFriendRoutes.HandleFunc("", connectionHandler.ListFriendsHandler).Methods("GET")
	protectedFriendRoutes.HandleFunc("/{id}", connectionHandler.RemoveHandler).Methods("DELETE")
	protectedFriendRoutes.HandleFunc("/{id}/status", connectionHandler.StatusHandler).Methods("GET")

	// Block routes
	protectedBlockRoutes := router.PathPrefix("/blocks").Subrouter()
	protectedBlockRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedBlockRoutes.HandleFunc("/{id}", blockHandler.BlockUserHandler).Methods("POST")
	protectedBlockRoutes.HandleFunc("/{id}", blockHandler.UnblockUserHandler).Methods("DELETE")
	protectedBlockRoutes.HandleFunc("", blockHandler.ListBlockedHandler).Methods("GET")

	// Privacy routes
	protectedPrivacyRoutes := router.PathPrefix("/privacy").Subrouter()
	protectedPrivacyRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedPrivacyRoutes.HandleFunc("", privacyHandler.GetSettingsHandler).Methods("GET")
	protectedPrivacyRoutes.HandleFunc("", privacyHandler.UpdateSettingsHandler).Methods("PUT")

	// Notification routes
	protectedNotificationRoutes := router.PathPrefix("/notifications").Subrouter()
	protectedNotificationRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedNotificationRoutes.HandleFunc("", notificationHandler.GetNotificationsHandler).Methods("GET")
	protectedNotificationRoutes.HandleFunc("/unread", notificationHandler.UnreadCountHandler).Methods("GET")
	protectedNotificationRoutes.HandleFunc("/read-all", notificationHandler.MarkAllReadHandler).Methods("POST")
	protectedNotificationRoutes.HandleFunc("/{id}/read", notificationHandler.MarkReadHandler).Methods("POST")

	// Message routes
	protectedMessageRoutes := router.PathPrefix("/messages").Subrouter()
	protectedMessageRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedMessageRoutes.HandleFunc("/conversations", messageHandler.ListConversationsHandler).Methods("GET")
	protectedMessageRoutes.HandleFunc("/unread", messageHandler.UnreadCountHandler).Methods("GET")
	protectedMessageRoutes.HandleFunc("/{id}", messageHandler.SendMessageHandler).Methods("POST")
	protectedMessageRoutes.HandleFunc("/{id}", messageHandler.GetHistoryHandler).Methods("GET")
	protectedMessageRoutes.HandleFunc("/{id}/read", messageHandler.MarkConversationReadHandler).Methods("POST")

	// Post routes
	protectedPostRoutes := router.PathPrefix("/posts").Subrouter()
	protectedPostRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedPostRoutes.HandleFunc("", postHandler.CreatePostHandler).Methods("POST")
	protectedPostRoutes.HandleFunc("/{id}", postHandler.GetPostHandler).Methods("GET")
	protectedPostRoutes.HandleFunc("/{id}/like", postHandler.LikePostHandler).Methods("POST")
	protectedPostRoutes.HandleFunc("/{id}/like", postHandler.UnlikePostHandler).Methods("DELETE")

	// Live channel; auth happens inside the handler from the query token.
	router.HandleFunc("/ws", wsHandler.ServeWS)

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Background cleanup of expired notifications
	cronjobs.StartNotificationCronJobs(notificationService)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // adjust to frontend origin
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
