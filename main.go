package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/ecommerce-shop-api/initializers"
	"github.com/Kariqs/ecommerce-shop-api/middlewares"
	"github.com/Kariqs/ecommerce-shop-api/models"
	"github.com/Kariqs/ecommerce-shop-api/routes"
	"github.com/Kariqs/ecommerce-shop-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	initializers.LoadEnv()
	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := initializers.ConnectToDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := initializers.SyncDatabase(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	images, err := initializers.NewImageStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up image store: %v", err)
	}

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	notifiers := initializers.NewOrderNotifiers(cfg, models.NewUsersRepository(db))
	handlers := routes.NewHandlers(db, tokens, images, notifiers, models.WithCheckoutIsolation(cfg.CheckoutIsolation))

	redisClient, err := initializers.ConnectRedis(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		handlers.LoginLimit = middlewares.LoginRateLimit(
			middlewares.NewRedisLoginAttempts(redisClient),
			cfg.LoginMaxAttempts,
			cfg.LoginCooldown,
		)
	}

	server := gin.Default()
	server.Use(middlewares.RequestID())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Cart-Total", middlewares.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.ImageStore == "local" {
		server.Static(initializers.UploadsURLPrefix, cfg.UploadDir)
	}
	routes.SetupRoutes(server, handlers)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
