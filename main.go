package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/altai-travel/booking/config"
	"github.com/altai-travel/booking/config/db"
	"github.com/altai-travel/booking/config/redis"
	"github.com/altai-travel/booking/logger"
	"github.com/altai-travel/booking/middlewares/cors"
	"github.com/altai-travel/booking/routes"
)

func init() {
	logger.InitLoggers()
	config.LoadEnv()
}

func main() {
	db.Connect()
	defer db.Close()
	defer redis.CloseRedis()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.RunMigrations(migrateCtx, db.DB); err != nil {
		cancelMigrate()
		logger.ErrorLogger.Errorf("Failed to run migrations: %v", err)
		os.Exit(1)
	}
	cancelMigrate()
	logger.InfoLogger.Info("Database migrations applied.")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.CorsMiddleware())

	routes.RegisterAvailabilityRoutes(r)
	routes.RegisterBookingRoutes(r)
	routes.RegisterProviderRoutes(r)
	routes.RegisterServiceRoutes(r)
	routes.RegisterSeasonRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "ok from booking service"})
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		fmt.Printf("Server listening on :%s\n", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server failed to listen: %v\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		fmt.Printf("Server forced to shutdown: %v\n", err)
	}

	fmt.Println("Server exited gracefully.")
}
