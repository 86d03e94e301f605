package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maharashtra-guide/cache"
	"maharashtra-guide/config"
	"maharashtra-guide/events"
	"maharashtra-guide/handlers"
	"maharashtra-guide/repository"
	"maharashtra-guide/services"
)

func main() {
	backfill := flag.Bool("backfill-guides", false, "assign a Maharashtra city location to every guide without coordinates, then exit")
	report := flag.Bool("report-guides", false, "print how many guides have usable coordinates, then exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// MongoDB
	client, err := repository.Connect(context.Background(), cfg.MongoURI, cfg.MongoTimeout)
	if client == nil {
		log.Fatalf("Failed to create MongoDB client: %v", err)
	}
	if err != nil {
		if *backfill || *report {
			log.Fatalf("MongoDB is required for maintenance tasks: %v", err)
		}
		log.Printf("Warning: MongoDB is not reachable yet, requests will fail with 503 until it is: %v", err)
	}
	disconnect := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}

	userRepo := repository.NewMongoUserRepository(client.Database(cfg.MongoDatabase), cfg.MongoTimeout)

	if *backfill || *report {
		err := runMaintenance(context.Background(), services.NewMaintenanceService(userRepo), *backfill)
		disconnect()
		if err != nil {
			log.Fatalf("Maintenance failed: %v", err)
		}
		return
	}
	defer disconnect()

	userRepo.EnsureIndexes(context.Background())

	// Redis user cache
	var userCache services.UserCache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("Warning: Redis unavailable, user cache disabled: %v", err)
		} else {
			defer redisClient.Close()
			userCache = cache.NewRedisUserCache(redisClient, cfg.UserCacheTTL)
			log.Printf("User cache enabled on %s", cfg.RedisAddr)
		}
	}

	// RabbitMQ location events
	var publisher services.LocationPublisher
	if cfg.RabbitMQURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.RabbitMQURL, cfg.LocationExchange)
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, location events disabled: %v", err)
		} else {
			defer amqpPublisher.Close()
			publisher = amqpPublisher
			log.Printf("Publishing location events to exchange %q", cfg.LocationExchange)
		}
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		AuthService:    services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry),
		UserService:    services.NewUserService(userRepo, userCache, publisher),
		GuideService:   services.NewGuideService(userRepo, cfg.NearbyRadiusKm),
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		Environment:    cfg.Env,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on :%s (%s)", cfg.Port, cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on :%s: %v", cfg.Port, err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}

func runMaintenance(ctx context.Context, svc *services.MaintenanceService, backfill bool) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if backfill {
		res, err := svc.BackfillGuideLocations(ctx)
		if err != nil {
			return fmt.Errorf("backfill guide locations: %w", err)
		}
		log.Printf("Backfill complete: %d guides updated, %d already had coordinates", res.Fixed, res.AlreadySet)
	}

	report, err := svc.GuideReport(ctx)
	if err != nil {
		return fmt.Errorf("guide report: %w", err)
	}
	log.Println(report.String())
	return nil
}
