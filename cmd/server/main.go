package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shipment-tracker/internal/config"
	"shipment-tracker/internal/controller"
	"shipment-tracker/internal/middleware"
	"shipment-tracker/internal/rabbit"
	"shipment-tracker/internal/repository"
	"shipment-tracker/internal/service"
)

func main() {
	cfg := config.Load()

	// MongoDB connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	store := repository.NewStore(client, cfg.MongoDBName)

	// Optional RabbitMQ publisher for the notify feed
	var events service.EventPublisher
	if cfg.RabbitURL != "" {
		conn, err := amqp091.Dial(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("rabbit dial failed: %v", err)
		}
		ch, err := conn.Channel()
		if err != nil {
			log.Fatalf("rabbit channel failed: %v", err)
		}
		events, err = rabbit.NewPublisher(ch)
		if err != nil {
			log.Fatalf("rabbit exchange declare failed: %v", err)
		}
		log.Printf("publishing shipment events to RabbitMQ")
	}

	// Repositories and services
	shipmentRepo := repository.NewMongoShipmentRepository(store)
	legRepo := repository.NewMongoLegRepository(store)
	shipmentService := service.NewShipmentService(shipmentRepo, legRepo)
	legService := service.NewLegService(shipmentRepo, legRepo, events)
	authService := service.NewAuthService(cfg.AuthURL)

	// Handlers
	shipmentCtl := controller.NewShipmentController(shipmentService)
	legCtl := controller.NewLegController(legService)

	// Router
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		if !store.Available(c.Request.Context()) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "store unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Everything else requires a token
	auth := r.Group("/api")
	auth.Use(middleware.AuthMiddleware(authService))

	auth.POST("/shipments", shipmentCtl.Create)
	auth.GET("/shipments", shipmentCtl.GetAll)
	auth.GET("/shipments/:shipmentId", shipmentCtl.Get)
	auth.PATCH("/shipments/:shipmentId", shipmentCtl.Update)

	auth.POST("/shipments/:shipmentId/legs", legCtl.AddLeg)
	auth.GET("/shipments/:shipmentId/legs", legCtl.GetLegs)
	auth.POST("/shipments/:shipmentId/repair-legs", legCtl.Repair)
	auth.PATCH("/legs/:legId", legCtl.UpdateLeg)
	auth.DELETE("/legs/:legId", legCtl.DeleteLeg)
	auth.POST("/legs/reassign", legCtl.Reassign)

	log.Printf("Shipment tracker listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
