package main

import (
	"context"
	"log"
	"time"

	"ridehail/internal/app"
	"ridehail/internal/broker"
	"ridehail/internal/config"
	"ridehail/internal/handler"
	"ridehail/internal/repository/postgres"
	"ridehail/internal/service"
)

func main() {
	cfg := config.Load("rating-service")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	nrApp := app.NewRelicApp(cfg.NewRelic)

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	mq, err := broker.Connect(cfg.RabbitMQ.URL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer mq.Close()

	ratingRepo := postgres.NewRatingRepository(db)
	ratingService := service.NewRatingService(ratingRepo)
	ratingHandler := handler.NewRatingHandler(ratingService)

	// Seed skeleton ratings from ride events.
	consumer := service.NewRatingConsumer(ratingRepo)
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()
	go func() {
		for {
			err := mq.Consume(consumerCtx, broker.QueueRatingSeed, "rating-service", consumer.HandleDelivery)
			if consumerCtx.Err() != nil {
				return
			}
			if err != nil {
				log.Printf("rating consumer stopped: %v; restarting", err)
			}
			time.Sleep(time.Second)
		}
	}()

	router := app.NewRatingRouter(app.RouterDeps{
		RedisClient: redisClient,
		NewRelicApp: nrApp,
	}, ratingHandler)

	app.RunServer(router, cfg.Server)
}
