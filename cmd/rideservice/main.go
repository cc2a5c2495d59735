package main

import (
	"context"
	"log"
	"time"

	"ridehail/internal/app"
	"ridehail/internal/broker"
	"ridehail/internal/client"
	"ridehail/internal/config"
	"ridehail/internal/handler"
	"ridehail/internal/outbox"
	internalRedis "ridehail/internal/redis"
	"ridehail/internal/repository/postgres"
	"ridehail/internal/service"
)

func main() {
	cfg := config.Load("ride-service")

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

	// Wire dependencies.
	cacheStore := internalRedis.NewCacheStore(redisClient)
	rideRepo := postgres.NewRideRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	driverClient := client.NewDriverClient(cfg.Upstream.DriverServiceURL, cfg.Upstream.Timeout, cacheStore)
	passengerClient := client.NewPassengerClient(cfg.Upstream.PassengerServiceURL, cfg.Upstream.Timeout, cacheStore)

	relay := outbox.NewRelay(outboxRepo, mq, cfg.Outbox.PollInterval)
	relayCtx, relayCancel := context.WithCancel(context.Background())
	defer relayCancel()
	go relay.Run(relayCtx)

	rideService := service.NewRideService(rideRepo, driverClient, passengerClient, relay)
	rideHandler := handler.NewRideHandler(rideService)

	router := app.NewRideRouter(app.RouterDeps{
		RedisClient: redisClient,
		NewRelicApp: nrApp,
	}, rideHandler)

	app.RunServer(router, cfg.Server)
}
