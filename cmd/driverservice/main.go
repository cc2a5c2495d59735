package main

import (
	"context"
	"log"
	"time"

	"ridehail/internal/app"
	"ridehail/internal/config"
	"ridehail/internal/handler"
	"ridehail/internal/repository/postgres"
	"ridehail/internal/service"
)

func main() {
	cfg := config.Load("driver-service")

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

	driverRepo := postgres.NewDriverRepository(db)
	driverService := service.NewDriverService(driverRepo)
	driverHandler := handler.NewDriverHandler(driverService)

	router := app.NewDriverRouter(app.RouterDeps{
		RedisClient: redisClient,
		NewRelicApp: nrApp,
	}, driverHandler)

	app.RunServer(router, cfg.Server)
}
