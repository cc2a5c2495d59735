package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"ridehail/internal/handler"
	"ridehail/internal/middleware"
)

// RouterDeps contains the shared dependencies every service router needs.
type RouterDeps struct {
	RedisClient *redis.Client
	NewRelicApp *newrelic.Application
}

// newBaseRouter creates a Gin router with the middleware stack common to
// all four services.
func newBaseRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}

// NewRideRouter creates the ride service router.
func NewRideRouter(deps RouterDeps, rideHandler *handler.RideHandler) *gin.Engine {
	router := newBaseRouter(deps)

	rides := router.Group("/api/v1/ride")
	{
		rides.GET("", rideHandler.GetAll)
		rides.GET("/:id", rideHandler.Get)
		rides.POST("", rideHandler.Create)
		rides.PUT("/:id", rideHandler.Update)
		rides.PATCH("/:id/status", rideHandler.UpdateStatus)
		rides.DELETE("/:id", rideHandler.Delete)
	}

	return router
}

// NewDriverRouter creates the driver service router.
func NewDriverRouter(deps RouterDeps, driverHandler *handler.DriverHandler) *gin.Engine {
	router := newBaseRouter(deps)

	drivers := router.Group("/api/v1/driver")
	{
		drivers.GET("", driverHandler.GetAll)
		drivers.GET("/:id", driverHandler.Get)
		drivers.POST("", driverHandler.Create)
		drivers.PUT("/:id", driverHandler.Update)
		drivers.DELETE("/:id", driverHandler.Delete)
	}

	return router
}

// NewPassengerRouter creates the passenger service router.
func NewPassengerRouter(deps RouterDeps, passengerHandler *handler.PassengerHandler) *gin.Engine {
	router := newBaseRouter(deps)

	passengers := router.Group("/api/v1/passenger")
	{
		passengers.GET("", passengerHandler.GetAll)
		passengers.GET("/:id", passengerHandler.Get)
		passengers.POST("", passengerHandler.Create)
		passengers.PUT("/:id", passengerHandler.Update)
		passengers.DELETE("/:id", passengerHandler.Delete)
	}

	return router
}

// NewRatingRouter creates the rating service router.
func NewRatingRouter(deps RouterDeps, ratingHandler *handler.RatingHandler) *gin.Engine {
	router := newBaseRouter(deps)

	ratings := router.Group("/api/v1/rating")
	{
		ratings.GET("", ratingHandler.GetAll)
		ratings.GET("/:id", ratingHandler.Get)
		ratings.POST("", ratingHandler.Create)
		ratings.PUT("/:id", ratingHandler.Update)
		ratings.DELETE("/:id", ratingHandler.Delete)
	}

	return router
}
