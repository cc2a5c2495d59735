package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
	"ridehail/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// RideRequest is the HTTP request body for creating or updating a ride.
// A status field in the body is ignored: new rides always start CREATED
// and PUT never changes status.
type RideRequest struct {
	DriverID           int64   `json:"driverId" binding:"required,gt=0"`
	PassengerID        int64   `json:"passengerId" binding:"required,gt=0"`
	PickupAddress      string  `json:"pickupAddress" binding:"required,min=5,max=255"`
	DestinationAddress string  `json:"destinationAddress" binding:"required,min=5,max=255"`
	Price              float64 `json:"price" binding:"required,gt=0"`
}

// RideResponse is the HTTP representation of a ride.
type RideResponse struct {
	ID                 int64   `json:"id"`
	DriverID           int64   `json:"driverId"`
	PassengerID        int64   `json:"passengerId"`
	PickupAddress      string  `json:"pickupAddress"`
	DestinationAddress string  `json:"destinationAddress"`
	Status             string  `json:"status"`
	Price              float64 `json:"price"`
	OrderTime          string  `json:"orderTime"`
}

// RidePageResponse is the HTTP response for listing rides.
type RidePageResponse struct {
	Rides    []RideResponse `json:"rides"`
	PageInfo PageInfo       `json:"pageInfo"`
}

func toRideResponse(ride *domain.Ride) RideResponse {
	return RideResponse{
		ID:                 ride.ID,
		DriverID:           ride.DriverID,
		PassengerID:        ride.PassengerID,
		PickupAddress:      ride.PickupAddress,
		DestinationAddress: ride.DestinationAddress,
		Status:             string(ride.Status),
		Price:              ride.Price,
		OrderTime:          ride.OrderTime.Format(time.RFC3339),
	}
}

// GetAll handles GET /api/v1/ride
func (h *RideHandler) GetAll(c *gin.Context) {
	filter := repository.RideFilter{
		DriverID:           queryInt64(c, "driverId"),
		PassengerID:        queryInt64(c, "passengerId"),
		PickupAddress:      queryString(c, "pickupAddress"),
		DestinationAddress: queryString(c, "destinationAddress"),
		Status:             queryString(c, "status"),
		MinPrice:           queryFloat64(c, "minPrice"),
		MaxPrice:           queryFloat64(c, "maxPrice"),
	}

	page, err := h.rideService.List(c.Request.Context(), filter, parsePageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	rides := make([]RideResponse, 0, len(page.Items))
	for _, ride := range page.Items {
		rides = append(rides, toRideResponse(ride))
	}

	c.JSON(http.StatusOK, RidePageResponse{Rides: rides, PageInfo: pageInfoOf(page)})
}

// Get handles GET /api/v1/ride/:id
func (h *RideHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid ride id"})
		return
	}

	ride, err := h.rideService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRideResponse(ride))
}

// Create handles POST /api/v1/ride
func (h *RideHandler) Create(c *gin.Context) {
	var req RideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	ride, err := h.rideService.Create(c.Request.Context(), service.RideRequest{
		DriverID:           req.DriverID,
		PassengerID:        req.PassengerID,
		PickupAddress:      req.PickupAddress,
		DestinationAddress: req.DestinationAddress,
		Price:              req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRideResponse(ride))
}

// Update handles PUT /api/v1/ride/:id
func (h *RideHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid ride id"})
		return
	}

	var req RideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	ride, err := h.rideService.Update(c.Request.Context(), id, service.RideRequest{
		DriverID:           req.DriverID,
		PassengerID:        req.PassengerID,
		PickupAddress:      req.PickupAddress,
		DestinationAddress: req.DestinationAddress,
		Price:              req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRideResponse(ride))
}

// UpdateStatus handles PATCH /api/v1/ride/:id/status?status=S
func (h *RideHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid ride id"})
		return
	}

	ride, err := h.rideService.UpdateStatus(c.Request.Context(), id, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRideResponse(ride))
}

// Delete handles DELETE /api/v1/ride/:id
func (h *RideHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid ride id"})
		return
	}

	if err := h.rideService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
