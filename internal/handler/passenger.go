package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridehail/internal/domain"
	"ridehail/internal/service"
)

// PassengerHandler handles HTTP requests for passengers.
type PassengerHandler struct {
	passengerService *service.PassengerService
}

// NewPassengerHandler creates a new PassengerHandler.
func NewPassengerHandler(passengerService *service.PassengerService) *PassengerHandler {
	return &PassengerHandler{passengerService: passengerService}
}

// PassengerRequest is the HTTP request body for creating or updating a passenger.
type PassengerRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// PassengerResponse is the HTTP representation of a passenger.
type PassengerResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// PassengerPageResponse is the HTTP response for listing passengers.
type PassengerPageResponse struct {
	Passengers []PassengerResponse `json:"passengers"`
	PageInfo   PageInfo            `json:"pageInfo"`
}

func toPassengerResponse(passenger *domain.Passenger) PassengerResponse {
	return PassengerResponse{
		ID:          passenger.ID,
		Name:        passenger.Name,
		Email:       passenger.Email,
		PhoneNumber: passenger.PhoneNumber,
	}
}

// GetAll handles GET /api/v1/passenger
func (h *PassengerHandler) GetAll(c *gin.Context) {
	page, err := h.passengerService.List(c.Request.Context(), parsePageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	passengers := make([]PassengerResponse, 0, len(page.Items))
	for _, passenger := range page.Items {
		passengers = append(passengers, toPassengerResponse(passenger))
	}

	c.JSON(http.StatusOK, PassengerPageResponse{Passengers: passengers, PageInfo: pageInfoOf(page)})
}

// Get handles GET /api/v1/passenger/:id
func (h *PassengerHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid passenger id"})
		return
	}

	passenger, err := h.passengerService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPassengerResponse(passenger))
}

// Create handles POST /api/v1/passenger
func (h *PassengerHandler) Create(c *gin.Context) {
	var req PassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	passenger, err := h.passengerService.Create(c.Request.Context(), &domain.Passenger{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPassengerResponse(passenger))
}

// Update handles PUT /api/v1/passenger/:id
func (h *PassengerHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid passenger id"})
		return
	}

	var req PassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	passenger, err := h.passengerService.Update(c.Request.Context(), id, &domain.Passenger{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPassengerResponse(passenger))
}

// Delete handles DELETE /api/v1/passenger/:id
func (h *PassengerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid passenger id"})
		return
	}

	if err := h.passengerService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
