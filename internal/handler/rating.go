package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridehail/internal/domain"
	"ridehail/internal/service"
)

// RatingHandler handles HTTP requests for ratings.
type RatingHandler struct {
	ratingService *service.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratingService *service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// RatingCreateRequest is the HTTP request body for creating a rating.
type RatingCreateRequest struct {
	DriverID int64 `json:"driverId" binding:"required,gt=0"`
	UserID   int64 `json:"userId" binding:"required,gt=0"`
	RideID   int64 `json:"rideId" binding:"required,gt=0"`
}

// RatingUpdateRequest is the HTTP request body for filling in scores.
type RatingUpdateRequest struct {
	DriverRating    *int32  `json:"driverRating" binding:"omitempty,min=1,max=5"`
	PassengerRating *int32  `json:"passengerRating" binding:"omitempty,min=1,max=5"`
	Comment         *string `json:"comment" binding:"omitempty,max=255"`
}

// RatingResponse is the HTTP representation of a rating.
type RatingResponse struct {
	ID              int64   `json:"id"`
	DriverID        int64   `json:"driverId"`
	UserID          int64   `json:"userId"`
	RideID          int64   `json:"rideId"`
	DriverRating    *int32  `json:"driverRating"`
	PassengerRating *int32  `json:"passengerRating"`
	Comment         *string `json:"comment"`
}

// RatingPageResponse is the HTTP response for listing ratings.
type RatingPageResponse struct {
	Ratings  []RatingResponse `json:"ratings"`
	PageInfo PageInfo         `json:"pageInfo"`
}

func toRatingResponse(rating *domain.Rating) RatingResponse {
	return RatingResponse{
		ID:              rating.ID,
		DriverID:        rating.DriverID,
		UserID:          rating.UserID,
		RideID:          rating.RideID,
		DriverRating:    rating.DriverRating,
		PassengerRating: rating.PassengerRating,
		Comment:         rating.Comment,
	}
}

// GetAll handles GET /api/v1/rating
func (h *RatingHandler) GetAll(c *gin.Context) {
	page, err := h.ratingService.List(c.Request.Context(), parsePageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	ratings := make([]RatingResponse, 0, len(page.Items))
	for _, rating := range page.Items {
		ratings = append(ratings, toRatingResponse(rating))
	}

	c.JSON(http.StatusOK, RatingPageResponse{Ratings: ratings, PageInfo: pageInfoOf(page)})
}

// Get handles GET /api/v1/rating/:id
func (h *RatingHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid rating id"})
		return
	}

	rating, err := h.ratingService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRatingResponse(rating))
}

// Create handles POST /api/v1/rating
func (h *RatingHandler) Create(c *gin.Context) {
	var req RatingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	rating, err := h.ratingService.Create(c.Request.Context(), &domain.Rating{
		DriverID: req.DriverID,
		UserID:   req.UserID,
		RideID:   req.RideID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRatingResponse(rating))
}

// Update handles PUT /api/v1/rating/:id
func (h *RatingHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid rating id"})
		return
	}

	var req RatingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	rating, err := h.ratingService.Update(c.Request.Context(), id, &domain.Rating{
		DriverRating:    req.DriverRating,
		PassengerRating: req.PassengerRating,
		Comment:         req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRatingResponse(rating))
}

// Delete handles DELETE /api/v1/rating/:id
func (h *RatingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid rating id"})
		return
	}

	if err := h.ratingService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
