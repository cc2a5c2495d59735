package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridehail/internal/domain"
	"ridehail/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// CarRequest is one car in a driver request body.
type CarRequest struct {
	Number string `json:"number" binding:"required,min=2,max=20"`
	Model  string `json:"model" binding:"required"`
	Color  string `json:"color"`
}

// DriverRequest is the HTTP request body for creating or updating a driver.
type DriverRequest struct {
	Name        string       `json:"name" binding:"required"`
	PhoneNumber string       `json:"phoneNumber" binding:"required"`
	Cars        []CarRequest `json:"cars" binding:"dive"`
}

// CarResponse is one car in a driver response.
type CarResponse struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
	Model  string `json:"model"`
	Color  string `json:"color"`
}

// DriverResponse is the HTTP representation of a driver.
type DriverResponse struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	PhoneNumber string        `json:"phoneNumber"`
	Cars        []CarResponse `json:"cars"`
}

// DriverPageResponse is the HTTP response for listing drivers.
type DriverPageResponse struct {
	Drivers  []DriverResponse `json:"drivers"`
	PageInfo PageInfo         `json:"pageInfo"`
}

func toDriver(req DriverRequest) *domain.Driver {
	driver := &domain.Driver{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	}
	for _, car := range req.Cars {
		driver.Cars = append(driver.Cars, domain.Car{
			Number: car.Number,
			Model:  car.Model,
			Color:  car.Color,
		})
	}
	return driver
}

func toDriverResponse(driver *domain.Driver) DriverResponse {
	resp := DriverResponse{
		ID:          driver.ID,
		Name:        driver.Name,
		PhoneNumber: driver.PhoneNumber,
		Cars:        make([]CarResponse, 0, len(driver.Cars)),
	}
	for _, car := range driver.Cars {
		resp.Cars = append(resp.Cars, CarResponse{
			ID:     car.ID,
			Number: car.Number,
			Model:  car.Model,
			Color:  car.Color,
		})
	}
	return resp
}

// GetAll handles GET /api/v1/driver
func (h *DriverHandler) GetAll(c *gin.Context) {
	page, err := h.driverService.List(c.Request.Context(), parsePageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	drivers := make([]DriverResponse, 0, len(page.Items))
	for _, driver := range page.Items {
		drivers = append(drivers, toDriverResponse(driver))
	}

	c.JSON(http.StatusOK, DriverPageResponse{Drivers: drivers, PageInfo: pageInfoOf(page)})
}

// Get handles GET /api/v1/driver/:id
func (h *DriverHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid driver id"})
		return
	}

	driver, err := h.driverService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDriverResponse(driver))
}

// Create handles POST /api/v1/driver
func (h *DriverHandler) Create(c *gin.Context) {
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	driver, err := h.driverService.Create(c.Request.Context(), toDriver(req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toDriverResponse(driver))
}

// Update handles PUT /api/v1/driver/:id
func (h *DriverHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid driver id"})
		return
	}

	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	driver, err := h.driverService.Update(c.Request.Context(), id, toDriver(req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDriverResponse(driver))
}

// Delete handles DELETE /api/v1/driver/:id
func (h *DriverHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid driver id"})
		return
	}

	if err := h.driverService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
