package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eduardoceto/waste-logs-service/internal/http/middleware"
	"github.com/eduardoceto/waste-logs-service/internal/model"
	"github.com/eduardoceto/waste-logs-service/internal/service"
)

type driverRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Company        string `json:"company" binding:"required"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Plates         string `json:"plates"`
	EconomicNumber string `json:"economic_number"`
}

func (h *Handler) listDrivers(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	drivers, err := h.drivers.List(c.Request.Context(), service.ListDriversInput{
		Principal:       principal,
		IncludeInactive: c.Query("include_inactive") == "true",
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	response := make([]driverResponse, 0, len(drivers))
	for _, driver := range drivers {
		response = append(response, toDriverResponse(driver))
	}
	c.JSON(http.StatusOK, gin.H{"drivers": response})
}

func (h *Handler) createDriver(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driver, err := h.drivers.Create(c.Request.Context(), driverInput(principal, req))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDriverResponse(*driver))
}

func (h *Handler) updateDriver(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driver, err := h.drivers.Update(c.Request.Context(), id, driverInput(principal, req))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDriverResponse(*driver))
}

func (h *Handler) deactivateDriver(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.drivers.Deactivate(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func driverInput(principal model.Principal, req driverRequest) service.DriverInput {
	return service.DriverInput{
		Principal:      principal,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Company:        req.Company,
		Origin:         req.Origin,
		Destination:    req.Destination,
		Plates:         req.Plates,
		EconomicNumber: req.EconomicNumber,
	}
}

func toDriverResponse(driver model.Driver) driverResponse {
	return driverResponse{
		ID:             driver.ID.String(),
		Name:           driver.FullName(),
		Company:        driver.Company,
		Origin:         driver.Origin,
		Destination:    driver.Destination,
		Plates:         driver.Plates,
		EconomicNumber: driver.EconomicNumber,
		Active:         driver.Active,
	}
}
