package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eduardoceto/waste-logs-service/internal/http/middleware"
	"github.com/eduardoceto/waste-logs-service/internal/material"
	"github.com/eduardoceto/waste-logs-service/internal/model"
	"github.com/eduardoceto/waste-logs-service/internal/service"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	disposals *service.DisposalService
	drivers   *service.DriverService
	log       zerolog.Logger
}

func NewHandler(disposals *service.DisposalService, drivers *service.DriverService, log zerolog.Logger) *Handler {
	return &Handler{disposals: disposals, drivers: drivers, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := router.Group("/api/v1")
	api.Use(authMiddleware)

	api.POST("/disposals", h.createDisposal)
	api.GET("/disposals", h.listDisposals)
	api.GET("/disposals/summary", h.summary)
	api.POST("/disposals/export", h.exportDisposals)
	api.GET("/disposals/:id", h.getDisposal)
	api.PUT("/disposals/:id", h.updateDisposal)
	api.DELETE("/disposals/:id", h.deleteDisposal)
	api.GET("/disposals/:id/pdf", h.disposalPDF)

	api.GET("/drivers", h.listDrivers)
	api.POST("/drivers", h.createDriver)
	api.PUT("/drivers/:id", h.updateDriver)
	api.DELETE("/drivers/:id", h.deactivateDriver)
}

type disposalRequest struct {
	Material          string            `json:"material" binding:"required"`
	Details           map[string]string `json:"details" binding:"required"`
	ContainerType     string            `json:"container_type"`
	AuthorizingPerson string            `json:"authorizing_person"`
	DriverID          string            `json:"driver_id"`
	Date              string            `json:"date"`
	DepartureTime     string            `json:"departure_time"`
}

func (h *Handler) createDisposal(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req disposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driverID, err := parseOptionalID(req.DriverID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid driver_id"})
		return
	}

	log, err := h.disposals.Create(c.Request.Context(), service.CreateDisposalInput{
		Principal:         principal,
		Material:          req.Material,
		Details:           req.Details,
		ContainerType:     req.ContainerType,
		AuthorizingPerson: req.AuthorizingPerson,
		DriverID:          driverID,
		Date:              req.Date,
		DepartureTime:     req.DepartureTime,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toDisposalResponse(*log))
}

func (h *Handler) listDisposals(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	from, err := parseOptionalDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
		return
	}
	to, err := parseOptionalDate(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
		return
	}

	logs, err := h.disposals.List(c.Request.Context(), service.ListDisposalsInput{
		Principal: principal,
		From:      from,
		To:        to,
		Material:  c.Query("material"),
		Search:    c.Query("q"),
		SortField: c.Query("sort"),
		SortAsc:   c.Query("dir") != "desc",
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	response := make([]disposalResponse, 0, len(logs))
	for _, log := range logs {
		response = append(response, toDisposalResponse(log))
	}
	c.JSON(http.StatusOK, gin.H{"disposals": response, "count": len(response)})
}

func (h *Handler) getDisposal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	log, err := h.disposals.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDisposalResponse(*log))
}

func (h *Handler) updateDisposal(c *gin.Context) {
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

	var req disposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driverID, err := parseOptionalID(req.DriverID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid driver_id"})
		return
	}

	log, err := h.disposals.Update(c.Request.Context(), service.UpdateDisposalInput{
		Principal:         principal,
		ID:                id,
		Material:          req.Material,
		Details:           req.Details,
		ContainerType:     req.ContainerType,
		AuthorizingPerson: req.AuthorizingPerson,
		DriverID:          driverID,
		Date:              req.Date,
		DepartureTime:     req.DepartureTime,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDisposalResponse(*log))
}

func (h *Handler) deleteDisposal(c *gin.Context) {
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

	if err := h.disposals.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) disposalPDF(c *gin.Context) {
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

	result, err := h.disposals.ExportPDF(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

type exportRequest struct {
	Material string `json:"material" binding:"required"`
	From     string `json:"from"`
	To       string `json:"to"`
}

func (h *Handler) exportDisposals(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from, err := parseOptionalDate(req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
		return
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
		return
	}

	result, err := h.disposals.ExportExcel(c.Request.Context(), service.ExportExcelInput{
		Principal: principal,
		Material:  req.Material,
		From:      from,
		To:        to,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, excelContentType, result.Content)
}

func (h *Handler) summary(c *gin.Context) {
	result, err := h.disposals.Summary(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	byMaterial := make(map[string]float64, len(result.ByMaterial))
	for mt, total := range result.ByMaterial {
		byMaterial[string(mt)] = total
	}
	c.JSON(http.StatusOK, gin.H{
		"count":        result.Count,
		"total_weight": result.TotalWeight,
		"by_material":  byMaterial,
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var validationErr *material.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validación fallida", "fields": validationErr.Fields})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, material.ErrUnknownMaterial):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrNoRecords):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseOptionalID(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	layouts := []string{time.RFC3339, "2006-01-02"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, nil
		}
	}
	return nil, service.ErrInvalidInput
}

type disposalResponse struct {
	ID                string            `json:"id"`
	Folio             string            `json:"folio"`
	Date              string            `json:"date"`
	DepartureTime     string            `json:"departure_time"`
	Department        string            `json:"department"`
	Reason            string            `json:"reason"`
	ContainerType     string            `json:"container_type"`
	AuthorizingPerson string            `json:"authorizing_person"`
	Material          string            `json:"material"`
	Details           interface{}       `json:"details"`
	TotalWeight       float64           `json:"total_weight"`
	Unit              string            `json:"unit"`
	Display           displayProjection `json:"display"`
	Driver            driverResponse    `json:"driver"`
}

type displayProjection struct {
	Residue  string `json:"residue"`
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
	Area     string `json:"area"`
}

type driverResponse struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Company        string `json:"company"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Plates         string `json:"plates"`
	EconomicNumber string `json:"economic_number"`
	Active         bool   `json:"active,omitempty"`
}

func toDisposalResponse(log model.DisposalLog) disposalResponse {
	response := disposalResponse{
		ID:                log.ID.String(),
		Folio:             log.Folio,
		Date:              log.Date.Format("2006-01-02"),
		DepartureTime:     log.DepartureTime,
		Department:        log.Department,
		Reason:            log.Reason,
		ContainerType:     log.ContainerType,
		AuthorizingPerson: log.AuthorizingPerson,
		Material:          string(log.MaterialType),
		TotalWeight:       log.TotalWeight,
		Unit:              log.Unit,
		Display: displayProjection{
			Residue:  material.ResidueLabel(log),
			Item:     material.ItemLabel(log),
			Quantity: material.QuantityLabel(log),
			Area:     material.AreaLabel(log),
		},
		Driver: driverResponse{
			Name:           log.Driver.Name,
			Company:        log.Driver.Company,
			Origin:         log.Driver.Origin,
			Destination:    log.Driver.Destination,
			Plates:         log.Driver.Plates,
			EconomicNumber: log.Driver.EconomicNumber,
		},
	}
	if log.Driver.ID != nil {
		response.Driver.ID = log.Driver.ID.String()
	}

	switch {
	case log.Details.Lodos != nil:
		response.Details = log.Details.Lodos
	case log.Details.Metal != nil:
		response.Details = log.Details.Metal
	case log.Details.Otros != nil:
		response.Details = log.Details.Otros
	case log.Details.Destruidas != nil:
		response.Details = log.Details.Destruidas
	}
	return response
}
