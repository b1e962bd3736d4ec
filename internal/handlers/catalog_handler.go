package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/httpresp"
	"github.com/BruksfildServices01/booking-slots/internal/usecase/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(catalog *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type CreateEmployeeRequest struct {
	BusinessID string  `json:"business_id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	UserID     *string `json:"user_id"`
}

type CreateServiceRequest struct {
	BusinessID  string `json:"business_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	DurationMin int    `json:"duration_min" binding:"required"`
}

// --------------------------------------------------
// Public
// --------------------------------------------------

func (h *CatalogHandler) ListServices(c *gin.Context) {
	out, err := h.catalog.ListServices(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *CatalogHandler) ListEmployees(c *gin.Context) {
	out, err := h.catalog.ListEmployees(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

// --------------------------------------------------
// Owner
// --------------------------------------------------

func (h *CatalogHandler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	emp, err := h.catalog.CreateEmployee(c.Request.Context(), callerID(c), catalog.EmployeeInput{
		BusinessID: req.BusinessID,
		Name:       req.Name,
		UserID:     req.UserID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, emp)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.catalog.CreateService(c.Request.Context(), callerID(c), catalog.ServiceInput{
		BusinessID:  req.BusinessID,
		Name:        req.Name,
		DurationMin: req.DurationMin,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, svc)
}

func (h *CatalogHandler) AssignEmployee(c *gin.Context) {
	if err := h.catalog.AssignEmployee(c.Request.Context(), callerID(c), c.Param("id"), c.Param("employeeId")); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) UnassignEmployee(c *gin.Context) {
	if err := h.catalog.UnassignEmployee(c.Request.Context(), callerID(c), c.Param("id"), c.Param("employeeId")); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
