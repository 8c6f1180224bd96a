package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adaai/leadcapture/internal/dto"
	"github.com/adaai/leadcapture/internal/observability"
	"github.com/adaai/leadcapture/internal/service"
)

// LeadsHandler exposes the lead capture endpoints.
type LeadsHandler struct {
	service *service.LeadsService
	metrics *observability.LeadMetrics
}

// NewLeadsHandler creates a new handler instance. metrics may be nil.
func NewLeadsHandler(service *service.LeadsService, metrics *observability.LeadMetrics) *LeadsHandler {
	return &LeadsHandler{service: service, metrics: metrics}
}

// Submit handles POST /api/leads.
func (h *LeadsHandler) Submit(c echo.Context) error {
	var req dto.SubmitLeadRequest
	if err := c.Bind(&req); err != nil {
		h.metrics.Submission("invalid_body")
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	id, err := h.service.Submit(c.Request().Context(), req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			h.metrics.Submission("validation_error")
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: verr.Message})
		}
		h.metrics.Submission("store_error")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save lead"})
	}

	h.metrics.Submission("accepted")
	return c.JSON(http.StatusCreated, SubmitResponse{OK: true, LeadID: id})
}

// List handles GET /api/leads.
func (h *LeadsHandler) List(c echo.Context) error {
	leads, err := h.service.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch leads"})
	}

	h.metrics.ListServed()
	return c.JSON(http.StatusOK, ListResponse{Leads: leads})
}

// MethodNotAllowed answers any verb other than GET and POST on /api/leads,
// advertising the two valid operations.
func (h *LeadsHandler) MethodNotAllowed(c echo.Context) error {
	c.Response().Header().Set("Allow", "GET, POST")
	return c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
}
