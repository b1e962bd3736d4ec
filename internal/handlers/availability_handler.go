package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/booking-slots/internal/domain/availability"
	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/usecase/availability"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	getAvailability *availability.GetAvailability
}

func NewAvailabilityHandler(getAvailability *availability.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{getAvailability: getAvailability}
}

type availabilityResponse struct {
	Date      wallclock.Date        `json:"date"`
	Slots     []wallclock.TimeOfDay `json:"slots"`
	Message   string                `json:"message,omitempty"`
	Resources []domain.Evaluation   `json:"resources,omitempty"`
}

// Get serves GET /api/availability?date=&service_id=[&resource_id=][&explain=true].
// An empty day is a normal 200 response.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	in := availability.Input{
		ServiceID: strings.TrimSpace(c.Query("service_id")),
		Date:      date,
	}
	if rid := strings.TrimSpace(c.Query("resource_id")); rid != "" {
		in.ResourceID = &rid
	}

	res, err := h.getAvailability.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := availabilityResponse{
		Date:  res.Date,
		Slots: res.Slots,
	}
	if len(res.Slots) == 0 {
		out.Message = "No available times this day."
	}
	if c.Query("explain") == "true" {
		out.Resources = res.Evaluations
	}

	c.JSON(http.StatusOK, out)
}
