package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-slots/internal/clock"
	"github.com/BruksfildServices01/booking-slots/internal/export"
	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/httpresp"
	"github.com/BruksfildServices01/booking-slots/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	commit   *appointment.CommitBooking
	confirm  *appointment.ConfirmAppointment
	cancel   *appointment.CancelAppointment
	complete *appointment.CompleteAppointment
	list     *appointment.ListAppointments
	clock    clock.Clock
}

func NewAppointmentHandler(
	commit *appointment.CommitBooking,
	confirm *appointment.ConfirmAppointment,
	cancel *appointment.CancelAppointment,
	complete *appointment.CompleteAppointment,
	list *appointment.ListAppointments,
	clk clock.Clock,
) *AppointmentHandler {
	return &AppointmentHandler{
		commit:   commit,
		confirm:  confirm,
		cancel:   cancel,
		complete: complete,
		list:     list,
		clock:    clk,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ResourceID *string `json:"resource_id"`
	ServiceID  string  `json:"service_id"`
	CustomerID string  `json:"customer_id"`
	Date       string  `json:"date" binding:"required"` // YYYY-MM-DD
	Time       string  `json:"time" binding:"required"` // HH:MM
	Notes      string  `json:"notes"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// COMMIT
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.commit.Execute(c.Request.Context(), appointment.CommitInput{
		CallerID:   callerID(c),
		ResourceID: req.ResourceID,
		Date:       req.Date,
		Time:       req.Time,
		CustomerID: req.CustomerID,
		ServiceID:  req.ServiceID,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	ap, err := h.confirm.Execute(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req CancelAppointmentRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), callerID(c), c.Param("id"), req.Reason)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	ap, err := h.complete.Execute(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// LISTING / EXPORT
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	out, err := h.list.ByDate(c.Request.Context(), callerID(c), c.Param("id"), date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *AppointmentHandler) Calendar(c *gin.Context) {
	from, ok := queryDate(c, "from")
	if !ok {
		return
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return
	}

	resourceID := c.Param("id")
	out, err := h.list.ForPeriod(c.Request.Context(), callerID(c), resourceID, from, to)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	body := export.CalendarFeed(resourceID, out, h.clock.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.ics"`, resourceID))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

func (h *AppointmentHandler) Report(c *gin.Context) {
	from, ok := queryDate(c, "from")
	if !ok {
		return
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return
	}

	resourceID := c.Param("id")
	out, err := h.list.ForPeriod(c.Request.Context(), callerID(c), resourceID, from, to)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	raw, err := export.AppointmentReport(fmt.Sprintf("%s %s..%s", resourceID, from, to), out)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s-%s.xlsx"`, resourceID, from, to))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", raw)
}
