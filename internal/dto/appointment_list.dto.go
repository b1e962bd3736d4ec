package dto

import (
	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

type AppointmentListDTO struct {
	ID           string              `json:"id"`
	ResourceID   string              `json:"resource_id"`
	Date         wallclock.Date      `json:"date"`
	Time         wallclock.TimeOfDay `json:"time"`
	Status       string              `json:"status"`
	CustomerID   string              `json:"customer_id"`
	CustomerName string              `json:"customer_name,omitempty"`
	ServiceID    string              `json:"service_id,omitempty"`
	ServiceName  string              `json:"service_name,omitempty"`
	DurationMin  int                 `json:"duration_min,omitempty"`
	Notes        string              `json:"notes,omitempty"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:         ap.ID,
		ResourceID: ap.ResourceID,
		Date:       ap.Date,
		Time:       ap.Time,
		Status:     ap.Status,
		CustomerID: ap.CustomerID,
		ServiceID:  ap.ServiceID,
		Notes:      ap.Notes,
	}
	if ap.Customer != nil {
		out.CustomerName = ap.Customer.Name
	}
	if ap.Service != nil {
		out.ServiceName = ap.Service.Name
		out.DurationMin = ap.Service.DurationMin
	}
	return out
}
