// Package export renders a resource's appointments for use outside the API.
package export

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/BruksfildServices01/booking-slots/internal/dto"
)

// DefaultDurationMin applies to appointments booked without a service.
const DefaultDurationMin = 30

const floatingLayout = "20060102T150405"

// CalendarFeed builds an iCalendar document. Start and end are written as
// floating local times (no TZID) since appointments carry no zone.
// Cancelled appointments are skipped.
func CalendarFeed(name string, appointments []dto.AppointmentListDTO, stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//booking-slots//calendar export//EN")
	cal.SetXWRCalName(name)

	for _, ap := range appointments {
		if ap.Status == "cancelled" {
			continue
		}

		duration := ap.DurationMin
		if duration <= 0 {
			duration = DefaultDurationMin
		}
		start := ap.Date.At(ap.Time, time.UTC)
		end := start.Add(time.Duration(duration) * time.Minute)

		ev := cal.AddEvent(ap.ID + "@booking-slots")
		ev.SetDtStampTime(stamp.UTC())
		ev.SetProperty(ics.ComponentPropertyDtStart, start.Format(floatingLayout))
		ev.SetProperty(ics.ComponentPropertyDtEnd, end.Format(floatingLayout))
		ev.SetSummary(summary(ap))
		if ap.Notes != "" {
			ev.SetDescription(ap.Notes)
		}
		if ap.Status == "pending" {
			ev.SetStatus(ics.ObjectStatusTentative)
		} else {
			ev.SetStatus(ics.ObjectStatusConfirmed)
		}
	}

	return cal.Serialize()
}

func summary(ap dto.AppointmentListDTO) string {
	parts := []string{}
	if ap.ServiceName != "" {
		parts = append(parts, ap.ServiceName)
	}
	if ap.CustomerName != "" {
		parts = append(parts, ap.CustomerName)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Appointment %s", ap.Time)
	}
	return strings.Join(parts, " - ")
}
