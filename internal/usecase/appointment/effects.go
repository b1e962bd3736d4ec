package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-slots/internal/audit"
	"github.com/BruksfildServices01/booking-slots/internal/clock"
	availability "github.com/BruksfildServices01/booking-slots/internal/domain/availability"
	"github.com/BruksfildServices01/booking-slots/internal/events"
	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

// SlotEvaluator is the read side the booking writer checks a request against.
type SlotEvaluator interface {
	Evaluate(
		ctx context.Context,
		resourceID string,
		date wallclock.Date,
		fresh bool,
	) (availability.Evaluation, error)

	EligibleResources(ctx context.Context, serviceID string) ([]string, error)
}

// Effects bundles what happens after an appointment is written. None of it
// can fail the write.
type Effects struct {
	Cache     availability.SlotCache
	Audit     *audit.Dispatcher
	Publisher events.Publisher
	Clock     clock.Clock
	Logger    *zap.Logger
}

func (e Effects) withDefaults() Effects {
	if e.Cache == nil {
		e.Cache = availability.NopCache{}
	}
	if e.Publisher == nil {
		e.Publisher = events.Nop{}
	}
	if e.Clock == nil {
		e.Clock = clock.New("")
	}
	if e.Logger == nil {
		e.Logger = zap.NewNop()
	}
	return e
}

// after runs the post-write side effects for ap.
func (e Effects) after(
	ctx context.Context,
	ap *models.Appointment,
	callerID string,
	action string,
	eventType string,
) {
	if err := e.Cache.Invalidate(ctx, ap.ResourceID); err != nil {
		e.Logger.Warn("slot cache invalidation failed",
			zap.String("resource_id", ap.ResourceID),
			zap.Error(err),
		)
	}

	if e.Audit != nil {
		e.Audit.Dispatch(audit.Event{
			ResourceID: ap.ResourceID,
			UserID:     &callerID,
			Action:     action,
			Entity:     "appointment",
			EntityID:   &ap.ID,
			Metadata: map[string]string{
				"date":   ap.Date.String(),
				"time":   ap.Time.String(),
				"status": ap.Status,
			},
		})
	}

	ev := events.New(eventType, e.Clock.Now())
	ev.AppointmentID = ap.ID
	ev.ResourceID = ap.ResourceID
	ev.CustomerID = ap.CustomerID
	ev.ServiceID = ap.ServiceID
	ev.Date = ap.Date.String()
	ev.Time = ap.Time.String()
	ev.Status = ap.Status

	if err := e.Publisher.Publish(ctx, ev); err != nil {
		e.Logger.Error("booking event publish failed",
			zap.String("event_type", eventType),
			zap.String("appointment_id", ap.ID),
			zap.Error(err),
		)
	}
}
