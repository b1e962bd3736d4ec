package appointment

import (
	"context"
	"strings"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/booking-slots/internal/domain/appointment"
	availability "github.com/BruksfildServices01/booking-slots/internal/domain/availability"
	"github.com/BruksfildServices01/booking-slots/internal/events"
	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

// ======================================================
// INPUT
// ======================================================

type CommitInput struct {
	CallerID string

	// ResourceID pins the employee or business. Nil lets the writer pick any
	// eligible employee free at the requested time.
	ResourceID *string

	Date       string
	Time       string
	CustomerID string
	ServiceID  string
	Notes      string
}

// ======================================================
// USE CASE
// ======================================================

type CommitBooking struct {
	repo    domain.Repository
	slots   SlotEvaluator
	effects Effects
}

func NewCommitBooking(
	repo domain.Repository,
	slots SlotEvaluator,
	effects Effects,
) *CommitBooking {
	return &CommitBooking{
		repo:    repo,
		slots:   slots,
		effects: effects.withDefaults(),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CommitBooking) Execute(
	ctx context.Context,
	in CommitInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	date, err := wallclock.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrValidation("date", "must be YYYY-MM-DD")
	}
	at, err := wallclock.ParseTimeOfDay(in.Time)
	if err != nil {
		return nil, httperr.ErrValidation("time", "must be HH:MM")
	}

	customerID := strings.TrimSpace(in.CustomerID)
	if customerID == "" {
		customerID = in.CallerID
	}
	if in.CallerID == "" || customerID != in.CallerID {
		return nil, httperr.ErrBusiness("forbidden")
	}

	pinned := in.ResourceID != nil && strings.TrimSpace(*in.ResourceID) != ""

	// --------------------------------------------------
	// 2. Service
	// --------------------------------------------------
	serviceID := strings.TrimSpace(in.ServiceID)
	if serviceID != "" {
		svc, err := uc.repo.GetService(ctx, serviceID)
		if err != nil || !svc.Active {
			return nil, httperr.ErrBusiness("service_not_found")
		}
	} else if !pinned {
		return nil, httperr.ErrValidation("service_id", "is required when no resource is selected")
	}

	// --------------------------------------------------
	// 3. Candidates
	// --------------------------------------------------
	var candidates []string
	if pinned {
		candidates = []string{*in.ResourceID}
	} else {
		candidates, err = uc.slots.EligibleResources(ctx, serviceID)
		if err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 4. Commit against the first free candidate
	// --------------------------------------------------
	var (
		created  *models.Appointment
		conflict bool
	)

	for _, resourceID := range candidates {
		ev, err := uc.slots.Evaluate(ctx, resourceID, date, true)
		if err != nil {
			return nil, err
		}

		if !availability.Contains(ev.Slots, at) {
			if occupiedAt(ev, at) {
				conflict = true
			}
			continue
		}

		ap := &models.Appointment{
			ResourceID: resourceID,
			ServiceID:  serviceID,
			CustomerID: customerID,
			Date:       date,
			Time:       at,
			Status:     string(domain.InitialStatus()),
			Notes:      strings.TrimSpace(in.Notes),
		}

		err = uc.repo.CreateAppointment(ctx, ap)
		if httperr.IsConflict(err) {
			conflict = true
			uc.effects.Logger.Info("slot taken during commit",
				zap.String("resource_id", resourceID),
				zap.String("date", date.String()),
				zap.String("time", at.String()),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		created = ap
		break
	}

	if created == nil {
		if conflict {
			ce := httperr.ConflictError{Date: date.String(), Time: at.String()}
			if pinned {
				ce.ResourceID = *in.ResourceID
			}
			return nil, ce
		}
		return nil, httperr.ErrBusiness("outside_availability")
	}

	// --------------------------------------------------
	// 5. Side effects
	// --------------------------------------------------
	uc.effects.after(ctx, created, in.CallerID, "appointment_created", events.BookingCreated)

	return created, nil
}

func occupiedAt(ev availability.Evaluation, at wallclock.TimeOfDay) bool {
	for _, o := range ev.Occupied {
		if o.Time == at {
			return true
		}
	}
	return false
}
