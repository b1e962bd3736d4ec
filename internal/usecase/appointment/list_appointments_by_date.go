package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/booking-slots/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-slots/internal/dto"
	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

// maxPeriodDays bounds export ranges.
const maxPeriodDays = 366

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(
	repo domain.Repository,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
	}
}

// ByDate is the owner's view of one day of a resource.
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	callerID string,
	resourceID string,
	date wallclock.Date,
) ([]dto.AppointmentListDTO, error) {
	return uc.ForPeriod(ctx, callerID, resourceID, date, date)
}

// ForPeriod lists appointments of resourceID with from <= date <= to,
// cancelled ones included, ordered by date then time.
func (uc *ListAppointments) ForPeriod(
	ctx context.Context,
	callerID string,
	resourceID string,
	from wallclock.Date,
	to wallclock.Date,
) ([]dto.AppointmentListDTO, error) {

	if from.IsZero() {
		return nil, httperr.ErrValidation("from", "is required")
	}
	if to.IsZero() {
		to = from
	}
	if to.Before(from) {
		return nil, httperr.ErrValidation("to", "must not be before from")
	}
	if from.AddDays(maxPeriodDays).Before(to) {
		return nil, httperr.ErrValidation("to", "range is too long")
	}

	if err := requireOwner(ctx, uc.repo, resourceID, callerID); err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, resourceID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.FromAppointment(ap))
	}

	return out, nil
}
