package availability

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/booking-slots/internal/domain/availability"
	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type Input struct {
	// ResourceID pins one business or employee. Nil means "no preference".
	ResourceID *string
	ServiceID  string
	Date       wallclock.Date
}

type Result struct {
	Date  wallclock.Date        `json:"date"`
	Slots []wallclock.TimeOfDay `json:"slots"`

	// Evaluations holds one entry per resource considered, in eligibility order.
	Evaluations []domain.Evaluation `json:"-"`
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	reader      domain.Reader
	cache       domain.SlotCache
	logger      *zap.Logger
	parallelism int
}

func NewGetAvailability(
	reader domain.Reader,
	cache domain.SlotCache,
	logger *zap.Logger,
) *GetAvailability {
	if cache == nil {
		cache = domain.NopCache{}
	}
	return &GetAvailability{
		reader:      reader,
		cache:       cache,
		logger:      logger,
		parallelism: 8,
	}
}

// Execute computes the slots bookable on in.Date, either for the pinned
// resource or as the union over every employee eligible for in.ServiceID.
func (uc *GetAvailability) Execute(ctx context.Context, in Input) (*Result, error) {
	if in.Date.IsZero() {
		return nil, httperr.ErrValidation("date", "is required")
	}

	var resourceIDs []string
	if in.ResourceID != nil && strings.TrimSpace(*in.ResourceID) != "" {
		resourceIDs = []string{*in.ResourceID}
	} else {
		if strings.TrimSpace(in.ServiceID) == "" {
			return nil, httperr.ErrValidation("service_id", "is required when no resource is selected")
		}
		ids, err := uc.EligibleResources(ctx, in.ServiceID)
		if err != nil {
			return nil, err
		}
		resourceIDs = ids
	}

	evaluations, err := uc.evaluateAll(ctx, resourceIDs, in.Date)
	if err != nil {
		return nil, err
	}

	lists := make([][]wallclock.TimeOfDay, 0, len(evaluations))
	for _, ev := range evaluations {
		lists = append(lists, ev.Slots)
	}

	return &Result{
		Date:        in.Date,
		Slots:       domain.Merge(lists...),
		Evaluations: evaluations,
	}, nil
}

// EligibleResources lists the employees able to perform serviceID.
func (uc *GetAvailability) EligibleResources(ctx context.Context, serviceID string) ([]string, error) {
	ids, err := uc.reader.GetEligibleResources(ctx, serviceID)
	if err != nil {
		return nil, httperr.ErrDataUnavailable("eligible resources", err)
	}
	return ids, nil
}

// Evaluate computes one resource's day. With fresh set the cache is bypassed
// for reading; the result still refreshes it unless the cache was unreachable.
func (uc *GetAvailability) Evaluate(
	ctx context.Context,
	resourceID string,
	date wallclock.Date,
	fresh bool,
) (domain.Evaluation, error) {

	cached, gen, cacheErr := uc.cache.Get(ctx, resourceID, date)
	if cacheErr != nil {
		uc.logger.Warn("slot cache read failed",
			zap.String("resource_id", resourceID),
			zap.Error(cacheErr),
		)
	}
	if !fresh && cached != nil {
		return *cached, nil
	}

	var (
		rules        []models.AvailabilityRule
		blocked      []models.BlockedDate
		appointments []models.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if rules, err = uc.reader.GetAvailabilityRules(gctx, resourceID); err != nil {
			return httperr.ErrDataUnavailable("availability rules", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if blocked, err = uc.reader.GetBlockedDates(gctx, resourceID); err != nil {
			return httperr.ErrDataUnavailable("blocked dates", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if appointments, err = uc.reader.GetAppointments(gctx, resourceID, date); err != nil {
			return httperr.ErrDataUnavailable("appointments", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Evaluation{}, err
	}

	ev := domain.Evaluate(resourceID, date, rules, blocked, appointments)

	if cacheErr == nil {
		if err := uc.cache.Set(ctx, resourceID, gen, date, ev); err != nil {
			uc.logger.Warn("slot cache write failed",
				zap.String("resource_id", resourceID),
				zap.Error(err),
			)
		}
	}

	return ev, nil
}

// evaluateAll runs Evaluate per resource. Each resource only sees its own
// appointments, so one employee's booking never hides another's slot.
func (uc *GetAvailability) evaluateAll(
	ctx context.Context,
	resourceIDs []string,
	date wallclock.Date,
) ([]domain.Evaluation, error) {

	out := make([]domain.Evaluation, len(resourceIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.parallelism)
	for i, id := range resourceIDs {
		g.Go(func() error {
			ev, err := uc.Evaluate(gctx, id, date, false)
			if err != nil {
				return err
			}
			out[i] = ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
