package availability

import (
	"context"

	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

// SlotCache holds recent evaluations. It is advisory: a miss or an error
// falls back to the store.
//
// Get also reports the resource's cache generation. Callers read it before
// loading from the store and hand it back to Set, so an Invalidate that lands
// in between orphans the write instead of letting it serve stale slots.
type SlotCache interface {
	Get(ctx context.Context, resourceID string, date wallclock.Date) (ev *Evaluation, gen int64, err error)
	Set(ctx context.Context, resourceID string, gen int64, date wallclock.Date, ev Evaluation) error
	Invalidate(ctx context.Context, resourceID string) error
}

type NopCache struct{}

func (NopCache) Get(context.Context, string, wallclock.Date) (*Evaluation, int64, error) {
	return nil, 0, nil
}

func (NopCache) Set(context.Context, string, int64, wallclock.Date, Evaluation) error { return nil }

func (NopCache) Invalidate(context.Context, string) error { return nil }
