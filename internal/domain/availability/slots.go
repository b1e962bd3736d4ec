package availability

import (
	"sort"

	"github.com/BruksfildServices01/booking-slots/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

// Occupancy records a slot removed because an appointment holds it.
type Occupancy struct {
	Time          wallclock.TimeOfDay `json:"time"`
	AppointmentID string              `json:"appointment_id"`
}

// Evaluation is the outcome of expanding one resource's rules for one date,
// with every exclusion kept so it can be explained.
type Evaluation struct {
	ResourceID string                `json:"resource_id"`
	Date       wallclock.Date        `json:"date"`
	Slots      []wallclock.TimeOfDay `json:"slots"`
	BlockedBy  *models.BlockedDate   `json:"blocked_by,omitempty"`
	Occupied   []Occupancy           `json:"occupied,omitempty"`
}

// Evaluate expands the weekly rules of resourceID into the bookable slots of
// date. It is a pure function of its inputs: rows belonging to other
// resources or dates are ignored, and malformed rules contribute nothing.
func Evaluate(
	resourceID string,
	date wallclock.Date,
	rules []models.AvailabilityRule,
	blocked []models.BlockedDate,
	appointments []models.Appointment,
) Evaluation {

	ev := Evaluation{
		ResourceID: resourceID,
		Date:       date,
		Slots:      []wallclock.TimeOfDay{},
	}

	// blocked date overrides everything
	for i := range blocked {
		b := blocked[i]
		if b.ResourceID == resourceID && b.Date == date {
			ev.BlockedBy = &b
			return ev
		}
	}

	weekday := date.Weekday()
	candidates := map[wallclock.TimeOfDay]struct{}{}
	for _, r := range rules {
		if r.ResourceID != resourceID || r.DayOfWeek != weekday {
			continue
		}
		for _, t := range Expand(r) {
			candidates[t] = struct{}{}
		}
	}
	if len(candidates) == 0 {
		return ev
	}

	for _, ap := range appointments {
		if ap.ResourceID != resourceID || ap.Date != date {
			continue
		}
		if !appointment.Blocks(appointment.Status(ap.Status)) {
			continue
		}
		if _, ok := candidates[ap.Time]; ok {
			delete(candidates, ap.Time)
			ev.Occupied = append(ev.Occupied, Occupancy{Time: ap.Time, AppointmentID: ap.ID})
		}
	}

	for t := range candidates {
		ev.Slots = append(ev.Slots, t)
	}
	sortTimes(ev.Slots)
	sort.Slice(ev.Occupied, func(i, j int) bool {
		return ev.Occupied[i].Time < ev.Occupied[j].Time
	})

	return ev
}

// Slots is Evaluate without the attribution.
func Slots(
	resourceID string,
	date wallclock.Date,
	rules []models.AvailabilityRule,
	blocked []models.BlockedDate,
	appointments []models.Appointment,
) []wallclock.TimeOfDay {
	return Evaluate(resourceID, date, rules, blocked, appointments).Slots
}

// Expand walks a single rule from start toward end in steps of its slot
// duration. A step is emitted only while it starts strictly before end.
// Rules with a non-positive duration or start >= end yield nothing.
func Expand(r models.AvailabilityRule) []wallclock.TimeOfDay {
	if r.SlotDuration <= 0 || r.StartTime >= r.EndTime {
		return nil
	}
	if !r.StartTime.Valid() {
		return nil
	}

	// A step at least as long as the window yields only the opening slot.
	// Checked in int64 so huge durations cannot wrap to a non-positive step.
	if int64(r.SlotDuration)*60 >= int64(r.EndTime-r.StartTime) {
		return []wallclock.TimeOfDay{r.StartTime}
	}

	var out []wallclock.TimeOfDay
	for cur := r.StartTime; cur < r.EndTime; cur = cur.AddMinutes(r.SlotDuration) {
		out = append(out, cur)
	}
	return out
}

// Merge unions several slot lists into one sorted list without duplicates.
func Merge(lists ...[]wallclock.TimeOfDay) []wallclock.TimeOfDay {
	seen := map[wallclock.TimeOfDay]struct{}{}
	out := []wallclock.TimeOfDay{}
	for _, l := range lists {
		for _, t := range l {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sortTimes(out)
	return out
}

// Contains reports whether t is one of slots.
func Contains(slots []wallclock.TimeOfDay, t wallclock.TimeOfDay) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}

func sortTimes(ts []wallclock.TimeOfDay) {
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
}
