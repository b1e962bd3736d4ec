package appointment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	domain "github.com/BruksfildServices01/booking-slots/internal/domain/appointment"
	availability "github.com/BruksfildServices01/booking-slots/internal/domain/availability"
	"github.com/BruksfildServices01/booking-slots/internal/events"
	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

// ── In-memory ledger ──

// memRepo serves both the appointment writer and the slot reader from one
// store, enforcing slot uniqueness among non-cancelled rows the way the
// partial unique index does.
type memRepo struct {
	mu           sync.Mutex
	rules        []models.AvailabilityRule
	blocked      []models.BlockedDate
	appointments map[string]*models.Appointment
	services     map[string]*models.Service
	eligible     map[string][]string
	owners       map[string]string
	nextID       int

	failCreate error
}

func newMemRepo() *memRepo {
	return &memRepo{
		appointments: map[string]*models.Appointment{},
		services:     map[string]*models.Service{},
		eligible:     map[string][]string{},
		owners:       map[string]string{},
	}
}

func (m *memRepo) addRule(resourceID string, day int, start, end string, dur int) {
	m.rules = append(m.rules, models.AvailabilityRule{
		ID:           fmt.Sprintf("rule-%d", len(m.rules)+1),
		ResourceID:   resourceID,
		DayOfWeek:    day,
		StartTime:    wallclock.MustTimeOfDay(start),
		EndTime:      wallclock.MustTimeOfDay(end),
		SlotDuration: dur,
	})
}

func (m *memRepo) GetAvailabilityRules(_ context.Context, resourceID string) ([]models.AvailabilityRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.AvailabilityRule
	for _, r := range m.rules {
		if r.ResourceID == resourceID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) GetBlockedDates(_ context.Context, resourceID string) ([]models.BlockedDate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.BlockedDate
	for _, b := range m.blocked {
		if b.ResourceID == resourceID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memRepo) GetAppointments(_ context.Context, resourceID string, date wallclock.Date) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, a := range m.appointments {
		if a.ResourceID == resourceID && a.Date == date {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memRepo) GetEligibleResources(_ context.Context, serviceID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eligible[serviceID], nil
}

func (m *memRepo) IsResourceOwner(_ context.Context, resourceID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owners[resourceID] == userID, nil
}

func (m *memRepo) GetService(_ context.Context, serviceID string) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[serviceID]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *s
	return &cp, nil
}

func (m *memRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate != nil {
		return m.failCreate
	}
	for _, other := range m.appointments {
		if other.ResourceID == ap.ResourceID &&
			other.Date == ap.Date &&
			other.Time == ap.Time &&
			domain.Blocks(domain.Status(other.Status)) {
			return httperr.ConflictError{
				ResourceID: ap.ResourceID,
				Date:       ap.Date.String(),
				Time:       ap.Time.String(),
			}
		}
	}
	m.nextID++
	ap.ID = fmt.Sprintf("ap-%d", m.nextID)
	cp := *ap
	m.appointments[ap.ID] = &cp
	return nil
}

func (m *memRepo) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *a
	return &cp, nil
}

func (m *memRepo) UpdateAppointment(_ context.Context, ap *models.Appointment, from domain.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.appointments[ap.ID]
	if !ok || domain.Status(cur.Status) != from {
		return httperr.ErrBusiness("invalid_state")
	}
	cp := *ap
	m.appointments[ap.ID] = &cp
	return nil
}

func (m *memRepo) ListAppointmentsForPeriod(
	_ context.Context,
	resourceID string,
	from wallclock.Date,
	to wallclock.Date,
) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, a := range m.appointments {
		if a.ResourceID == resourceID && !a.Date.Before(from) && !to.Before(a.Date) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (m *memRepo) active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.appointments {
		if domain.Blocks(domain.Status(a.Status)) {
			n++
		}
	}
	return n
}

var (
	_ domain.Repository   = (*memRepo)(nil)
	_ availability.Reader = (*memRepo)(nil)
)

// ── Event recorder ──

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := []string{}
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}
