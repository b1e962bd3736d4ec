package availability

import (
	"context"
	"errors"
	"fmt"
	"sync"

	domain "github.com/BruksfildServices01/booking-slots/internal/domain/availability"
	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

var errNotFound = errors.New("record not found")

// ── Mock store ──

type mockStore struct {
	mu           sync.Mutex
	rules        map[string]*models.AvailabilityRule
	blocked      map[string]*models.BlockedDate
	appointments []models.Appointment
	eligible     map[string][]string
	owners       map[string]string

	failRules    bool
	failEligible bool
	ruleReads    int
	onRuleRead   func()
	nextID       int
}

func newMockStore() *mockStore {
	return &mockStore{
		rules:    map[string]*models.AvailabilityRule{},
		blocked:  map[string]*models.BlockedDate{},
		eligible: map[string][]string{},
		owners:   map[string]string{},
	}
}

func (m *mockStore) id(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

func (m *mockStore) addRule(r models.AvailabilityRule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = m.id("rule")
	}
	m.rules[r.ID] = &r
}

func (m *mockStore) GetAvailabilityRules(_ context.Context, resourceID string) ([]models.AvailabilityRule, error) {
	if hook := m.onRuleRead; hook != nil {
		m.onRuleRead = nil
		hook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ruleReads++
	if m.failRules {
		return nil, errors.New("connection reset")
	}
	var out []models.AvailabilityRule
	for _, r := range m.rules {
		if r.ResourceID == resourceID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockStore) GetBlockedDates(_ context.Context, resourceID string) ([]models.BlockedDate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.BlockedDate
	for _, b := range m.blocked {
		if b.ResourceID == resourceID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockStore) GetAppointments(_ context.Context, resourceID string, date wallclock.Date) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, a := range m.appointments {
		if a.ResourceID == resourceID && a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockStore) GetEligibleResources(_ context.Context, serviceID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failEligible {
		return nil, errors.New("timeout")
	}
	return m.eligible[serviceID], nil
}

func (m *mockStore) IsResourceOwner(_ context.Context, resourceID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owners[resourceID] == userID, nil
}

func (m *mockStore) GetRule(_ context.Context, id string) (*models.AvailabilityRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rules[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockStore) ListRules(ctx context.Context, resourceID string) ([]models.AvailabilityRule, error) {
	return m.GetAvailabilityRules(ctx, resourceID)
}

func (m *mockStore) CreateRule(_ context.Context, r *models.AvailabilityRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = m.id("rule")
	}
	cp := *r
	m.rules[r.ID] = &cp
	return nil
}

func (m *mockStore) UpdateRule(_ context.Context, r *models.AvailabilityRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.rules[r.ID] = &cp
	return nil
}

func (m *mockStore) DeleteRule(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rules, id)
	return nil
}

func (m *mockStore) GetBlockedDate(_ context.Context, id string) (*models.BlockedDate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blocked[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *mockStore) FindBlockedDate(_ context.Context, resourceID string, date wallclock.Date) (*models.BlockedDate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.blocked {
		if b.ResourceID == resourceID && b.Date == date {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockStore) ListBlockedDates(ctx context.Context, resourceID string) ([]models.BlockedDate, error) {
	return m.GetBlockedDates(ctx, resourceID)
}

func (m *mockStore) CreateBlockedDate(_ context.Context, b *models.BlockedDate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == "" {
		b.ID = m.id("blocked")
	}
	cp := *b
	m.blocked[b.ID] = &cp
	return nil
}

func (m *mockStore) DeleteBlockedDate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blocked, id)
	return nil
}

var (
	_ domain.Reader    = (*mockStore)(nil)
	_ domain.RuleStore = (*mockStore)(nil)
)

// ── Mock cache ──

// mockCache mirrors the Redis cache: entries are keyed by generation and
// Invalidate bumps the resource's generation.
type mockCache struct {
	mu          sync.Mutex
	gens        map[string]int64
	entries     map[string]domain.Evaluation
	invalidated []string
}

func newMockCache() *mockCache {
	return &mockCache{gens: map[string]int64{}, entries: map[string]domain.Evaluation{}}
}

func cacheKey(resourceID string, gen int64, date wallclock.Date) string {
	return fmt.Sprintf("%s|%d|%s", resourceID, gen, date)
}

func (c *mockCache) Get(_ context.Context, resourceID string, date wallclock.Date) (*domain.Evaluation, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen := c.gens[resourceID]
	ev, ok := c.entries[cacheKey(resourceID, gen, date)]
	if !ok {
		return nil, gen, nil
	}
	return &ev, gen, nil
}

func (c *mockCache) Set(_ context.Context, resourceID string, gen int64, date wallclock.Date, ev domain.Evaluation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(resourceID, gen, date)] = ev
	return nil
}

func (c *mockCache) Invalidate(_ context.Context, resourceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, resourceID)
	c.gens[resourceID]++
	return nil
}
