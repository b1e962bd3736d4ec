package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-slots/internal/clock"
	domain "github.com/BruksfildServices01/booking-slots/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-slots/internal/domain/user"
	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/infra/repository"
	"github.com/BruksfildServices01/booking-slots/internal/middleware"
	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/usecase/appointment"
	"github.com/BruksfildServices01/booking-slots/internal/usecase/availability"
	"github.com/BruksfildServices01/booking-slots/internal/usecase/catalog"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

const testSecret = "handler-test-secret-123"

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Store ──

type store struct {
	mu           sync.Mutex
	rules        []models.AvailabilityRule
	appointments []models.Appointment
	failReads    bool
}

func (s *store) GetAvailabilityRules(_ context.Context, resourceID string) ([]models.AvailabilityRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failReads {
		return nil, errors.New("db down")
	}
	var out []models.AvailabilityRule
	for _, r := range s.rules {
		if r.ResourceID == resourceID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *store) GetBlockedDates(context.Context, string) ([]models.BlockedDate, error) {
	return nil, nil
}

func (s *store) GetAppointments(_ context.Context, resourceID string, date wallclock.Date) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.ResourceID == resourceID && a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *store) GetEligibleResources(context.Context, string) ([]string, error) {
	return []string{"E1"}, nil
}

func (s *store) IsResourceOwner(_ context.Context, resourceID, userID string) (bool, error) {
	return resourceID == "E1" && userID == "owner-1", nil
}

func (s *store) GetService(context.Context, string) (*models.Service, error) {
	return &models.Service{ID: "svc", Active: true, DurationMin: 60}, nil
}

func (s *store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.ResourceID == ap.ResourceID && a.Date == ap.Date && a.Time == ap.Time && domain.Blocks(domain.Status(a.Status)) {
			return httperr.ConflictError{ResourceID: ap.ResourceID, Date: ap.Date.String(), Time: ap.Time.String()}
		}
	}
	ap.ID = fmt.Sprintf("ap-%d", len(s.appointments)+1)
	s.appointments = append(s.appointments, *ap)
	return nil
}

func (s *store) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, errors.New("record not found")
}

func (s *store) UpdateAppointment(_ context.Context, ap *models.Appointment, from domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID == ap.ID && domain.Status(s.appointments[i].Status) == from {
			s.appointments[i] = *ap
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

func (s *store) ListAppointmentsForPeriod(_ context.Context, resourceID string, from, to wallclock.Date) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.ResourceID == resourceID && !a.Date.Before(from) && !to.Before(a.Date) {
			out = append(out, a)
		}
	}
	return out, nil
}

// ── Router ──

func newRouter(s *store) *gin.Engine {
	logger := zap.NewNop()
	get := availability.NewGetAvailability(s, nil, logger)
	effects := appointment.Effects{Clock: clock.Fixed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)), Logger: logger}

	ah := NewAvailabilityHandler(get)
	aph := NewAppointmentHandler(
		appointment.NewCommitBooking(s, get, effects),
		appointment.NewConfirmAppointment(s, effects),
		appointment.NewCancelAppointment(s, effects),
		appointment.NewCompleteAppointment(s, effects),
		appointment.NewListAppointments(s),
		effects.Clock,
	)

	r := gin.New()
	r.GET("/api/availability", ah.Get)
	secured := r.Group("/api", middleware.AuthMiddleware(testSecret))
	secured.POST("/appointments", aph.Create)
	secured.PATCH("/appointments/:id/cancel", aph.Cancel)
	secured.PATCH("/appointments/:id/confirm", aph.Confirm)
	secured.GET("/me/resources/:id/appointments", aph.ListByDate)
	secured.GET("/me/resources/:id/calendar.ics", aph.Calendar)
	return r
}

func newStore() *store {
	return &store{rules: []models.AvailabilityRule{{
		ID:           "r1",
		ResourceID:   "E1",
		DayOfWeek:    1,
		StartTime:    wallclock.MustTimeOfDay("09:00"),
		EndTime:      wallclock.MustTimeOfDay("12:00"),
		SlotDuration: 60,
	}}}
}

func token(t *testing.T, sub string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + s
}

func do(r *gin.Engine, method, path, auth string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

// ── Availability ──

func TestAvailability_Get(t *testing.T) {
	r := newRouter(newStore())

	rec := do(r, http.MethodGet, "/api/availability?date=2026-01-05&resource_id=E1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var out struct {
		Slots     []string          `json:"slots"`
		Message   string            `json:"message"`
		Resources []json.RawMessage `json:"resources"`
	}
	decode(t, rec, &out)
	if fmt.Sprint(out.Slots) != "[09:00 10:00 11:00]" || out.Resources != nil {
		t.Fatalf("unexpected body %s", rec.Body)
	}

	rec = do(r, http.MethodGet, "/api/availability?date=2026-01-06&service_id=svc&explain=true", "", nil)
	out.Slots, out.Resources = nil, nil
	decode(t, rec, &out)
	if rec.Code != http.StatusOK || len(out.Slots) != 0 || out.Message == "" || len(out.Resources) != 1 {
		t.Fatalf("empty day: status=%d body=%s", rec.Code, rec.Body)
	}
}

func TestAvailability_Errors(t *testing.T) {
	s := newStore()
	r := newRouter(s)

	rec := do(r, http.MethodGet, "/api/availability?resource_id=E1", "", nil)
	var herr httperr.HTTPError
	decode(t, rec, &herr)
	if rec.Code != http.StatusBadRequest || herr.Code != "validation_error" || herr.Field != "date" {
		t.Fatalf("missing date: %d %s", rec.Code, rec.Body)
	}

	rec = do(r, http.MethodGet, "/api/availability?date=2026-13-01&resource_id=E1", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date: %d", rec.Code)
	}

	s.failReads = true
	rec = do(r, http.MethodGet, "/api/availability?date=2026-01-05&resource_id=E1", "", nil)
	if rec.Code != http.StatusServiceUnavailable || rec.Header().Get("Retry-After") == "" {
		t.Fatalf("unavailable: %d headers=%v", rec.Code, rec.Header())
	}
}

// ── Appointments ──

func TestAppointments_CommitAndConflict(t *testing.T) {
	r := newRouter(newStore())
	body := map[string]any{"resource_id": "E1", "date": "2026-01-05", "time": "10:00"}

	if rec := do(r, http.MethodPost, "/api/appointments", "", body); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous commit: %d", rec.Code)
	}

	rec := do(r, http.MethodPost, "/api/appointments", token(t, "cust-1"), body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("commit: %d %s", rec.Code, rec.Body)
	}
	var ap models.Appointment
	decode(t, rec, &ap)
	if ap.Status != "pending" || ap.Time.String() != "10:00" {
		t.Fatalf("unexpected appointment %+v", ap)
	}

	rec = do(r, http.MethodPost, "/api/appointments", token(t, "cust-2"), body)
	var herr httperr.HTTPError
	decode(t, rec, &herr)
	if rec.Code != http.StatusConflict || herr.Code != "slot_taken" {
		t.Fatalf("second commit: %d %s", rec.Code, rec.Body)
	}

	body["time"] = "10:30"
	rec = do(r, http.MethodPost, "/api/appointments", token(t, "cust-2"), body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("outside availability: %d %s", rec.Code, rec.Body)
	}

	avail := do(r, http.MethodGet, "/api/availability?date=2026-01-05&resource_id=E1", "", nil)
	var out struct {
		Slots []string `json:"slots"`
	}
	decode(t, avail, &out)
	if fmt.Sprint(out.Slots) != "[09:00 11:00]" {
		t.Fatalf("booked slot still offered: %v", out.Slots)
	}
}

func TestAppointments_LifecycleAndListing(t *testing.T) {
	r := newRouter(newStore())

	rec := do(r, http.MethodPost, "/api/appointments", token(t, "cust-1"),
		map[string]any{"resource_id": "E1", "date": "2026-01-05", "time": "09:00"})
	var ap models.Appointment
	decode(t, rec, &ap)

	if rec := do(r, http.MethodPatch, "/api/appointments/"+ap.ID+"/confirm", token(t, "cust-1"), nil); rec.Code != http.StatusForbidden {
		t.Fatalf("customer confirm: %d", rec.Code)
	}
	if rec := do(r, http.MethodPatch, "/api/appointments/"+ap.ID+"/confirm", token(t, "owner-1"), nil); rec.Code != http.StatusOK {
		t.Fatalf("owner confirm: %d %s", rec.Code, rec.Body)
	}
	if rec := do(r, http.MethodPatch, "/api/appointments/missing/confirm", token(t, "owner-1"), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing appointment: %d", rec.Code)
	}

	rec = do(r, http.MethodGet, "/api/me/resources/E1/appointments?date=2026-01-05", token(t, "owner-1"), nil)
	var list struct {
		Data  []map[string]any `json:"data"`
		Total int              `json:"total"`
	}
	decode(t, rec, &list)
	if rec.Code != http.StatusOK || list.Total != 1 || list.Data[0]["status"] != "confirmed" {
		t.Fatalf("listing: %d %s", rec.Code, rec.Body)
	}

	rec = do(r, http.MethodPatch, "/api/appointments/"+ap.ID+"/cancel", token(t, "cust-1"), map[string]string{"reason": "travel"})
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel: %d %s", rec.Code, rec.Body)
	}

	rec = do(r, http.MethodGet, "/api/me/resources/E1/calendar.ics?from=2026-01-01&to=2026-01-31", token(t, "owner-1"), nil)
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte("BEGIN:VCALENDAR")) {
		t.Fatalf("calendar: %d %s", rec.Code, rec.Body)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("BEGIN:VEVENT")) {
		t.Fatal("cancelled appointment exported")
	}
}

// ── Auth ──

type userStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func (u *userStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if found, ok := u.users[email]; ok {
		return found, nil
	}
	return nil, user.ErrNotFound
}

func (u *userStore) Create(_ context.Context, m *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	m.ID = fmt.Sprintf("user-%d", len(u.users)+1)
	u.users[m.Email] = m
	return nil
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	users := &userStore{users: map[string]*models.User{}}
	h := NewAuthHandler(users, catalog.New(nil, nil, zap.NewNop()), testSecret, time.Hour, zap.NewNop())
	h.EmailCheck = nil

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/whoami", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		c.String(http.StatusOK, middleware.CallerID(c))
	})

	rec := do(r, http.MethodPost, "/register", "", map[string]string{
		"name": "Cli", "email": "Cli@Example.com", "password": "secret1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rec.Code, rec.Body)
	}

	rec = do(r, http.MethodPost, "/register", "", map[string]string{
		"name": "Cli", "email": "cli@example.com", "password": "secret1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: %d", rec.Code)
	}

	if rec := do(r, http.MethodPost, "/login", "", map[string]string{"email": "cli@example.com", "password": "wrong"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: %d", rec.Code)
	}

	rec = do(r, http.MethodPost, "/login", "", map[string]string{"email": "cli@example.com", "password": "secret1"})
	var out struct {
		Token string `json:"token"`
	}
	decode(t, rec, &out)
	if rec.Code != http.StatusOK || out.Token == "" {
		t.Fatalf("login: %d %s", rec.Code, rec.Body)
	}

	rec = do(r, http.MethodGet, "/whoami", "Bearer "+out.Token, nil)
	if rec.Body.String() != "user-1" {
		t.Fatalf("token subject = %q", rec.Body.String())
	}
}

// ── Audit logs ──

type auditReader struct {
	got repository.AuditLogFilter
}

func (a *auditReader) ListAuditLogs(_ context.Context, f repository.AuditLogFilter) ([]models.AuditLog, int64, error) {
	a.got = f
	return nil, 0, nil
}

func TestAuditLogs_List(t *testing.T) {
	logs := &auditReader{}
	h := NewAuditLogsHandler(logs, newStore())

	r := gin.New()
	r.GET("/resources/:id/audit-logs", middleware.AuthMiddleware(testSecret), h.List)

	if rec := do(r, http.MethodGet, "/resources/E1/audit-logs", token(t, "cust-1"), nil); rec.Code != http.StatusForbidden {
		t.Fatalf("non-owner: %d", rec.Code)
	}

	rec := do(r, http.MethodGet, "/resources/E1/audit-logs?page=3&limit=10&from=2026-01-01&action=rule_created", token(t, "owner-1"), nil)
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte(`"logs":[]`)) {
		t.Fatalf("list: %d %s", rec.Code, rec.Body)
	}
	if logs.got.Offset != 20 || logs.got.Limit != 10 || logs.got.Action != "rule_created" || logs.got.From.String() != "2026-01-01" {
		t.Fatalf("filter = %+v", logs.got)
	}

	if rec := do(r, http.MethodGet, "/resources/E1/audit-logs?to=yesterday", token(t, "owner-1"), nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date: %d", rec.Code)
	}
}
