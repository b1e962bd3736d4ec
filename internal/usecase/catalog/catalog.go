// Package catalog manages the resources that carry availability: businesses,
// their employees, and the services employees are eligible for.
package catalog

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-slots/internal/audit"
	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/models"
)

type Repository interface {
	GetBusiness(ctx context.Context, id string) (*models.Business, error)
	GetBusinessBySlug(ctx context.Context, slug string) (*models.Business, error)
	CreateBusiness(ctx context.Context, b *models.Business) error

	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	ListEmployees(ctx context.Context, businessID string) ([]models.Employee, error)
	CreateEmployee(ctx context.Context, e *models.Employee) error

	GetService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context, businessID string) ([]models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error

	// AssignEmployee is idempotent.
	AssignEmployee(ctx context.Context, serviceID, employeeID string) error
	UnassignEmployee(ctx context.Context, serviceID, employeeID string) error
}

// ======================================================
// INPUT
// ======================================================

type BusinessInput struct {
	Name string
	Slug string
}

type EmployeeInput struct {
	BusinessID string
	Name       string
	UserID     *string
}

type ServiceInput struct {
	BusinessID  string
	Name        string
	DurationMin int
}

// ======================================================
// USE CASE
// ======================================================

type Catalog struct {
	repo   Repository
	audit  *audit.Dispatcher
	logger *zap.Logger
}

func New(
	repo Repository,
	audit *audit.Dispatcher,
	logger *zap.Logger,
) *Catalog {
	return &Catalog{
		repo:   repo,
		audit:  audit,
		logger: logger,
	}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// CreateBusiness registers a business owned by ownerID.
func (uc *Catalog) CreateBusiness(
	ctx context.Context,
	ownerID string,
	in BusinessInput,
) (*models.Business, error) {

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrValidation("business_name", "is required")
	}
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if !slugPattern.MatchString(slug) {
		return nil, httperr.ErrValidation("business_slug", "must be lowercase letters, digits and dashes")
	}

	if existing, err := uc.repo.GetBusinessBySlug(ctx, slug); err == nil && existing != nil {
		return nil, httperr.ErrBusiness("slug_already_exists")
	}

	b := &models.Business{
		Name:        name,
		Slug:        slug,
		OwnerUserID: ownerID,
	}
	if err := uc.repo.CreateBusiness(ctx, b); err != nil {
		return nil, err
	}

	uc.record(b.ID, ownerID, "business_created", "business", b.ID)
	return b, nil
}

func (uc *Catalog) CreateEmployee(
	ctx context.Context,
	callerID string,
	in EmployeeInput,
) (*models.Employee, error) {

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrValidation("name", "is required")
	}

	if _, err := uc.ownedBusiness(ctx, callerID, in.BusinessID); err != nil {
		return nil, err
	}

	e := &models.Employee{
		BusinessID: in.BusinessID,
		Name:       name,
		UserID:     in.UserID,
		Active:     true,
	}
	if err := uc.repo.CreateEmployee(ctx, e); err != nil {
		return nil, err
	}

	uc.record(in.BusinessID, callerID, "employee_created", "employee", e.ID)
	return e, nil
}

func (uc *Catalog) CreateService(
	ctx context.Context,
	callerID string,
	in ServiceInput,
) (*models.Service, error) {

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrValidation("name", "is required")
	}
	if in.DurationMin <= 0 {
		return nil, httperr.ErrValidation("duration_min", "must be positive")
	}

	if _, err := uc.ownedBusiness(ctx, callerID, in.BusinessID); err != nil {
		return nil, err
	}

	s := &models.Service{
		BusinessID:  in.BusinessID,
		Name:        name,
		DurationMin: in.DurationMin,
		Active:      true,
	}
	if err := uc.repo.CreateService(ctx, s); err != nil {
		return nil, err
	}

	uc.record(in.BusinessID, callerID, "service_created", "service", s.ID)
	return s, nil
}

// AssignEmployee makes employeeID eligible for serviceID. Both must belong to
// a business the caller owns.
func (uc *Catalog) AssignEmployee(ctx context.Context, callerID, serviceID, employeeID string) error {
	businessID, err := uc.authorizePair(ctx, callerID, serviceID, employeeID)
	if err != nil {
		return err
	}

	if err := uc.repo.AssignEmployee(ctx, serviceID, employeeID); err != nil {
		return err
	}

	uc.record(businessID, callerID, "employee_assigned", "service", serviceID)
	return nil
}

func (uc *Catalog) UnassignEmployee(ctx context.Context, callerID, serviceID, employeeID string) error {
	businessID, err := uc.authorizePair(ctx, callerID, serviceID, employeeID)
	if err != nil {
		return err
	}

	if err := uc.repo.UnassignEmployee(ctx, serviceID, employeeID); err != nil {
		return err
	}

	uc.record(businessID, callerID, "employee_unassigned", "service", serviceID)
	return nil
}

// ListServices is public: customers pick a service before asking for slots.
func (uc *Catalog) ListServices(ctx context.Context, slug string) ([]models.Service, error) {
	b, err := uc.repo.GetBusinessBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil || b == nil {
		return nil, httperr.ErrBusiness("business_not_found")
	}
	return uc.repo.ListServices(ctx, b.ID)
}

func (uc *Catalog) ListEmployees(ctx context.Context, slug string) ([]models.Employee, error) {
	b, err := uc.repo.GetBusinessBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil || b == nil {
		return nil, httperr.ErrBusiness("business_not_found")
	}
	return uc.repo.ListEmployees(ctx, b.ID)
}

// ---- helpers ----

func (uc *Catalog) ownedBusiness(ctx context.Context, callerID, businessID string) (*models.Business, error) {
	b, err := uc.repo.GetBusiness(ctx, businessID)
	if err != nil || b == nil {
		return nil, httperr.ErrBusiness("business_not_found")
	}
	if b.OwnerUserID != callerID {
		return nil, httperr.ErrBusiness("forbidden")
	}
	return b, nil
}

func (uc *Catalog) authorizePair(ctx context.Context, callerID, serviceID, employeeID string) (string, error) {
	svc, err := uc.repo.GetService(ctx, serviceID)
	if err != nil || svc == nil {
		return "", httperr.ErrBusiness("service_not_found")
	}
	emp, err := uc.repo.GetEmployee(ctx, employeeID)
	if err != nil || emp == nil {
		return "", httperr.ErrBusiness("employee_not_found")
	}
	if svc.BusinessID != emp.BusinessID {
		return "", httperr.ErrBusiness("employee_not_in_business")
	}
	if _, err := uc.ownedBusiness(ctx, callerID, svc.BusinessID); err != nil {
		return "", err
	}
	return svc.BusinessID, nil
}

func (uc *Catalog) record(resourceID, userID, action, entity, entityID string) {
	if uc.audit == nil {
		return
	}
	uc.audit.Dispatch(audit.Event{
		ResourceID: resourceID,
		UserID:     &userID,
		Action:     action,
		Entity:     entity,
		EntityID:   &entityID,
	})
}
