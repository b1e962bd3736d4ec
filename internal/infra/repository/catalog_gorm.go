package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/usecase/catalog"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *CatalogGormRepository) GetBusiness(ctx context.Context, id string) (*models.Business, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}

	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *CatalogGormRepository) GetBusinessBySlug(ctx context.Context, slug string) (*models.Business, error) {
	var b models.Business
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *CatalogGormRepository) CreateBusiness(ctx context.Context, b *models.Business) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// --------------------------------------------------
// Employee
// --------------------------------------------------

func (r *CatalogGormRepository) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}

	var e models.Employee
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *CatalogGormRepository) ListEmployees(ctx context.Context, businessID string) ([]models.Employee, error) {
	out := []models.Employee{}
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND active = ?", businessID, true).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) CreateEmployee(ctx context.Context, e *models.Employee) error {
	return r.db.WithContext(ctx).Omit("Business").Create(e).Error
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *CatalogGormRepository) GetService(ctx context.Context, id string) (*models.Service, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}

	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) ListServices(ctx context.Context, businessID string) ([]models.Service, error) {
	out := []models.Service{}
	if err := r.db.WithContext(ctx).
		Preload("Employees", "active = ?", true).
		Where("business_id = ? AND active = ?", businessID, true).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Omit("Employees").Create(s).Error
}

// --------------------------------------------------
// Eligibility
// --------------------------------------------------

func (r *CatalogGormRepository) AssignEmployee(ctx context.Context, serviceID, employeeID string) error {
	link := models.ServiceEmployee{ServiceID: serviceID, EmployeeID: employeeID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

func (r *CatalogGormRepository) UnassignEmployee(ctx context.Context, serviceID, employeeID string) error {
	return r.db.WithContext(ctx).
		Where("service_id = ? AND employee_id = ?", serviceID, employeeID).
		Delete(&models.ServiceEmployee{}).Error
}

// Compile-time check
var _ catalog.Repository = (*CatalogGormRepository)(nil)
