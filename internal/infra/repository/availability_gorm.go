package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/booking-slots/internal/domain/availability"
	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Reader
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetAvailabilityRules(
	ctx context.Context,
	resourceID string,
) ([]models.AvailabilityRule, error) {

	rules := []models.AvailabilityRule{}
	if !validID(resourceID) {
		return rules, nil
	}

	if err := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("day_of_week ASC, start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *AvailabilityGormRepository) GetBlockedDates(
	ctx context.Context,
	resourceID string,
) ([]models.BlockedDate, error) {

	blocked := []models.BlockedDate{}
	if !validID(resourceID) {
		return blocked, nil
	}

	if err := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("date ASC").
		Find(&blocked).Error; err != nil {
		return nil, err
	}
	return blocked, nil
}

func (r *AvailabilityGormRepository) GetAppointments(
	ctx context.Context,
	resourceID string,
	date wallclock.Date,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	if !validID(resourceID) {
		return apps, nil
	}

	if err := r.db.WithContext(ctx).
		Select("id", "resource_id", "date", "time", "status").
		Where("resource_id = ? AND date = ?", resourceID, date).
		Order("time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// GetEligibleResources lists the active employees assigned to an active
// service, ordered by id.
func (r *AvailabilityGormRepository) GetEligibleResources(
	ctx context.Context,
	serviceID string,
) ([]string, error) {

	ids := []string{}
	if !validID(serviceID) {
		return ids, nil
	}

	if err := r.db.WithContext(ctx).
		Table("employees AS e").
		Joins("JOIN service_employees se ON se.employee_id = e.id").
		Joins("JOIN services s ON s.id = se.service_id").
		Where("s.id = ? AND s.active = ? AND e.active = ?", serviceID, true, true).
		Order("e.id ASC").
		Pluck("e.id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// --------------------------------------------------
// Ownership
// --------------------------------------------------

// IsResourceOwner: the business owner owns the business and all its
// employees; an employee linked to a user also owns their own schedule.
func (r *AvailabilityGormRepository) IsResourceOwner(
	ctx context.Context,
	resourceID string,
	userID string,
) (bool, error) {
	return isResourceOwner(ctx, r.db, resourceID, userID)
}

func isResourceOwner(ctx context.Context, db *gorm.DB, resourceID, userID string) (bool, error) {
	if !validID(resourceID) || !validID(userID) {
		return false, nil
	}

	var count int64
	if err := db.WithContext(ctx).
		Model(&models.Business{}).
		Where("id = ? AND owner_user_id = ?", resourceID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	if err := db.WithContext(ctx).
		Table("employees AS e").
		Joins("JOIN businesses b ON b.id = e.business_id").
		Where("e.id = ? AND (b.owner_user_id = ? OR e.user_id = ?)", resourceID, userID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Rules
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetRule(ctx context.Context, id string) (*models.AvailabilityRule, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}

	var rule models.AvailabilityRule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *AvailabilityGormRepository) ListRules(ctx context.Context, resourceID string) ([]models.AvailabilityRule, error) {
	return r.GetAvailabilityRules(ctx, resourceID)
}

func (r *AvailabilityGormRepository) CreateRule(ctx context.Context, rule *models.AvailabilityRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *AvailabilityGormRepository) UpdateRule(ctx context.Context, rule *models.AvailabilityRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *AvailabilityGormRepository) DeleteRule(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.AvailabilityRule{}, "id = ?", id).Error
}

// --------------------------------------------------
// Blocked dates
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetBlockedDate(ctx context.Context, id string) (*models.BlockedDate, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}

	var bd models.BlockedDate
	if err := r.db.WithContext(ctx).First(&bd, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bd, nil
}

func (r *AvailabilityGormRepository) FindBlockedDate(
	ctx context.Context,
	resourceID string,
	date wallclock.Date,
) (*models.BlockedDate, error) {

	var bd models.BlockedDate
	err := r.db.WithContext(ctx).
		Where("resource_id = ? AND date = ?", resourceID, date).
		First(&bd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bd, nil
}

func (r *AvailabilityGormRepository) ListBlockedDates(ctx context.Context, resourceID string) ([]models.BlockedDate, error) {
	return r.GetBlockedDates(ctx, resourceID)
}

func (r *AvailabilityGormRepository) CreateBlockedDate(ctx context.Context, bd *models.BlockedDate) error {
	return r.db.WithContext(ctx).Create(bd).Error
}

func (r *AvailabilityGormRepository) DeleteBlockedDate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.BlockedDate{}, "id = ?", id).Error
}

// Compile-time check
var (
	_ domain.Reader    = (*AvailabilityGormRepository)(nil)
	_ domain.RuleStore = (*AvailabilityGormRepository)(nil)
)
