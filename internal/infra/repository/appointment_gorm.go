package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/booking-slots/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

// SlotIndexName is the partial unique index guarding one active appointment
// per (resource, date, time).
const SlotIndexName = "ux_appointments_slot"

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Ownership
// --------------------------------------------------

func (r *AppointmentGormRepository) IsResourceOwner(
	ctx context.Context,
	resourceID string,
	userID string,
) (bool, error) {
	return isResourceOwner(ctx, r.db, resourceID, userID)
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	serviceID string,
) (*models.Service, error) {

	if !validID(serviceID) {
		return nil, gorm.ErrRecordNotFound
	}

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, "id = ?", serviceID).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateAppointment locks any active row holding the slot, then inserts. Two
// writers racing on an empty slot are separated by the unique index.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	conflict := httperr.ConflictError{
		ResourceID: ap.ResourceID,
		Date:       ap.Date.String(),
		Time:       ap.Time.String(),
	}

	if !validID(ap.ResourceID) {
		return httperr.ErrBusiness("resource_not_found")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var held []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where(
				"resource_id = ? AND date = ? AND time = ? AND status <> ?",
				ap.ResourceID,
				ap.Date,
				ap.Time,
				string(domain.StatusCancelled),
			).
			Find(&held).Error; err != nil {
			return err
		}

		if len(held) > 0 {
			return conflict
		}

		return tx.Create(ap).Error
	})

	if isSlotViolation(err) {
		return conflict
	}
	return err
}

func isSlotViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" && (pgErr.ConstraintName == "" || pgErr.ConstraintName == SlotIndexName)
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	if !validID(appointmentID) {
		return nil, gorm.ErrRecordNotFound
	}

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, "id = ?", appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {
	res := r.db.WithContext(ctx).
		Model(ap).
		Where("status = ?", string(from)).
		Select("status", "cancel_reason", "confirmed_at", "cancelled_at", "completed_at", "updated_at").
		Updates(ap)
	if res.Error != nil {
		if isSlotViolation(res.Error) {
			return httperr.ErrBusiness("invalid_state")
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	resourceID string,
	from wallclock.Date,
	to wallclock.Date,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	if !validID(resourceID) {
		return apps, nil
	}

	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where(
			"resource_id = ? AND date >= ? AND date <= ?",
			resourceID,
			from,
			to,
		).
		Order("date ASC, time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
