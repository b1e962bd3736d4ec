package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

// AuditLogFilter narrows a resource's audit trail. Zero values match all.
type AuditLogFilter struct {
	ResourceID string
	Action     string
	Entity     string
	From       wallclock.Date
	To         wallclock.Date
	Limit      int
	Offset     int
}

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

// ListAuditLogs returns one page, newest first, and the unpaged total.
func (r *AuditLogGormRepository) ListAuditLogs(
	ctx context.Context,
	f AuditLogFilter,
) ([]models.AuditLog, int64, error) {

	if !validID(f.ResourceID) {
		return []models.AuditLog{}, 0, nil
	}

	q := r.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("resource_id = ?", f.ResourceID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From.At(0, time.UTC))
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To.AddDays(1).At(0, time.UTC))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error
	return logs, total, err
}
