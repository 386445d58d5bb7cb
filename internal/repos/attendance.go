package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

type AttendanceRepo interface {
	CheckIn(ctx context.Context, tx *gorm.DB, attendance *types.EventAttendance) (*types.EventAttendance, error)
	Exists(ctx context.Context, tx *gorm.DB, eventID, userID uuid.UUID) (bool, error)
	ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.EventAttendance, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type attendanceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttendanceRepo(db *gorm.DB, baseLog *logger.Logger) AttendanceRepo {
	repoLog := baseLog.With("repo", "AttendanceRepo")
	return &attendanceRepo{db: db, log: repoLog}
}

func (ar *attendanceRepo) CheckIn(ctx context.Context, tx *gorm.DB, attendance *types.EventAttendance) (*types.EventAttendance, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Create(attendance).Error; err != nil {
		return nil, err
	}
	return attendance, nil
}

func (ar *attendanceRepo) Exists(ctx context.Context, tx *gorm.DB, eventID, userID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.EventAttendance{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *attendanceRepo) ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.EventAttendance, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.EventAttendance
	if err := transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("checked_in_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *attendanceRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.EventAttendance{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
