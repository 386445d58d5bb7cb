package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

type EventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, events []*types.Event) ([]*types.Event, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Event, error)
	ListUpcoming(ctx context.Context, tx *gorm.DB, after time.Time) ([]*types.Event, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Event, error)
}

type eventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
	repoLog := baseLog.With("repo", "EventRepo")
	return &eventRepo{db: db, log: repoLog}
}

func (er *eventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.Event) ([]*types.Event, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	if len(events) == 0 {
		return []*types.Event{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (er *eventRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Event, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var result types.Event
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (er *eventRepo) ListUpcoming(ctx context.Context, tx *gorm.DB, after time.Time) ([]*types.Event, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var results []*types.Event
	if err := transaction.WithContext(ctx).
		Where("starts_at > ?", after).
		Order("starts_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *eventRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Event, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var results []*types.Event
	if err := transaction.WithContext(ctx).
		Order("starts_at desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
