package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

type EvaluationLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.EvaluationLog) error
	ListByReflection(ctx context.Context, tx *gorm.DB, reflectionID uuid.UUID) ([]*types.EvaluationLog, error)
}

type evaluationLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEvaluationLogRepo(db *gorm.DB, baseLog *logger.Logger) EvaluationLogRepo {
	repoLog := baseLog.With("repo", "EvaluationLogRepo")
	return &evaluationLogRepo{db: db, log: repoLog}
}

func (er *evaluationLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.EvaluationLog) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).Create(entry).Error
}

func (er *evaluationLogRepo) ListByReflection(ctx context.Context, tx *gorm.DB, reflectionID uuid.UUID) ([]*types.EvaluationLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var results []*types.EvaluationLog
	if err := transaction.WithContext(ctx).
		Where("reflection_id = ?", reflectionID).
		Order("created_at desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
