package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

type ReflectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reflections []*types.Reflection) ([]*types.Reflection, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Reflection, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Reflection, error)
	ListByPrinciple(ctx context.Context, tx *gorm.DB, principle string) ([]*types.Reflection, error)
	UpdateScores(ctx context.Context, tx *gorm.DB, id uuid.UUID, effortScore, qualityScore float64) error
}

type reflectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReflectionRepo(db *gorm.DB, baseLog *logger.Logger) ReflectionRepo {
	repoLog := baseLog.With("repo", "ReflectionRepo")
	return &reflectionRepo{db: db, log: repoLog}
}

func (rr *reflectionRepo) Create(ctx context.Context, tx *gorm.DB, reflections []*types.Reflection) ([]*types.Reflection, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(reflections) == 0 {
		return []*types.Reflection{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&reflections).Error; err != nil {
		return nil, err
	}
	return reflections, nil
}

func (rr *reflectionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Reflection, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Reflection
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *reflectionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Reflection, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Reflection
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *reflectionRepo) ListByPrinciple(ctx context.Context, tx *gorm.DB, principle string) ([]*types.Reflection, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Reflection
	if err := transaction.WithContext(ctx).
		Where("principle = ?", principle).
		Order("created_at desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateScores is the single write the evaluation pipeline performs.
// Last write wins; repeated evaluations of the same reflection overwrite.
func (rr *reflectionRepo) UpdateScores(ctx context.Context, tx *gorm.DB, id uuid.UUID, effortScore, qualityScore float64) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Reflection{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"effort_score":  effortScore,
			"quality_score": qualityScore,
			"updated_at":    time.Now().UTC(),
		}).Error
}
