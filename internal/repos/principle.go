package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

type PrincipleRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.Principle, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Principle, error)
	Seed(ctx context.Context, tx *gorm.DB, principles []*types.Principle) error
}

type principleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPrincipleRepo(db *gorm.DB, baseLog *logger.Logger) PrincipleRepo {
	repoLog := baseLog.With("repo", "PrincipleRepo")
	return &principleRepo{db: db, log: repoLog}
}

func (pr *principleRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Principle, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Principle
	if err := transaction.WithContext(ctx).
		Order("display_order asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *principleRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Principle, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Principle
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *principleRepo) Seed(ctx context.Context, tx *gorm.DB, principles []*types.Principle) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(principles) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&principles).Error
}
