package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

type UserRoleRepo interface {
	GetRoles(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]string, error)
	HasRole(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role string) (bool, error)
	Assign(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role string) error
}

type userRoleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRoleRepo(db *gorm.DB, baseLog *logger.Logger) UserRoleRepo {
	repoLog := baseLog.With("repo", "UserRoleRepo")
	return &userRoleRepo{db: db, log: repoLog}
}

func (ur *userRoleRepo) GetRoles(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var roles []string
	if err := transaction.WithContext(ctx).
		Model(&types.UserRole{}).
		Where("user_id = ?", userID).
		Pluck("role", &roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (ur *userRoleRepo) HasRole(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRoleRepo) Assign(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role string) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	existing, err := ur.HasRole(ctx, transaction, userID, role)
	if err != nil {
		return err
	}
	if existing {
		return nil
	}
	return transaction.WithContext(ctx).
		Create(&types.UserRole{ID: uuid.New(), UserID: userID, Role: role}).Error
}
