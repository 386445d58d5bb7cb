package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

type Submission struct {
	gorm.Model
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Title       string         `gorm:"not null;column:title" json:"title"`
	Description string         `gorm:"type:text;column:description" json:"description"`
	ProofKey    string         `gorm:"column:proof_key" json:"proof_key"`
	ProofURL    string         `gorm:"column:proof_url" json:"proof_url"`
	ProofMeta   datatypes.JSON `gorm:"type:jsonb;column:proof_meta" json:"proof_meta"`
	Status      string         `gorm:"not null;default:'pending';column:status" json:"status"`
	Points      int            `gorm:"not null;default:0;column:points" json:"points"`
	ReviewedBy  *uuid.UUID     `gorm:"type:uuid;column:reviewed_by" json:"reviewed_by,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Submission) TableName() string {
	return "submission"
}
