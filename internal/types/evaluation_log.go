package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EvaluationLog records one trip through the reflection scoring pipeline,
// including fallback runs, for manual review and score auditing.
type EvaluationLog struct {
	gorm.Model
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ReflectionID uuid.UUID      `gorm:"type:uuid;not null;index;column:reflection_id" json:"reflection_id"`
	UserID       uuid.UUID      `gorm:"type:uuid;index;column:user_id" json:"user_id"`
	ModelName    string         `gorm:"not null;column:model" json:"model"`
	Prompt       string         `gorm:"type:text;column:prompt" json:"prompt"`
	RawResponse  string         `gorm:"type:text;column:raw_response" json:"raw_response"`
	EffortScore  float64        `gorm:"not null;column:effort_score" json:"effort_score"`
	QualityScore float64        `gorm:"not null;column:quality_score" json:"quality_score"`
	Fallback     bool           `gorm:"not null;column:fallback" json:"fallback"`
	Error        string         `gorm:"type:text;column:error" json:"error"`
	Suggestions  datatypes.JSON `gorm:"type:jsonb;column:suggestions" json:"suggestions"`
	DurationMS   int64          `gorm:"not null;default:0;column:duration_ms" json:"duration_ms"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (EvaluationLog) TableName() string {
	return "evaluation_log"
}
