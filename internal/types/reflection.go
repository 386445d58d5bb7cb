package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EffortScore and QualityScore are both nil until the evaluation pipeline
// fills them in; once set they each sit inside [0,10].
type Reflection struct {
	gorm.Model
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Principle    string    `gorm:"not null;column:principle" json:"principle"`
	Question     string    `gorm:"type:text;not null;column:question" json:"question"`
	Response     string    `gorm:"type:text;not null;column:response" json:"response"`
	EffortScore  *float64  `gorm:"column:effort_score" json:"effort_score"`
	QualityScore *float64  `gorm:"column:quality_score" json:"quality_score"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Reflection) TableName() string {
	return "reflection"
}
