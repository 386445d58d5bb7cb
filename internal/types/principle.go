package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Principle struct {
	gorm.Model
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description  string    `gorm:"type:text;column:description" json:"description"`
	DisplayOrder int       `gorm:"not null;default:0;column:display_order" json:"display_order"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Principle) TableName() string {
	return "principle"
}
