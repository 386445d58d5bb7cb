package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventAttendance struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;index;column:event_id" json:"event_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	CheckedInAt time.Time `gorm:"not null;default:now();column:checked_in_at" json:"checked_in_at"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (EventAttendance) TableName() string {
	return "event_attendance"
}
