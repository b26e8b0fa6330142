package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a collaboration workspace that owns prompts and tags.
// Exactly one team per user may have is_personal = true.
type Team struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	AvatarURL   *string   `gorm:"column:avatar_url"`
	IsPersonal  bool      `gorm:"column:is_personal;not null;default:false"`
	OwnerID     uuid.UUID `gorm:"column:owner_id;type:uuid;not null"`
	CreatedBy   uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the relation name used by the membership authority.
func (Team) TableName() string {
	return "teams"
}
