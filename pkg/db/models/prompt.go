package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/promptdeck/promptdeck-backend/pkg/enums"
)

// Prompt is a stored prompt template owned by a team.
type Prompt struct {
	ID          uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TeamID      uuid.UUID              `gorm:"column:team_id;type:uuid;not null"`
	Title       string                 `gorm:"column:title;not null"`
	Body        string                 `gorm:"column:body;not null"`
	Description *string                `gorm:"column:description"`
	Tags        pq.StringArray         `gorm:"column:tags;type:text[]"`
	Visibility  enums.PromptVisibility `gorm:"column:visibility;type:prompt_visibility;not null"`
	CreatedBy   uuid.UUID              `gorm:"column:created_by;type:uuid;not null"`
	UpdatedBy   *uuid.UUID             `gorm:"column:updated_by;type:uuid"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
