package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/pkg/enums"
)

// TeamMembership links a user with a team and captures their role/status.
// UserID stays nil for email invites until the invitee registers and accepts.
type TeamMembership struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TeamID    uuid.UUID              `gorm:"column:team_id;type:uuid;not null"`
	UserID    *uuid.UUID             `gorm:"column:user_id;type:uuid"`
	Email     *string                `gorm:"column:email"`
	Role      enums.MemberRole       `gorm:"column:role;type:member_role;not null"`
	Status    enums.MembershipStatus `gorm:"column:status;type:membership_status;not null"`
	InvitedBy *uuid.UUID             `gorm:"column:invited_by;type:uuid"`
	InvitedAt *time.Time             `gorm:"column:invited_at"`
	JoinedAt  *time.Time             `gorm:"column:joined_at"`
	LeftAt    *time.Time             `gorm:"column:left_at"`
	CreatedBy uuid.UUID              `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the relation name used by the membership authority.
func (TeamMembership) TableName() string {
	return "team_members"
}
