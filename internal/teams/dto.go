package teams

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/pkg/db/models"
	"github.com/promptdeck/promptdeck-backend/pkg/enums"
)

// TeamDTO is the transport shape for a team.
type TeamDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	IsPersonal  bool      `json:"is_personal"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TeamWithRole pairs a team with the requesting user's membership metadata.
type TeamWithRole struct {
	TeamDTO
	Role   enums.MemberRole       `json:"role"`
	Status enums.MembershipStatus `json:"status"`
}

// MemberDTO is a membership row joined with user profile data for listings.
type MemberDTO struct {
	MembershipID uuid.UUID              `json:"membership_id"`
	UserID       *uuid.UUID             `json:"user_id,omitempty"`
	Email        *string                `json:"email,omitempty"`
	DisplayName  string                 `json:"display_name,omitempty"`
	AvatarURL    *string                `json:"avatar_url,omitempty"`
	Role         enums.MemberRole       `json:"role"`
	Status       enums.MembershipStatus `json:"status"`
	InvitedAt    *time.Time             `json:"invited_at,omitempty"`
	JoinedAt     *time.Time             `json:"joined_at,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// MembershipDTO is the transport shape for a single membership row.
type MembershipDTO struct {
	ID        uuid.UUID              `json:"id"`
	TeamID    uuid.UUID              `json:"team_id"`
	UserID    *uuid.UUID             `json:"user_id,omitempty"`
	Email     *string                `json:"email,omitempty"`
	Role      enums.MemberRole       `json:"role"`
	Status    enums.MembershipStatus `json:"status"`
	InvitedBy *uuid.UUID             `json:"invited_by,omitempty"`
	InvitedAt *time.Time             `json:"invited_at,omitempty"`
	JoinedAt  *time.Time             `json:"joined_at,omitempty"`
	LeftAt    *time.Time             `json:"left_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func teamFromModel(t *models.Team) *TeamDTO {
	if t == nil {
		return nil
	}
	return &TeamDTO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		AvatarURL:   t.AvatarURL,
		IsPersonal:  t.IsPersonal,
		OwnerID:     t.OwnerID,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func membershipFromModel(m *models.TeamMembership) *MembershipDTO {
	if m == nil {
		return nil
	}
	return &MembershipDTO{
		ID:        m.ID,
		TeamID:    m.TeamID,
		UserID:    m.UserID,
		Email:     m.Email,
		Role:      m.Role,
		Status:    m.Status,
		InvitedBy: m.InvitedBy,
		InvitedAt: m.InvitedAt,
		JoinedAt:  m.JoinedAt,
		LeftAt:    m.LeftAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type teamWithRoleRow struct {
	models.Team
	Role   enums.MemberRole       `gorm:"column:role"`
	Status enums.MembershipStatus `gorm:"column:status"`
}

func teamRowsToDTO(rows []teamWithRoleRow) []TeamWithRole {
	out := make([]TeamWithRole, 0, len(rows))
	for _, row := range rows {
		team := row.Team
		out = append(out, TeamWithRole{
			TeamDTO: *teamFromModel(&team),
			Role:    row.Role,
			Status:  row.Status,
		})
	}
	return out
}

type memberRow struct {
	models.TeamMembership
	MemberEmail       *string `gorm:"column:member_email"`
	MemberDisplayName *string `gorm:"column:member_display_name"`
	MemberAvatarURL   *string `gorm:"column:member_avatar_url"`
}

func memberRowsToDTO(rows []memberRow) []MemberDTO {
	out := make([]MemberDTO, 0, len(rows))
	for _, row := range rows {
		dto := MemberDTO{
			MembershipID: row.ID,
			UserID:       row.UserID,
			Email:        row.Email,
			AvatarURL:    row.MemberAvatarURL,
			Role:         row.Role,
			Status:       row.Status,
			InvitedAt:    row.InvitedAt,
			JoinedAt:     row.JoinedAt,
			CreatedAt:    row.CreatedAt,
		}
		if row.MemberEmail != nil {
			dto.Email = row.MemberEmail
		}
		if row.MemberDisplayName != nil {
			dto.DisplayName = *row.MemberDisplayName
		}
		out = append(out, dto)
	}
	return out
}
