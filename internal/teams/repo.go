package teams

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptdeck/promptdeck-backend/pkg/db/models"
	"github.com/promptdeck/promptdeck-backend/pkg/enums"
)

// LiveMembershipIndex is the partial unique index guarding one live
// membership per (team_id, user_id). Violations surface as conflicts.
const LiveMembershipIndex = "team_members_live_user_uq"

// PersonalTeamIndex enforces at most one personal team per owner.
const PersonalTeamIndex = "teams_personal_owner_uq"

// Repository exposes team and membership persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateTeam inserts a team row and populates generated columns.
func (r *Repository) CreateTeam(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

// FindTeamByID loads a team by its UUID.
func (r *Repository) FindTeamByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// FindPersonalTeam returns the user's personal team.
func (r *Repository) FindPersonalTeam(ctx context.Context, ownerID uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_personal = ?", ownerID, true).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// CountOwnedTeams counts the non-personal teams owned by the user.
func (r *Repository) CountOwnedTeams(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("owner_id = ? AND is_personal = ?", ownerID, false).
		Count(&count).Error
	return count, err
}

// UpdateTeamFields applies a column patch to the team row.
func (r *Repository) UpdateTeamFields(ctx context.Context, teamID uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("id = ?", teamID).
		Updates(fields).Error
}

// DeleteTeam hard-deletes the team row. Membership cleanup is a cascade.
func (r *Repository) DeleteTeam(ctx context.Context, teamID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", teamID).
		Delete(&models.Team{}).Error
}

// ListUserTeams returns the teams where the user holds a live membership.
func (r *Repository) ListUserTeams(ctx context.Context, userID uuid.UUID) ([]TeamWithRole, error) {
	var rows []teamWithRoleRow
	err := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Select("teams.*, team_members.role AS role, team_members.status AS status").
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ? AND team_members.status IN ?", userID, enums.LiveMembershipStatuses).
		Order("teams.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return teamRowsToDTO(rows), nil
}

// CreateMembership persists a new membership record.
func (r *Repository) CreateMembership(ctx context.Context, membership *models.TeamMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

// FindMembership retrieves the membership row for (team, user).
func (r *Repository) FindMembership(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMembership, error) {
	var membership models.TeamMembership
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// FindPendingMembershipByEmail retrieves a pending invite addressed to an
// email that had no account when the invite was created.
func (r *Repository) FindPendingMembershipByEmail(ctx context.Context, teamID uuid.UUID, email string) (*models.TeamMembership, error) {
	var membership models.TeamMembership
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND email = ? AND status = ?", teamID, email, enums.MembershipStatusPending).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// UpdateMembershipFields applies a column patch to a membership row.
func (r *Repository) UpdateMembershipFields(ctx context.Context, membershipID uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.TeamMembership{}).
		Where("id = ?", membershipID).
		Updates(fields).Error
}

// ListTeamMembers returns memberships for the team along with user metadata.
// Email invites without an account yet produce rows with a nil user join.
func (r *Repository) ListTeamMembers(ctx context.Context, teamID uuid.UUID) ([]MemberDTO, error) {
	var rows []memberRow
	err := r.db.WithContext(ctx).
		Model(&models.TeamMembership{}).
		Select("team_members.*, users.email AS member_email, users.display_name AS member_display_name, users.avatar_url AS member_avatar_url").
		Joins("LEFT JOIN users ON users.id = team_members.user_id").
		Where("team_members.team_id = ?", teamID).
		Order("team_members.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return memberRowsToDTO(rows), nil
}
