package teams

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptdeck/promptdeck-backend/pkg/config"
	"github.com/promptdeck/promptdeck-backend/pkg/db"
	"github.com/promptdeck/promptdeck-backend/pkg/db/models"
	"github.com/promptdeck/promptdeck-backend/pkg/enums"
	pkgerrors "github.com/promptdeck/promptdeck-backend/pkg/errors"
	"github.com/promptdeck/promptdeck-backend/pkg/saga"
)

type repository interface {
	CreateTeam(ctx context.Context, team *models.Team) error
	FindTeamByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	FindPersonalTeam(ctx context.Context, ownerID uuid.UUID) (*models.Team, error)
	CountOwnedTeams(ctx context.Context, ownerID uuid.UUID) (int64, error)
	UpdateTeamFields(ctx context.Context, teamID uuid.UUID, fields map[string]any) error
	DeleteTeam(ctx context.Context, teamID uuid.UUID) error
	ListUserTeams(ctx context.Context, userID uuid.UUID) ([]TeamWithRole, error)
	CreateMembership(ctx context.Context, membership *models.TeamMembership) error
	FindMembership(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMembership, error)
	FindPendingMembershipByEmail(ctx context.Context, teamID uuid.UUID, email string) (*models.TeamMembership, error)
	UpdateMembershipFields(ctx context.Context, membershipID uuid.UUID, fields map[string]any) error
	ListTeamMembers(ctx context.Context, teamID uuid.UUID) ([]MemberDTO, error)
}

// MembershipRequirement narrows which memberships satisfy a permission check.
// Zero values default to active status and any role.
type MembershipRequirement struct {
	Statuses []enums.MembershipStatus
	Roles    []enums.MemberRole
}

// CreateTeamInput carries the caller-supplied fields for a new team.
type CreateTeamInput struct {
	Name        string
	Description *string
	AvatarURL   *string
	IsPersonal  bool
}

// UpdateTeamInput whitelists the mutable team fields.
type UpdateTeamInput struct {
	Name        *string
	Description *string
	AvatarURL   *string
}

// InviteMemberInput identifies the invitee by user id or email.
type InviteMemberInput struct {
	UserID *uuid.UUID
	Email  string
	Role   enums.MemberRole
}

// UpdateMemberInput carries the role/status patch applied by a manager.
type UpdateMemberInput struct {
	Role   *enums.MemberRole
	Status *enums.MembershipStatus
}

// Service owns all team lifecycle and membership state-transition logic.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateTeamInput) (*TeamDTO, error)
	EnsurePersonalTeam(ctx context.Context, userID uuid.UUID) (*TeamDTO, error)
	Get(ctx context.Context, teamID, actorID uuid.UUID) (*TeamDTO, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]TeamWithRole, error)
	Update(ctx context.Context, teamID, actorID uuid.UUID, input UpdateTeamInput) (*TeamDTO, error)
	Delete(ctx context.Context, teamID, actorID uuid.UUID) error

	GetMembership(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMembership, error)
	RequireMembership(ctx context.Context, teamID, userID uuid.UUID, req MembershipRequirement) (*models.TeamMembership, error)
	AssertManager(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMembership, error)
	AssertOwner(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMembership, error)
	ListMembers(ctx context.Context, teamID, actorID uuid.UUID) ([]MemberDTO, error)

	InviteMember(ctx context.Context, teamID, actorID uuid.UUID, input InviteMemberInput) (*MembershipDTO, error)
	AcceptInvite(ctx context.Context, teamID, userID uuid.UUID, email string) (*MembershipDTO, error)
	UpdateMember(ctx context.Context, teamID, targetUserID, actorID uuid.UUID, input UpdateMemberInput) (*MembershipDTO, error)
	RemoveMember(ctx context.Context, teamID, targetUserID, actorID uuid.UUID) error
	TransferOwnership(ctx context.Context, teamID, actorID, targetUserID uuid.UUID) error
}

type service struct {
	repo repository
	cfg  config.TeamsConfig
}

// NewService builds the membership authority with its persistence collaborator
// and the externally configured limits.
func NewService(repo repository, cfg config.TeamsConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("team repository required")
	}
	if cfg.MaxTeamsPerUser <= 0 {
		return nil, fmt.Errorf("max teams per user must be positive, got %d", cfg.MaxTeamsPerUser)
	}
	return &service{repo: repo, cfg: cfg}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input CreateTeamInput) (*TeamDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team name is required")
	}

	if input.IsPersonal {
		if _, err := s.repo.FindPersonalTeam(ctx, ownerID); err == nil {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "personal team already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check personal team")
		}
	} else {
		count, err := s.repo.CountOwnedTeams(ctx, ownerID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count owned teams")
		}
		if count >= int64(s.cfg.MaxTeamsPerUser) {
			return nil, pkgerrors.New(pkgerrors.CodeLimitExceeded, "team limit reached").
				WithDetails(map[string]any{"max_teams_per_user": s.cfg.MaxTeamsPerUser})
		}
	}

	now := time.Now().UTC()
	team := &models.Team{
		Name:        name,
		Description: input.Description,
		AvatarURL:   input.AvatarURL,
		IsPersonal:  input.IsPersonal,
		OwnerID:     ownerID,
		CreatedBy:   ownerID,
	}

	err := saga.Run(ctx,
		saga.Step{
			Name: "insert team",
			Do: func(ctx context.Context) error {
				if err := s.repo.CreateTeam(ctx, team); err != nil {
					if db.IsUniqueViolation(err, PersonalTeamIndex) {
						return pkgerrors.New(pkgerrors.CodeConflict, "personal team already exists")
					}
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert team")
				}
				return nil
			},
			Undo: func(ctx context.Context) error {
				return s.repo.DeleteTeam(ctx, team.ID)
			},
		},
		saga.Step{
			Name: "insert owner membership",
			Do: func(ctx context.Context) error {
				membership := &models.TeamMembership{
					TeamID:    team.ID,
					UserID:    &ownerID,
					Role:      enums.MemberRoleOwner,
					Status:    enums.MembershipStatusActive,
					JoinedAt:  &now,
					CreatedBy: ownerID,
				}
				if err := s.repo.CreateMembership(ctx, membership); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert owner membership")
				}
				return nil
			},
		},
	)
	if err != nil {
		return nil, err
	}
	return teamFromModel(team), nil
}

func (s *service) EnsurePersonalTeam(ctx context.Context, userID uuid.UUID) (*TeamDTO, error) {
	team, err := s.repo.FindPersonalTeam(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find personal team")
		}
		created, createErr := s.Create(ctx, userID, CreateTeamInput{
			Name:       s.cfg.PersonalTeamName,
			IsPersonal: true,
		})
		if createErr == nil {
			return created, nil
		}
		// A concurrent bootstrap may have won the insert race.
		if typed := pkgerrors.As(createErr); typed != nil && typed.Code() == pkgerrors.CodeConflict {
			team, err = s.repo.FindPersonalTeam(ctx, userID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find personal team")
			}
		} else {
			return nil, createErr
		}
	}

	if err := s.normalizeOwnerMembership(ctx, team, userID); err != nil {
		return nil, err
	}
	return teamFromModel(team), nil
}

// normalizeOwnerMembership repairs a personal team whose owner membership row
// drifted away from active/owner, or is missing entirely.
func (s *service) normalizeOwnerMembership(ctx context.Context, team *models.Team, userID uuid.UUID) error {
	membership, err := s.GetMembership(ctx, team.ID, userID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if membership == nil {
		create := &models.TeamMembership{
			TeamID:    team.ID,
			UserID:    &userID,
			Role:      enums.MemberRoleOwner,
			Status:    enums.MembershipStatusActive,
			JoinedAt:  &now,
			CreatedBy: userID,
		}
		if err := s.repo.CreateMembership(ctx, create); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore owner membership")
		}
		return nil
	}

	if membership.Role == enums.MemberRoleOwner && membership.Status == enums.MembershipStatusActive {
		return nil
	}

	fields := map[string]any{
		"role":    enums.MemberRoleOwner,
		"status":  enums.MembershipStatusActive,
		"left_at": nil,
	}
	if membership.JoinedAt == nil {
		fields["joined_at"] = now
	}
	if err := s.repo.UpdateMembershipFields(ctx, membership.ID, fields); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "normalize owner membership")
	}
	return nil
}

func (s *service) Get(ctx context.Context, teamID, actorID uuid.UUID) (*TeamDTO, error) {
	if _, err := s.RequireMembership(ctx, teamID, actorID, MembershipRequirement{}); err != nil {
		return nil, err
	}
	team, err := s.repo.FindTeamByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "team not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load team")
	}
	return teamFromModel(team), nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]TeamWithRole, error) {
	teams, err := s.repo.ListUserTeams(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list user teams")
	}
	return teams, nil
}

func (s *service) Update(ctx context.Context, teamID, actorID uuid.UUID, input UpdateTeamInput) (*TeamDTO, error) {
	if _, err := s.AssertManager(ctx, teamID, actorID); err != nil {
		return nil, err
	}

	team, err := s.repo.FindTeamByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "team not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load team")
	}

	fields := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "team name is required")
		}
		fields["name"] = name
		team.Name = name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
		team.Description = input.Description
	}
	if input.AvatarURL != nil {
		fields["avatar_url"] = *input.AvatarURL
		team.AvatarURL = input.AvatarURL
	}

	if len(fields) == 0 {
		return teamFromModel(team), nil
	}

	if err := s.repo.UpdateTeamFields(ctx, teamID, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update team")
	}
	return teamFromModel(team), nil
}

func (s *service) Delete(ctx context.Context, teamID, actorID uuid.UUID) error {
	if _, err := s.AssertOwner(ctx, teamID, actorID); err != nil {
		return err
	}
	if err := s.repo.DeleteTeam(ctx, teamID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete team")
	}
	return nil
}

func (s *service) GetMembership(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMembership, error) {
	membership, err := s.repo.FindMembership(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership")
	}
	return membership, nil
}

// RequireMembership loads the caller's membership and enforces the status and
// role allow-lists. Absent membership and wrong status/role both surface as
// the same forbidden error so callers cannot probe team composition.
func (s *service) RequireMembership(ctx context.Context, teamID, userID uuid.UUID, req MembershipRequirement) (*models.TeamMembership, error) {
	membership, err := s.GetMembership(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not authorized for this team")
	}

	statuses := req.Statuses
	if len(statuses) == 0 {
		statuses = []enums.MembershipStatus{enums.MembershipStatusActive}
	}
	if !containsStatus(statuses, membership.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not authorized for this team")
	}

	if len(req.Roles) > 0 && !containsRole(req.Roles, membership.Role) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not authorized for this team")
	}
	return membership, nil
}

func (s *service) AssertManager(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMembership, error) {
	return s.RequireMembership(ctx, teamID, userID, MembershipRequirement{Roles: enums.ManagerRoles})
}

func (s *service) AssertOwner(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMembership, error) {
	return s.RequireMembership(ctx, teamID, userID, MembershipRequirement{Roles: []enums.MemberRole{enums.MemberRoleOwner}})
}

func (s *service) ListMembers(ctx context.Context, teamID, actorID uuid.UUID) ([]MemberDTO, error) {
	if _, err := s.RequireMembership(ctx, teamID, actorID, MembershipRequirement{}); err != nil {
		return nil, err
	}
	members, err := s.repo.ListTeamMembers(ctx, teamID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list team members")
	}
	return members, nil
}

func (s *service) InviteMember(ctx context.Context, teamID, actorID uuid.UUID, input InviteMemberInput) (*MembershipDTO, error) {
	team, err := s.repo.FindTeamByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "team not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load team")
	}
	if team.IsPersonal {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "personal teams cannot have invited members")
	}

	if _, err := s.AssertManager(ctx, teamID, actorID); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = enums.MemberRoleMember
	}
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid member role")
	}
	if role == enums.MemberRoleOwner {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ownership changes go through transfer")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if input.UserID == nil && email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id or email is required")
	}

	existing, err := s.findInviteTarget(ctx, teamID, input.UserID, email)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if existing == nil {
		membership := &models.TeamMembership{
			TeamID:    teamID,
			UserID:    input.UserID,
			Role:      role,
			Status:    enums.MembershipStatusPending,
			InvitedBy: &actorID,
			InvitedAt: &now,
			CreatedBy: actorID,
		}
		if email != "" {
			membership.Email = &email
		}
		if err := s.repo.CreateMembership(ctx, membership); err != nil {
			if db.IsUniqueViolation(err, LiveMembershipIndex) {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "already a member")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert invite")
		}
		return membershipFromModel(membership), nil
	}

	switch {
	case existing.Status == enums.MembershipStatusActive:
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "already a member")

	case existing.Status == enums.MembershipStatusPending:
		// Idempotent re-invite: refresh the invite metadata in place.
		fields := map[string]any{
			"role":       role,
			"invited_by": actorID,
			"invited_at": now,
		}
		applyInviteIdentity(fields, existing, input.UserID, email)
		if err := s.repo.UpdateMembershipFields(ctx, existing.ID, fields); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh invite")
		}
		existing.Role = role
		existing.InvitedBy = &actorID
		existing.InvitedAt = &now
		return membershipFromModel(existing), nil

	default:
		// Terminal row: reset it to a fresh pending cycle.
		fields := map[string]any{
			"role":       role,
			"status":     enums.MembershipStatusPending,
			"invited_by": actorID,
			"invited_at": now,
			"joined_at":  nil,
			"left_at":    nil,
		}
		applyInviteIdentity(fields, existing, input.UserID, email)
		if err := s.repo.UpdateMembershipFields(ctx, existing.ID, fields); err != nil {
			if db.IsUniqueViolation(err, LiveMembershipIndex) {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "already a member")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "re-invite member")
		}
		existing.Role = role
		existing.Status = enums.MembershipStatusPending
		existing.InvitedBy = &actorID
		existing.InvitedAt = &now
		existing.JoinedAt = nil
		existing.LeftAt = nil
		return membershipFromModel(existing), nil
	}
}

func (s *service) findInviteTarget(ctx context.Context, teamID uuid.UUID, userID *uuid.UUID, email string) (*models.TeamMembership, error) {
	if userID != nil {
		membership, err := s.GetMembership(ctx, teamID, *userID)
		if err != nil {
			return nil, err
		}
		if membership != nil {
			return membership, nil
		}
	}
	if email == "" {
		return nil, nil
	}
	membership, err := s.repo.FindPendingMembershipByEmail(ctx, teamID, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup invite by email")
	}
	return membership, nil
}

func applyInviteIdentity(fields map[string]any, existing *models.TeamMembership, userID *uuid.UUID, email string) {
	if userID != nil {
		fields["user_id"] = *userID
		existing.UserID = userID
	}
	if email != "" {
		fields["email"] = email
		e := email
		existing.Email = &e
	}
}

func (s *service) AcceptInvite(ctx context.Context, teamID, userID uuid.UUID, email string) (*MembershipDTO, error) {
	membership, err := s.GetMembership(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		// Invites sent before the invitee had an account carry only an email.
		normalized := strings.ToLower(strings.TrimSpace(email))
		if normalized != "" {
			found, lookupErr := s.repo.FindPendingMembershipByEmail(ctx, teamID, normalized)
			if lookupErr != nil && !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, lookupErr, "lookup invite by email")
			}
			membership = found
		}
	}
	if membership == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invite not found")
	}
	if membership.Status != enums.MembershipStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "invite is no longer pending")
	}

	now := time.Now().UTC()
	fields := map[string]any{
		"status":    enums.MembershipStatusActive,
		"joined_at": now,
	}
	if membership.UserID == nil {
		fields["user_id"] = userID
		membership.UserID = &userID
	}
	if membership.Email == nil && email != "" {
		normalized := strings.ToLower(strings.TrimSpace(email))
		fields["email"] = normalized
		membership.Email = &normalized
	}

	if err := s.repo.UpdateMembershipFields(ctx, membership.ID, fields); err != nil {
		if db.IsUniqueViolation(err, LiveMembershipIndex) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "already a member")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "accept invite")
	}
	membership.Status = enums.MembershipStatusActive
	membership.JoinedAt = &now
	return membershipFromModel(membership), nil
}

func (s *service) UpdateMember(ctx context.Context, teamID, targetUserID, actorID uuid.UUID, input UpdateMemberInput) (*MembershipDTO, error) {
	if _, err := s.AssertManager(ctx, teamID, actorID); err != nil {
		return nil, err
	}
	if input.Role == nil && input.Status == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role or status is required")
	}

	membership, err := s.GetMembership(ctx, teamID, targetUserID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
	}

	fields := map[string]any{}

	if input.Role != nil {
		// Role changes on oneself go through transfer or leave flows, never
		// this path, regardless of the actor's manager level.
		if targetUserID == actorID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot change own role")
		}
		role := *input.Role
		if !role.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid member role")
		}
		if role == enums.MemberRoleOwner || membership.Role == enums.MemberRoleOwner {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "ownership changes go through transfer")
		}
		fields["role"] = role
		membership.Role = role
	}

	if input.Status != nil {
		status := *input.Status
		if !status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid membership status")
		}
		now := time.Now().UTC()
		switch {
		case status == enums.MembershipStatusActive && membership.Status == enums.MembershipStatusPending:
			// Self-activation must go through invite acceptance.
			if targetUserID == actorID {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "use invite acceptance to activate your own membership")
			}
			fields["status"] = status
			fields["joined_at"] = now
			membership.Status = status
			membership.JoinedAt = &now

		case status == enums.MembershipStatusPending && membership.Status == enums.MembershipStatusActive:
			fields["status"] = status
			fields["joined_at"] = nil
			membership.Status = status
			membership.JoinedAt = nil

		case status.IsTerminal():
			fields["status"] = status
			fields["left_at"] = now
			membership.Status = status
			membership.LeftAt = &now

		default:
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported status transition")
		}
	}

	if err := s.repo.UpdateMembershipFields(ctx, membership.ID, fields); err != nil {
		if db.IsUniqueViolation(err, LiveMembershipIndex) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "already a member")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update member")
	}
	return membershipFromModel(membership), nil
}

func (s *service) RemoveMember(ctx context.Context, teamID, targetUserID, actorID uuid.UUID) error {
	now := time.Now().UTC()

	if targetUserID == actorID {
		membership, err := s.RequireMembership(ctx, teamID, actorID, MembershipRequirement{
			Statuses: enums.LiveMembershipStatuses,
		})
		if err != nil {
			return err
		}
		if membership.Role == enums.MemberRoleOwner {
			return pkgerrors.New(pkgerrors.CodeValidation, "owners must transfer ownership before leaving")
		}
		if err := s.repo.UpdateMembershipFields(ctx, membership.ID, map[string]any{
			"status":  enums.MembershipStatusLeft,
			"left_at": now,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "leave team")
		}
		return nil
	}

	if _, err := s.AssertManager(ctx, teamID, actorID); err != nil {
		return err
	}

	membership, err := s.GetMembership(ctx, teamID, targetUserID)
	if err != nil {
		return err
	}
	if membership == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
	}
	if membership.Role == enums.MemberRoleOwner {
		return pkgerrors.New(pkgerrors.CodeForbidden, "the team owner cannot be removed")
	}

	if err := s.repo.UpdateMembershipFields(ctx, membership.ID, map[string]any{
		"status":  enums.MembershipStatusRemoved,
		"left_at": now,
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove member")
	}
	return nil
}

func (s *service) TransferOwnership(ctx context.Context, teamID, actorID, targetUserID uuid.UUID) error {
	if actorID == targetUserID {
		return pkgerrors.New(pkgerrors.CodeValidation, "cannot transfer ownership to yourself")
	}

	actorMembership, err := s.AssertOwner(ctx, teamID, actorID)
	if err != nil {
		return err
	}

	targetMembership, err := s.GetMembership(ctx, teamID, targetUserID)
	if err != nil {
		return err
	}
	if targetMembership == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "target membership not found")
	}
	if targetMembership.Status != enums.MembershipStatusActive {
		return pkgerrors.New(pkgerrors.CodeValidation, "target must be an active member")
	}

	targetRole := targetMembership.Role
	targetStatus := targetMembership.Status

	return saga.Run(ctx,
		saga.Step{
			Name: "demote current owner",
			Do: func(ctx context.Context) error {
				if err := s.repo.UpdateMembershipFields(ctx, actorMembership.ID, map[string]any{
					"role": enums.MemberRoleAdmin,
				}); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "demote current owner")
				}
				return nil
			},
			Undo: func(ctx context.Context) error {
				return s.repo.UpdateMembershipFields(ctx, actorMembership.ID, map[string]any{
					"role": enums.MemberRoleOwner,
				})
			},
		},
		saga.Step{
			Name: "promote target",
			Do: func(ctx context.Context) error {
				if err := s.repo.UpdateMembershipFields(ctx, targetMembership.ID, map[string]any{
					"role":   enums.MemberRoleOwner,
					"status": enums.MembershipStatusActive,
				}); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "promote target")
				}
				return nil
			},
			Undo: func(ctx context.Context) error {
				return s.repo.UpdateMembershipFields(ctx, targetMembership.ID, map[string]any{
					"role":   targetRole,
					"status": targetStatus,
				})
			},
		},
		saga.Step{
			Name: "reassign team owner",
			Do: func(ctx context.Context) error {
				if err := s.repo.UpdateTeamFields(ctx, teamID, map[string]any{
					"owner_id": targetUserID,
				}); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reassign team owner")
				}
				return nil
			},
		},
	)
}

func containsStatus(list []enums.MembershipStatus, status enums.MembershipStatus) bool {
	for _, candidate := range list {
		if candidate == status {
			return true
		}
	}
	return false
}

func containsRole(list []enums.MemberRole, role enums.MemberRole) bool {
	for _, candidate := range list {
		if candidate == role {
			return true
		}
	}
	return false
}
