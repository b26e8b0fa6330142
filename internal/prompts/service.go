package prompts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/promptdeck/promptdeck-backend/internal/teams"
	"github.com/promptdeck/promptdeck-backend/pkg/db/models"
	"github.com/promptdeck/promptdeck-backend/pkg/enums"
	pkgerrors "github.com/promptdeck/promptdeck-backend/pkg/errors"
	"github.com/promptdeck/promptdeck-backend/pkg/pagination"
)

type promptRepository interface {
	Create(ctx context.Context, prompt *models.Prompt) error
	FindByID(ctx context.Context, teamID, promptID uuid.UUID) (*models.Prompt, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID, tag string, cursor *pagination.Cursor, limit int) ([]models.Prompt, error)
	Update(ctx context.Context, teamID, promptID uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, teamID, promptID uuid.UUID) error
}

type membershipAuthority interface {
	RequireMembership(ctx context.Context, teamID, userID uuid.UUID, req teams.MembershipRequirement) (*models.TeamMembership, error)
}

// ListInput captures the filters and cursor for a prompt listing.
type ListInput struct {
	Tag    string
	Cursor string
	Limit  int
}

// Service exposes team-scoped prompt operations. Every call authorizes the
// actor through the membership authority before touching rows.
type Service interface {
	Create(ctx context.Context, teamID, actorID uuid.UUID, input CreatePromptInput) (*PromptDTO, error)
	Get(ctx context.Context, teamID, promptID, actorID uuid.UUID) (*PromptDTO, error)
	List(ctx context.Context, teamID, actorID uuid.UUID, input ListInput) (*PromptPage, error)
	Update(ctx context.Context, teamID, promptID, actorID uuid.UUID, input UpdatePromptInput) (*PromptDTO, error)
	Delete(ctx context.Context, teamID, promptID, actorID uuid.UUID) error
}

type service struct {
	repo      promptRepository
	authority membershipAuthority
}

// NewService builds a prompt service gated by the membership authority.
func NewService(repo promptRepository, authority membershipAuthority) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("prompt repository required")
	}
	if authority == nil {
		return nil, fmt.Errorf("membership authority required")
	}
	return &service{repo: repo, authority: authority}, nil
}

func (s *service) Create(ctx context.Context, teamID, actorID uuid.UUID, input CreatePromptInput) (*PromptDTO, error) {
	if _, err := s.authority.RequireMembership(ctx, teamID, actorID, teams.MembershipRequirement{}); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prompt title is required")
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prompt body is required")
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = enums.PromptVisibilityTeam
	}
	if !visibility.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid prompt visibility")
	}

	prompt := &models.Prompt{
		TeamID:      teamID,
		Title:       title,
		Body:        input.Body,
		Description: input.Description,
		Tags:        normalizeTags(input.Tags),
		Visibility:  visibility,
		CreatedBy:   actorID,
	}
	if err := s.repo.Create(ctx, prompt); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert prompt")
	}
	return FromModel(prompt), nil
}

func (s *service) Get(ctx context.Context, teamID, promptID, actorID uuid.UUID) (*PromptDTO, error) {
	if _, err := s.authority.RequireMembership(ctx, teamID, actorID, teams.MembershipRequirement{}); err != nil {
		return nil, err
	}

	prompt, err := s.repo.FindByID(ctx, teamID, promptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "prompt not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load prompt")
	}
	return FromModel(prompt), nil
}

func (s *service) List(ctx context.Context, teamID, actorID uuid.UUID, input ListInput) (*PromptPage, error) {
	if _, err := s.authority.RequireMembership(ctx, teamID, actorID, teams.MembershipRequirement{}); err != nil {
		return nil, err
	}

	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(input.Limit)

	rows, err := s.repo.ListByTeam(ctx, teamID, strings.TrimSpace(input.Tag), cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list prompts")
	}

	page := &PromptPage{Prompts: make([]PromptDTO, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		page.Prompts = append(page.Prompts, *FromModel(&rows[i]))
	}
	if hasMore {
		last := rows[len(rows)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return page, nil
}

func (s *service) Update(ctx context.Context, teamID, promptID, actorID uuid.UUID, input UpdatePromptInput) (*PromptDTO, error) {
	if _, err := s.authority.RequireMembership(ctx, teamID, actorID, teams.MembershipRequirement{}); err != nil {
		return nil, err
	}

	prompt, err := s.repo.FindByID(ctx, teamID, promptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "prompt not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load prompt")
	}

	fields := map[string]any{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "prompt title is required")
		}
		fields["title"] = title
		prompt.Title = title
	}
	if input.Body != nil {
		if strings.TrimSpace(*input.Body) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "prompt body is required")
		}
		fields["body"] = *input.Body
		prompt.Body = *input.Body
	}
	if input.Description != nil {
		fields["description"] = *input.Description
		prompt.Description = input.Description
	}
	if input.Tags != nil {
		tags := normalizeTags(*input.Tags)
		fields["tags"] = tags
		prompt.Tags = tags
	}
	if input.Visibility != nil {
		if !input.Visibility.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid prompt visibility")
		}
		fields["visibility"] = *input.Visibility
		prompt.Visibility = *input.Visibility
	}

	if len(fields) == 0 {
		return FromModel(prompt), nil
	}

	fields["updated_by"] = actorID
	prompt.UpdatedBy = &actorID

	if err := s.repo.Update(ctx, teamID, promptID, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update prompt")
	}
	return FromModel(prompt), nil
}

func (s *service) Delete(ctx context.Context, teamID, promptID, actorID uuid.UUID) error {
	if _, err := s.authority.RequireMembership(ctx, teamID, actorID, teams.MembershipRequirement{}); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, teamID, promptID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "prompt not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load prompt")
	}
	if err := s.repo.Delete(ctx, teamID, promptID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete prompt")
	}
	return nil
}

func normalizeTags(tags []string) pq.StringArray {
	seen := make(map[string]struct{}, len(tags))
	out := make(pq.StringArray, 0, len(tags))
	for _, tag := range tags {
		cleaned := strings.ToLower(strings.TrimSpace(tag))
		if cleaned == "" {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}
