package prompts

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/pkg/db/models"
	"github.com/promptdeck/promptdeck-backend/pkg/enums"
)

// PromptDTO is the transport shape for a prompt template.
type PromptDTO struct {
	ID          uuid.UUID              `json:"id"`
	TeamID      uuid.UUID              `json:"team_id"`
	Title       string                 `json:"title"`
	Body        string                 `json:"body"`
	Description *string                `json:"description,omitempty"`
	Tags        []string               `json:"tags"`
	Visibility  enums.PromptVisibility `json:"visibility"`
	CreatedBy   uuid.UUID              `json:"created_by"`
	UpdatedBy   *uuid.UUID             `json:"updated_by,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// PromptPage is one cursor page of prompts.
type PromptPage struct {
	Prompts    []PromptDTO `json:"prompts"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

// CreatePromptInput carries the caller-supplied fields for a new prompt.
type CreatePromptInput struct {
	Title       string
	Body        string
	Description *string
	Tags        []string
	Visibility  enums.PromptVisibility
}

// UpdatePromptInput whitelists the mutable prompt fields.
type UpdatePromptInput struct {
	Title       *string
	Body        *string
	Description *string
	Tags        *[]string
	Visibility  *enums.PromptVisibility
}

func FromModel(p *models.Prompt) *PromptDTO {
	if p == nil {
		return nil
	}
	tags := make([]string, len(p.Tags))
	copy(tags, p.Tags)
	return &PromptDTO{
		ID:          p.ID,
		TeamID:      p.TeamID,
		Title:       p.Title,
		Body:        p.Body,
		Description: p.Description,
		Tags:        tags,
		Visibility:  p.Visibility,
		CreatedBy:   p.CreatedBy,
		UpdatedBy:   p.UpdatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
