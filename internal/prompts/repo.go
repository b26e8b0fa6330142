package prompts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptdeck/promptdeck-backend/pkg/db/models"
	"github.com/promptdeck/promptdeck-backend/pkg/enums"
	"github.com/promptdeck/promptdeck-backend/pkg/pagination"
)

// Repository exposes prompt persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a prompt row and populates generated columns.
func (r *Repository) Create(ctx context.Context, prompt *models.Prompt) error {
	return r.db.WithContext(ctx).Create(prompt).Error
}

// FindByID loads a prompt scoped to its team.
func (r *Repository) FindByID(ctx context.Context, teamID, promptID uuid.UUID) (*models.Prompt, error) {
	var prompt models.Prompt
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND id = ?", teamID, promptID).
		First(&prompt).Error
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

// ListByTeam returns a cursor page of the team's listed prompts, newest
// first. Unlisted prompts are skipped; an optional tag filter restricts
// results to prompts carrying the tag.
func (r *Repository) ListByTeam(ctx context.Context, teamID uuid.UUID, tag string, cursor *pagination.Cursor, limit int) ([]models.Prompt, error) {
	query := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Where("visibility = ?", enums.PromptVisibilityTeam).
		Order("created_at DESC, id DESC").
		Limit(limit)

	if tag != "" {
		query = query.Where("? = ANY(tags)", tag)
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var prompts []models.Prompt
	if err := query.Find(&prompts).Error; err != nil {
		return nil, err
	}
	return prompts, nil
}

// Update applies a column patch to the prompt row.
func (r *Repository) Update(ctx context.Context, teamID, promptID uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Prompt{}).
		Where("team_id = ? AND id = ?", teamID, promptID).
		Updates(fields).Error
}

// Delete hard-deletes the prompt row.
func (r *Repository) Delete(ctx context.Context, teamID, promptID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("team_id = ? AND id = ?", teamID, promptID).
		Delete(&models.Prompt{}).Error
}
