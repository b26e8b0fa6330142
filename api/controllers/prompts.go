package controllers

import (
	"net/http"
	"strings"

	"github.com/promptdeck/promptdeck-backend/api/responses"
	"github.com/promptdeck/promptdeck-backend/api/validators"
	"github.com/promptdeck/promptdeck-backend/internal/prompts"
	"github.com/promptdeck/promptdeck-backend/pkg/enums"
	pkgerrors "github.com/promptdeck/promptdeck-backend/pkg/errors"
	"github.com/promptdeck/promptdeck-backend/pkg/logger"
	"github.com/promptdeck/promptdeck-backend/pkg/pagination"
)

type promptCreateRequest struct {
	Title       string   `json:"title" validate:"required,min=1"`
	Body        string   `json:"body" validate:"required"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Visibility  string   `json:"visibility,omitempty"`
}

// PromptCreate stores a new prompt within a team the caller belongs to.
func PromptCreate(svc prompts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "prompt service unavailable"))
			return
		}

		actor, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		teamID, err := pathUUID(r, "teamID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body promptCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := prompts.CreatePromptInput{
			Title:       body.Title,
			Body:        body.Body,
			Description: body.Description,
			Tags:        body.Tags,
		}
		if body.Visibility != "" {
			visibility, err := enums.ParsePromptVisibility(body.Visibility)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid visibility"))
				return
			}
			input.Visibility = visibility
		}

		prompt, err := svc.Create(r.Context(), teamID, actor, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, prompt)
	}
}

// PromptList pages through a team's prompts, newest first.
func PromptList(svc prompts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "prompt service unavailable"))
			return
		}

		actor, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		teamID, err := pathUUID(r, "teamID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), teamID, actor, prompts.ListInput{
			Tag:    strings.TrimSpace(r.URL.Query().Get("tag")),
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			Limit:  limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// PromptGet returns a single prompt scoped to its team.
func PromptGet(svc prompts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "prompt service unavailable"))
			return
		}

		actor, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		teamID, err := pathUUID(r, "teamID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		promptID, err := pathUUID(r, "promptID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prompt, err := svc.Get(r.Context(), teamID, promptID, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, prompt)
	}
}

type promptUpdateRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=1"`
	Body        *string   `json:"body,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Visibility  *string   `json:"visibility,omitempty"`
}

// PromptUpdate patches the mutable prompt fields.
func PromptUpdate(svc prompts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "prompt service unavailable"))
			return
		}

		actor, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		teamID, err := pathUUID(r, "teamID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		promptID, err := pathUUID(r, "promptID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body promptUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := prompts.UpdatePromptInput{
			Title:       body.Title,
			Body:        body.Body,
			Description: body.Description,
			Tags:        body.Tags,
		}
		if body.Visibility != nil {
			visibility, err := enums.ParsePromptVisibility(*body.Visibility)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid visibility"))
				return
			}
			input.Visibility = &visibility
		}

		prompt, err := svc.Update(r.Context(), teamID, promptID, actor, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, prompt)
	}
}

// PromptDelete removes a prompt from its team.
func PromptDelete(svc prompts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "prompt service unavailable"))
			return
		}

		actor, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		teamID, err := pathUUID(r, "teamID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		promptID, err := pathUUID(r, "promptID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), teamID, promptID, actor); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
