package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/api/middleware"
	"github.com/promptdeck/promptdeck-backend/internal/prompts"
	pkgerrors "github.com/promptdeck/promptdeck-backend/pkg/errors"
)

func TestPromptCreateSuccess(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	dto := &prompts.PromptDTO{ID: uuid.New(), TeamID: teamID, Title: "Summarize", Body: "Summarize the following text."}
	handler := PromptCreate(&stubPromptsService{prompt: dto}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams/"+teamID.String()+"/prompts", bytesOf(`{"title": "Summarize", "body": "Summarize the following text.", "tags": ["Writing"]}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}

	var envelope struct {
		Data prompts.PromptDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != dto.ID {
		t.Fatalf("expected id %s got %s", dto.ID, envelope.Data.ID)
	}
}

func TestPromptCreateMissingTitle(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	handler := PromptCreate(&stubPromptsService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams/"+teamID.String()+"/prompts", bytesOf(`{"body": "text"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestPromptCreateRejectsUnknownVisibility(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	handler := PromptCreate(&stubPromptsService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams/"+teamID.String()+"/prompts", bytesOf(`{"title": "T", "body": "B", "visibility": "secret"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestPromptListForwardsQuery(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	svc := &stubPromptsService{page: &prompts.PromptPage{Prompts: []prompts.PromptDTO{}}}
	handler := PromptList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams/"+teamID.String()+"/prompts?limit=10&tag=writing&cursor=abc", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastList.Limit != 10 {
		t.Fatalf("expected limit 10 got %d", svc.lastList.Limit)
	}
	if svc.lastList.Tag != "writing" {
		t.Fatalf("expected tag writing got %q", svc.lastList.Tag)
	}
	if svc.lastList.Cursor != "abc" {
		t.Fatalf("expected cursor abc got %q", svc.lastList.Cursor)
	}
}

func TestPromptListRejectsOversizedLimit(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	handler := PromptList(&stubPromptsService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams/"+teamID.String()+"/prompts?limit=5000", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestPromptGetForbiddenPassthrough(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	promptID := uuid.New()
	svc := &stubPromptsService{err: pkgerrors.New(pkgerrors.CodeForbidden, "not authorized for this team")}
	handler := PromptGet(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams/"+teamID.String()+"/prompts/"+promptID.String(), nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String(), "promptID": promptID.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestPromptDeleteInvalidPromptID(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	handler := PromptDelete(&stubPromptsService{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/teams/"+teamID.String()+"/prompts/oops", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String(), "promptID": "oops"})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
