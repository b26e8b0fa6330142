package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/api/middleware"
	"github.com/promptdeck/promptdeck-backend/internal/teams"
	"github.com/promptdeck/promptdeck-backend/pkg/enums"
	pkgerrors "github.com/promptdeck/promptdeck-backend/pkg/errors"
)

func TestTeamCreateSuccess(t *testing.T) {
	actor := uuid.New()
	dto := &teams.TeamDTO{
		ID:        uuid.New(),
		OwnerID:   actor,
		Name:      "Research",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	svc := &stubTeamsService{team: dto}
	handler := TeamCreate(svc, nil)

	body := bytes.NewBufferString(`{"name": "Research"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams", body)
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}

	var envelope struct {
		Data teams.TeamDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != dto.ID {
		t.Fatalf("expected id %s got %s", dto.ID, envelope.Data.ID)
	}
}

func TestTeamCreateMissingUserContext(t *testing.T) {
	handler := TeamCreate(&stubTeamsService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams", bytes.NewBufferString(`{"name": "Research"}`))
	rec := recordResponse(handler, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestTeamCreateLimitExceeded(t *testing.T) {
	actor := uuid.New()
	svc := &stubTeamsService{err: pkgerrors.New(pkgerrors.CodeLimitExceeded, "team limit reached")}
	handler := TeamCreate(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams", bytes.NewBufferString(`{"name": "One Too Many"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestTeamGetInvalidTeamID(t *testing.T) {
	actor := uuid.New()
	handler := TeamGet(&stubTeamsService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams/not-a-uuid", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": "not-a-uuid"})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestTeamListSuccess(t *testing.T) {
	actor := uuid.New()
	svc := &stubTeamsService{teamList: []teams.TeamWithRole{
		{TeamDTO: teams.TeamDTO{ID: uuid.New(), Name: "Personal", IsPersonal: true}, Role: enums.MemberRoleOwner, Status: enums.MembershipStatusActive},
		{TeamDTO: teams.TeamDTO{ID: uuid.New(), Name: "Research"}, Role: enums.MemberRoleMember, Status: enums.MembershipStatusActive},
	}}
	handler := TeamList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			Teams []teams.TeamWithRole `json:"teams"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Teams) != 2 {
		t.Fatalf("expected 2 teams got %d", len(envelope.Data.Teams))
	}
}

func TestTeamUpdateForbiddenPassthrough(t *testing.T) {
	actor := uuid.New()
	svc := &stubTeamsService{err: pkgerrors.New(pkgerrors.CodeForbidden, "not authorized for this team")}
	handler := TeamUpdate(svc, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/teams/"+uuid.NewString(), bytes.NewBufferString(`{"name": "Renamed"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": uuid.NewString()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestTeamDeleteSuccess(t *testing.T) {
	actor := uuid.New()
	handler := TeamDelete(&stubTeamsService{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/teams/"+uuid.NewString(), nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": uuid.NewString()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestTeamCreateUnknownFieldRejected(t *testing.T) {
	actor := uuid.New()
	handler := TeamCreate(&stubTeamsService{team: &teams.TeamDTO{}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams", bytes.NewBufferString(`{"name": "x", "owner_id": "sneaky"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
