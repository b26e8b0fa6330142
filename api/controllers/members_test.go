package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/api/middleware"
	"github.com/promptdeck/promptdeck-backend/internal/teams"
	"github.com/promptdeck/promptdeck-backend/pkg/enums"
	pkgerrors "github.com/promptdeck/promptdeck-backend/pkg/errors"
)

func TestMemberInvitePendingCreated(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	invitee := uuid.New()
	svc := &stubTeamsService{membership: &teams.MembershipDTO{
		ID:     uuid.New(),
		TeamID: teamID,
		UserID: &invitee,
		Role:   enums.MemberRoleMember,
		Status: enums.MembershipStatusPending,
	}}
	handler := MemberInvite(svc, nil)

	payload := `{"user_id": "` + invitee.String() + `", "role": "member"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams/"+teamID.String()+"/members", bytes.NewBufferString(payload))
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	if svc.lastInvite.UserID == nil || *svc.lastInvite.UserID != invitee {
		t.Fatalf("expected invitee %s forwarded, got %+v", invitee, svc.lastInvite.UserID)
	}
	if svc.lastInvite.Role != enums.MemberRoleMember {
		t.Fatalf("expected member role, got %s", svc.lastInvite.Role)
	}
}

func TestMemberInviteByEmail(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	email := "new.member@example.com"
	svc := &stubTeamsService{membership: &teams.MembershipDTO{
		ID:     uuid.New(),
		TeamID: teamID,
		Email:  &email,
		Role:   enums.MemberRoleMember,
		Status: enums.MembershipStatusPending,
	}}
	handler := MemberInvite(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams/"+teamID.String()+"/members", bytes.NewBufferString(`{"email": "new.member@example.com"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	if svc.lastInvite.Email != email {
		t.Fatalf("expected email %q forwarded, got %q", email, svc.lastInvite.Email)
	}
	if svc.lastInvite.UserID != nil {
		t.Fatalf("expected nil user id, got %s", svc.lastInvite.UserID)
	}
}

func TestMemberInviteUnknownRoleRejected(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	handler := MemberInvite(&stubTeamsService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams/"+teamID.String()+"/members", bytes.NewBufferString(`{"email": "a@b.co", "role": "superuser"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestInviteAcceptSuccess(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	svc := &stubTeamsService{membership: &teams.MembershipDTO{
		ID:     uuid.New(),
		TeamID: teamID,
		UserID: &actor,
		Role:   enums.MemberRoleMember,
		Status: enums.MembershipStatusActive,
	}}
	handler := InviteAccept(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams/"+teamID.String()+"/invite/accept", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data teams.MembershipDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != enums.MembershipStatusActive {
		t.Fatalf("expected active membership, got %s", envelope.Data.Status)
	}
}

func TestInviteAcceptNotFoundPassthrough(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	svc := &stubTeamsService{err: pkgerrors.New(pkgerrors.CodeNotFound, "invite not found")}
	handler := InviteAccept(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams/"+teamID.String()+"/invite/accept", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestMemberUpdateForwardsPatch(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	target := uuid.New()
	svc := &stubTeamsService{membership: &teams.MembershipDTO{ID: uuid.New(), TeamID: teamID, UserID: &target}}
	handler := MemberUpdate(svc, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/teams/"+teamID.String()+"/members/"+target.String(), bytes.NewBufferString(`{"role": "admin", "status": "active"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String(), "userID": target.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastUpdate.Role == nil || *svc.lastUpdate.Role != enums.MemberRoleAdmin {
		t.Fatalf("expected admin role forwarded, got %+v", svc.lastUpdate.Role)
	}
	if svc.lastUpdate.Status == nil || *svc.lastUpdate.Status != enums.MembershipStatusActive {
		t.Fatalf("expected active status forwarded, got %+v", svc.lastUpdate.Status)
	}
}

func TestMemberUpdateUnknownStatusRejected(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	target := uuid.New()
	handler := MemberUpdate(&stubTeamsService{}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/teams/"+teamID.String()+"/members/"+target.String(), bytesOf(`{"status": "banished"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String(), "userID": target.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestMemberRemoveSuccess(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	target := uuid.New()
	handler := MemberRemove(&stubTeamsService{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/teams/"+teamID.String()+"/members/"+target.String(), nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String(), "userID": target.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestOwnershipTransferRequiresTarget(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	handler := OwnershipTransfer(&stubTeamsService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams/"+teamID.String()+"/transfer", bytesOf(`{}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestOwnershipTransferForwardsTarget(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	target := uuid.New()
	svc := &stubTeamsService{}
	handler := OwnershipTransfer(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams/"+teamID.String()+"/transfer", bytesOf(`{"new_owner_id": "`+target.String()+`"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastTransfer != target {
		t.Fatalf("expected target %s forwarded, got %s", target, svc.lastTransfer)
	}
}

func TestMemberListSuccess(t *testing.T) {
	actor := uuid.New()
	teamID := uuid.New()
	svc := &stubTeamsService{members: []teams.MemberDTO{
		{MembershipID: uuid.New(), Role: enums.MemberRoleOwner, Status: enums.MembershipStatusActive},
		{MembershipID: uuid.New(), Role: enums.MemberRoleMember, Status: enums.MembershipStatusPending},
	}}
	handler := MemberList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams/"+teamID.String()+"/members", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), actor.String()))
	req = withRouteParams(req, map[string]string{"teamID": teamID.String()})

	rec := recordResponse(handler, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			Members []teams.MemberDTO `json:"members"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Members) != 2 {
		t.Fatalf("expected 2 members got %d", len(envelope.Data.Members))
	}
}

func bytesOf(s string) *bytes.Buffer {
	return bytes.NewBufferString(s)
}
