package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/internal/auth"
	"github.com/promptdeck/promptdeck-backend/internal/prompts"
	"github.com/promptdeck/promptdeck-backend/internal/teams"
	"github.com/promptdeck/promptdeck-backend/pkg/db/models"
)

// stubTeamsService returns canned values and records the inputs it saw.
type stubTeamsService struct {
	team       *teams.TeamDTO
	teamList   []teams.TeamWithRole
	membership *teams.MembershipDTO
	members    []teams.MemberDTO
	err        error

	lastInvite   teams.InviteMemberInput
	lastUpdate   teams.UpdateMemberInput
	lastTransfer uuid.UUID
}

func (s *stubTeamsService) Create(ctx context.Context, ownerID uuid.UUID, input teams.CreateTeamInput) (*teams.TeamDTO, error) {
	return s.team, s.err
}

func (s *stubTeamsService) EnsurePersonalTeam(ctx context.Context, userID uuid.UUID) (*teams.TeamDTO, error) {
	return s.team, s.err
}

func (s *stubTeamsService) Get(ctx context.Context, teamID, actorID uuid.UUID) (*teams.TeamDTO, error) {
	return s.team, s.err
}

func (s *stubTeamsService) ListForUser(ctx context.Context, userID uuid.UUID) ([]teams.TeamWithRole, error) {
	return s.teamList, s.err
}

func (s *stubTeamsService) Update(ctx context.Context, teamID, actorID uuid.UUID, input teams.UpdateTeamInput) (*teams.TeamDTO, error) {
	return s.team, s.err
}

func (s *stubTeamsService) Delete(ctx context.Context, teamID, actorID uuid.UUID) error {
	return s.err
}

func (s *stubTeamsService) GetMembership(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMembership, error) {
	return nil, s.err
}

func (s *stubTeamsService) RequireMembership(ctx context.Context, teamID, userID uuid.UUID, req teams.MembershipRequirement) (*models.TeamMembership, error) {
	return nil, s.err
}

func (s *stubTeamsService) AssertManager(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMembership, error) {
	return nil, s.err
}

func (s *stubTeamsService) AssertOwner(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMembership, error) {
	return nil, s.err
}

func (s *stubTeamsService) ListMembers(ctx context.Context, teamID, actorID uuid.UUID) ([]teams.MemberDTO, error) {
	return s.members, s.err
}

func (s *stubTeamsService) InviteMember(ctx context.Context, teamID, actorID uuid.UUID, input teams.InviteMemberInput) (*teams.MembershipDTO, error) {
	s.lastInvite = input
	return s.membership, s.err
}

func (s *stubTeamsService) AcceptInvite(ctx context.Context, teamID, userID uuid.UUID, email string) (*teams.MembershipDTO, error) {
	return s.membership, s.err
}

func (s *stubTeamsService) UpdateMember(ctx context.Context, teamID, targetUserID, actorID uuid.UUID, input teams.UpdateMemberInput) (*teams.MembershipDTO, error) {
	s.lastUpdate = input
	return s.membership, s.err
}

func (s *stubTeamsService) RemoveMember(ctx context.Context, teamID, targetUserID, actorID uuid.UUID) error {
	return s.err
}

func (s *stubTeamsService) TransferOwnership(ctx context.Context, teamID, actorID, targetUserID uuid.UUID) error {
	s.lastTransfer = targetUserID
	return s.err
}

// stubPromptsService mirrors stubTeamsService for the prompt endpoints.
type stubPromptsService struct {
	prompt   *prompts.PromptDTO
	page     *prompts.PromptPage
	err      error
	lastList prompts.ListInput
}

func (s *stubPromptsService) Create(ctx context.Context, teamID, actorID uuid.UUID, input prompts.CreatePromptInput) (*prompts.PromptDTO, error) {
	return s.prompt, s.err
}

func (s *stubPromptsService) Get(ctx context.Context, teamID, promptID, actorID uuid.UUID) (*prompts.PromptDTO, error) {
	return s.prompt, s.err
}

func (s *stubPromptsService) List(ctx context.Context, teamID, actorID uuid.UUID, input prompts.ListInput) (*prompts.PromptPage, error) {
	s.lastList = input
	return s.page, s.err
}

func (s *stubPromptsService) Update(ctx context.Context, teamID, promptID, actorID uuid.UUID, input prompts.UpdatePromptInput) (*prompts.PromptDTO, error) {
	return s.prompt, s.err
}

func (s *stubPromptsService) Delete(ctx context.Context, teamID, promptID, actorID uuid.UUID) error {
	return s.err
}

type stubAuthService struct {
	login    *auth.LoginResponse
	refresh  *auth.RefreshResponse
	err      error
	revoked  []string
	lastReq  auth.RefreshRequest
	loginReq auth.LoginRequest
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	s.loginReq = req
	return s.login, s.err
}

func (s *stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	s.lastReq = req
	return s.refresh, s.err
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return s.err
}

func withRouteParams(r *http.Request, params map[string]string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx)
	return r.WithContext(ctx)
}

func recordResponse(handler http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	return rec
}
