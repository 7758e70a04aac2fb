package http

import (
	"net/http"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/team"
	"github.com/cmlabs-hris/employee-management-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TeamHandler interface {
	Members(w http.ResponseWriter, r *http.Request)
	Available(w http.ResponseWriter, r *http.Request)
	AddMember(w http.ResponseWriter, r *http.Request)
	RemoveMember(w http.ResponseWriter, r *http.Request)
	DirectReports(w http.ResponseWriter, r *http.Request)
	Reports(w http.ResponseWriter, r *http.Request)
}

type teamHandlerImpl struct {
	teamService team.TeamService
}

func NewTeamHandler(teamService team.TeamService) TeamHandler {
	return &teamHandlerImpl{teamService: teamService}
}

// Members implements TeamHandler.
func (h *teamHandlerImpl) Members(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	members, err := h.teamService.GetTeamMembers(r.Context(), actor.AccountID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, members, &response.Meta{TotalItems: int64(len(members))})
}

// Available implements TeamHandler.
func (h *teamHandlerImpl) Available(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	candidates, err := h.teamService.GetAvailableEmployees(r.Context(), actor.AccountID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, candidates)
}

// AddMember implements TeamHandler.
func (h *teamHandlerImpl) AddMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req team.AddMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	membership, err := h.teamService.AddTeamMember(r.Context(), actor.AccountID, req.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee added to team", membership)
}

// RemoveMember implements TeamHandler.
func (h *teamHandlerImpl) RemoveMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	result, err := h.teamService.RemoveTeamMember(r.Context(), actor.AccountID, chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if result.Removed == 0 {
		response.HandleError(w, team.ErrMembershipNotFound)
		return
	}

	response.SuccessWithMessage(w, "Employee removed from team", result)
}

// DirectReports implements TeamHandler.
func (h *teamHandlerImpl) DirectReports(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	reports, err := h.teamService.GetDirectReports(r.Context(), actor.AccountID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}

// Reports implements TeamHandler.
func (h *teamHandlerImpl) Reports(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	reports, err := h.teamService.GetTeamReports(r.Context(), actor.AccountID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}
