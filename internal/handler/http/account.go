package http

import (
	"net/http"
	"strings"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AccountHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	CreateAdmin(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
	ChangeRole(w http.ResponseWriter, r *http.Request)
	AssignManager(w http.ResponseWriter, r *http.Request)
}

type accountHandlerImpl struct {
	accountService account.AccountService
}

func NewAccountHandler(accountService account.AccountService) AccountHandler {
	return &accountHandlerImpl{accountService: accountService}
}

// Create implements AccountHandler.
func (h *accountHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req account.CreateAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.CreatedBy = actor.AccountID

	created, err := h.accountService.CreateAccount(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Account created. The access code is shown only once.", created)
}

// CreateAdmin implements AccountHandler.
func (h *accountHandlerImpl) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req account.CreateAdminRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.accountService.CreateAdmin(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Admin created", created)
}

// List implements AccountHandler.
func (h *accountHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter account.ListFilter
	if role := r.URL.Query().Get("role"); role != "" {
		rl := account.Role(strings.ToUpper(role))
		filter.Role = &rl
	}
	if status := r.URL.Query().Get("status"); status != "" {
		st := account.Status(strings.ToUpper(status))
		filter.Status = &st
	}
	filter.Department = optionalQuery(r, "department")

	accounts, err := h.accountService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, accounts, &response.Meta{TotalItems: int64(len(accounts))})
}

// Get implements AccountHandler.
func (h *accountHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	got, err := h.accountService.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, got)
}

// Update implements AccountHandler.
func (h *accountHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req account.UpdateAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.accountService.Update(r.Context(), chi.URLParam(r, "code"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Account updated", updated)
}

// SetStatus implements AccountHandler.
func (h *accountHandlerImpl) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req account.SetStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.accountService.SetStatus(r.Context(), chi.URLParam(r, "code"), req.Status); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Account status updated", nil)
}

// ChangeRole implements AccountHandler.
func (h *accountHandlerImpl) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req account.ChangeRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.accountService.ChangeRole(r.Context(), chi.URLParam(r, "code"), req.Role); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Account role updated", nil)
}

// AssignManager implements AccountHandler.
func (h *accountHandlerImpl) AssignManager(w http.ResponseWriter, r *http.Request) {
	var req account.AssignManagerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.accountService.AssignManager(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manager assigned", nil)
}
