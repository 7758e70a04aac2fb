package account

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/pkg/validator"
)

type CreateAccountRequest struct {
	Role       Role    `json:"role" validate:"required,oneof=EMPLOYEE MANAGER"`
	Firstname  string  `json:"firstname" validate:"required,max=100"`
	Lastname   string  `json:"lastname" validate:"max=100"`
	Email      string  `json:"email" validate:"required,email"`
	Telephone  *string `json:"telephone,omitempty" validate:"omitempty,max=30"`
	Address    *string `json:"address,omitempty"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=100"`
	CreatedBy  string  `json:"-"`
}

func (r *CreateAccountRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Firstname = strings.TrimSpace(r.Firstname)
	return validator.Struct(r)
}

type CreateAdminRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     Role   `json:"role" validate:"required,oneof=ADMIN SUPER_ADMIN"`
}

func (r *CreateAdminRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validator.Struct(r)
}

type UpdateAccountRequest struct {
	Firstname  *string `json:"firstname,omitempty" validate:"omitempty,min=1,max=100"`
	Lastname   *string `json:"lastname,omitempty" validate:"omitempty,max=100"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Telephone  *string `json:"telephone,omitempty" validate:"omitempty,max=30"`
	Address    *string `json:"address,omitempty"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=100"`
}

func (r *UpdateAccountRequest) IsEmpty() bool {
	return r.Firstname == nil && r.Lastname == nil && r.Email == nil &&
		r.Telephone == nil && r.Address == nil && r.Department == nil
}

func (r *UpdateAccountRequest) Validate() error {
	if r.IsEmpty() {
		return ErrEmptyPatch
	}
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
	}
	return validator.Struct(r)
}

type SetStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}

func (r *SetStatusRequest) Validate() error {
	return validator.Struct(r)
}

type ChangeRoleRequest struct {
	Role Role `json:"role" validate:"required,oneof=EMPLOYEE MANAGER"`
}

func (r *ChangeRoleRequest) Validate() error {
	return validator.Struct(r)
}

type AssignManagerRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	ManagerID  string `json:"manager_id" validate:"required,uuid"`
}

func (r *AssignManagerRequest) Validate() error {
	return validator.Struct(r)
}

type ListFilter struct {
	Role       *Role
	Status     *Status
	Department *string
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Role != nil && !f.Role.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of SUPER_ADMIN, ADMIN, MANAGER, EMPLOYEE",
		})
	}

	if f.Status != nil && !f.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be ACTIVE or INACTIVE",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AccountResponse struct {
	ID         string    `json:"id"`
	Role       Role      `json:"role"`
	Code       string    `json:"code"`
	Email      *string   `json:"email,omitempty"`
	Firstname  string    `json:"firstname"`
	Lastname   string    `json:"lastname"`
	Telephone  *string   `json:"telephone,omitempty"`
	Address    *string   `json:"address,omitempty"`
	Department *string   `json:"department,omitempty"`
	ManagerID  *string   `json:"manager_id,omitempty"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateAccountResponse carries the plaintext access code. It is never returned again.
type CreateAccountResponse struct {
	Account    AccountResponse `json:"account"`
	AccessCode string          `json:"access_code"`
}

func NewAccountResponse(a Account) AccountResponse {
	return AccountResponse{
		ID:         a.ID,
		Role:       a.Role,
		Code:       a.Code,
		Email:      a.Email,
		Firstname:  a.Firstname,
		Lastname:   a.Lastname,
		Telephone:  a.Telephone,
		Address:    a.Address,
		Department: a.Department,
		ManagerID:  a.ManagerID,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
