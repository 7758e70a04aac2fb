package team

import (
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/pkg/validator"
)

type AddMemberRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
}

func (r *AddMemberRequest) Validate() error {
	return validator.Struct(r)
}

type MemberResponse struct {
	EmployeeID         string    `json:"employee_id"`
	Code               string    `json:"code"`
	Firstname          string    `json:"firstname"`
	Lastname           string    `json:"lastname"`
	Email              *string   `json:"email,omitempty"`
	Department         *string   `json:"department,omitempty"`
	Status             string    `json:"status"`
	AssignedAt         time.Time `json:"assigned_at"`
	DepartmentMismatch bool      `json:"department_mismatch"`
}

type CandidateResponse struct {
	EmployeeID string  `json:"employee_id"`
	Code       string  `json:"code"`
	Firstname  string  `json:"firstname"`
	Lastname   string  `json:"lastname"`
	Email      *string `json:"email,omitempty"`
	Department *string `json:"department,omitempty"`
	IsInTeam   bool    `json:"is_in_team"`
}

type MembershipResponse struct {
	ManagerID  string    `json:"manager_id"`
	EmployeeID string    `json:"employee_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

type RemoveResult struct {
	Removed int64 `json:"removed"`
}
