package team

import "time"

// Membership links a manager to an employee of the same department.
type Membership struct {
	ManagerID  string
	EmployeeID string
	AssignedAt time.Time
}

// Member is an employee row of a manager's team.
type Member struct {
	EmployeeID string
	Code       string
	Firstname  string
	Lastname   string
	Email      *string
	Department *string
	Status     string
	AssignedAt time.Time
	// DepartmentMismatch is true when either side changed department after the add.
	DepartmentMismatch bool
}

// Candidate is an active employee in the manager's department.
type Candidate struct {
	EmployeeID string
	Code       string
	Firstname  string
	Lastname   string
	Email      *string
	Department *string
	IsInTeam   bool
}
