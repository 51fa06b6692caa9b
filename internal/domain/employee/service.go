package employee

import "context"

// EmployeeService defines business logic for the employee registry
type EmployeeService interface {
	// CreateEmployee registers an employee and opens their leave quota
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)

	// ListServices returns the distinct services of active employees
	ListServices(ctx context.Context) ([]string, error)

	// DeactivateEmployee is the soft delete: history is kept, the employee leaves every roster
	DeactivateEmployee(ctx context.Context, id string) error

	// DeleteEmployee removes the employee and all their attendance and leave history
	DeleteEmployee(ctx context.Context, id string) error
}
