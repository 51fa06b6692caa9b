package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	SetActive(ctx context.Context, id string, active bool) error
	// Delete removes the employee and, through cascading keys, every dependent row.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	ListServices(ctx context.Context) ([]string, error)
}
