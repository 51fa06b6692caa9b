package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/database"
	leaveservice "github.com/cmlabs-hris/shift-attendance-go/internal/service/leave"
	"github.com/google/uuid"
)

type EmployeeServiceImpl struct {
	db           database.Transactor
	employeeRepo employee.EmployeeRepository
	quotaService *leaveservice.QuotaService
}

func NewEmployeeService(
	db database.Transactor,
	employeeRepo employee.EmployeeRepository,
	quotaService *leaveservice.QuotaService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		quotaService: quotaService,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := req.ToEntity()
	newEmployee.ID = uuid.Must(uuid.NewV7()).String()

	var created employee.Employee
	err := s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.employeeRepo.Create(txCtx, newEmployee)
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		// Every employee starts with a leave quota at the default allocation.
		if _, err := s.quotaService.Ensure(txCtx, created.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "service", created.Service, "shift", string(created.Shift))

	return employee.NewEmployeeResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee.NewEmployeeResponse(emp), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err := s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.employeeRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}

		req.Apply(&existing)
		updated, err = s.employeeRepo.Update(txCtx, existing)
		if err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(updated), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

// ListServices implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListServices(ctx context.Context) ([]string, error) {
	services, err := s.employeeRepo.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	if services == nil {
		services = []string{}
	}
	return services, nil
}

// DeactivateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeactivateEmployee(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}
	if err := s.employeeRepo.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}

	slog.Info("Employee deactivated", "employee_id", id)
	return nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	slog.Warn("Employee deleted with all history", "employee_id", id)
	return nil
}
