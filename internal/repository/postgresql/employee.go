package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, nom, prenom, service, poste, heure_entree_prevue, heure_sortie_prevue,
	groupe_nuit, jours_travail, actif, created_at, updated_at`

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var (
		emp  employee.Employee
		days string
	)
	err := row.Scan(
		&emp.ID, &emp.LastName, &emp.FirstName, &emp.Service, &emp.Shift,
		&emp.ScheduledArrival, &emp.ScheduledDeparture,
		&emp.NightGroup, &days, &emp.Active, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	emp.NightDays = employee.SplitDays(days)
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO personnel (id, nom, prenom, service, poste, heure_entree_prevue, heure_sortie_prevue,
			groupe_nuit, jours_travail, actif)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.LastName, newEmployee.FirstName, newEmployee.Service, newEmployee.Shift,
		newEmployee.ScheduledArrival, newEmployee.ScheduledDeparture,
		newEmployee.NightGroup, employee.JoinDays(newEmployee.NightDays), newEmployee.Active,
	))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to insert employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM personnel WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		return employee.Employee{}, mapNoRows(err, employee.ErrEmployeeNotFound)
	}
	return emp, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE personnel
		SET nom = $2, prenom = $3, service = $4, poste = $5, heure_entree_prevue = $6, heure_sortie_prevue = $7,
			groupe_nuit = $8, jours_travail = $9, actif = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		emp.ID, emp.LastName, emp.FirstName, emp.Service, emp.Shift,
		emp.ScheduledArrival, emp.ScheduledDeparture,
		emp.NightGroup, employee.JoinDays(emp.NightDays), emp.Active,
	))
	if err != nil {
		return employee.Employee{}, mapNoRows(err, employee.ErrEmployeeNotFound)
	}
	return updated, nil
}

// SetActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `UPDATE personnel SET actif = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM personnel WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	var (
		conditions []string
		args       []any
	)
	if !filter.IncludeInactive {
		conditions = append(conditions, "actif = TRUE")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf(
			"(nom ILIKE $%[1]d OR prenom ILIKE $%[1]d OR prenom || ' ' || nom ILIKE $%[1]d)", len(args)))
	}
	if filter.Service != "" {
		args = append(args, filter.Service)
		conditions = append(conditions, fmt.Sprintf("LOWER(service) = LOWER($%d)", len(args)))
	}

	query := `SELECT ` + employeeColumns + ` FROM personnel`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY service, nom, prenom"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// ListServices implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListServices(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT service FROM personnel WHERE actif = TRUE ORDER BY service`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]string, 0)
	for rows.Next() {
		var service string
		if err := rows.Scan(&service); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	return services, rows.Err()
}
