package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ems-labs/ems-backend-go/internal/domain/employee"
	"github.com/ems-labs/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, first_name, last_name, department, designation, join_date, status, email, phone, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.FirstName, &emp.LastName, &emp.Department, &emp.Designation,
		&emp.JoinDate, &emp.Status, &emp.Email, &emp.Phone,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if activeOnly {
		query += ` WHERE status = 'Active'`
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id int) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			first_name, last_name, department, designation, join_date, status, email, phone
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.FirstName,
		emp.LastName,
		emp.Department,
		emp.Designation,
		emp.JoinDate,
		emp.Status,
		emp.Email,
		emp.Phone,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET first_name = $1, last_name = $2, department = $3, designation = $4,
		    join_date = $5, status = $6, email = $7, phone = $8, updated_at = $9
		WHERE id = $10
	`

	commandTag, err := q.Exec(ctx, query,
		emp.FirstName, emp.LastName, emp.Department, emp.Designation,
		emp.JoinDate, emp.Status, emp.Email, emp.Phone, time.Now(), emp.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Delete implements employee.EmployeeRepository. Soft delete only.
func (r *employeeRepository) Delete(ctx context.Context, id int) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE employees SET status = 'Inactive', updated_at = $1 WHERE id = $2`

	commandTag, err := q.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Search implements employee.EmployeeRepository. Returns every match, not
// just the first row.
func (r *employeeRepository) Search(ctx context.Context, keyword string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE first_name ILIKE $1
		   OR last_name ILIKE $1
		   OR department ILIKE $1
		   OR designation ILIKE $1
		   OR email ILIKE $1
		ORDER BY last_name, first_name
	`

	rows, err := q.Query(ctx, query, "%"+keyword+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, nil
}

// ListDepartments implements employee.EmployeeRepository.
func (r *employeeRepository) ListDepartments(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT DISTINCT department FROM employees ORDER BY department`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	var departments []string
	for rows.Next() {
		var dept string
		if err := rows.Scan(&dept); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, dept)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return departments, nil
}
