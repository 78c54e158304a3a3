package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fias/marcaciones/internal/domain/employee"
	"github.com/fias/marcaciones/internal/repository"
)

// EmployeeRepository implements repository.EmployeeRepository for SQLite
type EmployeeRepository struct {
	db *DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `id, code, full_name, given_name, family_name, title,
	project_id, email, phone, active, registered_at, modified_at`

// Create inserts a new employee
func (r *EmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		emp.ID,
		emp.Code,
		emp.FullName,
		emp.GivenName,
		emp.FamilyName,
		emp.Title,
		emp.ProjectID,
		emp.Email,
		emp.Phone,
		emp.Active,
		emp.RegisteredAt,
		emp.ModifiedAt,
	)

	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}

// Get retrieves an employee by numeric identifier
func (r *EmployeeRepository) Get(ctx context.Context, id int) (*employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ?`

	emp, err := scanEmployee(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// Update replaces an employee's mutable fields
func (r *EmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	query := `
		UPDATE employees
		SET code = ?, full_name = ?, given_name = ?, family_name = ?,
		    title = ?, project_id = ?, email = ?, phone = ?, modified_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		emp.Code,
		emp.FullName,
		emp.GivenName,
		emp.FamilyName,
		emp.Title,
		emp.ProjectID,
		emp.Email,
		emp.Phone,
		emp.ModifiedAt,
		emp.ID,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes an employee permanently
func (r *EmployeeRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// List returns employees matching the options, in insertion order. The
// reconciliation name matcher depends on this order for first-hit
// resolution.
func (r *EmployeeRepository) List(ctx context.Context, opts employee.ListOptions) ([]employee.Employee, error) {
	var conditions []string
	var args []any

	if opts.ProjectID != "" {
		conditions = append(conditions, "project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if opts.Active != nil {
		conditions = append(conditions, "active = ?")
		args = append(args, *opts.Active)
	}
	if opts.Search != "" {
		like := "%" + strings.ToLower(opts.Search) + "%"
		conditions = append(conditions,
			"(lower(full_name) LIKE ? OR lower(code) LIKE ? OR lower(title) LIKE ? OR lower(email) LIKE ?)")
		args = append(args, like, like, like, like)
	}

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY rowid ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, *emp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", err)
	}

	return employees, nil
}

// SetActive flips the active flag
func (r *EmployeeRepository) SetActive(ctx context.Context, id int, active bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE employees SET active = ?, modified_at = CURRENT_TIMESTAMP WHERE id = ?`,
		active, id)
	if err != nil {
		return fmt.Errorf("failed to set employee active flag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID,
		&emp.Code,
		&emp.FullName,
		&emp.GivenName,
		&emp.FamilyName,
		&emp.Title,
		&emp.ProjectID,
		&emp.Email,
		&emp.Phone,
		&emp.Active,
		&emp.RegisteredAt,
		&emp.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}
