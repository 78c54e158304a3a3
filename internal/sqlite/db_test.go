package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fias/marcaciones/internal/domain/employee"
	"github.com/fias/marcaciones/internal/domain/project"
)

func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// seedProject inserts a project employees can reference.
func seedProject(t *testing.T, db *DB, id string) {
	t.Helper()
	repo := NewProjectRepository(db)
	err := repo.Create(context.Background(), &project.Project{
		ID:     id,
		Name:   id + " project",
		Active: true,
	})
	require.NoError(t, err)
}

func newTestEmployee(id int, code, name, projectID string) *employee.Employee {
	now := time.Now()
	return &employee.Employee{
		ID:           id,
		Code:         code,
		FullName:     name,
		GivenName:    name,
		FamilyName:   name,
		ProjectID:    projectID,
		Active:       true,
		RegisteredAt: now,
		ModifiedAt:   now,
	}
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{"projects", "employees", "activity_log"}
	for _, table := range tables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		require.Equal(t, table, name)
	}
}

// TestMigrationsIdempotent verifies the schema can be applied twice
func TestMigrationsIdempotent(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.RunMigrations())
}

func TestForeignKeysEnforced(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEmployeeRepository(db)

	// No project seeded: the FK on project_id must reject the insert.
	err := repo.Create(context.Background(), newTestEmployee(1, "X-001", "Ana Torres", "MISSING"))
	require.Error(t, err)
}
