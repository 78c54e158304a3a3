package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fias/marcaciones/internal/domain/project"
	"github.com/fias/marcaciones/internal/repository"
)

func TestProjectRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := &project.Project{
		ID:     "FIAS",
		Name:   "Fondo de Inversión Ambiental Sostenible",
		Color:  "#2c3e50",
		Active: true,
	}
	require.NoError(t, repo.Create(ctx, proj))

	got, err := repo.Get(ctx, "FIAS")
	require.NoError(t, err)
	require.Equal(t, proj.Name, got.Name)
	require.Equal(t, "#2c3e50", got.Color)
	require.True(t, got.Active)

	_, err = repo.Get(ctx, "NOPE")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestProjectRepository_DuplicateID(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &project.Project{ID: "FIAS", Name: "FIAS", Active: true}))
	err := repo.Create(ctx, &project.Project{ID: "FIAS", Name: "Otro", Active: true})
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestProjectRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &project.Project{ID: "FIAS", Name: "FIAS", Active: true}))

	require.NoError(t, repo.Update(ctx, &project.Project{
		ID:    "FIAS",
		Name:  "FIAS Renombrado",
		Color: "#27ae60",
	}))

	got, err := repo.Get(ctx, "FIAS")
	require.NoError(t, err)
	require.Equal(t, "FIAS Renombrado", got.Name)
	require.Equal(t, "#27ae60", got.Color)

	err = repo.Update(ctx, &project.Project{ID: "NOPE", Name: "Nada"})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_DeleteBlockedWhileReferenced(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	employees := NewEmployeeRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &project.Project{ID: "FIAS", Name: "FIAS", Active: true}))
	require.NoError(t, employees.Create(ctx, newTestEmployee(1, "FIAS-001", "Ana Torres", "FIAS")))

	err := repo.Delete(ctx, "FIAS")
	require.ErrorIs(t, err, repository.ErrInUse)

	require.NoError(t, employees.Delete(ctx, 1))
	require.NoError(t, repo.Delete(ctx, "FIAS"))

	require.ErrorIs(t, repo.Delete(ctx, "FIAS"), repository.ErrNotFound)
}

func TestProjectRepository_ListCountsEmployees(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	employees := NewEmployeeRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &project.Project{ID: "FIAS", Name: "FIAS", Active: true}))
	require.NoError(t, repo.Create(ctx, &project.Project{ID: "PROAMAZONIA", Name: "ProAmazonía", Active: true}))

	require.NoError(t, employees.Create(ctx, newTestEmployee(1, "FIAS-001", "Ana Torres", "FIAS")))
	require.NoError(t, employees.Create(ctx, newTestEmployee(2, "FIAS-002", "Juan Pérez", "FIAS")))
	require.NoError(t, employees.SetActive(ctx, 2, false))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.Equal(t, "FIAS", list[0].ID)
	require.Equal(t, 2, list[0].EmployeeCount)
	require.Equal(t, 1, list[0].ActiveEmployees)

	require.Equal(t, "PROAMAZONIA", list[1].ID)
	require.Equal(t, 0, list[1].EmployeeCount)
}

func TestProjectRepository_ListActive(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &project.Project{ID: "FIAS", Name: "FIAS", Active: true}))
	require.NoError(t, repo.Create(ctx, &project.Project{ID: "VIEJO", Name: "Cerrado", Active: true}))
	require.NoError(t, repo.SetActive(ctx, "VIEJO", false))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "FIAS", active[0].ID)
}
