package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fias/marcaciones/internal/domain/employee"
	"github.com/fias/marcaciones/internal/domain/project"
	"github.com/fias/marcaciones/internal/reconcile"
)

func testRoster() *reconcile.Roster {
	return reconcile.NewRoster(
		[]employee.Employee{
			{ID: 1, Code: "FIAS-001", FullName: "Ana Torres", GivenName: "Ana", FamilyName: "Torres", ProjectID: "FIAS", Active: true},
			{ID: 2, Code: "FIAS-002", FullName: "Juan Pérez", GivenName: "Juan", FamilyName: "Pérez", ProjectID: "FIAS", Active: true},
			{ID: 3, Code: "PRO-001", FullName: "María Fernanda Salazar", GivenName: "María Fernanda", FamilyName: "Salazar", ProjectID: "PROAMAZONIA", Active: true},
			{ID: 4, Code: "FIAS-003", FullName: "Carlos Mora", GivenName: "Carlos", FamilyName: "Mora", ProjectID: "FIAS", Active: false},
		},
		[]project.Project{
			{ID: "FIAS", Name: "FIAS Central", Color: "#2c3e50", Active: true},
			{ID: "PROAMAZONIA", Name: "ProAmazonía", Color: "#27ae60", Active: true},
		},
	)
}

func TestResolveByID(t *testing.T) {
	roster := testRoster()

	emp, ok := roster.ResolveByID(1)
	require.True(t, ok)
	require.Equal(t, "Ana Torres", emp.FullName)

	_, ok = roster.ResolveByID(99)
	require.False(t, ok)
}

func TestResolveByID_InactiveExcluded(t *testing.T) {
	roster := testRoster()

	_, ok := roster.ResolveByID(4)
	require.False(t, ok)
}

func TestResolveByName_Exact(t *testing.T) {
	roster := testRoster()

	emp, stage, ok := roster.ResolveByName("Juan Pérez")
	require.True(t, ok)
	require.Equal(t, reconcile.StageExact, stage)
	require.Equal(t, 2, emp.ID)

	// Case and surrounding whitespace are ignored.
	emp, stage, ok = roster.ResolveByName("  JUAN PÉREZ ")
	require.True(t, ok)
	require.Equal(t, reconcile.StageExact, stage)
	require.Equal(t, 2, emp.ID)
}

func TestResolveByName_Token(t *testing.T) {
	roster := testRoster()

	// "Salazar" only appears inside one full name.
	emp, stage, ok := roster.ResolveByName("Salazar Recursos Naturales")
	require.True(t, ok)
	require.Equal(t, reconcile.StageToken, stage)
	require.Equal(t, 3, emp.ID)
}

func TestResolveByName_TokenSkipsShortWords(t *testing.T) {
	roster := reconcile.NewRoster(
		[]employee.Employee{
			{ID: 1, FullName: "Ana de la Cruz", GivenName: "Ana", FamilyName: "de la Cruz", Active: true},
		}, nil)

	// "de" and "la" are too short to count as tokens; "Cruz" matches.
	emp, stage, ok := roster.ResolveByName("de la Cruz")
	require.True(t, ok)
	require.Equal(t, reconcile.StageToken, stage)
	require.Equal(t, 1, emp.ID)
}

func TestResolveByName_Fallback(t *testing.T) {
	roster := testRoster()

	// No token of the input appears as a substring of any full name,
	// but the input contains the family name "Torres".
	emp, stage, ok := roster.ResolveByName("X. Torres-Alvarado")
	require.True(t, ok)
	require.Equal(t, reconcile.StageFallback, stage)
	require.Equal(t, 1, emp.ID)
}

func TestResolveByName_FallbackFirstToken(t *testing.T) {
	roster := testRoster()

	// "Juanito" is not contained in any name, but the first token
	// "juanito" is not inside "juan" either; "Jua" (3 runes) would
	// token-match. Use a name whose first token is a prefix fragment
	// contained in a stored given name.
	emp, stage, ok := roster.ResolveByName("an xyzzy")
	require.True(t, ok)
	require.Equal(t, reconcile.StageFallback, stage)
	// "an" is contained in given name "Ana" of the first employee in
	// roster order: a known false-positive of the heuristic, pinned
	// here on purpose.
	require.Equal(t, 1, emp.ID)
}

func TestResolveByName_EmptyInput(t *testing.T) {
	roster := testRoster()

	_, _, ok := roster.ResolveByName("")
	require.False(t, ok)
	_, _, ok = roster.ResolveByName("   ")
	require.False(t, ok)
}

func TestResolveByName_InactiveExcluded(t *testing.T) {
	roster := testRoster()

	_, _, ok := roster.ResolveByName("Carlos Mora")
	require.False(t, ok)
}

func TestResolveByName_NoMatch(t *testing.T) {
	roster := testRoster()

	_, _, ok := roster.ResolveByName("Wolfgang Überall")
	require.False(t, ok)
}

func TestResolveByName_FirstHitOrder(t *testing.T) {
	// Two employees share the family name; the one stored first wins.
	roster := reconcile.NewRoster(
		[]employee.Employee{
			{ID: 10, FullName: "Pedro Castillo", GivenName: "Pedro", FamilyName: "Castillo", Active: true},
			{ID: 11, FullName: "Lucía Castillo", GivenName: "Lucía", FamilyName: "Castillo", Active: true},
		}, nil)

	emp, stage, ok := roster.ResolveByName("Castillo")
	require.True(t, ok)
	require.Equal(t, reconcile.StageToken, stage)
	require.Equal(t, 10, emp.ID)
}

func TestRosterSnapshotIsolation(t *testing.T) {
	employees := []employee.Employee{
		{ID: 1, FullName: "Ana Torres", GivenName: "Ana", FamilyName: "Torres", Active: true},
	}
	roster := reconcile.NewRoster(employees, nil)

	// Mutating the source slice after snapshotting must not affect
	// resolution.
	employees[0].Active = false

	_, ok := roster.ResolveByID(1)
	require.True(t, ok)
}

func TestProjectColor(t *testing.T) {
	roster := testRoster()

	require.Equal(t, "#2c3e50", roster.ProjectColor("FIAS"))
	require.Equal(t, "#cccccc", roster.ProjectColor("NOPE"))
}
