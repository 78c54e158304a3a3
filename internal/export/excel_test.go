package export_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fias/marcaciones/internal/export"
	"github.com/fias/marcaciones/internal/reconcile"
)

func sampleResult() reconcile.RunResult {
	return reconcile.RunResult{
		Events: []reconcile.Event{
			{
				EmployeeID: 1,
				Code:       "FIAS-001",
				FullName:   "Ana Torres",
				ProjectID:  "FIAS",
				Date:       "2024-06-03",
				Time:       "08:25:00",
				Kind:       reconcile.KindEntry,
				Source:     reconcile.SourceTeams,
				Status:     reconcile.StatusProcessed,
			},
			{
				EmployeeID: 2,
				FullName:   "Juan Pérez",
				ProjectID:  "FIAS",
				Date:       "2024-06-03",
				Time:       "17:31:00",
				Kind:       reconcile.KindExit,
				Source:     reconcile.SourceBiometric,
				Status:     reconcile.StatusProcessed,
			},
		},
		Errors: []reconcile.ProcessingError{
			{Source: reconcile.SourceTeams, Line: 4, Message: "Funcionario no encontrado: Desconocido"},
		},
		Summary: reconcile.Summary{
			Projects: []reconcile.ProjectTotals{
				{ProjectID: "FIAS", Total: 2, Entries: 1, Exits: 1, Teams: 1, Biometric: 1},
			},
			Totals: reconcile.ProjectTotals{ProjectID: "TODOS", Total: 2, Entries: 1, Exits: 1, Teams: 1, Biometric: 1},
		},
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC)
	require.Equal(t, "Consolidado_2024-06-03.xlsx", export.Filename("Consolidado", now))
	require.Equal(t, "Marcaciones_Consolidadas_2024-06-03.xlsx", export.Filename("", now))
}

func TestWorkbookSheets(t *testing.T) {
	f, err := export.Workbook(sampleResult(), true)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Marcaciones", "Resumen", "Errores"}, f.GetSheetList())
}

func TestWorkbookOmitsErrorSheet(t *testing.T) {
	res := sampleResult()

	f, err := export.Workbook(res, false)
	require.NoError(t, err)
	require.NotContains(t, f.GetSheetList(), "Errores")
	f.Close()

	res.Errors = nil
	f, err = export.Workbook(res, true)
	require.NoError(t, err)
	require.NotContains(t, f.GetSheetList(), "Errores")
	f.Close()
}

func TestWorkbookEventRows(t *testing.T) {
	f, err := export.Workbook(sampleResult(), true)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Marcaciones")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Código", "Funcionario", "Proyecto", "Fecha", "Hora", "Tipo", "Fuente", "Estado"}, rows[0])
	require.Equal(t, []string{"FIAS-001", "Ana Torres", "FIAS", "2024-06-03", "08:25:00", "Entrada", "Teams", "Procesado"}, rows[1])

	// Events without a code fall back to the numeric identifier.
	require.Equal(t, "2", rows[2][0])
}

func TestWorkbookSummaryRows(t *testing.T) {
	f, err := export.Workbook(sampleResult(), true)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Resumen")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Por Proyecto", "FIAS", "2", "1", "1", "1", "1"}, rows[1])
	require.Equal(t, []string{"Totales", "TODOS", "2", "1", "1", "1", "1"}, rows[2])
}

func TestWorkbookErrorRows(t *testing.T) {
	f, err := export.Workbook(sampleResult(), true)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Errores")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, []string{"Teams", "4", "Funcionario no encontrado: Desconocido"}, rows[1])
}
