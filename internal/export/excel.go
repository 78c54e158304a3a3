// Package export writes a reconciliation run into the consolidated
// FIAS workbook: one sheet with the sorted event ledger, one with the
// per-project summary, and one with the error list when present.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fias/marcaciones/internal/reconcile"
)

const (
	sheetEvents  = "Marcaciones"
	sheetSummary = "Resumen"
	sheetErrors  = "Errores"
)

// Filename builds the export file name: <base>_<date>.xlsx.
func Filename(base string, now time.Time) string {
	if base == "" {
		base = "Marcaciones_Consolidadas"
	}
	return fmt.Sprintf("%s_%s.xlsx", base, now.Format("2006-01-02"))
}

// Workbook renders a RunResult into a new workbook. When includeErrors
// is false, or the run produced no errors, the error sheet is omitted.
func Workbook(res reconcile.RunResult, includeErrors bool) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetEvents); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	if err := writeEvents(f, res.Events); err != nil {
		return nil, err
	}
	if err := writeSummary(f, res.Summary); err != nil {
		return nil, err
	}
	if includeErrors && len(res.Errors) > 0 {
		if err := writeErrors(f, res.Errors); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func writeEvents(f *excelize.File, events []reconcile.Event) error {
	header := []any{"Código", "Funcionario", "Proyecto", "Fecha", "Hora", "Tipo", "Fuente", "Estado"}
	if err := f.SetSheetRow(sheetEvents, "A1", &header); err != nil {
		return fmt.Errorf("writing event header: %w", err)
	}

	for i, ev := range events {
		code := ev.Code
		if code == "" {
			code = fmt.Sprint(ev.EmployeeID)
		}
		row := []any{code, ev.FullName, ev.ProjectID, ev.Date, ev.Time, ev.Kind, string(ev.Source), ev.Status}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetEvents, cell, &row); err != nil {
			return fmt.Errorf("writing event row %d: %w", i+2, err)
		}
	}
	return nil
}

func writeSummary(f *excelize.File, summary reconcile.Summary) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	header := []any{"Categoría", "Proyecto", "Total Registros", "Entradas", "Salidas", "Desde Teams", "Desde Biométrico"}
	if err := f.SetSheetRow(sheetSummary, "A1", &header); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}

	line := 2
	for _, pt := range summary.Projects {
		row := []any{"Por Proyecto", pt.ProjectID, pt.Total, pt.Entries, pt.Exits, pt.Teams, pt.Biometric}
		if err := f.SetSheetRow(sheetSummary, fmt.Sprintf("A%d", line), &row); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
		line++
	}

	t := summary.Totals
	totals := []any{"Totales", t.ProjectID, t.Total, t.Entries, t.Exits, t.Teams, t.Biometric}
	if err := f.SetSheetRow(sheetSummary, fmt.Sprintf("A%d", line), &totals); err != nil {
		return fmt.Errorf("writing totals row: %w", err)
	}
	return nil
}

func writeErrors(f *excelize.File, errs []reconcile.ProcessingError) error {
	if _, err := f.NewSheet(sheetErrors); err != nil {
		return fmt.Errorf("creating error sheet: %w", err)
	}

	header := []any{"Fuente", "Línea", "Mensaje"}
	if err := f.SetSheetRow(sheetErrors, "A1", &header); err != nil {
		return fmt.Errorf("writing error header: %w", err)
	}

	for i, pe := range errs {
		row := []any{string(pe.Source), pe.Line, pe.Message}
		if err := f.SetSheetRow(sheetErrors, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("writing error row %d: %w", i+2, err)
		}
	}
	return nil
}
