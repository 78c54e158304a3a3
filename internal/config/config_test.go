package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "America/Guayaquil", cfg.Processing.Timezone)
	require.Equal(t, "08:30:00", cfg.Processing.Schedule.StandardEntry)
	require.Equal(t, 15, cfg.Processing.Schedule.EntryToleranceMin)
	require.Equal(t, []int{1, 2, 3, 4, 5}, cfg.Processing.WorkingDays)
	require.Contains(t, cfg.Processing.Holidays, "2024-05-01")
	require.True(t, cfg.Processing.Validations.Duplicates)
	require.Equal(t, ";", cfg.Files.Teams.CSVDelimiter)
	require.Equal(t, ",", cfg.Files.Biometric.CSVDelimiter)
	require.Equal(t, "Marcaciones_Consolidadas", cfg.Export.BaseName)
	require.NotEmpty(t, cfg.Files.Teams.Columns.Identity)
	require.NotEmpty(t, cfg.Files.Biometric.Columns.Timestamp)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MARCAS_SERVER_HOST", "127.0.0.1")
	t.Setenv("MARCAS_SERVER_PORT", "9090")
	t.Setenv("MARCAS_DB_PATH", "/tmp/marcas.db")
	t.Setenv("MARCAS_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "/tmp/marcas.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("MARCAS_SERVER_PORT", "nope")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
server:
  port: 3000
procesamiento:
  horarios:
    horaEntradaEstandar: "09:00:00"
    toleranciaEntrada: 5
  validaciones:
    marcarTardanzas: false
archivos:
  teams:
    delimitadorCSV: ","
`)
	require.NoError(t, os.WriteFile(path, body, 0o644))
	t.Setenv("MARCAS_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, "09:00:00", cfg.Processing.Schedule.StandardEntry)
	require.Equal(t, 5, cfg.Processing.Schedule.EntryToleranceMin)
	require.False(t, cfg.Processing.Validations.LateArrivals)
	require.Equal(t, ",", cfg.Files.Teams.CSVDelimiter)

	// Untouched keys keep their defaults.
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.True(t, cfg.Processing.Validations.Duplicates)
}

func TestRules(t *testing.T) {
	cfg := Default()
	rules := cfg.Rules()

	require.True(t, rules.MarkDuplicates)
	require.True(t, rules.MarkLate)
	require.Equal(t, "08:30:00", rules.StandardEntry)
	require.Equal(t, 15, rules.EntryToleranceMin)
	require.Equal(t, cfg.Processing.WorkingDays, rules.WorkingDays)
	require.Equal(t, cfg.Processing.Holidays, rules.Holidays)
}
