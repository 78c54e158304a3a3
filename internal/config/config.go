package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/fias/marcaciones/internal/reconcile"
)

// Config defines server configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	DB           DBConfig           `yaml:"db"`
	Log          LogConfig          `yaml:"log"`
	Processing   ProcessingConfig   `yaml:"procesamiento"`
	Files        FilesConfig        `yaml:"archivos"`
	Export       ExportConfig       `yaml:"exportacion"`
	Integrations IntegrationsConfig `yaml:"integraciones"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
	Seed string `yaml:"seed"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// ProcessingConfig mirrors the "procesamiento" block of the original
// FIAS configuration: the organization's schedule, calendar, and the
// validations applied after a reconciliation run.
type ProcessingConfig struct {
	Timezone    string            `yaml:"zonaHoraria"`
	Schedule    ScheduleConfig    `yaml:"horarios"`
	WorkingDays []int             `yaml:"diasLaborables"`
	Holidays    []string          `yaml:"feriados"`
	Validations ValidationsConfig `yaml:"validaciones"`
}

type ScheduleConfig struct {
	StandardEntry     string `yaml:"horaEntradaEstandar"`
	StandardExit      string `yaml:"horaSalidaEstandar"`
	EntryToleranceMin int    `yaml:"toleranciaEntrada"`
	ExitToleranceMin  int    `yaml:"toleranciaSalida"`
}

type ValidationsConfig struct {
	Duplicates   bool `yaml:"validarDuplicados"`
	LateArrivals bool `yaml:"marcarTardanzas"`
	Holidays     bool `yaml:"validarFeriados"`
	Weekends     bool `yaml:"validarFinSemana"`
}

// FilesConfig describes the two input channels.
type FilesConfig struct {
	Teams     TeamsFileConfig     `yaml:"teams"`
	Biometric BiometricFileConfig `yaml:"biometrico"`
}

type TeamsFileConfig struct {
	MaxSizeMB    int                    `yaml:"tamanoMaximoMB"`
	CSVDelimiter string                 `yaml:"delimitadorCSV"`
	Columns      reconcile.TeamsColumns `yaml:"columnas"`
}

type BiometricFileConfig struct {
	MaxSizeMB    int                        `yaml:"tamanoMaximoMB"`
	CSVDelimiter string                     `yaml:"delimitadorCSV"`
	Columns      reconcile.BiometricColumns `yaml:"columnas"`
}

type ExportConfig struct {
	BaseName      string `yaml:"nombreBase"`
	IncludeErrors bool   `yaml:"incluirErrores"`
}

// IntegrationsConfig carries the external-sync stubs of the original
// system. All disabled; the server never calls out to them.
type IntegrationsConfig struct {
	TeamsAPI        bool   `yaml:"teamsApi"`
	TeamsWebhook    bool   `yaml:"teamsWebhook"`
	BiometricDevice string `yaml:"dispositivoBiometrico"`
	CloudSync       bool   `yaml:"sincronizacionNube"`
}

// Default returns the configuration the original FIAS deployment ships
// with.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "marcaciones.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Processing: ProcessingConfig{
			Timezone: "America/Guayaquil",
			Schedule: ScheduleConfig{
				StandardEntry:     "08:30:00",
				StandardExit:      "17:30:00",
				EntryToleranceMin: 15,
				ExitToleranceMin:  15,
			},
			WorkingDays: []int{1, 2, 3, 4, 5},
			Holidays: []string{
				"2024-01-01", "2024-02-12", "2024-02-13",
				"2024-03-28", "2024-03-29", "2024-05-01",
				"2024-05-24", "2024-08-10", "2024-10-09",
				"2024-11-02", "2024-11-03", "2024-12-06",
				"2024-12-25",
			},
			Validations: ValidationsConfig{
				Duplicates:   true,
				LateArrivals: true,
				Holidays:     true,
				Weekends:     true,
			},
		},
		Files: FilesConfig{
			Teams: TeamsFileConfig{
				MaxSizeMB:    10,
				CSVDelimiter: ";",
				Columns:      reconcile.DefaultTeamsColumns,
			},
			Biometric: BiometricFileConfig{
				MaxSizeMB:    10,
				CSVDelimiter: ",",
				Columns:      reconcile.DefaultBiometricColumns,
			},
		},
		Export: ExportConfig{
			BaseName:      "Marcaciones_Consolidadas",
			IncludeErrors: true,
		},
		Integrations: IntegrationsConfig{
			BiometricDevice: "ZKTeco iClock 880",
		},
	}
}

// Load reads configuration from an optional YAML file and environment
// variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("MARCAS_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("MARCAS_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("MARCAS_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MARCAS_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("MARCAS_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if seed := os.Getenv("MARCAS_SEED_PATH"); seed != "" {
		cfg.DB.Seed = seed
	}
	if level := os.Getenv("MARCAS_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

// Rules converts the processing configuration into the validation rules
// applied after each run.
func (c Config) Rules() reconcile.Rules {
	return reconcile.Rules{
		MarkDuplicates:    c.Processing.Validations.Duplicates,
		MarkLate:          c.Processing.Validations.LateArrivals,
		MarkHolidays:      c.Processing.Validations.Holidays,
		MarkWeekends:      c.Processing.Validations.Weekends,
		StandardEntry:     c.Processing.Schedule.StandardEntry,
		EntryToleranceMin: c.Processing.Schedule.EntryToleranceMin,
		WorkingDays:       c.Processing.WorkingDays,
		Holidays:          c.Processing.Holidays,
	}
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
